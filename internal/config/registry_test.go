package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "mallas") {
		t.Errorf("GetConfigDir() = %v, should contain 'mallas'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies to Linux and other Unix systems")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	got, err := GetConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join("/tmp/xdg-test", "mallas") {
		t.Errorf("GetConfigDir() = %s", got)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("Version = %v, want 1", s.Version)
	}
	if s.Backend.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("BaseURL = %s", s.Backend.BaseURL)
	}
	if s.Backend.ExamplePath != "/api/example" {
		t.Errorf("ExamplePath = %s", s.Backend.ExamplePath)
	}
	if s.BackendTimeout() != 10*time.Second {
		t.Errorf("BackendTimeout() = %v", s.BackendTimeout())
	}
	if s.Backend.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d", s.Backend.MaxRetries)
	}
	if s.DiscoveryTimeout() != 5*time.Second {
		t.Errorf("DiscoveryTimeout() = %v", s.DiscoveryTimeout())
	}
	if s.Servers == nil {
		t.Error("Servers should not be nil")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Backend.BaseURL != "http://127.0.0.1:5000" {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "version: 1\nbackend:\n  base_url: http://10.0.0.2:8000\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Backend.BaseURL != "http://10.0.0.2:8000" {
		t.Errorf("BaseURL = %s", s.Backend.BaseURL)
	}
	if s.Backend.ExamplePath != "/api/example" || s.Backend.Timeout != 10 || s.Backend.MaxRetries != 2 {
		t.Errorf("defaults lost: %+v", s.Backend)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %s", s.Log.Level)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Bad version", "version: 7\n"},
		{"Bad YAML", "version: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() error = nil")
			}
		})
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	s := NewSettings()
	s.Export.Directory = "/tmp/out"
	s.RememberServer("mallas-lab", "http://192.168.1.20:5000")
	if !s.SetServerNickname("mallas-lab", "Laboratorio") {
		t.Fatal("SetServerNickname() = false")
	}
	if s.SetServerNickname("missing", "x") {
		t.Error("SetServerNickname(missing) = true")
	}

	if err := s.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Export.Directory != "/tmp/out" {
		t.Errorf("Export.Directory = %s", loaded.Export.Directory)
	}
	srv := loaded.Servers["mallas-lab"]
	if srv == nil || srv.Nickname != "Laboratorio" || srv.URL != "http://192.168.1.20:5000" {
		t.Errorf("server = %+v", srv)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	got, err := CreateDefaultConfig(path)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if got != path {
		t.Errorf("path = %s, want %s", got, path)
	}

	if _, err := CreateDefaultConfig(path); err == nil {
		t.Error("second CreateDefaultConfig() should refuse to overwrite")
	}
}
