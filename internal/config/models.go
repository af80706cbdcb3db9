package config

import (
	"time"
)

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version   int                `yaml:"version"`
	Backend   *BackendSettings   `yaml:"backend,omitempty"`
	Export    *ExportSettings    `yaml:"export,omitempty"`
	Discovery *DiscoverySettings `yaml:"discovery,omitempty"`
	Log       *LogSettings       `yaml:"log,omitempty"`
	Servers   map[string]*Server `yaml:"servers,omitempty"` // Keyed by mDNS instance name
}

// BackendSettings describes how to reach the simulator.
type BackendSettings struct {
	BaseURL     string `yaml:"base_url"`     // e.g. "http://127.0.0.1:5000"
	ExamplePath string `yaml:"example_path"` // relative to base_url
	Timeout     int    `yaml:"timeout"`      // seconds
	MaxRetries  int    `yaml:"max_retries"`  // for GET requests only
}

// ExportSettings controls where CSV downloads are written.
type ExportSettings struct {
	Directory string `yaml:"directory,omitempty"` // empty = current directory
}

// DiscoverySettings controls mDNS scanning.
type DiscoverySettings struct {
	Timeout int `yaml:"timeout"` // seconds
}

// LogSettings controls logging.
type LogSettings struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error; empty = silent
	File  string `yaml:"file,omitempty"`  // log file used while the UI is running
}

// Server is a simulator backend remembered from a scan.
type Server struct {
	Nickname string    `yaml:"nickname,omitempty"`
	URL      string    `yaml:"url"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	s := &Settings{Version: CurrentVersion}
	s.fillDefaults()
	s.Backend.MaxRetries = 2
	return s
}

// fillDefaults sets every missing section to its default.
func (s *Settings) fillDefaults() {
	if s.Backend == nil {
		s.Backend = &BackendSettings{}
	}
	if s.Backend.BaseURL == "" {
		s.Backend.BaseURL = "http://127.0.0.1:5000"
	}
	if s.Backend.ExamplePath == "" {
		s.Backend.ExamplePath = "/api/example"
	}
	if s.Backend.Timeout <= 0 {
		s.Backend.Timeout = 10
	}
	if s.Backend.MaxRetries < 0 {
		s.Backend.MaxRetries = 0
	}
	if s.Export == nil {
		s.Export = &ExportSettings{}
	}
	if s.Discovery == nil {
		s.Discovery = &DiscoverySettings{}
	}
	if s.Discovery.Timeout <= 0 {
		s.Discovery.Timeout = 5
	}
	if s.Log == nil {
		s.Log = &LogSettings{}
	}
	if s.Servers == nil {
		s.Servers = make(map[string]*Server)
	}
}

// BackendTimeout returns the request timeout as a duration.
func (s *Settings) BackendTimeout() time.Duration {
	return time.Duration(s.Backend.Timeout) * time.Second
}

// DiscoveryTimeout returns the scan timeout as a duration.
func (s *Settings) DiscoveryTimeout() time.Duration {
	return time.Duration(s.Discovery.Timeout) * time.Second
}

// RememberServer records a discovered backend.
func (s *Settings) RememberServer(name, url string) *Server {
	if s.Servers == nil {
		s.Servers = make(map[string]*Server)
	}
	srv, ok := s.Servers[name]
	if !ok {
		srv = &Server{}
		s.Servers[name] = srv
	}
	srv.URL = url
	srv.LastSeen = time.Now()
	return srv
}

// SetServerNickname sets a user-friendly name for a remembered backend.
func (s *Settings) SetServerNickname(name, nickname string) bool {
	srv, ok := s.Servers[name]
	if !ok {
		return false
	}
	srv.Nickname = nickname
	return true
}
