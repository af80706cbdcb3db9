package controller

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/muurk/mallas/internal/page"
)

func TestFileSurfaceDownload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := NewFileSurface(page.NewDocument("http://localhost/"), dir)

	if err := s.Download(ExportFileName, ExportMIME, []byte("a,b\n")); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	want := filepath.Join(dir, ExportFileName)
	if s.LastPath != want {
		t.Errorf("LastPath = %q, want %q", s.LastPath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "a,b\n" {
		t.Errorf("file content = %q", data)
	}
	if len(s.Downloads) != 1 || s.Downloads[0].MIME != ExportMIME {
		t.Errorf("Downloads = %+v", s.Downloads)
	}
}

func TestFileSurfaceOverwrite(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSurface(page.NewDocument("http://localhost/"), dir)

	for _, body := range []string{"first", "second"} {
		if err := s.Download("out.csv", ExportMIME, []byte(body)); err != nil {
			t.Fatalf("Download() error = %v", err)
		}
	}
	data, _ := os.ReadFile(filepath.Join(dir, "out.csv"))
	if string(data) != "second" {
		t.Errorf("file content = %q, want second", data)
	}
}
