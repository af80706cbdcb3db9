package controller

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muurk/mallas/internal/page"
)

// FileSurface is a loaded page whose downloads are saved to a directory.
type FileSurface struct {
	*page.Document

	// Dir receives downloaded files. Empty means the working directory.
	Dir string

	// LastPath is the file written by the most recent download.
	LastPath string
}

// NewFileSurface wraps doc so downloads land in dir.
func NewFileSurface(doc *page.Document, dir string) *FileSurface {
	return &FileSurface{Document: doc, Dir: dir}
}

// Download records the file on the document and writes it to Dir,
// replacing any file of the same name.
func (s *FileSurface) Download(name, mime string, data []byte) error {
	if err := s.Document.Download(name, mime, data); err != nil {
		return err
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	s.LastPath = path
	return nil
}

var _ Surface = (*FileSurface)(nil)
