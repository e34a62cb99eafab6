// Package storage holds the file storage gateway consumed by the upload
// handler. The todo engine itself only ever sees (path, size) pairs.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage saves uploaded bytes and cleans a task's directory before a
// replacement upload.
type FileStorage interface {
	SaveFile(path string, r io.Reader) error
	CleanDirectory(key string) error
}

// Local stores files on disk under a root directory.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

// SaveFile writes the stream to root/path, creating directories as needed.
// path is storage-relative and slash-separated.
func (l *Local) SaveFile(path string, r io.Reader) error {
	if err := checkRelative(path); err != nil {
		return err
	}
	full := filepath.Join(l.root, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// CleanDirectory removes everything stored under the given key (one
// directory per task).
func (l *Local) CleanDirectory(key string) error {
	if key == "" || key != filepath.Base(key) {
		return fmt.Errorf("invalid directory key %q", key)
	}
	return os.RemoveAll(filepath.Join(l.root, key))
}

func checkRelative(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	if strings.HasPrefix(path, "/") || strings.Contains(path, "..") {
		return fmt.Errorf("invalid path %q", path)
	}
	return nil
}
