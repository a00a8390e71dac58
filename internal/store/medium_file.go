package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileMedium persists the payload as a single file. Writes go through
// a temp file plus rename so a crash mid-write never leaves a
// truncated payload behind.
type FileMedium struct {
	path string
}

func NewFileMedium(path string) (*FileMedium, error) {
	if path == "" {
		return nil, fmt.Errorf("store: file medium path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("store: create medium directory: %w", err)
	}
	return &FileMedium{path: path}, nil
}

func (m *FileMedium) Read(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: read %s: %w", m.path, err)
	}
	return data, true, nil
}

func (m *FileMedium) Write(ctx context.Context, data []byte) error {
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("store: rename %s: %w", tmp, err)
	}
	return nil
}
