package export

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.design/x/clipboard"

	"github.com/zyfayes/polaroid/internal/domain"
)

// SystemClipboard writes image data to the OS clipboard. When the
// platform denies or lacks clipboard-image support, every Write fails
// with domain.ErrClipboardUnavailable; the failure is surfaced once
// per attempt and never retried.
type SystemClipboard struct {
	initErr error
}

func NewSystemClipboard() *SystemClipboard {
	sc := &SystemClipboard{}
	if err := clipboard.Init(); err != nil {
		sc.initErr = fmt.Errorf("%v: %w", err, domain.ErrClipboardUnavailable)
	}
	return sc
}

func (c *SystemClipboard) Write(mimeType string, data []byte) error {
	if c.initErr != nil {
		return c.initErr
	}
	if mimeType != "image/png" {
		return fmt.Errorf("unsupported clipboard type %q: %w",
			mimeType, domain.ErrClipboardUnavailable)
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

// DirFileSink saves exported frames into a local directory.
type DirFileSink struct {
	dir string
}

func NewDirFileSink(dir string) (*DirFileSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("export: create directory %s: %w", dir, err)
	}
	return &DirFileSink{dir: dir}, nil
}

func (s *DirFileSink) Deliver(filename string, data []byte) error {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
