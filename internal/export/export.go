// Package export delivers composed frames to the clipboard or to a
// file. Both actions are idempotent and independent of the store: a
// failed export never touches stored photos, and exporting a photo
// that is still developing is allowed.
package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zyfayes/polaroid/internal/composer"
	"github.com/zyfayes/polaroid/internal/domain"
)

// ClipboardSink places encoded image data on the system clipboard.
type ClipboardSink interface {
	Write(mimeType string, data []byte) error
}

// FileSink offers encoded image data to the user as a named file.
type FileSink interface {
	Deliver(filename string, data []byte) error
}

type Actions struct {
	composer *composer.Composer
	clip     ClipboardSink
	files    FileSink
	log      *zap.Logger
}

func NewActions(c *composer.Composer, clip ClipboardSink, files FileSink, log *zap.Logger) *Actions {
	return &Actions{composer: c, clip: clip, files: files, log: log}
}

// Filename returns the deterministic export name for a photo id.
func Filename(id string) string {
	return "polaroid-" + id + ".png"
}

// CopyToClipboard composes the frame for photo and puts it on the
// clipboard as PNG data.
func (a *Actions) CopyToClipboard(ctx context.Context, photo domain.Photo) error {
	data, err := a.render(photo)
	if err != nil {
		return err
	}

	if err := a.clip.Write("image/png", data); err != nil {
		a.log.Warn("Clipboard copy failed",
			zap.String("id", photo.ID),
			zap.Error(err))
		return err
	}

	a.log.Info("Frame copied to clipboard",
		zap.String("id", photo.ID),
		zap.Int("size", len(data)))
	return nil
}

// SaveToFile composes the frame for photo and delivers it as
// polaroid-{id}.png. Returns the filename used.
func (a *Actions) SaveToFile(ctx context.Context, photo domain.Photo) (string, error) {
	data, err := a.render(photo)
	if err != nil {
		return "", err
	}

	name := Filename(photo.ID)
	if err := a.files.Deliver(name, data); err != nil {
		a.log.Warn("File export failed",
			zap.String("id", photo.ID),
			zap.String("filename", name),
			zap.Error(err))
		return "", err
	}

	a.log.Info("Frame exported to file",
		zap.String("id", photo.ID),
		zap.String("filename", name),
		zap.Int("size", len(data)))
	return name, nil
}

// Render composes and PNG-encodes the frame for photo without
// delivering it anywhere. Used by the HTTP download handler.
func (a *Actions) Render(ctx context.Context, photo domain.Photo) ([]byte, error) {
	return a.render(photo)
}

func (a *Actions) render(photo domain.Photo) ([]byte, error) {
	frame, err := a.composer.Compose(photo)
	if err != nil {
		return nil, fmt.Errorf("compose frame: %w", err)
	}
	data, err := composer.EncodePNG(frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return data, nil
}
