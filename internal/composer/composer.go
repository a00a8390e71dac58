// Package composer renders the decorated export frame for a stored
// photo: white mat, thin border, a subtle diagonal overlay gradient
// and a handwritten-style timestamp caption. Composites are rebuilt
// per request, never cached.
package composer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // stored payloads are JPEG data URIs
	"image/png"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"

	"github.com/zyfayes/polaroid/internal/domain"
	"github.com/zyfayes/polaroid/pkg/imaging"
)

const (
	// PhotoSize is the edge length of the stored square capture.
	PhotoSize = 600
	// Padding frames the photo on the left, right and top.
	Padding = 40
	// CaptionBand is the height of the bottom band the timestamp is
	// written into.
	CaptionBand = 120

	// FrameWidth and FrameHeight are the full composite dimensions.
	FrameWidth  = PhotoSize + 2*Padding
	FrameHeight = PhotoSize + Padding + CaptionBand

	captionFontSize = 42
	captionTiltDeg  = -1.1
	captionLiftPx   = 5
	gradientAlpha   = 30
)

type Composer struct {
	// opentype faces are not safe for concurrent use; compositions
	// are serialized.
	mu   sync.Mutex
	face font.Face
}

func New() (*Composer, error) {
	ft, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("composer: parse caption font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    captionFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("composer: build caption face: %w", err)
	}
	return &Composer{face: face}, nil
}

// Compose builds the full decorated frame for photo. Any failure
// aborts the whole composition; there is never partial output.
func (c *Composer) Compose(photo domain.Photo) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := imaging.DecodeDataURI(photo.ImageData)
	if err != nil {
		return nil, fmt.Errorf("photo %s: %v: %w", photo.ID, err, domain.ErrDecode)
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("photo %s: %v: %w", photo.ID, err, domain.ErrDecode)
	}

	dc := gg.NewContext(FrameWidth, FrameHeight)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.DrawImage(src, Padding, Padding)

	dc.SetRGBA(0, 0, 0, 0.1)
	dc.SetLineWidth(1)
	dc.DrawRectangle(Padding, Padding, PhotoSize, PhotoSize)
	dc.Stroke()

	// Overlay-blend the diagonal gradient across the photo region
	// only; the caption below is drawn with normal blending.
	canvas, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("photo %s: no drawing surface", photo.ID)
	}
	photoRect := image.Rect(Padding, Padding, Padding+PhotoSize, Padding+PhotoSize)
	imaging.OverlayGradient(canvas, photoRect, gradientAlpha)

	caption := Caption(photo.CapturedAt)
	cx := float64(FrameWidth) / 2
	cy := float64(Padding+PhotoSize) + float64(CaptionBand)/2 - captionLiftPx

	dc.SetFontFace(c.face)
	dc.SetRGB(0.25, 0.25, 0.3)
	dc.RotateAbout(gg.Radians(captionTiltDeg), cx, cy)
	dc.DrawStringAnchored(caption, cx, cy, 0.5, 0.5)

	return dc.Image(), nil
}

// Caption formats an epoch-millisecond timestamp the way it is written
// onto the frame: "Jan 2, 3:04 PM", 12-hour clock with leading-zero
// minutes.
func Caption(capturedAt int64) string {
	return time.UnixMilli(capturedAt).Format("Jan 2, 3:04 PM")
}

// EncodePNG serializes a composite losslessly for export.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("composer: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
