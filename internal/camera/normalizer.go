package camera

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"

	"github.com/zyfayes/polaroid/internal/domain"
	"github.com/zyfayes/polaroid/pkg/imaging"
)

const (
	// DefaultOutputSize is the canonical square capture size.
	DefaultOutputSize = 600
	// DefaultQuality is the JPEG quality for stored payloads.
	DefaultQuality = 70
)

// warm low-alpha tint applied over every capture, overlay-blended.
var tintColor = color.RGBA{R: 100, G: 50, B: 0, A: 26}

// Normalizer turns an arbitrary-aspect frame into the fixed-size
// square payload photos are stored as. Deterministic given identical
// source pixels and dimensions.
type Normalizer struct {
	size    int
	quality int
}

func NewNormalizer(size, quality int) *Normalizer {
	if size <= 0 {
		size = DefaultOutputSize
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Normalizer{size: size, quality: quality}
}

// Normalize center-crops the frame to a square, scales it to the
// output size, overlay-blends the warm tint and encodes the result as
// a JPEG data URI. Returns domain.ErrCaptureUnavailable when the frame
// has no usable pixels; no Photo must be created in that case.
func (n *Normalizer) Normalize(frame Frame) (string, error) {
	if frame.Image == nil {
		return "", fmt.Errorf("nil frame pixels: %w", domain.ErrCaptureUnavailable)
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return "", fmt.Errorf("zero-area source %dx%d: %w",
			frame.Width, frame.Height, domain.ErrCaptureUnavailable)
	}

	minDim := frame.Width
	if frame.Height < minDim {
		minDim = frame.Height
	}
	origin := frame.Image.Bounds().Min
	startX := origin.X + (frame.Width-minDim)/2
	startY := origin.Y + (frame.Height-minDim)/2
	crop := image.Rect(startX, startY, startX+minDim, startY+minDim)

	out := image.NewRGBA(image.Rect(0, 0, n.size, n.size))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), frame.Image, crop, draw.Src, nil)

	imaging.OverlayTint(out, tintColor)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: n.quality}); err != nil {
		return "", fmt.Errorf("encode capture: %w", err)
	}

	return imaging.EncodeDataURI("image/jpeg", buf.Bytes()), nil
}
