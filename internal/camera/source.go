package camera

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/zyfayes/polaroid/internal/domain"
)

// Frame is a single frame read from the video source at capture time.
type Frame struct {
	// Width and Height are the source's native dimensions.
	Width  int
	Height int
	// Image holds the frame pixels.
	Image image.Image
}

// Source is the video source collaborator. The core only reads the
// current frame at capture time; acquisition of the live stream is
// outside this boundary. Close must release the underlying resource
// and is safe to call on every exit path.
type Source interface {
	Frame(ctx context.Context) (Frame, error)
	Close() error
}

// SyntheticSource produces a deterministic test-pattern frame and
// stands in for a live camera. Successive frames shift the pattern so
// rapid captures produce distinct photos.
type SyntheticSource struct {
	width  int
	height int

	mu     sync.Mutex
	seq    int
	closed bool
}

func NewSyntheticSource(width, height int) (*SyntheticSource, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("camera: invalid source dimensions %dx%d", width, height)
	}
	return &SyntheticSource{width: width, height: height}, nil
}

func (s *SyntheticSource) Frame(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Frame{}, fmt.Errorf("camera: source closed: %w", domain.ErrCaptureUnavailable)
	}
	seq := s.seq
	s.seq++

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8((x + seq*16) * 255 / s.width),
				G: uint8(y * 255 / s.height),
				B: uint8(((x + y) / 2) * 255 / ((s.width + s.height) / 2)),
				A: 255,
			})
		}
	}

	return Frame{Width: s.width, Height: s.height, Image: img}, nil
}

func (s *SyntheticSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
