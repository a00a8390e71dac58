package composer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/zyfayes/polaroid/internal/domain"
	"github.com/zyfayes/polaroid/pkg/imaging"
)

func testPhoto(t *testing.T) domain.Photo {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, PhotoSize, PhotoSize))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 70}); err != nil {
		t.Fatal(err)
	}
	return domain.Photo{
		ID:         "test",
		ImageData:  imaging.EncodeDataURI("image/jpeg", buf.Bytes()),
		CapturedAt: time.Date(2026, time.March, 7, 15, 4, 0, 0, time.Local).UnixMilli(),
	}
}

func TestComposeDimensions(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}

	frame, err := c.Compose(testPhoto(t))
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	b := frame.Bounds()
	if b.Dx() != 680 || b.Dy() != 760 {
		t.Errorf("expected 680x760 composite, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestComposeMatIsWhite(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}

	frame, err := c.Compose(testPhoto(t))
	if err != nil {
		t.Fatal(err)
	}

	// A corner of the mat, well outside photo region and caption.
	r, g, b, _ := frame.At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("mat corner should be white, got %v", color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255})
	}
}

func TestComposeUndecodablePayload(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name    string
		payload string
	}{
		{"not a data URI", "garbage"},
		{"bad base64", "data:image/jpeg;base64,!!!!"},
		{"not an image", imaging.EncodeDataURI("image/jpeg", []byte("plain text"))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Compose(domain.Photo{ID: "x", ImageData: tc.payload})
			if !errors.Is(err, domain.ErrDecode) {
				t.Errorf("expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestCaptionFormat(t *testing.T) {
	for _, tc := range []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, time.March, 7, 15, 4, 0, 0, time.Local), "Mar 7, 3:04 PM"},
		{time.Date(2026, time.January, 31, 0, 5, 0, 0, time.Local), "Jan 31, 12:05 AM"},
		{time.Date(2026, time.December, 1, 12, 0, 0, 0, time.Local), "Dec 1, 12:00 PM"},
		{time.Date(2026, time.July, 4, 9, 9, 0, 0, time.Local), "Jul 4, 9:09 AM"},
	} {
		if got := Caption(tc.at.UnixMilli()); got != tc.want {
			t.Errorf("Caption(%v): expected %q, got %q", tc.at, tc.want, got)
		}
	}
}

func TestEncodePNGIsLossless(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}

	frame, err := c.Compose(testPhoto(t))
	if err != nil {
		t.Fatal(err)
	}

	data, err := EncodePNG(frame)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if decoded.Bounds() != frame.Bounds() {
		t.Errorf("PNG round trip changed bounds: %v vs %v", decoded.Bounds(), frame.Bounds())
	}
}
