package imaging

import (
	"image"
	"image/color"
)

// OverlayTint blends col over every pixel of img using the "overlay"
// blend mode, weighted by the tint's alpha. img is modified in place.
func OverlayTint(img *image.RGBA, col color.RGBA) {
	OverlayRegion(img, img.Bounds(), func(x, y int) color.RGBA { return col })
}

// OverlayGradient applies a diagonal light-to-dark overlay gradient
// across rect: the blend color runs from white at the top-left corner
// to black at the bottom-right, with constant alpha.
func OverlayGradient(img *image.RGBA, rect image.Rectangle, alpha uint8) {
	w := rect.Dx()
	h := rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	span := float64(w + h)
	OverlayRegion(img, rect, func(x, y int) color.RGBA {
		t := float64(x-rect.Min.X+y-rect.Min.Y) / span
		v := uint8(255 * (1 - t))
		return color.RGBA{R: v, G: v, B: v, A: alpha}
	})
}

// OverlayRegion blends the color returned by blend over each pixel of
// rect using the overlay formula: where the base channel is below 50%
// the result darkens (2·b·o), above it lightens (1−2·(1−b)·(1−o)).
// The blend color's alpha controls how strongly the result replaces
// the base.
func OverlayRegion(img *image.RGBA, rect image.Rectangle, blend func(x, y int) color.RGBA) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			i := img.PixOffset(x, y)
			o := blend(x, y)
			a := float64(o.A) / 255
			img.Pix[i+0] = mixOverlay(img.Pix[i+0], o.R, a)
			img.Pix[i+1] = mixOverlay(img.Pix[i+1], o.G, a)
			img.Pix[i+2] = mixOverlay(img.Pix[i+2], o.B, a)
		}
	}
}

func mixOverlay(base, over uint8, alpha float64) uint8 {
	b := float64(base) / 255
	o := float64(over) / 255

	var r float64
	if b < 0.5 {
		r = 2 * b * o
	} else {
		r = 1 - 2*(1-b)*(1-o)
	}

	out := (b*(1-alpha) + r*alpha) * 255
	if out > 255 {
		out = 255
	}
	return uint8(out + 0.5)
}
