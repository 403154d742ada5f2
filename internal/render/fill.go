package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"icoforge/internal/icon"
)

// FillThroughAlpha tints the pixels of img inside rect with the fill color,
// writing only where the image already has opaque or semi-opaque pixels.
// The alpha channel is left bit-identical, so the fill never bleeds outside
// the original silhouette. Gradients span rect: linear runs diagonally from
// its top-left to its bottom-right corner, radial is centered in it.
func FillThroughAlpha(img *image.RGBA, fill icon.Color, rect image.Rectangle) {
	pattern := patternFor(fill, rect)
	bounds := img.Bounds().Intersect(rect)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			a := img.Pix[i+3]
			if a == 0 {
				continue
			}
			c := color.RGBAModel.Convert(pattern.ColorAt(x-rect.Min.X, y-rect.Min.Y)).(color.RGBA)
			// Stored premultiplied against the preserved alpha.
			img.Pix[i+0] = uint8((uint32(c.R)*uint32(a) + 127) / 255)
			img.Pix[i+1] = uint8((uint32(c.G)*uint32(a) + 127) / 255)
			img.Pix[i+2] = uint8((uint32(c.B)*uint32(a) + 127) / 255)
		}
	}
}

// patternFor builds the fill pattern in rect-local coordinates. The
// gradient angle field is deliberately not consulted; linear fills are
// always corner-to-corner.
func patternFor(fill icon.Color, rect image.Rectangle) gg.Pattern {
	w := float64(rect.Dx())
	h := float64(rect.Dy())

	switch fill.Kind {
	case icon.FillLinear:
		grad := gg.NewLinearGradient(0, 0, w, h)
		grad.AddColorStop(0, fill.PrimaryRGBA())
		grad.AddColorStop(1, fill.SecondaryRGBA())
		return grad
	case icon.FillRadial:
		radius := math.Hypot(w, h) / 2
		grad := gg.NewRadialGradient(w/2, h/2, 0, w/2, h/2, radius)
		grad.AddColorStop(0, fill.PrimaryRGBA())
		grad.AddColorStop(1, fill.SecondaryRGBA())
		return grad
	default:
		return gg.NewSolidPattern(fill.PrimaryRGBA())
	}
}
