// Package assets holds the built-in folder artwork. The silhouettes are
// drawn once at startup at every canonical size and shared read-only
// across all renders.
package assets

import (
	"image"

	"github.com/fogleman/gg"

	"icoforge/internal/icon"
)

// Cache is the immutable folder-artwork set. Construct it once with
// NewCache and share by reference; it is never mutated afterwards.
type Cache struct {
	sizes  []icon.Size
	images map[icon.Kind]map[icon.Size]*image.RGBA
}

// NewCache pre-renders the back and front folder silhouettes at all
// canonical sizes.
func NewCache() *Cache {
	c := &Cache{
		sizes: icon.Sizes,
		images: map[icon.Kind]map[icon.Size]*image.RGBA{
			icon.BackFolder:  make(map[icon.Size]*image.RGBA),
			icon.FrontFolder: make(map[icon.Size]*image.RGBA),
		},
	}
	for _, size := range c.sizes {
		c.images[icon.BackFolder][size] = drawBackFolder(int(size))
		c.images[icon.FrontFolder][size] = drawFrontFolder(int(size))
	}
	return c
}

// Select returns the artwork for the given folder kind whose registered
// size is closest to the requested one (minimum absolute difference, ties
// broken by registration order). Canonical requests always hit an exact
// match; the closest-size fallback only matters for non-canonical callers.
func (c *Cache) Select(kind icon.Kind, size icon.Size) *image.RGBA {
	bySize, ok := c.images[kind]
	if !ok {
		return nil
	}
	var best icon.Size
	bestDiff := -1
	for _, registered := range c.sizes {
		diff := int(registered) - int(size)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = registered
			bestDiff = diff
		}
	}
	return bySize[best]
}

// Artwork geometry in the canonical 256 coordinate space. The base fill is
// a neutral gray; layers recolor it through the alpha channel.
const (
	baseGray  = 0.85
	shadeGray = 0.78
)

// drawBackFolder renders the rear folder panel with its tab.
func drawBackFolder(size int) *image.RGBA {
	dc := gg.NewContext(size, size)
	f := float64(size) / icon.CanvasSize
	dc.Scale(f, f)

	dc.SetRGB(shadeGray, shadeGray, shadeGray)
	// Tab
	dc.DrawRoundedRectangle(20, 44, 100, 44, 12)
	dc.Fill()
	// Body
	dc.DrawRoundedRectangle(16, 68, 224, 152, 14)
	dc.Fill()

	return dc.Image().(*image.RGBA)
}

// drawFrontFolder renders the front folder panel painted over the rear one.
func drawFrontFolder(size int) *image.RGBA {
	dc := gg.NewContext(size, size)
	f := float64(size) / icon.CanvasSize
	dc.Scale(f, f)

	dc.SetRGB(baseGray, baseGray, baseGray)
	dc.DrawRoundedRectangle(16, 96, 224, 124, 14)
	dc.Fill()

	return dc.Image().(*image.RGBA)
}
