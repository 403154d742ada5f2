// Package render rasterizes a layer stack into square RGBA buffers at the
// canonical icon sizes.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"

	"icoforge/internal/assets"
	"icoforge/internal/icon"
	"icoforge/internal/imgsrc"
)

// RenderError reports a layer whose image source was missing or would not
// decode. The layer contributes nothing to the frame; rendering continues.
type RenderError struct {
	LayerID string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("layer %s skipped: %v", e.LayerID, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Engine composites layer stacks. It is an immutable value: the artwork
// cache and decoder are fixed at construction and shared read-only across
// concurrent renders.
type Engine struct {
	assets *assets.Cache
	dec    imgsrc.Decoder
}

// NewEngine builds an engine around a pre-populated artwork cache and a
// source decoder.
func NewEngine(cache *assets.Cache, dec imgsrc.Decoder) *Engine {
	return &Engine{assets: cache, dec: dec}
}

// Render composites the stack into a size x size RGBA buffer. Layers paint
// in ascending order, each resolved against its per-size overrides. A layer
// with a missing or undecodable source is skipped with a logged cause; a
// single bad layer never blanks the icon.
func (e *Engine) Render(ctx context.Context, stack *icon.Stack, size icon.Size) (*image.RGBA, error) {
	if err := icon.CheckSize(size); err != nil {
		return nil, err
	}

	side := int(size)
	dst := image.NewRGBA(image.Rect(0, 0, side, side))

	for _, layer := range stack.Ordered() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resolved := icon.Resolve(layer, size)
		if !resolved.Visible || layer.Opacity == 0 {
			continue
		}

		canvas, err := e.paintLayer(ctx, layer, resolved, size)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			slog.Warn("Layer skipped during render",
				"layer", layer.ID, "size", side, "error", err)
			continue
		}
		if canvas == nil {
			continue
		}

		compositeWithOpacity(dst, canvas, layer.Opacity)
	}

	return dst, nil
}

// paintLayer renders one layer onto its own isolated canvas. A nil canvas
// with nil error means the layer has nothing to contribute (empty user
// image slot).
func (e *Engine) paintLayer(ctx context.Context, layer *icon.Layer, resolved icon.Resolved, size icon.Size) (*image.RGBA, error) {
	side := int(size)
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	full := canvas.Bounds()

	switch layer.Kind {
	case icon.BackFolder, icon.FrontFolder:
		artwork := e.assets.Select(layer.Kind, size)
		if artwork == nil {
			return nil, &RenderError{LayerID: layer.ID, Err: fmt.Errorf("no artwork registered for %s", layer.Kind)}
		}
		if artwork.Bounds().Dx() == side {
			draw.Draw(canvas, full, artwork, image.Point{}, draw.Over)
		} else {
			xdraw.CatmullRom.Scale(canvas, full, artwork, artwork.Bounds(), xdraw.Over, nil)
		}
		if layer.UseColor && layer.Color != nil {
			FillThroughAlpha(canvas, *layer.Color, full)
		}

	case icon.UserImage:
		if len(resolved.Source) == 0 {
			return nil, nil
		}
		img, err := e.dec.Decode(ctx, resolved.Source)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			return nil, &RenderError{LayerID: layer.ID, Err: err}
		}

		// Map the 256-space position down to the render size; the draw
		// rectangle is centered on the resolved position.
		scaleFactor := float64(side) / icon.CanvasSize
		drawSize := float64(side) * resolved.Scale
		x0 := resolved.Position.X*scaleFactor - drawSize/2
		y0 := resolved.Position.Y*scaleFactor - drawSize/2
		rect := image.Rect(
			int(math.Round(x0)),
			int(math.Round(y0)),
			int(math.Round(x0+drawSize)),
			int(math.Round(y0+drawSize)),
		)
		if rect.Empty() {
			return nil, nil
		}

		xdraw.CatmullRom.Scale(canvas, rect, img, img.Bounds(), xdraw.Over, nil)
		if layer.UseColor && layer.Color != nil {
			FillThroughAlpha(canvas, *layer.Color, rect)
		}
	}

	return canvas, nil
}

// compositeWithOpacity draws a finished layer canvas onto the target,
// attenuated by the layer opacity percentage.
func compositeWithOpacity(dst, canvas *image.RGBA, opacity int) {
	if opacity >= icon.MaxOpacity {
		draw.Draw(dst, dst.Bounds(), canvas, image.Point{}, draw.Over)
		return
	}
	alpha := uint8(opacity * 255 / 100)
	mask := image.NewUniform(color.Alpha{A: alpha})
	draw.DrawMask(dst, dst.Bounds(), canvas, image.Point{}, mask, image.Point{}, draw.Over)
}
