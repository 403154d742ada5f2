// Package imgsrc turns user-supplied image bytes into pixels. It detects
// formats by magic bytes, decodes every format the editor accepts and
// implements the ICO and SVG bulk import paths that populate a layer's
// per-size source map.
package imgsrc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"icoforge/internal/ico"
)

// Decoder is the single suspension point the renderer depends on for
// turning a layer's encoded source bytes into pixels. The renderer stays
// agnostic to how decoding happens.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (image.Image, error)
}

// StdDecoder decodes all supported source formats in-process.
type StdDecoder struct{}

// Decode sniffs the format and dispatches to the matching codec. For ICO
// sources the largest embedded image is decoded. SVG sources are
// rasterized at the canonical 256 canvas size.
func (StdDecoder) Decode(ctx context.Context, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image source")
	}

	switch DetectFormat(data) {
	case FormatPNG:
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode PNG: %w", err)
		}
		return img, nil
	case FormatJPEG:
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode JPEG: %w", err)
		}
		return img, nil
	case FormatBMP:
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode BMP: %w", err)
		}
		return img, nil
	case FormatWebP:
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode WebP: %w", err)
		}
		return img, nil
	case FormatICO:
		return decodeLargestICO(data)
	case FormatSVG:
		return RasterizeSVG(data, 256)
	}
	return nil, fmt.Errorf("unrecognized image format")
}

// decodeLargestICO extracts and decodes the highest-resolution embedded
// image of an ICO container.
func decodeLargestICO(data []byte) (image.Image, error) {
	images, err := ico.Parse(data)
	if err != nil {
		return nil, err
	}

	var best *ico.ImageDescriptor
	for i := range images {
		if best == nil || images[i].Area() > best.Area() {
			best = &images[i]
		}
	}
	return decodeDescriptor(*best)
}

// decodeDescriptor decodes one embedded ICO image to pixels.
func decodeDescriptor(desc ico.ImageDescriptor) (image.Image, error) {
	if desc.Format == ico.FormatPNG {
		img, err := png.Decode(bytes.NewReader(desc.Data))
		if err != nil {
			return nil, &ico.DecodeError{Width: desc.Width, Height: desc.Height, Err: err}
		}
		return img, nil
	}
	return ico.DecodeRaw(desc)
}
