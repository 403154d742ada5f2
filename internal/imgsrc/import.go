package imgsrc

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"

	"github.com/fogleman/gg"

	"icoforge/internal/ico"
	"icoforge/internal/icon"
)

// ImportICO extracts per-size image sources from an ICO byte buffer,
// one per canonical size, ready for bulk assignment to a layer's source
// map. A malformed container fails the whole import; an individual
// embedded image that will not decode is replaced with a generated
// placeholder so the remaining sizes still import.
func ImportICO(data []byte) (map[icon.Size][]byte, error) {
	images, err := ico.Parse(data)
	if err != nil {
		return nil, err
	}

	out := make(map[icon.Size][]byte, len(icon.Sizes))
	for _, size := range icon.Sizes {
		desc, ok := ico.BestMatch(images, int(size))
		if !ok {
			continue
		}

		if desc.Format == ico.FormatPNG {
			// Already a PNG payload; reuse the bytes verbatim.
			out[size] = desc.Data
			continue
		}

		img, err := ico.DecodeRaw(desc)
		if err != nil {
			slog.Warn("Embedded image failed to decode, substituting placeholder",
				"size", int(size), "error", err)
			out[size] = placeholderPNG(int(size))
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode %dx%d import result: %w", size, size, err)
		}
		out[size] = buf.Bytes()
	}
	return out, nil
}

// ImportSVG rasterizes an SVG document at every canonical size.
func ImportSVG(data []byte) (map[icon.Size][]byte, error) {
	out := make(map[icon.Size][]byte, len(icon.Sizes))
	for _, size := range icon.Sizes {
		img, err := RasterizeSVG(data, int(size))
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode %dx%d rasterization: %w", size, size, err)
		}
		out[size] = buf.Bytes()
	}
	return out, nil
}

// ImportDataURIs re-encodes an import result as PNG data URIs keyed by
// size string, the shape editor frontends assign to imageSourceBySize.
func ImportDataURIs(bySize map[icon.Size][]byte) map[string]string {
	out := make(map[string]string, len(bySize))
	for size, data := range bySize {
		out[fmt.Sprintf("%d", int(size))] = EncodeDataURI(data)
	}
	return out
}

// placeholderPNG renders the solid fallback glyph used when an embedded
// image cannot be decoded: a muted rounded square on transparency.
func placeholderPNG(size int) []byte {
	dc := gg.NewContext(size, size)
	inset := float64(size) / 8
	radius := float64(size) / 10
	dc.SetRGB(0.62, 0.62, 0.66)
	dc.DrawRoundedRectangle(inset, inset, float64(size)-2*inset, float64(size)-2*inset, radius)
	dc.Fill()

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil
	}
	return buf.Bytes()
}
