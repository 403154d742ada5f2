package ico

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
)

// dibHeaderSize is the fixed BITMAPINFOHEADER length. ICO payloads store
// the DIB without the 14-byte BITMAPFILEHEADER, so pixel rows start right
// after this header.
const dibHeaderSize = 40

// DecodeRaw decodes a raw-bitmap ICO payload to RGBA. Only the 32-bit
// uncompressed BGRA form is supported; rows are stored bottom-up with no
// padding. 24-bit, paletted or compressed bitmaps are rejected rather than
// risking silently corrupt pixels.
func DecodeRaw(desc ImageDescriptor) (*image.RGBA, error) {
	data := desc.Data
	width, height := desc.Width, desc.Height

	if len(data) < dibHeaderSize {
		return nil, formatErrorf("raw bitmap too short for BITMAPINFOHEADER")
	}

	bitCount := binary.LittleEndian.Uint16(data[14:16])
	compression := binary.LittleEndian.Uint32(data[16:20])
	if bitCount != 32 {
		return nil, &DecodeError{Width: width, Height: height,
			Err: fmt.Errorf("unsupported bit depth %d, only 32-bit BGRA is supported", bitCount)}
	}
	if compression != 0 {
		return nil, &DecodeError{Width: width, Height: height,
			Err: errors.New("compressed bitmap not supported")}
	}

	pixels := data[dibHeaderSize:]
	if len(pixels) < width*height*4 {
		return nil, formatErrorf("raw bitmap pixel data is %d bytes, need %d for %dx%d", len(pixels), width*height*4, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcY := height - 1 - y // rows are stored bottom-up
		for x := 0; x < width; x++ {
			off := (srcY*width + x) * 4
			img.SetRGBA(x, y, color.RGBA{
				B: pixels[off],
				G: pixels[off+1],
				R: pixels[off+2],
				A: pixels[off+3],
			})
		}
	}
	return img, nil
}
