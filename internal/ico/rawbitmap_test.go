package ico

import (
	"encoding/binary"
	"errors"
	"image/color"
	"testing"
)

// buildRawBitmap assembles a headerless DIB payload: a 40-byte
// BITMAPINFOHEADER followed by bottom-up BGRA rows.
func buildRawBitmap(width, height int, bitCount uint16, compression uint32, pixels []byte) []byte {
	data := make([]byte, dibHeaderSize+len(pixels))
	binary.LittleEndian.PutUint32(data[0:4], dibHeaderSize)
	binary.LittleEndian.PutUint32(data[4:8], uint32(width))
	binary.LittleEndian.PutUint32(data[8:12], uint32(height*2)) // doubled for the AND mask
	binary.LittleEndian.PutUint16(data[12:14], 1)
	binary.LittleEndian.PutUint16(data[14:16], bitCount)
	binary.LittleEndian.PutUint32(data[16:20], compression)
	copy(data[dibHeaderSize:], pixels)
	return data
}

// TestDecodeRaw_BottomUpBGRA tests that a known pixel written at a source
// row lands at the mirrored output row with channels reordered to RGBA.
func TestDecodeRaw_BottomUpBGRA(t *testing.T) {
	const width, height = 4, 3

	pixels := make([]byte, width*height*4)
	// Source row 0 (the visually bottom row), column 2:
	// BGRA bytes for an orange-ish color.
	off := (0*width + 2) * 4
	pixels[off+0] = 0x10 // B
	pixels[off+1] = 0x80 // G
	pixels[off+2] = 0xFF // R
	pixels[off+3] = 0xC0 // A

	desc := ImageDescriptor{
		Width:  width,
		Height: height,
		Data:   buildRawBitmap(width, height, 32, 0, pixels),
		Format: FormatRawBitmap,
	}

	img, err := DecodeRaw(desc)
	if err != nil {
		t.Fatalf("DecodeRaw failed: %v", err)
	}

	// Source row 0 mirrors to output row height-1.
	want := color.RGBA{R: 0xFF, G: 0x80, B: 0x10, A: 0xC0}
	if got := img.RGBAAt(2, height-1); got != want {
		t.Errorf("pixel at (2,%d) = %+v, want %+v", height-1, got, want)
	}
	if got := img.RGBAAt(2, 0); got != (color.RGBA{}) {
		t.Errorf("pixel at (2,0) = %+v, want transparent", got)
	}
}

// TestDecodeRaw_ShortPayload tests the undersized pixel buffer failure.
func TestDecodeRaw_ShortPayload(t *testing.T) {
	desc := ImageDescriptor{
		Width:  8,
		Height: 8,
		Data:   buildRawBitmap(8, 8, 32, 0, make([]byte, 8*8*4-1)),
	}
	_, err := DecodeRaw(desc)
	if err == nil {
		t.Fatal("expected error for short pixel data")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Errorf("error type = %T, want *FormatError", err)
	}
}

// TestDecodeRaw_TruncatedHeader tests a payload shorter than the header.
func TestDecodeRaw_TruncatedHeader(t *testing.T) {
	desc := ImageDescriptor{Width: 8, Height: 8, Data: make([]byte, 20)}
	if _, err := DecodeRaw(desc); err == nil {
		t.Error("expected error for truncated header")
	}
}

// TestDecodeRaw_UnsupportedForms tests that 24-bit, paletted and
// compressed bitmaps are rejected instead of producing corrupt pixels.
func TestDecodeRaw_UnsupportedForms(t *testing.T) {
	tests := []struct {
		name        string
		bitCount    uint16
		compression uint32
	}{
		{"24-bit", 24, 0},
		{"8-bit paletted", 8, 0},
		{"1-bit", 1, 0},
		{"compressed", 32, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := ImageDescriptor{
				Width:  4,
				Height: 4,
				Data:   buildRawBitmap(4, 4, tt.bitCount, tt.compression, make([]byte, 4*4*4)),
			}
			_, err := DecodeRaw(desc)
			if err == nil {
				t.Fatal("expected error for unsupported bitmap form")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Errorf("error type = %T, want *DecodeError", err)
			}
		})
	}
}
