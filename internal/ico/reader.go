package ico

import (
	"bytes"
	"encoding/binary"
)

// ImageFormat classifies an embedded image payload.
type ImageFormat int

const (
	// FormatPNG marks a payload that begins with the PNG signature.
	FormatPNG ImageFormat = iota
	// FormatRawBitmap marks a headerless DIB payload (BITMAPINFOHEADER
	// followed by bottom-up BGRA pixel rows).
	FormatRawBitmap
)

// String returns the string representation of the payload format.
func (f ImageFormat) String() string {
	if f == FormatPNG {
		return "PNG"
	}
	return "RawBitmap"
}

// magicPNG is the leading 4 bytes of the PNG signature; matching this
// prefix is sufficient to classify an ICO payload.
var magicPNG = []byte{0x89, 0x50, 0x4E, 0x47}

// ImageDescriptor is one embedded sub-image extracted from an ICO
// container: its declared dimensions, its payload bytes and the payload
// classification.
type ImageDescriptor struct {
	Width  int
	Height int
	Data   []byte
	Format ImageFormat
}

// Area returns the total pixel count, used for best-match ranking.
func (d ImageDescriptor) Area() int {
	return d.Width * d.Height
}

const (
	headerSize = 6
	entrySize  = 16
)

// icoEntry is one 16-byte directory entry, little-endian throughout.
type icoEntry struct {
	Width      uint8  // 0 means 256
	Height     uint8  // 0 means 256
	ColorCount uint8  // ignored
	Reserved   uint8  // ignored
	Planes     uint16 // ignored
	BitCount   uint16 // ignored
	Size       uint32
	Offset     uint32
}

// actualWidth returns the declared width, converting the 0 sentinel to 256.
func (e *icoEntry) actualWidth() int {
	if e.Width == 0 {
		return 256
	}
	return int(e.Width)
}

// actualHeight returns the declared height, converting the 0 sentinel to 256.
func (e *icoEntry) actualHeight() int {
	if e.Height == 0 {
		return 256
	}
	return int(e.Height)
}

// Parse reads an ICO container and returns a descriptor per embedded image.
// The whole parse fails with a FormatError on any structural defect; no
// partial results are returned.
func Parse(data []byte) ([]ImageDescriptor, error) {
	if len(data) < headerSize {
		return nil, formatErrorf("too short for header")
	}

	reserved := binary.LittleEndian.Uint16(data[0:2])
	fileType := binary.LittleEndian.Uint16(data[2:4])
	count := binary.LittleEndian.Uint16(data[4:6])

	if reserved != 0 {
		return nil, formatErrorf("reserved field must be 0, got %d", reserved)
	}
	if fileType != 1 {
		return nil, formatErrorf("type must be 1 for ICO, got %d", fileType)
	}
	if count == 0 {
		return nil, formatErrorf("no images in file")
	}
	if count > 255 {
		return nil, formatErrorf("image count %d exceeds 255", count)
	}

	directorySize := headerSize + int(count)*entrySize
	if len(data) < directorySize {
		return nil, formatErrorf("too short for %d directory entries", count)
	}

	images := make([]ImageDescriptor, 0, count)
	for i := 0; i < int(count); i++ {
		offset := headerSize + i*entrySize
		entry := parseEntry(data[offset : offset+entrySize])

		end := int(entry.Offset) + int(entry.Size)
		if end > len(data) {
			return nil, formatErrorf("entry %d payload [%d:%d] exceeds buffer length %d", i, entry.Offset, end, len(data))
		}

		payload := data[entry.Offset:end]
		format := FormatRawBitmap
		if bytes.HasPrefix(payload, magicPNG) {
			format = FormatPNG
		}

		images = append(images, ImageDescriptor{
			Width:  entry.actualWidth(),
			Height: entry.actualHeight(),
			Data:   payload,
			Format: format,
		})
	}

	return images, nil
}

// parseEntry parses a 16-byte directory entry.
func parseEntry(data []byte) *icoEntry {
	return &icoEntry{
		Width:      data[0],
		Height:     data[1],
		ColorCount: data[2],
		Reserved:   data[3],
		Planes:     binary.LittleEndian.Uint16(data[4:6]),
		BitCount:   binary.LittleEndian.Uint16(data[6:8]),
		Size:       binary.LittleEndian.Uint32(data[8:12]),
		Offset:     binary.LittleEndian.Uint32(data[12:16]),
	}
}

// BestMatch selects the embedded image to use for a target size: an exact
// square match wins immediately; otherwise the smallest image that covers
// the target in both dimensions; otherwise the largest image available.
// Every import consumer depends on this ranking.
func BestMatch(images []ImageDescriptor, target int) (ImageDescriptor, bool) {
	if len(images) == 0 {
		return ImageDescriptor{}, false
	}

	var covering *ImageDescriptor
	var largest *ImageDescriptor
	for i := range images {
		img := &images[i]
		if img.Width == target && img.Height == target {
			return *img, true
		}
		if img.Width >= target && img.Height >= target {
			if covering == nil || img.Area() < covering.Area() {
				covering = img
			}
		}
		if largest == nil || img.Area() > largest.Area() {
			largest = img
		}
	}
	if covering != nil {
		return *covering, true
	}
	return *largest, true
}
