package imgsrc

import "bytes"

// Format represents supported image source formats.
type Format int

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatWebP
	FormatBMP
	FormatICO
	FormatSVG
)

// String returns the string representation of the image format.
func (f Format) String() string {
	names := []string{"Unknown", "PNG", "JPEG", "WebP", "BMP", "ICO", "SVG"}
	if int(f) < len(names) {
		return names[f]
	}
	return "Unknown"
}

// Magic bytes for format detection
var (
	magicPNG  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A} // PNG signature
	magicJPEG = []byte{0xFF, 0xD8, 0xFF}                               // JPEG SOI marker
	magicBMP  = []byte{0x42, 0x4D}                                     // "BM"
	magicICO  = []byte{0x00, 0x00, 0x01, 0x00}                         // ICO header
	magicRIFF = []byte{0x52, 0x49, 0x46, 0x46}                         // "RIFF" for WebP
	magicWEBP = []byte{0x57, 0x45, 0x42, 0x50}                         // "WEBP" at offset 8
)

// DetectFormat detects the image format by examining the data itself.
// File extensions are never consulted.
func DetectFormat(data []byte) Format {
	if len(data) < 2 {
		return FormatUnknown
	}

	if len(data) >= 8 && bytes.HasPrefix(data, magicPNG) {
		return FormatPNG
	}

	if len(data) >= 3 && bytes.HasPrefix(data, magicJPEG) {
		return FormatJPEG
	}

	// WebP files start with "RIFF", 4 bytes of file size, then "WEBP"
	if len(data) >= 12 && bytes.HasPrefix(data, magicRIFF) && bytes.Equal(data[8:12], magicWEBP) {
		return FormatWebP
	}

	if len(data) >= 4 && bytes.HasPrefix(data, magicICO) {
		return FormatICO
	}

	if bytes.HasPrefix(data, magicBMP) {
		return FormatBMP
	}

	if looksLikeSVG(data) {
		return FormatSVG
	}

	return FormatUnknown
}

// looksLikeSVG sniffs an SVG document: optional whitespace/BOM/XML prolog
// followed by an <svg or <!DOCTYPE svg tag within the first kilobyte.
func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = bytes.TrimPrefix(head, []byte{0xEF, 0xBB, 0xBF})
	head = bytes.TrimLeft(head, " \t\r\n")
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	return bytes.Contains(head, []byte("<svg")) || bytes.Contains(head, []byte("<!DOCTYPE svg"))
}
