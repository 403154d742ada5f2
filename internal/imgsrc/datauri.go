package imgsrc

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MIME types for the data URI boundary with editor frontends.
var mimeByFormat = map[Format]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatWebP: "image/webp",
	FormatBMP:  "image/bmp",
	FormatICO:  "image/x-icon",
	FormatSVG:  "image/svg+xml",
}

// EncodeDataURI wraps image bytes as a base64 data URI, picking the MIME
// type from the detected format.
func EncodeDataURI(data []byte) string {
	mime, ok := mimeByFormat[DetectFormat(data)]
	if !ok {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI extracts the raw bytes from a base64 data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("not a data URI")
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI: missing comma")
	}
	meta := uri[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URI encoding: %q", meta)
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return data, nil
}
