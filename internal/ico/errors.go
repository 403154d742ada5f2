package ico

import "fmt"

// FormatError reports a malformed ICO container: bad header, truncated
// directory, out-of-bounds payload offsets or an undersized raw bitmap.
// Structural corruption invalidates the whole directory, so callers abort
// the operation that hit it.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid ICO file: " + e.Reason
}

func formatErrorf(format string, args ...any) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// DecodeError reports a single embedded image that failed to decode to
// pixels after the container itself parsed successfully. Callers recover
// locally: the affected size is skipped or replaced with a placeholder.
type DecodeError struct {
	Width  int
	Height int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %dx%d embedded image: %v", e.Width, e.Height, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
