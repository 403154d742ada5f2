package icon

import "strconv"

// Size is one of the canonical Windows icon raster dimensions.
type Size int

// Sizes lists the canonical raster sizes every icon is rendered at,
// in ascending order. No other sizes are valid render or export targets.
var Sizes = []Size{16, 20, 24, 32, 40, 64, 256}

// CanvasSize is the side of the canonical coordinate space that layer
// positions and scales are expressed in. Renders at smaller sizes map
// positions down proportionally.
const CanvasSize = 256

// Valid reports whether s is one of the canonical sizes.
func (s Size) Valid() bool {
	for _, c := range Sizes {
		if s == c {
			return true
		}
	}
	return false
}

// ParseSize parses a decimal size string, such as a per-size map key,
// and validates it against the canonical set.
func ParseSize(s string) (Size, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "size", Value: s, Reason: "not an integer"}
	}
	size := Size(n)
	if err := CheckSize(size); err != nil {
		return 0, err
	}
	return size, nil
}

// CheckSize returns a ValidationError if s is not a canonical size.
func CheckSize(s Size) error {
	if !s.Valid() {
		return &ValidationError{Field: "size", Value: int(s), Reason: "not a canonical icon size"}
	}
	return nil
}
