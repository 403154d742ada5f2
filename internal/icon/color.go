package icon

import (
	"fmt"
	"image/color"
)

// FillKind selects how a layer fill is painted.
type FillKind int

const (
	FillSolid FillKind = iota
	FillLinear
	FillRadial
)

// String returns the string representation of the fill kind.
func (k FillKind) String() string {
	names := []string{"solid", "linear", "radial"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// ParseFillKind parses the textual form used in project files.
func ParseFillKind(s string) (FillKind, error) {
	switch s {
	case "solid", "":
		return FillSolid, nil
	case "linear":
		return FillLinear, nil
	case "radial":
		return FillRadial, nil
	}
	return FillSolid, &ValidationError{Field: "fill kind", Value: s, Reason: "must be solid, linear or radial"}
}

// Color is a layer fill: a solid color or a two-stop gradient.
// For FillSolid only Primary is meaningful. Gradients run from Primary to
// Secondary; Secondary defaults to black when empty. AngleDegrees is carried
// for gradients but is not consulted by the renderer: a linear fill always
// runs corner-to-corner diagonally.
type Color struct {
	Kind         FillKind
	Primary      string // #RRGGBB or #RGB
	Secondary    string // optional, gradient end stop
	AngleDegrees float64
}

// Validate checks that the hex fields are well formed.
func (c Color) Validate() error {
	if _, err := ParseHex(c.Primary); err != nil {
		return err
	}
	if c.Secondary != "" {
		if _, err := ParseHex(c.Secondary); err != nil {
			return err
		}
	}
	return nil
}

// PrimaryRGBA returns the parsed primary stop.
func (c Color) PrimaryRGBA() color.RGBA {
	rgba, err := ParseHex(c.Primary)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return rgba
}

// SecondaryRGBA returns the parsed secondary stop, defaulting to black.
func (c Color) SecondaryRGBA() color.RGBA {
	if c.Secondary == "" {
		return color.RGBA{A: 0xff}
	}
	rgba, err := ParseHex(c.Secondary)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return rgba
}

// ParseHex parses a #RRGGBB or #RGB string into an opaque RGBA color.
func ParseHex(s string) (color.RGBA, error) {
	bad := func() (color.RGBA, error) {
		return color.RGBA{}, &ValidationError{Field: "color", Value: s, Reason: "expected #RRGGBB or #RGB"}
	}
	if len(s) == 0 || s[0] != '#' {
		return bad()
	}
	digits := s[1:]
	switch len(digits) {
	case 3:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			n, ok := hexNibble(digits[i])
			if !ok {
				return bad()
			}
			v[i] = n<<4 | n
		}
		return color.RGBA{R: v[0], G: v[1], B: v[2], A: 0xff}, nil
	case 6:
		var v [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(digits[i*2])
			lo, ok2 := hexNibble(digits[i*2+1])
			if !ok1 || !ok2 {
				return bad()
			}
			v[i] = hi<<4 | lo
		}
		return color.RGBA{R: v[0], G: v[1], B: v[2], A: 0xff}, nil
	}
	return bad()
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// FormatHex renders an RGBA color back to #RRGGBB form, ignoring alpha.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
