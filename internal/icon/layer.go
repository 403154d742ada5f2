package icon

// Kind identifies one of the three layers in the canonical stack.
type Kind int

const (
	BackFolder Kind = iota
	FrontFolder
	UserImage
)

// String returns the string representation of the layer kind.
func (k Kind) String() string {
	names := []string{"back-folder", "front-folder", "user-image"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// ParseKind parses the textual layer kind used in project files.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "back-folder":
		return BackFolder, nil
	case "front-folder":
		return FrontFolder, nil
	case "user-image":
		return UserImage, nil
	}
	return BackFolder, &ValidationError{Field: "layer kind", Value: s, Reason: "unknown layer kind"}
}

// Point is a position in the canonical 256x256 coordinate space.
type Point struct {
	X float64
	Y float64
}

// Opacity and scale bounds enforced before any mutation.
const (
	MinScale   = 0.1
	MaxScale   = 2.0
	MinOpacity = 0
	MaxOpacity = 100
)

// Layer is one visual element of the paint stack. Global attributes apply at
// every size unless a per-size override map carries an entry for the render
// target. Source holds encoded image bytes (PNG, JPEG, BMP, WebP or SVG);
// only UserImage layers carry sources, folder layers are drawn from the
// built-in artwork set.
type Layer struct {
	ID      string
	Kind    Kind
	Visible bool
	Opacity int // 0..100

	UseColor bool
	Color    *Color

	Source       []byte
	SourceBySize map[Size][]byte

	Position       Point
	PositionBySize map[Size]Point

	Scale       float64 // 0.1..2.0
	ScaleBySize map[Size]float64

	VisibleBySize map[Size]bool

	// Order is the paint order: lower values are painted first and end up
	// visually behind later layers.
	Order int
}

// Clone returns a deep copy of the layer. The override maps are copied so
// mutations of the clone never reach the original.
func (l *Layer) Clone() *Layer {
	c := *l
	if l.SourceBySize != nil {
		c.SourceBySize = make(map[Size][]byte, len(l.SourceBySize))
		for k, v := range l.SourceBySize {
			c.SourceBySize[k] = v
		}
	}
	if l.PositionBySize != nil {
		c.PositionBySize = make(map[Size]Point, len(l.PositionBySize))
		for k, v := range l.PositionBySize {
			c.PositionBySize[k] = v
		}
	}
	if l.ScaleBySize != nil {
		c.ScaleBySize = make(map[Size]float64, len(l.ScaleBySize))
		for k, v := range l.ScaleBySize {
			c.ScaleBySize[k] = v
		}
	}
	if l.VisibleBySize != nil {
		c.VisibleBySize = make(map[Size]bool, len(l.VisibleBySize))
		for k, v := range l.VisibleBySize {
			c.VisibleBySize[k] = v
		}
	}
	return &c
}

// Resolved is the effective per-size view of a layer: every per-size override
// applied, falling back to the layer's global attributes.
type Resolved struct {
	Visible  bool
	Position Point
	Scale    float64
	Source   []byte
}

// Resolve computes the effective attributes of l at the given size. It is a
// pure function: it never mutates the layer and is safe to call once per
// layer per size per render.
func Resolve(l *Layer, size Size) Resolved {
	r := Resolved{
		Visible:  l.Visible,
		Position: l.Position,
		Scale:    l.Scale,
	}
	if v, ok := l.VisibleBySize[size]; ok {
		r.Visible = v
	}
	if p, ok := l.PositionBySize[size]; ok {
		r.Position = p
	}
	if s, ok := l.ScaleBySize[size]; ok {
		r.Scale = s
	}
	if l.Kind == UserImage {
		r.Source = l.Source
		if src, ok := l.SourceBySize[size]; ok {
			r.Source = src
		}
	}
	return r
}

// SetOpacity sets the global opacity after range checking.
func (l *Layer) SetOpacity(v int) error {
	if v < MinOpacity || v > MaxOpacity {
		return &ValidationError{Field: "opacity", Value: v, Reason: "must be within [0,100]"}
	}
	l.Opacity = v
	return nil
}

// SetScale sets the global scale after range checking.
func (l *Layer) SetScale(v float64) error {
	if v < MinScale || v > MaxScale {
		return &ValidationError{Field: "scale", Value: v, Reason: "must be within [0.1,2.0]"}
	}
	l.Scale = v
	return nil
}

// SetScaleAt sets a per-size scale override.
func (l *Layer) SetScaleAt(size Size, v float64) error {
	if err := CheckSize(size); err != nil {
		return err
	}
	if v < MinScale || v > MaxScale {
		return &ValidationError{Field: "scale", Value: v, Reason: "must be within [0.1,2.0]"}
	}
	if l.ScaleBySize == nil {
		l.ScaleBySize = make(map[Size]float64)
	}
	l.ScaleBySize[size] = v
	return nil
}

// SetPosition sets the global position in 256-space.
func (l *Layer) SetPosition(p Point) {
	l.Position = p
}

// SetPositionAt sets a per-size position override.
func (l *Layer) SetPositionAt(size Size, p Point) error {
	if err := CheckSize(size); err != nil {
		return err
	}
	if l.PositionBySize == nil {
		l.PositionBySize = make(map[Size]Point)
	}
	l.PositionBySize[size] = p
	return nil
}

// SetVisibleAt sets a per-size visibility override.
func (l *Layer) SetVisibleAt(size Size, v bool) error {
	if err := CheckSize(size); err != nil {
		return err
	}
	if l.VisibleBySize == nil {
		l.VisibleBySize = make(map[Size]bool)
	}
	l.VisibleBySize[size] = v
	return nil
}

// SetSource replaces the global image source and clears any per-size
// overrides. Used when the user uploads a single plain image.
func (l *Layer) SetSource(data []byte) {
	l.Source = data
	l.SourceBySize = nil
}

// SetSourceBySize replaces the per-size source map in bulk and clears the
// global source. Used by the ICO and SVG import paths.
func (l *Layer) SetSourceBySize(m map[Size][]byte) error {
	for size := range m {
		if err := CheckSize(size); err != nil {
			return err
		}
	}
	l.SourceBySize = m
	l.Source = nil
	return nil
}
