package icon

import "sort"

// Default fill colors for a freshly created stack.
const (
	defaultBackColor  = "#E8A33D"
	defaultFrontColor = "#F5C543"
)

// Stack is the canonical three-layer paint stack: exactly one layer per kind,
// with distinct order values defining a total paint order. Layers are mutated
// in place over a session; none is ever removed.
type Stack struct {
	Layers []*Layer
}

// NewStack creates the default stack: colored back and front folder layers
// and an empty, centered, unscaled user image layer on top.
func NewStack() *Stack {
	center := Point{X: CanvasSize / 2, Y: CanvasSize / 2}
	return &Stack{
		Layers: []*Layer{
			{
				ID:       "back-folder",
				Kind:     BackFolder,
				Visible:  true,
				Opacity:  100,
				UseColor: true,
				Color:    &Color{Kind: FillSolid, Primary: defaultBackColor},
				Position: center,
				Scale:    1.0,
				Order:    0,
			},
			{
				ID:       "front-folder",
				Kind:     FrontFolder,
				Visible:  true,
				Opacity:  100,
				UseColor: true,
				Color:    &Color{Kind: FillSolid, Primary: defaultFrontColor},
				Position: center,
				Scale:    1.0,
				Order:    1,
			},
			{
				ID:       "user-image",
				Kind:     UserImage,
				Visible:  true,
				Opacity:  100,
				Position: center,
				Scale:    1.0,
				Order:    2,
			},
		},
	}
}

// ByKind returns the layer of the given kind, or nil if absent.
func (s *Stack) ByKind(k Kind) *Layer {
	for _, l := range s.Layers {
		if l.Kind == k {
			return l
		}
	}
	return nil
}

// Swap exchanges the paint order of two layers. Only the two Order fields
// change; the backing slice is left untouched.
func (s *Stack) Swap(a, b Kind) {
	la, lb := s.ByKind(a), s.ByKind(b)
	if la == nil || lb == nil || la == lb {
		return
	}
	la.Order, lb.Order = lb.Order, la.Order
}

// Ordered returns the layers sorted by ascending paint order. The returned
// slice is a copy; the stack's own ordering is not disturbed.
func (s *Stack) Ordered() []*Layer {
	out := make([]*Layer, len(s.Layers))
	copy(out, s.Layers)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
