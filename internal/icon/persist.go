package icon

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// Persistence shape exchanged with editor frontends: plain JSON with
// per-size maps keyed by the size as a string (e.g. "256": {...}) and image
// sources carried as base64 strings.

type colorJSON struct {
	Kind         string  `json:"kind"`
	Primary      string  `json:"primary"`
	Secondary    string  `json:"secondary,omitempty"`
	AngleDegrees float64 `json:"angleDegrees,omitempty"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type layerJSON struct {
	ID             string               `json:"id"`
	Kind           string               `json:"kind"`
	Visible        bool                 `json:"visible"`
	VisibleBySize  map[string]bool      `json:"visibilityBySize,omitempty"`
	Opacity        int                  `json:"opacity"`
	UseColor       bool                 `json:"useColor"`
	Color          *colorJSON           `json:"color,omitempty"`
	Source         string               `json:"imageSource,omitempty"`
	SourceBySize   map[string]string    `json:"imageSourceBySize,omitempty"`
	Position       pointJSON            `json:"position"`
	PositionBySize map[string]pointJSON `json:"positionBySize,omitempty"`
	Scale          float64              `json:"scale"`
	ScaleBySize    map[string]float64   `json:"scaleBySize,omitempty"`
	Order          int                  `json:"order"`
}

type stackJSON struct {
	Layers []layerJSON `json:"layers"`
}

// EncodeStack serializes a stack to the JSON persistence shape.
func EncodeStack(s *Stack) ([]byte, error) {
	doc := stackJSON{Layers: make([]layerJSON, 0, len(s.Layers))}
	for _, l := range s.Layers {
		doc.Layers = append(doc.Layers, encodeLayer(l))
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeStack parses the JSON persistence shape back into a stack,
// validating sizes, opacity and scale ranges along the way.
func DecodeStack(data []byte) (*Stack, error) {
	var doc stackJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse stack JSON: %w", err)
	}
	s := &Stack{Layers: make([]*Layer, 0, len(doc.Layers))}
	for _, lj := range doc.Layers {
		l, err := decodeLayer(lj)
		if err != nil {
			return nil, err
		}
		s.Layers = append(s.Layers, l)
	}
	return s, nil
}

func encodeLayer(l *Layer) layerJSON {
	lj := layerJSON{
		ID:       l.ID,
		Kind:     l.Kind.String(),
		Visible:  l.Visible,
		Opacity:  l.Opacity,
		UseColor: l.UseColor,
		Position: pointJSON{X: l.Position.X, Y: l.Position.Y},
		Scale:    l.Scale,
		Order:    l.Order,
	}
	if l.Color != nil {
		lj.Color = &colorJSON{
			Kind:         l.Color.Kind.String(),
			Primary:      l.Color.Primary,
			Secondary:    l.Color.Secondary,
			AngleDegrees: l.Color.AngleDegrees,
		}
	}
	if len(l.Source) > 0 {
		lj.Source = base64.StdEncoding.EncodeToString(l.Source)
	}
	if len(l.SourceBySize) > 0 {
		lj.SourceBySize = make(map[string]string, len(l.SourceBySize))
		for size, src := range l.SourceBySize {
			lj.SourceBySize[sizeKey(size)] = base64.StdEncoding.EncodeToString(src)
		}
	}
	if len(l.VisibleBySize) > 0 {
		lj.VisibleBySize = make(map[string]bool, len(l.VisibleBySize))
		for size, v := range l.VisibleBySize {
			lj.VisibleBySize[sizeKey(size)] = v
		}
	}
	if len(l.PositionBySize) > 0 {
		lj.PositionBySize = make(map[string]pointJSON, len(l.PositionBySize))
		for size, p := range l.PositionBySize {
			lj.PositionBySize[sizeKey(size)] = pointJSON{X: p.X, Y: p.Y}
		}
	}
	if len(l.ScaleBySize) > 0 {
		lj.ScaleBySize = make(map[string]float64, len(l.ScaleBySize))
		for size, v := range l.ScaleBySize {
			lj.ScaleBySize[sizeKey(size)] = v
		}
	}
	return lj
}

func decodeLayer(lj layerJSON) (*Layer, error) {
	kind, err := ParseKind(lj.Kind)
	if err != nil {
		return nil, err
	}
	l := &Layer{
		ID:       lj.ID,
		Kind:     kind,
		Visible:  lj.Visible,
		Position: Point{X: lj.Position.X, Y: lj.Position.Y},
		Order:    lj.Order,
	}
	if err := l.SetOpacity(lj.Opacity); err != nil {
		return nil, err
	}
	if err := l.SetScale(lj.Scale); err != nil {
		return nil, err
	}
	l.UseColor = lj.UseColor
	if lj.Color != nil {
		fk, err := ParseFillKind(lj.Color.Kind)
		if err != nil {
			return nil, err
		}
		c := &Color{
			Kind:         fk,
			Primary:      lj.Color.Primary,
			Secondary:    lj.Color.Secondary,
			AngleDegrees: lj.Color.AngleDegrees,
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		l.Color = c
	}
	if lj.Source != "" {
		src, err := base64.StdEncoding.DecodeString(lj.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image source for layer %s: %w", lj.ID, err)
		}
		l.Source = src
	}
	for key, enc := range lj.SourceBySize {
		size, err := ParseSize(key)
		if err != nil {
			return nil, err
		}
		src, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image source for layer %s size %d: %w", lj.ID, size, err)
		}
		if l.SourceBySize == nil {
			l.SourceBySize = make(map[Size][]byte)
		}
		l.SourceBySize[size] = src
	}
	for key, v := range lj.VisibleBySize {
		size, err := ParseSize(key)
		if err != nil {
			return nil, err
		}
		if err := l.SetVisibleAt(size, v); err != nil {
			return nil, err
		}
	}
	for key, p := range lj.PositionBySize {
		size, err := ParseSize(key)
		if err != nil {
			return nil, err
		}
		if err := l.SetPositionAt(size, Point{X: p.X, Y: p.Y}); err != nil {
			return nil, err
		}
	}
	for key, v := range lj.ScaleBySize {
		size, err := ParseSize(key)
		if err != nil {
			return nil, err
		}
		if err := l.SetScaleAt(size, v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func sizeKey(s Size) string {
	return strconv.Itoa(int(s))
}
