// Package project reads declarative YAML project files and applies them as
// attribute patches over the default layer stack.
package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"icoforge/internal/icon"
)

// Project is the on-disk YAML shape: a list of layer patches plus an
// optional image path for the user image layer.
type Project struct {
	Image  string       `yaml:"image,omitempty"`
	Layers []LayerPatch `yaml:"layers,omitempty"`
}

// LayerPatch overrides a subset of one layer's attributes. Nil fields
// leave the stack's defaults untouched. Per-size overrides are keyed by
// the size as a string, mirroring the JSON persistence shape.
type LayerPatch struct {
	Kind     string                   `yaml:"kind"`
	Visible  *bool                    `yaml:"visible,omitempty"`
	Opacity  *int                     `yaml:"opacity,omitempty"`
	UseColor *bool                    `yaml:"useColor,omitempty"`
	Color    *ColorPatch              `yaml:"color,omitempty"`
	Position *PositionPatch           `yaml:"position,omitempty"`
	Scale    *float64                 `yaml:"scale,omitempty"`
	Order    *int                     `yaml:"order,omitempty"`
	BySize   map[string]OverridePatch `yaml:"overrides,omitempty"`
}

// ColorPatch is a fill specification in a project file.
type ColorPatch struct {
	Kind         string  `yaml:"kind,omitempty"`
	Primary      string  `yaml:"primary"`
	Secondary    string  `yaml:"secondary,omitempty"`
	AngleDegrees float64 `yaml:"angleDegrees,omitempty"`
}

// PositionPatch is a position in the canonical 256 coordinate space.
type PositionPatch struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// OverridePatch is the per-size override block of a layer patch.
type OverridePatch struct {
	Visible  *bool          `yaml:"visible,omitempty"`
	Position *PositionPatch `yaml:"position,omitempty"`
	Scale    *float64       `yaml:"scale,omitempty"`
}

// Load reads and parses a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	return &p, nil
}

// Apply patches the stack in place. Each patch is applied to a copy of its
// layer and committed only when every field validated, so a rejected patch
// leaves the layer exactly as it was.
func (p *Project) Apply(stack *icon.Stack) error {
	for _, patch := range p.Layers {
		kind, err := icon.ParseKind(patch.Kind)
		if err != nil {
			return err
		}
		layer := stack.ByKind(kind)
		if layer == nil {
			return fmt.Errorf("stack has no %s layer", patch.Kind)
		}
		staged := layer.Clone()
		if err := applyPatch(staged, patch); err != nil {
			return fmt.Errorf("layer %s: %w", patch.Kind, err)
		}
		*layer = *staged
	}
	return nil
}

func applyPatch(layer *icon.Layer, patch LayerPatch) error {
	if patch.Opacity != nil {
		if err := layer.SetOpacity(*patch.Opacity); err != nil {
			return err
		}
	}
	if patch.Scale != nil {
		if err := layer.SetScale(*patch.Scale); err != nil {
			return err
		}
	}
	if patch.Color != nil {
		fk, err := icon.ParseFillKind(patch.Color.Kind)
		if err != nil {
			return err
		}
		c := &icon.Color{
			Kind:         fk,
			Primary:      patch.Color.Primary,
			Secondary:    patch.Color.Secondary,
			AngleDegrees: patch.Color.AngleDegrees,
		}
		if err := c.Validate(); err != nil {
			return err
		}
		layer.Color = c
		layer.UseColor = true
	}
	if patch.Visible != nil {
		layer.Visible = *patch.Visible
	}
	if patch.UseColor != nil {
		layer.UseColor = *patch.UseColor
	}
	if patch.Position != nil {
		layer.SetPosition(icon.Point{X: patch.Position.X, Y: patch.Position.Y})
	}
	if patch.Order != nil {
		layer.Order = *patch.Order
	}

	for key, override := range patch.BySize {
		size, err := icon.ParseSize(key)
		if err != nil {
			return err
		}
		if override.Visible != nil {
			if err := layer.SetVisibleAt(size, *override.Visible); err != nil {
				return err
			}
		}
		if override.Position != nil {
			if err := layer.SetPositionAt(size, icon.Point{X: override.Position.X, Y: override.Position.Y}); err != nil {
				return err
			}
		}
		if override.Scale != nil {
			if err := layer.SetScaleAt(size, *override.Scale); err != nil {
				return err
			}
		}
	}
	return nil
}
