package pipeline

import (
	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/layer"
	"github.com/katyo/brd2tpl/pkg/placement"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// LayerRecipe requests one layer render. Border and Hole select the
// configured outline width and forced hole diameter.
type LayerRecipe struct {
	Layer   string `toml:"layer"`
	Invert  bool   `toml:"invert"`
	Mirror  bool   `toml:"mirror"`
	Outline bool   `toml:"outline"`
	Border  bool   `toml:"border"`
	Hole    bool   `toml:"hole"`
}

// Spec converts the recipe to a render request using the lengths of o.
func (r LayerRecipe) Spec(o *Options) layer.Spec {
	s := layer.Spec{
		Name:    r.Layer,
		Invert:  r.Invert,
		Mirror:  r.Mirror,
		Outline: r.Outline,
	}
	if r.Border {
		s.BorderWidth = sheet.FromMM(o.Border)
	}
	if r.Hole {
		s.HoleDiameter = sheet.FromMM(o.Hole)
	}
	return s
}

// Recipe describes one composite: its layers from bottom to top and the
// slot it is placed into.
type Recipe struct {
	Name   string        `toml:"name"`
	Slot   [2]int        `toml:"slot"`
	Layers []LayerRecipe `toml:"layers"`
}

// Placement returns the slot of the recipe.
func (r Recipe) Placement() placement.Slot {
	return placement.Slot{X: r.Slot[0], Y: r.Slot[1]}
}

// LayerNames returns the layer names used by the recipe.
func (r Recipe) LayerNames() []string {
	names := make([]string, len(r.Layers))
	for i, l := range r.Layers {
		names[i] = l.Layer
	}
	return names
}

// DefaultRecipes returns the four composites of a double-sided board:
// copper and solder mask for each side. Top side composites are mirrored
// so that they print the right way round when exposed face down.
func DefaultRecipes() []Recipe {
	return []Recipe{
		{
			Name: "top_copper",
			Slot: [2]int{-1, 0},
			Layers: []LayerRecipe{
				{Layer: layer.Outline, Mirror: true},
				{Layer: layer.Outline, Mirror: true, Outline: true, Border: true},
				{Layer: layer.TopCopper, Invert: true, Mirror: true},
				{Layer: layer.Holes, Mirror: true, Hole: true},
			},
		},
		{
			Name: "bottom_copper",
			Slot: [2]int{1, 0},
			Layers: []LayerRecipe{
				{Layer: layer.Outline},
				{Layer: layer.Outline, Outline: true, Border: true},
				{Layer: layer.BottomCopper, Invert: true},
				{Layer: layer.Holes, Hole: true},
			},
		},
		{
			Name: "top_mask",
			Slot: [2]int{-1, 1},
			Layers: []LayerRecipe{
				{Layer: layer.Outline, Mirror: true, Outline: true, Border: true},
				{Layer: layer.Outline, Invert: true, Mirror: true},
				{Layer: layer.TopMask, Mirror: true},
			},
		},
		{
			Name: "bottom_mask",
			Slot: [2]int{1, 1},
			Layers: []LayerRecipe{
				{Layer: layer.Outline, Outline: true, Border: true},
				{Layer: layer.Outline, Invert: true},
				{Layer: layer.BottomMask},
			},
		},
	}
}

// ValidateRecipes checks recipe structure: unique names and slots, valid
// slots and at least one layer each. Layer names are checked against a
// catalog by [ValidateRecipeLayers].
func ValidateRecipes(rs []Recipe) error {
	names := make(map[string]bool, len(rs))
	slots := make(map[placement.Slot]string, len(rs))
	for i, r := range rs {
		if r.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "composite %d has no name", i+1)
		}
		if names[r.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate composite %q", r.Name)
		}
		names[r.Name] = true

		s := r.Placement()
		if s.X != -1 && s.X != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "composite %q: slot column must be -1 or 1 (got %d)", r.Name, s.X)
		}
		if s.Y < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "composite %q: slot row must not be negative (got %d)", r.Name, s.Y)
		}
		if other, dup := slots[s]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "composites %q and %q share slot %s", other, r.Name, s)
		}
		slots[s] = r.Name

		if len(r.Layers) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "composite %q has no layers", r.Name)
		}
	}
	return nil
}

// ValidateRecipeLayers checks that every layer named by rs is in c.
func ValidateRecipeLayers(c *layer.Catalog, rs []Recipe) error {
	for _, r := range rs {
		if err := c.Validate(r.LayerNames()...); err != nil {
			return errors.Wrap(errors.ErrCodeUnknownLayer, err, "composite %q", r.Name)
		}
	}
	return nil
}
