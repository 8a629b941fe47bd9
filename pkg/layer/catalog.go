package layer

import (
	"cmp"
	"slices"

	"github.com/katyo/brd2tpl/pkg/errors"
)

// Layer names of the Horizon EDA catalog.
const (
	Holes            = "HOLES"
	TopNotes         = "TOP_NOTES"
	OutlineNotes     = "OUTLINE_NOTES"
	Outline          = "L_OUTLINE"
	TopCourtyard     = "TOP_COURTYARD"
	TopAssembly      = "TOP_ASSEMBLY"
	TopPackage       = "TOP_PACKAGE"
	TopPaste         = "TOP_PASTE"
	TopSilkscreen    = "TOP_SILKSCREEN"
	TopMask          = "TOP_MASK"
	TopCopper        = "TOP_COPPER"
	BottomCopper     = "BOTTOM_COPPER"
	BottomMask       = "BOTTOM_MASK"
	BottomSilkscreen = "BOTTOM_SILKSCREEN"
	BottomPaste      = "BOTTOM_PASTE"
	BottomPackage    = "BOTTOM_PACKAGE"
	BottomAssembly   = "BOTTOM_ASSEMBLY"
	BottomCourtyard  = "BOTTOM_COURTYARD"
	BottomNotes      = "BOTTOM_NOTES"
)

// Layer is a named board layer and its backend index.
type Layer struct {
	Name  string
	Index int
}

// Catalog is an immutable lookup table of board layers.
type Catalog struct {
	layers []Layer
	byName map[string]Layer
}

// NewCatalog builds a catalog from the given layers.
// Names and indices must be unique.
func NewCatalog(layers ...Layer) (*Catalog, error) {
	c := &Catalog{
		layers: make([]Layer, 0, len(layers)),
		byName: make(map[string]Layer, len(layers)),
	}
	seen := make(map[int]string, len(layers))
	for _, l := range layers {
		if l.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "layer %d has no name", l.Index)
		}
		if _, dup := c.byName[l.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate layer name %q", l.Name)
		}
		if other, dup := seen[l.Index]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "layers %q and %q share index %d", other, l.Name, l.Index)
		}
		seen[l.Index] = l.Name
		c.byName[l.Name] = l
		c.layers = append(c.layers, l)
	}
	// top of the stack first
	slices.SortFunc(c.layers, func(a, b Layer) int { return cmp.Compare(b.Index, a.Index) })
	return c, nil
}

// Lookup returns the layer with the given name. Unknown names fail with
// an UNKNOWN_LAYER error.
func (c *Catalog) Lookup(name string) (Layer, error) {
	l, ok := c.byName[name]
	if !ok {
		return Layer{}, errors.New(errors.ErrCodeUnknownLayer, "unknown layer %q", name)
	}
	return l, nil
}

// Validate checks that every name is in the catalog.
func (c *Catalog) Validate(names ...string) error {
	for _, name := range names {
		if _, err := c.Lookup(name); err != nil {
			return err
		}
	}
	return nil
}

// Layers returns all layers ordered from the top of the stack down.
func (c *Catalog) Layers() []Layer {
	return slices.Clone(c.layers)
}

// Len returns the number of layers in the catalog.
func (c *Catalog) Len() int { return len(c.layers) }

var horizon = mustCatalog(
	Layer{Holes, 10000},
	Layer{TopNotes, 200},
	Layer{OutlineNotes, 110},
	Layer{Outline, 100},
	Layer{TopCourtyard, 60},
	Layer{TopAssembly, 50},
	Layer{TopPackage, 40},
	Layer{TopPaste, 30},
	Layer{TopSilkscreen, 20},
	Layer{TopMask, 10},
	Layer{TopCopper, 0},
	Layer{"IN1_COPPER", -1},
	Layer{"IN2_COPPER", -2},
	Layer{"IN3_COPPER", -3},
	Layer{"IN4_COPPER", -4},
	Layer{"IN5_COPPER", -5},
	Layer{"IN6_COPPER", -6},
	Layer{"IN7_COPPER", -7},
	Layer{"IN8_COPPER", -8},
	Layer{BottomCopper, -100},
	Layer{BottomMask, -110},
	Layer{BottomSilkscreen, -120},
	Layer{BottomPaste, -130},
	Layer{BottomPackage, -140},
	Layer{BottomAssembly, -150},
	Layer{BottomCourtyard, -160},
	Layer{BottomNotes, -200},
)

// Horizon returns the layer catalog of Horizon EDA boards.
func Horizon() *Catalog { return horizon }

func mustCatalog(layers ...Layer) *Catalog {
	c, err := NewCatalog(layers...)
	if err != nil {
		panic(err)
	}
	return c
}
