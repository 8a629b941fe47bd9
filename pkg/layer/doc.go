// Package layer selects and renders single board layers.
//
// A [Catalog] maps human layer names such as "TOP_COPPER" to the board
// backend's layer indices. It is built once and never modified.
//
// A [Renderer] turns a [Spec] (layer name plus invert, mirror, outline,
// border and hole options) into a fresh [Settings] value in which exactly
// one layer is enabled, and hands it to an [Exporter], the board backend
// that produces the vector page:
//
//	r := layer.NewRenderer(layer.Horizon(), board)
//	out, err := r.Render(ctx, layer.Spec{Name: layer.TopCopper, Invert: true, Mirror: true})
//
// Inverted layers are drawn in the background colour (white) and are used
// to cut features out of layers drawn earlier.
package layer
