// Package marker stamps registration markers around placed composites.
//
// A marker is a small vector page. It is centred once and then stamped at
// the four corners of a composite's post-rotation bounding box, pushed
// outward by an offset in both axes, and moved by the composite's placement
// transform. Front and back exposures printed from the same template can be
// aligned with these marks.
//
// Marker resources are PDF files, whose first page is used, or TOML shape
// files in millimetres:
//
//	width = 6.0
//	height = 6.0
//
//	[[shape]]
//	paint = "stroke"
//	line_width = 0.15
//	points = [[0.0, 3.0], [6.0, 3.0]]
//
//	[[shape]]
//	paint = "stroke"
//	line_width = 0.15
//	circle = { center = [3.0, 3.0], radius = 1.5 }
//
// Resources are searched as a literal path first, then in the data
// directory, then in the data directory with ".pdf" and ".toml" appended;
// see [Finder]. The shape files "cross" and "target" are built in.
package marker
