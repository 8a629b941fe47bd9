// Package horizon reads Horizon EDA board files and exports their layers
// as vector pages.
//
// A board is opened from a project file (*.hprj), which names the board
// file, or from the board file itself. Only the geometry stored in the
// board is drawn: outline and layer polygons, tracks between junctions,
// filled plane fragments, vias and board holes. Package pads live in the
// part pool and are not drawn.
//
// Board coordinates are integer nanometres with the y axis pointing up,
// the same orientation as PDF user space. Exported pages use points.
package horizon
