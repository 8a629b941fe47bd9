package horizon

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// Layer indices with special meaning in a board file.
const (
	LayerOutline = 100
	LayerHoles   = 10000
)

// DefaultBoardFile is the board file name used when a project does not
// name one.
const DefaultBoardFile = "board.json"

// Coord is a board position in nanometres.
type Coord [2]int64

// Point converts c to a position in points.
func (c Coord) Point() (x, y float64) {
	return nmToPt(c[0]), nmToPt(c[1])
}

func nmToPt(v int64) float64 { return sheet.FromMM(float64(v) / 1e6) }

// Placement positions an object on the board. Angle uses the full circle
// divided into 65536 steps.
type Placement struct {
	Shift  Coord `json:"shift"`
	Angle  int   `json:"angle"`
	Mirror bool  `json:"mirror"`
}

// radians returns the placement angle in radians.
func (p Placement) radians() float64 {
	return float64(p.Angle) * 2 * math.Pi / 65536
}

// Apply maps a local position through the placement.
func (p Placement) Apply(c Coord) Coord {
	x, y := float64(c[0]), float64(c[1])
	if p.Mirror {
		x = -x
	}
	a := p.radians()
	sin, cos := math.Sincos(a)
	return Coord{
		p.Shift[0] + int64(math.Round(x*cos-y*sin)),
		p.Shift[1] + int64(math.Round(x*sin+y*cos)),
	}
}

// Vertex is a polygon corner. An arc vertex starts an arc around
// ArcCenter that ends at the next vertex.
type Vertex struct {
	Type       string `json:"type"` // "line" or "arc"
	Position   Coord  `json:"position"`
	ArcCenter  Coord  `json:"arc_center"`
	ArcReverse bool   `json:"arc_reverse"`
}

// Polygon is a closed outline on a single layer.
type Polygon struct {
	Layer    int      `json:"layer"`
	Vertices []Vertex `json:"vertices"`
}

// Junction is a connection point for tracks.
type Junction struct {
	Position Coord `json:"position"`
	Layer    int   `json:"layer"`
}

// Connection is one end of a track. Only junction ends can be resolved
// without the part pool.
type Connection struct {
	Junction *uuid.UUID `json:"junc,omitempty"`
}

// Track is a straight copper segment.
type Track struct {
	Layer int        `json:"layer"`
	Width int64      `json:"width"`
	From  Connection `json:"from"`
	To    Connection `json:"to"`
}

// Hole is a drill in a padstack.
type Hole struct {
	Diameter  int64     `json:"diameter"`
	Length    int64     `json:"length"`
	Shape     string    `json:"shape"` // "round" or "slot"
	Plated    bool      `json:"plated"`
	Placement Placement `json:"placement"`
}

// Padstack is the subset of a padstack needed to draw its holes.
type Padstack struct {
	Holes map[uuid.UUID]Hole `json:"holes"`
}

// BoardHole is a padstack placed directly on the board.
type BoardHole struct {
	Placement Placement `json:"placement"`
	Padstack  Padstack  `json:"padstack"`
}

// ViaParameters are the resolved sizes of a via.
type ViaParameters struct {
	HoleDiameter int64 `json:"hole_diameter"`
	ViaDiameter  int64 `json:"via_diameter"`
}

// Via connects copper layers at a junction.
type Via struct {
	Junction   uuid.UUID     `json:"junction"`
	Parameters ViaParameters `json:"parameter_set"`
}

// Fragment is a connected piece of a filled plane. The first path is the
// outer contour, the others are cut-outs.
type Fragment struct {
	Paths  [][]Coord `json:"paths"`
	Orphan bool      `json:"orphan"`
}

// Plane is a copper fill bounded by a polygon.
type Plane struct {
	Polygon   uuid.UUID  `json:"polygon"`
	Fragments []Fragment `json:"fragments"`
}

// Board is the content of a board file.
type Board struct {
	Type      string                  `json:"type"`
	UUID      uuid.UUID               `json:"uuid"`
	Name      string                  `json:"name"`
	Polygons  map[uuid.UUID]Polygon   `json:"polygons"`
	Junctions map[uuid.UUID]Junction  `json:"junctions"`
	Tracks    map[uuid.UUID]Track     `json:"tracks"`
	Vias      map[uuid.UUID]Via       `json:"vias"`
	Holes     map[uuid.UUID]BoardHole `json:"holes"`
	Planes    map[uuid.UUID]Plane     `json:"planes"`

	// Path is the file the board was read from.
	Path string `json:"-"`
}

type project struct {
	Type          string `json:"type"`
	BoardFilename string `json:"board_filename"`
}

// Open reads the board of a project file or a board file. Any failure is
// reported as PROJECT_OPEN.
func Open(path string) (*Board, error) {
	boardPath := path
	if strings.EqualFold(filepath.Ext(path), ".hprj") {
		var p project
		if err := readJSON(path, &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeProjectOpen, err, "open project %s", path)
		}
		name := p.BoardFilename
		if name == "" {
			name = DefaultBoardFile
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(path), name)
		}
		boardPath = name
	}

	b := &Board{}
	if err := readJSON(boardPath, b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeProjectOpen, err, "open board %s", boardPath)
	}
	if b.Type != "" && b.Type != "board" {
		return nil, errors.New(errors.ErrCodeProjectOpen, "%s is a %q file, not a board", boardPath, b.Type)
	}
	b.Path = boardPath
	return b, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
