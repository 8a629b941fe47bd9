package marker

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/katyo/brd2tpl/pkg/errors"
	"github.com/katyo/brd2tpl/pkg/sheet"
)

// Extensions appended to marker names in the last search steps, in order.
const (
	PDFExt   = ".pdf"
	ShapeExt = ".toml"
)

//go:embed data/*.toml
var builtin embed.FS

// Finder locates marker resources.
type Finder struct {
	// DataDir is searched when the literal path does not exist.
	// Empty means the "data" directory next to the executable.
	DataDir string
}

// DefaultDataDir returns the "data" directory next to the running executable.
func DefaultDataDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "data"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "data")
}

func (f Finder) dataDir() string {
	if f.DataDir != "" {
		return f.DataDir
	}
	return DefaultDataDir()
}

// Find returns the path of the marker resource name. It tries, in order,
// name itself, name inside the data directory, and the latter with
// [PDFExt] and then [ShapeExt] appended. A resource that cannot be found
// fails with MARKER_NOT_FOUND.
func (f Finder) Find(name string) (string, error) {
	if name == "" {
		return "", errors.New(errors.ErrCodeMarkerNotFound, "no marker name given")
	}
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		p := filepath.Join(f.dataDir(), name)
		candidates = append(candidates, p, p+PDFExt, p+ShapeExt)
	}
	for _, c := range candidates {
		if isFile(c) {
			return c, nil
		}
	}
	return "", errors.New(errors.ErrCodeMarkerNotFound, "marker %q not found (searched %s)", name, strings.Join(candidates, ", "))
}

// Load finds and decodes the marker resource name. Names that are not
// found on disk fall back to the markers built into the binary.
func (f Finder) Load(name string) (*sheet.Page, error) {
	path, err := f.Find(name)
	if err == nil {
		return LoadFile(path)
	}
	if data, berr := fs.ReadFile(builtin, "data/"+strings.TrimSuffix(name, ShapeExt)+ShapeExt); berr == nil {
		return Parse(data)
	}
	return nil, err
}

// Builtin returns the names of the markers built into the binary.
func Builtin() []string {
	entries, _ := fs.ReadDir(builtin, "data")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ShapeExt))
	}
	return names
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
