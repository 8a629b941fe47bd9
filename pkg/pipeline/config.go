package pipeline

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/katyo/brd2tpl/pkg/errors"
)

// Config is a TOML configuration file. Every key is optional; keys that
// are present replace the corresponding option.
//
//	field = 12
//	rotate = 15
//	marker = "cross"
//
//	[[composite]]
//	name = "bottom_copper"
//	slot = [1, 0]
//	layers = [
//	  { layer = "L_OUTLINE" },
//	  { layer = "BOTTOM_COPPER", invert = true },
//	]
type Config struct {
	Field        *float64 `toml:"field"`
	Margin       *float64 `toml:"margin"`
	Border       *float64 `toml:"border"`
	Hole         *float64 `toml:"hole"`
	Rotate       *float64 `toml:"rotate"`
	Marker       *string  `toml:"marker"`
	MarkerOffset *float64 `toml:"marker_offset"`
	MarkerDir    *string  `toml:"marker_dir"`
	Composites   []Recipe `toml:"composite"`

	// Path is the file the configuration was read from.
	Path string `toml:"-"`
}

// Config keys, also used as names of the options they set.
const (
	KeyField        = "field"
	KeyMargin       = "margin"
	KeyBorder       = "border"
	KeyHole         = "hole"
	KeyRotate       = "rotate"
	KeyMarker       = "marker"
	KeyMarkerOffset = "marker_offset"
	KeyMarkerDir    = "marker_dir"
)

// LoadConfig reads a configuration file. Unknown keys are rejected so that
// typos do not go unnoticed.
func LoadConfig(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if c.Composites != nil {
		if err := ValidateRecipes(c.Composites); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
		}
	}
	c.Path = path
	return &c, nil
}

// Apply copies the values present in c into o. Keys for which keep
// returns true are left untouched, which lets command line flags take
// precedence over the file. keep may be nil.
func (c *Config) Apply(o *Options, keep func(key string) bool) {
	if keep == nil {
		keep = func(string) bool { return false }
	}
	setFloat := func(key string, src *float64, dst *float64) {
		if src != nil && !keep(key) {
			*dst = *src
		}
	}
	setString := func(key string, src *string, dst *string) {
		if src != nil && !keep(key) {
			*dst = *src
		}
	}

	setFloat(KeyField, c.Field, &o.Field)
	setFloat(KeyMargin, c.Margin, &o.Margin)
	setFloat(KeyBorder, c.Border, &o.Border)
	setFloat(KeyHole, c.Hole, &o.Hole)
	setFloat(KeyRotate, c.Rotate, &o.Rotate)
	setString(KeyMarker, c.Marker, &o.Marker)
	setFloat(KeyMarkerOffset, c.MarkerOffset, &o.MarkerOffset)
	setString(KeyMarkerDir, c.MarkerDir, &o.MarkerDir)
	if c.Composites != nil {
		o.Composites = c.Composites
	}
}
