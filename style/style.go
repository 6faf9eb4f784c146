// Package style holds the color and label lookup tables shared by the
// chart renderer and the notebook emitter, with optional TOML overrides.
package style

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/plot/palette/brewer"
)

// Metric colors for the single-configuration charts.
var (
	Blue   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	Green  = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	Red    = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	Purple = color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}
	Brown  = color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}
	Orange = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	Cyan   = color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}
)

// Palette maps configuration identities to colors and display names.
// Series and Labels are keyed by config key ("osmosis-comet-1"); Base and
// BaseLabels by bare configuration name ("osmosis-comet"). Colors are hex
// strings so the tables survive a round trip through the override file and
// can be embedded verbatim into emitted notebooks.
type Palette struct {
	Series     map[string]string `toml:"series"`
	Labels     map[string]string `toml:"labels"`
	Base       map[string]string `toml:"base"`
	BaseLabels map[string]string `toml:"base_labels"`
}

// Default returns the built-in palette covering the known benchmark
// configurations at 1 and 4 validators.
func Default() Palette {
	return Palette{
		Series: map[string]string{
			"fauxmosis-comet-1":     "#ff7f0e",
			"fauxmosis-comet-4":     "#ff9a41",
			"fauxmosis-ufo-1":       "#d62728",
			"fauxmosis-ufo-4":       "#ff6b6b",
			"osmosis-ufo-bridged-1": "#2ca02c",
			"osmosis-ufo-bridged-4": "#5fd35f",
			"osmosis-ufo-patched-1": "#9467bd",
			"osmosis-ufo-patched-4": "#b589dc",
			"osmosis-comet-1":       "#1f77b4",
			"osmosis-comet-4":       "#5aa7d4",
		},
		Labels: map[string]string{
			"fauxmosis-comet-1":     "Fauxmosis+CometBFT (1 validator)",
			"fauxmosis-comet-4":     "Fauxmosis+CometBFT (4 validators)",
			"fauxmosis-ufo-1":       "Fauxmosis+UFO (1 validator)",
			"fauxmosis-ufo-4":       "Fauxmosis+UFO (4 validators)",
			"osmosis-ufo-bridged-1": "Osmosis+UFO Bridged (1 validator)",
			"osmosis-ufo-bridged-4": "Osmosis+UFO Bridged (4 validators)",
			"osmosis-ufo-patched-1": "Osmosis+UFO Patched (1 validator)",
			"osmosis-ufo-patched-4": "Osmosis+UFO Patched (4 validators)",
			"osmosis-comet-1":       "Osmosis+CometBFT (1 validator)",
			"osmosis-comet-4":       "Osmosis+CometBFT (4 validators)",
		},
		Base: map[string]string{
			"fauxmosis-comet":     "#ff7f0e",
			"fauxmosis-ufo":       "#d62728",
			"osmosis-ufo-bridged": "#2ca02c",
			"osmosis-ufo-patched": "#9467bd",
			"osmosis-comet":       "#1f77b4",
		},
		BaseLabels: map[string]string{
			"fauxmosis-comet":     "Fauxmosis with CometBFT",
			"fauxmosis-ufo":       "Fauxmosis with UFO",
			"osmosis-ufo-bridged": "Osmosis with UFO (Bridged)",
			"osmosis-ufo-patched": "Osmosis with UFO (Patched)",
			"osmosis-comet":       "Osmosis with CometBFT",
		},
	}
}

// Load reads a TOML palette file and overlays it on the defaults. Known
// keys are replaced, unknown keys extend the tables. Color values must be
// valid hex.
func Load(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("read style file: %w", err)
	}

	var file Palette
	if err := toml.Unmarshal(data, &file); err != nil {
		return Palette{}, fmt.Errorf("parse style file %s: %w", path, err)
	}

	p := Default()

	for key, hex := range file.Series {
		if _, err := ParseHex(hex); err != nil {
			return Palette{}, fmt.Errorf("style series entry %q: %w", key, err)
		}
		p.Series[key] = hex
	}

	for key, hex := range file.Base {
		if _, err := ParseHex(hex); err != nil {
			return Palette{}, fmt.Errorf("style base entry %q: %w", key, err)
		}
		p.Base[key] = hex
	}

	for key, label := range file.Labels {
		p.Labels[key] = label
	}

	for key, label := range file.BaseLabels {
		p.BaseLabels[key] = label
	}

	return p, nil
}

// SeriesColor looks up the color for a config key. The second return is
// false for keys without a palette entry; callers pick a fallback color.
func (p Palette) SeriesColor(key string) (color.Color, bool) {
	hex, ok := p.Series[key]
	if !ok {
		return nil, false
	}

	c, err := ParseHex(hex)
	if err != nil {
		return nil, false
	}

	return c, true
}

// SeriesLabel returns the display name for a config key, falling back to
// the raw key.
func (p Palette) SeriesLabel(key string) string {
	if label, ok := p.Labels[key]; ok {
		return label
	}

	return key
}

// BaseColorHex looks up the hex color for a bare configuration name.
func (p Palette) BaseColorHex(name string) (string, bool) {
	hex, ok := p.Base[name]

	return hex, ok
}

// BaseLabel returns the display name for a bare configuration name,
// falling back to the name itself.
func (p Palette) BaseLabel(name string) string {
	if label, ok := p.BaseLabels[name]; ok {
		return label
	}

	return name
}

// FallbackColors returns n colors for series without a palette entry,
// drawn from the ColorBrewer Paired scheme. The sequence is deterministic
// and cycles when n exceeds the scheme size.
func FallbackColors(n int) ([]color.Color, error) {
	if n <= 0 {
		return nil, nil
	}

	size := n
	if size < 3 {
		size = 3
	}
	if size > 12 {
		size = 12
	}

	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", size)
	if err != nil {
		return nil, fmt.Errorf("fallback palette: %w", err)
	}

	src := pal.Colors()
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = src[i%len(src)]
	}

	return colors, nil
}

// ParseHex parses a "#rgb" or "#rrggbb" hex color into an opaque RGBA.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q: want #rgb or #rrggbb", s)
	}

	hex := s[1:]
	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("color %q: want #rgb or #rrggbb", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
