package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrEmptyPalette is returned when a scene is built without any colors.
var ErrEmptyPalette = errors.New("palette must contain at least one color")

// Color is a resolved display color. Name keeps the spelling it was parsed
// from so named colors survive into the rendered output unchanged.
type Color struct {
	Name string
	RGB  colorful.Color
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return c.RGB.Hex()
}

// CSS returns the name the color was given, falling back to its hex value.
func (c Color) CSS() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Hex()
}

func (c Color) String() string {
	return c.CSS()
}

// ParseColor accepts an SVG/CSS color name ("royalblue") or a hex value
// ("#4169e1", "#fff").
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Color{}, errors.New("empty color")
	}
	if named, ok := colornames.Map[name]; ok {
		c, _ := colorful.MakeColor(named)
		return Color{Name: name, RGB: c}, nil
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return Color{Name: c.Hex(), RGB: c}, nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

// ParsePalette parses each entry with ParseColor.
func ParsePalette(names []string) ([]Color, error) {
	if len(names) == 0 {
		return nil, ErrEmptyPalette
	}
	out := make([]Color, 0, len(names))
	for i, n := range names {
		c, err := ParseColor(n)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// DefaultPaletteNames is the three-color cycle used when no palette is given.
var DefaultPaletteNames = []string{"royalblue", "darkorange", "green"}

// DefaultPalette returns the parsed DefaultPaletteNames.
func DefaultPalette() []Color {
	p, err := ParsePalette(DefaultPaletteNames)
	if err != nil {
		panic(err)
	}
	return p
}
