package scene

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.Color{
	"black":   color.RGBA{A: 0xff},
	"white":   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"red":     color.RGBA{R: 0xff, A: 0xff},
	"green":   color.RGBA{G: 0x80, A: 0xff},
	"lime":    color.RGBA{G: 0xff, A: 0xff},
	"blue":    color.RGBA{B: 0xff, A: 0xff},
	"yellow":  color.RGBA{R: 0xff, G: 0xff, A: 0xff},
	"cyan":    color.RGBA{G: 0xff, B: 0xff, A: 0xff},
	"magenta": color.RGBA{R: 0xff, B: 0xff, A: 0xff},
	"gray":    color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"orange":  color.RGBA{R: 0xff, G: 0xa5, A: 0xff},
}

// ParseColor accepts a CSS colour name from a small table or a #rgb/#rrggbb
// hex string.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown colour '%s'", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("parsing colour '%s': %w", s, err)
	}
	return toRGBA(c), nil
}

// MustParseColor is ParseColor for package-level defaults.
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Heat maps a normalized value [0-1] onto a blue -> red hue ramp.
func Heat(normalized float64) color.Color {
	v := math.Max(0, math.Min(1, normalized))
	return toRGBA(colorful.Hsv(240-(v*240), 0.9+(v*0.1), 1))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
