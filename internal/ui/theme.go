package ui

import (
	"image/color"

	"github.com/roman-kulish/scada-player/internal/scene"
)

const (
	fontSize      = 0.03
	smallFontSize = 0.02
	lineThickness = 2.0
)

// Theme holds the colours of every visual element.
type Theme struct {
	Background color.Color
	Ticks      color.Color
	Labels     color.Color
	Turbine    color.Color
	Wind       color.Color
	Text       color.Color
}

// DefaultTheme is the green dial, white turbine and red wind arrow on black.
func DefaultTheme() Theme {
	return Theme{
		Background: scene.MustParseColor("black"),
		Ticks:      scene.MustParseColor("green"),
		Labels:     scene.MustParseColor("#fff"),
		Turbine:    scene.MustParseColor("#fff"),
		Wind:       scene.MustParseColor("red"),
		Text:       scene.MustParseColor("#fff"),
	}
}
