package ui

import (
	"math"

	"github.com/roman-kulish/scada-player/internal/scene"
)

const (
	tickStep        = 5 // degrees
	tickInnerRadius = 0.43
	tickOuterRadius = 0.45
	labelRadius     = 0.48
)

// Cardinal labels in on-screen polar convention, 0° pointing East.
var cardinals = []struct {
	label string
	angle float64
}{
	{"E", 0},
	{"N", math.Pi / 2},
	{"W", math.Pi},
	{"S", -math.Pi / 2},
}

// Compass is a fixed dial carrying two independently rotated children: the
// wind turbine glyph and the wind direction arrow.
//
// Both children are rotated by the negated input angle. The data is a
// compass bearing while node rotations are counter-clockwise, so a bearing
// of 90° turns the child a quarter turn clockwise on screen.
type Compass struct {
	Node *scene.Node

	turbine *scene.Node
	wind    *scene.Node
}

// NewCompass builds the dial once; only rotations change afterwards.
func NewCompass(theme Theme) *Compass {
	c := &Compass{Node: scene.NewNode("compass", nil)}

	ticks := &scene.Segments{Color: theme.Ticks, Thickness: lineThickness}
	for deg := 0; deg < 360; deg += tickStep {
		theta := scene.Radians(float64(deg))
		ticks.Pairs = append(ticks.Pairs, [2]scene.Vec2{
			scene.Polar(tickInnerRadius, theta),
			scene.Polar(tickOuterRadius, theta),
		})
	}
	c.Node.Add(scene.NewNode("ticks", ticks))

	for _, card := range cardinals {
		p := scene.Polar(labelRadius, card.angle)
		label := scene.NewNode("label-"+card.label, &scene.Text{
			Content:  card.label,
			FontSize: fontSize,
			Color:    theme.Labels,
			Anchor:   scene.AnchorMiddleCenter,
		})
		c.Node.Add(label.SetPosition(p.X, p.Y))
	}

	c.turbine = scene.NewNode("wind-turbine", nil).Add(
		scene.NewNode("nacelle", &scene.Plane{Width: 0.1, Height: 0.2, Color: theme.Turbine}),
		scene.NewNode("blade", &scene.Plane{Width: 0.4, Height: 0.01, Color: theme.Turbine}).SetPosition(0, 0.12),
		scene.NewNode("heading", &scene.Segments{
			Pairs:     [][2]scene.Vec2{{{X: 0, Y: 0.14}, {X: 0, Y: 0.34}}},
			Color:     theme.Turbine,
			Thickness: lineThickness,
		}),
	)

	c.wind = scene.NewNode("wind-direction", &scene.Segments{
		Pairs: [][2]scene.Vec2{
			{{X: 0, Y: 0.35}, {X: 0, Y: 0.42}},
			{{X: 0, Y: 0.35}, {X: 0.03, Y: 0.38}},
			{{X: 0, Y: 0.35}, {X: -0.03, Y: 0.38}},
		},
		Color:     theme.Wind,
		Thickness: lineThickness,
	})

	c.Node.Add(c.turbine, c.wind)
	return c
}

// SetWindDirection points the wind arrow.
func (c *Compass) SetWindDirection(deg float64) {
	c.wind.SetRotation(-scene.Radians(deg))
}

// SetNacelleDirection turns the turbine glyph.
func (c *Compass) SetNacelleDirection(deg float64) {
	c.turbine.SetRotation(-scene.Radians(deg))
}

// WindRotation is the current wind arrow rotation in radians.
func (c *Compass) WindRotation() float64 {
	return c.wind.Local.Rotation
}

// TurbineRotation is the current turbine glyph rotation in radians.
func (c *Compass) TurbineRotation() float64 {
	return c.turbine.Local.Rotation
}
