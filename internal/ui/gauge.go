package ui

import (
	"fmt"
	"math"

	"github.com/roman-kulish/scada-player/internal/scada"
	"github.com/roman-kulish/scada-player/internal/scene"
)

const (
	GaugeAirTemperature = "air_temperature"
	GaugePitchAngle     = "pitch_angle"
	GaugeActivePower    = "active_power"
	GaugeWindSpeed      = "wind_speed"
)

const (
	gaugeRadius = 0.08
	gaugeSweep  = 3 * math.Pi / 2 // 270° dial, open at the bottom
	gaugeStart  = 5 * math.Pi / 4 // minimum value sits bottom-left
)

// GaugeSpec describes the scale of a gauge and the record field it shows.
type GaugeSpec struct {
	Title     string
	Min, Max  float64
	ShortTick float64
	LongTick  float64
	Unit      string
	Precision int
	Value     func(*scada.Record) float64
}

var gaugeSpecs = map[string]GaugeSpec{
	GaugeAirTemperature: {
		Title: "Air temperature", Min: -20, Max: 40, ShortTick: 1, LongTick: 5, Unit: "°C", Precision: 1,
		Value: func(r *scada.Record) float64 { return r.AirTemperature },
	},
	GaugePitchAngle: {
		Title: "Pitch angle", Min: 0, Max: 90, ShortTick: 1, LongTick: 5, Unit: "°", Precision: 1,
		Value: func(r *scada.Record) float64 { return r.PitchAngle },
	},
	GaugeActivePower: {
		Title: "Active power", Min: 0, Max: 2000, ShortTick: 100, LongTick: 500, Unit: "kW",
		Value: func(r *scada.Record) float64 { return r.ActivePower },
	},
	GaugeWindSpeed: {
		Title: "Wind speed", Min: 0, Max: 25, ShortTick: 1, LongTick: 5, Unit: "m.s⁻¹", Precision: 1,
		Value: func(r *scada.Record) float64 { return r.WindSpeed },
	},
}

// LookupGauge returns the spec registered under name.
func LookupGauge(name string) (GaugeSpec, bool) {
	spec, ok := gaugeSpecs[name]
	return spec, ok
}

// Gauge is a dial with a needle and a value readout.
type Gauge struct {
	Node *scene.Node
	spec GaugeSpec

	needle  *scene.Node
	readout *scene.Text
}

func NewGauge(spec GaugeSpec, theme Theme) *Gauge {
	g := &Gauge{Node: scene.NewNode("gauge-"+spec.Title, nil), spec: spec}

	span := spec.Max - spec.Min
	long := &scene.Segments{Color: theme.Labels, Thickness: lineThickness}
	g.Node.Add(scene.NewNode("long-ticks", long))

	steps := int(math.Round(span / spec.ShortTick))
	for i := 0; i <= steps; i++ {
		v := float64(i) * spec.ShortTick
		theta := g.angle(spec.Min + v)

		inner := 0.85 * gaugeRadius
		if isMultiple(v, spec.LongTick) {
			inner = 0.7 * gaugeRadius
			long.Pairs = append(long.Pairs, [2]scene.Vec2{
				scene.Polar(inner, theta),
				scene.Polar(gaugeRadius, theta),
			})
			continue
		}
		g.Node.Add(scene.NewNode("tick", &scene.Segments{
			Pairs:     [][2]scene.Vec2{{scene.Polar(inner, theta), scene.Polar(gaugeRadius, theta)}},
			Color:     scene.Heat(v / span),
			Thickness: 1,
		}))
	}

	g.needle = scene.NewNode("needle", &scene.Segments{
		Pairs:     [][2]scene.Vec2{{{}, {X: 0.75 * gaugeRadius}}},
		Color:     theme.Wind,
		Thickness: lineThickness + 1,
	})
	g.readout = &scene.Text{FontSize: smallFontSize, Color: theme.Text, Anchor: scene.AnchorMiddleCenter}
	title := &scene.Text{Content: spec.Title, FontSize: smallFontSize, Color: theme.Labels, Anchor: scene.AnchorMiddleCenter}

	g.Node.Add(
		g.needle,
		scene.NewNode("readout", g.readout).SetPosition(0, -0.7*gaugeRadius),
		scene.NewNode("title", title).SetPosition(0, 1.3*gaugeRadius),
	)
	g.Set(spec.Min)
	return g
}

// Set moves the needle; values outside the scale pin it at the nearest end.
// Integer readouts are floored like the info box.
func (g *Gauge) Set(v float64) {
	g.needle.SetRotation(g.angle(v))
	if g.spec.Precision == 0 {
		g.readout.SetContent(floor(v) + g.spec.Unit)
		return
	}
	g.readout.SetContent(fmt.Sprintf("%.*f%s", g.spec.Precision, v, g.spec.Unit))
}

// Update reads the gauge value from r.
func (g *Gauge) Update(r *scada.Record) {
	g.Set(g.spec.Value(r))
}

// NeedleRotation is the needle angle in radians, counter-clockwise from East.
func (g *Gauge) NeedleRotation() float64 {
	return g.needle.Local.Rotation
}

func (g *Gauge) angle(v float64) float64 {
	f := (v - g.spec.Min) / (g.spec.Max - g.spec.Min)
	f = math.Max(0, math.Min(1, f))
	return gaugeStart - f*gaugeSweep
}

func isMultiple(v, step float64) bool {
	q := v / step
	return math.Abs(q-math.Round(q)) < 1e-9
}
