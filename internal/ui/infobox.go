package ui

import (
	"fmt"
	"math"

	"github.com/roman-kulish/scada-player/internal/scada"
	"github.com/roman-kulish/scada-player/internal/scene"
)

const lineSpacing = 0.04

const (
	lineTimestamp = iota
	lineWindSpeed
	lineWindDirection
	lineNacelleDirection
	lineActivePower
	linePitchAngle
	infoLines
)

var infoLabels = [infoLines]string{
	"timestamp",
	"wind_speed",
	"wind_direction",
	"nacelle_direction",
	"active_power",
	"pitch_angle",
}

// InfoBox is a column of six text lines describing the current record.
type InfoBox struct {
	Node  *scene.Node
	lines [infoLines]*scene.Text
}

func NewInfoBox(theme Theme) *InfoBox {
	b := &InfoBox{Node: scene.NewNode("info-box", nil)}
	for i, label := range infoLabels {
		text := &scene.Text{
			Content:  label,
			FontSize: fontSize,
			Color:    theme.Text,
			Anchor:   scene.AnchorTopLeft,
		}
		b.lines[i] = text
		b.Node.Add(scene.NewNode(label, text).SetPosition(0, -float64(i)*lineSpacing))
	}
	return b
}

// Update rewrites every line from r.
func (b *InfoBox) Update(r *scada.Record) {
	b.lines[lineTimestamp].SetContent("timestamp: " + r.Timestamp.Format(scada.DisplayFormat))
	b.lines[lineWindSpeed].SetContent(fmt.Sprintf("wind speed: %.1fm.s⁻¹", r.WindSpeed))
	b.lines[lineWindDirection].SetContent(fmt.Sprintf("wind direction: %s°", floor(r.WindDirection)))
	b.lines[lineNacelleDirection].SetContent(fmt.Sprintf("nacelle direction: %s°", floor(r.NacelleDirection)))
	b.lines[lineActivePower].SetContent(fmt.Sprintf("active power: %skW", floor(r.ActivePower)))
	b.lines[linePitchAngle].SetContent(fmt.Sprintf("pitch angle: %s°", floor(r.PitchAngle)))
}

// Lines returns the current text of each line, top to bottom.
func (b *InfoBox) Lines() []string {
	lines := make([]string, len(b.lines))
	for i, l := range b.lines {
		lines[i] = l.Content
	}
	return lines
}

// floor formats the largest integer not above v, without int overflow.
func floor(v float64) string {
	f := math.Floor(v)
	if f == 0 {
		f = 0 // drop the sign of -0
	}
	return fmt.Sprintf("%.0f", f)
}
