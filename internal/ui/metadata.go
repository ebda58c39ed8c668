package ui

import (
	"fmt"

	"github.com/roman-kulish/scada-player/internal/scene"
)

const notAvailable = "N/A"

// Metadata describes the turbine the records come from.
type Metadata struct {
	Farm         string   `yaml:"farm"`
	Turbine      string   `yaml:"turbine"`
	TurbineModel string   `yaml:"turbineModel"`
	NominalPower *float64 `yaml:"nominalPower"` // kW
}

// MetadataBox is a static block of text built from Metadata.
type MetadataBox struct {
	Node  *scene.Node
	lines []string
}

func NewMetadataBox(m Metadata, theme Theme) *MetadataBox {
	power := notAvailable
	if m.NominalPower != nil {
		power = fmt.Sprintf("%g kW", *m.NominalPower)
	}

	b := &MetadataBox{
		Node: scene.NewNode("metadata-box", nil),
		lines: []string{
			"farm: " + orNotAvailable(m.Farm),
			"turbine: " + orNotAvailable(m.Turbine),
			"turbine model: " + orNotAvailable(m.TurbineModel),
			"nominal power: " + power,
		},
	}
	for i, line := range b.lines {
		text := &scene.Text{Content: line, FontSize: smallFontSize, Color: theme.Text, Anchor: scene.AnchorTopLeft}
		b.Node.Add(scene.NewNode(fmt.Sprintf("metadata-%d", i), text).SetPosition(0, -float64(i)*0.03))
	}
	return b
}

// Lines returns the rendered lines.
func (b *MetadataBox) Lines() []string {
	return b.lines
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
