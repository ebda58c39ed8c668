// Package ui builds the visual state of a frame: a compass with the turbine
// and wind direction, an info box with the current record, and optional
// gauges and turbine metadata.
package ui

import (
	"fmt"

	"github.com/roman-kulish/scada-player/internal/scada"
	"github.com/roman-kulish/scada-player/internal/scene"
)

var (
	infoBoxPosition     = scene.Vec2{X: -0.65, Y: 0.5}
	metadataBoxPosition = scene.Vec2{X: -0.65, Y: -0.36}
	playbackBoxPosition = scene.Vec2{X: -0.65, Y: -0.18}

	// Right column, top to bottom
	gaugePositions = []scene.Vec2{
		{X: 0.56, Y: 0.36},
		{X: 0.56, Y: 0.12},
		{X: 0.56, Y: -0.12},
		{X: 0.56, Y: -0.36},
	}
)

// Options selects the optional elements of the scene.
type Options struct {
	Theme    Theme
	Gauges   []string  // Names accepted by LookupGauge
	Metadata *Metadata // nil hides the metadata box
	Playback *Playback // nil hides the playback box
}

// UI owns the scene and the camera looking at it. It is built once per run
// and then mutated in place by Update.
type UI struct {
	Scene  *scene.Node
	Camera *scene.OrthographicCamera

	Compass  *Compass
	InfoBox  *InfoBox
	Gauges   []*Gauge
	Metadata *MetadataBox
	Playback *PlaybackBox
}

func New(opts Options) (*UI, error) {
	if len(opts.Gauges) > len(gaugePositions) {
		return nil, fmt.Errorf("at most %d gauges fit on a frame, got %d", len(gaugePositions), len(opts.Gauges))
	}

	u := &UI{
		Scene:   scene.NewNode("scene", nil),
		Camera:  scene.NewOrthographicCamera(1, 1),
		Compass: NewCompass(opts.Theme),
		InfoBox: NewInfoBox(opts.Theme),
	}
	u.InfoBox.Node.SetPosition(infoBoxPosition.X, infoBoxPosition.Y)
	u.Scene.Add(u.Compass.Node, u.InfoBox.Node)

	seen := make(map[string]struct{}, len(opts.Gauges))
	for i, name := range opts.Gauges {
		spec, ok := LookupGauge(name)
		if !ok {
			return nil, fmt.Errorf("unknown gauge '%s'", name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("gauge '%s' listed twice", name)
		}
		seen[name] = struct{}{}

		g := NewGauge(spec, opts.Theme)
		g.Node.SetPosition(gaugePositions[i].X, gaugePositions[i].Y)
		u.Gauges = append(u.Gauges, g)
		u.Scene.Add(g.Node)
	}

	if opts.Metadata != nil {
		u.Metadata = NewMetadataBox(*opts.Metadata, opts.Theme)
		u.Metadata.Node.SetPosition(metadataBoxPosition.X, metadataBoxPosition.Y)
		u.Scene.Add(u.Metadata.Node)
	}

	if opts.Playback != nil {
		u.Playback = NewPlaybackBox(*opts.Playback, opts.Theme)
		u.Playback.Node.SetPosition(playbackBoxPosition.X, playbackBoxPosition.Y)
		u.Scene.Add(u.Playback.Node)
	}

	return u, nil
}

// Update refreshes every dynamic element from a single record.
func (u *UI) Update(r *scada.Record) {
	u.Compass.SetNacelleDirection(r.NacelleDirection)
	u.Compass.SetWindDirection(r.WindDirection)
	u.InfoBox.Update(r)
	for _, g := range u.Gauges {
		g.Update(r)
	}
	if u.Playback != nil {
		u.Playback.Update(r)
	}
}

// SetProgress marks frame i, counted from zero, as the one being rendered.
func (u *UI) SetProgress(i int) {
	if u.Playback != nil {
		u.Playback.SetProgress(i)
	}
}
