package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/roman-kulish/scada-player/internal/scada"
	"github.com/roman-kulish/scada-player/internal/scene"
)

const (
	lineStart = iota
	lineEnd
	lineCount
	lineCurrent
	linePlaybackTimestamp
	playbackLines
)

// Playback summarizes the records of a run.
type Playback struct {
	Start time.Time
	End   time.Time
	Count int
}

// NewPlayback takes the bounds of records, which must be ordered by timestamp.
func NewPlayback(records []*scada.Record) Playback {
	if len(records) == 0 {
		return Playback{}
	}
	return Playback{
		Start: records[0].Timestamp,
		End:   records[len(records)-1].Timestamp,
		Count: len(records),
	}
}

// PlaybackBox shows where the current frame sits in the run.
type PlaybackBox struct {
	Node  *scene.Node
	lines [playbackLines]*scene.Text
}

func NewPlaybackBox(p Playback, theme Theme) *PlaybackBox {
	b := &PlaybackBox{Node: scene.NewNode("playback-box", nil)}
	for i := range b.lines {
		b.lines[i] = &scene.Text{FontSize: smallFontSize, Color: theme.Text, Anchor: scene.AnchorTopLeft}
		b.Node.Add(scene.NewNode(fmt.Sprintf("playback-%d", i), b.lines[i]).SetPosition(0, -float64(i)*0.03))
	}

	b.lines[lineStart].SetContent("start: " + formatPlaybackTime(p.Start, p.Count))
	b.lines[lineEnd].SetContent("end: " + formatPlaybackTime(p.End, p.Count))
	b.lines[lineCount].SetContent("records count: " + strconv.Itoa(p.Count))
	b.lines[lineCurrent].SetContent("current record: " + notAvailable)
	b.lines[linePlaybackTimestamp].SetContent("timestamp: " + notAvailable)
	return b
}

// SetProgress marks frame i, counted from zero, as the current one.
func (b *PlaybackBox) SetProgress(i int) {
	b.lines[lineCurrent].SetContent("current record: " + strconv.Itoa(i+1))
}

// Update shows the timestamp of r.
func (b *PlaybackBox) Update(r *scada.Record) {
	b.lines[linePlaybackTimestamp].SetContent("timestamp: " + r.Timestamp.Format(scada.DisplayFormat))
}

// Lines returns the current text of each line, top to bottom.
func (b *PlaybackBox) Lines() []string {
	lines := make([]string, len(b.lines))
	for i, l := range b.lines {
		lines[i] = l.Content
	}
	return lines
}

func formatPlaybackTime(t time.Time, count int) string {
	if count == 0 {
		return notAvailable
	}
	return t.Format(scada.DisplayFormat)
}
