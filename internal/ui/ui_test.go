package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/roman-kulish/scada-player/internal/scada"
	"github.com/roman-kulish/scada-player/internal/scene"
)

func testRecord() *scada.Record {
	return &scada.Record{
		Timestamp:        time.Date(2023, 5, 1, 12, 30, 45, 0, time.UTC),
		WindSpeed:        7.25,
		WindDirection:    90,
		AirTemperature:   12.3,
		NacelleDirection: 45.9,
		ActivePower:      1234.7,
		PitchAngle:       2.99,
	}
}

func newUI(t *testing.T, opts Options) *UI {
	t.Helper()
	if opts.Theme.Text == nil {
		opts.Theme = DefaultTheme()
	}
	u, err := New(opts)
	if err != nil {
		t.Fatalf("Failed to build UI: %v", err)
	}
	return u
}

func TestUpdate_Rotations(t *testing.T) {
	u := newUI(t, Options{})

	r := testRecord()
	u.Update(r)

	if got, expected := u.Compass.WindRotation(), -math.Pi/2; math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected wind rotation %v, got %v", expected, got)
	}
	if got, expected := u.Compass.TurbineRotation(), -scene.Radians(45.9); math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected turbine rotation %v, got %v", expected, got)
	}

	r.WindDirection = 0
	u.Update(r)
	if got := u.Compass.WindRotation(); got != 0 {
		t.Errorf("Expected no rotation for wind direction 0, got %v", got)
	}
}

func TestUpdate_WindArrowPointsClockwise(t *testing.T) {
	u := newUI(t, Options{})
	r := testRecord()
	r.WindDirection = 90
	u.Update(r)

	arrow := u.Scene.Find("wind-direction")
	tip := arrow.World().Apply(scene.Vec2{Y: 0.42})
	if math.Abs(tip.X-0.42) > 1e-9 || math.Abs(tip.Y) > 1e-9 {
		t.Errorf("Expected arrow tip at (0.42, 0), got %v", tip)
	}
}

func TestInfoBox_Lines(t *testing.T) {
	u := newUI(t, Options{})
	u.Update(testRecord())

	expected := []string{
		"timestamp: 2023-05-01 12:30:45",
		"wind speed: 7.2m.s⁻¹",
		"wind direction: 90°",
		"nacelle direction: 45°",
		"active power: 1234kW",
		"pitch angle: 2°",
	}
	got := u.InfoBox.Lines()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d lines, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestInfoBox_FloorNotRound(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{1234.7, "1234"},
		{1234.0, "1234"},
		{-0.5, "-1"},
		{-0.0, "0"},
		{0.999, "0"},
	}
	for _, tt := range tests {
		if got := floor(tt.value); got != tt.expected {
			t.Errorf("floor(%v): expected %s, got %s", tt.value, tt.expected, got)
		}
	}
}

func TestInfoBox_FullRefresh(t *testing.T) {
	u := newUI(t, Options{})
	first := testRecord()
	u.Update(first)

	second := &scada.Record{Timestamp: first.Timestamp.Add(time.Hour)}
	u.Update(second)

	for i, line := range u.InfoBox.Lines() {
		if strings.Contains(line, "1234") || strings.Contains(line, "12:30:45") {
			t.Errorf("Line %d still shows the previous record: %q", i, line)
		}
	}
	if u.Compass.WindRotation() != 0 || u.Compass.TurbineRotation() != 0 {
		t.Error("Expected rotations to be reset by the second record")
	}
}

func TestInfoBox_Layout(t *testing.T) {
	u := newUI(t, Options{})
	for i, n := range u.InfoBox.Node.Children() {
		p := n.World().Apply(scene.Vec2{})
		expectedY := 0.5 - float64(i)*lineSpacing
		if math.Abs(p.X+0.65) > 1e-12 || math.Abs(p.Y-expectedY) > 1e-12 {
			t.Errorf("Line %d: expected at (-0.65, %v), got %v", i, expectedY, p)
		}
	}
}

func TestCompass_Topology(t *testing.T) {
	c := NewCompass(DefaultTheme())

	ticks, ok := c.Node.Find("ticks").Drawable.(*scene.Segments)
	if !ok {
		t.Fatal("Expected ticks to be segments")
	}
	if len(ticks.Pairs) != 72 {
		t.Errorf("Expected 72 ticks, got %d", len(ticks.Pairs))
	}

	east := c.Node.Find("label-E").Local.Position
	north := c.Node.Find("label-N").Local.Position
	if math.Abs(east.X-labelRadius) > 1e-12 || math.Abs(north.Y-labelRadius) > 1e-12 {
		t.Errorf("Unexpected cardinal label positions E=%v N=%v", east, north)
	}
}

func TestGauge_Clamp(t *testing.T) {
	spec, _ := LookupGauge(GaugeActivePower)
	g := NewGauge(spec, DefaultTheme())

	g.Set(-100)
	low := g.NeedleRotation()
	g.Set(0)
	if g.NeedleRotation() != low {
		t.Errorf("Expected values below the scale to pin at minimum")
	}

	g.Set(5000)
	high := g.NeedleRotation()
	g.Set(2000)
	if g.NeedleRotation() != high {
		t.Errorf("Expected values above the scale to pin at maximum")
	}

	if math.Abs((low-high)-gaugeSweep) > 1e-12 {
		t.Errorf("Expected needle sweep of %v, got %v", gaugeSweep, low-high)
	}

	g.Set(1000)
	if math.Abs(g.NeedleRotation()-math.Pi/2) > 1e-12 {
		t.Errorf("Expected mid-scale needle to point up, got %v", g.NeedleRotation())
	}
}

func TestGauge_Readout(t *testing.T) {
	u := newUI(t, Options{Gauges: []string{GaugeWindSpeed, GaugeActivePower}})
	u.Update(testRecord())

	wind := u.Gauges[0].readout.Content
	if wind != "7.2m.s⁻¹" {
		t.Errorf("Unexpected wind speed readout %q", wind)
	}
	power := u.Gauges[1].readout.Content
	if power != "1234kW" {
		t.Errorf("Unexpected power readout %q", power)
	}

	// Gauge and info box show the same active power
	if line := u.InfoBox.Lines()[lineActivePower]; line != "active power: "+power {
		t.Errorf("Expected info box to agree with gauge %q, got %q", power, line)
	}
}

func TestNew_InvalidGauges(t *testing.T) {
	tests := [][]string{
		{"rotor_speed"},
		{GaugeWindSpeed, GaugeWindSpeed},
		{GaugeWindSpeed, GaugeActivePower, GaugePitchAngle, GaugeAirTemperature, GaugeWindSpeed},
	}
	for _, gauges := range tests {
		if _, err := New(Options{Theme: DefaultTheme(), Gauges: gauges}); err == nil {
			t.Errorf("%v: expected error", gauges)
		}
	}
}

func TestMetadataBox(t *testing.T) {
	power := 2050.0
	u := newUI(t, Options{Metadata: &Metadata{Farm: "Le Haut Plateau", NominalPower: &power}})

	expected := []string{
		"farm: Le Haut Plateau",
		"turbine: N/A",
		"turbine model: N/A",
		"nominal power: 2050 kW",
	}
	got := u.Metadata.Lines()
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestPlaybackBox(t *testing.T) {
	base := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	records := make([]*scada.Record, 3)
	for i := range records {
		records[i] = &scada.Record{Timestamp: base.Add(time.Duration(i) * 10 * time.Minute)}
	}

	playback := NewPlayback(records)
	u := newUI(t, Options{Playback: &playback})

	tests := []struct {
		frame    int
		expected []string
	}{
		{0, []string{
			"start: 2023-05-01 00:00:00",
			"end: 2023-05-01 00:20:00",
			"records count: 3",
			"current record: 1",
			"timestamp: 2023-05-01 00:00:00",
		}},
		{2, []string{
			"start: 2023-05-01 00:00:00",
			"end: 2023-05-01 00:20:00",
			"records count: 3",
			"current record: 3",
			"timestamp: 2023-05-01 00:20:00",
		}},
	}
	for _, tt := range tests {
		u.SetProgress(tt.frame)
		u.Update(records[tt.frame])

		got := u.Playback.Lines()
		if len(got) != len(tt.expected) {
			t.Fatalf("Frame %d: expected %d lines, got %d", tt.frame, len(tt.expected), len(got))
		}
		for i := range tt.expected {
			if got[i] != tt.expected[i] {
				t.Errorf("Frame %d line %d: expected %q, got %q", tt.frame, i, tt.expected[i], got[i])
			}
		}
	}
}

func TestPlaybackBox_Hidden(t *testing.T) {
	u := newUI(t, Options{})
	u.SetProgress(4)
	u.Update(testRecord())
	if u.Playback != nil || u.Scene.Find("playback-box") != nil {
		t.Error("Expected no playback box by default")
	}
}

func TestNewPlayback_Empty(t *testing.T) {
	b := NewPlaybackBox(NewPlayback(nil), DefaultTheme())
	got := b.Lines()
	if got[lineStart] != "start: N/A" || got[lineCount] != "records count: 0" {
		t.Errorf("Unexpected empty playback lines %v", got)
	}
}
