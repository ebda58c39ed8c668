package scada

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names of the SCADA input table.
const (
	ColumnTimestamp        = "timestamp"
	ColumnWindSpeed        = "wind_speed"
	ColumnWindDirection    = "wind_direction"
	ColumnAirTemperature   = "air_temperature"
	ColumnNacelleDirection = "nacelle_direction"
	ColumnActivePower      = "active_power"
	ColumnPitchAngle       = "pitch_angle"
)

// Columns lists the required columns in their canonical order.
var Columns = []string{
	ColumnTimestamp,
	ColumnWindSpeed,
	ColumnWindDirection,
	ColumnAirTemperature,
	ColumnNacelleDirection,
	ColumnActivePower,
	ColumnPitchAngle,
}

// Record is a single wind turbine telemetry sample.
type Record struct {
	Timestamp        time.Time `json:"timestamp"`        // Instant of the sample, zone-aware
	WindSpeed        float64   `json:"windSpeed"`        // Wind speed in m/s
	WindDirection    float64   `json:"windDirection"`    // Wind direction in degrees
	AirTemperature   float64   `json:"airTemperature"`   // Air temperature in °C
	NacelleDirection float64   `json:"nacelleDirection"` // Nacelle heading in degrees
	ActivePower      float64   `json:"activePower"`      // Active power in kW
	PitchAngle       float64   `json:"pitchAngle"`       // Blade pitch angle in degrees
}

// ParseRecord builds a Record from a row keyed by column name. It fails on the
// first missing or malformed field.
func ParseRecord(row map[string]string) (*Record, error) {
	var r Record

	value, err := field(row, ColumnTimestamp)
	if err != nil {
		return nil, err
	}
	if r.Timestamp, err = ParseTimestamp(value); err != nil {
		return nil, &ParseError{Field: ColumnTimestamp, Value: value, Err: err}
	}

	numbers := []struct {
		column string
		dst    *float64
	}{
		{ColumnWindSpeed, &r.WindSpeed},
		{ColumnWindDirection, &r.WindDirection},
		{ColumnAirTemperature, &r.AirTemperature},
		{ColumnNacelleDirection, &r.NacelleDirection},
		{ColumnActivePower, &r.ActivePower},
		{ColumnPitchAngle, &r.PitchAngle},
	}
	for _, n := range numbers {
		if *n.dst, err = parseNumber(row, n.column); err != nil {
			return nil, err
		}
	}

	return &r, nil
}

func field(row map[string]string, column string) (string, error) {
	value, ok := row[column]
	if !ok {
		return "", &ParseError{Field: column, Err: ErrMissingField}
	}
	return value, nil
}

func parseNumber(row map[string]string, column string) (float64, error) {
	value, err := field(row, column)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &ParseError{Field: column, Value: value, Err: ErrNotNumber}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Field: column, Value: value, Err: ErrNotFinite}
	}
	return f, nil
}

func (r *Record) String() string {
	return fmt.Sprintf("%s wind=%.1fm/s@%.0f° nacelle=%.0f° power=%.0fkW pitch=%.1f°",
		r.Timestamp.Format(time.RFC3339), r.WindSpeed, r.WindDirection, r.NacelleDirection, r.ActivePower, r.PitchAngle)
}
