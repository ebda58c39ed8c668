package scada

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validRow() map[string]string {
	return map[string]string{
		ColumnTimestamp:        "2023-05-01T12:30:00+02:00",
		ColumnWindSpeed:        "7.25",
		ColumnWindDirection:    "270.5",
		ColumnAirTemperature:   "-3.1",
		ColumnNacelleDirection: "265",
		ColumnActivePower:      "1234.7",
		ColumnPitchAngle:       "2.5",
	}
}

func TestParseRecord(t *testing.T) {
	r, err := ParseRecord(validRow())
	if err != nil {
		t.Fatalf("Failed to parse record: %v", err)
	}

	expected := time.Date(2023, 5, 1, 10, 30, 0, 0, time.UTC)
	if !r.Timestamp.Equal(expected) {
		t.Errorf("Expected timestamp %s, got %s", expected, r.Timestamp)
	}
	if _, offset := r.Timestamp.Zone(); offset != 2*3600 {
		t.Errorf("Expected +02:00 offset to be kept, got %d seconds", offset)
	}

	fields := []struct {
		name     string
		got      float64
		expected float64
	}{
		{ColumnWindSpeed, r.WindSpeed, 7.25},
		{ColumnWindDirection, r.WindDirection, 270.5},
		{ColumnAirTemperature, r.AirTemperature, -3.1},
		{ColumnNacelleDirection, r.NacelleDirection, 265},
		{ColumnActivePower, r.ActivePower, 1234.7},
		{ColumnPitchAngle, r.PitchAngle, 2.5},
	}
	for _, f := range fields {
		if f.got != f.expected {
			t.Errorf("Field %s: expected %v, got %v", f.name, f.expected, f.got)
		}
	}
}

func TestParseRecord_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(map[string]string)
		field  string
		cause  error
	}{
		{"missing pitch angle", func(m map[string]string) { delete(m, ColumnPitchAngle) }, ColumnPitchAngle, ErrMissingField},
		{"missing timestamp", func(m map[string]string) { delete(m, ColumnTimestamp) }, ColumnTimestamp, ErrMissingField},
		{"non numeric speed", func(m map[string]string) { m[ColumnWindSpeed] = "fast" }, ColumnWindSpeed, ErrNotNumber},
		{"empty power", func(m map[string]string) { m[ColumnActivePower] = "" }, ColumnActivePower, ErrNotNumber},
		{"nan direction", func(m map[string]string) { m[ColumnWindDirection] = "NaN" }, ColumnWindDirection, ErrNotFinite},
		{"infinite pitch", func(m map[string]string) { m[ColumnPitchAngle] = "+Inf" }, ColumnPitchAngle, ErrNotFinite},
		{"bad timestamp", func(m map[string]string) { m[ColumnTimestamp] = "yesterday" }, ColumnTimestamp, errBadTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.modify(row)

			r, err := ParseRecord(row)
			if err == nil {
				t.Fatalf("Expected error, got record %v", r)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
			if perr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, perr.Field)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("Expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}

func TestParseRecord_SurroundingSpace(t *testing.T) {
	row := validRow()
	row[ColumnWindSpeed] = "1.0 "
	row[ColumnActivePower] = " 800\t"

	r, err := ParseRecord(row)
	if err != nil {
		t.Fatalf("Failed to parse record: %v", err)
	}
	if r.WindSpeed != 1 || r.ActivePower != 800 {
		t.Errorf("Expected 1 and 800, got %v and %v", r.WindSpeed, r.ActivePower)
	}

	row[ColumnPitchAngle] = "   "
	if _, err = ParseRecord(row); !errors.Is(err, ErrNotNumber) {
		t.Errorf("Expected ErrNotNumber for a blank value, got %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		value    string
		expected time.Time
	}{
		{"2023-01-02T03:04:05Z", time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2023-01-02 03:04:05", time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2023-01-02T03:04:05.250", time.Date(2023, 1, 2, 3, 4, 5, 250_000_000, time.UTC)},
		{"2023-01-02T03:04:05-05:00", time.Date(2023, 1, 2, 8, 4, 5, 0, time.UTC)},
		{"2023-01-02 03:04+01:00", time.Date(2023, 1, 2, 2, 4, 0, 0, time.UTC)},
		{"2023-01-02T03:04", time.Date(2023, 1, 2, 3, 4, 0, 0, time.UTC)},
		{"2023-01-02", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2020-01-01T00:00:00+0000", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-01-01T01:30:00+0130", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-01-01 01:00:00+01", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-01-01T03-02", time.Date(2020, 1, 1, 5, 0, 0, 0, time.UTC)},
		{"2020-01-01T07", time.Date(2020, 1, 1, 7, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.value)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.value, err)
			continue
		}
		if !got.Equal(tt.expected) {
			t.Errorf("%q: expected %s, got %s", tt.value, tt.expected, got)
		}
	}

	for _, bad := range []string{"", "02/01/2023", "2023-13-01", "2023-01-02T25:00:00"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestLoadAll(t *testing.T) {
	input := strings.Join([]string{
		"timestamp,wind_speed,wind_direction,air_temperature,nacelle_direction,active_power,pitch_angle",
		"2023-01-02T00:00:00Z,5.0,90,10,80,500,1",
		"2023-01-01T00:00:00Z,6.0,180,11,170,600,2",
	}, "\n")

	records, err := LoadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to load records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].WindSpeed != 5 || records[1].WindSpeed != 6 {
		t.Errorf("Expected input order to be kept, got %v, %v", records[0], records[1])
	}
}

func TestLoadAll_ReorderedColumns(t *testing.T) {
	input := "pitch_angle,timestamp,active_power,wind_speed,wind_direction,nacelle_direction,air_temperature,extra\n" +
		"3.5,2023-01-01 10:00:00,42,1.5,10,20,-1,ignored\n"

	records, err := LoadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to load records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.PitchAngle != 3.5 || r.ActivePower != 42 || r.AirTemperature != -1 {
		t.Errorf("Columns mapped incorrectly: %+v", r)
	}
}

func TestLoadAll_Empty(t *testing.T) {
	for _, input := range []string{"", strings.Join(Columns, ",") + "\n"} {
		records, err := LoadAll(strings.NewReader(input))
		if err != nil {
			t.Errorf("%q: unexpected error: %v", input, err)
		}
		if len(records) != 0 {
			t.Errorf("%q: expected no records, got %d", input, len(records))
		}
	}
}

func TestLoadAll_FailFast(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{
			name: "missing pitch angle column",
			input: "timestamp,wind_speed,wind_direction,air_temperature,nacelle_direction,active_power\n" +
				"2023-01-01T00:00:00Z,5,90,10,80,500\n",
			line: 1,
		},
		{
			name: "malformed second row",
			input: strings.Join(Columns, ",") + "\n" +
				"2023-01-01T00:00:00Z,5,90,10,80,500,1\n" +
				"2023-01-01T00:10:00Z,5,90,10,80,oops,1\n",
			line: 2,
		},
		{
			name: "short row",
			input: strings.Join(Columns, ",") + "\n" +
				"2023-01-01T00:00:00Z,5,90\n",
			line: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := LoadAll(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if records != nil {
				t.Errorf("Expected no partial result, got %d records", len(records))
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected *ParseError, got %T: %v", err, err)
			}
			if perr.Line != tt.line {
				t.Errorf("Expected line %d, got %d", tt.line, perr.Line)
			}
		})
	}
}
