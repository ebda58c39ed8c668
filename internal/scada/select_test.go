package scada

import (
	"testing"
	"time"
)

func recordsAt(base time.Time, offsets ...time.Duration) []*Record {
	records := make([]*Record, len(offsets))
	for i, d := range offsets {
		records[i] = &Record{Timestamp: base.Add(d), WindSpeed: float64(i)}
	}
	return records
}

func TestSelect_HalfOpenWindow(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	records := recordsAt(base, 0, time.Hour, 2*time.Hour, 3*time.Hour)

	start := base.Add(time.Hour)
	end := base.Add(3 * time.Hour)

	got := Select(records, &start, &end)
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(start) {
		t.Errorf("Expected record at start boundary to be included, got %s", got[0].Timestamp)
	}
	for _, r := range got {
		if r.Timestamp.Equal(end) {
			t.Errorf("Expected record at end boundary to be excluded")
		}
	}
}

func TestSelect_OpenBounds(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	records := recordsAt(base, 2*time.Hour, 0, time.Hour)

	all := Select(records, nil, nil)
	if len(all) != len(records) {
		t.Fatalf("Expected %d records, got %d", len(records), len(all))
	}
	for i := range records {
		if all[i] != records[i] {
			t.Errorf("Record %d: expected content and order to be unchanged", i)
		}
	}

	start := base.Add(time.Hour)
	if got := Select(records, &start, nil); len(got) != 2 {
		t.Errorf("Start only: expected 2 records, got %d", len(got))
	}

	end := base.Add(time.Hour)
	if got := Select(records, nil, &end); len(got) != 1 {
		t.Errorf("End only: expected 1 record, got %d", len(got))
	}
}

func TestSelect_ZoneIndependent(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	records := []*Record{{Timestamp: time.Date(2023, 1, 1, 1, 0, 0, 0, paris)}}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Select(records, &start, nil); len(got) != 1 {
		t.Errorf("Expected instant comparison across zones, got %d records", len(got))
	}
}

func TestOrderByTimestamp_Stable(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	records := recordsAt(base, 2*time.Hour, time.Hour, 0, time.Hour, 0, 2*time.Hour)

	sorted := OrderByTimestamp(records)
	if len(sorted) != len(records) {
		t.Fatalf("Expected %d records, got %d", len(records), len(sorted))
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Timestamp.Before(sorted[i-1].Timestamp) {
			t.Fatalf("Result %d is out of order: %s before %s", i, sorted[i].Timestamp, sorted[i-1].Timestamp)
		}
	}

	// WindSpeed carries the input index
	expected := []float64{2, 4, 1, 3, 0, 5}
	for i, idx := range expected {
		if sorted[i].WindSpeed != idx {
			t.Errorf("Result %d: expected input record %v, got %v", i, idx, sorted[i].WindSpeed)
		}
	}

	if records[0].WindSpeed != 0 {
		t.Errorf("Expected input slice to be left untouched")
	}
}

func TestSelectThenOrder(t *testing.T) {
	day1 := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	records := []*Record{
		{Timestamp: day2.Add(time.Hour)},
		{Timestamp: day1},
		{Timestamp: day2},
	}

	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	got := OrderByTimestamp(Select(records, &start, nil))
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(day2) || !got[1].Timestamp.Equal(day2.Add(time.Hour)) {
		t.Errorf("Unexpected order: %s, %s", got[0].Timestamp, got[1].Timestamp)
	}
}
