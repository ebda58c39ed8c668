package scada

import (
	"slices"
	"time"
)

// Select keeps the records inside the half-open window [start, end). A nil
// bound leaves that side of the window open. Input order is preserved.
func Select(records []*Record, start, end *time.Time) []*Record {
	selected := make([]*Record, 0, len(records))
	for _, r := range records {
		if start != nil && r.Timestamp.Before(*start) {
			continue
		}
		if end != nil && !r.Timestamp.Before(*end) {
			continue
		}
		selected = append(selected, r)
	}
	return selected
}

// OrderByTimestamp returns the records sorted by ascending timestamp. Records
// sharing a timestamp keep their relative input order.
func OrderByTimestamp(records []*Record) []*Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b *Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return sorted
}
