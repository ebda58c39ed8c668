package scada

import (
	"errors"
	"strings"
	"time"
)

// DisplayFormat is the layout used to print record timestamps.
const DisplayFormat = time.DateTime

var errBadTimestamp = errors.New("not an ISO-8601 datetime")

// ISO-8601 layouts, zoned ones first. Fractional seconds are accepted by
// time.Parse after the seconds field even though the layouts omit them.
var (
	zonedLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04Z07:00",
		"2006-01-02T15:04:05Z0700",
		"2006-01-02 15:04:05Z0700",
		"2006-01-02T15:04Z0700",
		"2006-01-02 15:04Z0700",
		"2006-01-02T15:04:05Z07",
		"2006-01-02 15:04:05Z07",
		"2006-01-02T15:04Z07",
		"2006-01-02 15:04Z07",
		"2006-01-02T15Z07:00",
		"2006-01-02T15Z0700",
		"2006-01-02T15Z07",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02T15",
		"2006-01-02 15",
		time.DateOnly,
	}
)

// ParseTimestamp parses an ISO-8601 datetime. Values without a UTC offset
// are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errBadTimestamp
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errBadTimestamp
}
