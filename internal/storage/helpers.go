package storage

import (
	"time"

	"github.com/roman-kulish/scada-player/internal/scada"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	if cErr := rb.Rollback(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func toRecordData(sessionID int64, r *scada.Record) *recordData {
	_, offset := r.Timestamp.Zone()
	return &recordData{
		SessionID:        sessionID,
		TimestampNs:      r.Timestamp.UnixNano(),
		UTCOffset:        int64(offset),
		WindSpeed:        r.WindSpeed,
		WindDirection:    r.WindDirection,
		AirTemperature:   r.AirTemperature,
		NacelleDirection: r.NacelleDirection,
		ActivePower:      r.ActivePower,
		PitchAngle:       r.PitchAngle,
	}
}

func fromRecordData(d *recordData) *scada.Record {
	return &scada.Record{
		Timestamp:        time.Unix(0, d.TimestampNs).In(zone(d.UTCOffset)),
		WindSpeed:        d.WindSpeed,
		WindDirection:    d.WindDirection,
		AirTemperature:   d.AirTemperature,
		NacelleDirection: d.NacelleDirection,
		ActivePower:      d.ActivePower,
		PitchAngle:       d.PitchAngle,
	}
}

func zone(offset int64) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", int(offset))
}

// toNullableNanos converts an optional bound into a query argument.
func toNullableNanos(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}
