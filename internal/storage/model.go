package storage

import (
	"time"
)

// Session is one imported SCADA file.
type Session struct {
	ID         int64     `json:"ID"`         // Unique identifier for the session
	StartTime  time.Time `json:"startTime"`  // When the import happened
	Source     string    `json:"source"`     // Path of the imported file, "-" for stdin
	NumRecords int64     `json:"numRecords"` // Number of records stored for the session
}

// recordData is the row layout of the records table
type recordData struct {
	SessionID        int64
	TimestampNs      int64
	UTCOffset        int64 // Seconds east of UTC
	WindSpeed        float64
	WindDirection    float64
	AirTemperature   float64
	NacelleDirection float64
	ActivePower      float64
	PitchAngle       float64
}
