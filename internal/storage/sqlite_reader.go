package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/roman-kulish/scada-player/internal/scada"
)

// ErrNoData indicates that no session exists for the given parameters.
var ErrNoData = errors.New("no data available")

// RecordReader provides an iterator over the stored records of a session.
type RecordReader interface {
	// Session returns metadata about the session this reader is accessing.
	Session() *Session

	// Next advances the iterator and returns true if there is another record
	// to read, false when the iteration is complete or if an error occurred.
	Next(context.Context) bool

	// Current returns the current record. If called after Next() returns
	// false, the behavior is undefined.
	Current() *scada.Record

	// Error returns any error that occurred during iteration.
	Error() error

	// Close releases any resources associated with the reader.
	Close() error
}

// ReaderOption configures a record reader with filtering criteria.
type ReaderOption func(*SqliteRecordReader)

// WithStartTime excludes records before t. The bound is inclusive.
func WithStartTime(t time.Time) ReaderOption {
	return func(r *SqliteRecordReader) {
		r.startTime = &t
	}
}

// WithEndTime excludes records at or after t.
func WithEndTime(t time.Time) ReaderOption {
	return func(r *SqliteRecordReader) {
		r.endTime = &t
	}
}

// WithTimeRange is equivalent to applying both WithStartTime and WithEndTime.
func WithTimeRange(startTime, endTime time.Time) ReaderOption {
	return func(r *SqliteRecordReader) {
		r.startTime = &startTime
		r.endTime = &endTime
	}
}

func newSqliteRecordReader(ctx context.Context, db *sql.DB, sessionID int64, opts ...ReaderOption) (*SqliteRecordReader, error) {
	rr := &SqliteRecordReader{
		db:        db,
		sessionID: sessionID,
	}
	for _, opt := range opts {
		opt(rr)
	}
	if err := rr.init(ctx); err != nil {
		return nil, fmt.Errorf("initializing reader: %w", err)
	}
	return rr, nil
}

// SqliteRecordReader implements RecordReader for SQLite database backend.
type SqliteRecordReader struct {
	db *sql.DB

	sessionID int64
	session   *Session

	startTime *time.Time // Optional inclusive start of time range filter
	endTime   *time.Time // Optional exclusive end of time range filter

	current *scada.Record
	rows    *sql.Rows
	err     error
}

var _ RecordReader = (*SqliteRecordReader)(nil)

func (rr *SqliteRecordReader) init(ctx context.Context) error {
	if rr.db == nil {
		return errors.New("database connection required")
	}
	if rr.sessionID <= 0 {
		return errors.New("session ID required")
	}

	steps := []struct {
		msg string
		fn  func(context.Context) error
	}{
		{msg: "loading session", fn: rr.loadSession},
		{msg: "initializing query", fn: rr.initQuery},
	}
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.msg, err)
		}
	}
	return nil
}

func (rr *SqliteRecordReader) loadSession(ctx context.Context) (err error) {
	rr.session, err = querySession(ctx, rr.db, selectSessionSQL, rr.sessionID)
	return
}

func (rr *SqliteRecordReader) initQuery(ctx context.Context) (err error) {
	stmt, err := rr.db.PrepareContext(ctx, selectRecordsSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	start := toNullableNanos(rr.startTime)
	end := toNullableNanos(rr.endTime)
	if rr.rows, err = stmt.QueryContext(ctx, rr.sessionID, start, start, end, end); err != nil {
		return err
	}
	return nil
}

func (rr *SqliteRecordReader) scanRecord() (*scada.Record, error) {
	var data recordData
	err := rr.rows.Scan(
		&data.TimestampNs,
		&data.UTCOffset,
		&data.WindSpeed,
		&data.WindDirection,
		&data.AirTemperature,
		&data.NacelleDirection,
		&data.ActivePower,
		&data.PitchAngle,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning record: %w", err)
	}
	return fromRecordData(&data), nil
}

func (rr *SqliteRecordReader) Session() *Session {
	return rr.session
}

func (rr *SqliteRecordReader) Next(ctx context.Context) bool {
	if rr.err != nil || rr.rows == nil {
		return false
	}
	if err := ctx.Err(); err != nil {
		rr.err = err
		return false
	}
	if !rr.rows.Next() {
		rr.err = rr.rows.Err()
		return false
	}

	rr.current, rr.err = rr.scanRecord()
	return rr.err == nil
}

func (rr *SqliteRecordReader) Current() *scada.Record {
	return rr.current
}

func (rr *SqliteRecordReader) Error() error {
	return rr.err
}

func (rr *SqliteRecordReader) Close() error {
	if rr.rows == nil {
		return nil
	}
	err := rr.rows.Close()
	rr.rows = nil
	return err
}

// ReadAll drains a reader into a slice.
func ReadAll(ctx context.Context, r RecordReader) ([]*scada.Record, error) {
	var records []*scada.Record
	for r.Next(ctx) {
		records = append(records, r.Current())
	}
	if err := r.Error(); err != nil {
		return nil, err
	}
	return records, nil
}
