package storage

import (
	"context"

	_ "github.com/mattn/go-sqlite3"
	"github.com/roman-kulish/scada-player/internal/scada"
)

// Store keeps imported SCADA sessions so that they can be replayed without
// parsing the original file again.
type Store interface {
	// CreateSession registers a new import and returns its unique identifier.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - source: Path of the imported file, "-" for stdin
	//
	// Returns:
	//   - sessionID: Unique identifier for the created session
	//   - error: If session creation fails or context is cancelled
	CreateSession(ctx context.Context, source string) (sessionID int64, err error)

	// Session retrieves a session by its ID.
	Session(ctx context.Context, id int64) (*Session, error)

	// LatestSession retrieves the most recently created session. It returns
	// ErrNoData when the store holds no sessions.
	LatestSession(ctx context.Context) (*Session, error)

	// StoreRecords saves records for a session in a single atomic transaction.
	// Record order is preserved for records sharing a timestamp.
	StoreRecords(ctx context.Context, sessionID int64, records []*scada.Record) error

	// Close releases all database connections. It is safe to call Close
	// multiple times.
	Close() error
}
