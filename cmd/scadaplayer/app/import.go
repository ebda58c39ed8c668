package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/scada-player/internal/storage"
)

// ImportConfig is the configuration of the import command.
type ImportConfig struct {
	Input  string // CSV path, "" or "-" for stdin
	DBPath string
}

func (c *ImportConfig) Validate() error {
	if c.DBPath == "" {
		return errors.New("db path is required")
	}
	return nil
}

// Import parses a SCADA file and stores it as a new session. Nothing is
// stored when any row fails to parse.
func Import(ctx context.Context, config *ImportConfig, logger *slog.Logger) (sessionID int64, err error) {
	records, err := readCSV(config.Input, logger)
	if err != nil {
		return 0, err
	}

	source := config.Input
	if source == "" {
		source = StdinInput
	}

	store := storage.NewSqliteStore(config.DBPath)
	defer closeWithError(store, &err)

	if sessionID, err = store.CreateSession(ctx, source); err != nil {
		return 0, fmt.Errorf("creating session: %w", err)
	}
	if err = store.StoreRecords(ctx, sessionID, records); err != nil {
		return 0, fmt.Errorf("storing records: %w", err)
	}

	logger.Info("records imported",
		slog.Int64("sessionID", sessionID),
		slog.String("database", config.DBPath),
		slog.String("count", humanize.Comma(int64(len(records)))))

	return sessionID, nil
}

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}
