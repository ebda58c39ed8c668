package app

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/scada-player/internal/frames"
	"github.com/roman-kulish/scada-player/internal/render"
	"github.com/roman-kulish/scada-player/internal/scada"
	"github.com/roman-kulish/scada-player/internal/storage"
	"github.com/roman-kulish/scada-player/internal/ui"
)

var stdin io.Reader = os.Stdin

// renderBackend is a render.Backend holding resources until closed.
type renderBackend interface {
	render.Backend
	Close() error
}

var newBackend = func(surface *render.Surface, config render.Config) (renderBackend, error) {
	return render.NewRasterizer(surface, config)
}

// frameWriter is the part of frames.Writer the pipeline depends on.
type frameWriter interface {
	Prepare() error
	Write(i int, img image.Image) error
	Written() (frames int, bytes int64)
}

// Run loads the records, keeps the ones inside the configured window and
// renders one frame per record into the output directory. Nothing is written
// until every record has been parsed.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	records, err := loadRecords(ctx, config, logger)
	if err != nil {
		return err
	}

	records = scada.OrderByTimestamp(scada.Select(records, config.Start, config.End))

	logger.Info("records selected",
		slog.String("count", humanize.Comma(int64(len(records)))),
		slog.String("start", formatBound(config.Start)),
		slog.String("end", formatBound(config.End)))

	theme, err := config.Render.Theme()
	if err != nil {
		return err
	}

	surface, err := render.NewOffscreenSurface(config.Render.Width, config.Render.Height, config.Render.PixelRatio)
	if err != nil {
		return err
	}

	backend, err := newBackend(surface, render.Config{Background: theme.Background})
	if err != nil {
		return err
	}
	defer backend.Close()

	opts := ui.Options{
		Theme:    theme,
		Gauges:   config.Render.Gauges,
		Metadata: config.Render.Metadata,
	}
	if config.Render.Playback {
		playback := ui.NewPlayback(records)
		opts.Playback = &playback
	}

	view, err := ui.New(opts)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	logger.Info("rendering frames",
		slog.Group("image",
			slog.String("destination", config.OutputDir),
			slog.Int("width", surface.Bounds().Dx()),
			slog.Int("height", surface.Bounds().Dy()),
		))

	writer := frames.NewWriter(config.OutputDir, frames.WithLogger(logger))
	return play(ctx, records, view, backend, writer, logger)
}

func play(ctx context.Context, records []*scada.Record, view *ui.UI, backend render.Backend, writer frameWriter, logger *slog.Logger) error {
	if err := writer.Prepare(); err != nil {
		return err
	}

	total := len(records)
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped after %d of %d frames: %w", i, total, err)
		}

		view.SetProgress(i)
		view.Update(r)

		img, err := backend.Render(view.Scene, view.Camera)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err = writer.Write(i, img); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		logger.Info("frame written",
			slog.String("progress", fmt.Sprintf("%d/%d", i+1, total)),
			slog.String("timestamp", r.Timestamp.Format(scada.DisplayFormat)))
	}

	n, size := writer.Written()
	logger.Info("finished rendering",
		slog.String("frames", humanize.Comma(int64(n))),
		slog.String("size", humanize.Bytes(uint64(size))))

	return nil
}

func loadRecords(ctx context.Context, config *Config, logger *slog.Logger) ([]*scada.Record, error) {
	if config.DBPath != "" {
		return readStore(ctx, config, logger)
	}
	return readCSV(config.Input, logger)
}

func readCSV(path string, logger *slog.Logger) (records []*scada.Record, err error) {
	var r io.Reader = stdin
	if path != "" && path != StdinInput {
		f, err := os.Open(path)
		if err != nil {
			return nil, &frames.IOError{Op: "opening input", Path: path, Err: err}
		}
		defer f.Close()
		r = f
	} else {
		path = StdinInput
	}

	logger.Info("reading records", slog.String("input", path))

	if records, err = scada.LoadAll(r); err != nil {
		return nil, fmt.Errorf("reading '%s': %w", path, err)
	}

	logger.Info("finished reading records", slog.String("count", humanize.Comma(int64(len(records)))))
	return records, nil
}

func readStore(ctx context.Context, config *Config, logger *slog.Logger) ([]*scada.Record, error) {
	if _, err := os.Stat(config.DBPath); err != nil {
		return nil, &frames.IOError{Op: "opening database", Path: config.DBPath, Err: err}
	}

	store := storage.NewSqliteStore(config.DBPath)
	defer store.Close()

	var session *storage.Session
	var err error
	if config.SessionID > 0 {
		session, err = store.Session(ctx, config.SessionID)
	} else {
		session, err = store.LatestSession(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var opts []storage.ReaderOption
	switch {
	case config.Start != nil && config.End != nil:
		opts = append(opts, storage.WithTimeRange(*config.Start, *config.End))
	case config.Start != nil:
		opts = append(opts, storage.WithStartTime(*config.Start))
	case config.End != nil:
		opts = append(opts, storage.WithEndTime(*config.End))
	}

	logger.Info("reading records",
		slog.Group("session",
			slog.Int64("id", session.ID),
			slog.String("source", session.Source),
			slog.String("imported", session.StartTime.Format(time.DateTime)),
			slog.String("records", humanize.Comma(session.NumRecords)),
		))

	iter, err := store.ReadRecords(ctx, session.ID, opts...)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	return storage.ReadAll(ctx, iter)
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.Format(time.RFC3339)
}
