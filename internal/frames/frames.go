// Package frames writes rendered frames as a numbered PNG sequence.
package frames

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// Prefix starts every frame file name.
	Prefix = "scadaplayer_"

	// Digits is the zero-padded width of the frame index.
	Digits = 9

	ext = ".png"
)

// IOError describes a failed filesystem operation on the output directory.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// WithLogger sets the logger for the writer
func WithLogger(logger *slog.Logger) func(w *Writer) {
	return func(w *Writer) {
		w.logger = logger.With(slog.String("dir", w.dir))
	}
}

// Writer owns an output directory of frames.
type Writer struct {
	dir     string
	written int
	bytes   int64
	logger  *slog.Logger
}

// NewWriter creates a Writer for dir with a discard logger.
func NewWriter(dir string, options ...func(w *Writer)) *Writer {
	w := &Writer{
		dir:    dir,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

// Name returns the file name of frame i.
func Name(i int) string {
	return fmt.Sprintf("%s%0*d%s", Prefix, Digits, i, ext)
}

// Pattern is the glob matching every frame file name.
func Pattern() string {
	return Prefix + "*" + ext
}

// Path returns the full path of frame i.
func (w *Writer) Path(i int) string {
	return filepath.Join(w.dir, Name(i))
}

// Prepare creates the output directory and removes the frames of previous
// runs. Other files are left alone.
func (w *Writer) Prepare() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return &IOError{Op: "creating output directory", Path: w.dir, Err: err}
	}

	stale, err := filepath.Glob(filepath.Join(w.dir, Pattern()))
	if err != nil {
		return &IOError{Op: "listing frames", Path: w.dir, Err: err}
	}
	for _, path := range stale {
		if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return &IOError{Op: "removing stale frame", Path: path, Err: err}
		}
	}

	if len(stale) > 0 {
		w.logger.Info("removed stale frames", slog.Int("count", len(stale)))
	}
	return nil
}

// Write encodes img as frame i.
func (w *Writer) Write(i int, img image.Image) error {
	path := w.Path(i)
	n, err := WriteImage(path, img)
	if err != nil {
		return err
	}

	w.written++
	w.bytes += n
	return nil
}

// Written returns the number of frames and bytes written so far.
func (w *Writer) Written() (frames int, bytes int64) {
	return w.written, w.bytes
}

// WriteImage encodes img as a PNG file at path and returns its size.
func WriteImage(path string, img image.Image) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &IOError{Op: "creating frame", Path: path, Err: err}
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = &IOError{Op: "closing frame", Path: path, Err: cErr}
		}
	}()

	cw := &countingWriter{w: f}
	if err = png.Encode(cw, img); err != nil {
		return 0, &IOError{Op: "encoding frame", Path: path, Err: err}
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
