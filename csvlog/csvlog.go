// Package csvlog writes training metric snapshots as CSV rows, one per
// snapshot: iteration, policy value, NashConv. The output has no header so
// runs can be concatenated or resumed into the same file.
package csvlog

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Writer streams metric rows to an underlying writer. It implements
// cfr.MetricsLogger. Each row is flushed immediately so a partial file is
// readable while training is still running.
type Writer struct {
	w     *csv.Writer
	close io.Closer
}

// New returns a Writer emitting rows to w.
func New(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// Create opens (or truncates) the file at path and returns a Writer that
// owns it. Close releases the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating metrics file %s", path)
	}

	return &Writer{w: csv.NewWriter(f), close: f}, nil
}

// LogMetrics appends one row and flushes it.
func (w *Writer) LogMetrics(iteration int, policyValue, nashConv float64) error {
	row := []string{
		strconv.Itoa(iteration),
		strconv.FormatFloat(policyValue, 'g', -1, 64),
		strconv.FormatFloat(nashConv, 'g', -1, 64),
	}
	if err := w.w.Write(row); err != nil {
		return errors.Wrap(err, "writing metrics row")
	}

	w.w.Flush()
	return errors.Wrap(w.w.Error(), "flushing metrics row")
}

// Close flushes buffered rows and closes the underlying file, if the
// Writer owns one.
func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return errors.Wrap(err, "flushing metrics")
	}

	if w.close == nil {
		return nil
	}

	return errors.Wrap(w.close.Close(), "closing metrics file")
}
