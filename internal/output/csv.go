package output

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/jmylchreest/scout/pkg/traffic"
)

var errHeaderWritten = errors.New("header already written")

// CSVWriter writes comma-separated lines: the header names, then one line
// per row with booleans as true/false. Header names arrive already quoted
// where needed and are written as they are.
type CSVWriter struct {
	w      *bufio.Writer
	escape bool
	header bool
}

// NewCSVWriter creates a CSV writer. With escape set, data fields holding
// a comma, quote or line break are quoted and inner quotes doubled.
func NewCSVWriter(w io.Writer, escape bool) *CSVWriter {
	return &CSVWriter{
		w:      bufio.NewWriter(w),
		escape: escape,
	}
}

// WriteHeader writes the header line.
func (w *CSVWriter) WriteHeader(names []string) error {
	if w.header {
		return errHeaderWritten
	}
	w.header = true
	return w.writeLine(names, false)
}

// WriteRow writes a single data line.
func (w *CSVWriter) WriteRow(row traffic.Row) error {
	return w.writeLine(row.Strings(), w.escape)
}

func (w *CSVWriter) writeLine(fields []string, escape bool) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.w.WriteByte(','); err != nil {
				return err
			}
		}
		if escape {
			f = quoteField(f)
		}
		if _, err := w.w.WriteString(f); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// Flush flushes the buffer.
func (w *CSVWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}

func quoteField(f string) string {
	if !strings.ContainsAny(f, ",\"\r\n") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}
