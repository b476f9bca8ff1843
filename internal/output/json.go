package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/jmylchreest/scout/pkg/traffic"
)

// JSONWriter writes the table as a JSON array of row objects.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	keys   []string
	items  []record
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]record, 0),
	}
}

// WriteHeader records the keys used for every row.
func (w *JSONWriter) WriteHeader(names []string) error {
	if w.keys != nil {
		return errHeaderWritten
	}
	w.keys = keysFor(names)
	return nil
}

// WriteRow buffers a single row for array output.
func (w *JSONWriter) WriteRow(row traffic.Row) error {
	w.items = append(w.items, newRecord(w.keys, row))
	return nil
}

// Flush writes the buffered rows as a JSON array.
func (w *JSONWriter) Flush() error {
	var output []byte
	var err error
	if w.pretty {
		output, err = json.MarshalIndent(w.items, "", w.indent)
	} else {
		output, err = json.Marshal(w.items)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	w.items = w.items[:0]
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *JSONWriter) Close() error {
	if len(w.items) == 0 {
		return w.w.Flush()
	}
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL), one object per row.
type JSONLWriter struct {
	w    *bufio.Writer
	keys []string
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// WriteHeader records the keys used for every row.
func (w *JSONLWriter) WriteHeader(names []string) error {
	if w.keys != nil {
		return errHeaderWritten
	}
	w.keys = keysFor(names)
	return nil
}

// WriteRow writes a single row as a JSON line.
func (w *JSONLWriter) WriteRow(row traffic.Row) error {
	output, err := json.Marshal(newRecord(w.keys, row))
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	_, err = w.w.WriteString("\n")
	return err
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
