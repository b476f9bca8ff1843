// Package output writes a scraped traffic table in one of several formats.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/scout/pkg/traffic"
)

// Format represents output format types.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatJSON, FormatJSONL, FormatYAML}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	default:
		return "." + string(f)
	}
}

// Writer serializes one table: the header first, then its rows in order.
type Writer interface {
	// WriteHeader records the column names. It must be called once, first.
	WriteHeader(names []string) error

	// WriteRow outputs a single row.
	WriteRow(row traffic.Row) error

	// Flush ensures all data is written.
	Flush() error

	// Close flushes and releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	escape bool
	pretty bool
	indent string
}

// WithEscape turns on RFC 4180 quoting of CSV fields that hold a comma,
// a double quote or a line break. Off by default, which writes fields
// exactly as scraped.
func WithEscape(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.escape = enabled
	}
}

// WithPretty enables pretty-printing of JSON output.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the JSON indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the given format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatCSV, "":
		return NewCSVWriter(w, cfg.escape), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteTable writes t through w and flushes it.
func WriteTable(w Writer, t *traffic.Table) error {
	if err := w.WriteHeader(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return w.Flush()
}
