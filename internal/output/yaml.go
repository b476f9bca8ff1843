package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/scout/pkg/traffic"
)

// YAMLWriter writes the table as a YAML sequence of row mappings.
type YAMLWriter struct {
	w    *bufio.Writer
	keys []string
	seq  *yaml.Node
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:   bufio.NewWriter(w),
		seq: &yaml.Node{Kind: yaml.SequenceNode},
	}
}

// WriteHeader records the keys used for every row.
func (w *YAMLWriter) WriteHeader(names []string) error {
	if w.keys != nil {
		return errHeaderWritten
	}
	w.keys = keysFor(names)
	return nil
}

// WriteRow buffers a single row.
func (w *YAMLWriter) WriteRow(row traffic.Row) error {
	w.seq.Content = append(w.seq.Content, newRecord(w.keys, row).yamlNode())
	return nil
}

// Flush writes the buffered rows as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(w.seq); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	w.seq.Content = nil
	return w.w.Flush()
}

// Close flushes the writer.
func (w *YAMLWriter) Close() error {
	if len(w.seq.Content) == 0 {
		return w.w.Flush()
	}
	return w.Flush()
}
