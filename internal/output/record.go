package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/scout/pkg/traffic"
)

// record is one row keyed by column name, keeping column order.
type record struct {
	keys   []string
	values traffic.Row
}

// keysFor returns the plain column names used as record keys.
func keysFor(header []string) []string {
	keys := make([]string, len(header))
	for i, name := range header {
		keys[i] = traffic.Unquote(name)
	}
	return keys
}

func newRecord(keys []string, row traffic.Row) record {
	r := record{keys: make([]string, len(row)), values: row}
	for i := range row {
		if i < len(keys) {
			r.keys[i] = keys[i]
		} else {
			r.keys[i] = fmt.Sprintf("column_%d", i)
		}
	}
	return r
}

// MarshalJSON writes the record as an object with keys in column order.
func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// yamlNode returns the record as a mapping node with keys in column order.
func (r record) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range r.keys {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			r.values[i].YAMLNode(),
		)
	}
	return n
}
