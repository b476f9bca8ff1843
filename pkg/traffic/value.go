// Package traffic scrapes the PokerScout traffic-ranking table.
//
// A Locator finds the header row and the data rows of the table using
// structural landmarks of the page. The normalizer turns each row's cells,
// which mix plain text, decorated text and status icons, into a Row of plain
// values ready to be written out.
package traffic

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind identifies the type held by a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindBool
)

// Value is a single normalized cell: either a string or a boolean.
type Value struct {
	kind Kind
	str  string
	b    bool
}

// Row is one normalized table row.
type Row []Value

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// AsBool returns the boolean held by v and whether v is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the string held by v and whether v is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// String renders v as written to delimited output: booleans as true/false,
// strings verbatim.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// MarshalJSON encodes booleans as JSON booleans and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.str)
	}
}

// MarshalYAML encodes v as a native YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	default:
		return v.str, nil
	}
}

// YAMLNode returns v as a scalar node. Strings are always tagged !!str so
// values such as "12000" or "N/A" keep their type on the way back in.
func (v Value) YAMLNode() *yaml.Node {
	if v.kind == KindBool {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
}

// Strings renders every value of r with Value.String.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String()
	}
	return out
}
