package traffic

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/scout/pkg/dom"
)

// Column names the normalizer gives to the terse labels of the page.
const (
	ColumnIsNetwork     = "Is Network"
	ColumnRank          = "Rank"
	ColumnAllowsUS      = "Allows US Players"
	ColumnIsDataCurrent = "Is Data Current"
)

var headerNames = map[string]string{
	"":     ColumnIsNetwork,
	"#":    ColumnRank,
	"US":   ColumnAllowsUS,
	"Data": ColumnIsDataCurrent,
}

var nonWord = regexp.MustCompile(`\W`)

// NormalizeHeader maps a raw header label to its column name and quotes the
// result when it contains a non-word character, so it stays a single field
// in comma-delimited output. Already quoted names are returned unchanged.
func NormalizeHeader(raw string) string {
	name := raw
	if mapped, ok := headerNames[raw]; ok {
		name = mapped
	}
	if isQuoted(name) || !nonWord.MatchString(name) {
		return name
	}
	return `"` + name + `"`
}

// NormalizeHeaderRow returns the column names for the header cells of row.
func NormalizeHeaderRow(row *dom.Element) []string {
	cells := row.ByTag(string(HeaderCell))
	names := make([]string, len(cells))
	for i, cell := range cells {
		names[i] = NormalizeHeader(cell.Text())
	}
	return names
}

// Unquote strips the quotes NormalizeHeader added, for formats that carry
// column names as keys rather than delimited text.
func Unquote(name string) string {
	if isQuoted(name) {
		return name[1 : len(name)-1]
	}
	return name
}

func isQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}
