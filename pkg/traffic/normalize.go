package traffic

import (
	"regexp"
	"strings"

	"github.com/jmylchreest/scout/pkg/dom"
)

// Data columns with a fixed meaning. Every other column is passed through.
const (
	ColumnNetworkFlag = 1
	ColumnSiteName    = 2
	ColumnUSFlag      = 3
	ColumnDataFlag    = 5
)

const iconTag = "img"

// reviewsSuffix matches the review count the page appends to a site name,
// e.g. "PokerStars • 12,345 reviews".
var reviewsSuffix = regexp.MustCompile(`\s*[•*]\s+(?:[\d.,]+\s*)?reviews.*$`)

// NormalizeDataRow returns the values of the data cells of row. index is the
// position of the row in the table and is only used to label problems.
// A cell that cannot be normalized keeps its raw text and is reported.
func NormalizeDataRow(index int, row *dom.Element) (Row, []*MalformedRowError) {
	cells := row.ByTag(string(DataCell))
	values := make(Row, len(cells))

	var problems []*MalformedRowError
	for i, cell := range cells {
		v, reason := normalizeCell(i, cell)
		values[i] = v
		if reason != "" {
			problems = append(problems, &MalformedRowError{Row: index, Column: i, Reason: reason})
		}
	}
	return values, problems
}

// NormalizeCell converts one data cell according to its column.
func NormalizeCell(column int, cell *dom.Element) Value {
	v, _ := normalizeCell(column, cell)
	return v
}

func normalizeCell(column int, cell *dom.Element) (Value, string) {
	text := cell.Text()

	switch column {
	case ColumnNetworkFlag:
		return Bool(len(cell.ByTag(iconTag)) > 0), ""

	case ColumnSiteName:
		return String(StripReviews(text)), ""

	case ColumnUSFlag:
		icon := firstIcon(cell)
		if icon == nil {
			return String(text), "no US players icon"
		}
		alt, ok := icon.Attr("alt")
		if !ok {
			return String(text), "US players icon has no alt text"
		}
		switch alt {
		case "Y", "y":
			return Bool(true), ""
		case "N", "n":
			return Bool(false), ""
		}
		return String(text), "unrecognized US players icon alt " + alt

	case ColumnDataFlag:
		icon := firstIcon(cell)
		if icon == nil {
			return String(text), "no data status icon"
		}
		title, ok := icon.Attr("title")
		if !ok {
			return String(text), "data status icon has no title"
		}
		return Bool(!strings.Contains(title, "not")), ""
	}

	return String(text), ""
}

// StripReviews removes a trailing "• N reviews" annotation from a site name.
func StripReviews(name string) string {
	return reviewsSuffix.ReplaceAllString(name, "")
}

func firstIcon(cell *dom.Element) *dom.Element {
	if icons := cell.ByTag(iconTag); len(icons) > 0 {
		return icons[0]
	}
	return nil
}
