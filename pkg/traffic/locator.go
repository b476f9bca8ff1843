package traffic

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/scout/pkg/dom"
)

// CellKind selects header cells or data cells.
type CellKind string

const (
	HeaderCell CellKind = "th"
	DataCell   CellKind = "td"
)

// Default landmarks of the PokerScout front page.
const (
	DefaultContainer = "//div[contains(@class,'topbrown')]"
	DefaultTitle     = "Online Poker Traffic Report"
	DefaultDepth     = 6
	DefaultMarker    = 10
)

// Locator finds the traffic table from landmarks that survive restyling:
// a labeled container, the cell holding the report title, a fixed number of
// steps up from that cell, and rows wide enough to have a Marker-th cell.
type Locator struct {
	Container string `mapstructure:"container" validate:"required"`
	Title     string `mapstructure:"title" validate:"required"`
	Depth     int    `mapstructure:"depth" validate:"gte=0"`
	Marker    int    `mapstructure:"marker" validate:"gte=1"`
}

// DefaultLocator returns the landmarks of the live page.
func DefaultLocator() Locator {
	return Locator{
		Container: DefaultContainer,
		Title:     DefaultTitle,
		Depth:     DefaultDepth,
		Marker:    DefaultMarker,
	}
}

// AnchorPath is the XPath of the cell holding the report title.
func (l Locator) AnchorPath() string {
	return fmt.Sprintf("%s//td[contains(.,%s)]", l.Container, xpathLiteral(l.Title))
}

// RowPath is the XPath of the rows holding cells of the given kind.
func (l Locator) RowPath(kind CellKind) string {
	return fmt.Sprintf("%s%s//%s[%d]/..", l.AnchorPath(), strings.Repeat("/..", l.Depth), kind, l.Marker)
}

// Anchor returns the cells holding the report title.
func (l Locator) Anchor(page dom.Querier) ([]*dom.Element, error) {
	path := l.AnchorPath()
	cells, err := page.Query(path)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, &NotFoundError{Landmark: "title", Query: path}
	}
	return cells, nil
}

// Find returns the rows with cells of the given kind, in document order.
// It fails with ErrNotFound when the title landmark or the rows are missing.
func (l Locator) Find(page dom.Querier, kind CellKind) ([]*dom.Element, error) {
	if _, err := l.Anchor(page); err != nil {
		return nil, err
	}

	path := l.RowPath(kind)
	rows, err := page.Query(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		landmark := "data rows"
		if kind == HeaderCell {
			landmark = "header row"
		}
		return nil, &NotFoundError{Landmark: landmark, Query: path}
	}
	return rows, nil
}

// Header returns the row of column labels.
func (l Locator) Header(page dom.Querier) (*dom.Element, error) {
	rows, err := l.Find(page, HeaderCell)
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

// Rows returns every data row of the table.
func (l Locator) Rows(page dom.Querier) ([]*dom.Element, error) {
	return l.Find(page, DataCell)
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// sequences, so a string holding both quote kinds is built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ",") + ")"
}
