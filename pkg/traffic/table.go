package traffic

import (
	"fmt"

	"github.com/jmylchreest/scout/pkg/dom"
)

// Table is a normalized snapshot of the traffic table.
type Table struct {
	Header []string
	Rows   []Row

	// Malformed lists the rows and cells that were normalized best-effort.
	Malformed []*MalformedRowError
}

// Scrape locates the table on page and normalizes its header and data rows.
func Scrape(page dom.Querier, l Locator) (*Table, error) {
	headerRow, err := l.Header(page)
	if err != nil {
		return nil, err
	}
	dataRows, err := l.Rows(page)
	if err != nil {
		return nil, err
	}

	t := &Table{
		Header: NormalizeHeaderRow(headerRow),
		Rows:   make([]Row, 0, len(dataRows)),
	}

	for i, tr := range dataRows {
		row, problems := NormalizeDataRow(i, tr)
		if len(row) != len(t.Header) {
			t.Malformed = append(t.Malformed, &MalformedRowError{
				Row:    i,
				Column: -1,
				Reason: fmt.Sprintf("has %d cells, header has %d", len(row), len(t.Header)),
			})
		}
		t.Malformed = append(t.Malformed, problems...)
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
