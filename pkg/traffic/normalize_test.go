package traffic

import (
	"errors"
	"testing"

	"github.com/jmylchreest/scout/pkg/dom"
)

// cell parses a single <td> from markup.
func cell(t *testing.T, inner string) *dom.Element {
	t.Helper()
	doc, err := dom.ParseString("<table><tr><td>" + inner + "</td></tr></table>")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	cells, err := doc.Query("//td")
	if err != nil || len(cells) != 1 {
		t.Fatalf("expected one cell, got %d (err %v)", len(cells), err)
	}
	return cells[0]
}

func assertValue(t *testing.T, got, want Value) {
	t.Helper()
	if got.Kind() != want.Kind() || got.String() != want.String() {
		t.Errorf("got %v (kind %d), want %v (kind %d)", got, got.Kind(), want, want.Kind())
	}
}

func TestNormalizeCell_NetworkFlag(t *testing.T) {
	tests := []struct {
		name  string
		inner string
		want  bool
	}{
		{"icon", `<img src="network.gif">`, true},
		{"icon with text", `Network <img src="network.gif">`, true},
		{"two icons", `<img src="a.gif"><img src="b.gif">`, true},
		{"text only", `Network`, false},
		{"empty", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValue(t, NormalizeCell(ColumnNetworkFlag, cell(t, tt.inner)), Bool(tt.want))
		})
	}
}

func TestNormalizeCell_SiteName(t *testing.T) {
	tests := []struct {
		inner string
		want  string
	}{
		{"PokerStars • 12,345 reviews", "PokerStars"},
		{"PokerStars &bull; 12,345 reviews", "PokerStars"},
		{"888poker * 50 reviews", "888poker"},
		{"Party <span>• reviews and more</span>", "Party"},
		{"PartyPoker", "PartyPoker"},
		{"Winamax • 3 Reviews", "Winamax • 3 Reviews"},
		{"Bet*365 • 12 reviews", "Bet*365"},
		{"Site - 12 reviews", "Site - 12 reviews"},
	}

	for _, tt := range tests {
		t.Run(tt.inner, func(t *testing.T) {
			assertValue(t, NormalizeCell(ColumnSiteName, cell(t, tt.inner)), String(tt.want))
		})
	}
}

func TestNormalizeCell_USFlag(t *testing.T) {
	tests := []struct {
		name  string
		inner string
		want  Value
	}{
		{"upper Y", `<img alt="Y">`, Bool(true)},
		{"lower y", `<img alt="y">`, Bool(true)},
		{"upper N", `<img alt="N">`, Bool(false)},
		{"lower n", `<img alt="n">`, Bool(false)},
		{"first icon wins", `<img alt="n"><img alt="Y">`, Bool(false)},
		{"no icon", `N/A`, String("N/A")},
		{"unknown alt", `Maybe <img alt="Yes">`, String("Maybe")},
		{"missing alt", `? <img src="x.gif">`, String("?")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValue(t, NormalizeCell(ColumnUSFlag, cell(t, tt.inner)), tt.want)
		})
	}
}

func TestNormalizeCell_DataFlag(t *testing.T) {
	tests := []struct {
		name  string
		inner string
		want  Value
	}{
		{"current", `<img title="Data is current">`, Bool(true)},
		{"not current", `<img title="Data is not current">`, Bool(false)},
		{"case sensitive", `<img title="NOT current">`, Bool(true)},
		{"empty title", `<img title="">`, Bool(true)},
		{"no icon", `stale`, String("stale")},
		{"missing title", `old <img src="x.gif">`, String("old")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValue(t, NormalizeCell(ColumnDataFlag, cell(t, tt.inner)), tt.want)
		})
	}
}

func TestNormalizeCell_PassThrough(t *testing.T) {
	for _, column := range []int{0, 4, 6, 9} {
		got := NormalizeCell(column, cell(t, `12000 <img alt="Y" title="not">`))
		assertValue(t, got, String("12000"))
	}
}

func TestNormalizeDataRow_ReportsDegradedCells(t *testing.T) {
	doc, err := dom.ParseString(`<table><tr>
		<td>7</td><td></td><td>Site</td><td>N/A</td><td>10</td><td><img></td>
	</tr></table>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	rows, _ := doc.Query("//tr")

	row, problems := NormalizeDataRow(3, rows[0])

	want := []string{"7", "false", "Site", "N/A", "10", ""}
	if got := row.Strings(); len(got) != len(want) {
		t.Fatalf("expected %d values, got %v", len(want), got)
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("value %d = %q, want %q", i, got[i], want[i])
			}
		}
	}

	if len(problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(problems), problems)
	}
	if problems[0].Row != 3 || problems[0].Column != ColumnUSFlag {
		t.Errorf("unexpected first problem: %+v", problems[0])
	}
	if problems[1].Column != ColumnDataFlag {
		t.Errorf("unexpected second problem: %+v", problems[1])
	}
	if !errors.Is(problems[0], ErrMalformedRow) {
		t.Error("expected problem to match ErrMalformedRow")
	}
}

func TestStripReviews(t *testing.T) {
	if got := StripReviews("PokerStars • 12,345 reviews"); got != "PokerStars" {
		t.Errorf("StripReviews() = %q", got)
	}
	if got := StripReviews("PartyPoker"); got != "PartyPoker" {
		t.Errorf("StripReviews() = %q", got)
	}
}
