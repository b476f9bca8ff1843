package traffic

import (
	"testing"

	"github.com/jmylchreest/scout/pkg/dom"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", `"Is Network"`},
		{"#", "Rank"},
		{"US", `"Allows US Players"`},
		{"Data", `"Is Data Current"`},
		{"Rank", "Rank"},
		{"Site/Network", `"Site/Network"`},
		{"Players Online", `"Players Online"`},
		{"Link", "Link"},
		{"Peak_24h", "Peak_24h"},
		{"% Change", `"% Change"`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeHeader(tt.raw); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeHeader_Idempotent(t *testing.T) {
	raws := []string{"", "#", "US", "Data", "Rank", "Site/Network", "Players Online", "Link"}

	for _, raw := range raws {
		once := NormalizeHeader(raw)
		twice := NormalizeHeader(once)
		if once != twice {
			t.Errorf("NormalizeHeader not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestNormalizeHeader_QuotesExactlyOnce(t *testing.T) {
	got := NormalizeHeader("Players Online")
	if got[0] != '"' || got[len(got)-1] != '"' {
		t.Fatalf("expected quoted name, got %q", got)
	}
	if inner := got[1 : len(got)-1]; inner != "Players Online" {
		t.Errorf("expected one pair of quotes, got %q", got)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"Is Network"`, "Is Network"},
		{"Rank", "Rank"},
		{`"`, `"`},
		{`""`, ""},
	}

	for _, tt := range tests {
		if got := Unquote(tt.in); got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeHeaderRow(t *testing.T) {
	doc, err := dom.ParseString(`<table><tr><th>#</th><th> </th><th>Site/<br>Network</th><th>US</th><th>Rank</th></tr></table>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	rows, _ := doc.Query("//tr")

	got := NormalizeHeaderRow(rows[0])
	want := []string{"Rank", `"Is Network"`, `"Site/ Network"`, `"Allows US Players"`, "Rank"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
}
