package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// capture points the logger at a buffer and restores defaults afterwards.
func capture(t *testing.T, opts Options) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	opts.Output = buf
	Init(opts)
	t.Cleanup(func() { Init(Options{}) })
	return buf
}

func TestInit_DefaultLevel_Info(t *testing.T) {
	buf := capture(t, Options{})

	Info("info line")
	Debug("debug line")

	out := buf.String()
	if !strings.Contains(out, "info line") {
		t.Error("Info should be logged at default level")
	}
	if strings.Contains(out, "debug line") {
		t.Error("Debug should not be logged at default level")
	}
}

func TestInit_Debug(t *testing.T) {
	buf := capture(t, Options{Debug: true})

	Debug("debug line", "rows", 4)

	out := buf.String()
	if !strings.Contains(out, "debug line") || !strings.Contains(out, "rows=4") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInit_QuietOverridesDebug(t *testing.T) {
	buf := capture(t, Options{Debug: true, Quiet: true})

	Debug("debug line")
	Info("info line")
	Warn("warn line")
	Error("error line")

	out := buf.String()
	for _, unwanted := range []string{"debug line", "info line", "warn line"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("%q should not be logged in quiet mode", unwanted)
		}
	}
	if !strings.Contains(out, "error line") {
		t.Error("Error should be logged in quiet mode")
	}
}

func TestInit_JSON(t *testing.T) {
	buf := capture(t, Options{JSON: true})

	Info("json line", "url", "http://www.pokerscout.com/")

	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"msg":"json line"`) {
		t.Errorf("expected JSON record, got %q", out)
	}
	if !strings.Contains(out, `"url":"http://www.pokerscout.com/"`) {
		t.Errorf("expected url attribute, got %q", out)
	}
}

func TestInit_CustomLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	custom := slog.New(slog.NewTextHandler(buf, nil))
	Init(Options{Logger: custom})
	t.Cleanup(func() { Init(Options{}) })

	if Default() != custom {
		t.Fatal("expected custom logger to be installed")
	}
	Warn("from custom")
	if !strings.Contains(buf.String(), "from custom") {
		t.Error("expected message in custom logger output")
	}
}

func TestSetLevel(t *testing.T) {
	buf := capture(t, Options{})

	SetLevel(slog.LevelDebug)
	Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel should take effect without Init")
	}
}

func TestWith(t *testing.T) {
	buf := capture(t, Options{})

	With("fetcher", "static").Info("fetched")

	out := buf.String()
	if !strings.Contains(out, "fetched") || !strings.Contains(out, "fetcher=static") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
