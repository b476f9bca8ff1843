package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const page = `<html><head><title> Traffic Rankings </title></head><body><p>ok</p></body></html>`

func TestNewStatic_Defaults(t *testing.T) {
	f := NewStatic(StaticConfig{})

	if f.config.UserAgent != DefaultUserAgent {
		t.Errorf("expected default user agent, got %q", f.config.UserAgent)
	}
	if f.config.Timeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", f.config.Timeout)
	}
	if f.Type() != "static" {
		t.Errorf("Type() = %q", f.Type())
	}
}

func TestStaticFetcher_Fetch_HTTP(t *testing.T) {
	var gotUA, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		gotHeader = r.Header.Get("X-Scout")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{UserAgent: "scout-test"})
	content, err := f.Fetch(context.Background(), srv.URL, Options{Headers: map[string]string{"X-Scout": "1"}})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if content.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", content.StatusCode)
	}
	if content.Title != "Traffic Rankings" {
		t.Errorf("Title = %q", content.Title)
	}
	if !strings.Contains(content.HTML, "<p>ok</p>") {
		t.Errorf("unexpected HTML: %q", content.HTML)
	}
	if gotUA != "scout-test" {
		t.Errorf("server saw user agent %q", gotUA)
	}
	if gotHeader != "1" {
		t.Errorf("server saw header %q", gotHeader)
	}
}

func TestStaticFetcher_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewStatic(StaticConfig{})
	content, err := f.Fetch(context.Background(), srv.URL, Options{})
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if content.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", content.StatusCode)
	}
}

func TestStaticFetcher_Fetch_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Online Poker Traffic Rankings & News.html")
	if err := os.WriteFile(path, []byte(page), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()

	f := NewStatic(StaticConfig{})
	content, err := f.Fetch(context.Background(), fileURL, Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.Title != "Traffic Rankings" {
		t.Errorf("Title = %q", content.Title)
	}
}

func TestStaticFetcher_Fetch_MissingFile(t *testing.T) {
	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(t.TempDir(), "missing.html"))}).String()

	f := NewStatic(StaticConfig{})
	if _, err := f.Fetch(context.Background(), fileURL, Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStaticFetcher_Fetch_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{})
	_, err := f.Fetch(context.Background(), srv.URL, Options{})
	if !errors.Is(err, ErrEmptyPage) {
		t.Fatalf("expected ErrEmptyPage, got %v", err)
	}
}

func TestPageTitle(t *testing.T) {
	if got := PageTitle(page); got != "Traffic Rankings" {
		t.Errorf("PageTitle() = %q", got)
	}
	if got := PageTitle("<p>no title</p>"); got != "" {
		t.Errorf("PageTitle() = %q", got)
	}
}
