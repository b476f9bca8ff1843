// Package fetcher defines how scout obtains the page it scrapes.
// A Fetcher turns a URL (http, https or file) into rendered HTML; the
// dynamic browser fetcher lives with the CLI, the static one here.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	WaitFor   string        // XPath that must be present before the page is captured (dynamic fetchers)
	WaitExtra time.Duration // Additional wait once WaitFor is satisfied
	Headers   map[string]string
}

// Content represents fetched page data.
type Content struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

var (
	// ErrTimeout means the page did not finish loading in time.
	ErrTimeout = errors.New("page load timed out")

	// ErrEmptyPage means the source answered without a document body.
	ErrEmptyPage = errors.New("empty page")
)
