// Package fetcher provides the chromedp-based browser fetcher used by the
// CLI. PokerScout renders its traffic table in the browser, so the live page
// is loaded in headless Chrome and captured once the table is present.
package fetcher

import (
	"time"

	"github.com/jmylchreest/scout/pkg/fetcher"
)

// Config holds configuration for the dynamic fetcher.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	ExecPath  string // Chrome binary; discovered when empty
	Headful   bool   // Show the browser window, for debugging
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: fetcher.DefaultUserAgent,
		Timeout:   30 * time.Second,
	}
}
