// Package scout scrapes the PokerScout traffic rankings: it fetches the page,
// locates the ranking table and returns it normalized, ready for output.
package scout

import (
	"time"

	"github.com/jmylchreest/scout/pkg/fetcher"
	"github.com/jmylchreest/scout/pkg/traffic"
)

// Config holds all Scout configuration.
type Config struct {
	Locator traffic.Locator

	UserAgent string
	Timeout   time.Duration `validate:"gte=0"`
	WaitExtra time.Duration `validate:"gte=0"`
	Headers   map[string]string

	// Fetcher overrides the default static fetcher.
	Fetcher fetcher.Fetcher `validate:"-"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Locator:   traffic.DefaultLocator(),
		UserAgent: fetcher.DefaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

// Option configures Scout.
type Option func(*Config)

// WithLocator sets the landmarks used to find the table.
func WithLocator(l traffic.Locator) Option {
	return func(c *Config) {
		c.Locator = l
	}
}

// WithFetcher injects the fetcher used to load pages.
// Scout takes ownership and closes it in Close.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the page load timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithWait adds a pause after the table landmark appears, for pages that
// keep filling the table in after it is first rendered.
func WithWait(d time.Duration) Option {
	return func(c *Config) {
		c.WaitExtra = d
	}
}

// WithHeaders sets extra request headers.
func WithHeaders(h map[string]string) Option {
	return func(c *Config) {
		c.Headers = h
	}
}
