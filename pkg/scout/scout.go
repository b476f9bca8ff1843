package scout

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/scout/internal/logger"
	"github.com/jmylchreest/scout/internal/output"
	"github.com/jmylchreest/scout/pkg/dom"
	"github.com/jmylchreest/scout/pkg/fetcher"
	"github.com/jmylchreest/scout/pkg/traffic"
)

// ErrOutput wraps failures to write the output file.
var ErrOutput = errors.New("output failed")

// Result is one scrape of the rankings page.
type Result struct {
	URL            string
	Title          string
	FetchedAt      time.Time
	Table          *traffic.Table
	FetchDuration  time.Duration
	ScrapeDuration time.Duration
}

// Scout fetches the rankings page and extracts its traffic table.
type Scout struct {
	fetcher fetcher.Fetcher
	config  Config
}

// New creates a Scout. The configuration is validated before use.
func New(opts ...Option) (*Scout, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f := cfg.Fetcher
	if f == nil {
		f = fetcher.NewStatic(fetcher.StaticConfig{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
	}

	return &Scout{fetcher: f, config: cfg}, nil
}

// Scrape loads url and returns its normalized traffic table.
// It fails with traffic.ErrNotFound when the page has no such table.
func (s *Scout) Scrape(ctx context.Context, url string) (*Result, error) {
	fetchOpts := fetcher.Options{
		UserAgent: s.config.UserAgent,
		Timeout:   s.config.Timeout,
		WaitFor:   s.config.Locator.AnchorPath(),
		WaitExtra: s.config.WaitExtra,
		Headers:   s.config.Headers,
	}

	fetchStart := time.Now()
	content, err := s.fetcher.Fetch(ctx, url, fetchOpts)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	logger.Debug("page fetched",
		"url", url,
		"fetcher", s.fetcher.Type(),
		"title", content.Title,
		"html_size", len(content.HTML),
		"duration", fetchDuration)

	scrapeStart := time.Now()
	doc, err := dom.ParseString(content.HTML)
	if err != nil {
		return nil, err
	}
	table, err := traffic.Scrape(doc, s.config.Locator)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", url, err)
	}

	return &Result{
		URL:            url,
		Title:          content.Title,
		FetchedAt:      content.FetchedAt,
		Table:          table,
		FetchDuration:  fetchDuration,
		ScrapeDuration: time.Since(scrapeStart),
	}, nil
}

// Close releases the fetcher, stopping any browser it started.
func (s *Scout) Close() error {
	if s.fetcher != nil {
		return s.fetcher.Close()
	}
	return nil
}

// WriteFile writes t to path in the given format and returns the number of
// bytes written. The data goes to a temporary file next to path that is
// renamed into place, so a failed write leaves no partial file behind.
func WriteFile(path string, t *traffic.Table, format output.Format, opts ...output.WriterOption) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	w, err := output.NewWriter(tmp, format, opts...)
	if err != nil {
		return 0, err
	}
	if err := output.WriteTable(w, t); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutput, err)
	}

	info, err := tmp.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	committed = true

	return info.Size(), nil
}
