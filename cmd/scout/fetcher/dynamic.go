package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/scout/internal/logger"
	"github.com/jmylchreest/scout/pkg/fetcher"
)

// DynamicFetcher loads pages in headless Chrome through chromedp.
// One browser process is started per fetcher and shared by its fetches;
// Close must be called to stop it.
type DynamicFetcher struct {
	config    Config
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewDynamicFetcher creates a dynamic fetcher and its browser allocator.
func NewDynamicFetcher(cfg Config) (*DynamicFetcher, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg)...)

	logger.Debug("dynamic fetcher created",
		"user_agent", cfg.UserAgent,
		"timeout", cfg.Timeout,
		"headful", cfg.Headful)

	return &DynamicFetcher{
		config:    cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancelAlloc,
	}, nil
}

func allocatorOptions(cfg Config) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !cfg.Headful),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(cfg.UserAgent),
	)

	execPath := cfg.ExecPath
	if execPath == "" {
		execPath = FindChromePath()
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}
	return opts
}

// Fetch navigates to targetURL, waits for opts.WaitFor (an XPath) to be
// present and returns the rendered document.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string, opts fetcher.Options) (fetcher.Content, error) {
	result := fetcher.Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	logger.Debug("chromedp starting browser context", "url", targetURL)

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			logger.Debug("chromedp", "msg", fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	// Stop the browser tab when the caller gives up.
	stop := context.AfterFunc(ctx, cancelBrowser)
	defer stop()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	var title string
	var actions []chromedp.Action

	if len(opts.Headers) > 0 {
		headers := make(network.Headers, len(opts.Headers))
		for k, v := range opts.Headers {
			headers[k] = v
		}
		actions = append(actions, network.Enable(), network.SetExtraHTTPHeaders(headers))
	}

	actions = append(actions, chromedp.Navigate(targetURL))

	if opts.WaitFor != "" {
		actions = append(actions, chromedp.WaitReady(opts.WaitFor, chromedp.BySearch))
	} else {
		actions = append(actions, chromedp.WaitReady("body", chromedp.ByQuery))
	}

	if opts.WaitExtra > 0 {
		actions = append(actions, chromedp.Sleep(opts.WaitExtra))
	}

	actions = append(actions,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Title(&title),
	)

	logger.Debug("chromedp executing actions",
		"url", targetURL,
		"action_count", len(actions),
		"timeout", timeout,
		"wait_for", opts.WaitFor)

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("browser automation cancelled: %w", ctx.Err())
		}
		if errors.Is(err, context.DeadlineExceeded) || timeoutCtx.Err() != nil {
			return result, fmt.Errorf("%w after %s: %s", fetcher.ErrTimeout, timeout, targetURL)
		}
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	result.HTML = html
	result.Title = title
	result.StatusCode = 200 // chromedp doesn't easily expose status codes
	if result.Title == "" {
		result.Title = fetcher.PageTitle(html)
	}

	logger.Debug("dynamic fetch complete",
		"url", targetURL,
		"title", result.Title,
		"html_size", len(html))

	return result, nil
}

// Close stops the browser.
func (f *DynamicFetcher) Close() error {
	if f.cancelCtx != nil {
		f.cancelCtx()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}
