package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	clifetcher "github.com/jmylchreest/scout/cmd/scout/fetcher"
	"github.com/jmylchreest/scout/internal/logger"
	"github.com/jmylchreest/scout/internal/output"
	"github.com/jmylchreest/scout/pkg/fetcher"
	"github.com/jmylchreest/scout/pkg/scout"
	"github.com/jmylchreest/scout/pkg/traffic"
)

const (
	defaultURL       = "http://www.pokerscout.com/"
	defaultOutputDir = "./output"
	defaultTestFile  = "test_page/Online Poker Traffic Rankings & News _ Poker Sites & Networks _ PokerScout.html"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Capture the current traffic rankings",
	Long: `Scrape the PokerScout rankings page and write its traffic table.

The live page is loaded in headless Chrome by default, as the table is
rendered by scripts. Use --fetch-mode static to read it over plain HTTP,
or -t to scrape the saved test page.

Examples:
  # Live data, CSV in ./output
  scout scrape

  # Saved test page, YAML on a fixed path
  scout scrape -t -f test.yaml --format yaml

  # Follow a reshaped page without a rebuild
  scout scrape --marker 9 --depth 5`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()

	// Source
	flags.StringP("url", "u", defaultURL, "rankings page URL")
	flags.BoolP("test", "t", false, "scrape the saved test page instead of live data")
	flags.String("test-file", defaultTestFile, "saved test page")

	// Output settings
	flags.StringP("output-dir", "d", defaultOutputDir, "output directory")
	flags.StringP("output-filename", "f", "", "output file name (default: stats_<unix time>.<format>)")
	flags.String("format", string(output.FormatCSV), "output format: csv, json, jsonl, yaml")
	flags.Bool("escape", false, "quote CSV fields holding commas, quotes or line breaks")

	// Fetch settings
	flags.String("fetch-mode", "dynamic", "fetch mode: dynamic, static")
	flags.Duration("timeout", 30*time.Second, "page load timeout")
	flags.Duration("wait", 0, "extra wait after the table appears")
	flags.String("chrome-path", "", "Chrome binary (discovered when empty)")
	flags.Bool("headful", false, "show the browser window")

	// Table landmarks
	def := traffic.DefaultLocator()
	flags.String("container", def.Container, "XPath of the element holding the table")
	flags.String("title", def.Title, "text of the cell titling the table")
	flags.Int("depth", def.Depth, "steps up from the title cell to the table")
	flags.Int("marker", def.Marker, "position of the cell every table row has")

	// Bind to viper
	for key, flag := range map[string]string{
		"url":               "url",
		"test":              "test",
		"test_file":         "test-file",
		"output_dir":        "output-dir",
		"output_filename":   "output-filename",
		"format":            "format",
		"escape":            "escape",
		"fetch_mode":        "fetch-mode",
		"timeout":           "timeout",
		"wait":              "wait",
		"chrome_path":       "chrome-path",
		"headful":           "headful",
		"locator.container": "container",
		"locator.title":     "title",
		"locator.depth":     "depth",
		"locator.marker":    "marker",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// scrapeOptions is the resolved configuration of one scrape run.
type scrapeOptions struct {
	URL       string
	FetchMode string
	Timeout   time.Duration
	Wait      time.Duration
	Chrome    clifetcher.Config
	Locator   traffic.Locator

	OutputDir      string
	OutputFilename string
	Format         output.Format
	Escape         bool
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts, err := loadScrapeOptions()
	if err != nil {
		logger.Error("invalid options", "error", err)
		return err
	}

	_, err = scrapeToFile(ctx, opts)
	return err
}

func loadScrapeOptions() (scrapeOptions, error) {
	opts := scrapeOptions{
		URL:       viper.GetString("url"),
		FetchMode: viper.GetString("fetch_mode"),
		Timeout:   viper.GetDuration("timeout"),
		Wait:      viper.GetDuration("wait"),
		Chrome: clifetcher.Config{
			ExecPath: viper.GetString("chrome_path"),
			Headful:  viper.GetBool("headful"),
		},
		Locator: traffic.Locator{
			Container: viper.GetString("locator.container"),
			Title:     viper.GetString("locator.title"),
			Depth:     viper.GetInt("locator.depth"),
			Marker:    viper.GetInt("locator.marker"),
		},
		OutputDir:      viper.GetString("output_dir"),
		OutputFilename: viper.GetString("output_filename"),
		Format:         output.Format(viper.GetString("format")),
		Escape:         viper.GetBool("escape"),
	}

	if !slices.Contains(output.Formats, opts.Format) {
		return opts, fmt.Errorf("unsupported output format: %s", opts.Format)
	}

	if viper.GetBool("test") {
		u, err := fileURL(viper.GetString("test_file"))
		if err != nil {
			return opts, err
		}
		// The saved page is already rendered.
		opts.URL = u
		opts.FetchMode = "static"
	}

	return opts, nil
}

// scrapeToFile scrapes opts.URL and writes the table. It returns the path
// written. Nothing is written when the scrape fails.
func scrapeToFile(ctx context.Context, opts scrapeOptions) (string, error) {
	start := time.Now()

	f, err := newFetcher(opts)
	if err != nil {
		logger.Error("failed to create fetcher", "mode", opts.FetchMode, "error", err)
		return "", err
	}

	s, err := scout.New(
		scout.WithFetcher(f),
		scout.WithLocator(opts.Locator),
		scout.WithTimeout(opts.Timeout),
		scout.WithWait(opts.Wait),
	)
	if err != nil {
		_ = f.Close()
		logger.Error("invalid configuration", "error", err)
		return "", err
	}
	defer func() { _ = s.Close() }()

	logger.Info("scraping traffic rankings", "url", opts.URL, "fetcher", f.Type())

	result, err := s.Scrape(ctx, opts.URL)
	if err != nil {
		logger.Error("scrape failed", "url", opts.URL, "error", err)
		return "", err
	}

	for _, m := range result.Table.Malformed {
		logger.Debug("malformed row", "row", m.Row, "column", m.Column, "reason", m.Reason)
	}
	if n := len(result.Table.Malformed); n > 0 {
		logger.Warn("some cells kept their raw text", "problems", n)
	}

	path, err := resolveOutputPath(opts.OutputDir, opts.OutputFilename, opts.Format, result.FetchedAt)
	if err != nil {
		logger.Error("failed to prepare output directory", "error", err)
		return "", err
	}

	size, err := scout.WriteFile(path, result.Table, opts.Format, output.WithEscape(opts.Escape))
	if err != nil {
		logger.Error("failed to write output", "path", path, "error", err)
		return "", err
	}

	logger.Info("scrape complete",
		"path", path,
		"rows", len(result.Table.Rows),
		"size", humanize.Bytes(uint64(size)),
		"fetch", result.FetchDuration.Round(time.Millisecond),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return path, nil
}

func newFetcher(opts scrapeOptions) (fetcher.Fetcher, error) {
	switch opts.FetchMode {
	case "dynamic":
		cfg := opts.Chrome
		cfg.Timeout = opts.Timeout
		f, err := clifetcher.NewDynamicFetcher(cfg)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "static", "":
		return fetcher.NewStatic(fetcher.StaticConfig{Timeout: opts.Timeout}), nil
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", opts.FetchMode)
	}
}

// resolveOutputPath returns where the table is written. A directory other
// than the default that does not exist falls back to the default, which is
// created when missing. The file name defaults to stats_<unix><ext>.
func resolveOutputPath(dir, filename string, format output.Format, at time.Time) (string, error) {
	if dir == "" {
		dir = defaultOutputDir
	}
	if dir != defaultOutputDir {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logger.Warn("output directory does not exist, using default", "dir", dir, "default", defaultOutputDir)
			dir = defaultOutputDir
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", scout.ErrOutput, err)
	}

	if filename == "" {
		if at.IsZero() {
			at = time.Now()
		}
		filename = fmt.Sprintf("stats_%d%s", at.Unix(), format.Extension())
	}
	return filepath.Join(dir, filename), nil
}

// fileURL turns a local path into a file:// URL.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("test page: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
