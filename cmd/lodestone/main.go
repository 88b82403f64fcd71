package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/lodestone"
	"github.com/fwojciec/lodestone/fs"
	"github.com/fwojciec/lodestone/goquery"
	lshttp "github.com/fwojciec/lodestone/http"
	"github.com/fwojciec/lodestone/prometheus"
	"github.com/fwojciec/lodestone/rod"
	"github.com/fwojciec/lodestone/scrape"
	lsslog "github.com/fwojciec/lodestone/slog"
	"github.com/fwojciec/lodestone/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database backing the page cache.
	DB *sqlite.DB

	// Fetcher, if set, replaces the HTTP or browser fetcher. Used by
	// end-to-end tests.
	Fetcher lodestone.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lodestone"),
		kong.Description("Extract structured records from HTML pages with declarative selector definitions."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lodestone --help' to see available commands")
	}
	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Parser = lsslog.NewLoggingParser(goquery.NewParser(), deps.Logger)

	switch cmd {
	case "check":
		return kongCtx.Run(deps)
	case "extract":
		if !isURL(cli.Extract.Source) {
			return kongCtx.Run(deps)
		}
	}

	if err := m.openDB(cli.DB, stderr); err != nil {
		return err
	}
	defer m.Close()
	cache := sqlite.NewPageCache(m.DB)
	deps.Cache = cache

	if cmd == "purge" {
		return kongCtx.Run(deps)
	}

	var catalog *fs.Catalog
	if cmd == "character" || cmd == "serve" {
		catalog, err = fs.OpenCatalog(cli.JSONBase)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set LODESTONE_JSON_BASE to a checkout of the selector definitions\n")
			return fmt.Errorf("failed to open definitions at %q: %w", cli.JSONBase, err)
		}
		deps.Definitions = catalog
	}

	deps.Metrics = prometheus.NewMetrics()
	fetcher, err := m.newFetcher(cli, catalog, stderr)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	var f lodestone.Fetcher = prometheus.NewInstrumentedFetcher(fetcher, deps.Metrics)
	f = lsslog.NewLoggingFetcher(f, deps.Logger)
	if !cli.NoCache {
		f = scrape.NewCachingFetcher(f, lsslog.NewLoggingPageCache(cache, deps.Logger), cli.TTL)
	}

	deps.Scraper = &scrape.Scraper{
		Fetcher:     f,
		Parser:      deps.Parser,
		RateLimiter: scrape.NewDomainLimiterBurst(cli.Rate, 1),
		Concurrency: cli.Concurrency,
		Logf: func(format string, args ...any) {
			deps.Logger.Warn(fmt.Sprintf(format, args...))
		},
	}
	if cli.Snapshots != "" {
		deps.Scraper.Snapshots = fs.NewSnapshotStore(cli.Snapshots)
	}
	if catalog != nil {
		deps.Characters = &scrape.CharacterService{Definitions: catalog, Scraper: deps.Scraper}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if path == "" {
		path = m.DBPath
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LODESTONE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newFetcher returns the fetcher pages are retrieved with. The user agent
// comes from the definitions' meta file when one is loaded.
func (m *Main) newFetcher(cli *CLI, catalog *fs.Catalog, stderr io.Writer) (lodestone.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	var ua string
	if catalog != nil {
		ua = catalog.Meta().UserAgentDesktop
	}

	if cli.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout), rod.WithUserAgent(ua))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return lshttp.NewFetcher(lshttp.WithTimeout(cli.Timeout), lshttp.WithUserAgent(ua)), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func defaultDBPath() string {
	if path := os.Getenv("LODESTONE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lodestone.db"
	}
	dir := filepath.Join(home, ".lodestone")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cache.db")
}
