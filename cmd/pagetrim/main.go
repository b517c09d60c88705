package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/fs"
	pthttp "github.com/fwojciec/pagetrim/http"
	"github.com/fwojciec/pagetrim/rod"
	ptslog "github.com/fwojciec/pagetrim/slog"
	"github.com/fwojciec/pagetrim/sqlite"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by the simplify command when no file is given.
	Stdin io.Reader

	// NewRunID returns the identifier of a new crawl run.
	NewRunID func() string

	// Resources opened by Run and released by Close.
	DB      *sqlite.DB
	Fetcher pagetrim.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:    os.Stdin,
		NewRunID: uuid.NewString,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	if m.Fetcher != nil {
		errs = append(errs, m.Fetcher.Close())
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagetrim"),
		kong.Description("Reduce web pages to their content-bearing structure"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided. Run 'pagetrim --help' for usage")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	defer m.Close()

	switch cmd := kongCtx.Command(); {
	case strings.HasPrefix(cmd, "crawl"):
		if err := m.wireCrawl(deps, &cli.Crawl, cli.Verbose); err != nil {
			return err
		}
	case strings.HasPrefix(cmd, "visits"):
		if err := m.openDB(deps, cli.Visits.DB); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireCrawl opens the resources a crawl writes to. With verbose set every
// collaborator is wrapped in a logging decorator.
func (m *Main) wireCrawl(deps *Dependencies, c *CrawlCmd, verbose bool) error {
	if c.Browser {
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithRenderDelay(c.RenderDelay))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Fetcher = fetcher
	} else {
		m.Fetcher = pthttp.NewFetcher(pthttp.WithTimeout(c.Timeout))
	}
	deps.Fetcher = m.Fetcher
	deps.Artifacts = fs.NewArtifactStore(c.Output, c.extension())

	if c.Sitemap {
		deps.Sitemaps = pthttp.NewSitemapService(nil)
	}
	if c.DB != "" {
		if err := m.openDB(deps, c.DB); err != nil {
			return err
		}
	}
	deps.RunID = m.NewRunID()

	if verbose {
		deps.Fetcher = ptslog.NewLoggingFetcher(deps.Fetcher, deps.Logger)
		deps.Artifacts = ptslog.NewLoggingArtifactStore(deps.Artifacts, deps.Logger)
		if deps.Sitemaps != nil {
			deps.Sitemaps = ptslog.NewLoggingSitemapService(deps.Sitemaps, deps.Logger)
		}
		if deps.Visits != nil {
			deps.Visits = ptslog.NewLoggingVisitLog(deps.Visits, deps.Logger)
		}
	}
	return nil
}

func (m *Main) openDB(deps *Dependencies, path string) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	deps.Visits = sqlite.NewVisitLog(m.DB)
	return nil
}
