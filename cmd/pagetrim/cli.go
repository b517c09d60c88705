package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   pagetrim.Fetcher
	Artifacts pagetrim.ArtifactStore
	Sitemaps  pagetrim.SitemapService
	Visits    pagetrim.VisitLog
	RunID     string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every fetch, save and recorded visit"`

	Crawl    CrawlCmd    `cmd:"" default:"withargs" help:"Crawl from a seed URL and write simplified pages (default)"`
	Simplify SimplifyCmd `cmd:"" help:"Simplify one HTML document read from a file or stdin"`
	Visits   VisitsCmd   `cmd:"" help:"List visits recorded in a visit log"`
}

// ClassificationFlags select which elements and attributes survive
// simplification.
type ClassificationFlags struct {
	Links          bool   `help:"Keep links and their href"`
	Images         bool   `help:"Keep images with src and alt"`
	Classification string `help:"YAML file extending the default element lists" placeholder:"FILE"`
}

func (f *ClassificationFlags) load() (*pagetrim.Classification, error) {
	cls := pagetrim.DefaultClassification()
	if f.Classification != "" {
		var err error
		if cls, err = yaml.LoadClassification(f.Classification); err != nil {
			return nil, err
		}
	}
	if f.Links {
		cls = cls.WithLinks()
	}
	if f.Images {
		cls = cls.WithImages()
	}
	return cls, nil
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL string `arg:"" help:"Seed URL"`

	ClassificationFlags `embed:""`

	Domain  string   `short:"d" help:"Only follow pages on this domain (default: host of the seed URL)"`
	Output  string   `short:"o" default:"scraped" help:"Directory receiving one artifact per visit"`
	Format  string   `short:"f" enum:"html,markdown" default:"html" help:"Artifact format (html, markdown)"`
	Include []string `short:"I" help:"Only queue URLs matching this regex (repeatable)"`
	Exclude []string `short:"X" help:"Never queue URLs matching this regex (repeatable)"`

	LinkSelector  string `default:"a[href]" placeholder:"CSS" help:"CSS selector for links to follow"`
	SameHostLinks bool   `help:"Ignore links to hosts other than the linking page's"`

	Browser     bool          `short:"b" help:"Render pages in headless Chrome"`
	RenderDelay time.Duration `help:"Wait after page load before capturing (with --browser)"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`

	Concurrency int     `short:"c" default:"10" help:"Concurrent visit limit"`
	MaxPages    int     `help:"Stop after this many visits (0 = unlimited)"`
	MaxDepth    int     `help:"Maximum link hops from the seed (0 = unlimited)"`
	Rate        float64 `default:"1" help:"Requests per second per host (0 = unlimited)"`
	Sitemap     bool    `help:"Seed the crawl from robots.txt and sitemap.xml"`

	DB string `help:"SQLite database recording every visit" placeholder:"PATH"`
}

func (c *CrawlCmd) extension() string {
	if c.Format == "markdown" {
		return ".md"
	}
	return ".html"
}

// SimplifyCmd is the "simplify" subcommand.
type SimplifyCmd struct {
	File string `arg:"" optional:"" help:"HTML file (default: stdin)"`

	ClassificationFlags `embed:""`

	Fragment bool   `help:"Treat the input as a body fragment rather than a document"`
	Format   string `short:"f" enum:"html,markdown" default:"html" help:"Output format (html, markdown)"`
}

// VisitsCmd is the "visits" subcommand.
type VisitsCmd struct {
	DB       string `required:"" help:"SQLite database written by crawl --db" placeholder:"PATH"`
	RunID    string `name:"run" help:"Only visits of this run"`
	URL      string `help:"Only visits of this URL"`
	Followed bool   `help:"Only visits whose links were followed"`
	Offset   int    `help:"Skip this many visits"`
	Limit    int    `help:"Show at most this many visits (0 = all)"`
}
