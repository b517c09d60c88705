package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/crawl"
	"github.com/fwojciec/pagetrim/goquery"
	"github.com/fwojciec/pagetrim/html"
	"github.com/fwojciec/pagetrim/htmltomarkdown"
	"github.com/fwojciec/pagetrim/simplify"
)

// urlWidth is the column width of URLs in progress lines.
const urlWidth = 60

func (c *CrawlCmd) linkOptions() []goquery.Option {
	opts := []goquery.Option{goquery.WithSelector(c.LinkSelector)}
	if c.SameHostLinks {
		opts = append(opts, goquery.WithSameHost())
	}
	return opts
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seed, err := url.Parse(c.URL)
	if err != nil || seed.Host == "" || (seed.Scheme != "http" && seed.Scheme != "https") {
		fmt.Fprintf(deps.Stderr, "error: invalid seed URL %q\n", c.URL)
		return pagetrim.Errorf(pagetrim.EINVALID, "invalid seed URL %q", c.URL)
	}

	cls, err := c.load()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagetrim.ErrorMessage(err))
		return err
	}

	var scope pagetrim.ScopeFunc
	if c.Domain != "" {
		scope, err = crawl.DomainScope(c.Domain)
	} else {
		scope, err = crawl.HostScope(c.URL)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagetrim.ErrorMessage(err))
		return err
	}

	filter, err := pagetrim.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagetrim.ErrorMessage(err))
		return err
	}

	controller := &crawl.Controller{
		Fetcher:    deps.Fetcher,
		Parser:     html.NewParser(),
		Simplifier: simplify.New(cls),
		Renderer:   html.NewRenderer(),
		Artifacts:  deps.Artifacts,
		Links:      goquery.NewLinkExtractor(c.linkOptions()...),
		Scope:      scope,
		RunID:      deps.RunID,
		Logger:     deps.Logger,
	}
	if c.Format == "markdown" {
		origin := (&url.URL{Scheme: seed.Scheme, Host: seed.Host}).String()
		controller.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(origin))
	}
	if deps.Visits != nil {
		controller.Visits = deps.Visits
	}

	crawler := &crawl.Crawler{
		Visitor:     controller,
		RateLimiter: crawl.NewDomainLimiter(c.Rate),
		Filter:      filter,
		Concurrency: c.Concurrency,
		MaxPages:    c.MaxPages,
		MaxDepth:    c.MaxDepth,
	}
	if deps.Sitemaps != nil {
		crawler.Sitemaps = deps.Sitemaps
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %s (run %s, %d queued)\n", c.URL, deps.RunID, event.Queued)
		case crawl.ProgressVisited:
			if event.Visit.Index >= 0 {
				fmt.Fprintln(deps.Stdout, crawl.FormatVisit(event.Visit, urlWidth))
			}
		case crawl.ProgressFinished:
			// Summary printed after the crawl returns
		}
	}

	result, err := crawler.Run(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagetrim.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Visited %d pages: %d saved to %s, %d failed, %d skipped\n",
		result.Visited, result.Persisted, c.Output, result.Failed, result.Skipped)
	return deps.Ctx.Err()
}
