package main

import (
	"fmt"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/crawl"
)

// Run executes the visits command.
func (c *VisitsCmd) Run(deps *Dependencies) error {
	filter := pagetrim.VisitFilter{Offset: c.Offset, Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.Followed {
		feedback := pagetrim.FollowAll
		filter.Feedback = &feedback
	}

	visits, err := deps.Visits.FindVisits(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagetrim.ErrorMessage(err))
		return err
	}
	if len(visits) == 0 {
		fmt.Fprintln(deps.Stdout, "No visits found.")
		return nil
	}

	run := ""
	for _, v := range visits {
		if v.RunID != run {
			run = v.RunID
			fmt.Fprintf(deps.Stdout, "Run %s\n", run)
		}
		fmt.Fprintf(deps.Stdout, "  %s\n", crawl.FormatVisit(v, urlWidth))
	}
	return nil
}
