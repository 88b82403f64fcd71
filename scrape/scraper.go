// Package scrape fetches the pages definitions apply to and binds the
// parsed documents to them.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/lodestone"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of definitions scraped at once by ScrapeAll.
const DefaultConcurrency = 4

// Scraper fetches a page for a definition, parses it and binds the result.
type Scraper struct {
	Fetcher lodestone.Fetcher
	Parser  lodestone.Parser

	// RateLimiter, if set, is waited on per host before every fetch.
	RateLimiter lodestone.DomainLimiter

	// Snapshots, if set, receives the markup of every scraped page.
	Snapshots lodestone.SnapshotStore

	// RetryDelays are the backoff delays between attempts. Nil uses
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// Concurrency bounds ScrapeAll. Defaults to DefaultConcurrency.
	Concurrency int

	// Logf, if set, receives retry messages.
	Logf LogFunc
}

// Scrape formats def.URL with vars, fetches the page and binds it to def.
// On error def keeps whatever document it had before.
func (s *Scraper) Scrape(ctx context.Context, def *lodestone.Definition, vars map[string]string) error {
	if def.URL == "" {
		return lodestone.Errorf(lodestone.EINVALID, "definition %q has no URL", def.Name())
	}
	url, err := FormatURL(def.URL, vars)
	if err != nil {
		return err
	}
	return s.ScrapeURL(ctx, def, url)
}

// ScrapeURL fetches url, parses it and binds it to def.
func (s *Scraper) ScrapeURL(ctx context.Context, def *lodestone.Definition, url string) error {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, lodestone.Host(url)); err != nil {
			return err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, url, s.Fetcher.Fetch, s.Logf, delays)
	if err != nil {
		return fmt.Errorf("fetching %s for %s: %w", url, def.Name(), err)
	}

	if s.Snapshots != nil {
		if err := s.Snapshots.SaveSnapshot(ctx, def.Name(), html); err != nil {
			return fmt.Errorf("saving snapshot for %s: %w", def.Name(), err)
		}
	}

	doc, err := s.Parser.Parse(html)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", url, err)
	}
	def.Bind(doc)
	return nil
}

// ScrapeAll scrapes every definition, several at a time. Each definition
// owns its own DocumentRef, so they can be bound concurrently. The first
// error cancels the remaining scrapes.
func (s *Scraper) ScrapeAll(ctx context.Context, defs []*lodestone.Definition, vars map[string]string) error {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, def := range defs {
		g.Go(func() error {
			return s.Scrape(ctx, def, vars)
		})
	}
	return g.Wait()
}
