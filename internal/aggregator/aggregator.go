// Package aggregator turns per-subreddit fetch results into fixed-size
// category batches.
package aggregator

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkarjala/meme-courier/internal/reddit"
)

// Policy selects how a category consumes its source list
type Policy string

// Accumulation policies
const (
	// EarlyStop stops consulting sources once the target size is reached
	EarlyStop Policy = "early-stop"
	// Exhaustive consults every source for variety, then truncates
	Exhaustive Policy = "exhaustive"
)

// SourceQuery describes one call to the source reader
type SourceQuery struct {
	Subreddit string
	Limit     int
}

// Category groups sources that feed a single webhook message
type Category struct {
	Name       string
	Header     string
	Color      int
	TargetSize int
	Policy     Policy
	Sources    []SourceQuery
}

// Fetcher is the source reader the aggregator drives
type Fetcher interface {
	Fetch(ctx context.Context, subreddit string, limit int) []reddit.Meme
}

// Aggregator accumulates memes across a category's sources
type Aggregator struct {
	fetcher Fetcher
	delay   time.Duration
	sleep   func(time.Duration)
}

// New creates an aggregator. The delay is the politeness pause between
// successive source calls; sleep may be nil to use time.Sleep.
func New(fetcher Fetcher, delay time.Duration, sleep func(time.Duration)) *Aggregator {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Aggregator{
		fetcher: fetcher,
		delay:   delay,
		sleep:   sleep,
	}
}

// BuildBatch visits the category's sources in declaration order and
// returns the first TargetSize accumulated memes. Overlapping sources
// are not deduplicated. A short batch is a reportable shortfall, not an
// error.
func (a *Aggregator) BuildBatch(ctx context.Context, category Category) []reddit.Meme {
	var batch []reddit.Meme

	for i, source := range category.Sources {
		if category.Policy == EarlyStop && len(batch) >= category.TargetSize {
			break
		}
		if i > 0 {
			a.sleep(a.delay)
		}

		memes := a.fetcher.Fetch(ctx, source.Subreddit, source.Limit)
		batch = append(batch, memes...)
	}

	if len(batch) > category.TargetSize {
		batch = batch[:category.TargetSize]
	}
	if len(batch) < category.TargetSize {
		slog.Warn("Category below target size",
			"category", category.Name,
			"collected", len(batch),
			"target", category.TargetSize)
	}

	return batch
}
