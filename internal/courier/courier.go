// Package courier orchestrates one complete run: build a batch per
// category, deliver each batch, and decide overall success.
package courier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkarjala/meme-courier/internal/aggregator"
	"github.com/mkarjala/meme-courier/internal/config"
	"github.com/mkarjala/meme-courier/internal/discord"
	"github.com/mkarjala/meme-courier/internal/reddit"
	httputil "github.com/mkarjala/meme-courier/pkg/http"
	"github.com/mkarjala/meme-courier/pkg/retry"
)

// ErrNoDeliveries reports a run in which no category delivered a batch
var ErrNoDeliveries = errors.New("no category delivered a batch")

// BatchBuilder builds one category's batch
type BatchBuilder interface {
	BuildBatch(ctx context.Context, category aggregator.Category) []reddit.Meme
}

// Notifier delivers batches and notices
type Notifier interface {
	Send(ctx context.Context, header string, color int, memes []reddit.Meme) error
	SendNotice(ctx context.Context, content string) error
}

// Courier runs the fetch-aggregate-deliver pipeline
type Courier struct {
	builder     BatchBuilder
	notifier    Notifier
	categories  []aggregator.Category
	notifyEmpty bool
	dryRun      bool
	delay       time.Duration
	sleep       func(time.Duration)
}

// New wires a courier from configuration. The fetch side gets its own
// HTTP client so the scrape extractor's browser User-Agent never leaks
// onto webhook requests.
func New(cfg *config.Config, dryRun bool) (*Courier, error) {
	fetchClient := httputil.NewClient(&httputil.ClientConfig{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: "meme-courier/1.0",
		Headers:   make(map[string]string),
	})

	extractor, err := reddit.NewExtractor(reddit.Kind(cfg.Extractor), fetchClient, reddit.Options{
		SkipNSFW: cfg.SkipNSFW,
	})
	if err != nil {
		return nil, err
	}

	policy := &retry.Policy{
		MaxAttempts: cfg.MaxRetries,
		Delay:       cfg.RetryDelay,
	}

	fetcher := reddit.NewFetcher(extractor, policy)
	builder := aggregator.New(fetcher, cfg.SourceDelay, nil)

	webhookClient := httputil.NewClient(&httputil.ClientConfig{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: "meme-courier/1.0",
		Headers:   make(map[string]string),
	})
	notifier := discord.NewNotifier(cfg.WebhookURL, webhookClient, policy)

	return &Courier{
		builder:     builder,
		notifier:    notifier,
		categories:  cfg.AggregatorCategories(),
		notifyEmpty: cfg.NotifyEmpty,
		dryRun:      dryRun,
		delay:       cfg.MessageDelay,
		sleep:       time.Sleep,
	}, nil
}

// Run processes every configured category in order. A category that
// comes up empty or fails delivery is logged and skipped; the run only
// fails when no category delivered anything.
func (c *Courier) Run(ctx context.Context) error {
	delivered := 0

	for i, category := range c.categories {
		if i > 0 {
			c.sleep(c.delay)
		}

		batch := c.builder.BuildBatch(ctx, category)

		if len(batch) == 0 {
			slog.Warn("No memes found for category", "category", category.Name)
			if c.notifyEmpty && !c.dryRun {
				notice := fmt.Sprintf("No memes found for %s this week", category.Name)
				if err := c.notifier.SendNotice(ctx, notice); err != nil {
					slog.Warn("Failed to send empty notice", "category", category.Name, "error", err)
				}
			}
			continue
		}

		if c.dryRun {
			logBatch(category, batch)
			delivered++
			continue
		}

		if err := c.notifier.Send(ctx, category.Header, category.Color, batch); err != nil {
			slog.Error("Failed to deliver category", "category", category.Name, "error", err)
			continue
		}

		slog.Info("Delivered category", "category", category.Name, "count", len(batch))
		delivered++
	}

	if delivered == 0 {
		return ErrNoDeliveries
	}
	return nil
}

// BuildCategoryBatch builds a single named category's batch without
// delivering it. Used by the preview command.
func (c *Courier) BuildCategoryBatch(ctx context.Context, name string) ([]reddit.Meme, error) {
	for _, category := range c.categories {
		if category.Name == name {
			return c.builder.BuildBatch(ctx, category), nil
		}
	}
	return nil, fmt.Errorf("unknown category: %q", name)
}

func logBatch(category aggregator.Category, batch []reddit.Meme) {
	slog.Info("Dry run, not delivering", "category", category.Name, "count", len(batch))
	for i, meme := range batch {
		slog.Info("Batch item",
			"category", category.Name,
			"index", i+1,
			"title", meme.Title,
			"image", meme.ImageURL,
			"score", meme.Score)
	}
}
