package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/mkarjala/meme-courier/internal/aggregator"
	"github.com/mkarjala/meme-courier/internal/discord"
	"github.com/mkarjala/meme-courier/internal/reddit"
)

// Source names one subreddit and its per-call fetch limit
type Source struct {
	Subreddit string `mapstructure:"subreddit"`
	Limit     int    `mapstructure:"limit"`
}

// Category configures one aggregated webhook message
type Category struct {
	Name       string   `mapstructure:"name"`
	Header     string   `mapstructure:"header"`
	Color      int      `mapstructure:"color"`
	TargetSize int      `mapstructure:"target_size"`
	Policy     string   `mapstructure:"policy"`
	Sources    []Source `mapstructure:"sources"`
}

// Config holds the central application configuration
type Config struct {
	// Webhook endpoint; also read from the DISCORD_WEBHOOK_URL env var
	WebhookURL string `mapstructure:"webhook_url"`

	// Upstream representation: feed, scrape or api
	Extractor string `mapstructure:"extractor"`

	SkipNSFW    bool `mapstructure:"skip_nsfw"`
	NotifyEmpty bool `mapstructure:"notify_empty"`

	// Retry and pacing constants
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
	SourceDelay  time.Duration `mapstructure:"source_delay"`
	MessageDelay time.Duration `mapstructure:"message_delay"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`

	Categories []Category `mapstructure:"categories"`
}

// Load loads the configuration from a file, filling in defaults for
// anything absent. A missing config file is fine; the defaults describe
// a complete run except for the webhook URL.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.yaml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// An explicit default so the env-bound key survives Unmarshal
	v.SetDefault("webhook_url", "")
	v.SetDefault("extractor", string(reddit.KindFeed))
	v.SetDefault("skip_nsfw", true)
	v.SetDefault("notify_empty", false)
	v.SetDefault("max_retries", 3)
	v.SetDefault("retry_delay", "2s")
	v.SetDefault("source_delay", "1s")
	v.SetDefault("message_delay", "1s")
	v.SetDefault("http_timeout", "10s")

	if err := v.BindEnv("webhook_url", "DISCORD_WEBHOOK_URL"); err != nil {
		return nil, fmt.Errorf("error binding webhook env var: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if len(config.Categories) == 0 {
		config.Categories = DefaultCategories()
	}

	return &config, nil
}

// Validate checks everything needed before a delivery run starts
func (c *Config) Validate() error {
	if err := discord.ValidateWebhookURL(c.WebhookURL); err != nil {
		return err
	}
	return c.ValidateFetch()
}

// ValidateFetch checks the fetch-side configuration only; preview runs
// do not need a webhook.
func (c *Config) ValidateFetch() error {
	switch reddit.Kind(c.Extractor) {
	case reddit.KindFeed, reddit.KindScrape, reddit.KindAPI:
	default:
		return fmt.Errorf("unknown extractor kind: %q", c.Extractor)
	}

	for _, category := range c.Categories {
		if category.TargetSize <= 0 {
			return fmt.Errorf("category %q has no target size", category.Name)
		}
		if len(category.Sources) == 0 {
			return fmt.Errorf("category %q has no sources", category.Name)
		}
	}
	return nil
}

// AggregatorCategories converts the configured categories into the
// aggregator's model
func (c *Config) AggregatorCategories() []aggregator.Category {
	categories := make([]aggregator.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		sources := make([]aggregator.SourceQuery, 0, len(cat.Sources))
		for _, src := range cat.Sources {
			sources = append(sources, aggregator.SourceQuery{
				Subreddit: src.Subreddit,
				Limit:     src.Limit,
			})
		}
		categories = append(categories, aggregator.Category{
			Name:       cat.Name,
			Header:     cat.Header,
			Color:      cat.Color,
			TargetSize: cat.TargetSize,
			Policy:     aggregator.Policy(cat.Policy),
			Sources:    sources,
		})
	}
	return categories
}

// DefaultCategories returns the two built-in categories
func DefaultCategories() []Category {
	return []Category{
		{
			Name:       "trending",
			Header:     "🔥 **Top 5 Trending Memes This Week** 🔥",
			Color:      16734003, // orange
			TargetSize: 5,
			Policy:     string(aggregator.EarlyStop),
			Sources: []Source{
				{Subreddit: "memes", Limit: 5},
				{Subreddit: "dankmemes", Limit: 5},
				{Subreddit: "ProgrammerHumor", Limit: 5},
			},
		},
		{
			Name:       "techsupport",
			Header:     "💻 **Top 5 Tech Support Memes** 💻",
			Color:      3447003, // blue
			TargetSize: 5,
			Policy:     string(aggregator.Exhaustive),
			Sources: []Source{
				{Subreddit: "talesfromtechsupport", Limit: 2},
				{Subreddit: "iiiiiiitttttttttttt", Limit: 2},
				{Subreddit: "sysadmin", Limit: 2},
				{Subreddit: "techsupportgore", Limit: 2},
				{Subreddit: "ProgrammerHumor", Limit: 2},
			},
		},
	}
}
