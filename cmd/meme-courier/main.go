// Package main provides the CLI entry point for meme-courier.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/mkarjala/meme-courier/internal/config"
	"github.com/mkarjala/meme-courier/internal/courier"
	"github.com/mkarjala/meme-courier/internal/preview"
)

// CLI structure
var CLI struct {
	Config string `help:"Configuration file path" default:"config.yaml"`
	Debug  bool   `help:"Enable debug logging" default:"false"`

	Run struct {
		DryRun bool `help:"Fetch batches but log them instead of delivering" default:"false"`
	} `cmd:"run" help:"Fetch weekly memes and deliver them to the Discord webhook."`

	Preview struct {
		Category string `arg:"" optional:"" help:"Category name to preview" default:"trending"`
	} `cmd:"preview" help:"Fetch a category and browse it interactively without sending."`
}

func main() {
	// Parse CLI with Kong YAML configuration file loading
	ctx := kong.Parse(&CLI,
		kong.Configuration(kongyaml.Loader, "config.yaml", "~/.meme-courier/config.yaml"),
	)

	// Configure logging level based on debug flag
	if CLI.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelInfo)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "run":
		runCourier(cfg, CLI.Run.DryRun)

	case "preview", "preview <category>":
		runPreview(cfg, CLI.Preview.Category)

	default:
		panic(ctx.Command())
	}
}

// runCourier performs one complete delivery run. Exit code 0 means at
// least one category was delivered; 1 means invalid configuration or a
// run in which every category failed.
func runCourier(cfg *config.Config, dryRun bool) {
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	c, err := courier.New(cfg, dryRun)
	if err != nil {
		slog.Error("Failed to initialize courier", "error", err)
		os.Exit(1)
	}

	if err := c.Run(context.Background()); err != nil {
		slog.Error("Run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Run completed")
}

// runPreview fetches one category and opens the TUI. The webhook URL is
// not required since nothing is delivered.
func runPreview(cfg *config.Config, categoryName string) {
	if err := cfg.ValidateFetch(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	c, err := courier.New(cfg, true)
	if err != nil {
		slog.Error("Failed to initialize courier", "error", err)
		os.Exit(1)
	}

	batch, err := c.BuildCategoryBatch(context.Background(), categoryName)
	if err != nil {
		slog.Error("Failed to build batch", "error", err)
		os.Exit(1)
	}

	if err := preview.Run(batch, categoryName); err != nil {
		slog.Error("Preview failed", "error", err)
		os.Exit(1)
	}
}
