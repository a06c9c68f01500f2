// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tagharvest/pkg/types"
)

// resolveConfig materializes the pipeline configuration from viper, then
// applies per-command flag overrides. The result is passed down by value;
// stages never read viper themselves.
func resolveConfig(cmd *cobra.Command) types.PipelineConfig {
	year := viper.GetInt("year")
	dataDir := viper.GetString("data_dir")
	tags := viper.GetStringSlice("tags")

	cfg := types.PipelineConfig{
		Tags: tags,
		Browser: types.BrowserConfig{
			Headless:        viper.GetBool("headless"),
			Bin:             viper.GetString("browser.bin"),
			UserAgent:       viper.GetString("browser.user_agent"),
			ViewportWidth:   viper.GetInt("browser.viewport_width"),
			ViewportHeight:  viper.GetInt("browser.viewport_height"),
			NavigateTimeout: viper.GetDuration("browser.navigate_timeout"),
		},
		Collect: types.CollectConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("collect.http_timeout"),
				UserAgent: "tagharvest/" + version,
			},
			Year:         year,
			MaxScrolls:   viper.GetInt("collect.max_scrolls"),
			StallLimit:   viper.GetInt("collect.stall_limit"),
			ScrollPause:  viper.GetDuration("collect.scroll_pause"),
			SeedFromFeed: viper.GetBool("collect.seed_from_feed"),
			DataDir:      dataDir,
		},
		Extract: types.ExtractConfig{
			Year:     year,
			DelayMin: viper.GetDuration("extract.delay_min"),
			DelayMax: viper.GetDuration("extract.delay_max"),
			DataDir:  dataDir,
		},
		Filter: types.FilterConfig{
			Year:         year,
			RequiredTags: tags,
			DataDir:      dataDir,
		},
		Archive: types.ArchiveConfig{
			Path:       viper.GetString("archive.path"),
			MaxResults: viper.GetInt("archive.max_results"),
		},
		Log: types.LogConfig{
			Level: viper.GetString("log.level"),
			File:  viper.GetString("log.file"),
		},
	}

	flags := cmd.Flags()
	if flags.Changed("tag") {
		if tags, err := flags.GetStringSlice("tag"); err == nil {
			cfg.Tags = tags
			cfg.Filter.RequiredTags = tags
		}
	}
	if flags.Changed("year") {
		year, _ := flags.GetInt("year")
		cfg.Collect.Year = year
		cfg.Extract.Year = year
		cfg.Filter.Year = year
	}
	if flags.Changed("headful") {
		headful, _ := flags.GetBool("headful")
		cfg.Browser.Headless = !headful
	}
	if flags.Changed("data-dir") {
		dir, _ := flags.GetString("data-dir")
		cfg.Collect.DataDir = dir
		cfg.Extract.DataDir = dir
		cfg.Filter.DataDir = dir
	}

	return cfg
}

// addStageFlags registers the flags shared by the pipeline stage commands.
// browser controls whether the --headful override is included.
func addStageFlags(cmd *cobra.Command, browser bool) {
	cmd.Flags().StringSlice("tag", nil, "tag to process (repeatable; overrides configured tags)")
	cmd.Flags().Int("year", 0, "target publication year")
	cmd.Flags().String("data-dir", "", "directory for checkpoints and exports")
	if browser {
		cmd.Flags().Bool("headful", false, "run the browser with a visible window")
	}
}

// stageContext returns a context cancelled on SIGINT or SIGTERM so a long
// collection or extraction run shuts the browser down cleanly.
func stageContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
