// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tagharvest CLI.
// See docs/ARCHITECTURE § Pipeline Interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the tagharvest CLI.
var rootCmd = &cobra.Command{
	Use:   "tagharvest",
	Short: "Harvest article metadata from Medium tag pages",
	Long: `tagharvest collects article links from Medium tag-browsing pages with a
headless browser, extracts structured metadata from each article, filters
the records by publication year and tag set, and exports the result as
JSON and CSV. Each stage checkpoints its output so later stages can run
standalone.

Each pipeline stage is a subcommand: collect, extract, and filter. The run
subcommand chains all of them and writes a run report; archive maintains a
searchable SQLite catalog of past exports.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tagharvest.yaml or ~/.config/tagharvest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tagharvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tagharvest"))
		}
	}

	viper.SetEnvPrefix("TAGHARVEST")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers the built-in configuration. Values resolve with the
// usual precedence: flags, then TAGHARVEST_* environment, then config file,
// then these defaults.
func setDefaults() {
	viper.SetDefault("tags", []string{"ux-design", "artificial-intelligence"})
	viper.SetDefault("year", 2025)
	viper.SetDefault("headless", true)
	viper.SetDefault("data_dir", "data")

	viper.SetDefault("browser.bin", "")
	viper.SetDefault("browser.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	viper.SetDefault("browser.viewport_width", 1920)
	viper.SetDefault("browser.viewport_height", 1080)
	viper.SetDefault("browser.navigate_timeout", 90*time.Second)

	viper.SetDefault("collect.max_scrolls", 150)
	viper.SetDefault("collect.stall_limit", 6)
	viper.SetDefault("collect.scroll_pause", 2500*time.Millisecond)
	viper.SetDefault("collect.seed_from_feed", true)
	viper.SetDefault("collect.http_timeout", 30*time.Second)

	viper.SetDefault("extract.delay_min", 2*time.Second)
	viper.SetDefault("extract.delay_max", 2500*time.Millisecond)

	viper.SetDefault("archive.path", filepath.Join("data", "archive.db"))
	viper.SetDefault("archive.max_results", 20)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
