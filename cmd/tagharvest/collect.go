// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tagharvest/internal/browser"
	"github.com/pdiddy/tagharvest/internal/collect"
	"github.com/pdiddy/tagharvest/internal/logging"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect article links from Medium tag pages",
	Long: `Collect opens each configured tag's chronological listing in a browser,
scrolls until the feed stalls or the scroll cap is reached, and saves the
accumulated article links to a per-tag checkpoint under the data directory.
Links found on earlier runs are kept; new ones are appended.`,
	RunE: runCollect,
}

func init() {
	addStageFlags(collectCmd, true)
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(cmd)

	logger, cleanup, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := stageContext()
	defer stop()

	session, err := browser.Launch(cfg.Browser)
	if err != nil {
		return err
	}
	defer session.Close()

	client := &http.Client{Timeout: cfg.Collect.Timeout}

	_, err = collect.Run(ctx, session, client, cfg.Tags, cfg.Collect, logger, os.Stdout)
	return err
}
