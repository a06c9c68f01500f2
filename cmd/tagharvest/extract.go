// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tagharvest/internal/browser"
	"github.com/pdiddy/tagharvest/internal/extract"
	"github.com/pdiddy/tagharvest/internal/logging"
	"github.com/pdiddy/tagharvest/internal/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract article metadata from collected links",
	Long: `Extract reads the per-tag link checkpoints written by collect, loads each
article in a browser, and pulls out structured metadata (title, author,
publication date, tags, reading time, summary). Pages without structured
data fall back to page-structure scraping; pages yielding neither a title
nor a date are dropped. Results go to the raw articles checkpoint.`,
	RunE: runExtract,
}

func init() {
	addStageFlags(extractCmd, true)
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(cmd)

	logger, cleanup, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := stageContext()
	defer stop()

	urls, err := loadLinks(cfg.Tags, cfg.Extract.DataDir, os.Stdout)
	if err != nil {
		return err
	}

	session, err := browser.Launch(cfg.Browser)
	if err != nil {
		return err
	}
	defer session.Close()

	_, _, err = extract.Run(ctx, session, urls, cfg.Extract, logger, os.Stdout)
	return err
}

// loadLinks reads the per-tag link checkpoints and merges them into one
// deduplicated list in first-seen order. Tags without a checkpoint are
// skipped with a notice; an empty result is an error.
func loadLinks(tags []string, dir string, w io.Writer) ([]string, error) {
	var lists [][]string
	for _, tag := range tags {
		tl, err := store.LoadTagLinks(dir, tag)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(w, "no checkpoint for %s, skipping\n", tag)
				continue
			}
			return nil, fmt.Errorf("loading checkpoint for %s: %w", tag, err)
		}
		lists = append(lists, tl.Links)
	}

	urls := store.MergeLinks(lists...)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no link checkpoints under %s: run collect first", dir)
	}

	fmt.Fprintf(w, "loaded %d links from %d tag checkpoint(s)\n", len(urls), len(lists))
	return urls, nil
}
