// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tagharvest/internal/export"
	"github.com/pdiddy/tagharvest/internal/store"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter raw records and export JSON and CSV",
	Long: `Filter reads the raw articles checkpoint written by extract, keeps records
whose publication date falls in the target year and whose tags include every
required tag, sorts them by publication date then URL, and writes the result
as an indented JSON array and a CSV table. Re-running on unchanged input
produces byte-identical files.`,
	RunE: runFilter,
}

func init() {
	addStageFlags(filterCmd, false)
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(cmd)

	rawPath := store.RawArticlesPath(cfg.Filter.DataDir, cfg.Filter.Year)
	articles, err := store.LoadArticles(rawPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no raw articles at %s: run extract first", rawPath)
		}
		return fmt.Errorf("loading raw articles: %w", err)
	}

	_, err = export.Run(articles, cfg.Filter, os.Stdout)
	return err
}
