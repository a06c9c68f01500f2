// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tagharvest/internal/archive"
	"github.com/pdiddy/tagharvest/internal/store"
	"github.com/pdiddy/tagharvest/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the article catalog (store, query)",
	Long: `Archive maintains a local SQLite catalog of exported article records with
full-text search over titles and summaries. Use subcommands to ingest a
filtered export or query past records.`,
}

// --- store subcommand ---

var archiveStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest the filtered export into the catalog",
	Long: `Store reads the filtered JSON export for the target year and upserts its
records into the catalog. Records seen before are updated in place, so the
catalog accumulates across runs without duplicates.`,
	RunE: runArchiveStore,
}

func runArchiveStore(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(cmd)

	jsonPath := store.FilteredJSONPath(cfg.Filter.DataDir, cfg.Filter.Year)
	articles, err := store.LoadArticles(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no filtered export at %s: run filter first", jsonPath)
		}
		return fmt.Errorf("loading filtered export: %w", err)
	}

	cat, err := archive.Open(archiveConfig(cmd, cfg))
	if err != nil {
		return err
	}
	defer cat.Close()

	summary, err := cat.Ingest(context.Background(), articles, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed ingest", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var archiveQueryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Query the catalog with full-text search and filters",
	Long: `Query searches the catalog using FTS5 full-text search over titles and
summaries, structured filters (year, author, tag), or a combination.
Full-text results are ranked by relevance; filter-only results are sorted
by publication date.`,
	RunE: runArchiveQuery,
}

func runArchiveQuery(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(cmd)

	cat, err := archive.Open(archiveConfig(cmd, cfg))
	if err != nil {
		return err
	}
	defer cat.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --year, --author, or --tag")
	}

	results, err := cat.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []types.Article, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-45s  %-20s  %s\n",
		"Rank", "Published", "Title", "Author", "URL")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, a := range results {
		title := a.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		author := a.Author
		if len(author) > 20 {
			author = author[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-45s  %-20s  %s\n",
			i+1, a.Published, title, author, a.URL)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- shared helpers ---

func archiveConfig(cmd *cobra.Command, cfg types.PipelineConfig) types.ArchiveConfig {
	out := cfg.Archive
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		out.Path = path
	}
	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		out.MaxResults = maxResults
	}
	return out
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) archive.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	year, _ := cmd.Flags().GetInt("year")
	author, _ := cmd.Flags().GetString("author")
	tag, _ := cmd.Flags().GetString("tag")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := archive.QueryOptions{
		Text:       queryText,
		Year:       year,
		Author:     author,
		MaxResults: limit,
	}
	if tag != "" {
		opts.Tags = []string{tag}
	}
	return opts
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	archiveCmd.PersistentFlags().String("db", "", "catalog database path (default from config)")
	archiveCmd.PersistentFlags().Int("max-results", 0, "maximum number of query results (0 = use default)")

	// Store flags.
	archiveStoreCmd.Flags().Int("year", 0, "target publication year of the export to ingest")
	archiveStoreCmd.Flags().String("data-dir", "", "directory holding the filtered export")

	// Query flags.
	archiveQueryCmd.Flags().String("query", "", "full-text search query")
	archiveQueryCmd.Flags().Int("year", 0, "filter by publication year")
	archiveQueryCmd.Flags().String("author", "", "filter by author substring")
	archiveQueryCmd.Flags().String("tag", "", "filter by exact tag")
	archiveQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	archiveQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Wire subcommands.
	archiveCmd.AddCommand(archiveStoreCmd)
	archiveCmd.AddCommand(archiveQueryCmd)

	rootCmd.AddCommand(archiveCmd)
}
