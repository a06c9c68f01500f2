// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/tagharvest/internal/archive"
	"github.com/pdiddy/tagharvest/internal/browser"
	"github.com/pdiddy/tagharvest/internal/collect"
	"github.com/pdiddy/tagharvest/internal/export"
	"github.com/pdiddy/tagharvest/internal/extract"
	"github.com/pdiddy/tagharvest/internal/logging"
	"github.com/pdiddy/tagharvest/internal/store"
	"github.com/pdiddy/tagharvest/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: collect, extract, filter, archive",
	Long: `Run chains all pipeline stages: collect article links from the configured
tag pages, extract metadata from each article, filter and export the records
for the target year, and ingest the export into the article catalog. A run
report with parameters and per-stage counts is written beside the exports.

A stage failure aborts the run with a non-zero exit; failures on individual
pages are logged and skipped. The catalog ingest is best-effort.`,
	RunE: runPipeline,
}

func init() {
	addStageFlags(runCmd, true)
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig(cmd)

	logger, cleanup, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := stageContext()
	defer stop()

	w := os.Stdout

	fmt.Fprintln(w, "== collect ==")
	if _, err := collectStage(ctx, cfg, logger, w); err != nil {
		return fmt.Errorf("collection stage: %w", err)
	}

	fmt.Fprintln(w, "\n== extract ==")
	urls, err := loadLinks(cfg.Tags, cfg.Extract.DataDir, w)
	if err != nil {
		return fmt.Errorf("extraction stage: %w", err)
	}
	extracted, extractSummary, err := extractStage(ctx, cfg, urls, logger, w)
	if err != nil {
		return fmt.Errorf("extraction stage: %w", err)
	}

	fmt.Fprintln(w, "\n== filter ==")
	filterSummary, err := export.Run(extracted, cfg.Filter, w)
	if err != nil {
		return fmt.Errorf("filter stage: %w", err)
	}

	fmt.Fprintln(w, "\n== archive ==")
	if err := archiveStage(ctx, cfg, filterSummary.JSONPath, w); err != nil {
		logger.Warn("catalog ingest failed", zap.Error(err))
		fmt.Fprintf(w, "catalog ingest failed: %v\n", err)
	}

	report := store.RunReport{
		Params: store.RunParams{
			Tags:     cfg.Tags,
			Year:     cfg.Filter.Year,
			Headless: cfg.Browser.Headless,
		},
		Counts: store.RunCounts{
			Collected:       len(urls),
			Extracted:       extractSummary.Extracted,
			DroppedUnusable: extractSummary.Unusable,
			Exported:        filterSummary.Exported,
		},
	}
	if err := store.WriteRunReport(cfg.Collect.DataDir, report); err != nil {
		logger.Warn("writing run report failed", zap.Error(err))
	} else {
		fmt.Fprintf(w, "\nrun report: %s\n", store.ReportPath(cfg.Collect.DataDir))
	}

	fmt.Fprintf(w, "\nRun summary: %d links collected, %d extracted, %d dropped unusable, %d exported\n",
		report.Counts.Collected, report.Counts.Extracted,
		report.Counts.DroppedUnusable, report.Counts.Exported)
	return nil
}

// collectStage runs link collection inside its own browser session.
func collectStage(ctx context.Context, cfg types.PipelineConfig, logger *zap.Logger, w io.Writer) (collect.Summary, error) {
	session, err := browser.Launch(cfg.Browser)
	if err != nil {
		return collect.Summary{}, err
	}
	defer session.Close()

	client := &http.Client{Timeout: cfg.Collect.Timeout}
	return collect.Run(ctx, session, client, cfg.Tags, cfg.Collect, logger, w)
}

// extractStage runs metadata extraction inside its own browser session.
func extractStage(ctx context.Context, cfg types.PipelineConfig, urls []string, logger *zap.Logger, w io.Writer) ([]types.Article, extract.Summary, error) {
	session, err := browser.Launch(cfg.Browser)
	if err != nil {
		return nil, extract.Summary{}, err
	}
	defer session.Close()

	return extract.Run(ctx, session, urls, cfg.Extract, logger, w)
}

// archiveStage ingests the filtered export into the article catalog.
func archiveStage(ctx context.Context, cfg types.PipelineConfig, jsonPath string, w io.Writer) error {
	articles, err := store.LoadArticles(jsonPath)
	if err != nil {
		return fmt.Errorf("loading filtered export: %w", err)
	}

	cat, err := archive.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer cat.Close()

	if _, err := cat.Ingest(ctx, articles, w); err != nil {
		return err
	}

	if total, err := cat.Count(ctx); err == nil {
		fmt.Fprintf(w, "catalog now holds %d records\n", total)
	}
	return nil
}
