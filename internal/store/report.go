// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// RunReport is the on-disk record of a full pipeline run: the parameters it
// ran with and the per-stage counts. It makes silent data loss visible after
// the fact without touching the exports themselves.
type RunReport struct {
	Params    RunParams `yaml:"params"`
	Counts    RunCounts `yaml:"counts"`
	Timestamp time.Time `yaml:"timestamp"`
}

// RunParams stores the configuration the run was started with.
type RunParams struct {
	Tags     []string `yaml:"tags"`
	Year     int      `yaml:"year"`
	Headless bool     `yaml:"headless"`
}

// RunCounts stores the per-stage record counts.
type RunCounts struct {
	Collected       int `yaml:"collected"`
	Extracted       int `yaml:"extracted"`
	DroppedUnusable int `yaml:"dropped_unusable"`
	Exported        int `yaml:"exported"`
}

// ReportPath returns the run report path under dir.
func ReportPath(dir string) string {
	return filepath.Join(dir, "run_report.yaml")
}

// WriteRunReport saves the report to dir, stamping the current time.
func WriteRunReport(dir string, report RunReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	report.Timestamp = time.Now()
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	return os.WriteFile(ReportPath(dir), data, 0o644)
}

// ReadRunReport loads a previously written run report.
func ReadRunReport(dir string) (*RunReport, error) {
	data, err := os.ReadFile(ReportPath(dir))
	if err != nil {
		return nil, fmt.Errorf("reading run report: %w", err)
	}
	var report RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing run report: %w", err)
	}
	return &report, nil
}
