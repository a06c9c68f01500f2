package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make plain
// network requests (feed seeding).
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "tagharvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// BrowserConfig holds the Chrome session settings shared by the collection
// and extraction stages.
type BrowserConfig struct {
	// Headless controls whether Chrome runs without a visible window.
	Headless bool `json:"headless" yaml:"headless"`

	// Bin is an explicit Chrome/Chromium binary path. Empty means discover
	// a system install, falling back to a managed download.
	Bin string `json:"bin,omitempty" yaml:"bin,omitempty"`

	// UserAgent overrides the browser User-Agent string.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// ViewportWidth and ViewportHeight set the emulated viewport.
	ViewportWidth  int `json:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int `json:"viewport_height" yaml:"viewport_height"`

	// NavigateTimeout bounds a single page navigation including load wait.
	NavigateTimeout time.Duration `json:"navigate_timeout" yaml:"navigate_timeout"`
}

// CollectConfig holds settings for the link-collection stage.
type CollectConfig struct {
	HTTPConfig `yaml:",inline"`

	// Year is the target publication year. On chronological listings it
	// allows collection to stop early once results fall outside the year;
	// the filter stage remains authoritative.
	Year int `json:"year" yaml:"year"`

	// MaxScrolls caps scroll attempts per tag (default 150).
	MaxScrolls int `json:"max_scrolls" yaml:"max_scrolls"`

	// StallLimit is the number of consecutive no-growth scrolls tolerated
	// before collection stops (default 6).
	StallLimit int `json:"stall_limit" yaml:"stall_limit"`

	// ScrollPause is the settle wait after each scroll (default 2.5s).
	ScrollPause time.Duration `json:"scroll_pause" yaml:"scroll_pause"`

	// SeedFromFeed controls whether the tag RSS feed seeds the link set
	// before scrolling (default true).
	SeedFromFeed bool `json:"seed_from_feed" yaml:"seed_from_feed"`

	// DataDir is the directory for checkpoints and exports (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ExtractConfig holds settings for the metadata-extraction stage.
type ExtractConfig struct {
	// Year names the raw output file ("articles_raw_<year>.json").
	Year int `json:"year" yaml:"year"`

	// DelayMin and DelayMax bound the randomized politeness delay between
	// consecutive article loads (defaults 2s and 2.5s).
	DelayMin time.Duration `json:"delay_min" yaml:"delay_min"`
	DelayMax time.Duration `json:"delay_max" yaml:"delay_max"`

	// DataDir is the directory for checkpoints and exports (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// FilterConfig holds settings for the filter/export stage.
type FilterConfig struct {
	// Year is the publication year records must match.
	Year int `json:"year" yaml:"year"`

	// RequiredTags must all be present on a record for it to be exported.
	RequiredTags []string `json:"required_tags" yaml:"required_tags"`

	// DataDir is the directory for checkpoints and exports (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ArchiveConfig holds settings for the article catalog.
type ArchiveConfig struct {
	// Path is the SQLite database path (default "data/archive.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level emitted ("debug", "info", "warn", "error").
	Level string `json:"level" yaml:"level"`

	// File is an optional path for a rotating log file. Empty disables the
	// file sink.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// PipelineConfig groups all stage configurations for a run. It is resolved
// once at startup and passed down read-only; stages never reach back into
// global configuration state.
type PipelineConfig struct {
	// Tags lists the tags to collect, in collection order.
	Tags []string `json:"tags" yaml:"tags"`

	Browser BrowserConfig `json:"browser" yaml:"browser"`
	Collect CollectConfig `json:"collect" yaml:"collect"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Filter  FilterConfig  `json:"filter" yaml:"filter"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
