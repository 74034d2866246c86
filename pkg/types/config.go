// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for page fetches.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "Mozilla/5.0 (compatible; hsr-graph/0.1)").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on 429/502/503/504 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// GraphConfig holds settings for the fact store.
type GraphConfig struct {
	// Dir holds the SQLite database (hsr.db) and export files.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// TeamConfig tunes how team pages are sectioned.
type TeamConfig struct {
	// HeadingTags are the tags that introduce a team section (default h4).
	HeadingTags []string `json:"heading_tags" yaml:"heading_tags" mapstructure:"heading_tags"`

	// BoundaryTags end a section (default h2, h3, h4).
	BoundaryTags []string `json:"boundary_tags" yaml:"boundary_tags" mapstructure:"boundary_tags"`

	// TableClass marks team tables when a page has no section headings
	// (default "a-table").
	TableClass string `json:"table_class" yaml:"table_class" mapstructure:"table_class"`

	// DefaultLabel is the page label used for that fallback (default "Teams").
	DefaultLabel string `json:"default_label" yaml:"default_label" mapstructure:"default_label"`
}

// IngestConfig holds settings for an ingestion run.
type IngestConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Parallelism is the number of pages fetched concurrently (default 4).
	Parallelism int `json:"parallelism" yaml:"parallelism" mapstructure:"parallelism"`

	// Ontology controls whether class and property declarations are
	// written before page facts.
	Ontology bool `json:"ontology" yaml:"ontology" mapstructure:"ontology"`

	Teams TeamConfig `json:"teams" yaml:"teams" mapstructure:"teams"`
}

// PipelineConfig groups all configuration read from hsr-graph.yaml.
type PipelineConfig struct {
	Ingest    IngestConfig `json:"ingest" yaml:"ingest" mapstructure:"ingest"`
	Graph     GraphConfig  `json:"graph" yaml:"graph" mapstructure:"graph"`
	LogLevel  string       `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat string       `json:"log_format" yaml:"log_format" mapstructure:"log_format"`

	// LogFile, when set, sends log records to a rotated file instead of
	// stderr.
	LogFile string `json:"log_file" yaml:"log_file" mapstructure:"log_file"`
}
