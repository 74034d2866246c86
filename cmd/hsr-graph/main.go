// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hsr-graph CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hsr-graph/internal/fetch"
	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/logging"
	"github.com/pdiddy/hsr-graph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the hsr-graph CLI.
var rootCmd = &cobra.Command{
	Use:   "hsr-graph",
	Short: "Build a Honkai: Star Rail knowledge graph from guide pages",
	Long: `hsr-graph fetches game-guide pages (team compositions, characters,
light cones, relic sets), extracts typed entities and relations from their
tables, and stores them as facts in a local SQLite graph.

Each stage is a subcommand: ingest fetches and stores pages, parse extracts a
single local page without touching the store, facts lists or exports what is
stored, and ontology writes the class and property declarations.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hsr-graph.yaml or ~/.config/hsr-graph/hsr-graph.yaml)")
	rootCmd.PersistentFlags().String("graph-dir", "graph", "directory holding hsr.db and exports")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file (rotated at 10 MB) instead of stderr")

	viper.BindPFlag("graph.dir", rootCmd.PersistentFlags().Lookup("graph-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hsr-graph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hsr-graph"))
		}
	}

	viper.SetDefault("ingest.timeout", 30*time.Second)
	viper.SetDefault("ingest.user_agent", fetch.DefaultUserAgent)
	viper.SetDefault("ingest.max_retries", 3)
	viper.SetDefault("ingest.parallelism", 4)
	viper.SetDefault("ingest.ontology", true)
	viper.SetDefault("ingest.teams.heading_tags", []string{"h4"})
	viper.SetDefault("ingest.teams.boundary_tags", []string{"h2", "h3", "h4"})
	viper.SetDefault("ingest.teams.table_class", "a-table")
	viper.SetDefault("ingest.teams.default_label", "Teams")

	viper.SetEnvPrefix("HSR_GRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes flags, environment and config file into one struct.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg types.PipelineConfig) *slog.Logger {
	return logging.New(os.Stderr, logging.Config{
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
	})
}

func openStore(cfg types.PipelineConfig) (*graph.SQLite, error) {
	store, err := graph.OpenSQLite(cfg.Graph)
	if err != nil {
		return nil, fmt.Errorf("opening graph store: %w", err)
	}
	return store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
