// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hsr-graph/internal/fetch"
	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/ingest"
	"github.com/pdiddy/hsr-graph/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [url...]",
	Short: "Fetch guide pages and store their facts",
	Long: `Ingest fetches pages in parallel, extracts them in source order, and
writes the resulting facts into the graph store.

Pages come from a YAML sources file (--sources) and/or positional URLs, which
use the extractor named by --kind. Failed pages are reported and counted;
the command exits non-zero when any page failed.

Example sources file:

  sources:
    - kind: characters
      url: https://game8.co/games/Honkai-Star-Rail/archives/404256
    - kind: teams
      url: https://game8.co/games/Honkai-Star-Rail/archives/408381
      path: pages/teams.html   # optional local copy`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	sources, err := ingestSources(cmd, args)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no pages to ingest: provide --sources or one or more URLs")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	lock, err := graph.LockDir(cfg.Graph.Dir)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	client := fetch.New(cfg.Ingest.HTTPConfig, logger)
	p := ingest.New(cfg.Ingest, store, client, logger, cmd.OutOrStdout())

	summary, err := p.Run(cmd.Context(), sources)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d page(s) failed", summary.Failed)
	}
	return nil
}

func ingestSources(cmd *cobra.Command, args []string) ([]types.Source, error) {
	var sources []types.Source

	sourcesFile, _ := cmd.Flags().GetString("sources")
	if sourcesFile != "" {
		fromFile, err := ingest.LoadSources(sourcesFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fromFile...)
	}

	kind, _ := cmd.Flags().GetString("kind")
	k := types.SourceKind(kind)
	if len(args) > 0 && !k.Valid() {
		return nil, fmt.Errorf("unsupported kind %q: use teams, characters, lightcones or relics", kind)
	}
	for _, url := range args {
		sources = append(sources, types.Source{Kind: k, URL: url})
	}
	return sources, nil
}

func init() {
	ingestCmd.Flags().String("sources", "", "YAML file listing pages to ingest")
	ingestCmd.Flags().String("kind", string(types.SourceTeams), "extractor for positional URLs: teams, characters, lightcones, relics")
	ingestCmd.Flags().Int("parallelism", 4, "maximum concurrent page fetches")
	ingestCmd.Flags().Bool("ontology", true, "write class and property declarations before page facts")
	ingestCmd.Flags().String("user-agent", fetch.DefaultUserAgent, "User-Agent header for page fetches")
	ingestCmd.Flags().Duration("timeout", 30*time.Second, "per-request timeout")
	ingestCmd.Flags().Int("max-retries", 3, "retries on 429/502/503/504 responses")

	viper.BindPFlag("ingest.parallelism", ingestCmd.Flags().Lookup("parallelism"))
	viper.BindPFlag("ingest.ontology", ingestCmd.Flags().Lookup("ontology"))
	viper.BindPFlag("ingest.user_agent", ingestCmd.Flags().Lookup("user-agent"))
	viper.BindPFlag("ingest.timeout", ingestCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("ingest.max_retries", ingestCmd.Flags().Lookup("max-retries"))

	rootCmd.AddCommand(ingestCmd)
}
