// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/ingest"
	"github.com/pdiddy/hsr-graph/internal/registry"
	"github.com/pdiddy/hsr-graph/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.html>",
	Short: "Extract one local page and print its facts",
	Long: `Parse runs a single extractor over a saved HTML page and prints the
facts it would write, without opening the graph store. Use --url to set the
source URL recorded on teams and entities.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	url, _ := cmd.Flags().GetString("url")
	src := types.Source{Kind: types.SourceKind(kind), URL: url, Path: args[0]}
	if !src.Kind.Valid() {
		return fmt.Errorf("unsupported kind %q: use teams, characters, lightcones or relics", kind)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	body, err := os.ReadFile(src.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src.Path, err)
	}

	store := graph.NewMemory()
	p := ingest.New(cfg.Ingest, store, nil, newLogger(cfg), cmd.OutOrStdout())
	res, err := p.Page(cmd.Context(), src, body)
	if err != nil {
		return err
	}

	facts, err := store.Facts(cmd.Context(), graph.Filter{})
	if err != nil {
		return err
	}
	printFacts(cmd.OutOrStdout(), facts)

	out := cmd.OutOrStdout()
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "warning: %v\n", w)
	}
	if showEntities, _ := cmd.Flags().GetBool("entities"); showEntities {
		printEntities(out, p.Registry.Entities())
	}
	fmt.Fprintf(out, "\n%d teams, %d memberships, %d entities, %d facts\n",
		res.Teams, res.Memberships, res.Entities, len(facts))
	return nil
}

// printFacts writes one fact per line in compact prefix form. Literal
// objects are quoted.
func printFacts(w io.Writer, facts []graph.Fact) {
	for _, f := range facts {
		obj := graph.Compact(f.Object)
		if f.Literal {
			obj = fmt.Sprintf("%q", f.Object)
		}
		fmt.Fprintf(w, "%s  %s  %s\n", graph.Compact(f.Subject), graph.Compact(f.Predicate), obj)
	}
}

// printEntities writes one resolved entity per line: key, label, source.
func printEntities(w io.Writer, entities []registry.Entity) {
	fmt.Fprintf(w, "\n%d entities\n", len(entities))
	for _, e := range entities {
		fmt.Fprintf(w, "%s  %q  %s\n", e.Key, e.Label, e.SourceURL)
	}
}

func init() {
	parseCmd.Flags().String("kind", string(types.SourceTeams), "extractor: teams, characters, lightcones, relics")
	parseCmd.Flags().String("url", "", "source URL to attribute facts to")
	parseCmd.Flags().Bool("entities", false, "also print the entities resolved from the page")

	rootCmd.AddCommand(parseCmd)
}
