// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hsr-graph/internal/graph"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "List or export stored facts",
	Long: `Facts reads the graph store. Use subcommands to list facts matching a
filter or export them to YAML or JSON.

Filter values accept prefix form (hsr:Kafka, rdf:type, rdfs:label) or full IRIs.`,
}

// --- list subcommand ---

var factsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print facts matching a filter",
	RunE:  runFactsList,
}

func runFactsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	facts, err := store.Facts(cmd.Context(), filterFromFlags(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(facts)
	}

	if len(facts) == 0 {
		fmt.Fprintln(out, "No facts found.")
		return nil
	}
	printFacts(out, facts)
	fmt.Fprintf(out, "\n%d facts\n", len(facts))
	return nil
}

// --- export subcommand ---

var factsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export facts to YAML or JSON",
	Long: `Export writes the stored facts (or a filtered subset), sorted and in
prefix form, to <graph-dir>/export.yaml or export.json. With --clean the
source URLs and relic effect comments are left out, giving a graph of
entities and relations only.`,
	RunE: runFactsExport,
}

func runFactsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	f := filterFromFlags(cmd)

	var path string
	switch format {
	case "yaml", "":
		path, err = graph.ExportYAML(cmd.Context(), store, store.Dir(), f)
	case "json":
		path, err = graph.ExportJSON(cmd.Context(), store, store.Dir(), f)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func filterFromFlags(cmd *cobra.Command) graph.Filter {
	subject, _ := cmd.Flags().GetString("subject")
	predicate, _ := cmd.Flags().GetString("predicate")
	object, _ := cmd.Flags().GetString("object")
	limit, _ := cmd.Flags().GetInt("limit")
	exclude, _ := cmd.Flags().GetStringSlice("exclude-predicate")
	clean, _ := cmd.Flags().GetBool("clean")

	f := graph.Filter{
		Subject:   graph.Expand(subject),
		Predicate: graph.Expand(predicate),
		Object:    graph.Expand(object),
		Limit:     limit,
	}
	for _, p := range exclude {
		f.ExcludePredicates = append(f.ExcludePredicates, graph.Expand(p))
	}
	if clean {
		f.ExcludePredicates = append(f.ExcludePredicates, graph.ProvenancePredicates...)
	}
	return f
}

func init() {
	// Shared filter flags on the parent command, inherited by subcommands.
	factsCmd.PersistentFlags().String("subject", "", "filter by subject")
	factsCmd.PersistentFlags().String("predicate", "", "filter by predicate")
	factsCmd.PersistentFlags().String("object", "", "filter by object (IRI or literal value)")
	factsCmd.PersistentFlags().Int("limit", 0, "maximum facts (0 = all)")
	factsCmd.PersistentFlags().StringSlice("exclude-predicate", nil, "leave out facts with this predicate (repeatable)")
	factsCmd.PersistentFlags().Bool("clean", false, "leave out hsr:sourceURL and rdfs:comment facts")

	factsListCmd.Flags().Bool("json", false, "output facts as JSON")
	factsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	factsCmd.AddCommand(factsListCmd)
	factsCmd.AddCommand(factsExportCmd)

	rootCmd.AddCommand(factsCmd)
}
