// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hsr-graph/internal/emit"
	"github.com/pdiddy/hsr-graph/internal/ontology"
)

var ontologyCmd = &cobra.Command{
	Use:   "ontology",
	Short: "Write the class and property declarations",
	Long: `Ontology writes the graph schema (classes, class hierarchy, path, element
and characteristic individuals, object properties with domain and range)
into the store. With --print the facts are printed instead.`,
	RunE: runOntology,
}

func runOntology(cmd *cobra.Command, args []string) error {
	facts := ontology.Facts()
	if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
		printFacts(cmd.OutOrStdout(), facts)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := emit.New(store).Facts(cmd.Context(), facts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ontology: %d facts written to %s\n", n, store.Dir())
	return nil
}

func init() {
	ontologyCmd.Flags().Bool("print", false, "print the declarations instead of storing them")

	rootCmd.AddCommand(ontologyCmd)
}
