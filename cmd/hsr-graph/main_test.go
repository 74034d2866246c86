// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/registry"
	"github.com/pdiddy/hsr-graph/pkg/types"
)

func TestPrintFacts(t *testing.T) {
	var buf bytes.Buffer
	printFacts(&buf, []graph.Fact{
		graph.TypeFact(graph.IRI("Kafka"), graph.ClassCharacter),
		graph.LiteralFact(graph.IRI("Kafka"), graph.RDFSLabel, "Kafka"),
	})
	assert.Equal(t, "hsr:Kafka  rdf:type  hsr:Character\nhsr:Kafka  rdfs:label  \"Kafka\"\n", buf.String())
}

func TestPrintEntities(t *testing.T) {
	reg := registry.New()
	_, err := reg.Resolve("The Herta", "/hsr/herta")
	require.NoError(t, err)
	_, err = reg.Resolve("Acheron", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	printEntities(&buf, reg.Entities())
	assert.Equal(t, "\n2 entities\nAcheron  \"Acheron\"  \nHerta  \"The Herta\"  /hsr/herta\n", buf.String())
}

func testIngestCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("sources", "", "")
	cmd.Flags().String("kind", string(types.SourceTeams), "")
	return cmd
}

func TestIngestSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - kind: relics\n    url: https://example.test/relics\n"), 0o644))

	cmd := testIngestCmd()
	require.NoError(t, cmd.Flags().Set("sources", path))
	require.NoError(t, cmd.Flags().Set("kind", "characters"))

	sources, err := ingestSources(cmd, []string{"https://example.test/chars"})
	require.NoError(t, err)
	assert.Equal(t, []types.Source{
		{Kind: types.SourceRelics, URL: "https://example.test/relics"},
		{Kind: types.SourceCharacters, URL: "https://example.test/chars"},
	}, sources)
}

func TestIngestSourcesRejectsUnknownKind(t *testing.T) {
	cmd := testIngestCmd()
	require.NoError(t, cmd.Flags().Set("kind", "bosses"))

	_, err := ingestSources(cmd, []string{"https://example.test"})
	assert.ErrorContains(t, err, "unsupported kind")
}

func TestFilterFromFlagsExpandsPrefixes(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("subject", "", "")
	cmd.Flags().String("predicate", "", "")
	cmd.Flags().String("object", "", "")
	cmd.Flags().Int("limit", 0, "")
	require.NoError(t, cmd.Flags().Set("subject", "hsr:Kafka"))
	require.NoError(t, cmd.Flags().Set("predicate", "rdf:type"))
	require.NoError(t, cmd.Flags().Set("limit", "5"))

	f := filterFromFlags(cmd)
	assert.Equal(t, graph.IRI("Kafka"), f.Subject)
	assert.Equal(t, graph.RDFType, f.Predicate)
	assert.Equal(t, "", f.Object)
	assert.Equal(t, 5, f.Limit)
}

func TestFilterFromFlagsExcludesPredicates(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringSlice("exclude-predicate", nil, "")
	cmd.Flags().Bool("clean", false, "")
	require.NoError(t, cmd.Flags().Set("exclude-predicate", "hsr:hasMember"))
	require.NoError(t, cmd.Flags().Set("clean", "true"))

	f := filterFromFlags(cmd)
	assert.Equal(t, []string{graph.PropHasMember, graph.PropSourceURL, graph.RDFSComment}, f.ExcludePredicates)
}
