// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hsr-graph/internal/document"
	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/registry"
	"github.com/pdiddy/hsr-graph/internal/teams"
)

func parse(t *testing.T, s string) *document.Node {
	t.Helper()
	root, err := document.ParseString(s)
	require.NoError(t, err)
	return root
}

func contains(facts []graph.Fact, want graph.Fact) bool {
	for _, f := range facts {
		if f == want {
			return true
		}
	}
	return false
}

const charactersPage = `<html><body>
<h3>List of All Playable Characters</h3>
<p>Sorted by release.</p>
<table class="a-table">
  <tbody>
  <tr><th>Character</th><th>Rarity</th><th>Element</th><th>Path</th></tr>
  <tr><td><a href="/hsr/kafka"><img alt="Kafka"></a><a href="/hsr/kafka">Kafka</a></td><td>5</td><td>Lightning</td><td>The Nihility</td></tr>
  <tr><td>The Herta</td><td>5</td><td>Ice</td><td>The Erudition</td></tr>
  <tr><td><a href="/hsr/short">Short</a></td><td>4</td></tr>
  <tr><td></td><td>4</td><td>Fire</td><td>The Hunt</td></tr>
  </tbody>
</table>
</body></html>`

func TestCharacters(t *testing.T) {
	reg := registry.New()
	res, err := Characters(parse(t, charactersPage), "https://example.test/chars", reg)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Entities)
	assert.Equal(t, 2, res.Skipped)

	kafka := graph.IRI("Kafka")
	for _, f := range []graph.Fact{
		graph.TypeFact(kafka, graph.ClassCharacter),
		graph.LiteralFact(kafka, graph.RDFSLabel, "Kafka"),
		graph.LiteralFact(kafka, graph.PropSourceURL, "/hsr/kafka"),
		graph.EdgeFact(kafka, graph.PropHasElement, graph.IRI("Lightning")),
		graph.EdgeFact(kafka, graph.PropHasPath, graph.IRI("Nihility")),
		graph.TypeFact(graph.IRI("Herta"), graph.ClassCharacter),
		graph.LiteralFact(graph.IRI("Herta"), graph.RDFSLabel, "The Herta"),
		graph.EdgeFact(graph.IRI("Herta"), graph.PropHasPath, graph.IRI("Erudition")),
	} {
		assert.True(t, contains(res.Facts, f), "missing %s %s %s", graph.Compact(f.Subject), graph.Compact(f.Predicate), f.Object)
	}
}

func TestCharactersMissingHeading(t *testing.T) {
	_, err := Characters(parse(t, `<h3>Other</h3><table></table>`), "", registry.New())
	assert.ErrorIs(t, err, ErrSectionNotFound)

	_, err = Characters(parse(t, `<h3>List of All Playable Characters</h3>`), "", registry.New())
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestCharactersShareIdentityWithTeams(t *testing.T) {
	reg := registry.New()
	_, err := Characters(parse(t, charactersPage), "", reg)
	require.NoError(t, err)

	page := parse(t, `<h4>Herta Teams</h4><table class="a-table">
<tr><th colspan="4">Freeze</th></tr>
<tr><td><a href="/teams/herta">Herta</a></td><td><a>Kafka</a></td></tr></table>`)
	ex := teams.DefaultLocator().Extract(page, "", reg)
	require.Len(t, ex.Tables, 1)

	members := ex.Tables[0].Memberships
	require.Len(t, members, 2)
	assert.Equal(t, "Herta", members[0].Member.Key)
	assert.Equal(t, "The Herta", members[0].Member.Label)
	assert.False(t, members[0].Member.LabelSet)
	assert.Equal(t, "/teams/herta", members[0].Member.SourceURL, "the character row had no link")
	assert.True(t, members[0].Member.SourceSet)
	assert.Equal(t, "/hsr/kafka", members[1].Member.SourceURL)
}

const lightConesPage = `<html><body>
<h3>All Available Light Cones List</h3>
<div class="filter">Filter by path</div>
<table>
  <tr><th>Light Cone</th><th>Rarity</th><th>Path</th></tr>
  <tr><td><a href="/hsr/lc/night">Along the Passing Shore</a></td><td>5</td><td>The Nihility</td></tr>
  <tr><td>Moment of Victory</td><td>5</td><td>The Preservation</td></tr>
  <tr><td>Broken</td><td>4</td></tr>
</table>
</body></html>`

func TestLightCones(t *testing.T) {
	res, err := LightCones(parse(t, lightConesPage), "", registry.New())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Entities)
	shore := graph.IRI("Along_the_Passing_Shore")
	assert.True(t, contains(res.Facts, graph.TypeFact(shore, graph.ClassLightCone)))
	assert.True(t, contains(res.Facts, graph.EdgeFact(shore, graph.PropLightConeHasPath, graph.IRI("Nihility"))))
	assert.True(t, contains(res.Facts, graph.LiteralFact(shore, graph.PropSourceURL, "/hsr/lc/night")))
	assert.True(t, contains(res.Facts, graph.EdgeFact(graph.IRI("Moment_of_Victory"), graph.PropLightConeHasPath, graph.IRI("Preservation"))))
}

func TestLightConesRequiresDivThenTable(t *testing.T) {
	_, err := LightCones(parse(t, `<h3>Available Light Cones</h3><table><tr><td>a</td><td>b</td><td>c</td></tr></table>`), "", registry.New())
	assert.ErrorIs(t, err, ErrSectionNotFound)

	_, err = LightCones(parse(t, `<h3>Available Light Cones</h3><div></div>`), "", registry.New())
	assert.ErrorIs(t, err, ErrSectionNotFound)

	_, err = LightCones(parse(t, `<p>none</p>`), "", registry.New())
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

const relicsPage = `<html><body>
<h3>List of Cavern Relics</h3>
<table><tbody>
  <tr><th>Set</th><th>Effect</th></tr>
  <tr><td><a href="/hsr/relic/musketeer"><img alt=""></a><a href="/hsr/relic/musketeer">Musketeer of Wild Wheat</a></td><td>2-Pc: ATK +12%.   4-Pc: SPD +6%.</td></tr>
  <tr><td>No Link Set</td><td>ignored</td></tr>
</tbody></table>
<h3>List of Planar Ornaments</h3>
<table>
  <tr><td><a>Space Sealing Station</a></td><td>ATK +12%.</td></tr>
  <tr><td><a>Bare</a></td></tr>
</table>
<h3>Unrelated</h3>
<table><tr><td><a href="/x">Not a relic</a></td></tr></table>
</body></html>`

func TestRelics(t *testing.T) {
	res, err := Relics(parse(t, relicsPage), "https://example.test/relics", registry.New())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Entities)
	assert.Equal(t, 1, res.Skipped)

	musketeer := graph.IRI("Musketeer_of_Wild_Wheat")
	station := graph.IRI("Space_Sealing_Station")
	for _, f := range []graph.Fact{
		graph.TypeFact(musketeer, graph.ClassSet),
		graph.TypeFact(musketeer, graph.ClassCavernRelics),
		graph.LiteralFact(musketeer, graph.RDFSComment, "2-Pc: ATK +12%. 4-Pc: SPD +6%."),
		graph.LiteralFact(musketeer, graph.PropSourceURL, "/hsr/relic/musketeer"),
		graph.TypeFact(station, graph.ClassPlanarRelics),
		graph.LiteralFact(station, graph.PropSourceURL, "https://example.test/relics"),
		graph.TypeFact(graph.IRI("Bare"), graph.ClassPlanarRelics),
	} {
		assert.True(t, contains(res.Facts, f), "missing %s %s %s", graph.Compact(f.Subject), graph.Compact(f.Predicate), f.Object)
	}
	assert.False(t, contains(res.Facts, graph.TypeFact(graph.IRI("Not_a_relic"), graph.ClassSet)))
}

func TestRelicsWithoutSections(t *testing.T) {
	_, err := Relics(parse(t, `<h3>Characters</h3><table></table>`), "", registry.New())
	assert.ErrorIs(t, err, ErrSectionNotFound)
}
