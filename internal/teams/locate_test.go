// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hsr-graph/internal/document"
	"github.com/pdiddy/hsr-graph/internal/registry"
	"github.com/pdiddy/hsr-graph/pkg/types"
)

const teamPage = `<html><body>
<h2>Best Teams</h2>
<h4>F2P Teams</h4>
<table class="a-table">
  <tr><th colspan="4">F2P</th></tr>
  <tr><th>DPS</th><th>Support</th><th>Support</th><th>Sustain</th></tr>
  <tr>
    <td><a href="/hsr/a"><img alt="A"></a><a href="/hsr/a">A</a></td>
    <td><a href="/hsr/b">B</a></td>
    <td><a href="/hsr/c">C</a></td>
    <td><a href="/hsr/d">D</a></td>
  </tr>
</table>
<p>Some commentary.</p>
<h4>Hypercarry Teams</h4>
<div class="note">Pick one.</div>
<table class="a-table">
  <tr><th colspan="4">Hypercarry</th></tr>
  <tr><td><a href="/hsr/a">A</a></td><td><a>B</a></td><td>none</td><td><a href="/hsr/e">E</a></td></tr>
  <tr><td><a href="/hsr/f">F</a></td><td><a>B</a></td><td><a>C</a></td><td><a>D</a></td></tr>
</table>
<table class="a-table">
  <tr><th>DPS</th><th>Support</th></tr>
  <tr><td><a href="/hsr/g">G</a></td><td><a>H</a></td></tr>
</table>
<h4>Orphan Heading</h4>
<h3>Unrelated</h3>
<table class="a-table">
  <tr><th colspan="2">Not a team</th></tr>
  <tr><td><a>X</a></td><td><a>Y</a></td></tr>
</table>
</body></html>`

func parsePage(t *testing.T, s string) *document.Node {
	t.Helper()
	root, err := document.ParseString(s)
	require.NoError(t, err)
	return root
}

func TestLocateStopsAtBoundaries(t *testing.T) {
	sections, warnings := DefaultLocator().Locate(parsePage(t, teamPage))

	var got []string
	for _, s := range sections {
		got = append(got, s.Label)
	}
	assert.Equal(t, []string{"F2P Teams", "Hypercarry Teams", "Hypercarry Teams"}, got)

	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], ErrMalformedSection)
	assert.Contains(t, warnings[0].Error(), "Orphan Heading")
}

func TestExtractEndToEnd(t *testing.T) {
	reg := registry.New()
	ex := DefaultLocator().Extract(parsePage(t, teamPage), "https://example.test/teams", reg)

	require.Len(t, ex.Tables, 3)
	assert.Equal(t, 4, ex.TeamCount())
	assert.Equal(t, 4+3+4+2, ex.MembershipCount())

	f2p := ex.Tables[0]
	require.Len(t, f2p.Teams, 1)
	assert.Equal(t, "F2P Teams — F2P", f2p.Teams[0].Label)
	assert.Equal(t, "https://example.test/teams", f2p.Teams[0].SourceURL)
	assert.Equal(t, []edge{
		{"F2P_Teams_F2P", RoleDPS, "A"},
		{"F2P_Teams_F2P", RoleSupport, "B"},
		{"F2P_Teams_F2P", RoleSupport, "C"},
		{"F2P_Teams_F2P", RoleSustain, "D"},
	}, edges(f2p))

	hyper := ex.Tables[1]
	assert.Equal(t, []string{"Hypercarry Teams — Hypercarry", "Hypercarry Teams — Hypercarry (1)"}, labels(hyper))
	first := hyper.MembershipsOf("Hypercarry_Teams_Hypercarry")
	require.Len(t, first, 3)
	assert.Equal(t, []int{0, 1, 3}, []int{first[0].Column, first[1].Column, first[2].Column})
	assert.Equal(t, RoleSustain, first[2].Role)
	assert.Equal(t, 1, hyper.EmptyCells)

	flat := ex.Tables[2]
	assert.Equal(t, ShapeFlat, flat.Shape)
	assert.Equal(t, []string{"Hypercarry Teams"}, labels(flat))

	// The member A seen first in the F2P table keeps its first source.
	a, ok := reg.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "/hsr/a", a.SourceURL)

	require.Len(t, ex.Warnings, 1)
	assert.ErrorIs(t, ex.Warnings[0], ErrMalformedSection)
}

func TestExtractFallsBackToTableClass(t *testing.T) {
	page := `<div>
<table class="a-table a-table--wide">
  <tr><th colspan="4">Budget</th></tr>
  <tr><td><a>A</a></td><td><a>B</a></td></tr>
</table>
<table class="layout"><tr><th colspan="2">Ignored</th></tr><tr><td><a>Z</a></td></tr></table>
</div>`

	ex := DefaultLocator().Extract(parsePage(t, page), "", registry.New())

	require.Len(t, ex.Tables, 1)
	assert.Equal(t, []string{"Teams — Budget"}, labels(ex.Tables[0]))
	assert.Empty(t, ex.Warnings)
}

func TestExtractWarnsOnEmptyAndUnrecognized(t *testing.T) {
	page := `<h4>Empty</h4><table class="a-table"></table>
<h4>Loose</h4><table class="a-table"><tr><td><a>A</a></td></tr></table>`

	reg := registry.New()
	ex := DefaultLocator().Extract(parsePage(t, page), "", reg)

	assert.Empty(t, ex.Tables)
	require.Len(t, ex.Warnings, 2)
	assert.ErrorIs(t, ex.Warnings[0], ErrMalformedSection)
	assert.ErrorIs(t, ex.Warnings[1], ErrUnrecognizedShape)
	assert.Equal(t, 0, reg.Len())
}

func TestExtractNoTables(t *testing.T) {
	ex := DefaultLocator().Extract(parsePage(t, `<p>nothing here</p>`), "", registry.New())
	assert.Empty(t, ex.Tables)
	assert.Empty(t, ex.Warnings)
	assert.Equal(t, 0, ex.TeamCount())
}

func TestNewLocatorOverrides(t *testing.T) {
	page := `<h3>Teams A</h3>
<table class="grid"><tr><th colspan="2">S</th></tr><tr><td><a>A</a></td></tr></table>
<h2>Stop</h2>
<table class="grid"><tr><th colspan="2">T</th></tr><tr><td><a>B</a></td></tr></table>`

	l := NewLocator(types.TeamConfig{
		HeadingTags:  []string{"h3"},
		BoundaryTags: []string{"h2", "h3"},
		TableClass:   "grid",
		DefaultLabel: "  Comps  ",
	})
	assert.Equal(t, "Comps", l.DefaultLabel)

	ex := l.Extract(parsePage(t, page), "", registry.New())
	require.Len(t, ex.Tables, 1)
	assert.Equal(t, []string{"Teams A — S"}, labels(ex.Tables[0]))

	d := NewLocator(types.TeamConfig{})
	assert.Equal(t, "Teams", d.DefaultLabel)
	assert.Equal(t, []string{"h2", "h3", "h4"}, d.Boundaries)
}
