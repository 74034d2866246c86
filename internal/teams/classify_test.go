// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hsr-graph/internal/document"
)

// parseRows wraps body in a table and returns its top-level rows.
func parseRows(t *testing.T, body string) []*document.Node {
	t.Helper()
	root, err := document.ParseString("<table>" + body + "</table>")
	require.NoError(t, err)
	table := root.Find(document.Tag("table"))
	require.NotNil(t, table)
	return table.Rows()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want Row
	}{
		{
			name: "banner",
			row:  `<tr><th colspan="4"> Hypercarry   Team </th></tr>`,
			want: Banner("Hypercarry Team"),
		},
		{
			name: "blank colspan is not a banner",
			row:  `<tr><th colspan=" ">F2P</th></tr>`,
			want: Skip(),
		},
		{
			name: "banner with data cell is not a banner",
			row:  `<tr><th colspan="2">F2P</th><td><a href="/k">Kafka</a></td></tr>`,
			want: Member(Cell{Text: "Kafka", LinkText: "Kafka", Href: "/k"}),
		},
		{
			name: "role header",
			row:  `<tr><th>DPS</th><th>Support</th><th>Support</th><th>Sustain</th></tr>`,
			want: RoleHeader("DPS", "Support", "Support", "Sustain"),
		},
		{
			name: "spanning header cells are not a role header",
			row:  `<tr><th colspan="2">A</th><th>B</th></tr>`,
			want: Skip(),
		},
		{
			name: "member row",
			row: `<tr><td><a href="/hsr/acheron"><img alt="x"></a><a href="/hsr/acheron">Acheron</a></td>` +
				`<td>no link</td><td><a href="/hsr/pela">Pela</a> (E6)</td></tr>`,
			want: Member(
				Cell{Text: "Acheron", LinkText: "Acheron", Href: "/hsr/acheron"},
				Cell{Text: "no link"},
				Cell{Text: "Pela (E6)", LinkText: "Pela", Href: "/hsr/pela"},
			),
		},
		{
			name: "empty row",
			row:  `<tr></tr>`,
			want: Skip(),
		},
		{
			name: "single plain header",
			row:  `<tr><th>Notes</th></tr>`,
			want: Skip(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := parseRows(t, tt.row)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, Classify(rows[0]))
		})
	}
}

func TestClassifyIgnoresNestedTables(t *testing.T) {
	rows := parseRows(t, `<tr><td><table><tr><th colspan="2">Inner</th></tr>`+
		`<tr><td><a>Inner Member</a></td></tr></table></td></tr>`)

	// Only the outer row is top-level.
	require.Len(t, rows, 1)
	row := Classify(rows[0])
	assert.Equal(t, KindMember, row.Kind)
	require.Len(t, row.Cells, 1)
	assert.Equal(t, "Inner Member", row.Cells[0].LinkText)
}

func TestClassifyTableIncludesSections(t *testing.T) {
	root, err := document.ParseString(`<table><thead><tr><th>DPS</th><th>Support</th></tr></thead>` +
		`<tbody><tr><td>a</td></tr><tr></tr></tbody><tfoot><tr><td>c</td></tr></tfoot></table>`)
	require.NoError(t, err)

	rows := ClassifyTable(root.Find(document.Tag("table")))
	require.Len(t, rows, 4)
	assert.Equal(t, []Kind{KindRoleHeader, KindMember, KindSkip, KindMember},
		[]Kind{rows[0].Kind, rows[1].Kind, rows[2].Kind, rows[3].Kind})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "banner", KindBanner.String())
	assert.Equal(t, "role-header", KindRoleHeader.String())
	assert.Equal(t, "member", KindMember.String())
	assert.Equal(t, "skip", KindSkip.String())
}
