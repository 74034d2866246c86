// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teams

import (
	"strings"

	"github.com/pdiddy/hsr-graph/internal/document"
)

// Kind is the structural role of one table row.
type Kind int

const (
	// KindSkip is a row with nothing usable (including no cells at all).
	KindSkip Kind = iota
	// KindBanner is a single spanning header cell naming a subgroup.
	KindBanner
	// KindRoleHeader is two or more plain header cells naming columns.
	KindRoleHeader
	// KindMember is a row with at least one data cell.
	KindMember
)

func (k Kind) String() string {
	switch k {
	case KindBanner:
		return "banner"
	case KindRoleHeader:
		return "role-header"
	case KindMember:
		return "member"
	default:
		return "skip"
	}
}

// Cell is one data cell of a member row.
type Cell struct {
	// Text is the full cell text.
	Text string
	// LinkText is the text of the first anchor, the member's display name.
	LinkText string
	// Href is the target of the first anchor that has one.
	Href string
}

// Row is the classification of one table row. Only the fields matching
// Kind are set.
type Row struct {
	Kind  Kind
	Text  string   // banner
	Names []string // role header
	Cells []Cell   // member
}

// Banner returns a banner row.
func Banner(text string) Row { return Row{Kind: KindBanner, Text: text} }

// RoleHeader returns a role-header row.
func RoleHeader(names ...string) Row { return Row{Kind: KindRoleHeader, Names: names} }

// Member returns a member row.
func Member(cells ...Cell) Row { return Row{Kind: KindMember, Cells: cells} }

// Skip returns a skip row.
func Skip() Row { return Row{Kind: KindSkip} }

// Link returns a cell holding one anchor.
func Link(name, href string) Cell { return Cell{Text: name, LinkText: name, Href: href} }

// Classify reports the structural role of a <tr>. Only the row's own
// cells are inspected, never cells of nested tables.
func Classify(tr *document.Node) Row {
	var headers, data []*document.Node
	for _, c := range tr.Children("th", "td") {
		if c.Is("th") {
			headers = append(headers, c)
		} else {
			data = append(data, c)
		}
	}

	if len(headers) == 1 && len(data) == 0 && spans(headers[0]) {
		return Banner(headers[0].Text())
	}

	if len(headers) >= 2 && !anySpans(headers) {
		names := make([]string, len(headers))
		for i, th := range headers {
			names[i] = th.Text()
		}
		return RoleHeader(names...)
	}

	if len(data) > 0 {
		cells := make([]Cell, len(data))
		for i, td := range data {
			l := td.FirstLink()
			cells[i] = Cell{Text: td.Text(), LinkText: l.Text, Href: l.Href}
		}
		return Member(cells...)
	}

	return Skip()
}

func spans(th *document.Node) bool {
	v, _ := th.Attr("colspan")
	return strings.TrimSpace(v) != ""
}

func anySpans(ths []*document.Node) bool {
	for _, th := range ths {
		if spans(th) {
			return true
		}
	}
	return false
}

// ClassifyTable classifies every top-level row of table.
func ClassifyTable(table *document.Node) []Row {
	trs := table.Rows()
	rows := make([]Row, len(trs))
	for i, tr := range trs {
		rows[i] = Classify(tr)
	}
	return rows
}
