// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teams

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/hsr-graph/internal/document"
	"github.com/pdiddy/hsr-graph/internal/registry"
	"github.com/pdiddy/hsr-graph/pkg/types"
)

var (
	// ErrMalformedSection marks a heading with no following table, or a
	// table with no rows. The section yields no records.
	ErrMalformedSection = errors.New("malformed section")

	// ErrUnrecognizedShape marks a table matching neither the subgrouped
	// nor the flat layout. The table is skipped.
	ErrUnrecognizedShape = errors.New("unrecognized table shape")
)

// HeadingPredicate reports whether an element introduces a team section.
type HeadingPredicate func(*document.Node) bool

// TablePredicate reports whether a table looks like a team table.
type TablePredicate func(*document.Node) bool

// HeadingTags matches any of the given heading tags with non-empty text.
func HeadingTags(tags ...string) HeadingPredicate {
	return func(n *document.Node) bool {
		return n.Is(tags...) && n.Text() != ""
	}
}

// TableClass matches tables carrying a class token containing substr.
func TableClass(substr string) TablePredicate {
	return func(n *document.Node) bool {
		return n.Is("table") && n.HasClass(substr)
	}
}

// Section is one table paired with the label of the heading above it.
type Section struct {
	Label string
	Table *document.Node
}

// Locator finds team tables in a page and labels them.
type Locator struct {
	// Heading selects section headings.
	Heading HeadingPredicate

	// Boundaries are heading tags that end a section.
	Boundaries []string

	// Table selects team tables on pages without section headings.
	Table TablePredicate

	// DefaultLabel labels tables found by Table.
	DefaultLabel string
}

// DefaultLocator returns a locator for game8-style team pages: sections
// start at <h4>, end at the next h2/h3/h4, and headingless pages fall
// back to tables with an "a-table" class labelled "Teams".
func DefaultLocator() Locator {
	return Locator{
		Heading:      HeadingTags("h4"),
		Boundaries:   []string{"h2", "h3", "h4"},
		Table:        TableClass("a-table"),
		DefaultLabel: "Teams",
	}
}

// NewLocator builds a locator from configuration; empty fields keep the
// DefaultLocator values.
func NewLocator(cfg types.TeamConfig) Locator {
	l := DefaultLocator()
	if len(cfg.HeadingTags) > 0 {
		l.Heading = HeadingTags(cfg.HeadingTags...)
	}
	if len(cfg.BoundaryTags) > 0 {
		l.Boundaries = cfg.BoundaryTags
	}
	if cfg.TableClass != "" {
		l.Table = TableClass(cfg.TableClass)
	}
	if strings.TrimSpace(cfg.DefaultLabel) != "" {
		l.DefaultLabel = strings.TrimSpace(cfg.DefaultLabel)
	}
	return l
}

// Locate pairs every matching heading with the tables that follow it as
// siblings, up to the next boundary heading, in document order. When no
// heading matches, every table satisfying the table predicate is paired
// with DefaultLabel. Headings without a table are reported as
// ErrMalformedSection warnings.
func (l Locator) Locate(root *document.Node) ([]Section, []error) {
	headings := root.FindAll(l.Heading)
	if len(headings) == 0 {
		var out []Section
		for _, table := range root.FindAll(document.Tag("table")) {
			if l.Table(table) {
				out = append(out, Section{Label: l.DefaultLabel, Table: table})
			}
		}
		return out, nil
	}

	var (
		out      []Section
		warnings []error
	)
	for _, h := range headings {
		label := h.Text()
		found := 0
		for _, sib := range h.NextSiblings() {
			if sib.Is("table") {
				out = append(out, Section{Label: label, Table: sib})
				found++
			}
			if sib.Is(l.Boundaries...) {
				break
			}
		}
		if found == 0 {
			warnings = append(warnings, fmt.Errorf("%w: heading %q has no table", ErrMalformedSection, label))
		}
	}
	return out, warnings
}

// Extraction is the outcome of extracting one page.
type Extraction struct {
	Tables   []Result
	Warnings []error
}

// TeamCount returns the number of teams across all tables.
func (e Extraction) TeamCount() int {
	n := 0
	for _, r := range e.Tables {
		n += len(r.Teams)
	}
	return n
}

// MembershipCount returns the number of memberships across all tables.
func (e Extraction) MembershipCount() int {
	n := 0
	for _, r := range e.Tables {
		n += len(r.Memberships)
	}
	return n
}

// Extract locates sections in root and walks each table to completion
// before starting the next. Tables without rows or with an unrecognized
// shape produce warnings and no records.
func (l Locator) Extract(root *document.Node, sourceURL string, reg *registry.Registry) Extraction {
	sections, warnings := l.Locate(root)
	ex := Extraction{Warnings: warnings}

	for _, sec := range sections {
		rows := ClassifyTable(sec.Table)
		res := Walk(sec.Label, sourceURL, rows, reg)
		switch res.Shape {
		case ShapeEmpty:
			ex.Warnings = append(ex.Warnings, fmt.Errorf("%w: table under %q has no rows", ErrMalformedSection, sec.Label))
			continue
		case ShapeUnrecognized:
			ex.Warnings = append(ex.Warnings, fmt.Errorf("%w: table under %q", ErrUnrecognizedShape, sec.Label))
			continue
		}
		ex.Tables = append(ex.Tables, res)
	}
	return ex
}
