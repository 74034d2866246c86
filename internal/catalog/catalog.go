// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog parses the character, light cone and relic list pages.
// Every parser resolves names through the shared entity registry, so a
// character listed here and the same character named in a team table end
// up as one entity.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/hsr-graph/internal/document"
	"github.com/pdiddy/hsr-graph/internal/emit"
	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/ontology"
	"github.com/pdiddy/hsr-graph/internal/registry"
)

// ErrSectionNotFound is returned when a page lacks the heading or table
// a parser anchors on.
var ErrSectionNotFound = errors.New("catalog section not found")

// Result is what one catalog page produced.
type Result struct {
	// Facts to emit, in row order.
	Facts []graph.Fact

	// Entities counts rows that resolved to an entity.
	Entities int

	// Skipped counts data rows that were too short or had no name.
	Skipped int
}

func (r *Result) add(facts ...graph.Fact) {
	r.Facts = append(r.Facts, facts...)
}

// Parser parses one catalog page.
type Parser func(root *document.Node, pageURL string, reg *registry.Registry) (Result, error)

const charactersHeading = "List of All Playable Characters"

// Characters parses the playable character list: the first table after
// the "List of All Playable Characters" heading, one character per row
// with element in the third column and path in the fourth.
func Characters(root *document.Node, pageURL string, reg *registry.Registry) (Result, error) {
	var res Result
	heading := root.Find(func(n *document.Node) bool {
		return n.Is("h3") && strings.EqualFold(n.Text(), charactersHeading)
	})
	if heading == nil {
		return res, fmt.Errorf("%w: heading %q", ErrSectionNotFound, charactersHeading)
	}
	table := heading.FindNext(document.Tag("table"))
	if table == nil {
		return res, fmt.Errorf("%w: no table after %q", ErrSectionNotFound, charactersHeading)
	}

	for _, tr := range table.Rows() {
		cells := tr.Children("td")
		if len(cells) == 0 {
			continue
		}
		if len(cells) < 4 {
			res.Skipped++
			continue
		}
		name, href := cellName(cells[0], true)
		char, err := reg.Resolve(name, href)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Entities++
		res.add(emit.EntityFacts(char, graph.ClassCharacter)...)

		iri := graph.IRI(char.Key)
		if el := cells[2].Text(); el != "" {
			res.add(graph.EdgeFact(iri, graph.PropHasElement, ontology.ElementIRI(el)))
		}
		if path := cells[3].Text(); path != "" {
			res.add(graph.EdgeFact(iri, graph.PropHasPath, ontology.PathIRI(path)))
		}
	}
	return res, nil
}

var lightConesHeading = regexp.MustCompile(`(?i)Available Light Cones`)

// LightCones parses the light cone list: the heading matching "Available
// Light Cones", the <div> after it, then the table after that div. The
// path is in the third column.
func LightCones(root *document.Node, pageURL string, reg *registry.Registry) (Result, error) {
	var res Result
	heading := root.Find(func(n *document.Node) bool {
		return n.Is("h3") && lightConesHeading.MatchString(n.Text())
	})
	if heading == nil {
		return res, fmt.Errorf("%w: heading matching %q", ErrSectionNotFound, lightConesHeading)
	}
	div := heading.NextSibling("div")
	if div == nil {
		return res, fmt.Errorf("%w: no <div> after light cone heading", ErrSectionNotFound)
	}
	table := div.NextSibling("table")
	if table == nil {
		return res, fmt.Errorf("%w: no table after light cone heading", ErrSectionNotFound)
	}

	for _, tr := range table.Rows() {
		cells := tr.Children("td")
		if len(cells) < 3 {
			// Header rows and short rows.
			continue
		}
		_, href := cellName(cells[0], false)
		cone, err := reg.Resolve(cells[0].Text(), href)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Entities++
		res.add(emit.EntityFacts(cone, graph.ClassLightCone)...)
		if path := cells[2].Text(); path != "" {
			res.add(graph.EdgeFact(graph.IRI(cone.Key), graph.PropLightConeHasPath, ontology.PathIRI(path)))
		}
	}
	return res, nil
}

// relicClass maps a relic section heading to its Set subclass.
func relicClass(heading string) string {
	switch {
	case strings.Contains(heading, "Cavern"):
		return graph.ClassCavernRelics
	case strings.Contains(heading, "Planar"), strings.Contains(heading, "Ornament"):
		return graph.ClassPlanarRelics
	default:
		return ""
	}
}

// Relics parses every Cavern Relic and Planar Ornament section: each <h3>
// naming one, and the next table after it. Rows with header cells are
// skipped; the set name is taken only from the first link of the first
// cell, the effect text from the second cell. Sets without their own
// link are sourced to the page.
func Relics(root *document.Node, pageURL string, reg *registry.Registry) (Result, error) {
	var res Result
	sections := 0
	for _, h3 := range root.FindAll(document.Tag("h3")) {
		class := relicClass(h3.Text())
		if class == "" {
			continue
		}
		table := h3.FindNext(document.Tag("table"))
		if table == nil {
			continue
		}
		sections++

		for _, tr := range table.Rows() {
			if len(tr.Children("th")) > 0 {
				continue
			}
			cells := tr.Children("td")
			if len(cells) == 0 {
				continue
			}
			name, href := cellName(cells[0], false)
			if href == "" {
				href = pageURL
			}
			set, err := reg.Resolve(name, href)
			if err != nil {
				res.Skipped++
				continue
			}
			res.Entities++
			res.add(emit.EntityFacts(set, graph.ClassSet)...)

			iri := graph.IRI(set.Key)
			res.add(graph.TypeFact(iri, class))
			if len(cells) >= 2 {
				if effect := cells[1].Text(); effect != "" {
					res.add(graph.LiteralFact(iri, graph.RDFSComment, effect))
				}
			}
		}
	}
	if sections == 0 {
		return res, fmt.Errorf("%w: no Cavern or Planar heading", ErrSectionNotFound)
	}
	return res, nil
}

// cellName returns the display name and link target of a cell: the first
// link's text, or the whole cell text when fallback is set and the cell
// has no link text.
func cellName(cell *document.Node, fallback bool) (name, href string) {
	l := cell.FirstLink()
	name = l.Text
	if name == "" && fallback {
		name = cell.Text()
	}
	return name, l.Href
}
