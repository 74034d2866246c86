// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit turns extraction records into graph facts. It is the only
// component that writes into a graph.Store.
package emit

import (
	"context"
	"fmt"

	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/registry"
	"github.com/pdiddy/hsr-graph/internal/teams"
)

// Batcher is implemented by stores that can write many facts in one
// transaction.
type Batcher interface {
	AddFacts(ctx context.Context, facts []graph.Fact) (int, error)
}

// Emitter writes records into Store.
type Emitter struct {
	Store graph.Store
}

// New returns an emitter writing into s.
func New(s graph.Store) *Emitter {
	return &Emitter{Store: s}
}

// RoleProperty maps a membership role to its edge property. Positional
// overflow roles (Role_5, ...) and unrecognized header roles become
// hasMember.
func RoleProperty(r teams.Role) string {
	switch r {
	case teams.RoleDPS:
		return graph.PropHasDPS
	case teams.RoleSupport:
		return graph.PropHasSupport
	case teams.RoleSustain:
		return graph.PropHasSustain
	default:
		return graph.PropHasMember
	}
}

// EntityFacts returns the type fact for an entity of class (when class is
// non-empty) plus its label and source facts. Label and source are the
// registry's first-won values, so repeating them on every resolution
// writes nothing new to a set store but restores facts an earlier failed
// write lost.
func EntityFacts(r registry.Resolution, class string) []graph.Fact {
	iri := graph.IRI(r.Key)
	var out []graph.Fact
	if class != "" {
		out = append(out, graph.TypeFact(iri, class))
	}
	if r.Label != "" {
		out = append(out, graph.LiteralFact(iri, graph.RDFSLabel, r.Label))
	}
	if r.SourceURL != "" {
		out = append(out, graph.LiteralFact(iri, graph.PropSourceURL, r.SourceURL))
	}
	return out
}

// TeamFacts returns the type, label and optional source facts of a team.
// Teams always carry their label, even when the registry had seen the
// key before.
func TeamFacts(t teams.Team) []graph.Fact {
	iri := graph.IRI(t.Key)
	out := []graph.Fact{
		graph.TypeFact(iri, graph.ClassTeam),
		graph.LiteralFact(iri, graph.RDFSLabel, t.Label),
	}
	if t.SourceURL != "" {
		out = append(out, graph.LiteralFact(iri, graph.PropSourceURL, t.SourceURL))
	}
	return out
}

// MembershipFacts returns the member's label and source facts followed by
// the role edge from team to member.
func MembershipFacts(m teams.Membership) []graph.Fact {
	out := EntityFacts(m.Member, "")
	return append(out, graph.EdgeFact(graph.IRI(m.Team), RoleProperty(m.Role), graph.IRI(m.Member.Key)))
}

// ResultFacts returns every fact of one table walk: each team followed by
// its memberships, in record order.
func ResultFacts(r teams.Result) []graph.Fact {
	var out []graph.Fact
	for _, t := range r.Teams {
		out = append(out, TeamFacts(t)...)
		for _, m := range r.MembershipsOf(t.Key) {
			out = append(out, MembershipFacts(m)...)
		}
	}
	return out
}

// Facts writes facts to the store, in one transaction when the store
// supports it. It returns the number of facts submitted.
func (e *Emitter) Facts(ctx context.Context, facts []graph.Fact) (int, error) {
	if len(facts) == 0 {
		return 0, nil
	}
	if b, ok := e.Store.(Batcher); ok {
		if _, err := b.AddFacts(ctx, facts); err != nil {
			return 0, fmt.Errorf("emitting %d facts: %w", len(facts), err)
		}
		return len(facts), nil
	}
	for i, f := range facts {
		if err := graph.Add(ctx, e.Store, f); err != nil {
			return i, fmt.Errorf("emitting fact %s %s: %w", graph.Compact(f.Subject), graph.Compact(f.Predicate), err)
		}
	}
	return len(facts), nil
}

// Result writes every record of one table walk and returns the number of
// facts submitted.
func (e *Emitter) Result(ctx context.Context, r teams.Result) (int, error) {
	return e.Facts(ctx, ResultFacts(r))
}

// Extraction writes every table of a page extraction, in table order, one
// transaction per table. On error it returns the facts submitted so far.
func (e *Emitter) Extraction(ctx context.Context, ex teams.Extraction) (int, error) {
	total := 0
	for _, r := range ex.Tables {
		n, err := e.Result(ctx, r)
		total += n
		if err != nil {
			return total, fmt.Errorf("table %q: %w", r.Page, err)
		}
	}
	return total, nil
}
