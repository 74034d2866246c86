// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph stores typed facts (type, literal and edge statements)
// with set semantics, and exports them for downstream querying.
package graph

import (
	"context"
	"slices"
	"sort"
	"sync"
)

// Fact is one statement in the graph. Object holds an IRI unless Literal
// is set, in which case it holds a plain string value.
type Fact struct {
	Subject   string `json:"subject" yaml:"subject"`
	Predicate string `json:"predicate" yaml:"predicate"`
	Object    string `json:"object" yaml:"object"`
	Literal   bool   `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// TypeFact returns the statement "entity rdf:type class".
func TypeFact(entity, class string) Fact {
	return Fact{Subject: entity, Predicate: RDFType, Object: class}
}

// LiteralFact returns a statement with a literal object.
func LiteralFact(entity, property, value string) Fact {
	return Fact{Subject: entity, Predicate: property, Object: value, Literal: true}
}

// EdgeFact returns a statement linking two entities.
func EdgeFact(subject, property, object string) Fact {
	return Fact{Subject: subject, Predicate: property, Object: object}
}

// Store is the write side of a fact graph. Implementations have set
// semantics: adding a fact that already exists is a no-op.
type Store interface {
	AddType(ctx context.Context, entity, class string) error
	AddLiteral(ctx context.Context, entity, property, value string) error
	AddEdge(ctx context.Context, subject, property, object string) error
}

// Reader lists stored facts.
type Reader interface {
	Facts(ctx context.Context, f Filter) ([]Fact, error)
}

// Filter restricts a fact listing. Empty fields match anything.
type Filter struct {
	Subject   string
	Predicate string
	Object    string

	// ExcludePredicates drops facts with any of these predicates.
	ExcludePredicates []string

	// Limit caps the number of facts returned. Zero means no limit.
	Limit int
}

// Match reports whether fact satisfies the filter's field constraints.
func (f Filter) Match(fact Fact) bool {
	return (f.Subject == "" || f.Subject == fact.Subject) &&
		(f.Predicate == "" || f.Predicate == fact.Predicate) &&
		(f.Object == "" || f.Object == fact.Object) &&
		!slices.Contains(f.ExcludePredicates, fact.Predicate)
}

// Add writes fact to s through the matching Store operation.
func Add(ctx context.Context, s Store, fact Fact) error {
	switch {
	case fact.Literal:
		return s.AddLiteral(ctx, fact.Subject, fact.Predicate, fact.Object)
	case fact.Predicate == RDFType:
		return s.AddType(ctx, fact.Subject, fact.Object)
	default:
		return s.AddEdge(ctx, fact.Subject, fact.Predicate, fact.Object)
	}
}

// SortFacts orders facts by subject, predicate, object.
func SortFacts(facts []Fact) {
	sort.Slice(facts, func(i, j int) bool {
		a, b := facts[i], facts[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Predicate != b.Predicate {
			return a.Predicate < b.Predicate
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return !a.Literal && b.Literal
	})
}

// Memory is an in-process Store that keeps facts in insertion order.
type Memory struct {
	mu    sync.Mutex
	seen  map[Fact]struct{}
	facts []Fact
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{seen: make(map[Fact]struct{})}
}

func (m *Memory) add(f Fact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seen[f]; ok {
		return
	}
	m.seen[f] = struct{}{}
	m.facts = append(m.facts, f)
}

// AddType implements Store.
func (m *Memory) AddType(_ context.Context, entity, class string) error {
	m.add(TypeFact(entity, class))
	return nil
}

// AddLiteral implements Store.
func (m *Memory) AddLiteral(_ context.Context, entity, property, value string) error {
	m.add(LiteralFact(entity, property, value))
	return nil
}

// AddEdge implements Store.
func (m *Memory) AddEdge(_ context.Context, subject, property, object string) error {
	m.add(EdgeFact(subject, property, object))
	return nil
}

// Facts returns matching facts in insertion order.
func (m *Memory) Facts(_ context.Context, f Filter) ([]Fact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Fact
	for _, fact := range m.facts {
		if !f.Match(fact) {
			continue
		}
		out = append(out, fact)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

// Len returns the number of distinct facts.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.facts)
}

// Has reports whether the exact fact is stored.
func (m *Memory) Has(f Fact) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.seen[f]
	return ok
}
