// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry maps normalized keys to canonical entity handles.
// A Registry is shared by every ingester of one run so that a team
// member and the character row it refers to resolve to the same entity.
package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/hsr-graph/internal/normalize"
)

// ErrEmptyIdentity is returned when display text normalizes to an empty
// key. Callers skip the affected cell or row.
var ErrEmptyIdentity = errors.New("empty identity")

// Entity is the canonical handle for one real-world thing.
type Entity struct {
	// Key is the normalized identifier, unique within a registry.
	Key string `json:"key" yaml:"key"`

	// Label is the first non-empty display text seen for Key.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// SourceURL is the first non-empty source seen for Key.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// Resolution is the outcome of one Resolve call. Entity holds the stored
// attributes; the flags report which of them this call recorded first.
type Resolution struct {
	Entity

	// Created is true when the key was unseen before this call.
	Created bool

	// LabelSet is true when this call recorded the entity's label.
	LabelSet bool

	// SourceSet is true when this call recorded the entity's source URL.
	SourceSet bool
}

// Registry holds the key → entity mapping. It is append-only and safe
// for concurrent use; one mutex serializes every resolution.
type Registry struct {
	mu       sync.Mutex
	entities map[string]*Entity
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// Resolve returns the entity for display, creating it on first sight.
// Label and source are first-write-wins: a known entity only gains a
// label or source when it has none yet.
func (r *Registry) Resolve(display, sourceURL string) (Resolution, error) {
	key := normalize.Key(display)
	if key == "" {
		return Resolution{}, ErrEmptyIdentity
	}
	label := strings.TrimSpace(display)
	sourceURL = strings.TrimSpace(sourceURL)

	r.mu.Lock()
	defer r.mu.Unlock()

	var res Resolution
	e, ok := r.entities[key]
	if !ok {
		e = &Entity{Key: key}
		r.entities[key] = e
		res.Created = true
	}
	if e.Label == "" && label != "" {
		e.Label = label
		res.LabelSet = true
	}
	if e.SourceURL == "" && sourceURL != "" {
		e.SourceURL = sourceURL
		res.SourceSet = true
	}
	res.Entity = *e
	return res, nil
}

// Lookup returns the entity stored under key.
func (r *Registry) Lookup(key string) (Entity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entities[key]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Len returns the number of known entities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entities)
}

// Entities returns a snapshot of all entities sorted by key.
func (r *Registry) Entities() []Entity {
	r.mu.Lock()
	out := make([]Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, *e)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
