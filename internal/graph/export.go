// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one fact in compact prefix form.
type ExportEntry struct {
	Subject   string `json:"subject" yaml:"subject"`
	Predicate string `json:"predicate" yaml:"predicate"`
	Object    string `json:"object" yaml:"object"`
	Literal   bool   `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// ExportYAML writes matching facts to <dir>/export.yaml and returns the path.
func ExportYAML(ctx context.Context, r Reader, dir string, f Filter) (string, error) {
	entries, err := exportEntries(ctx, r, f)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(dir, "export.yaml", data)
}

// ExportJSON writes matching facts to <dir>/export.json and returns the path.
func ExportJSON(ctx context.Context, r Reader, dir string, f Filter) (string, error) {
	entries, err := exportEntries(ctx, r, f)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(dir, "export.json", data)
}

func writeExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func exportEntries(ctx context.Context, r Reader, f Filter) ([]ExportEntry, error) {
	facts, err := r.Facts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	SortFacts(facts)

	entries := make([]ExportEntry, len(facts))
	for i, fact := range facts {
		entries[i] = ExportEntry{
			Subject:   Compact(fact.Subject),
			Predicate: Compact(fact.Predicate),
			Object:    fact.Object,
			Literal:   fact.Literal,
		}
		if !fact.Literal {
			entries[i].Object = Compact(fact.Object)
		}
	}
	return entries, nil
}
