// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest runs a full ingestion: fetch the configured pages in
// parallel, then parse and emit them one at a time in source order so
// that entity identity and team numbering do not depend on fetch timing.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hsr-graph/internal/catalog"
	"github.com/pdiddy/hsr-graph/internal/document"
	"github.com/pdiddy/hsr-graph/internal/emit"
	"github.com/pdiddy/hsr-graph/internal/fetch"
	"github.com/pdiddy/hsr-graph/internal/graph"
	"github.com/pdiddy/hsr-graph/internal/logging"
	"github.com/pdiddy/hsr-graph/internal/ontology"
	"github.com/pdiddy/hsr-graph/internal/registry"
	"github.com/pdiddy/hsr-graph/internal/teams"
	"github.com/pdiddy/hsr-graph/pkg/types"
)

// Fetcher downloads a batch of pages.
type Fetcher interface {
	GetAll(ctx context.Context, urls []string, parallelism int) []fetch.Page
}

// SourceRecorder is implemented by stores that keep a ledger of ingested
// pages.
type SourceRecorder interface {
	RecordSource(ctx context.Context, rec graph.SourceRecord) error
}

// Summary holds counts from an ingestion run.
type Summary struct {
	Ingested    int
	Failed      int
	Teams       int
	Memberships int
	Entities    int
	Facts       int
	Warnings    int
}

// Total returns the number of pages processed.
func (s Summary) Total() int {
	return s.Ingested + s.Failed
}

// HasFailures reports whether any page failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// PageResult is what one page contributed.
type PageResult struct {
	Source      types.Source
	Teams       int
	Memberships int
	Entities    int
	Facts       int
	Warnings    []error
}

// Pipeline wires fetcher, parsers and emitter around one shared registry.
type Pipeline struct {
	Fetcher  Fetcher
	Store    graph.Store
	Registry *registry.Registry
	Locator  teams.Locator

	// Parallelism bounds concurrent fetches.
	Parallelism int

	// Ontology writes the schema facts before any page.
	Ontology bool

	Logger *slog.Logger
	Out    io.Writer

	// Now stamps source records; tests pin it.
	Now func() time.Time
}

// New builds a pipeline from configuration. Progress lines go to w,
// warnings to logger.
func New(cfg types.IngestConfig, store graph.Store, fetcher Fetcher, logger *slog.Logger, w io.Writer) *Pipeline {
	return &Pipeline{
		Fetcher:     fetcher,
		Store:       store,
		Registry:    registry.New(),
		Locator:     teams.NewLocator(cfg.Teams),
		Parallelism: cfg.Parallelism,
		Ontology:    cfg.Ontology,
		Logger:      logger,
		Out:         w,
		Now:         time.Now,
	}
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}
	return p.Out
}

// Run ingests sources and returns a summary. Pages that fail to fetch or
// parse are counted and reported; the run continues. An error is returned
// only for invalid input or when the ontology cannot be written.
func (p *Pipeline) Run(ctx context.Context, sources []types.Source) (Summary, error) {
	var summary Summary
	for _, src := range sources {
		if !src.Kind.Valid() {
			return summary, fmt.Errorf("source %s: unknown kind %q", src.URL, src.Kind)
		}
		if src.URL == "" && src.Path == "" {
			return summary, fmt.Errorf("source of kind %s has neither url nor path", src.Kind)
		}
	}

	em := emit.New(p.Store)
	if p.Ontology {
		n, err := em.Facts(ctx, ontology.Facts())
		if err != nil {
			return summary, fmt.Errorf("writing ontology: %w", err)
		}
		summary.Facts += n
		fmt.Fprintf(p.out(), "ontology: %d facts\n", n)
	}

	bodies := p.load(ctx, sources)

	for i, src := range sources {
		name := sourceName(src)
		if err := bodies[i].Err; err != nil {
			summary.Failed++
			fmt.Fprintf(p.out(), "failed:  %s (%v)\n", name, err)
			logging.Error(p.Logger, "page fetch failed", err,
				logging.FieldURL, name, logging.FieldKind, string(src.Kind), "retryable", fetch.IsRetryable(err))
			continue
		}

		res, err := p.Page(ctx, src, bodies[i].Body)
		if err != nil {
			summary.Failed++
			fmt.Fprintf(p.out(), "failed:  %s (%v)\n", name, err)
			logging.Error(p.Logger, "page ingest failed", err, logging.FieldURL, name, logging.FieldKind, string(src.Kind))
			continue
		}

		summary.Ingested++
		summary.Teams += res.Teams
		summary.Memberships += res.Memberships
		summary.Entities += res.Entities
		summary.Facts += res.Facts
		summary.Warnings += len(res.Warnings)

		switch src.Kind {
		case types.SourceTeams:
			fmt.Fprintf(p.out(), "ingested: %s (%d teams, %d memberships)\n", name, res.Teams, res.Memberships)
		default:
			fmt.Fprintf(p.out(), "ingested: %s (%d %s)\n", name, res.Entities, src.Kind)
		}
	}

	fmt.Fprintf(p.out(), "\nIngest summary: %d ingested, %d failed (total: %d); %d teams, %d memberships, %d entities, %d facts, %d warnings\n",
		summary.Ingested, summary.Failed, summary.Total(),
		summary.Teams, summary.Memberships, summary.Entities, summary.Facts, summary.Warnings)
	return summary, nil
}

// load reads local sources from disk and fetches the rest in parallel.
// The result is indexed like sources.
func (p *Pipeline) load(ctx context.Context, sources []types.Source) []fetch.Page {
	pages := make([]fetch.Page, len(sources))

	var (
		urls []string
		idx  []int
	)
	for i, src := range sources {
		if src.Path != "" {
			body, err := os.ReadFile(src.Path)
			if err != nil {
				err = fmt.Errorf("reading %s: %w", src.Path, err)
			}
			pages[i] = fetch.Page{URL: src.URL, Body: body, Err: err}
			continue
		}
		urls = append(urls, src.URL)
		idx = append(idx, i)
	}
	if len(urls) == 0 {
		return pages
	}
	if p.Fetcher == nil {
		for _, i := range idx {
			pages[i] = fetch.Page{URL: sources[i].URL, Err: fmt.Errorf("no fetcher configured for %s", sources[i].URL)}
		}
		return pages
	}

	for j, page := range p.Fetcher.GetAll(ctx, urls, p.Parallelism) {
		pages[idx[j]] = page
	}
	return pages
}

// Page parses one page body with the extractor for its kind and emits
// the resulting facts. Section warnings are logged and returned, not
// treated as failures.
func (p *Pipeline) Page(ctx context.Context, src types.Source, body []byte) (PageResult, error) {
	res := PageResult{Source: src}
	root, err := document.Parse(bytes.NewReader(body))
	if err != nil {
		return res, err
	}
	em := emit.New(p.Store)

	switch src.Kind {
	case types.SourceTeams:
		ex := p.Locator.Extract(root, src.URL, p.Registry)
		for _, w := range ex.Warnings {
			logging.Warn(p.Logger, "team section skipped", logging.FieldURL, sourceName(src), logging.FieldError, w)
		}
		res.Warnings = ex.Warnings
		res.Teams = ex.TeamCount()
		res.Memberships = ex.MembershipCount()
		for _, r := range ex.Tables {
			logging.Debug(p.Logger, "table walked",
				logging.FieldURL, sourceName(src),
				logging.FieldSection, r.Page,
				"shape", r.Shape.String(),
				logging.FieldTeams, len(r.Teams),
				"dropped_rows", r.Dropped,
				"empty_cells", r.EmptyCells)
		}
		n, err := em.Extraction(ctx, ex)
		if err != nil {
			return res, err
		}
		res.Facts = n
	default:
		parse, err := catalogParser(src.Kind)
		if err != nil {
			return res, err
		}
		cr, err := parse(root, src.URL, p.Registry)
		if err != nil {
			return res, err
		}
		res.Entities = cr.Entities
		n, err := em.Facts(ctx, cr.Facts)
		if err != nil {
			return res, err
		}
		res.Facts = n
	}

	if rec, ok := p.Store.(SourceRecorder); ok && src.URL != "" {
		now := time.Now
		if p.Now != nil {
			now = p.Now
		}
		if err := rec.RecordSource(ctx, graph.SourceRecord{
			URL:        src.URL,
			Kind:       string(src.Kind),
			IngestedAt: now(),
			Facts:      res.Facts,
		}); err != nil {
			return res, err
		}
	}
	return res, nil
}

func catalogParser(kind types.SourceKind) (catalog.Parser, error) {
	switch kind {
	case types.SourceCharacters:
		return catalog.Characters, nil
	case types.SourceLightCones:
		return catalog.LightCones, nil
	case types.SourceRelics:
		return catalog.Relics, nil
	}
	return nil, fmt.Errorf("no catalog parser for kind %q", kind)
}

func sourceName(src types.Source) string {
	if src.URL != "" {
		return src.URL
	}
	return src.Path
}

// LoadSources reads a YAML sources file.
func LoadSources(path string) ([]types.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}
	var f types.SourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sources file %s: %w", path, err)
	}
	for i, src := range f.Sources {
		if !src.Kind.Valid() {
			return nil, fmt.Errorf("sources file %s: entry %d: unknown kind %q", path, i+1, src.Kind)
		}
	}
	return f.Sources, nil
}
