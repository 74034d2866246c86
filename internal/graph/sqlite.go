// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hsr-graph/pkg/types"
)

const dbFile = "hsr.db"

// SQLite is a Store backed by a SQLite database at <dir>/hsr.db. A
// UNIQUE constraint over the full statement gives it set semantics.
type SQLite struct {
	db  *sql.DB
	dir string
}

// OpenSQLite opens or creates the fact database under cfg.Dir and
// creates the schema if it does not exist.
func OpenSQLite(cfg types.GraphConfig) (*SQLite, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("graph directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating graph directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer at a time; the emitter is sequential anyway.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, dir: cfg.Dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *SQLite) Dir() string {
	return s.dir
}

func (s *SQLite) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS facts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			subject TEXT NOT NULL,
			predicate TEXT NOT NULL,
			object TEXT NOT NULL,
			literal INTEGER NOT NULL DEFAULT 0,
			UNIQUE(subject, predicate, object, literal)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_facts_predicate ON facts(predicate)`,
		`CREATE INDEX IF NOT EXISTS idx_facts_object ON facts(object)`,
		`CREATE TABLE IF NOT EXISTS sources (
			url TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			ingested_at TEXT NOT NULL,
			facts INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

const insertFact = `INSERT OR IGNORE INTO facts (subject, predicate, object, literal) VALUES (?, ?, ?, ?)`

func (s *SQLite) insert(ctx context.Context, f Fact) error {
	if _, err := s.db.ExecContext(ctx, insertFact, f.Subject, f.Predicate, f.Object, f.Literal); err != nil {
		return fmt.Errorf("inserting fact %s %s: %w", Compact(f.Subject), Compact(f.Predicate), err)
	}
	return nil
}

// AddType implements Store.
func (s *SQLite) AddType(ctx context.Context, entity, class string) error {
	return s.insert(ctx, TypeFact(entity, class))
}

// AddLiteral implements Store.
func (s *SQLite) AddLiteral(ctx context.Context, entity, property, value string) error {
	return s.insert(ctx, LiteralFact(entity, property, value))
}

// AddEdge implements Store.
func (s *SQLite) AddEdge(ctx context.Context, subject, property, object string) error {
	return s.insert(ctx, EdgeFact(subject, property, object))
}

// AddFacts writes facts in a single transaction and returns how many
// were new.
func (s *SQLite) AddFacts(ctx context.Context, facts []Fact) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertFact)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, f := range facts {
		res, err := stmt.ExecContext(ctx, f.Subject, f.Predicate, f.Object, f.Literal)
		if err != nil {
			return 0, fmt.Errorf("inserting fact %s %s: %w", Compact(f.Subject), Compact(f.Predicate), err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing facts: %w", err)
	}
	return added, nil
}

// Facts lists matching facts in insertion order.
func (s *SQLite) Facts(ctx context.Context, f Filter) ([]Fact, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT subject, predicate, object, literal FROM facts WHERE 1=1`)
	if f.Subject != "" {
		qb.WriteString(` AND subject = ?`)
		args = append(args, f.Subject)
	}
	if f.Predicate != "" {
		qb.WriteString(` AND predicate = ?`)
		args = append(args, f.Predicate)
	}
	if f.Object != "" {
		qb.WriteString(` AND object = ?`)
		args = append(args, f.Object)
	}
	if len(f.ExcludePredicates) > 0 {
		qb.WriteString(` AND predicate NOT IN (?` + strings.Repeat(`, ?`, len(f.ExcludePredicates)-1) + `)`)
		for _, p := range f.ExcludePredicates {
			args = append(args, p)
		}
	}
	qb.WriteString(` ORDER BY rowid`)
	if f.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying facts: %w", err)
	}
	defer rows.Close()

	var out []Fact
	for rows.Next() {
		var fact Fact
		if err := rows.Scan(&fact.Subject, &fact.Predicate, &fact.Object, &fact.Literal); err != nil {
			return nil, fmt.Errorf("scanning fact: %w", err)
		}
		out = append(out, fact)
	}
	return out, rows.Err()
}

// Count returns the number of stored facts.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM facts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting facts: %w", err)
	}
	return n, nil
}

// SourceRecord describes one ingested page.
type SourceRecord struct {
	URL        string    `json:"url" yaml:"url"`
	Kind       string    `json:"kind" yaml:"kind"`
	IngestedAt time.Time `json:"ingested_at" yaml:"ingested_at"`
	Facts      int       `json:"facts" yaml:"facts"`
}

// RecordSource upserts the ingestion record for a page.
func (s *SQLite) RecordSource(ctx context.Context, rec SourceRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sources (url, kind, ingested_at, facts) VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			kind=excluded.kind, ingested_at=excluded.ingested_at, facts=excluded.facts`,
		rec.URL, rec.Kind, rec.IngestedAt.UTC().Format(time.RFC3339Nano), rec.Facts,
	)
	if err != nil {
		return fmt.Errorf("recording source %s: %w", rec.URL, err)
	}
	return nil
}

// Sources lists ingestion records ordered by URL.
func (s *SQLite) Sources(ctx context.Context) ([]SourceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url, kind, ingested_at, facts FROM sources ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var out []SourceRecord
	for rows.Next() {
		var (
			rec SourceRecord
			at  string
		)
		if err := rows.Scan(&rec.URL, &rec.Kind, &at, &rec.Facts); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		rec.IngestedAt, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, rec)
	}
	return out, rows.Err()
}
