// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite index of the records produced by each run
// so the corpus can be queried without reparsing the JSON output.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

const defaultMaxResults = 20

// Store manages the catalog database.
type Store struct {
	db *sql.DB

	// newID and now are replaced in tests.
	newID func() string
	now   func() time.Time
}

// Run describes one completed pipeline run.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	InputFile string    `json:"input_file" yaml:"input_file"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Documents int       `json:"documents" yaml:"documents"`
}

// Open opens or creates the catalog at path, creating the parent directory
// and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating catalog directory: %w", types.ErrIO, err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:    db,
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			input_file TEXT NOT NULL,
			created_at TEXT NOT NULL,
			documents INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			doc_id INTEGER NOT NULL,
			url TEXT NOT NULL,
			text TEXT NOT NULL,
			language TEXT NOT NULL,
			extraction_date TEXT NOT NULL,
			PRIMARY KEY (run_id, doc_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_language ON documents(language)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save records a completed run and its documents in one transaction.
func (s *Store) Save(ctx context.Context, input string, records []types.DocumentRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	runID := s.newID()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, input_file, created_at, documents) VALUES (?, ?, ?, ?)`,
		runID, input, s.now().UTC().Format(time.RFC3339Nano), len(records),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (run_id, doc_id, url, text, language, extraction_date)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			runID, rec.ID, rec.URL, rec.Text, rec.Language, rec.ExtractionDate,
		); err != nil {
			return fmt.Errorf("inserting document %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", runID, err)
	}
	return nil
}

// Runs lists recorded runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_file, created_at, documents FROM runs ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &r.InputFile, &created, &r.Documents); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// QueryOptions filters catalog searches.
type QueryOptions struct {
	// Query matches documents whose text contains it. Case is folded with
	// Unicode rules, so "ÄNDERUNG" matches "Änderung".
	Query string

	// Language restricts results to one language code.
	Language string

	// RunID selects a run. Empty means the latest run.
	RunID string

	// MaxResults limits the result count. Zero uses the default (20).
	MaxResults int
}

// Search returns records of one run that match opts, ordered by id. An
// empty catalog yields no results.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]types.DocumentRecord, error) {
	runID := opts.RunID
	if runID == "" {
		err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&runID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("finding latest run: %w", err)
		}
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	var (
		qb   strings.Builder
		args = []any{runID}
	)
	qb.WriteString(`SELECT doc_id, url, text, language, extraction_date
		FROM documents WHERE run_id = ?`)
	if opts.Language != "" {
		qb.WriteString(` AND language = ?`)
		args = append(args, opts.Language)
	}
	qb.WriteString(` ORDER BY doc_id`)
	// SQLite's lower() only folds ASCII, so text matching happens here and
	// the limit is applied after it.
	needle := strings.ToLower(opts.Query)
	if needle == "" {
		qb.WriteString(` LIMIT ?`)
		args = append(args, maxResults)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var records []types.DocumentRecord
	for rows.Next() {
		var rec types.DocumentRecord
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Text, &rec.Language, &rec.ExtractionDate); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if needle != "" && !strings.Contains(strings.ToLower(rec.Text), needle) {
			continue
		}
		records = append(records, rec)
		if len(records) == maxResults {
			break
		}
	}
	return records, rows.Err()
}
