// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists each run's analyses to a SQLite database so
// past digests stay queryable after the markdown log grows. The
// pipeline treats it as write-only; failures here never fail a run.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const dbFile = "digest.db"

// Store manages the analysis archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at stateDir/digest.db, creating the
// schema if it does not exist.
func Open(stateDir string) (*Store, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_date TEXT NOT NULL,
			discovered INTEGER NOT NULL,
			analyzed INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS analyses (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			paper_id TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			categories TEXT,
			published TEXT,
			entry_url TEXT,
			analysis TEXT,
			failed INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_run_id ON analyses(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_paper_id ON analyses(paper_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run and all its analyses in a single transaction.
func (s *Store) Record(ctx context.Context, runDate time.Time, discovered int, analyses []types.Analysis) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	failed := 0
	for _, a := range analyses {
		if a.Failed {
			failed++
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_date, discovered, analyzed, failed) VALUES (?, ?, ?, ?)`,
		runDate.UTC().Format(time.RFC3339), discovered, len(analyses)-failed, failed,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO analyses (run_id, paper_id, title, authors, categories, published, entry_url, analysis, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range analyses {
		authorsJSON, _ := json.Marshal(a.Paper.Authors)
		categoriesJSON, _ := json.Marshal(a.Paper.Categories)
		_, err := stmt.ExecContext(ctx,
			runID, a.Paper.ID, a.Paper.Title,
			string(authorsJSON), string(categoriesJSON),
			a.Paper.Published.UTC().Format(time.RFC3339),
			a.Paper.EntryURL, a.Text, boolToInt(a.Failed),
		)
		if err != nil {
			return fmt.Errorf("inserting analysis %s: %w", a.Paper.ID, err)
		}
	}

	return tx.Commit()
}

// Totals returns the number of recorded runs and analyses.
func (s *Store) Totals(ctx context.Context) (runs, analyses int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs`).Scan(&runs); err != nil {
		return 0, 0, fmt.Errorf("counting runs: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM analyses`).Scan(&analyses); err != nil {
		return 0, 0, fmt.Errorf("counting analyses: %w", err)
	}
	return runs, analyses, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
