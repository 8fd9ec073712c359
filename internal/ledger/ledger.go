// Package ledger records per-summary cost accounting in a local sqlite
// database. Every successful summarization appends one row with token
// counts and the computed cost, which the cost_report tool aggregates.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS summaries (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	note_path     TEXT NOT NULL,
	summary_path  TEXT NOT NULL,
	model         TEXT NOT NULL,
	input_tokens  INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	cost          REAL NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summaries_created ON summaries(created_at);
`

// Entry is one recorded summarization.
type Entry struct {
	ID           int64
	NotePath     string
	SummaryPath  string
	Model        string
	InputTokens  int
	OutputTokens int
	Cost         float64
	CreatedAt    time.Time
}

// Ledger wraps the sqlite connection. modernc sqlite is single-writer, so
// the pool is pinned to one connection.
type Ledger struct {
	db *sql.DB
}

// Open creates or opens the ledger database at path and applies the schema.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: init schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Record appends one summarization entry.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO summaries (note_path, summary_path, model, input_tokens, output_tokens, cost, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.NotePath, e.SummaryPath, e.Model, e.InputTokens, e.OutputTokens, e.Cost,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("ledger: record: %w", err)
	}
	return nil
}

// Recent returns the newest entries, capped at limit.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, note_path, summary_path, model, input_tokens, output_tokens, cost, created_at
		FROM summaries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.NotePath, &e.SummaryPath, &e.Model,
			&e.InputTokens, &e.OutputTokens, &e.Cost, &created); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Total returns the count of recorded summaries and the accumulated cost.
func (l *Ledger) Total(ctx context.Context) (count int64, cost float64, err error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(cost), 0) FROM summaries`)
	if err := row.Scan(&count, &cost); err != nil {
		return 0, 0, fmt.Errorf("ledger: total: %w", err)
	}
	return count, cost, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}
