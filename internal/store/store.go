// Package store persists finished audit reports in SQLite so past runs stay
// listable and downloadable.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrAuditNotFound = errors.New("audit not found")

// AuditSummary is the listing row: metadata only, no report payload.
type AuditSummary struct {
	ID        string    `json:"id"`
	SeedURL   string    `json:"seed_url"`
	Depth     int       `json:"depth"`
	SiteScore int       `json:"site_score"`
	Pages     int       `json:"pages"`
	Failures  int       `json:"failures"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps audit reports in a single SQLite database. The report itself is
// stored as its JSON rendering; aggregate columns exist for listing without
// decoding payloads.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) the audit database at dbPath and applies
// the schema.
func Open(dbPath string, logger logging.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("store: db path is required")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	s, err := New(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened database and applies the schema. The caller
// keeps ownership of db unless Close is called.
func New(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: db is nil")
	}
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("store: read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{
		db:     db,
		logger: logger.With(logging.Field{Key: "component", Value: "store"}),
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save persists one report. The report ID must be set; saving the same ID
// twice is an error.
func (s *Store) Save(ctx context.Context, r *model.SiteReport) error {
	if r.ID == "" {
		return errors.New("store: report has no id")
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("store: marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audits (id, seed_url, depth, site_score, pages, failures, created_at, report)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SeedURL, r.Depth, r.SiteScore, len(r.Pages), len(r.Failures),
		r.GeneratedAt.Unix(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("store: insert audit: %w", err)
	}

	s.logger.Info("audit saved",
		logging.Field{Key: "audit_id", Value: r.ID},
		logging.Field{Key: "seed", Value: r.SeedURL})
	return nil
}

// Get returns the full stored report for id.
func (s *Store) Get(ctx context.Context, id string) (*model.SiteReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT report FROM audits WHERE id = ? LIMIT 1`, id)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}

	var r model.SiteReport
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("store: decode audit %s: %w", id, err)
	}
	return &r, nil
}

// List returns audit summaries, newest first, capped at limit (<=0 means 50).
func (s *Store) List(ctx context.Context, limit int) ([]AuditSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed_url, depth, site_score, pages, failures, created_at
         FROM audits
         ORDER BY created_at DESC
         LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditSummary
	for rows.Next() {
		var a AuditSummary
		var created int64
		if err := rows.Scan(&a.ID, &a.SeedURL, &a.Depth, &a.SiteScore, &a.Pages, &a.Failures, &created); err != nil {
			return nil, err
		}
		a.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes a stored audit.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAuditNotFound
	}
	return nil
}
