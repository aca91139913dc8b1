// Package storage persists ranko documents, the per-user mirror, and item
// image blobs in SQLite.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kyanaldridge/Ranko-sub002/internal/document"
	"github.com/kyanaldridge/Ranko-sub002/internal/models"
)

// Store handles all database operations.
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// DB exposes the underlying handle so collaborators (the search index) can
// share the connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rankos (
			id TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_rankos (
			user_id TEXT NOT NULL,
			ranko_id TEXT NOT NULL,
			category TEXT NOT NULL,
			PRIMARY KEY (user_id, ranko_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_rankos_user ON user_rankos(user_id)`,
		`CREATE TABLE IF NOT EXISTS blobs (
			path TEXT PRIMARY KEY,
			content_type TEXT NOT NULL,
			metadata TEXT,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Documents ---

// SaveDocument writes a whole ranko document by id, replacing any previous
// version.
func (s *Store) SaveDocument(ctx context.Context, id string, doc *document.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rankos (id, doc, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP
	`, id, data)
	return err
}

// GetDocument reads a whole ranko document by id. A missing id returns
// (nil, nil); a stored document that fails the schema decode returns the
// decode error.
func (s *Store) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM rankos WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return document.Decode(data)
}

// DeleteDocument removes a ranko document by id.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM rankos WHERE id = ?`, id)
	return err
}

// ListSummaries returns lightweight summaries of every stored ranko,
// newest-updated first. Documents that no longer decode are skipped.
func (s *Store) ListSummaries(ctx context.Context) ([]models.ListSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, doc FROM rankos ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.ListSummary
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		doc, err := document.Decode(data)
		if err != nil {
			continue
		}
		summaries = append(summaries, models.ListSummary{
			ID:        id,
			Name:      doc.Details.Name,
			Category:  doc.Category.Name,
			ItemCount: len(doc.Items),
			Updated:   doc.DateTime.Updated,
		})
	}
	return summaries, rows.Err()
}

// --- User mirror ---

// SetUserRanko records a ranko under its owner's active list, keyed to the
// list's category.
func (s *Store) SetUserRanko(ctx context.Context, userID, rankoID, category string) error {
	if userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_rankos (user_id, ranko_id, category) VALUES (?, ?, ?)
		ON CONFLICT(user_id, ranko_id) DO UPDATE SET category = excluded.category
	`, userID, rankoID, category)
	return err
}

// DeleteUserRanko removes a ranko from its owner's active list.
func (s *Store) DeleteUserRanko(ctx context.Context, userID, rankoID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM user_rankos WHERE user_id = ? AND ranko_id = ?`, userID, rankoID)
	return err
}

// GetUserRankos returns the active ranko ids of a user mapped to category.
func (s *Store) GetUserRankos(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ranko_id, category FROM user_rankos WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var id, category string
		if err := rows.Scan(&id, &category); err != nil {
			return nil, err
		}
		out[id] = category
	}
	return out, rows.Err()
}
