// Package search maintains the list search index: one record per published
// ranko, written whole on publish and patchable field-by-field afterwards.
package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kyanaldridge/Ranko-sub002/internal/document"
)

// ListRecord is the indexed shape of one published ranko.
type ListRecord struct {
	ObjectID    string `json:"objectID"`
	Name        string `json:"RankoName"`
	Description string `json:"RankoDescription"`
	Type        string `json:"RankoType"`
	Private     bool   `json:"RankoPrivacy"`
	Status      string `json:"RankoStatus"`
	Category    string `json:"RankoCategory"`
	UserID      string `json:"RankoUserID"`
	Created     string `json:"RankoCreated"`
	Updated     string `json:"RankoUpdated"`
	Likes       int    `json:"RankoLikes"`
	Comments    int    `json:"RankoComments"`
	Votes       int    `json:"RankoVotes"`
}

// RecordFromDocument builds the index record for a ranko document.
func RecordFromDocument(id string, doc *document.Document) ListRecord {
	return ListRecord{
		ObjectID:    id,
		Name:        doc.Details.Name,
		Description: doc.Details.Description,
		Type:        doc.Details.Type,
		Private:     doc.Privacy.Private,
		Status:      doc.Privacy.Status,
		Category:    doc.Category.Name,
		UserID:      doc.Details.UserID,
		Created:     doc.DateTime.Created,
		Updated:     doc.DateTime.Updated,
	}
}

// Index is a SQLite-backed search index over list records.
type Index struct {
	db *sql.DB
}

// NewIndex prepares the index tables on a shared database handle.
func NewIndex(db *sql.DB) (*Index, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS list_index (
		object_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'tier',
		private INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		category TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL DEFAULT '',
		created TEXT NOT NULL DEFAULT '',
		updated TEXT NOT NULL DEFAULT '',
		likes INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		votes INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create index table: %w", err)
	}
	return &Index{db: db}, nil
}

// Save creates or fully replaces the record for an object id.
func (ix *Index) Save(ctx context.Context, rec ListRecord) error {
	_, err := ix.db.ExecContext(ctx, `
		INSERT INTO list_index
			(object_id, name, description, type, private, status, category,
			 user_id, created, updated, likes, comments, votes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(object_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			type = excluded.type,
			private = excluded.private,
			status = excluded.status,
			category = excluded.category,
			user_id = excluded.user_id,
			created = excluded.created,
			updated = excluded.updated,
			likes = excluded.likes,
			comments = excluded.comments,
			votes = excluded.votes
	`, rec.ObjectID, rec.Name, rec.Description, rec.Type, rec.Private, rec.Status,
		rec.Category, rec.UserID, rec.Created, rec.Updated, rec.Likes, rec.Comments, rec.Votes)
	return err
}

// indexColumns whitelists the fields PartialUpdate may touch.
var indexColumns = map[string]string{
	"name":        "name",
	"description": "description",
	"type":        "type",
	"private":     "private",
	"status":      "status",
	"category":    "category",
	"updated":     "updated",
	"likes":       "likes",
	"comments":    "comments",
	"votes":       "votes",
}

// PartialUpdate patches individual fields of an existing record. Unknown
// field names are rejected so a caller cannot write arbitrary columns.
func (ix *Index) PartialUpdate(ctx context.Context, objectID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for name, value := range fields {
		col, ok := indexColumns[name]
		if !ok {
			return fmt.Errorf("unknown index field %q", name)
		}
		sets = append(sets, col+" = ?")
		args = append(args, value)
	}
	args = append(args, objectID)

	query := fmt.Sprintf("UPDATE list_index SET %s WHERE object_id = ?", strings.Join(sets, ", "))
	_, err := ix.db.ExecContext(ctx, query, args...)
	return err
}

// Delete removes a record by object id.
func (ix *Index) Delete(ctx context.Context, objectID string) error {
	_, err := ix.db.ExecContext(ctx, `DELETE FROM list_index WHERE object_id = ?`, objectID)
	return err
}

// Search returns public, active records matching the query, optionally
// narrowed by category, newest first.
func (ix *Index) Search(ctx context.Context, query, category string, limit int) ([]ListRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	where := []string{"private = 0", "status = 'active'"}
	args := []any{}
	if query != "" {
		where = append(where, "(name LIKE '%' || ? || '%' OR description LIKE '%' || ? || '%')")
		args = append(args, query, query)
	}
	if category != "" {
		where = append(where, "category = ?")
		args = append(args, category)
	}
	args = append(args, limit)

	rows, err := ix.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT object_id, name, description, type, private, status, category,
		       user_id, created, updated, likes, comments, votes
		FROM list_index WHERE %s ORDER BY updated DESC LIMIT ?
	`, strings.Join(where, " AND ")), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ListRecord
	for rows.Next() {
		var rec ListRecord
		err := rows.Scan(&rec.ObjectID, &rec.Name, &rec.Description, &rec.Type,
			&rec.Private, &rec.Status, &rec.Category, &rec.UserID,
			&rec.Created, &rec.Updated, &rec.Likes, &rec.Comments, &rec.Votes)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
