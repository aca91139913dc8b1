package storage

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Blob is one stored object: raw bytes plus content type and custom
// key/value metadata, addressed by a slash-separated path.
type Blob struct {
	Path        string            `json:"path"`
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Data        []byte            `json:"-"`
}

// PutBlob writes a blob by path, replacing any previous object.
func (s *Store) PutBlob(ctx context.Context, b Blob) error {
	meta, _ := json.Marshal(b.Metadata)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (path, content_type, metadata, data) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_type = excluded.content_type,
			metadata = excluded.metadata,
			data = excluded.data
	`, b.Path, b.ContentType, meta, b.Data)
	return err
}

// GetBlob reads a blob by path. A missing path returns (nil, nil).
func (s *Store) GetBlob(ctx context.Context, path string) (*Blob, error) {
	var b Blob
	var meta []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT path, content_type, metadata, data FROM blobs WHERE path = ?
	`, path).Scan(&b.Path, &b.ContentType, &meta, &b.Data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	json.Unmarshal(meta, &b.Metadata)
	return &b, nil
}

// DeleteBlob removes a blob by path.
func (s *Store) DeleteBlob(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE path = ?`, path)
	return err
}

// ListBlobs returns the paths stored under a prefix.
func (s *Store) ListBlobs(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path FROM blobs WHERE path LIKE ? || '%' ORDER BY path
	`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// DeleteBlobPrefix removes every blob under a prefix, e.g. all images of one
// ranko, and reports how many were deleted.
func (s *Store) DeleteBlobPrefix(ctx context.Context, prefix string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE path LIKE ? || '%'`, prefix)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
