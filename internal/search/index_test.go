package search

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyanaldridge/Ranko-sub002/internal/board"
	"github.com/kyanaldridge/Ranko-sub002/internal/document"
	"github.com/kyanaldridge/Ranko-sub002/internal/models"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ix, err := NewIndex(db)
	require.NoError(t, err)
	return ix
}

func record(id, name, category string) ListRecord {
	return ListRecord{
		ObjectID: id,
		Name:     name,
		Type:     "tier",
		Status:   "active",
		Category: category,
		Updated:  id, // distinct, ordered stamps
	}
}

func TestSaveAndSearch(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.Save(ctx, record("1", "Best Albums", "Music")))
	require.NoError(t, ix.Save(ctx, record("2", "Worst Albums", "Music")))
	require.NoError(t, ix.Save(ctx, record("3", "Best Games", "Games")))

	hits, err := ix.Search(ctx, "Albums", "", 20)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = ix.Search(ctx, "Best", "Games", 20)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "3", hits[0].ObjectID)

	// empty query lists everything, newest first
	hits, err = ix.Search(ctx, "", "", 20)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "3", hits[0].ObjectID)
}

func TestSearchExcludesPrivateAndInactive(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	pub := record("1", "visible", "Music")
	require.NoError(t, ix.Save(ctx, pub))
	priv := record("2", "hidden", "Music")
	priv.Private = true
	require.NoError(t, ix.Save(ctx, priv))
	archived := record("3", "archived", "Music")
	archived.Status = "archived"
	require.NoError(t, ix.Save(ctx, archived))

	hits, err := ix.Search(ctx, "", "", 20)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "1", hits[0].ObjectID)
}

func TestSaveReplacesWholeRecord(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.Save(ctx, record("1", "before", "Music")))
	require.NoError(t, ix.Save(ctx, record("1", "after", "Games")))

	hits, err := ix.Search(ctx, "after", "", 20)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Games", hits[0].Category)
}

func TestPartialUpdate(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.Save(ctx, record("1", "original", "Music")))
	require.NoError(t, ix.PartialUpdate(ctx, "1", map[string]any{
		"name":  "patched",
		"likes": 5,
	}))

	hits, err := ix.Search(ctx, "patched", "", 20)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 5, hits[0].Likes)
	assert.Equal(t, "Music", hits[0].Category)
}

func TestPartialUpdateRejectsUnknownField(t *testing.T) {
	ix := testIndex(t)
	err := ix.PartialUpdate(context.Background(), "1", map[string]any{"object_id": "evil"})
	assert.Error(t, err)

	// empty patch is a no-op
	assert.NoError(t, ix.PartialUpdate(context.Background(), "1", nil))
}

func TestDelete(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.Save(ctx, record("1", "gone", "Music")))
	require.NoError(t, ix.Delete(ctx, "1"))

	hits, err := ix.Search(ctx, "gone", "", 20)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRecordFromDocument(t *testing.T) {
	meta := document.Meta{
		Details:  models.ListDetails{Name: "Best Albums", Description: "ever", Type: "tier", UserID: "u1"},
		Privacy:  models.ListPrivacy{Private: true, Status: "active"},
		Category: models.ListCategory{Name: "Music"},
	}
	doc := document.Serialize(board.New(), meta, time.Now())

	rec := RecordFromDocument("r1", doc)
	assert.Equal(t, "r1", rec.ObjectID)
	assert.Equal(t, "Best Albums", rec.Name)
	assert.True(t, rec.Private)
	assert.Equal(t, "Music", rec.Category)
	assert.Equal(t, doc.DateTime.Created, rec.Created)
}
