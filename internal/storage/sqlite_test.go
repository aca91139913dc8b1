package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyanaldridge/Ranko-sub002/internal/board"
	"github.com/kyanaldridge/Ranko-sub002/internal/document"
	"github.com/kyanaldridge/Ranko-sub002/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDoc(name string) *document.Document {
	b := board.New()
	b.Rows[0] = []models.Item{{ID: "i1", Name: "one", Rank: 1.0001}}
	meta := document.Meta{
		Details:  models.ListDetails{Name: name, UserID: "u1"},
		Category: models.ListCategory{Name: "Music"},
	}
	return document.Serialize(b, meta, time.Now())
}

func TestDocumentRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, "r1", testDoc("Best Albums")))

	doc, err := store.GetDocument(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Best Albums", doc.Details.Name)
	assert.Len(t, doc.Items, 1)
	assert.Equal(t, 1.0001, doc.Items["i1"].ItemRank)
}

func TestGetDocumentMissing(t *testing.T) {
	store := testStore(t)

	doc, err := store.GetDocument(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestSaveDocumentReplaces(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, "r1", testDoc("first")))
	require.NoError(t, store.SaveDocument(ctx, "r1", testDoc("second")))

	doc, err := store.GetDocument(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "second", doc.Details.Name)
}

func TestDeleteDocument(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, "r1", testDoc("gone")))
	require.NoError(t, store.DeleteDocument(ctx, "r1"))

	doc, err := store.GetDocument(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestListSummaries(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, "r1", testDoc("first")))
	require.NoError(t, store.SaveDocument(ctx, "r2", testDoc("second")))

	summaries, err := store.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 1, summaries[0].ItemCount)
	assert.Equal(t, "Music", summaries[0].Category)
}

func TestUserMirror(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetUserRanko(ctx, "u1", "r1", "Music"))
	require.NoError(t, store.SetUserRanko(ctx, "u1", "r2", "Games"))
	require.NoError(t, store.SetUserRanko(ctx, "u1", "r1", "Movies")) // recategorize

	rankos, err := store.GetUserRankos(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"r1": "Movies", "r2": "Games"}, rankos)

	require.NoError(t, store.DeleteUserRanko(ctx, "u1", "r1"))
	rankos, err = store.GetUserRankos(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"r2": "Games"}, rankos)

	// anonymous lists are not mirrored
	require.NoError(t, store.SetUserRanko(ctx, "", "r9", "Music"))
}

func TestBlobRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	blob := Blob{
		Path:        "rankoPersonalImages/r1/i1.jpg",
		ContentType: "image/jpeg",
		Metadata:    map[string]string{"ranko_id": "r1"},
		Data:        []byte("jpegbytes"),
	}
	require.NoError(t, store.PutBlob(ctx, blob))

	got, err := store.GetBlob(ctx, blob.Path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "image/jpeg", got.ContentType)
	assert.Equal(t, []byte("jpegbytes"), got.Data)
	assert.Equal(t, "r1", got.Metadata["ranko_id"])

	missing, err := store.GetBlob(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBlobPrefixOps(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, path := range []string{
		"rankoPersonalImages/r1/a.jpg",
		"rankoPersonalImages/r1/b.jpg",
		"rankoPersonalImages/r2/c.jpg",
	} {
		require.NoError(t, store.PutBlob(ctx, Blob{Path: path, ContentType: "image/jpeg", Data: []byte{1}}))
	}

	paths, err := store.ListBlobs(ctx, "rankoPersonalImages/r1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"rankoPersonalImages/r1/a.jpg", "rankoPersonalImages/r1/b.jpg"}, paths)

	n, err := store.DeleteBlobPrefix(ctx, "rankoPersonalImages/r1/")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	paths, err = store.ListBlobs(ctx, "rankoPersonalImages/")
	require.NoError(t, err)
	assert.Equal(t, []string{"rankoPersonalImages/r2/c.jpg"}, paths)
}
