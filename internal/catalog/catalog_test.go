package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/journal/internal/journal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRef(title string) journal.ArticleRef {
	return journal.ArticleRef{
		Name:        "wire",
		Author:      "Ada Example",
		Title:       title,
		URL:         "https://news.example/" + title,
		Content:     "a few words of content",
		PublishedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestStore_Open_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestStore_CreateAndFetchByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := testRef("hello")
	want.ReadingTime = 4 * time.Minute
	id, err := s.Create(ctx, want)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := s.FetchByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, want.Author, got.Author)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.URL, got.URL)
	assert.Equal(t, want.Content, got.Content)
	assert.True(t, want.PublishedAt.Equal(got.PublishedAt))
	assert.Equal(t, 4*time.Minute, got.ReadingTime)
}

func TestStore_Create_DuplicateCompoundKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, testRef("same"))
	require.NoError(t, err)

	_, err = s.Create(ctx, testRef("same"))
	require.Error(t, err)
	assert.True(t, journal.IsInvalidArgument(err))
}

func TestStore_FetchByID_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.FetchByID(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, journal.IsNotFound(err))
}

func TestStore_FetchByKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := testRef("keyed")
	id, err := s.Create(ctx, want)
	require.NoError(t, err)

	got, err := s.FetchByKey(ctx, want.Author, want.Title, want.PublishedAt)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	// Same instant in a different zone still matches (stored as UTC).
	got, err = s.FetchByKey(ctx, want.Author, want.Title,
		want.PublishedAt.In(time.FixedZone("CET", 3600)))
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = s.FetchByKey(ctx, "Nobody", want.Title, want.PublishedAt)
	require.Error(t, err)
	assert.True(t, journal.IsNotFound(err))
}

func TestStore_IncrementReadCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, testRef("counted"))
	require.NoError(t, err)

	require.NoError(t, s.IncrementReadCount(ctx, id))
	require.NoError(t, s.IncrementReadCount(ctx, id))

	count, err := s.ReadCount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStore_IncrementReadCount_Missing(t *testing.T) {
	s := openTestStore(t)

	err := s.IncrementReadCount(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, journal.IsNotFound(err))
}

func TestStore_RecordRead_IsReadRecorder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Compile-time check lives in the service wiring; here we exercise it.
	var recorder journal.ReadRecorder = s

	id, err := s.Create(ctx, testRef("recorded"))
	require.NoError(t, err)

	err = recorder.RecordRead(ctx, journal.ReadEvent{ArticleID: id, Timestamp: time.Now()})
	require.NoError(t, err)

	count, err := s.ReadCount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_SoftDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, testRef("doomed"))
	require.NoError(t, err)
	require.NoError(t, s.IncrementReadCount(ctx, id))

	require.NoError(t, s.SoftDelete(ctx, id))

	// Invisible to fetches and read-count increments...
	_, err = s.FetchByID(ctx, id)
	assert.True(t, journal.IsNotFound(err))
	assert.True(t, journal.IsNotFound(s.IncrementReadCount(ctx, id)))

	// ...and deleting twice is NOT_FOUND too.
	assert.True(t, journal.IsNotFound(s.SoftDelete(ctx, id)))

	// The read count survives the delete.
	count, err := s.ReadCount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_ListAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all, "empty catalog lists as empty slice, not nil")

	id1, err := s.Create(ctx, testRef("one"))
	require.NoError(t, err)
	id2, err := s.Create(ctx, testRef("two"))
	require.NoError(t, err)
	id3, err := s.Create(ctx, testRef("three"))
	require.NoError(t, err)
	require.NoError(t, s.SoftDelete(ctx, id2))

	all, err = s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, id1, all[0].ID)
	assert.Equal(t, id3, all[1].ID)
}
