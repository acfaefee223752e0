package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/journal/internal/journal"
	"github.com/roach88/journal/internal/testutil"
)

func fixtureRef(id int64, title string) journal.ArticleRef {
	return journal.ArticleRef{
		ID:          id,
		Name:        "wire",
		Author:      "Ada Example",
		Title:       title,
		URL:         "https://news.example/" + title,
		Content:     "Words to read in the journal.",
		PublishedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func newTestSession(refs ...journal.ArticleRef) (*Session, *testutil.RecordingCatalog) {
	cat := testutil.NewRecordingCatalog(refs...)
	return NewSession(cat), cat
}

func appendAll(t *testing.T, s *Session, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		res := s.AppendByID(context.Background(), id)
		require.Equal(t, StatusSuccess, res.Status, "append id %d: %s", id, res.Message)
	}
}

func TestSession_AppendByID(t *testing.T) {
	s, _ := newTestSession(fixtureRef(1, "one"), fixtureRef(2, "two"))

	res := s.AppendByID(context.Background(), 1)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 1, res.ArticleNumber)

	res = s.AppendByID(context.Background(), 2)
	assert.Equal(t, 2, res.ArticleNumber)
}

func TestSession_AppendByID_Errors(t *testing.T) {
	s, _ := newTestSession(fixtureRef(1, "one"))

	res := s.AppendByID(context.Background(), 99)
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "NOT_FOUND", res.ErrorKind)

	res = s.AppendByID(context.Background(), 0)
	assert.Equal(t, "INVALID_ARGUMENT", res.ErrorKind)
}

func TestSession_AppendByKey(t *testing.T) {
	ref := fixtureRef(1, "keyed")
	s, _ := newTestSession(ref)

	res := s.AppendByKey(context.Background(), ref.Author, ref.Title, ref.PublishedAt)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 1, res.ArticleNumber)

	res = s.AppendByKey(context.Background(), "", ref.Title, ref.PublishedAt)
	assert.Equal(t, "INVALID_ARGUMENT", res.ErrorKind)

	res = s.AppendByKey(context.Background(), "Nobody", "Nothing", ref.PublishedAt)
	assert.Equal(t, "NOT_FOUND", res.ErrorKind)
}

func TestSession_RemoveByArticleNumber(t *testing.T) {
	s, _ := newTestSession(fixtureRef(1, "one"), fixtureRef(2, "two"))
	appendAll(t, s, 1, 2)

	res := s.RemoveByArticleNumber(1)
	assert.Equal(t, StatusSuccess, res.Status)

	res = s.RemoveByArticleNumber(5)
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "OUT_OF_RANGE", res.ErrorKind)
}

func TestSession_RemoveByID_And_Key(t *testing.T) {
	ref := fixtureRef(1, "one")
	s, _ := newTestSession(ref, fixtureRef(2, "two"))
	appendAll(t, s, 1, 2)

	assert.Equal(t, "INVALID_ARGUMENT", s.RemoveByID(-3).ErrorKind)
	assert.Equal(t, StatusSuccess, s.RemoveByID(2).Status)
	assert.Equal(t, "NOT_FOUND", s.RemoveByID(2).ErrorKind)

	assert.Equal(t, "INVALID_ARGUMENT", s.RemoveByKey(" ", "x", ref.PublishedAt).ErrorKind)
	assert.Equal(t, StatusSuccess, s.RemoveByKey(ref.Author, ref.Title, ref.PublishedAt).Status)
	assert.Equal(t, "NOT_FOUND", s.RemoveByKey(ref.Author, ref.Title, ref.PublishedAt).ErrorKind)
}

func TestSession_Swap(t *testing.T) {
	s, _ := newTestSession(fixtureRef(1, "one"), fixtureRef(2, "two"))
	appendAll(t, s, 1, 2)

	assert.Equal(t, StatusSuccess, s.Swap(1, 2).Status)
	assert.Equal(t, "INVALID_ARGUMENT", s.Swap(1, 1).ErrorKind)
	assert.Equal(t, "OUT_OF_RANGE", s.Swap(1, 9).ErrorKind)
}

func TestSession_Moves(t *testing.T) {
	s, _ := newTestSession(fixtureRef(1, "one"), fixtureRef(2, "two"), fixtureRef(3, "three"))
	appendAll(t, s, 1, 2, 3)

	res := s.MoveToPosition(3, 1)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 1, res.ArticleNumber)

	res = s.MoveToEnd(1)
	assert.Equal(t, 3, res.ArticleNumber)

	res = s.MoveToFront(2)
	assert.Equal(t, 1, res.ArticleNumber)

	assert.Equal(t, "OUT_OF_RANGE", s.MoveToPosition(0, 1).ErrorKind)

	entries := s.Entries()
	got := make([]int64, len(entries.Entries))
	for i, e := range entries.Entries {
		assert.Equal(t, i+1, e.ArticleNumber)
		got[i] = e.Article.ID
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestSession_ReadCurrent(t *testing.T) {
	s, cat := newTestSession(fixtureRef(1, "one"), fixtureRef(2, "two"))
	appendAll(t, s, 1, 2)

	res := s.ReadCurrent(context.Background())
	require.Equal(t, StatusSuccess, res.Status)
	require.NotNil(t, res.Article)
	assert.Equal(t, int64(1), res.Article.ID)
	assert.Equal(t, 2, res.Cursor)
	assert.Equal(t, []int64{1}, cat.ReadIDs())
}

func TestSession_ReadCurrent_Exhausted(t *testing.T) {
	s, _ := newTestSession()

	res := s.ReadCurrent(context.Background())
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "JOURNAL_EXHAUSTED", res.ErrorKind)
	assert.Nil(t, res.Article)
}

func TestSession_ReadCurrent_PartialFailure(t *testing.T) {
	s, cat := newTestSession(fixtureRef(1, "one"))
	appendAll(t, s, 1)
	cat.FailRecording = errors.New("catalog down")

	res := s.ReadCurrent(context.Background())
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "PARTIAL_FAILURE", res.ErrorKind)

	// The journal-side mutation stood: article and moved cursor are reported.
	require.NotNil(t, res.Article)
	assert.Equal(t, int64(1), res.Article.ID)
	assert.Equal(t, 2, res.Cursor)
}

func TestSession_ReadRest_Then_ReadAll(t *testing.T) {
	s, cat := newTestSession(fixtureRef(1, "one"), fixtureRef(2, "two"), fixtureRef(3, "three"))
	appendAll(t, s, 1, 2, 3)

	// Read one, then the rest.
	require.Equal(t, StatusSuccess, s.ReadCurrent(context.Background()).Status)
	res := s.ReadRest(context.Background())
	require.Equal(t, StatusSuccess, res.Status)
	require.Len(t, res.Articles, 2)
	assert.Equal(t, int64(2), res.Articles[0].ID)
	assert.Equal(t, 4, res.Cursor)

	// Rest again while exhausted fails; full read starts over.
	res = s.ReadRest(context.Background())
	assert.Equal(t, "JOURNAL_EXHAUSTED", res.ErrorKind)

	res = s.ReadAll(context.Background())
	require.Equal(t, StatusSuccess, res.Status)
	assert.Len(t, res.Articles, 3)
	assert.Equal(t, 4, res.Cursor)

	assert.Equal(t, []int64{1, 2, 3, 1, 2, 3}, cat.ReadIDs())
}

func TestSession_ReadAll_Empty(t *testing.T) {
	s, _ := newTestSession()

	res := s.ReadAll(context.Background())
	assert.Equal(t, "JOURNAL_EXHAUSTED", res.ErrorKind)
}

func TestSession_Rewind(t *testing.T) {
	s, _ := newTestSession(fixtureRef(1, "one"))
	appendAll(t, s, 1)
	require.Equal(t, StatusSuccess, s.ReadCurrent(context.Background()).Status)

	res := s.Rewind()
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 1, res.Cursor)
}

func TestSession_Clear(t *testing.T) {
	s, _ := newTestSession(fixtureRef(1, "one"))
	appendAll(t, s, 1)

	assert.Equal(t, StatusSuccess, s.Clear().Status)
	list := s.Entries()
	assert.Empty(t, list.Entries)
	assert.Equal(t, 1, list.Cursor)
}

func TestSession_Stats(t *testing.T) {
	a := fixtureRef(1, "one")
	a.ReadingTime = 5 * time.Minute
	b := fixtureRef(2, "two")
	b.ReadingTime = 3 * time.Minute
	s, _ := newTestSession(a, b)
	appendAll(t, s, 1, 2)

	res := s.Stats()
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 2, res.Length)
	assert.Equal(t, int64(480), res.DurationSeconds)
}

func TestSession_Stats_ConfiguredReadingSpeed(t *testing.T) {
	a := fixtureRef(1, "one")
	a.Content = "one two three four five six" // 6 words
	s, _ := newTestSession(a)
	s.WithReadingSpeed(6)
	appendAll(t, s, 1)

	res := s.Stats()
	assert.Equal(t, int64(60), res.DurationSeconds, "6 words at 6 wpm is one minute")
}

func TestSession_InternalErrorKind(t *testing.T) {
	// A catalog failure that is not a coded journal error maps to INTERNAL.
	assert.Equal(t, ErrorKindInternal, errorKind(errors.New("disk on fire")))
	assert.Equal(t, "NOT_FOUND", errorKind(journal.NewNotFoundError("x")))
}
