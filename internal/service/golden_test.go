package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/journal/internal/journal"
)

// Golden files pin the exact boundary envelopes: any JSON-visible change to
// a result struct shows up as a golden diff. Regenerate with:
//
//	go test ./internal/service -update

func goldenJSON(t *testing.T, g *goldie.Goldie, name string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	g.Assert(t, name, append(data, '\n'))
}

func goldenRefs() []journal.ArticleRef {
	a := journal.ArticleRef{
		ID:          1,
		Name:        "wire",
		Author:      "Ada Example",
		Title:       "Go Journal",
		URL:         "https://news.example/go-journal",
		Content:     "Words to read in the journal.",
		PublishedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		ReadingTime: 5 * time.Minute,
	}
	b := journal.ArticleRef{
		ID:          2,
		Name:        "wire",
		Author:      "Bram Example",
		Title:       "Queue Semantics",
		URL:         "https://news.example/queue-semantics",
		Content:     "More words to read later on.",
		PublishedAt: time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC),
		ReadingTime: 3 * time.Minute,
	}
	return []journal.ArticleRef{a, b}
}

func TestGolden_Envelopes(t *testing.T) {
	g := goldie.New(t)
	refs := goldenRefs()
	s, _ := newTestSession(refs...)

	res := s.AppendByID(context.Background(), 1)
	require.Equal(t, StatusSuccess, res.Status)
	goldenJSON(t, g, "append_success", res)

	require.Equal(t, StatusSuccess, s.AppendByID(context.Background(), 2).Status)

	goldenJSON(t, g, "list_entries", s.Entries())
	goldenJSON(t, g, "stats", s.Stats())
	goldenJSON(t, g, "read_current", s.ReadCurrent(context.Background()))

	goldenJSON(t, g, "swap_out_of_range", s.Swap(1, 9))
}

func TestGolden_ExhaustedError(t *testing.T) {
	g := goldie.New(t)
	s, _ := newTestSession()

	goldenJSON(t, g, "read_exhausted", s.ReadCurrent(context.Background()))
}
