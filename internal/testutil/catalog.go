// Package testutil provides deterministic test doubles for the journal's
// collaborators: an in-memory catalog that records read events, and a fixed
// session-token generator.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/roach88/journal/internal/journal"
)

// RecordingCatalog is an in-memory catalog fake. It satisfies the service
// layer's Catalog port (and journal.ReadRecorder) and captures every read
// event for assertions. FailRecording makes RecordRead fail, for exercising
// PARTIAL_FAILURE paths.
//
// Thread-safety: all methods are safe for concurrent use.
type RecordingCatalog struct {
	mu            sync.Mutex
	articles      map[int64]journal.ArticleRef
	events        []journal.ReadEvent
	FailRecording error
}

// NewRecordingCatalog creates a catalog pre-loaded with the given refs.
func NewRecordingCatalog(refs ...journal.ArticleRef) *RecordingCatalog {
	c := &RecordingCatalog{articles: make(map[int64]journal.ArticleRef)}
	for _, ref := range refs {
		c.articles[ref.ID] = ref
	}
	return c
}

// FetchByID returns the article with the given id, or NOT_FOUND.
func (c *RecordingCatalog) FetchByID(_ context.Context, id int64) (journal.ArticleRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ref, ok := c.articles[id]
	if !ok {
		return journal.ArticleRef{}, journal.NewNotFoundError("article not in catalog").WithArticleID(id)
	}
	return ref, nil
}

// FetchByKey returns the first article matching the compound key, or NOT_FOUND.
func (c *RecordingCatalog) FetchByKey(_ context.Context, author, title string, publishedAt time.Time) (journal.ArticleRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ref := range c.articles {
		if ref.MatchesKey(author, title, publishedAt) {
			return ref, nil
		}
	}
	return journal.ArticleRef{}, journal.NewNotFoundError("no article matches key in catalog")
}

// RecordRead captures the read event, or fails with FailRecording when set.
func (c *RecordingCatalog) RecordRead(_ context.Context, ev journal.ReadEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailRecording != nil {
		return c.FailRecording
	}
	c.events = append(c.events, ev)
	return nil
}

// Events returns a copy of the captured read events.
func (c *RecordingCatalog) Events() []journal.ReadEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]journal.ReadEvent, len(c.events))
	copy(out, c.events)
	return out
}

// ReadIDs returns the article ids of the captured events, in order.
func (c *RecordingCatalog) ReadIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]int64, len(c.events))
	for i, ev := range c.events {
		out[i] = ev.ArticleID
	}
	return out
}
