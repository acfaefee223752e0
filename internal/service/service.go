package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/roach88/journal/internal/journal"
)

// Catalog is the slice of the article catalog the facade needs: ref lookup
// for appends, plus read-event recording (journal.ReadRecorder).
type Catalog interface {
	journal.ReadRecorder
	FetchByID(ctx context.Context, id int64) (journal.ArticleRef, error)
	FetchByKey(ctx context.Context, author, title string, publishedAt time.Time) (journal.ArticleRef, error)
}

// Session is the journal facade for one user session. It validates inputs,
// delegates to the engine, and translates errors into boundary error kinds.
//
// All methods serialize on the session mutex; a Session is safe for
// concurrent use, one in-flight operation at a time.
type Session struct {
	mu      sync.Mutex
	journal *journal.Journal
	tracker *journal.ReadTracker
	catalog Catalog
	wpm     int
}

// NewSession creates a session with an empty journal backed by the catalog.
func NewSession(catalog Catalog) *Session {
	return &Session{
		journal: journal.New(),
		tracker: journal.NewReadTracker(catalog),
		catalog: catalog,
	}
}

// Append adds a ref directly to the journal.
func (s *Session) Append(ref journal.ArticleRef) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.journal.Append(ref)
	if err != nil {
		return mutationError(err)
	}
	return MutationResult{Status: StatusSuccess, ArticleNumber: n}
}

// AppendByID fetches the article from the catalog and appends it.
func (s *Session) AppendByID(ctx context.Context, id int64) MutationResult {
	if id <= 0 {
		return mutationError(journal.NewInvalidArgumentError("article id must be positive"))
	}
	ref, err := s.catalog.FetchByID(ctx, id)
	if err != nil {
		return mutationError(err)
	}
	return s.Append(ref)
}

// AppendByKey fetches the article by compound key and appends it.
func (s *Session) AppendByKey(ctx context.Context, author, title string, publishedAt time.Time) MutationResult {
	if strings.TrimSpace(author) == "" || strings.TrimSpace(title) == "" {
		return mutationError(journal.NewInvalidArgumentError("author and title are required"))
	}
	ref, err := s.catalog.FetchByKey(ctx, author, title, publishedAt)
	if err != nil {
		return mutationError(err)
	}
	return s.Append(ref)
}

// RemoveByArticleNumber removes the entry at position n.
func (s *Session) RemoveByArticleNumber(n int) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.RemoveByArticleNumber(n); err != nil {
		return mutationError(err)
	}
	return MutationResult{Status: StatusSuccess}
}

// RemoveByID removes the first entry with the given article id.
func (s *Session) RemoveByID(id int64) MutationResult {
	if id <= 0 {
		return mutationError(journal.NewInvalidArgumentError("article id must be positive"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.RemoveByID(id); err != nil {
		return mutationError(err)
	}
	return MutationResult{Status: StatusSuccess}
}

// RemoveByKey removes the first entry matching the compound key.
func (s *Session) RemoveByKey(author, title string, publishedAt time.Time) MutationResult {
	if strings.TrimSpace(author) == "" || strings.TrimSpace(title) == "" {
		return mutationError(journal.NewInvalidArgumentError("author and title are required"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.RemoveByKey(author, title, publishedAt); err != nil {
		return mutationError(err)
	}
	return MutationResult{Status: StatusSuccess}
}

// Swap exchanges the entries at positions n1 and n2.
func (s *Session) Swap(n1, n2 int) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.Swap(n1, n2); err != nil {
		return mutationError(err)
	}
	return MutationResult{Status: StatusSuccess}
}

// MoveToPosition moves the entry at from to position to.
func (s *Session) MoveToPosition(from, to int) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.MoveToPosition(from, to); err != nil {
		return mutationError(err)
	}
	return MutationResult{Status: StatusSuccess, ArticleNumber: to}
}

// MoveToFront moves the entry at position n to the front.
func (s *Session) MoveToFront(n int) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.MoveToFront(n); err != nil {
		return mutationError(err)
	}
	return MutationResult{Status: StatusSuccess, ArticleNumber: 1}
}

// MoveToEnd moves the entry at position n to the end.
func (s *Session) MoveToEnd(n int) MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.journal.MoveToEnd(n); err != nil {
		return mutationError(err)
	}
	return MutationResult{Status: StatusSuccess, ArticleNumber: s.journal.Length()}
}

// Clear empties the journal and resets the cursor. Never fails.
func (s *Session) Clear() MutationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.journal.Clear()
	return MutationResult{Status: StatusSuccess}
}

// ReadCurrent reads the article at the cursor.
func (s *Session) ReadCurrent(ctx context.Context) ReadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := s.tracker.ReadCurrent(ctx, s.journal)
	if err != nil && !journal.IsPartialFailure(err) {
		return readError(err)
	}

	view := ViewOf(ref)
	res := ReadResult{Status: StatusSuccess, Article: &view, Cursor: s.journal.Cursor()}
	if err != nil {
		// The cursor moved; only the side effect failed. Report both.
		res.Status = StatusError
		res.ErrorKind = errorKind(err)
		res.Message = err.Error()
	}
	return res
}

// ReadRest reads every article from the cursor to the end.
func (s *Session) ReadRest(ctx context.Context) ReadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.bulkRead(s.tracker.ReadRestOfJournal(ctx, s.journal))
}

// ReadAll rewinds and reads the whole journal.
func (s *Session) ReadAll(ctx context.Context) ReadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.bulkRead(s.tracker.ReadEntireJournal(ctx, s.journal))
}

func (s *Session) bulkRead(refs []journal.ArticleRef, err error) ReadResult {
	if err != nil && !journal.IsPartialFailure(err) {
		return readError(err)
	}

	res := ReadResult{Status: StatusSuccess, Articles: viewsOf(refs), Cursor: s.journal.Cursor()}
	if err != nil {
		res.Status = StatusError
		res.ErrorKind = errorKind(err)
		res.Message = err.Error()
	}
	return res
}

// Rewind resets the cursor to the first entry. Never fails.
func (s *Session) Rewind() ReadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.Rewind(s.journal)
	return ReadResult{Status: StatusSuccess, Cursor: s.journal.Cursor()}
}

// Entries lists the journal with current article numbers and cursor.
func (s *Session) Entries() ListResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.journal.Entries()
	views := make([]EntryView, len(entries))
	for i, e := range entries {
		views[i] = EntryView{ArticleNumber: e.ArticleNumber, Article: ViewOf(e.Article)}
	}
	return ListResult{Status: StatusSuccess, Entries: views, Cursor: s.journal.Cursor()}
}

// Stats returns the journal's length and estimated total reading duration.
func (s *Session) Stats() StatsResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := journal.ComputeStatsWithSpeed(s.journal, s.wpm)
	return StatsResult{
		Status:          StatusSuccess,
		Length:          st.Length,
		DurationSeconds: int64(st.Duration / time.Second),
	}
}

// WithReadingSpeed overrides the words-per-minute estimate used by Stats.
// Non-positive values keep the engine default.
func (s *Session) WithReadingSpeed(wpm int) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wpm = wpm
	return s
}
