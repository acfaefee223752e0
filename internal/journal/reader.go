package journal

import (
	"context"
	"time"
)

// ReadEvent describes one completed article read.
type ReadEvent struct {
	ArticleID int64
	Timestamp time.Time
}

// ReadRecorder receives read events for the external catalog. The catalog
// increments the article's read count; how it does so is its business.
//
// Recording happens synchronously before a read reports success, so a
// successful read implies the side effect was at least attempted. A recorder
// failure surfaces as PartialFailure: the cursor move is authoritative and
// is never rolled back.
type ReadRecorder interface {
	RecordRead(ctx context.Context, ev ReadEvent) error
}

// ReadTracker drives a journal's cursor through its entries and forwards
// read events to the catalog.
//
// The tracker is stateless apart from its collaborators; all position state
// lives in the Journal. The clock is injectable for deterministic tests.
type ReadTracker struct {
	recorder ReadRecorder
	now      func() time.Time
}

// NewReadTracker creates a tracker that reports read events to recorder.
func NewReadTracker(recorder ReadRecorder) *ReadTracker {
	return &ReadTracker{recorder: recorder, now: time.Now}
}

// WithClock overrides the tracker's clock. For tests.
func (t *ReadTracker) WithClock(now func() time.Time) *ReadTracker {
	t.now = now
	return t
}

// ReadCurrent reads the entry at the cursor: returns it, advances the cursor
// by one, and records the read event.
//
// Fails with JournalExhausted if the cursor is already past the end. If the
// recorder fails, the returned ref is still valid and the cursor stays
// advanced; the error is a PartialFailure carrying the article id.
func (t *ReadTracker) ReadCurrent(ctx context.Context, j *Journal) (ArticleRef, error) {
	if j.Cursor() > j.Length() {
		return ArticleRef{}, NewExhaustedError(j.Cursor(), j.Length())
	}
	ref := j.entries[j.Cursor()-1]
	j.advance()

	if err := t.recorder.RecordRead(ctx, ReadEvent{ArticleID: ref.ID, Timestamp: t.now()}); err != nil {
		return ref, NewPartialFailureError([]int64{ref.ID}, err)
	}
	return ref, nil
}

// ReadRestOfJournal reads every entry from the current cursor to the end, in
// order, recording one read event per article. The cursor ends at length+1.
//
// Fails with JournalExhausted if the cursor is already past the end; calling
// it twice in a row is a caller bug, not a silent no-op.
//
// Recorder failures do not stop the loop: every remaining entry is still
// read, and the failures aggregate into a single PartialFailure listing the
// affected article ids. The returned slice always holds everything that was
// read.
func (t *ReadTracker) ReadRestOfJournal(ctx context.Context, j *Journal) ([]ArticleRef, error) {
	if j.Cursor() > j.Length() {
		return nil, NewExhaustedError(j.Cursor(), j.Length())
	}

	var (
		read      []ArticleRef
		failedIDs []int64
		cause     error
	)
	for j.Cursor() <= j.Length() {
		ref, err := t.ReadCurrent(ctx, j)
		if err != nil && !IsPartialFailure(err) {
			return read, err
		}
		if err != nil {
			failedIDs = append(failedIDs, ref.ID)
			if cause == nil {
				cause = err
			}
		}
		read = append(read, ref)
	}

	if len(failedIDs) > 0 {
		return read, NewPartialFailureError(failedIDs, cause)
	}
	return read, nil
}

// ReadEntireJournal rewinds to the first entry and reads the whole journal.
// Equivalent to Rewind followed by ReadRestOfJournal, so it fails with
// JournalExhausted only when the journal is empty.
func (t *ReadTracker) ReadEntireJournal(ctx context.Context, j *Journal) ([]ArticleRef, error) {
	if j.IsEmpty() {
		return nil, NewExhaustedError(j.Cursor(), 0)
	}
	j.rewind()
	return t.ReadRestOfJournal(ctx, j)
}

// Rewind resets the cursor to 1 without emitting read events and without
// altering entry order. Always succeeds, including on an empty journal.
func (t *ReadTracker) Rewind(j *Journal) {
	j.rewind()
}
