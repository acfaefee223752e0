package journal

import "time"

// Journal is a user's personal ordered queue of articles plus a cursor
// marking the next unread entry.
//
// Positions ("article numbers") are 1-based and derived: after every
// structural mutation the entries are renumbered 1..N, so numbers can never
// drift, gap, or duplicate. The cursor is an integer in [1, length+1];
// length+1 is the exhausted state.
//
// Journal is NOT safe for concurrent use. A journal is exclusively owned by
// one session; the session registry serializes access with one lock per
// session (see internal/service).
type Journal struct {
	entries []ArticleRef
	cursor  int
}

// New creates an empty journal with the cursor at 1.
func New() *Journal {
	return &Journal{cursor: 1}
}

// Length returns the number of entries.
func (j *Journal) Length() int {
	return len(j.entries)
}

// IsEmpty reports whether the journal has no entries.
func (j *Journal) IsEmpty() bool {
	return len(j.entries) == 0
}

// Cursor returns the 1-based position of the next unread entry.
// Length()+1 means the journal is exhausted.
func (j *Journal) Cursor() int {
	return j.cursor
}

// Entries returns a snapshot of the journal with article numbers computed
// 1..N. The returned slice is independent of the journal's internal state.
func (j *Journal) Entries() []JournalEntry {
	out := make([]JournalEntry, len(j.entries))
	for i, ref := range j.entries {
		out[i] = JournalEntry{ArticleNumber: i + 1, Article: ref}
	}
	return out
}

// ArticleAt returns the entry at the given article number.
func (j *Journal) ArticleAt(n int) (ArticleRef, error) {
	if n < 1 || n > len(j.entries) {
		return ArticleRef{}, NewOutOfRangeError(n, len(j.entries))
	}
	return j.entries[n-1], nil
}

// GetByID returns the first entry with the given article id, in order.
func (j *Journal) GetByID(id int64) (JournalEntry, error) {
	for i, ref := range j.entries {
		if ref.ID == id {
			return JournalEntry{ArticleNumber: i + 1, Article: ref}, nil
		}
	}
	return JournalEntry{}, NewNotFoundError("article id not in journal").WithArticleID(id)
}

// GetByKey returns the first entry matching the compound key
// (author, title, publishedAt), in order.
func (j *Journal) GetByKey(author, title string, publishedAt time.Time) (JournalEntry, error) {
	for i, ref := range j.entries {
		if ref.MatchesKey(author, title, publishedAt) {
			return JournalEntry{ArticleNumber: i + 1, Article: ref}, nil
		}
	}
	return JournalEntry{}, NewNotFoundError("no article matches key in journal")
}

// Append validates ref and adds it at the end of the journal, returning the
// new entry's article number. The cursor is unchanged.
//
// Duplicate ids are allowed; removal and lookup by id take the first match
// in order.
func (j *Journal) Append(ref ArticleRef) (int, error) {
	if err := ref.Validate(); err != nil {
		return 0, err
	}
	j.entries = append(j.entries, ref)
	return len(j.entries), nil
}

// RemoveByArticleNumber removes the entry at position n and renumbers the
// remainder.
//
// Cursor rule: entries before the cursor keep their read/unread status, so
// if cursor > n the cursor shifts down by one. If cursor == n the cursor
// stays put and now points at the entry that slid into slot n; the next
// article is not skipped. An exhausted cursor (length+1) shifts down with
// the length.
func (j *Journal) RemoveByArticleNumber(n int) error {
	if n < 1 || n > len(j.entries) {
		return NewOutOfRangeError(n, len(j.entries))
	}
	j.entries = append(j.entries[:n-1], j.entries[n:]...)
	if j.cursor > n {
		j.cursor--
	}
	return nil
}

// RemoveByID removes the first entry with the given article id.
func (j *Journal) RemoveByID(id int64) error {
	entry, err := j.GetByID(id)
	if err != nil {
		return err
	}
	return j.RemoveByArticleNumber(entry.ArticleNumber)
}

// RemoveByKey removes the first entry matching the compound key.
func (j *Journal) RemoveByKey(author, title string, publishedAt time.Time) error {
	entry, err := j.GetByKey(author, title, publishedAt)
	if err != nil {
		return err
	}
	return j.RemoveByArticleNumber(entry.ArticleNumber)
}

// Swap exchanges the entries at positions n1 and n2.
//
// Cursor rule: slot-based. The cursor keeps its numeric value and therefore
// now refers to a different entry if it pointed at one of the swapped slots.
// Contrast with MoveToPosition, which tracks content.
func (j *Journal) Swap(n1, n2 int) error {
	if n1 < 1 || n1 > len(j.entries) {
		return NewOutOfRangeError(n1, len(j.entries))
	}
	if n2 < 1 || n2 > len(j.entries) {
		return NewOutOfRangeError(n2, len(j.entries))
	}
	if n1 == n2 {
		return NewInvalidArgumentError("cannot swap an article with itself")
	}
	j.entries[n1-1], j.entries[n2-1] = j.entries[n2-1], j.entries[n1-1]
	return nil
}

// MoveToPosition removes the entry at position from and reinserts it at
// position to, shifting the entries between them by one slot.
//
// Cursor rule: content-based. The cursor continues to point at the same
// logical entry it pointed at before the move:
//   - cursor == from: the tracked entry moved, cursor follows it to `to`
//   - from < cursor <= to: the block shifted down past the cursor
//   - to <= cursor < from: the block shifted up past the cursor
//
// An exhausted cursor is unchanged.
func (j *Journal) MoveToPosition(from, to int) error {
	length := len(j.entries)
	if from < 1 || from > length {
		return NewOutOfRangeError(from, length)
	}
	if to < 1 || to > length {
		return NewOutOfRangeError(to, length)
	}
	if from == to {
		return nil
	}

	ref := j.entries[from-1]
	j.entries = append(j.entries[:from-1], j.entries[from:]...)
	j.entries = append(j.entries[:to-1], append([]ArticleRef{ref}, j.entries[to-1:]...)...)

	if j.cursor <= length {
		switch {
		case j.cursor == from:
			j.cursor = to
		case from < j.cursor && j.cursor <= to:
			j.cursor--
		case to <= j.cursor && j.cursor < from:
			j.cursor++
		}
	}
	return nil
}

// MoveToFront moves the entry at position n to the front of the journal.
func (j *Journal) MoveToFront(n int) error {
	if len(j.entries) == 0 {
		return NewOutOfRangeError(n, 0)
	}
	return j.MoveToPosition(n, 1)
}

// MoveToEnd moves the entry at position n to the end of the journal.
func (j *Journal) MoveToEnd(n int) error {
	if len(j.entries) == 0 {
		return NewOutOfRangeError(n, 0)
	}
	return j.MoveToPosition(n, len(j.entries))
}

// Clear empties the journal and resets the cursor to 1. Always succeeds.
func (j *Journal) Clear() {
	j.entries = nil
	j.cursor = 1
}

// rewind resets the cursor to 1 without touching entry order.
// Exposed through ReadTracker.Rewind.
func (j *Journal) rewind() {
	j.cursor = 1
}

// advance moves the cursor forward by one. Callers check exhaustion first.
func (j *Journal) advance() {
	j.cursor++
}
