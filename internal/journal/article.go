package journal

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// ArticleRef is an immutable snapshot of an article's identity and metadata
// taken at the moment it entered a journal. The catalog remains the source of
// truth for the article itself; a ref never changes once appended.
//
// Journal operations identify entries by ID. Compound-key operations
// (RemoveByKey, GetByKey) match on (Author, Title, PublishedAt) instead,
// with NFC-normalized, case-insensitive author/title comparison.
type ArticleRef struct {
	ID          int64
	Name        string
	Author      string
	Title       string
	URL         string
	Content     string
	PublishedAt time.Time

	// ReadingTime is the catalog-supplied reading duration estimate.
	// Zero means "not supplied"; Stats falls back to a word-count estimate.
	ReadingTime time.Duration
}

// minPublicationYear rejects obviously bogus timestamps (the catalog stores
// nothing older than modern web publishing).
const minPublicationYear = 1900

// Validate checks that a ref is well-formed enough to enter a journal.
// Returns an InvalidArgument error naming the first offending field.
func (a ArticleRef) Validate() error {
	if a.ID <= 0 {
		return NewInvalidArgumentError("article id must be positive").WithArticleID(a.ID)
	}
	if strings.TrimSpace(a.Title) == "" {
		return NewInvalidArgumentError("article title is required").WithArticleID(a.ID)
	}
	if strings.TrimSpace(a.Author) == "" {
		return NewInvalidArgumentError("article author is required").WithArticleID(a.ID)
	}
	if !a.PublishedAt.IsZero() && a.PublishedAt.Year() <= minPublicationYear {
		return NewInvalidArgumentError("article publication year is out of range").WithArticleID(a.ID)
	}
	return nil
}

// MatchesKey reports whether the ref matches the compound key
// (author, title, publishedAt).
//
// Author and title are compared after NFC normalization and case folding so
// that visually identical strings with different code point sequences match.
// Timestamps are compared with time.Time.Equal (wall-clock instant, not
// location).
func (a ArticleRef) MatchesKey(author, title string, publishedAt time.Time) bool {
	return keyFold(a.Author) == keyFold(author) &&
		keyFold(a.Title) == keyFold(title) &&
		a.PublishedAt.Equal(publishedAt)
}

// keyFold canonicalizes a compound-key component: NFC normalization followed
// by lower-casing. NFC first, so that composed and decomposed forms of the
// same character fold identically.
func keyFold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// JournalEntry pairs an ArticleRef with its current 1-based article number.
//
// Article numbers are derived, not stored: they are recomputed as 1..N after
// every structural mutation, so a number held across a mutating call is
// stale. Callers must re-fetch entries after any mutation.
type JournalEntry struct {
	ArticleNumber int
	Article       ArticleRef
}
