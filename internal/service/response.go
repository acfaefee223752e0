package service

import (
	"time"

	"github.com/roach88/journal/internal/journal"
)

// Status values for boundary results.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorKindInternal is the error kind for failures that are not coded
// journal errors (catalog I/O, for example). The five journal codes cross
// the boundary verbatim.
const ErrorKindInternal = "INTERNAL"

// ArticleView is the boundary representation of an article ref.
type ArticleView struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name,omitempty"`
	Author             string `json:"author"`
	Title              string `json:"title"`
	URL                string `json:"url,omitempty"`
	Content            string `json:"content,omitempty"`
	PublishedAt        string `json:"published_at,omitempty"`
	ReadingTimeSeconds int64  `json:"reading_time_seconds,omitempty"`
}

// EntryView pairs an article view with its current article number.
type EntryView struct {
	ArticleNumber int         `json:"article_number"`
	Article       ArticleView `json:"article"`
}

// MutationResult is the outcome of a journal mutation call.
type MutationResult struct {
	Status        string `json:"status"`
	ArticleNumber int    `json:"article_number,omitempty"`
	ErrorKind     string `json:"error_kind,omitempty"`
	Message       string `json:"message,omitempty"`
}

// ReadResult is the outcome of a read or rewind call. On PARTIAL_FAILURE the
// article payload and cursor are still populated: the journal mutation stood
// and only the read-count side effect failed.
type ReadResult struct {
	Status    string        `json:"status"`
	Article   *ArticleView  `json:"article,omitempty"`
	Articles  []ArticleView `json:"articles,omitempty"`
	Cursor    int           `json:"cursor,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// ListResult is the outcome of a journal listing call.
type ListResult struct {
	Status  string      `json:"status"`
	Entries []EntryView `json:"entries"`
	Cursor  int         `json:"cursor"`
}

// StatsResult is the outcome of a stats call.
type StatsResult struct {
	Status          string `json:"status"`
	Length          int    `json:"length"`
	DurationSeconds int64  `json:"duration_seconds"`
}

func ViewOf(ref journal.ArticleRef) ArticleView {
	v := ArticleView{
		ID:                 ref.ID,
		Name:               ref.Name,
		Author:             ref.Author,
		Title:              ref.Title,
		URL:                ref.URL,
		Content:            ref.Content,
		ReadingTimeSeconds: int64(ref.ReadingTime / time.Second),
	}
	if !ref.PublishedAt.IsZero() {
		v.PublishedAt = ref.PublishedAt.UTC().Format(time.RFC3339)
	}
	return v
}

func viewsOf(refs []journal.ArticleRef) []ArticleView {
	if len(refs) == 0 {
		return nil
	}
	out := make([]ArticleView, len(refs))
	for i, ref := range refs {
		out[i] = ViewOf(ref)
	}
	return out
}

// errorKind maps an error to its boundary error kind.
func errorKind(err error) string {
	if code := journal.CodeOf(err); code != "" {
		return string(code)
	}
	return ErrorKindInternal
}

func mutationError(err error) MutationResult {
	return MutationResult{Status: StatusError, ErrorKind: errorKind(err), Message: err.Error()}
}

func readError(err error) ReadResult {
	return ReadResult{Status: StatusError, ErrorKind: errorKind(err), Message: err.Error()}
}
