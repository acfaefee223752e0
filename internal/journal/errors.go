package journal

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes journal errors.
//
// Codes are part of the boundary contract: the service facade forwards them
// verbatim as error kinds, so renaming a code is a breaking change.
type ErrorCode string

const (
	// ErrCodeOutOfRange indicates an article number outside [1, length].
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// ErrCodeNotFound indicates a lookup by id or compound key matched nothing.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidArgument indicates malformed input (bad ref, n1 == n2 swap).
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeJournalExhausted indicates a read past the end of the journal.
	ErrCodeJournalExhausted ErrorCode = "JOURNAL_EXHAUSTED"

	// ErrCodePartialFailure indicates the journal mutation succeeded but the
	// external read-count side effect failed. The mutation is authoritative
	// and is NOT rolled back; the failed article ids are reported for retry.
	ErrCodePartialFailure ErrorCode = "PARTIAL_FAILURE"
)

// Error is a coded journal error with structured fields for diagnostics.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ArticleNumber is the offending 1-based position, when relevant.
	ArticleNumber int

	// ArticleID identifies the affected article, when relevant.
	ArticleID int64

	// FailedIDs lists article ids whose read events failed to record
	// (PartialFailure only).
	FailedIDs []int64

	// Err is the underlying cause (PartialFailure wraps the recorder error).
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.ArticleNumber != 0:
		return fmt.Sprintf("%s: %s (article_number=%d)", e.Code, e.Message, e.ArticleNumber)
	case e.ArticleID != 0:
		return fmt.Sprintf("%s: %s (article_id=%d)", e.Code, e.Message, e.ArticleID)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithArticleID attaches the affected article id.
func (e *Error) WithArticleID(id int64) *Error {
	e.ArticleID = id
	return e
}

// CodeOf extracts the ErrorCode from an error, or "" if the error is not a
// journal Error. Handles wrapped errors via errors.As.
func CodeOf(err error) ErrorCode {
	var je *Error
	if errors.As(err, &je) {
		return je.Code
	}
	return ""
}

// IsOutOfRange reports whether err is an out-of-range error.
func IsOutOfRange(err error) bool { return CodeOf(err) == ErrCodeOutOfRange }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

// IsInvalidArgument reports whether err is an invalid-argument error.
func IsInvalidArgument(err error) bool { return CodeOf(err) == ErrCodeInvalidArgument }

// IsExhausted reports whether err is a journal-exhausted error.
func IsExhausted(err error) bool { return CodeOf(err) == ErrCodeJournalExhausted }

// IsPartialFailure reports whether err is a partial-failure error.
func IsPartialFailure(err error) bool { return CodeOf(err) == ErrCodePartialFailure }

// NewOutOfRangeError creates an Error for an article number outside [1, length].
func NewOutOfRangeError(articleNumber, length int) *Error {
	return &Error{
		Code:          ErrCodeOutOfRange,
		Message:       fmt.Sprintf("article number out of range [1, %d]", length),
		ArticleNumber: articleNumber,
	}
}

// NewNotFoundError creates an Error for a failed lookup.
func NewNotFoundError(message string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: message}
}

// NewInvalidArgumentError creates an Error for malformed input.
func NewInvalidArgumentError(message string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: message}
}

// NewExhaustedError creates an Error for a read past the end of the journal.
func NewExhaustedError(cursor, length int) *Error {
	return &Error{
		Code:    ErrCodeJournalExhausted,
		Message: fmt.Sprintf("journal exhausted (cursor=%d, length=%d)", cursor, length),
	}
}

// NewPartialFailureError creates an Error for a read whose journal-side
// mutation succeeded but whose external read-count recording failed.
func NewPartialFailureError(failedIDs []int64, cause error) *Error {
	return &Error{
		Code:      ErrCodePartialFailure,
		Message:   fmt.Sprintf("read recorded in journal but %d read event(s) failed", len(failedIDs)),
		FailedIDs: failedIDs,
		Err:       cause,
	}
}
