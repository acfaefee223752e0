// Package journal implements the reading-queue engine: an ordered sequence
// of article refs plus a cursor marking the next unread entry.
//
// ARCHITECTURE:
//
// Derived positions:
// Article numbers (1-based positions) are never stored. Every structural
// mutation renumbers the sequence 1..N atomically, so the "contiguous
// permutation, no gaps, no duplicates" invariant cannot drift. Callers must
// re-fetch article numbers after any mutating call.
//
// Cursor state machine:
// The cursor is an integer in [1, length+1]; length+1 is the exhausted
// state. Transitions: +1 per single read, jump to length+1 on a bulk read,
// reset to 1 on rewind or clear. Structural mutations shift the cursor per
// the rules documented on each operation. Two of those rules deliberately
// differ and must not be unified:
//   - Swap is slot-based: the cursor keeps its numeric value.
//   - MoveToPosition is content-based: the cursor follows the entry it
//     pointed at.
//
// Exclusive ownership:
// A Journal belongs to exactly one session and is not synchronized
// internally. The session registry (internal/service) provides one lock per
// session; cross-journal operations never occur.
//
// Side effects:
// Reading forwards a read event to the external catalog through the
// ReadRecorder port, synchronously, before success is reported. A recorder
// failure is surfaced as PARTIAL_FAILURE and the cursor move stands; retry
// policy belongs to the caller.
package journal
