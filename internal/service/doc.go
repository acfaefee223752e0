// Package service is the boundary facade over the journal engine.
//
// A Session owns one Journal plus its ReadTracker and serializes all access
// with a per-session mutex (the engine itself is unsynchronized by design).
// The Registry maps session tokens to Sessions with explicit Create/Destroy —
// there is no ambient global journal.
//
// Every method accepts and returns plain structured data: no framework
// types, no engine internals. Engine error codes cross the boundary verbatim
// as error kinds (OUT_OF_RANGE, NOT_FOUND, INVALID_ARGUMENT,
// JOURNAL_EXHAUSTED, PARTIAL_FAILURE); anything else surfaces as INTERNAL.
// The facade never swallows an error and never retries — retry policy
// belongs to the caller.
package service
