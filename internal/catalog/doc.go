// Package catalog implements the article catalog: the external store of all
// articles that journals draw from.
//
// The catalog is a collaborator of the journal engine, never the other way
// around: the engine sees it only through narrow ports (journal.ReadRecorder
// for read events; the service layer fetches refs before appending). Uses
// SQLite with WAL mode, a busy timeout, and user_version migrations.
//
// Deleted articles are soft-deleted: the row stays (read counts survive) but
// every fetch and listing treats it as absent.
package catalog
