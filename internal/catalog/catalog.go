package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/journal/internal/journal"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on (author, title) for compound-key lookups
const currentSchemaVersion = 1

// Store is the SQLite-backed article catalog.
type Store struct {
	db *sql.DB
}

// Open creates or opens the catalog database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// Idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create inserts a new article and returns its assigned id.
//
// The compound key (author, title, published_at) is unique; a duplicate
// returns an INVALID_ARGUMENT error. The ref's own ID field is ignored (the
// catalog assigns ids).
func (s *Store) Create(ctx context.Context, ref journal.ArticleRef) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO articles
		(name, author, title, url, content, published_at, reading_time_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		ref.Name,
		ref.Author,
		ref.Title,
		ref.URL,
		ref.Content,
		formatPublishedAt(ref.PublishedAt),
		int64(ref.ReadingTime/time.Second),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, journal.NewInvalidArgumentError(
				"article with this author, title and publication date already exists")
		}
		return 0, fmt.Errorf("create article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create article: %w", err)
	}
	return id, nil
}

// FetchByID returns the article with the given id.
// Soft-deleted articles are reported as NOT_FOUND.
func (s *Store) FetchByID(ctx context.Context, id int64) (journal.ArticleRef, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, author, title, url, content, published_at, reading_time_seconds
		FROM articles
		WHERE id = ? AND deleted = 0
	`, id)

	ref, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.ArticleRef{}, journal.NewNotFoundError("article not in catalog").WithArticleID(id)
	}
	if err != nil {
		return journal.ArticleRef{}, fmt.Errorf("fetch article %d: %w", id, err)
	}
	return ref, nil
}

// FetchByKey returns the article matching the compound key
// (author, title, publishedAt). Soft-deleted articles are NOT_FOUND.
func (s *Store) FetchByKey(ctx context.Context, author, title string, publishedAt time.Time) (journal.ArticleRef, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, author, title, url, content, published_at, reading_time_seconds
		FROM articles
		WHERE author = ? AND title = ? AND published_at = ? AND deleted = 0
	`, author, title, formatPublishedAt(publishedAt))

	ref, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.ArticleRef{}, journal.NewNotFoundError("no article matches key in catalog")
	}
	if err != nil {
		return journal.ArticleRef{}, fmt.Errorf("fetch article by key: %w", err)
	}
	return ref, nil
}

// IncrementReadCount bumps the article's read count by one.
// Missing or soft-deleted articles are NOT_FOUND.
func (s *Store) IncrementReadCount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles SET read_count = read_count + 1
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return fmt.Errorf("increment read count for %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment read count for %d: %w", id, err)
	}
	if affected == 0 {
		return journal.NewNotFoundError("article not in catalog").WithArticleID(id)
	}
	return nil
}

// RecordRead implements journal.ReadRecorder: a read event increments the
// article's read count. The event timestamp is not persisted; the count is
// the catalog's only read-side state.
func (s *Store) RecordRead(ctx context.Context, ev journal.ReadEvent) error {
	return s.IncrementReadCount(ctx, ev.ArticleID)
}

// SoftDelete marks the article deleted without removing the row.
// Already-deleted and missing articles are NOT_FOUND.
func (s *Store) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles SET deleted = 1
		WHERE id = ? AND deleted = 0
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete article %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete article %d: %w", id, err)
	}
	if affected == 0 {
		return journal.NewNotFoundError("article not in catalog").WithArticleID(id)
	}
	return nil
}

// ReadCount returns the article's current read count, including for
// soft-deleted articles (counts survive deletion).
func (s *Store) ReadCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT read_count FROM articles WHERE id = ?`, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, journal.NewNotFoundError("article not in catalog").WithArticleID(id)
	}
	if err != nil {
		return 0, fmt.Errorf("read count for %d: %w", id, err)
	}
	return count, nil
}

// ListAll returns every non-deleted article ordered by id.
// Returns an empty slice (not nil) when the catalog is empty.
func (s *Store) ListAll(ctx context.Context) ([]journal.ArticleRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, author, title, url, content, published_at, reading_time_seconds
		FROM articles
		WHERE deleted = 0
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	refs := []journal.ArticleRef{}
	for rows.Next() {
		ref, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return refs, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (journal.ArticleRef, error) {
	var (
		ref         journal.ArticleRef
		publishedAt string
		readingSecs int64
	)
	err := row.Scan(&ref.ID, &ref.Name, &ref.Author, &ref.Title, &ref.URL,
		&ref.Content, &publishedAt, &readingSecs)
	if err != nil {
		return journal.ArticleRef{}, err
	}

	ref.PublishedAt, err = time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return journal.ArticleRef{}, fmt.Errorf("parse published_at %q: %w", publishedAt, err)
	}
	ref.ReadingTime = time.Duration(readingSecs) * time.Second
	return ref, nil
}

// formatPublishedAt normalizes timestamps to RFC 3339 UTC so that the
// compound-key UNIQUE constraint and key lookups compare byte-for-byte.
func formatPublishedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the (author, title) lookup index for databases created
// before the index existed in schema.sql. CREATE INDEX IF NOT EXISTS is a
// no-op on new databases.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_articles_author_title
		ON articles(author, title)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}
