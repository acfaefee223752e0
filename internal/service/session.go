package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/journal/internal/journal"
)

// TokenGenerator produces session tokens.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so tokens sort by
// session creation time, which is convenient when listing or debugging
// sessions.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Registry maps session tokens to live Sessions. It replaces the original
// design's process-wide journal singleton: sessions are created explicitly
// on login and destroyed explicitly on logout, and nothing is shared between
// them.
//
// Thread-safety: all methods are safe for concurrent use. The registry lock
// only guards the map; per-journal serialization is the Session's own mutex.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	tokens   TokenGenerator
}

// NewRegistry creates an empty registry issuing UUIDv7 tokens.
func NewRegistry() *Registry {
	return NewRegistryWithTokens(UUIDv7Generator{})
}

// NewRegistryWithTokens creates a registry with a custom token generator.
// For tests that need deterministic tokens.
func NewRegistryWithTokens(tokens TokenGenerator) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		tokens:   tokens,
	}
}

// Create starts a new session with an empty journal and returns its token.
func (r *Registry) Create(catalog Catalog) (string, *Session) {
	token := r.tokens.Generate()
	sess := NewSession(catalog)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = sess
	return token, sess
}

// Get returns the session for a token, or NOT_FOUND if none exists.
func (r *Registry) Get(token string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[token]
	if !ok {
		return nil, journal.NewNotFoundError("no session for token")
	}
	return sess, nil
}

// Destroy tears down the session for a token. Destroying an unknown token
// is NOT_FOUND so that a double logout is visible to the caller.
func (r *Registry) Destroy(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return journal.NewNotFoundError("no session for token")
	}
	delete(r.sessions, token)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
