package testutil

import (
	"fmt"
	"sync"
)

// FixedTokens returns predetermined session tokens, then falls back to a
// counter once the fixed ones run out. Enables deterministic registry tests
// and golden output.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator returning the given tokens in order.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next fixed token, or "token-N" past the end.
func (g *FixedTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.idx++
	if g.idx <= len(g.tokens) {
		return g.tokens[g.idx-1]
	}
	return fmt.Sprintf("token-%d", g.idx)
}
