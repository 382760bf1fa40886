package portal

import (
	"sync"
	"time"

	"order-reconciler/core/clock"

	"github.com/google/uuid"
)

// tokenIssuer hands out opaque bearer tokens and remembers their expiry.
type tokenIssuer struct {
	mu     sync.Mutex
	clock  clock.Clock
	ttl    time.Duration
	tokens map[string]time.Time
}

func newTokenIssuer(clk clock.Clock, ttl time.Duration) *tokenIssuer {
	return &tokenIssuer{clock: clk, ttl: ttl, tokens: make(map[string]time.Time)}
}

func (t *tokenIssuer) issue() string {
	token := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	for tok, exp := range t.tokens {
		if !now.Before(exp) {
			delete(t.tokens, tok)
		}
	}
	t.tokens[token] = now.Add(t.ttl)
	return token
}

func (t *tokenIssuer) valid(token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	exp, ok := t.tokens[token]
	return ok && t.clock.Now().Before(exp)
}
