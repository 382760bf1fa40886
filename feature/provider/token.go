package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"order-reconciler/core/clock"

	"golang.org/x/sync/singleflight"
)

// Authenticator exchanges client credentials for a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context) (token string, ttl time.Duration, err error)
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context) (string, time.Duration, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context) (string, time.Duration, error) {
	return f(ctx)
}

// Credential is a bearer token and the instant it stops being reused.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// TokenCache holds the current provider credential and renews it on demand.
// Concurrent renewals are collapsed into one request to the authenticator.
type TokenCache struct {
	auth   Authenticator
	clock  clock.Clock
	buffer time.Duration

	mu   sync.Mutex
	cred *Credential

	group singleflight.Group
}

// NewTokenCache creates an empty cache. buffer is subtracted from every ttl
// unless the ttl is not longer than the buffer, in which case the raw ttl applies.
func NewTokenCache(auth Authenticator, clk clock.Clock, buffer time.Duration) *TokenCache {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &TokenCache{auth: auth, clock: clk, buffer: buffer}
}

// Token returns a valid bearer token, requesting a new one when the cached
// credential has expired.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if token, ok := c.cached(); ok {
		return token, nil
	}

	ch := c.group.DoChan("token", func() (any, error) {
		// Another caller may have refreshed while this one waited.
		if token, ok := c.cached(); ok {
			return token, nil
		}
		// Shared by every waiter, so it must outlive a cancelled caller.
		return c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Invalidate drops the cached credential so the next Token call refreshes.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.cred = nil
	c.mu.Unlock()
}

// Current returns a copy of the cached credential, if any.
func (c *TokenCache) Current() (Credential, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cred == nil {
		return Credential{}, false
	}
	return *c.cred, true
}

func (c *TokenCache) cached() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cred != nil && c.clock.Now().Before(c.cred.ExpiresAt) {
		return c.cred.Token, true
	}
	return "", false
}

func (c *TokenCache) refresh(ctx context.Context) (string, error) {
	token, ttl, err := c.auth.Authenticate(ctx)
	if err != nil {
		if errors.Is(err, ErrAuth) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrAuth, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuth)
	}

	lifetime := ttl
	if ttl > c.buffer {
		lifetime = ttl - c.buffer
	}

	c.mu.Lock()
	c.cred = &Credential{Token: token, ExpiresAt: c.clock.Now().Add(lifetime)}
	c.mu.Unlock()

	return token, nil
}
