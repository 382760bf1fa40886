package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFixed(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	c := NewFixed(at)

	assert.True(t, at.Equal(c.Now()))
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.Equal(t, c.Now(), c.Now())
}

func TestNewSystem(t *testing.T) {
	before := time.Now().UTC()
	now := NewSystem().Now()

	assert.False(t, now.Before(before))
	assert.Equal(t, time.UTC, now.Location())
}

func TestManual(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManual(start)

	assert.Equal(t, start, c.Now())
	c.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), c.Now())
}
