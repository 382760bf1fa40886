package provider

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &StatusError{Method: http.MethodGet, Path: "/api/v1/order/e1", StatusCode: http.StatusNotFound})

	assert.ErrorIs(t, err, ErrProvider)
	assert.False(t, errors.Is(err, ErrAuth))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "status 404 for GET /api/v1/order/e1")

	assert.True(t, IsUnauthorized(&StatusError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, IsNotFound(errors.New("plain")))
}
