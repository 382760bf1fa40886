package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
}

func (s stubFeature) Name() string    { return s.name }
func (s stubFeature) IsEnabled() bool { return s.enabled }

func (s stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()
	m := NewManager()
	m.Register(stubFeature{name: "on", enabled: true})
	m.Register(stubFeature{name: "off", enabled: false})

	loaded, err := m.LoadAll(app)
	require.NoError(t, err)
	assert.Equal(t, []string{"on"}, loaded)
	assert.Len(t, m.Features(), 2)

	resp, err := app.Test(httptest.NewRequest("GET", "/on", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/off", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestManager_LoadAllError(t *testing.T) {
	m := NewManager()
	m.Register(stubFeature{name: "broken", enabled: true, err: errors.New("boom")})

	_, err := m.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature broken")
}
