package provider

import (
	"path/filepath"
	"testing"

	"order-reconciler/core/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	clk := clock.NewSystem()

	t.Run("Disabled", func(t *testing.T) {
		c, err := New(Config{}, clk, nil)
		require.NoError(t, err)
		assert.IsType(t, &SimulatedClient{}, c)
	})

	t.Run("Enabled", func(t *testing.T) {
		c, err := New(validConfig(), clk, nil)
		require.NoError(t, err)
		assert.IsType(t, &PortalClient{}, c)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := validConfig()
		cfg.ClientID = ""
		_, err := New(cfg, clk, nil)
		assert.Error(t, err)
	})

	t.Run("MissingCertificate", func(t *testing.T) {
		cfg := validConfig()
		cfg.CertPath = filepath.Join(t.TempDir(), "missing.pem")
		_, err := New(cfg, clk, nil)
		assert.ErrorContains(t, err, "TLS")
	})
}
