package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"order-reconciler/feature/orders/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintOrders(t *testing.T) {
	ext := "e1"
	created := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	list := []models.Order{
		{ID: "o1", Name: "uplink", Type: models.TypeConnector, Status: models.StatusOrdered, ExternalID: &ext, CreatedAt: created},
		{ID: "o2", Name: "tunnel", Type: models.TypeVPNConnection, Status: models.StatusCompleted, CreatedAt: created},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printOrders(&buf, list))

		out := buf.String()
		assert.Contains(t, out, "EXTERNAL ID")
		assert.Contains(t, out, "e1")
		assert.Contains(t, out, "2026-05-04T08:00:00Z")
		assert.Regexp(t, `o2\s+tunnel\s+vpn_connection\s+completed\s+-`, out)
	})

	t.Run("json", func(t *testing.T) {
		ordersJSON = true
		t.Cleanup(func() { ordersJSON = false })

		var buf bytes.Buffer
		require.NoError(t, printOrders(&buf, list))

		var decoded []models.Order
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "e1", decoded[0].ExternalIDValue())
		assert.Nil(t, decoded[1].ExternalID)
	})
}
