package servers_test

import (
	"testing"

	"fulfillment/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/orders",
		"/api/v1/orders/{orderId}",
		"/api/v1/orders/{orderId}/status",
		"/api/v1/orders/{orderId}/tracking-code",
		"/api/v1/orders/{orderId}/history",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}

	statuses := doc.Components.Schemas["OrderStatus"].Value.Enum
	assert.ElementsMatch(t, []any{"PENDING", "IN_PROGRESS", "FINALIZED", "CANCELED"}, statuses)
}
