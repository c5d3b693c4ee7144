package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyStatusDelivered(t *testing.T) {
	now := time.Date(2026, 8, 12, 10, 30, 0, 0, time.UTC)
	o := Order{Status: OrderShipped, ShippingStatus: ShippingInTransit}

	o.ApplyStatus(OrderDelivered, "TRK-123", now)

	assert.Equal(t, OrderDelivered, o.Status)
	assert.Equal(t, ShippingDelivered, o.ShippingStatus)
	assert.Equal(t, "TRK-123", o.TrackingNumber)
	if assert.NotNil(t, o.DeliveredAt) {
		assert.Equal(t, now, *o.DeliveredAt)
	}
}

func TestApplyStatusWithoutTracking(t *testing.T) {
	o := Order{Status: OrderPending, TrackingNumber: "TRK-EXISTANT"}

	o.ApplyStatus(OrderProcessing, "", time.Now())

	assert.Equal(t, OrderProcessing, o.Status)
	assert.Equal(t, "TRK-EXISTANT", o.TrackingNumber)
	assert.Nil(t, o.DeliveredAt)
	assert.Empty(t, o.ShippingStatus)
}

func TestApplyStatusNoTransitionGraph(t *testing.T) {
	// Aucun graphe de transitions : delivered → pending est accepté tel quel.
	now := time.Now()
	o := Order{Status: OrderDelivered, ShippingStatus: ShippingDelivered, DeliveredAt: &now}

	o.ApplyStatus(OrderPending, "", now)

	assert.Equal(t, OrderPending, o.Status)
	// les champs de livraison déjà posés restent en l'état
	assert.Equal(t, ShippingDelivered, o.ShippingStatus)
	assert.NotNil(t, o.DeliveredAt)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("archived"))
	assert.False(t, ValidOrderStatus(""))
}
