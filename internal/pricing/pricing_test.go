package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"novashop_back_end/internal/models"
)

func TestComputeFreeShippingOverThreshold(t *testing.T) {
	prices := Compute([]models.OrderItem{
		{Price: 60, Quantity: 1},
		{Price: 50, Quantity: 1},
	})

	assert.Equal(t, 110.0, prices.ItemsPrice)
	assert.Equal(t, 0.0, prices.ShippingPrice)
	assert.Equal(t, 8.80, prices.TaxPrice)
	assert.Equal(t, 118.80, prices.TotalPrice)
}

func TestComputeFlatShippingUnderThreshold(t *testing.T) {
	prices := Compute([]models.OrderItem{
		{Price: 20, Quantity: 2},
	})

	assert.Equal(t, 40.0, prices.ItemsPrice)
	assert.Equal(t, 10.0, prices.ShippingPrice)
	assert.Equal(t, 3.20, prices.TaxPrice)
	assert.Equal(t, 53.20, prices.TotalPrice)
}

func TestComputeThresholdIsStrict(t *testing.T) {
	// itemsPrice exactement à 100 → livraison facturée
	prices := Compute([]models.OrderItem{{Price: 50, Quantity: 2}})

	assert.Equal(t, 100.0, prices.ItemsPrice)
	assert.Equal(t, 10.0, prices.ShippingPrice)
	assert.Equal(t, 8.0, prices.TaxPrice)
	assert.Equal(t, 118.0, prices.TotalPrice)
}

func TestComputeTotalInvariant(t *testing.T) {
	cases := [][]models.OrderItem{
		{{Price: 19.99, Quantity: 3}},
		{{Price: 0.01, Quantity: 1}},
		{{Price: 129.99, Quantity: 1}, {Price: 5.49, Quantity: 4}},
		{{Price: 33.33, Quantity: 3}},
	}

	for _, items := range cases {
		p := Compute(items)
		assert.InDelta(t, p.ItemsPrice+p.ShippingPrice+p.TaxPrice, p.TotalPrice, 0.001,
			"totalPrice doit être la somme arrondie des trois composantes")
	}
}

func TestComputeEmptyItems(t *testing.T) {
	// Le handler rejette les paniers vides en amont ; la formule reste définie.
	prices := Compute(nil)

	assert.Equal(t, 0.0, prices.ItemsPrice)
	assert.Equal(t, 10.0, prices.ShippingPrice)
	assert.Equal(t, 0.0, prices.TaxPrice)
	assert.Equal(t, 10.0, prices.TotalPrice)
}

func TestPreviewMatchesCompute(t *testing.T) {
	cart := []models.CartItem{
		{ProductID: "p1", Price: 25.50, Quantity: 2},
		{ProductID: "p2", Price: 9.99, Quantity: 1},
	}
	order := []models.OrderItem{
		{ProductID: "p1", Price: 25.50, Quantity: 2},
		{ProductID: "p2", Price: 9.99, Quantity: 1},
	}

	assert.Equal(t, Compute(order), Preview(cart))
}
