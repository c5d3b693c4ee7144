package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novashop_back_end/internal/models"
)

func TestMergeCartItemNewProduct(t *testing.T) {
	cart := []models.CartItem{{ProductID: "a", Quantity: 1, Price: 10}}

	cart = MergeCartItem(cart, models.CartItem{ProductID: "b", Quantity: 2, Price: 5})

	require.Len(t, cart, 2)
	assert.Equal(t, "b", cart[1].ProductID)
	assert.Equal(t, 2, cart[1].Quantity)
}

func TestMergeCartItemExistingProductCumulates(t *testing.T) {
	cart := []models.CartItem{{ProductID: "a", Quantity: 1, Price: 10}}

	cart = MergeCartItem(cart, models.CartItem{ProductID: "a", Quantity: 3, Price: 10})

	require.Len(t, cart, 1, "unicité par product_id")
	assert.Equal(t, 4, cart[0].Quantity)
}

func TestMergeCartItemEmptyCart(t *testing.T) {
	cart := MergeCartItem(nil, models.CartItem{ProductID: "a", Quantity: 1})
	require.Len(t, cart, 1)
}
