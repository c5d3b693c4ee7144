package pricing

import (
	"github.com/shopspring/decimal"

	"novashop_back_end/internal/models"
)

// Règles de calcul appliquées à la persistance d'une commande.
// Les totaux fournis par le client sont ignorés : tout est recalculé ici.
var (
	freeShippingOver = decimal.NewFromInt(100) // livraison offerte si itemsPrice > 100
	shippingFlat     = decimal.NewFromInt(10)
	taxRate          = decimal.NewFromFloat(0.08)
)

// Compute recalcule le détail de prix depuis les lignes de commande.
//
//	itemsPrice    = Σ(prix unitaire × quantité)
//	shippingPrice = 0 si itemsPrice > 100, sinon 10
//	taxPrice      = arrondi(itemsPrice × 0.08, 2)
//	totalPrice    = arrondi(itemsPrice + shippingPrice + taxPrice, 2)
func Compute(items []models.OrderItem) models.Prices {
	itemsPrice := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		itemsPrice = itemsPrice.Add(line)
	}

	shipping := shippingFlat
	if itemsPrice.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}

	tax := itemsPrice.Mul(taxRate).Round(2)
	total := itemsPrice.Add(shipping).Add(tax).Round(2)

	return models.Prices{
		ItemsPrice:    itemsPrice.Round(2).InexactFloat64(),
		ShippingPrice: shipping.InexactFloat64(),
		TaxPrice:      tax.InexactFloat64(),
		TotalPrice:    total.InexactFloat64(),
	}
}

// Preview applique la même formule aux lignes d'un panier, pour affichage
// avant soumission.
func Preview(items []models.CartItem) models.Prices {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, item.AsOrderItem())
	}
	return Compute(orderItems)
}
