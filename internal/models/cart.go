package models

// CartItem : instantané produit + quantité, unique par product_id dans un panier.
// Le panier n'est pas autoritaire : le moteur de commande recalcule les prix
// côté serveur à partir des lignes soumises.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// AsOrderItem convertit une ligne de panier en ligne de commande pour
// l'aperçu de prix (même formule que le moteur de commande).
func (ci CartItem) AsOrderItem() OrderItem {
	return OrderItem{
		ProductID: ci.ProductID,
		Name:      ci.Name,
		Price:     ci.Price,
		Quantity:  ci.Quantity,
		Image:     ci.Image,
	}
}
