package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts dérivés du stock (recalculés à chaque écriture)
const (
	ProductActive     = "active"
	ProductLowStock   = "low_stock"
	ProductOutOfStock = "out_of_stock"
)

// Seuil en dessous duquel un produit passe en low_stock
const LowStockThreshold = 10

// Catégories autorisées (ensemble fermé)
var Categories = []string{
	"Electronics",
	"Fashion",
	"Accessories",
	"Home & Living",
	"Sports",
	"Beauty",
	"Books",
}

type Product struct {
	ID             gocql.UUID        `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	OriginalPrice  *float64          `json:"originalPrice,omitempty"`
	Images         []string          `json:"images"`
	Category       string            `json:"category"`
	Stock          int               `json:"stock"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	Features       []string          `json:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Status         string            `json:"status"`
	Sales          int               `json:"sales"`
	Tags           []string          `json:"tags,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// StatusForStock applique la règle invariante stock → statut.
func StatusForStock(stock int) string {
	switch {
	case stock <= 0:
		return ProductOutOfStock
	case stock < LowStockThreshold:
		return ProductLowStock
	default:
		return ProductActive
	}
}

// DeriveStatus recalcule le statut depuis le stock. À appeler avant chaque persistance.
func (p *Product) DeriveStatus() {
	p.Status = StatusForStock(p.Stock)
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
