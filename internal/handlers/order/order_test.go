package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novashop_back_end/internal/models"
)

func TestSortNewestFirst(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		{UserID: "old", CreatedAt: now.Add(-48 * time.Hour)},
		{UserID: "new", CreatedAt: now},
		{UserID: "mid", CreatedAt: now.Add(-24 * time.Hour)},
	}

	sortNewestFirst(orders)

	require.Len(t, orders, 3)
	assert.Equal(t, "new", orders[0].UserID)
	assert.Equal(t, "mid", orders[1].UserID)
	assert.Equal(t, "old", orders[2].UserID)
}

func TestDebitStock(t *testing.T) {
	catalog := map[string]models.Product{
		"p1": {Name: "Casque", Stock: 50, Sales: 10, Status: models.ProductActive},
		"p2": {Name: "Montre", Stock: 3, Sales: 7, Status: models.ProductLowStock},
	}
	var persisted []models.Product
	getByID := func(id string) (models.Product, bool, error) {
		p, ok := catalog[id]
		return p, ok, nil
	}
	persist := func(p *models.Product) error {
		persisted = append(persisted, *p)
		return nil
	}

	debitStock([]models.OrderItem{
		{ProductID: "p1", Quantity: 4},
		{ProductID: "p2", Quantity: 3},
		{ProductID: "absent", Quantity: 1},
	}, getByID, persist)

	require.Len(t, persisted, 2, "produit supprimé ignoré sans erreur")

	assert.Equal(t, 46, persisted[0].Stock, "stock débité d'exactement la quantité")
	assert.Equal(t, 14, persisted[0].Sales, "ventes créditées d'exactement la quantité")
	assert.Equal(t, models.ProductActive, persisted[0].Status)

	assert.Equal(t, 0, persisted[1].Stock)
	assert.Equal(t, 10, persisted[1].Sales)
	assert.Equal(t, models.ProductOutOfStock, persisted[1].Status, "statut re-dérivé du stock")
}

func TestDebitStockCanGoNegative(t *testing.T) {
	getByID := func(string) (models.Product, bool, error) {
		return models.Product{Stock: 2, Sales: 0, Status: models.ProductLowStock}, true, nil
	}
	var persisted []models.Product
	persist := func(p *models.Product) error {
		persisted = append(persisted, *p)
		return nil
	}

	debitStock([]models.OrderItem{{ProductID: "p1", Quantity: 5}}, getByID, persist)

	require.Len(t, persisted, 1)
	assert.Equal(t, -3, persisted[0].Stock, "aucune vérification de stock suffisant")
	assert.Equal(t, 5, persisted[0].Sales)
	assert.Equal(t, models.ProductOutOfStock, persisted[0].Status)
}

func TestCreateOrderInputValidation(t *testing.T) {
	valid := createOrderInput{
		OrderItems: []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: 10}},
		ShippingAddress: models.ShippingAddress{
			FirstName: "Jean", LastName: "Dupont", Address: "1 rue de la Paix",
			City: "Paris", ZipCode: "75001",
		},
		PaymentInfo: models.PaymentInfo{Method: "card"},
	}
	assert.Empty(t, valid.validate())

	empty := valid
	empty.OrderItems = nil
	assert.NotEmpty(t, empty.validate(), "commande sans article refusée")

	badQty := valid
	badQty.OrderItems = []models.OrderItem{{ProductID: "p1", Quantity: 0}}
	assert.NotEmpty(t, badQty.validate())

	noAddress := valid
	noAddress.ShippingAddress.City = ""
	assert.NotEmpty(t, noAddress.validate())

	noPayment := valid
	noPayment.PaymentInfo.Method = ""
	assert.NotEmpty(t, noPayment.validate())
}
