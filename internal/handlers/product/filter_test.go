package product

import (
	"fmt"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novashop_back_end/internal/models"
)

func fixture() []models.Product {
	mk := func(i int, name, category string, price float64, stock, sales int, rating float64, created time.Time) models.Product {
		id, _ := gocql.ParseUUID(fmt.Sprintf("00000000-0000-1000-8000-%012d", i))
		p := models.Product{
			ID: id, Name: name, Category: category, Price: price,
			Stock: stock, Sales: sales, Rating: rating, CreatedAt: created,
		}
		p.DeriveStatus()
		return p
	}

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Product{
		mk(1, "Casque audio", "Electronics", 79.99, 50, 320, 4.6, t0),
		mk(2, "Montre connectée", "Electronics", 199.0, 5, 150, 4.2, t0.AddDate(0, 2, 0)),
		mk(3, "Roman policier", "Books", 12.50, 100, 80, 4.8, t0.AddDate(0, 1, 0)),
		mk(4, "Tapis de yoga", "Sports", 35.0, 0, 500, 4.9, t0), // out_of_stock → jamais listé
	}
}

func TestFilterForListingExcludesOutOfStock(t *testing.T) {
	out := FilterForListing(fixture(), ListFilters{})
	require.Len(t, out, 3)
	for _, p := range out {
		assert.NotEqual(t, models.ProductOutOfStock, p.Status)
	}
}

func TestFilterForListingCategory(t *testing.T) {
	out := FilterForListing(fixture(), ListFilters{Category: "Electronics"})
	assert.Len(t, out, 2)

	// "All" est un pseudo-filtre : tout passe
	out = FilterForListing(fixture(), ListFilters{Category: "All"})
	assert.Len(t, out, 3)
}

func TestFilterForListingPriceBand(t *testing.T) {
	min, max := 50.0, 200.0
	out := FilterForListing(fixture(), ListFilters{MinPrice: &min, MaxPrice: &max})

	require.Len(t, out, 2)
	for _, p := range out {
		assert.GreaterOrEqual(t, p.Price, min)
		assert.LessOrEqual(t, p.Price, max)
	}
}

func TestFilterForListingSearch(t *testing.T) {
	out := FilterForListing(fixture(), ListFilters{Search: "montre"})
	require.Len(t, out, 1)
	assert.Equal(t, "Montre connectée", out[0].Name)
}

func TestSortProducts(t *testing.T) {
	products := fixture()[:3]

	SortProducts(products, "price_asc")
	assert.Equal(t, "Roman policier", products[0].Name)

	SortProducts(products, "price_desc")
	assert.Equal(t, "Montre connectée", products[0].Name)

	SortProducts(products, "rating")
	assert.Equal(t, "Roman policier", products[0].Name)

	SortProducts(products, "newest")
	assert.Equal(t, "Montre connectée", products[0].Name)

	SortProducts(products, "") // défaut : ventes décroissantes
	assert.Equal(t, "Casque audio", products[0].Name)
}

func TestPaginate(t *testing.T) {
	var products []models.Product
	for i := 0; i < 25; i++ {
		products = append(products, models.Product{Name: fmt.Sprintf("p%d", i)})
	}

	items, totalPages, total := Paginate(products, 1, 12)
	assert.Len(t, items, 12)
	assert.Equal(t, 3, totalPages)
	assert.Equal(t, 25, total)

	items, _, _ = Paginate(products, 3, 12)
	assert.Len(t, items, 1)

	// page au-delà de la fin → liste vide, pas de panique
	items, _, _ = Paginate(products, 9, 12)
	assert.Empty(t, items)

	// valeurs dégénérées → défauts
	items, _, _ = Paginate(products, 0, 0)
	assert.Len(t, items, 12)
}
