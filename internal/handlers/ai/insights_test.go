package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novashop_back_end/internal/models"
)

func TestTopCategoriesSortedByUnits(t *testing.T) {
	products := []models.Product{
		{Category: "Electronics", Price: 100, Sales: 10, Status: models.ProductActive}, // 1000
		{Category: "Fashion", Price: 50, Sales: 30, Status: models.ProductActive},      // 1500
		{Category: "Electronics", Price: 200, Sales: 2, Status: models.ProductActive},  // +400
		{Category: "Sports", Price: 10, Sales: 1, Status: models.ProductActive},        // 10
		{Category: "Books", Price: 30, Sales: 0, Status: models.ProductActive},         // aucune vente
		{Category: "Beauty", Price: 80, Sales: 500, Status: models.ProductOutOfStock},  // hors catalogue actif
	}

	stats := TopCategories(products, 3)

	require.Len(t, stats, 3)
	assert.Equal(t, "Fashion", stats[0].Category, "30 unités")
	assert.Equal(t, 30, stats[0].Units)
	assert.Equal(t, 1500.0, stats[0].Revenue)
	assert.Equal(t, "Electronics", stats[1].Category, "12 unités")
	assert.Equal(t, 12, stats[1].Units)
	assert.Equal(t, 1400.0, stats[1].Revenue)
	assert.Equal(t, "Sports", stats[2].Category)

	for _, s := range stats {
		assert.NotEqual(t, "Books", s.Category, "catégorie sans vente exclue")
		assert.NotEqual(t, "Beauty", s.Category, "produit inactif exclu")
	}
}

func TestPriceBuckets(t *testing.T) {
	products := []models.Product{
		{Price: 10, Rating: 4, Status: models.ProductActive},
		{Price: 49.99, Rating: 5, Status: models.ProductActive},
		{Price: 50, Rating: 3, Status: models.ProductActive},
		{Price: 999, Rating: 4, Status: models.ProductActive},
		{Price: 2500, Rating: 5, Status: models.ProductActive},
		{Price: 20, Rating: 1, Status: models.ProductOutOfStock},
	}

	buckets := PriceBuckets(products)

	require.Len(t, buckets, 6)
	assert.Equal(t, 2, buckets[0].Count, "tranche 0-50, produit inactif exclu")
	assert.Equal(t, 4.5, buckets[0].AvgRating)
	assert.Equal(t, 1, buckets[1].Count, "50 tombe dans 50-100")
	assert.Equal(t, 1, buckets[4].Count)
	assert.Equal(t, 1, buckets[5].Count, "1000+ ouverte")
	assert.Equal(t, 0, buckets[2].Count)
	assert.Equal(t, 0.0, buckets[2].AvgRating, "tranche vide sans note")
}
