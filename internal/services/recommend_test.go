package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novashop_back_end/internal/models"
)

func makeProduct(i int, category string, price float64, stock, sales int, rating float64) models.Product {
	id, _ := gocql.ParseUUID(fmt.Sprintf("00000000-0000-1000-8000-%012d", i))
	p := models.Product{
		ID:       id,
		Name:     fmt.Sprintf("Produit %d", i),
		Category: category,
		Price:    price,
		Stock:    stock,
		Sales:    sales,
		Rating:   rating,
	}
	p.DeriveStatus()
	return p
}

func catalogFixture() []models.Product {
	return []models.Product{
		makeProduct(1, "Electronics", 80, 50, 120, 4.5),
		makeProduct(2, "Electronics", 120, 30, 300, 4.8),
		makeProduct(3, "Electronics", 500, 20, 10, 3.9),
		makeProduct(4, "Fashion", 40, 25, 210, 4.2),
		makeProduct(5, "Fashion", 60, 0, 400, 4.9), // out_of_stock
		makeProduct(6, "Books", 15, 100, 90, 4.7),
		makeProduct(7, "Books", 22, 60, 90, 4.1),
		makeProduct(8, "Sports", 95, 40, 5, 3.5),
	}
}

func byID(products []models.Product) map[string]models.Product {
	m := make(map[string]models.Product, len(products))
	for _, p := range products {
		m[p.ID.String()] = p
	}
	return m
}

func TestScorerRanges(t *testing.T) {
	s := NewScorer(1)
	for i := 0; i < 500; i++ {
		assert.GreaterOrEqual(t, s.HistoryScore(), 85)
		assert.Less(t, s.HistoryScore(), 100)
		assert.GreaterOrEqual(t, s.TrendingScore(), 70)
		assert.Less(t, s.TrendingScore(), 90)
		assert.GreaterOrEqual(t, s.Confidence(), 85)
		assert.Less(t, s.Confidence(), 95)
		assert.GreaterOrEqual(t, s.DataPoints(), 2000)
		assert.Less(t, s.DataPoints(), 3000)
	}
}

func TestScorerSeeded(t *testing.T) {
	a, b := NewScorer(42), NewScorer(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.HistoryScore(), b.HistoryScore(), "même seed → même séquence")
	}
}

func TestBuildHistoryProfile(t *testing.T) {
	products := catalogFixture()
	index := byID(products)

	browsing := []models.BrowsingEntry{
		{ProductID: products[0].ID.String(), ViewedAt: time.Now()}, // Electronics, 80
		{ProductID: products[1].ID.String(), ViewedAt: time.Now()}, // Electronics, 120
		{ProductID: "inconnu", ViewedAt: time.Now()},               // produit supprimé, ignoré
	}
	purchases := []models.PurchaseEntry{
		{ProductID: products[5].ID.String(), Quantity: 1}, // Books
	}

	profile := BuildHistoryProfile(browsing, purchases, index)

	assert.False(t, profile.Empty())
	assert.True(t, profile.Categories["Electronics"])
	assert.True(t, profile.Categories["Books"])
	assert.False(t, profile.Categories["Fashion"])
	assert.Equal(t, 80.0, profile.MinPrice)
	assert.Equal(t, 120.0, profile.MaxPrice)
	assert.True(t, profile.Viewed[products[0].ID.String()])
	assert.False(t, profile.Viewed[products[5].ID.String()], "les achats ne comptent pas comme vus")
}

func TestFilterCandidates(t *testing.T) {
	products := catalogFixture()
	profile := HistoryProfile{
		Categories: map[string]bool{"Electronics": true},
		MinPrice:   80,
		MaxPrice:   120,
		Viewed:     map[string]bool{products[0].ID.String(): true},
	}

	candidates := FilterCandidates(products, profile, 4)

	// produit 1 vu, produit 3 hors bande (500 > 1.5×120), reste le produit 2
	require.Len(t, candidates, 1)
	assert.Equal(t, "Produit 2", candidates[0].Name)
}

func TestRecommendFromHistory(t *testing.T) {
	products := catalogFixture()
	profile := HistoryProfile{
		Categories: map[string]bool{"Electronics": true, "Books": true},
		MinPrice:   15,
		MaxPrice:   120,
		Viewed:     map[string]bool{},
	}

	recs := Recommend(products, profile, 3, NewScorer(7))

	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.Equal(t, ReasonHistory, r.Reason)
		assert.GreaterOrEqual(t, r.MatchScore, 85)
		assert.Less(t, r.MatchScore, 100)
	}
	// trié par score décroissant
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].MatchScore, recs[i].MatchScore)
	}
}

func TestRecommendFallbackTrending(t *testing.T) {
	products := catalogFixture()

	// Aucun historique : limit=4 → exactement 4 meilleures ventes actives
	recs := Recommend(products, HistoryProfile{}, 4, NewScorer(99))

	require.Len(t, recs, 4)
	for _, r := range recs {
		assert.Equal(t, ReasonTrending, r.Reason)
		assert.GreaterOrEqual(t, r.MatchScore, 70)
		assert.Less(t, r.MatchScore, 90)
		assert.Equal(t, models.ProductActive, r.Status)
	}
	// meilleures ventes d'abord (produit 5 exclu : out_of_stock)
	assert.Equal(t, "Produit 2", recs[0].Name) // 300 ventes
	assert.Equal(t, "Produit 4", recs[1].Name) // 210 ventes
	assert.Equal(t, "Produit 1", recs[2].Name) // 120 ventes
	assert.Equal(t, "Produit 6", recs[3].Name) // 90 ventes, note 4.7
}

func TestSortTrendingRatingTiebreak(t *testing.T) {
	products := []models.Product{
		makeProduct(7, "Books", 22, 60, 90, 4.1),
		makeProduct(6, "Books", 15, 100, 90, 4.7),
	}

	SortTrending(products)

	// à ventes égales (90), la meilleure note passe devant
	assert.Equal(t, "Produit 6", products[0].Name)
	assert.Equal(t, "Produit 7", products[1].Name)
}

func TestRecommendPartialHistoryTopsUp(t *testing.T) {
	products := catalogFixture()
	profile := HistoryProfile{
		Categories: map[string]bool{"Sports": true},
		MinPrice:   95,
		MaxPrice:   95,
		Viewed:     map[string]bool{},
	}

	recs := Recommend(products, profile, 4, NewScorer(3))

	require.Len(t, recs, 4)
	assert.Equal(t, ReasonHistory, recs[0].Reason) // seul produit Sports dans la bande
	for _, r := range recs[1:] {
		assert.Equal(t, ReasonTrending, r.Reason)
	}
}

func TestSimilar(t *testing.T) {
	products := catalogFixture()
	target := products[0] // Electronics, 80

	similar := Similar(products, target, 4)

	// produit 2 (120 ≤ 1.5×80) oui ; produit 3 (500) hors bande ; lui-même exclu
	require.Len(t, similar, 1)
	assert.Equal(t, "Produit 2", similar[0].Name)

	// déterministe
	assert.Equal(t, similar, Similar(products, target, 4))
}

func TestSimilarCap(t *testing.T) {
	var products []models.Product
	for i := 0; i < 10; i++ {
		products = append(products, makeProduct(100+i, "Books", 20, 50, 10, 4.0))
	}

	similar := Similar(products, products[0], 4)
	assert.Len(t, similar, 4)
}

func TestSubstringSearch(t *testing.T) {
	products := []models.Product{
		makeProduct(1, "Electronics", 80, 50, 0, 4),
		makeProduct(2, "Books", 20, 30, 0, 4),
	}
	products[0].Name = "Casque Bluetooth Pro"
	products[0].Tags = []string{"audio", "sans-fil"}
	products[1].Description = "Guide complet du BLUETOOTH basse énergie"

	results := SubstringSearch(products, "bluetooth", 10)
	assert.Len(t, results, 2)

	results = SubstringSearch(products, "AUDIO", 10)
	require.Len(t, results, 1)
	assert.Equal(t, "Casque Bluetooth Pro", results[0].Name)

	assert.Empty(t, SubstringSearch(products, "clavier", 10))
}

func TestSuggestionsFixedShape(t *testing.T) {
	assert.Equal(t, []string{
		"montre premium",
		"montre luxury",
		"best montre",
		"montre sale",
	}, Suggestions("montre"))
}
