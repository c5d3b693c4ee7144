package ai

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"novashop_back_end/internal/database"
	"novashop_back_end/internal/handlers/product"
	"novashop_back_end/internal/models"
	"novashop_back_end/internal/services"
)

const (
	insightsCacheKey = "ai:insights"
	insightsCacheTTL = 2 * time.Minute
)

// CategoryStat agrège les ventes d'une catégorie (revenu = prix courant × ventes)
type CategoryStat struct {
	Category string  `json:"category"`
	Units    int     `json:"units"`
	Revenue  float64 `json:"revenue"`
}

type PriceBucket struct {
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avgRating"`
}

var bucketBounds = []float64{50, 100, 250, 500, 1000}

// TopCategories agrège unités vendues et revenu par catégorie, classées par
// unités décroissantes, top n. Seuls les produits actifs ayant au moins une
// vente comptent.
func TopCategories(products []models.Product, n int) []CategoryStat {
	byCategory := make(map[string]*CategoryStat)
	for _, p := range products {
		if p.Status != models.ProductActive || p.Sales == 0 {
			continue
		}
		stat, ok := byCategory[p.Category]
		if !ok {
			stat = &CategoryStat{Category: p.Category}
			byCategory[p.Category] = stat
		}
		stat.Units += p.Sales
		stat.Revenue += p.Price * float64(p.Sales)
	}

	stats := make([]CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stat.Revenue = math.Round(stat.Revenue*100) / 100
		stats = append(stats, *stat)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Units > stats[j].Units
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// PriceBuckets répartit les produits actifs par tranche de prix avec la note
// moyenne de chaque tranche.
func PriceBuckets(products []models.Product) []PriceBucket {
	labels := []string{"0-50", "50-100", "100-250", "250-500", "500-1000", "1000+"}
	buckets := make([]PriceBucket, len(labels))
	ratings := make([]float64, len(labels))
	for i, label := range labels {
		buckets[i].Label = label
	}

	for _, p := range products {
		if p.Status != models.ProductActive {
			continue
		}
		idx := len(bucketBounds)
		for i, bound := range bucketBounds {
			if p.Price < bound {
				idx = i
				break
			}
		}
		buckets[idx].Count++
		ratings[idx] += p.Rating
	}

	for i := range buckets {
		if buckets[i].Count > 0 {
			buckets[i].AvgRating = math.Round(ratings[i]/float64(buckets[i].Count)*10) / 10
		}
	}
	return buckets
}

// GET /api/ai/insights (admin) — tableau de bord analytique, cache Redis court
func GetInsights(c *gin.Context) {
	ctx := context.Background()

	if cached, err := database.Redis.Get(ctx, insightsCacheKey).Result(); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	products, err := product.AllProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	trending := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Status == models.ProductActive {
			trending = append(trending, p)
		}
	}
	services.SortTrending(trending)
	if len(trending) > 5 {
		trending = trending[:5]
	}

	payload := gin.H{
		"topCategories":    TopCategories(products, 5),
		"priceBuckets":     PriceBuckets(products),
		"trendingProducts": trending,
		"lastAnalysis":     time.Now(),
	}

	if jsonData, err := json.Marshal(payload); err == nil {
		database.Redis.Set(ctx, insightsCacheKey, jsonData, insightsCacheTTL)
	}

	c.JSON(http.StatusOK, payload)
}
