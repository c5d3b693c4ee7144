package ai

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"novashop_back_end/internal/cache"
	"novashop_back_end/internal/handlers/product"
	"novashop_back_end/internal/models"
	"novashop_back_end/internal/services"
)

const defaultRecommendationLimit = 4

// GET /api/ai/recommendations/:userId — :userId optionnel (repli tendances)
//
// Les scores sont synthétiques (PRNG seedé horloge) : deux appels identiques
// renvoient des scores différents, seul l'ordre relatif au sein d'un appel a
// un sens.
func GetRecommendations(c *gin.Context) {
	limit := defaultRecommendationLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	products, err := product.AllProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.String()] = p
	}

	profile := services.HistoryProfile{}
	if userID := c.Param("userId"); userID != "" {
		if user, err := cache.GetUserFromCache(userID); err == nil {
			profile = services.BuildHistoryProfile(user.BrowsingHistory, user.PurchaseHistory, byID)
		}
	}

	scorer := services.NewTimeScorer()
	recs := services.Recommend(products, profile, limit, scorer)
	if recs == nil {
		recs = []models.Recommendation{}
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"aiStats":         scorer.Stats(time.Now()),
	})
}

// GET /api/ai/similar/:productId — même catégorie, bande de prix ±50%, max 4
func GetSimilarProducts(c *gin.Context) {
	target, found, err := product.GetByID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	products, err := product.AllProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	similar := services.Similar(products, target, defaultRecommendationLimit)
	if similar == nil {
		similar = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"products": similar})
}

// GET /api/ai/search?q= — plein-texte Elasticsearch, repli sous-chaîne
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q obligatoire"})
		return
	}

	var results interface{}

	hits, err := services.SearchProducts(query, 10)
	if err == nil && len(hits) > 0 {
		results = hits
	} else {
		products, err := product.AllProducts(context.Background())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
			return
		}
		fallback := services.SubstringSearch(products, query, 10)
		if fallback == nil {
			fallback = []models.Product{}
		}
		results = fallback
	}

	c.JSON(http.StatusOK, gin.H{
		"results":     results,
		"query":       query,
		"aiEnhanced":  true,
		"suggestions": services.Suggestions(query),
	})
}
