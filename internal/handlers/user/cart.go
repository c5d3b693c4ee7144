package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"novashop_back_end/internal/database"
	"novashop_back_end/internal/handlers/product"
	"novashop_back_end/internal/models"
	"novashop_back_end/internal/pricing"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string { return "cart:" + userID }

func loadCart(ctx context.Context, userID string) []models.CartItem {
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err != nil || data == "" {
		return nil
	}
	var cart []models.CartItem
	_ = json.Unmarshal([]byte(data), &cart)
	return cart
}

func saveCart(ctx context.Context, userID string, cart []models.CartItem, event string) {
	jsonData, _ := json.Marshal(cart)
	database.Redis.Set(ctx, cartKey(userID), jsonData, cartTTL)
	// Notifie les clients WebSocket connectés
	database.Redis.Publish(ctx, cartKey(userID), event)
}

// MergeCartItem ajoute une ligne au panier : les quantités se cumulent sur
// un product_id déjà présent (unicité par produit).
func MergeCartItem(cart []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range cart {
		if cart[i].ProductID == item.ProductID {
			cart[i].Quantity += item.Quantity
			return cart
		}
	}
	return append(cart, item)
}

// GET /api/cart — items + aperçu de prix (même formule que le moteur de commande)
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	cart := loadCart(context.Background(), userID)
	if cart == nil {
		cart = []models.CartItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  cart,
		"prices": pricing.Preview(cart),
	})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	p, found, err := product.GetByID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// 🖼️ Première image pour l'aperçu panier
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}

	item := models.CartItem{
		ProductID: input.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  input.Quantity,
		Image:     image,
	}

	ctx := context.Background()
	cart := MergeCartItem(loadCart(ctx, userID), item)
	saveCart(ctx, userID, cart, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
		"prices":  pricing.Preview(cart),
	})
}

// DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	ctx := context.Background()
	cart := loadCart(ctx, userID)

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID != productID {
			newCart = append(newCart, item)
		}
	}
	saveCart(ctx, userID, newCart, "updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   newCart,
		"prices":  pricing.Preview(newCart),
	})
}

// DELETE /api/cart/clear
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx := context.Background()
	if err := database.Redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}
	database.Redis.Publish(ctx, cartKey(userID), "cleared")

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
