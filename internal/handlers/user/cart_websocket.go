package user

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"novashop_back_end/internal/database"
	"novashop_back_end/internal/pricing"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse le panier complet à chaque modification, via le canal
// Redis publié par saveCart/ClearCart.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, cartKey(userID))
	defer pubsub.Close()
	ch := pubsub.Channel()

	if err := conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	}); err != nil {
		return
	}

	for msg := range ch {
		if msg.Payload != "updated" && msg.Payload != "cleared" {
			continue
		}

		cart := loadCart(ctx, userID)
		if err := conn.WriteJSON(map[string]interface{}{
			"type":   msg.Payload,
			"items":  cart,
			"prices": pricing.Preview(cart),
		}); err != nil {
			// Client parti : on arrête la boucle
			return
		}
	}
}
