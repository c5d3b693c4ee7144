package order

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"novashop_back_end/internal/cache"
	"novashop_back_end/internal/database"
	"novashop_back_end/internal/handlers/product"
	"novashop_back_end/internal/models"
	"novashop_back_end/internal/pricing"
	"novashop_back_end/internal/utils"
)

type createOrderInput struct {
	OrderItems      []models.OrderItem     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentInfo     models.PaymentInfo     `json:"paymentInfo"`
	UserID          string                 `json:"userId"`
}

func (in createOrderInput) validate() string {
	if len(in.OrderItems) == 0 {
		return "La commande ne contient aucun article"
	}
	for _, item := range in.OrderItems {
		if item.ProductID == "" {
			return "Chaque article doit référencer un produit"
		}
		if item.Quantity < 1 {
			return "La quantité doit être d'au moins 1"
		}
	}
	a := in.ShippingAddress
	if a.FirstName == "" || a.LastName == "" || a.Address == "" || a.City == "" || a.ZipCode == "" {
		return "Adresse de livraison incomplète"
	}
	if in.PaymentInfo.Method == "" {
		return "Moyen de paiement manquant"
	}
	return ""
}

// POST /api/orders
//
// Le détail de prix est recalculé côté serveur depuis les lignes soumises ;
// les totaux éventuellement fournis par le client sont ignorés.
//
// Le débit de stock et l'insertion de la commande ne sont pas atomiques :
// deux commandes simultanées sur le même produit peuvent se perdre une mise à
// jour, et un échec d'insertion laisse le stock déjà débité (pas de rollback).
func CreateOrder(c *gin.Context) {
	var in createOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := in.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	debitStock(in.OrderItems, product.GetByID, product.Persist)

	now := time.Now()
	o := models.Order{
		ID:              gocql.TimeUUID(),
		UserID:          in.UserID,
		Items:           in.OrderItems,
		ShippingAddress: in.ShippingAddress,
		PaymentInfo:     in.PaymentInfo,
		Prices:          pricing.Compute(in.OrderItems),
		Status:          models.OrderPending,
		ShippingStatus:  models.ShippingNotShipped,
		CreatedAt:       now,
	}
	if o.ShippingAddress.Country == "" {
		o.ShippingAddress.Country = "USA"
	}
	if in.PaymentInfo.Status == models.PaymentCompleted {
		o.IsPaid = true
		o.PaidAt = &now
	}

	if err := persistOrder(o); err != nil {
		// Le stock déjà débité reste débité (défaut assumé, voir DESIGN.md)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande: " + err.Error()})
		return
	}

	go sendConfirmation(o)

	c.JSON(http.StatusCreated, o)
}

// debitStock débite le stock et crédite le compteur de ventes pour chaque
// ligne dont le produit existe encore au catalogue, statut re-dérivé.
// Pas de vérification de stock suffisant (le stock peut passer négatif),
// pas de rollback en cas d'échec partiel.
func debitStock(items []models.OrderItem,
	getByID func(string) (models.Product, bool, error),
	persist func(*models.Product) error) {
	for _, item := range items {
		p, found, err := getByID(item.ProductID)
		if err != nil || !found {
			continue
		}
		p.Stock -= item.Quantity
		p.Sales += item.Quantity
		p.DeriveStatus()
		if err := persist(&p); err != nil {
			log.Printf("⚠️ Erreur mise à jour stock produit %s: %v", item.ProductID, err)
		}
	}
}

// sendConfirmation envoie l'e-mail de confirmation avec facture PDF, en best-effort.
func sendConfirmation(o models.Order) {
	if o.UserID == "" {
		return
	}
	user, err := cache.GetUserFromCache(o.UserID)
	if err != nil || user.Email == "" {
		return
	}

	var pdf []byte
	qr := ""
	if o.TrackingNumber != "" {
		qr, _ = utils.GenerateTrackingQR(o.TrackingNumber)
	}
	if rendered, err := utils.RenderInvoicePDF(utils.GenerateInvoiceHTML(o, user.Name, qr)); err == nil {
		pdf = rendered
	} else {
		log.Printf("⚠️ Facture PDF non générée pour %s: %v", o.ID, err)
	}

	html := utils.GenerateOrderConfirmationHTML(o, user.Name)
	if err := utils.SendConfirmationEmail(user.Email, "Confirmation de votre commande NovaShop", html, pdf); err != nil {
		log.Printf("⚠️ E-mail de confirmation non envoyé à %s: %v", user.Email, err)
	}
}

// GET /api/orders/myorders/:userId — commandes d'un utilisateur, plus récentes d'abord
func GetMyOrders(c *gin.Context) {
	userID := c.Param("userId")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Note: nécessite un scan filtré ; un index orders_by_user serait préférable
	// à terme si le volume le justifie.
	iter := session.Query(`SELECT `+selectOrderColumns+` FROM orders WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	orders, err := collectOrders(iter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes: " + err.Error()})
		return
	}
	sortNewestFirst(orders)

	// Enrichit les lignes avec le nom/image actuels du produit quand il existe encore
	for i := range orders {
		for j := range orders[i].Items {
			if p, found, err := product.GetByID(orders[i].Items[j].ProductID); err == nil && found {
				orders[i].Items[j].Name = p.Name
				if len(p.Images) > 0 {
					orders[i].Items[j].Image = p.Images[0]
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id — commande avec utilisateur peuplé
func GetOrderByID(c *gin.Context) {
	o, found, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if user, err := cache.GetUserFromCache(o.UserID); err == nil {
		o.User = user.Summary()
	}

	c.JSON(http.StatusOK, o)
}

// PUT /api/orders/:id/status (admin)
//
// Écrase le statut sans contrôler la transition depuis l'état courant
// (comportement volontairement permissif, voir DESIGN.md).
func UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"trackingNumber"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide: " + input.Status})
		return
	}

	o, found, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	o.ApplyStatus(input.Status, input.TrackingNumber, time.Now())

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	err = session.Query(`UPDATE orders SET status = ?, shipping_status = ?, tracking_number = ?,
			delivered_at = ? WHERE order_id = ?`,
		o.Status, o.ShippingStatus, o.TrackingNumber, o.DeliveredAt, o.ID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, o)
}

// GET /api/orders (admin) — toutes les commandes, plus récentes d'abord
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + selectOrderColumns + ` FROM orders`).Iter()
	orders, err := collectOrders(iter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes: " + err.Error()})
		return
	}
	sortNewestFirst(orders)

	for i := range orders {
		if user, err := cache.GetUserFromCache(orders[i].UserID); err == nil {
			orders[i].User = user.Summary()
		}
	}

	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/stats/summary (admin)
func GetOrderStats(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + selectOrderColumns + ` FROM orders`).Iter()
	orders, err := collectOrders(iter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes: " + err.Error()})
		return
	}

	totalRevenue := 0.0
	for _, o := range orders {
		if o.IsPaid {
			totalRevenue += o.Prices.TotalPrice
		}
	}

	sortNewestFirst(orders)
	recent := orders
	if len(recent) > 5 {
		recent = recent[:5]
	}
	for i := range recent {
		if user, err := cache.GetUserFromCache(recent[i].UserID); err == nil {
			recent[i].User = &models.UserSummary{ID: user.ID, Name: user.Name}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalOrders":  len(orders),
		"totalRevenue": totalRevenue,
		"recentOrders": recent,
	})
}

// GET /api/orders/:id/invoice — facture PDF (propriétaire ou admin)
func GetOrderInvoice(c *gin.Context) {
	o, found, err := loadOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if c.GetString("role") != models.RoleAdmin && c.GetString("user_id") != o.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Commande d'un autre utilisateur"})
		return
	}

	userName := ""
	if user, err := cache.GetUserFromCache(o.UserID); err == nil {
		userName = user.Name
	}

	qr := ""
	if o.TrackingNumber != "" {
		qr, _ = utils.GenerateTrackingQR(o.TrackingNumber)
	}

	pdf, err := utils.RenderInvoicePDF(utils.GenerateInvoiceHTML(o, userName, qr))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération facture: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="facture_`+o.ID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
