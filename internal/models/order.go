package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande (aucun graphe de transitions imposé, voir UpdateOrderStatus)
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// Statuts d'expédition, distincts du statut global de la commande
const (
	ShippingNotShipped = "not_shipped"
	ShippingShipped    = "shipped"
	ShippingInTransit  = "in_transit"
	ShippingDelivered  = "delivered"
)

const PaymentCompleted = "completed"

// OrderItem est un instantané du produit au moment de la commande :
// volontairement découplé de l'état courant du catalogue.
type OrderItem struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

type PaymentInfo struct {
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transactionId,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

// Prices est le détail de prix dérivé : totalPrice = itemsPrice + shippingPrice + taxPrice,
// chaque montant arrondi à 2 décimales.
type Prices struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// UserSummary est la projection renvoyée quand une commande est "peuplée" avec son utilisateur.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Order struct {
	ID              gocql.UUID      `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo"`
	Prices          Prices          `json:"prices"`
	Status          string          `json:"status"`
	ShippingStatus  string          `json:"shippingStatus"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`

	User *UserSummary `json:"user,omitempty"`
}

var orderStatuses = map[string]bool{
	OrderPending:    true,
	OrderProcessing: true,
	OrderShipped:    true,
	OrderDelivered:  true,
	OrderCancelled:  true,
	OrderRefunded:   true,
}

func ValidOrderStatus(status string) bool {
	return orderStatuses[status]
}

// ApplyStatus écrase le statut sans vérifier la transition depuis l'état courant
// (comportement assumé, voir DESIGN.md). Le passage à "delivered" horodate la
// livraison et aligne le statut d'expédition.
func (o *Order) ApplyStatus(status, trackingNumber string, now time.Time) {
	o.Status = status
	if trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
	if status == OrderDelivered {
		o.DeliveredAt = &now
		o.ShippingStatus = ShippingDelivered
	}
}
