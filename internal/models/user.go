package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type NotificationPrefs struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

type Preferences struct {
	Categories    []string          `json:"categories,omitempty"`
	PriceRange    *PriceRange       `json:"priceRange,omitempty"`
	Notifications NotificationPrefs `json:"notifications"`
}

// BrowsingEntry : consultation d'une fiche produit (durée en secondes)
type BrowsingEntry struct {
	ProductID string    `json:"product"`
	ViewedAt  time.Time `json:"viewedAt"`
	TimeSpent int       `json:"timeSpent,omitempty"`
}

// PurchaseEntry est enregistrée indépendamment des commandes : les deux
// historiques peuvent diverger, aucun invariant ne les lie.
type PurchaseEntry struct {
	ProductID    string    `json:"product"`
	Quantity     int       `json:"quantity"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

type User struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Password        string          `json:"-"`
	Role            string          `json:"role"`
	Avatar          string          `json:"avatar,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Address         Address         `json:"address"`
	Preferences     Preferences     `json:"preferences"`
	BrowsingHistory []BrowsingEntry `json:"browsingHistory,omitempty"`
	PurchaseHistory []PurchaseEntry `json:"purchaseHistory,omitempty"`
	Wishlist        []string        `json:"wishlist,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
