package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"novashop_back_end/internal/database"
	"novashop_back_end/internal/models"
)

const (
	UserCacheTTL     = 5 * time.Minute
	ProductsCacheTTL = 10 * time.Minute

	ProductsCacheKey = "products:all"
)

// LoadUser lit un utilisateur dans ScyllaDB, historiques JSON décodés.
func LoadUser(userID string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	var (
		user                        models.User
		addressJSON, prefsJSON      string
		browsingJSON, purchasesJSON string
		createdAt, updatedAt        time.Time
	)

	err = session.Query(`SELECT name, email, password, role, avatar, phone, address, preferences,
			browsing_history, purchase_history, wishlist, is_active, created_at, updated_at
		FROM users WHERE user_id = ?`, gocql.UUID(uid)).Scan(
		&user.Name, &user.Email, &user.Password, &user.Role, &user.Avatar, &user.Phone,
		&addressJSON, &prefsJSON, &browsingJSON, &purchasesJSON,
		&user.Wishlist, &user.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	user.ID = userID
	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	if addressJSON != "" {
		_ = json.Unmarshal([]byte(addressJSON), &user.Address)
	}
	if prefsJSON != "" {
		_ = json.Unmarshal([]byte(prefsJSON), &user.Preferences)
	}
	if browsingJSON != "" {
		_ = json.Unmarshal([]byte(browsingJSON), &user.BrowsingHistory)
	}
	if purchasesJSON != "" {
		_ = json.Unmarshal([]byte(purchasesJSON), &user.PurchaseHistory)
	}

	return &user, nil
}

// GetUserFromCache récupère un utilisateur depuis Redis ou ScyllaDB
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	user, err := LoadUser(userID)
	if err != nil {
		return nil, err
	}

	// Le hash de mot de passe ne transite jamais par le cache
	cached := *user
	cached.Password = ""
	if jsonData, err := json.Marshal(cached); err == nil {
		database.Redis.Set(ctx, key, jsonData, UserCacheTTL)
	}

	return user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur
func InvalidateUserCache(userID string) {
	database.Redis.Del(context.Background(), "user:"+userID)
}

// InvalidateProductsCache invalide la liste de produits mise en cache
func InvalidateProductsCache() {
	database.Redis.Del(context.Background(), ProductsCacheKey)
}
