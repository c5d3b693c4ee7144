package user

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"novashop_back_end/internal/cache"
	"novashop_back_end/internal/database"
	"novashop_back_end/internal/handlers/product"
	"novashop_back_end/internal/models"
	"novashop_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

// POST /api/users/register
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email et password sont obligatoires"})
		return
	}
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le mot de passe doit faire au moins 6 caractères"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// email déjà pris ?
	var existingID gocql.UUID
	if err := database.GetPreparedGetUserIDByEmail().Bind(input.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hash mot de passe"})
		return
	}

	now := time.Now()
	userID := gocql.UUID(uuid.New())

	err = session.Query(`INSERT INTO users (user_id, name, email, password, role, avatar, phone,
			address, preferences, browsing_history, purchase_history, wishlist, is_active,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, input.Name, input.Email, hashed, models.RoleUser, "", "",
		"{}", "{}", "[]", "[]", []string{}, true, now, now).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur: " + err.Error()})
		return
	}

	if err := database.GetPreparedInsertUserByEmail().Bind(input.Email, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur indexation email: " + err.Error()})
		return
	}

	user := models.User{ID: userID.String(), Name: input.Name, Email: input.Email, Role: models.RoleUser}
	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"token": token,
	})
}

// POST /api/users/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID gocql.UUID
	if err := database.GetPreparedGetUserIDByEmail().Bind(input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	user, err := cache.LoadUser(userID.String())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"token": token,
	})
}

// ================== PROFIL ==================

// GET /api/users/profile — wishlist peuplée avec les fiches produit
func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	user.Password = ""

	var wishlist []models.Product
	for _, pid := range user.Wishlist {
		if p, found, err := product.GetByID(pid); err == nil && found {
			wishlist = append(wishlist, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"wishlist": wishlist,
	})
}

// PUT /api/users/preferences
func UpdatePreferences(c *gin.Context) {
	userID := c.GetString("user_id")

	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := updateUserJSONColumn(userID, "preferences", prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour préférences: " + err.Error()})
		return
	}

	cache.InvalidateUserCache(userID)
	c.JSON(http.StatusOK, prefs)
}

// POST /api/users/history — ajoute une consultation à l'historique
func AddBrowsingHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId"`
		TimeSpent int    `json:"timeSpent"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId obligatoire"})
		return
	}

	user, err := cache.LoadUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	user.BrowsingHistory = append(user.BrowsingHistory, models.BrowsingEntry{
		ProductID: input.ProductID,
		ViewedAt:  time.Now(),
		TimeSpent: input.TimeSpent,
	})

	if err := updateUserJSONColumn(userID, "browsing_history", user.BrowsingHistory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour historique: " + err.Error()})
		return
	}

	cache.InvalidateUserCache(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Historique mis à jour"})
}

// ================== WISHLIST ==================

// POST /api/users/wishlist/:productId
func AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	if _, found, err := product.GetByID(productID); err != nil || !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	user, err := cache.LoadUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	for _, pid := range user.Wishlist {
		if pid == productID {
			c.JSON(http.StatusOK, gin.H{"wishlist": user.Wishlist})
			return
		}
	}
	user.Wishlist = append(user.Wishlist, productID)

	if err := updateWishlist(userID, user.Wishlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour wishlist: " + err.Error()})
		return
	}

	cache.InvalidateUserCache(userID)
	c.JSON(http.StatusOK, gin.H{"wishlist": user.Wishlist})
}

// DELETE /api/users/wishlist/:productId
func RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	user, err := cache.LoadUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	newWishlist := make([]string, 0, len(user.Wishlist))
	for _, pid := range user.Wishlist {
		if pid != productID {
			newWishlist = append(newWishlist, pid)
		}
	}

	if err := updateWishlist(userID, newWishlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour wishlist: " + err.Error()})
		return
	}

	cache.InvalidateUserCache(userID)
	c.JSON(http.StatusOK, gin.H{"wishlist": newWishlist})
}

// ================== ADMIN ==================

// GET /api/users (admin) — le hash de mot de passe n'est jamais sérialisé
func GetUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT user_id, name, email, role, is_active, created_at FROM users`).Iter()

	var users []models.User
	var (
		uid       gocql.UUID
		u         models.User
		createdAt time.Time
	)
	for iter.Scan(&uid, &u.Name, &u.Email, &u.Role, &u.IsActive, &createdAt) {
		u.ID = uid.String()
		u.CreatedAt = createdAt
		users = append(users, u)
		u = models.User{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// ================== HELPERS ==================

func updateUserJSONColumn(userID, column string, value interface{}) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return session.Query("UPDATE users SET "+column+" = ?, updated_at = ? WHERE user_id = ?",
		string(data), time.Now(), gocql.UUID(uid)).Exec()
}

func updateWishlist(userID string, wishlist []string) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	return session.Query("UPDATE users SET wishlist = ?, updated_at = ? WHERE user_id = ?",
		wishlist, time.Now(), gocql.UUID(uid)).Exec()
}
