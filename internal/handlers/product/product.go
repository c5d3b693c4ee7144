package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"novashop_back_end/internal/cache"
	"novashop_back_end/internal/database"
	"novashop_back_end/internal/models"
	"novashop_back_end/internal/services"
)

const selectProductColumns = `product_id, name, description, price, original_price, images, category,
	stock, rating, reviews, features, specifications, status, sales, tags, created_at, updated_at`

// productScanArgs aligne les destinations sur selectProductColumns
func productScanArgs(p *models.Product) []interface{} {
	return []interface{}{&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Images,
		&p.Category, &p.Stock, &p.Rating, &p.Reviews, &p.Features, &p.Specifications,
		&p.Status, &p.Sales, &p.Tags, &p.CreatedAt, &p.UpdatedAt}
}

// AllProducts retourne le catalogue complet, via le cache Redis quand il est chaud.
func AllProducts(ctx context.Context) ([]models.Product, error) {
	if val, err := database.Redis.Get(ctx, cache.ProductsCacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + selectProductColumns + ` FROM products`).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(productScanArgs(&p)...) {
		products = append(products, p)
		p = models.Product{} // Reset pour la prochaine itération
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, cache.ProductsCacheKey, data, cache.ProductsCacheTTL)
	}

	return products, nil
}

// GetByID charge un seul produit ; found=false si absent.
func GetByID(productID string) (models.Product, bool, error) {
	var p models.Product

	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		return p, false, nil
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return p, false, err
	}

	q := session.Query(`SELECT `+selectProductColumns+` FROM products WHERE product_id = ?`, pid)
	if err := q.Scan(productScanArgs(&p)...); err != nil {
		if err == gocql.ErrNotFound {
			return p, false, nil
		}
		return p, false, err
	}
	return p, true, nil
}

// Persist écrit le produit (insert et update partagent la même requête),
// après recalcul du statut dérivé du stock.
func Persist(p *models.Product) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	p.DeriveStatus()
	p.UpdatedAt = time.Now()

	err = session.Query(`INSERT INTO products (product_id, name, description, price, original_price,
			images, category, stock, rating, reviews, features, specifications, status, sales, tags,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Images, p.Category, p.Stock,
		p.Rating, p.Reviews, p.Features, p.Specifications, p.Status, p.Sales, p.Tags,
		p.CreatedAt, p.UpdatedAt).Exec()
	if err != nil {
		return err
	}

	cache.InvalidateProductsCache()
	return nil
}

// GET /api/products
func GetProducts(c *gin.Context) {
	products, err := AllProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	filters := ListFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filters.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filters.MaxPrice = &v
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	filtered := FilterForListing(products, filters)
	items, totalPages, total := Paginate(filtered, page, limit)

	c.JSON(http.StatusOK, gin.H{
		"products":    items,
		"totalPages":  totalPages,
		"currentPage": page,
		"total":       total,
	})
}

// GET /api/products/:id
func GetProduct(c *gin.Context) {
	p, found, err := GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type productInput struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          *float64          `json:"price"`
	OriginalPrice  *float64          `json:"originalPrice"`
	Images         []string          `json:"images"`
	Category       string            `json:"category"`
	Stock          *int              `json:"stock"`
	Rating         *float64          `json:"rating"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Tags           []string          `json:"tags"`
}

// validation explicite à la frontière, avant toute mutation
func (in productInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("le champ 'name' est obligatoire")
	}
	if in.Description == "" {
		return fmt.Errorf("le champ 'description' est obligatoire")
	}
	if in.Price == nil || *in.Price < 0 {
		return fmt.Errorf("le champ 'price' est obligatoire et doit être ≥ 0")
	}
	if in.OriginalPrice != nil && *in.OriginalPrice < 0 {
		return fmt.Errorf("'originalPrice' doit être ≥ 0")
	}
	if !models.ValidCategory(in.Category) {
		return fmt.Errorf("catégorie invalide: %q", in.Category)
	}
	if in.Stock == nil || *in.Stock < 0 {
		return fmt.Errorf("le champ 'stock' est obligatoire et doit être ≥ 0")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5) {
		return fmt.Errorf("'rating' doit être entre 0 et 5")
	}
	return nil
}

// POST /api/products (admin)
func CreateProduct(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := in.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := models.Product{
		ID:             gocql.TimeUUID(),
		Name:           in.Name,
		Description:    in.Description,
		Price:          *in.Price,
		OriginalPrice:  in.OriginalPrice,
		Images:         in.Images,
		Category:       in.Category,
		Stock:          *in.Stock,
		Features:       in.Features,
		Specifications: in.Specifications,
		Tags:           in.Tags,
		CreatedAt:      time.Now(),
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}

	// Génère une URL MinIO par défaut si aucune image fournie
	if len(p.Images) == 0 {
		p.Images = []string{services.DefaultImageURL(p.Name)}
	}

	if err := Persist(&p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// 🔄 Indexation Elasticsearch en arrière-plan
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

// PUT /api/products/:id (admin) — mise à jour partielle
func UpdateProduct(c *gin.Context) {
	p, found, err := GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'price' doit être ≥ 0"})
			return
		}
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = in.OriginalPrice
	}
	if in.Category != "" {
		if !models.ValidCategory(in.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "catégorie invalide: " + in.Category})
			return
		}
		p.Category = in.Category
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'stock' doit être ≥ 0"})
			return
		}
		p.Stock = *in.Stock
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'rating' doit être entre 0 et 5"})
			return
		}
		p.Rating = *in.Rating
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Features != nil {
		p.Features = in.Features
	}
	if in.Specifications != nil {
		p.Specifications = in.Specifications
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}

	if err := Persist(&p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit: " + err.Error()})
		return
	}

	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// DELETE /api/products/:id (admin)
func DeleteProduct(c *gin.Context) {
	p, found, err := GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit: " + err.Error()})
		return
	}

	cache.InvalidateProductsCache()
	go services.RemoveProductFromIndex(p.ID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// GET /api/products/featured — top 8 des ventes parmi les produits actifs
func GetFeaturedProducts(c *gin.Context) {
	products, err := AllProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	var active []models.Product
	for _, p := range products {
		if p.Status == models.ProductActive {
			active = append(active, p)
		}
	}
	SortProducts(active, "") // ventes décroissantes

	if len(active) > 8 {
		active = active[:8]
	}
	c.JSON(http.StatusOK, active)
}

// GET /api/products/categories — catégories distinctes du catalogue
func GetCategories(c *gin.Context) {
	products, err := AllProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	c.JSON(http.StatusOK, categories)
}

// GET /api/products/:id/image-url — URL signée temporaire vers la première image
func GetImageURL(c *gin.Context) {
	p, found, err := GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if !found || len(p.Images) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune image pour ce produit"})
		return
	}

	signedURL, err := services.GenerateSignedURL(c.Request.Context(), p.Images[0], 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération URL signée: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": signedURL})
}

// POST /api/products/:id/image (admin, multipart)
func UploadImage(c *gin.Context) {
	p, found, err := GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fichier 'image' manquant"})
		return
	}

	imageURL, err := services.UploadProductImage(c.Request.Context(), p.ID.String(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image: " + err.Error()})
		return
	}

	p.Images = append(p.Images, imageURL)
	if err := Persist(&p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL, "images": p.Images})
}
