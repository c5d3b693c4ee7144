package product

import (
	"sort"
	"strings"

	"novashop_back_end/internal/models"
)

// ListFilters : critères du listing catalogue (GET /api/products)
type ListFilters struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

// FilterForListing applique les critères en mémoire. Seuls les produits
// vendables (active / low_stock) sont listés.
// Note: ScyllaDB ne supporte pas ces filtres ad hoc côté serveur ; le scan
// complet est amorti par le cache Redis de la liste.
func FilterForListing(products []models.Product, f ListFilters) []models.Product {
	search := strings.ToLower(f.Search)

	var out []models.Product
	for _, p := range products {
		if p.Status != models.ProductActive && p.Status != models.ProductLowStock {
			continue
		}
		if f.Category != "" && f.Category != "All" && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}

	SortProducts(out, f.Sort)
	return out
}

func matchesSearch(p models.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// SortProducts trie selon l'option du listing ; défaut = meilleures ventes.
func SortProducts(products []models.Product, sortOption string) {
	switch sortOption {
	case "price_asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price_desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case "rating":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	case "newest":
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	default:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Sales > products[j].Sales })
	}
}

// Paginate découpe la liste filtrée ; page commence à 1.
func Paginate(products []models.Product, page, limit int) (items []models.Product, totalPages, total int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}

	total = len(products)
	totalPages = (total + limit - 1) / limit

	start := (page - 1) * limit
	if start >= total {
		return []models.Product{}, totalPages, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return products[start:end], totalPages, total
}
