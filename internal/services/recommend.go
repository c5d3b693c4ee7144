package services

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"novashop_back_end/internal/models"
)

// Libellés affichés avec les scores synthétiques
const (
	ReasonHistory  = "Based on your browsing history"
	ReasonTrending = "Trending now"
)

// Scorer produit les scores "IA" synthétiques. C'est un générateur
// pseudo-aléatoire seedé, pas un modèle : le score ne mesure rien.
// Les handlers utilisent un seed horloge, les tests un seed fixe.
type Scorer struct {
	rng *rand.Rand
}

func NewScorer(seed int64) *Scorer {
	return &Scorer{rng: rand.New(rand.NewSource(seed))}
}

func NewTimeScorer() *Scorer {
	return NewScorer(time.Now().UnixNano())
}

// HistoryScore : score de correspondance dans [85, 100)
func (s *Scorer) HistoryScore() int { return s.rng.Intn(15) + 85 }

// TrendingScore : score de repli dans [70, 90)
func (s *Scorer) TrendingScore() int { return s.rng.Intn(20) + 70 }

// Confidence : pourcentage affiché dans [85, 95)
func (s *Scorer) Confidence() int { return s.rng.Intn(10) + 85 }

// DataPoints : volumétrie fictive dans [2000, 3000)
func (s *Scorer) DataPoints() int { return s.rng.Intn(1000) + 2000 }

func (s *Scorer) Stats(now time.Time) models.AIStats {
	return models.AIStats{
		Confidence:  s.Confidence(),
		DataPoints:  s.DataPoints(),
		LastUpdated: now,
	}
}

// HistoryProfile résume l'historique d'un utilisateur : catégories vues,
// bande de prix observée, produits déjà consultés (exclus des résultats).
type HistoryProfile struct {
	Categories map[string]bool
	MinPrice   float64
	MaxPrice   float64
	Viewed     map[string]bool
}

func (p HistoryProfile) Empty() bool {
	return len(p.Categories) == 0
}

// BuildHistoryProfile dérive le profil depuis les historiques de navigation et
// d'achat. byID résout les références produit ; les entrées orphelines
// (produit supprimé) sont ignorées.
func BuildHistoryProfile(browsing []models.BrowsingEntry, purchases []models.PurchaseEntry, byID map[string]models.Product) HistoryProfile {
	profile := HistoryProfile{
		Categories: make(map[string]bool),
		Viewed:     make(map[string]bool),
	}

	first := true
	for _, entry := range browsing {
		product, ok := byID[entry.ProductID]
		if !ok {
			continue
		}
		profile.Categories[product.Category] = true
		profile.Viewed[entry.ProductID] = true
		if first || product.Price < profile.MinPrice {
			profile.MinPrice = product.Price
		}
		if first || product.Price > profile.MaxPrice {
			profile.MaxPrice = product.Price
		}
		first = false
	}

	// L'historique d'achat n'élargit que les catégories, pas la bande de prix
	for _, entry := range purchases {
		if product, ok := byID[entry.ProductID]; ok {
			profile.Categories[product.Category] = true
		}
	}

	return profile
}

// FilterCandidates retient les produits actifs des catégories du profil,
// dans [0.5×min, 1.5×max], hors produits déjà vus, plafonné à 2×limit.
func FilterCandidates(products []models.Product, profile HistoryProfile, limit int) []models.Product {
	var candidates []models.Product
	for _, p := range products {
		if p.Status != models.ProductActive {
			continue
		}
		if !profile.Categories[p.Category] {
			continue
		}
		if profile.Viewed[p.ID.String()] {
			continue
		}
		if p.Price < profile.MinPrice*0.5 || p.Price > profile.MaxPrice*1.5 {
			continue
		}
		candidates = append(candidates, p)
		if len(candidates) >= limit*2 {
			break
		}
	}
	return candidates
}

// Recommend assemble la liste finale : candidats issus de l'historique notés
// dans [85,100) et triés par ce score (du bruit, volontairement), complétés
// par les meilleures ventes notées dans [70,90).
func Recommend(products []models.Product, profile HistoryProfile, limit int, scorer *Scorer) []models.Recommendation {
	var recs []models.Recommendation

	if !profile.Empty() {
		for _, p := range FilterCandidates(products, profile, limit) {
			recs = append(recs, models.Recommendation{
				Product:    p,
				MatchScore: scorer.HistoryScore(),
				Reason:     ReasonHistory,
			})
		}
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].MatchScore > recs[j].MatchScore
		})
		if len(recs) > limit {
			recs = recs[:limit]
		}
	}

	if len(recs) < limit {
		recs = append(recs, fillTrending(products, recs, limit-len(recs), scorer)...)
	}

	return recs
}

// fillTrending complète avec les meilleures ventes actives (ventes desc,
// note desc), hors produits déjà recommandés.
func fillTrending(products []models.Product, existing []models.Recommendation, n int, scorer *Scorer) []models.Recommendation {
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.ID.String()] = true
	}

	var trending []models.Product
	for _, p := range products {
		if p.Status == models.ProductActive && !seen[p.ID.String()] {
			trending = append(trending, p)
		}
	}
	SortTrending(trending)

	if len(trending) > n {
		trending = trending[:n]
	}

	recs := make([]models.Recommendation, 0, len(trending))
	for _, p := range trending {
		recs = append(recs, models.Recommendation{
			Product:    p,
			MatchScore: scorer.TrendingScore(),
			Reason:     ReasonTrending,
		})
	}
	return recs
}

// SortTrending trie par ventes décroissantes puis note décroissante.
func SortTrending(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Sales != products[j].Sales {
			return products[i].Sales > products[j].Sales
		}
		return products[i].Rating > products[j].Rating
	})
}

// Similar : produits actifs de la même catégorie, prix dans [0.5×, 1.5×] du
// produit de référence, hors lui-même, plafonné à max. Déterministe.
func Similar(products []models.Product, target models.Product, max int) []models.Product {
	var similar []models.Product
	for _, p := range products {
		if p.ID == target.ID {
			continue
		}
		if p.Status != models.ProductActive || p.Category != target.Category {
			continue
		}
		if p.Price < target.Price*0.5 || p.Price > target.Price*1.5 {
			continue
		}
		similar = append(similar, p)
		if len(similar) >= max {
			break
		}
	}
	return similar
}

// SubstringSearch est le repli quand la recherche plein-texte ne renvoie
// rien : correspondance insensible à la casse sur nom/description/tags,
// produits actifs uniquement.
func SubstringSearch(products []models.Product, query string, max int) []models.Product {
	q := strings.ToLower(query)

	var results []models.Product
	for _, p := range products {
		if p.Status != models.ProductActive {
			continue
		}
		if matchesQuery(p, q) {
			results = append(results, p)
			if len(results) >= max {
				break
			}
		}
	}
	return results
}

func matchesQuery(p models.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Suggestions : expansions de requête fixes, renvoyées quelle que soit la
// pertinence réelle des résultats.
func Suggestions(query string) []string {
	return []string{
		query + " premium",
		query + " luxury",
		"best " + query,
		query + " sale",
	}
}
