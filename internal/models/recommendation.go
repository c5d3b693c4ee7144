package models

import "time"

// Recommendation : produit + métadonnées synthétiques d'affichage.
// matchScore n'est jamais persisté et ne porte aucune garantie de pertinence.
type Recommendation struct {
	Product
	MatchScore int    `json:"matchScore"`
	Reason     string `json:"reason"`
}

// AIStats : chiffres purement cosmétiques renvoyés avec les recommandations.
type AIStats struct {
	Confidence  int       `json:"confidence"`
	DataPoints  int       `json:"dataPoints"`
	LastUpdated time.Time `json:"lastUpdated"`
}
