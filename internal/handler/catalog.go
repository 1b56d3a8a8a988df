package handler

import (
	"net/http"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/draw"
	"github.com/zhaomaota/word-stone/internal/session"
)

// CatalogResponse describes the loaded vocabulary
type CatalogResponse struct {
	Stats      domain.LoadStats          `json:"stats"`
	Counts     map[domain.Rarity]int     `json:"counts"`
	Weights    map[domain.Rarity]float64 `json:"weights"`
	TotalWords int                       `json:"totalWords"`
	Fallback   bool                      `json:"fallback"`
}

// HandleGetCatalog reports load stats, per-rarity counts and draw weights
func HandleGetCatalog(state session.CatalogState) http.HandlerFunc {
	counts := make(map[domain.Rarity]int, len(domain.RarityOrder))
	for _, r := range domain.RarityOrder {
		counts[r] = len(state.Catalog[r])
	}
	resp := CatalogResponse{
		Stats:      state.Stats,
		Counts:     counts,
		Weights:    draw.Weights(state.Catalog),
		TotalWords: state.Catalog.TotalWords(),
		Fallback:   state.LoadErr != nil,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}
