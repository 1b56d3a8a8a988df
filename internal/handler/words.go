package handler

import (
	"net/http"
	"strconv"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/inventory"
)

// InventoryResponse lists inventory entries
type InventoryResponse struct {
	Words []domain.InventoryEntry `json:"words"`
	Total int                     `json:"total"`
}

// FavoriteRequest stars or unstars a word
type FavoriteRequest struct {
	Word        string `json:"word" validate:"required,max=64"`
	IsFavorited bool   `json:"isFavorited"`
}

// UnlockAllResponse reports how many words were granted
type UnlockAllResponse struct {
	Added int `json:"added"`
}

// HandleGetInventory lists the inventory, optionally filtered
func HandleGetInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f inventory.Filter
		f.Search = r.URL.Query().Get("search")

		if raw := r.URL.Query().Get("rarity"); raw != "" {
			rarity, ok := domain.ParseRarity(raw)
			if !ok {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRarity)
				return
			}
			f.Rarity = rarity
		}
		if raw := r.URL.Query().Get("favorites"); raw != "" {
			favs, err := strconv.ParseBool(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidFavorites)
				return
			}
			f.FavoritesOnly = favs
		}

		s := SessionFromContext(r.Context())
		words := s.QueryInventory(f)
		respondJSON(w, http.StatusOK, InventoryResponse{Words: words, Total: s.Inventory().Len()})
	}
}

// HandleToggleFavorite stars or unstars an owned word
func HandleToggleFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FavoriteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Toggle favorite"); err != nil {
			return
		}

		entry, err := SessionFromContext(r.Context()).ToggleFavorite(r.Context(), req.Word, req.IsFavorited)
		if err != nil {
			respondServiceError(w, r, "toggle favorite", err)
			return
		}
		respondJSON(w, http.StatusOK, entry)
	}
}

// HandleUnlockAll grants every catalog word when cheats are enabled
func HandleUnlockAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		added, err := SessionFromContext(r.Context()).UnlockAll(r.Context())
		if err != nil {
			respondServiceError(w, r, "unlock all", err)
			return
		}
		respondJSON(w, http.StatusOK, UnlockAllResponse{Added: added})
	}
}

// HandleAutocomplete suggests owned words completing the last token
func HandleAutocomplete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		words := s.Autocomplete(r.URL.Query().Get("input"))
		respondJSON(w, http.StatusOK, InventoryResponse{Words: words, Total: len(words)})
	}
}
