package handler

import "net/http"

// PackRequest names the pack type; empty means the default type
type PackRequest struct {
	PackType string `json:"packType" validate:"packtype"`
}

// ClaimResponse lists pack counts after a claim
type ClaimResponse struct {
	Packs map[string]int `json:"packs"`
}

// HandleClaimPacks grants packs
func HandleClaimPacks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim packs"); err != nil {
			return
		}

		packs, err := SessionFromContext(r.Context()).ClaimPacks(r.Context(), req.PackType)
		if err != nil {
			respondServiceError(w, r, "claim packs", err)
			return
		}
		respondJSON(w, http.StatusOK, ClaimResponse{Packs: packs})
	}
}

// HandleOpenPack opens one pack
func HandleOpenPack() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open pack"); err != nil {
			return
		}

		res, err := SessionFromContext(r.Context()).OpenPack(r.Context(), req.PackType)
		if err != nil {
			respondServiceError(w, r, "open pack", err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}
