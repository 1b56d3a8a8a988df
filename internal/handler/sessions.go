package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/session"
)

// LoginRequest is the body of POST /sessions
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64,excludesall=/\\<>"`
	Token    string `json:"token" validate:"max=4096"`
	Nickname string `json:"nickname" validate:"max=64"`
}

// LoginResponse carries the token to use on every session route
type LoginResponse struct {
	Token   string           `json:"token"`
	Session session.Snapshot `json:"session"`
}

// HandleLogin opens a session
func HandleLogin(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		s, err := sessions.Login(r.Context(), session.LoginRequest{
			Username: req.Username,
			Token:    req.Token,
			Nickname: req.Nickname,
		})
		if err != nil {
			respondServiceError(w, r, "login", err)
			return
		}

		respondJSON(w, http.StatusCreated, LoginResponse{Token: s.Token(), Session: s.Snapshot()})
	}
}

// HandleGetSession returns the session snapshot
func HandleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, SessionFromContext(r.Context()).Snapshot())
	}
}

// HandleLogout closes the session and forgets its credentials
func HandleLogout(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Logout(r.Context(), chi.URLParam(r, URLParamUsername)); err != nil {
			respondServiceError(w, r, "logout", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLoggedOut})
	}
}

// HandleResync reconciles the session with the ledger
func HandleResync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if err := s.Resync(r.Context()); err != nil {
			respondServiceError(w, r, "resync", err)
			return
		}
		respondJSON(w, http.StatusOK, s.Snapshot())
	}
}

// UpdateProfileRequest is the body of PATCH /sessions/{username}/profile.
// Omitted fields are left unchanged; an empty avatar clears it.
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname" validate:"omitempty,max=64"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=524288"`
}

// HandleUpdateProfile edits the nickname or avatar
func HandleUpdateProfile(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateProfileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "UpdateProfile"); err != nil {
			return
		}

		s := SessionFromContext(r.Context())
		profile, err := sessions.UpdateProfile(r.Context(), s.Username(), ledger.ProfileUpdate{
			Nickname: req.Nickname,
			Avatar:   req.Avatar,
		})
		if err != nil {
			respondServiceError(w, r, "update profile", err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}
