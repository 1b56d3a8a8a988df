package handler

import (
	"net/http"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// SendMessageRequest is one chat line
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// SendRoseRequest endorses another user's message
type SendRoseRequest struct {
	TargetUsername string `json:"targetUsername" validate:"required,max=64"`
	MessageID      string `json:"messageId" validate:"required,max=128"`
}

// ChatResponse is the tail of the chat log
type ChatResponse struct {
	Entries []domain.ChatLogEntry `json:"entries"`
}

// HandleSendMessage tokenizes and sends a chat line
func HandleSendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendMessageRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Send message"); err != nil {
			return
		}

		res, err := SessionFromContext(r.Context()).SendMessage(r.Context(), req.Text)
		if err != nil {
			respondServiceError(w, r, "send message", err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleSendRose sends a rose through the relay
func HandleSendRose() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendRoseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Send rose"); err != nil {
			return
		}

		if err := SessionFromContext(r.Context()).SendRose(r.Context(), req.TargetUsername, req.MessageID); err != nil {
			respondServiceError(w, r, "send rose", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRoseSent})
	}
}

// HandleGetChat returns the last entries of the chat log
func HandleGetChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetIntQueryParam(w, r, "limit", 0)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, ChatResponse{Entries: SessionFromContext(r.Context()).Chat(limit)})
	}
}
