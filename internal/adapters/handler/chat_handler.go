package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/mamacare/tracker-service/internal/adapters/middleware"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// ChatHandler handles HTTP requests for the assistant chat
type ChatHandler struct {
	chatService ports.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService ports.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessageRequest represents the request body for a chat message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage handles POST /chat
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()
	userID, _ := middleware.GetUserID(r.Context())

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reply, err := h.chatService.SendMessage(r.Context(), req.Content)
	if err != nil {
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "POST", "/chat", http.StatusOK, time.Since(startTime))
	writeJSON(w, requestID, http.StatusOK, reply)
}

// History handles GET /chat
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	writeJSON(w, requestID, http.StatusOK, h.chatService.History(r.Context()))
}
