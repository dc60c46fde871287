package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/mamacare/tracker-service/internal/adapters/middleware"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// SessionHandler handles HTTP requests for the session lifecycle
type SessionHandler struct {
	sessionService ports.SessionService
	auth           *middleware.AuthMiddleware
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService ports.SessionService, auth *middleware.AuthMiddleware) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		auth:           auth,
	}
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned after login and onboarding
type SessionResponse struct {
	Token   string              `json:"token"`
	Profile *domain.UserProfile `json:"profile"`
}

// Login handles POST /session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.sessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[%s] Login failed: %v", requestID, err)
		middleware.LoginsTotal.WithLabelValues("failure").Inc()
		writeError(w, requestID, err)
		return
	}
	middleware.LoginsTotal.WithLabelValues("success").Inc()

	email := req.Email
	if profile != nil && profile.Email != "" {
		email = profile.Email
	}
	token, err := h.auth.IssueToken(h.currentUserID(), email)
	if err != nil {
		log.Printf("[%s] Failed to issue token: %v", requestID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	logStructured(requestID, h.currentUserID(), "POST", "/session/login", http.StatusOK, time.Since(startTime))
	writeJSON(w, requestID, http.StatusOK, SessionResponse{Token: token, Profile: profile})
}

// CompleteOnboarding handles POST /session/onboarding
func (h *SessionHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	var req ports.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.sessionService.CompleteOnboarding(r.Context(), req)
	if err != nil {
		log.Printf("[%s] Onboarding failed: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	token, err := h.auth.IssueToken(h.currentUserID(), profile.Email)
	if err != nil {
		log.Printf("[%s] Failed to issue token: %v", requestID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	logStructured(requestID, h.currentUserID(), "POST", "/session/onboarding", http.StatusCreated, time.Since(startTime))
	writeJSON(w, requestID, http.StatusCreated, SessionResponse{Token: token, Profile: profile})
}

// Logout handles POST /session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.sessionService.Logout(r.Context()); err != nil {
		log.Printf("[%s] Logout failed: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "POST", "/session/logout", http.StatusNoContent, time.Since(startTime))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount handles DELETE /session/account
func (h *SessionHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.sessionService.DeleteAccount(r.Context()); err != nil {
		log.Printf("[%s] Account deletion failed: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "DELETE", "/session/account", http.StatusNoContent, time.Since(startTime))
	w.WriteHeader(http.StatusNoContent)
}

// currentUserID reads the session's account ID through the service
func (h *SessionHandler) currentUserID() string {
	type userIDer interface {
		CurrentUserID() string
	}
	if s, ok := h.sessionService.(userIDer); ok {
		return s.CurrentUserID()
	}
	return ""
}
