package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/mamacare/tracker-service/internal/adapters/middleware"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// ProfileHandler handles HTTP requests for the user profile
type ProfileHandler struct {
	sessionService ports.SessionService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(sessionService ports.SessionService) *ProfileHandler {
	return &ProfileHandler{sessionService: sessionService}
}

// ProfileResponse wraps the profile with derived pregnancy context
type ProfileResponse struct {
	Profile         *domain.UserProfile `json:"profile"`
	NeedsOnboarding bool                `json:"needs_onboarding"`
	PregnancyWeek   *int                `json:"pregnancy_week,omitempty"`
	Progress        *float64            `json:"progress,omitempty"`
	DaysPostpartum  *int                `json:"days_postpartum,omitempty"`
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	profile := h.sessionService.CurrentProfile()
	resp := ProfileResponse{Profile: profile}
	if profile == nil {
		// No resolved profile: the persisted flag decides whether the
		// client shows onboarding or a plain login
		resp.NeedsOnboarding = !h.sessionService.HasOnboarded()
	} else {
		resp.NeedsOnboarding = profile.NeedsOnboarding()
		now := time.Now()
		switch profile.UserType {
		case domain.UserTypePregnant:
			week := profile.PregnancyWeek(now)
			progress := profile.PregnancyProgress(now)
			resp.PregnancyWeek = &week
			resp.Progress = &progress
		case domain.UserTypeHasChild:
			if days, ok := profile.DaysPostpartum(now); ok {
				resp.DaysPostpartum = &days
			}
		}
	}

	logStructured(requestID, userID, "GET", "/profile", http.StatusOK, time.Since(startTime))
	writeJSON(w, requestID, http.StatusOK, resp)
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	var profile domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.sessionService.UpdateProfile(r.Context(), &profile); err != nil {
		log.Printf("[%s] Profile update failed: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "PUT", "/profile", http.StatusOK, time.Since(startTime))
	writeJSON(w, requestID, http.StatusOK, &profile)
}

// ChangeStorageModeRequest represents the request body for switching
// storage modes
type ChangeStorageModeRequest struct {
	StorageMode domain.StorageMode `json:"storage_mode"`
}

// ChangeStorageMode handles PUT /profile/storage-mode
func (h *ProfileHandler) ChangeStorageMode(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	var req ChangeStorageModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.sessionService.ChangeStorageMode(r.Context(), req.StorageMode); err != nil {
		log.Printf("[%s] Storage mode change failed: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "PUT", "/profile/storage-mode", http.StatusOK, time.Since(startTime))
	writeJSON(w, requestID, http.StatusOK, h.sessionService.CurrentProfile())
}

// GetBabySize handles GET /baby-size?week=N
// Without a week parameter the active profile's current week is used
func (h *ProfileHandler) GetBabySize(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	week := 0
	if weekParam := r.URL.Query().Get("week"); weekParam != "" {
		parsed, err := strconv.Atoi(weekParam)
		if err != nil {
			http.Error(w, "invalid week parameter", http.StatusBadRequest)
			return
		}
		week = parsed
	} else if profile := h.sessionService.CurrentProfile(); profile != nil {
		week = profile.PregnancyWeek(time.Now())
	}

	size, ok := domain.BabySizeForWeek(week)
	if !ok {
		writeJSON(w, requestID, http.StatusNotFound, errorBody{Error: "no size data for this week"})
		return
	}

	logStructured(requestID, userID, "GET", "/baby-size", http.StatusOK, time.Since(startTime))
	writeJSON(w, requestID, http.StatusOK, size)
}
