package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/adapters/middleware"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// MoodHandler handles HTTP requests for mood check-ins
type MoodHandler struct {
	moodService ports.MoodService
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(moodService ports.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

// RecordMoodRequest represents the request body for recording a check-in
type RecordMoodRequest struct {
	Mood domain.MoodType `json:"mood"`
	Note string          `json:"note"`
}

// RecordMood handles POST /moods
func (h *MoodHandler) RecordMood(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	var req RecordMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	checkIn, err := h.moodService.RecordMood(r.Context(), req.Mood, req.Note)
	if err != nil {
		log.Printf("[%s] Failed to record mood: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}
	middleware.MoodCheckInsTotal.WithLabelValues(string(checkIn.Mood)).Inc()

	logStructured(requestID, userID, "POST", "/moods", http.StatusCreated, time.Since(startTime))
	writeJSON(w, requestID, http.StatusCreated, checkIn)
}

// ListMoods handles GET /moods
func (h *MoodHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	moods, err := h.moodService.ListMoods(r.Context())
	if err != nil {
		log.Printf("[%s] Failed to list moods: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "GET", "/moods", http.StatusOK, time.Since(startTime))
	writeJSON(w, requestID, http.StatusOK, moods)
}

// DeleteMood handles DELETE /moods/{mood_id}
func (h *MoodHandler) DeleteMood(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	moodID, err := uuid.Parse(r.PathValue("mood_id"))
	if err != nil {
		log.Printf("[%s] Invalid mood ID: %v", requestID, err)
		http.Error(w, "invalid mood ID", http.StatusBadRequest)
		return
	}

	if err := h.moodService.DeleteMood(r.Context(), moodID); err != nil {
		log.Printf("[%s] Failed to delete mood: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "DELETE", "/moods/"+moodID.String(), http.StatusNoContent, time.Since(startTime))
	w.WriteHeader(http.StatusNoContent)
}
