package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/adapters/middleware"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// VaccineHandler handles HTTP requests for the vaccine schedule
type VaccineHandler struct {
	scheduleService ports.ScheduleService
}

// NewVaccineHandler creates a new vaccine handler
func NewVaccineHandler(scheduleService ports.ScheduleService) *VaccineHandler {
	return &VaccineHandler{scheduleService: scheduleService}
}

// GetSchedule handles GET /vaccines
func (h *VaccineHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	items, err := h.scheduleService.CurrentSchedule(r.Context())
	if err != nil {
		log.Printf("[%s] Failed to build schedule: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}
	middleware.ScheduleRebuildsTotal.Inc()

	logStructured(requestID, userID, "GET", "/vaccines", http.StatusOK, time.Since(startTime))
	writeJSON(w, requestID, http.StatusOK, items)
}

// CompleteVaccineRequest represents the request body for marking an
// entry completed
type CompleteVaccineRequest struct {
	CompletedDate time.Time `json:"completed_date"`
}

// MarkCompleted handles POST /vaccines/{item_id}/complete
func (h *VaccineHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	itemID, err := uuid.Parse(r.PathValue("item_id"))
	if err != nil {
		log.Printf("[%s] Invalid item ID: %v", requestID, err)
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	var req CompleteVaccineRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("[%s] Failed to decode request: %v", requestID, err)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	if err := h.scheduleService.MarkCompleted(r.Context(), itemID, req.CompletedDate); err != nil {
		log.Printf("[%s] Failed to mark completion: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "POST", "/vaccines/"+itemID.String()+"/complete", http.StatusNoContent, time.Since(startTime))
	w.WriteHeader(http.StatusNoContent)
}

// UnmarkCompleted handles DELETE /vaccines/{item_id}/complete
func (h *VaccineHandler) UnmarkCompleted(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()

	userID, _ := middleware.GetUserID(r.Context())

	itemID, err := uuid.Parse(r.PathValue("item_id"))
	if err != nil {
		log.Printf("[%s] Invalid item ID: %v", requestID, err)
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	if err := h.scheduleService.UnmarkCompleted(r.Context(), itemID); err != nil {
		log.Printf("[%s] Failed to remove completion: %v", requestID, err)
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "DELETE", "/vaccines/"+itemID.String()+"/complete", http.StatusNoContent, time.Since(startTime))
	w.WriteHeader(http.StatusNoContent)
}
