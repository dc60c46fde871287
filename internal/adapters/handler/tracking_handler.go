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

// TrackingHandler handles HTTP requests for health tracking
type TrackingHandler struct {
	trackingService ports.TrackingService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(trackingService ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// parseID reads and validates a path UUID, writing the error response
// itself when invalid
func parseID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// LogWeightRequest represents the request body for logging a weight
type LogWeightRequest struct {
	Weight float64           `json:"weight"`
	Unit   domain.WeightUnit `json:"unit"`
	Note   string            `json:"note"`
	Date   time.Time         `json:"date"`
}

// LogWeight handles POST /tracking/weight
func (h *TrackingHandler) LogWeight(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()
	userID, _ := middleware.GetUserID(r.Context())

	var req LogWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.trackingService.LogWeight(r.Context(), req.Weight, req.Unit, req.Note, req.Date)
	if err != nil {
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "POST", "/tracking/weight", http.StatusCreated, time.Since(startTime))
	writeJSON(w, requestID, http.StatusCreated, entry)
}

// WeightHistory handles GET /tracking/weight
func (h *TrackingHandler) WeightHistory(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	entries, err := h.trackingService.WeightHistory(r.Context())
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, entries)
}

// DeleteWeight handles DELETE /tracking/weight/{entry_id}
func (h *TrackingHandler) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	id, ok := parseID(w, r, "entry_id")
	if !ok {
		return
	}
	if err := h.trackingService.DeleteWeightEntry(r.Context(), id); err != nil {
		writeError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LogSymptomRequest represents the request body for logging a symptom
type LogSymptomRequest struct {
	Symptom  domain.SymptomType     `json:"symptom"`
	Severity domain.SymptomSeverity `json:"severity"`
	Note     string                 `json:"note"`
	Date     time.Time              `json:"date"`
}

// LogSymptom handles POST /tracking/symptoms
func (h *TrackingHandler) LogSymptom(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := generateRequestID()
	userID, _ := middleware.GetUserID(r.Context())

	var req LogSymptomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.trackingService.LogSymptom(r.Context(), req.Symptom, req.Severity, req.Note, req.Date)
	if err != nil {
		writeError(w, requestID, err)
		return
	}

	logStructured(requestID, userID, "POST", "/tracking/symptoms", http.StatusCreated, time.Since(startTime))
	writeJSON(w, requestID, http.StatusCreated, entry)
}

// SymptomHistory handles GET /tracking/symptoms
func (h *TrackingHandler) SymptomHistory(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	entries, err := h.trackingService.SymptomHistory(r.Context())
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, entries)
}

// DeleteSymptom handles DELETE /tracking/symptoms/{entry_id}
func (h *TrackingHandler) DeleteSymptom(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	id, ok := parseID(w, r, "entry_id")
	if !ok {
		return
	}
	if err := h.trackingService.DeleteSymptomEntry(r.Context(), id); err != nil {
		writeError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartKickSession handles POST /tracking/kicks/sessions
func (h *TrackingHandler) StartKickSession(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	session, err := h.trackingService.StartKickSession(r.Context())
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusCreated, session)
}

// RecordKick handles POST /tracking/kicks/sessions/{session_id}/kicks
func (h *TrackingHandler) RecordKick(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	id, ok := parseID(w, r, "session_id")
	if !ok {
		return
	}
	session, err := h.trackingService.RecordKick(r.Context(), id)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, session)
}

// EndKickSession handles POST /tracking/kicks/sessions/{session_id}/end
func (h *TrackingHandler) EndKickSession(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	id, ok := parseID(w, r, "session_id")
	if !ok {
		return
	}
	session, err := h.trackingService.EndKickSession(r.Context(), id)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, session)
}

// KickSessionHistory handles GET /tracking/kicks/sessions
func (h *TrackingHandler) KickSessionHistory(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	sessions, err := h.trackingService.KickSessionHistory(r.Context())
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, sessions)
}

// StartContraction handles POST /tracking/contractions
func (h *TrackingHandler) StartContraction(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	contraction, err := h.trackingService.StartContraction(r.Context())
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusCreated, contraction)
}

// EndContraction handles POST /tracking/contractions/{contraction_id}/end
func (h *TrackingHandler) EndContraction(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	id, ok := parseID(w, r, "contraction_id")
	if !ok {
		return
	}
	contraction, err := h.trackingService.EndContraction(r.Context(), id)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, contraction)
}

// ContractionHistory handles GET /tracking/contractions
func (h *TrackingHandler) ContractionHistory(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	contractions, err := h.trackingService.ContractionHistory(r.Context())
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, contractions)
}

// ClearContractions handles DELETE /tracking/contractions
func (h *TrackingHandler) ClearContractions(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	if err := h.trackingService.ClearContractions(r.Context()); err != nil {
		writeError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LogWaterRequest represents the request body for logging a drink
type LogWaterRequest struct {
	Amount float64          `json:"amount"`
	Unit   domain.WaterUnit `json:"unit"`
	Date   time.Time        `json:"date"`
}

// LogWater handles POST /tracking/water
func (h *TrackingHandler) LogWater(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	var req LogWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.trackingService.LogWater(r.Context(), req.Amount, req.Unit, req.Date)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusCreated, entry)
}

// WaterIntakeResponse wraps the day's drinks with the running total
type WaterIntakeResponse struct {
	Entries []*domain.WaterIntakeEntry `json:"entries"`
	TotalMl float64                    `json:"total_ml"`
}

// WaterIntake handles GET /tracking/water?date=2006-01-02
func (h *TrackingHandler) WaterIntake(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	day := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			http.Error(w, "invalid date parameter", http.StatusBadRequest)
			return
		}
		day = parsed
	}

	entries, totalMl, err := h.trackingService.WaterIntakeForDay(r.Context(), day)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, WaterIntakeResponse{Entries: entries, TotalMl: totalMl})
}

// SaveBagItemRequest represents the request body for a checklist entry
type SaveBagItemRequest struct {
	Name     string             `json:"name"`
	Category domain.BagCategory `json:"category"`
	Packed   bool               `json:"packed"`
}

// SaveBagItem handles POST /tracking/bag
func (h *TrackingHandler) SaveBagItem(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	var req SaveBagItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.trackingService.SaveBagItem(r.Context(), req.Name, req.Category, req.Packed)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusCreated, item)
}

// SetBagItemPackedRequest represents the request body for toggling an
// entry
type SetBagItemPackedRequest struct {
	Packed bool `json:"packed"`
}

// SetBagItemPacked handles PUT /tracking/bag/{item_id}/packed
func (h *TrackingHandler) SetBagItemPacked(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	id, ok := parseID(w, r, "item_id")
	if !ok {
		return
	}

	var req SetBagItemPackedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.trackingService.SetBagItemPacked(r.Context(), id, req.Packed); err != nil {
		writeError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BagChecklist handles GET /tracking/bag
func (h *TrackingHandler) BagChecklist(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	items, err := h.trackingService.BagChecklist(r.Context())
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, items)
}

// DeleteBagItem handles DELETE /tracking/bag/{item_id}
func (h *TrackingHandler) DeleteBagItem(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	id, ok := parseID(w, r, "item_id")
	if !ok {
		return
	}
	if err := h.trackingService.DeleteBagItem(r.Context(), id); err != nil {
		writeError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveAppointment handles POST /tracking/appointments
func (h *TrackingHandler) SaveAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()

	var appointment domain.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		log.Printf("[%s] Failed to decode request: %v", requestID, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.trackingService.SaveAppointment(r.Context(), appointment)
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusCreated, saved)
}

// Appointments handles GET /tracking/appointments
func (h *TrackingHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	appointments, err := h.trackingService.Appointments(r.Context())
	if err != nil {
		writeError(w, requestID, err)
		return
	}
	writeJSON(w, requestID, http.StatusOK, appointments)
}

// DeleteAppointment handles DELETE /tracking/appointments/{appointment_id}
func (h *TrackingHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	requestID := generateRequestID()
	id, ok := parseID(w, r, "appointment_id")
	if !ok {
		return
	}
	if err := h.trackingService.DeleteAppointment(r.Context(), id); err != nil {
		writeError(w, requestID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
