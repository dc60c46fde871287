package handler

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mamacare/tracker-service/internal/core/domain"
)

// generateRequestID generates a unique request ID for tracing
func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp-based ID if random generation fails
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}

// logStructured logs structured JSON with request metadata
func logStructured(requestID, userID, method, endpoint string, statusCode int, duration time.Duration) {
	logEntry := map[string]interface{}{
		"request_id":  requestID,
		"method":      method,
		"endpoint":    endpoint,
		"status_code": statusCode,
		"duration_ms": duration.Milliseconds(),
	}
	if userID != "" {
		logEntry["user_id"] = userID
	}

	jsonBytes, err := json.Marshal(logEntry)
	if err != nil {
		log.Printf("[%s] Failed to marshal log entry: %v", requestID, err)
		return
	}

	log.Printf("%s", string(jsonBytes))
}

// writeJSON encodes a response body with the given status
func writeJSON(w http.ResponseWriter, requestID string, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[%s] Failed to encode response: %v", requestID, err)
	}
}

// errorBody is the uniform error response shape
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps service errors onto HTTP statuses
func writeError(w http.ResponseWriter, requestID string, err error) {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		status := http.StatusUnauthorized
		switch authErr.Code {
		case domain.AuthErrEmailAlreadyInUse:
			status = http.StatusConflict
		case domain.AuthErrInvalidEmail, domain.AuthErrWeakPassword:
			status = http.StatusBadRequest
		case domain.AuthErrNetwork:
			status = http.StatusBadGateway
		case domain.AuthErrUnknown:
			status = http.StatusInternalServerError
		}
		writeJSON(w, requestID, status, errorBody{Error: authErr.Message, Code: string(authErr.Code)})
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, requestID, http.StatusBadRequest, errorBody{Error: validationErr.Error()})
		return
	}

	if errors.Is(err, domain.ErrStorageNotFound) {
		writeJSON(w, requestID, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	if errors.Is(err, domain.ErrStorageNetwork) {
		writeJSON(w, requestID, http.StatusBadGateway, errorBody{Error: "storage backend unreachable"})
		return
	}
	if errors.Is(err, domain.ErrStorageConflict) {
		writeJSON(w, requestID, http.StatusConflict, errorBody{Error: "storage write conflict"})
		return
	}

	writeJSON(w, requestID, http.StatusInternalServerError, errorBody{Error: err.Error()})
}
