package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/adapters/handler"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogWeight_Success(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := &domain.WeightEntry{ID: uuid.New(), Date: date, Weight: 68.5, Unit: domain.WeightUnitKg}
	mockService.On("LogWeight", mock.Anything, 68.5, domain.WeightUnitKg, "", date).Return(entry, nil)

	body, _ := json.Marshal(handler.LogWeightRequest{Weight: 68.5, Unit: domain.WeightUnitKg, Date: date})
	w := httptest.NewRecorder()
	h.LogWeight(w, authedRequest(http.MethodPost, "/tracking/weight", body))

	require.Equal(t, http.StatusCreated, w.Code)

	var got domain.WeightEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 68.5, got.Weight)
	mockService.AssertExpectations(t)
}

func TestLogWeight_Validation(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	mockService.On("LogWeight", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError("weight", "must be positive"))

	body, _ := json.Marshal(handler.LogWeightRequest{Weight: -2, Unit: domain.WeightUnitKg})
	w := httptest.NewRecorder()
	h.LogWeight(w, authedRequest(http.MethodPost, "/tracking/weight", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeightHistory(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	entries := []*domain.WeightEntry{
		{ID: uuid.New(), Weight: 69.1, Unit: domain.WeightUnitKg},
		{ID: uuid.New(), Weight: 68.5, Unit: domain.WeightUnitKg},
	}
	mockService.On("WeightHistory", mock.Anything).Return(entries, nil)

	w := httptest.NewRecorder()
	h.WeightHistory(w, authedRequest(http.MethodGet, "/tracking/weight", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got []*domain.WeightEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestDeleteWeight_InvalidID(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	r := authedRequest(http.MethodDelete, "/tracking/weight/nope", nil)
	r.SetPathValue("entry_id", "nope")
	w := httptest.NewRecorder()
	h.DeleteWeight(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "DeleteWeightEntry", mock.Anything, mock.Anything)
}

func TestLogSymptom_Success(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	entry := &domain.SymptomEntry{ID: uuid.New(), Date: date, Symptom: domain.SymptomNausea, Severity: domain.SeverityMild}
	mockService.On("LogSymptom", mock.Anything, domain.SymptomNausea, domain.SeverityMild, "morning only", date).
		Return(entry, nil)

	body, _ := json.Marshal(handler.LogSymptomRequest{
		Symptom:  domain.SymptomNausea,
		Severity: domain.SeverityMild,
		Note:     "morning only",
		Date:     date,
	})
	w := httptest.NewRecorder()
	h.LogSymptom(w, authedRequest(http.MethodPost, "/tracking/symptoms", body))

	require.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestKickSessionLifecycle(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	sessionID := uuid.New()
	start := time.Now()
	open := &domain.KickCountSession{ID: sessionID, StartTime: start}
	mockService.On("StartKickSession", mock.Anything).Return(open, nil)

	w := httptest.NewRecorder()
	h.StartKickSession(w, authedRequest(http.MethodPost, "/tracking/kicks/sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	kicked := &domain.KickCountSession{ID: sessionID, StartTime: start, KickCount: 1}
	mockService.On("RecordKick", mock.Anything, sessionID).Return(kicked, nil)

	r := authedRequest(http.MethodPost, "/tracking/kicks/sessions/"+sessionID.String()+"/kicks", nil)
	r.SetPathValue("session_id", sessionID.String())
	w = httptest.NewRecorder()
	h.RecordKick(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.KickCountSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.KickCount)

	end := start.Add(30 * time.Minute)
	closed := &domain.KickCountSession{ID: sessionID, StartTime: start, EndTime: &end, KickCount: 1}
	mockService.On("EndKickSession", mock.Anything, sessionID).Return(closed, nil)

	r = authedRequest(http.MethodPost, "/tracking/kicks/sessions/"+sessionID.String()+"/end", nil)
	r.SetPathValue("session_id", sessionID.String())
	w = httptest.NewRecorder()
	h.EndKickSession(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestRecordKick_EndedSession(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	sessionID := uuid.New()
	mockService.On("RecordKick", mock.Anything, sessionID).
		Return(nil, domain.NewValidationError("session", "session already ended"))

	r := authedRequest(http.MethodPost, "/tracking/kicks/sessions/"+sessionID.String()+"/kicks", nil)
	r.SetPathValue("session_id", sessionID.String())
	w := httptest.NewRecorder()
	h.RecordKick(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContractionLifecycle(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	contractionID := uuid.New()
	start := time.Now()
	open := &domain.Contraction{ID: contractionID, StartTime: start}
	mockService.On("StartContraction", mock.Anything).Return(open, nil)

	w := httptest.NewRecorder()
	h.StartContraction(w, authedRequest(http.MethodPost, "/tracking/contractions", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	end := start.Add(45 * time.Second)
	closed := &domain.Contraction{ID: contractionID, StartTime: start, EndTime: &end}
	mockService.On("EndContraction", mock.Anything, contractionID).Return(closed, nil)

	r := authedRequest(http.MethodPost, "/tracking/contractions/"+contractionID.String()+"/end", nil)
	r.SetPathValue("contraction_id", contractionID.String())
	w = httptest.NewRecorder()
	h.EndContraction(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Contraction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.EndTime)
	mockService.AssertExpectations(t)
}

func TestClearContractions(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	mockService.On("ClearContractions", mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	h.ClearContractions(w, authedRequest(http.MethodDelete, "/tracking/contractions", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestWaterIntake_WithDateParam(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	entries := []*domain.WaterIntakeEntry{
		{ID: uuid.New(), Date: day, Amount: 250, Unit: domain.WaterUnitMl},
		{ID: uuid.New(), Date: day, Amount: 8, Unit: domain.WaterUnitOz},
	}
	mockService.On("WaterIntakeForDay", mock.Anything, day).Return(entries, 486.588, nil)

	w := httptest.NewRecorder()
	h.WaterIntake(w, authedRequest(http.MethodGet, "/tracking/water?date=2026-03-05", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.WaterIntakeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Entries, 2)
	assert.InDelta(t, 486.588, resp.TotalMl, 0.001)
	mockService.AssertExpectations(t)
}

func TestWaterIntake_BadDateParam(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	w := httptest.NewRecorder()
	h.WaterIntake(w, authedRequest(http.MethodGet, "/tracking/water?date=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "WaterIntakeForDay", mock.Anything, mock.Anything)
}

func TestLogWater_Success(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	date := time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC)
	entry := &domain.WaterIntakeEntry{ID: uuid.New(), Date: date, Amount: 250, Unit: domain.WaterUnitMl}
	mockService.On("LogWater", mock.Anything, 250.0, domain.WaterUnitMl, date).Return(entry, nil)

	body, _ := json.Marshal(handler.LogWaterRequest{Amount: 250, Unit: domain.WaterUnitMl, Date: date})
	w := httptest.NewRecorder()
	h.LogWater(w, authedRequest(http.MethodPost, "/tracking/water", body))

	require.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestSaveBagItem_Success(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	item := &domain.HospitalBagItem{ID: uuid.New(), Name: "Passport", Category: domain.BagCategoryPartner}
	mockService.On("SaveBagItem", mock.Anything, "Passport", domain.BagCategoryPartner, false).Return(item, nil)

	body, _ := json.Marshal(handler.SaveBagItemRequest{Name: "Passport", Category: domain.BagCategoryPartner})
	w := httptest.NewRecorder()
	h.SaveBagItem(w, authedRequest(http.MethodPost, "/tracking/bag", body))

	require.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestSetBagItemPacked_Success(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	itemID := uuid.New()
	mockService.On("SetBagItemPacked", mock.Anything, itemID, true).Return(nil)

	body, _ := json.Marshal(handler.SetBagItemPackedRequest{Packed: true})
	r := authedRequest(http.MethodPut, "/tracking/bag/"+itemID.String()+"/packed", body)
	r.SetPathValue("item_id", itemID.String())
	w := httptest.NewRecorder()
	h.SetBagItemPacked(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestSetBagItemPacked_UnknownItem(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	itemID := uuid.New()
	mockService.On("SetBagItemPacked", mock.Anything, itemID, false).Return(domain.ErrStorageNotFound)

	body, _ := json.Marshal(handler.SetBagItemPackedRequest{Packed: false})
	r := authedRequest(http.MethodPut, "/tracking/bag/"+itemID.String()+"/packed", body)
	r.SetPathValue("item_id", itemID.String())
	w := httptest.NewRecorder()
	h.SetBagItemPacked(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveAppointment_Success(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	date := time.Date(2026, 4, 12, 10, 0, 0, 0, time.UTC)
	saved := &domain.Appointment{ID: uuid.New(), Title: "Anomaly scan", Date: date, Location: "St Mary's"}
	mockService.On("SaveAppointment", mock.Anything, mock.MatchedBy(func(a domain.Appointment) bool {
		return a.Title == "Anomaly scan"
	})).Return(saved, nil)

	body, _ := json.Marshal(domain.Appointment{Title: "Anomaly scan", Date: date, Location: "St Mary's"})
	w := httptest.NewRecorder()
	h.SaveAppointment(w, authedRequest(http.MethodPost, "/tracking/appointments", body))

	require.Equal(t, http.StatusCreated, w.Code)

	var got domain.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEqual(t, uuid.Nil, got.ID)
	mockService.AssertExpectations(t)
}

func TestAppointments(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	appointments := []*domain.Appointment{
		{ID: uuid.New(), Title: "Midwife visit", Date: time.Now().AddDate(0, 0, 7)},
	}
	mockService.On("Appointments", mock.Anything).Return(appointments, nil)

	w := httptest.NewRecorder()
	h.Appointments(w, authedRequest(http.MethodGet, "/tracking/appointments", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got []*domain.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestDeleteAppointment_Success(t *testing.T) {
	mockService := new(MockTrackingService)
	h := handler.NewTrackingHandler(mockService)

	appointmentID := uuid.New()
	mockService.On("DeleteAppointment", mock.Anything, appointmentID).Return(nil)

	r := authedRequest(http.MethodDelete, "/tracking/appointments/"+appointmentID.String(), nil)
	r.SetPathValue("appointment_id", appointmentID.String())
	w := httptest.NewRecorder()
	h.DeleteAppointment(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}
