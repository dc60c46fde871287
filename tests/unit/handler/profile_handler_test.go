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

func TestGetProfile_Pregnant(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	delivery := time.Now().AddDate(0, 0, 70)
	accepted := time.Now().AddDate(0, -1, 0)
	mockService.On("CurrentProfile").Return(&domain.UserProfile{
		ID:                   uuid.New(),
		FirstName:            "Amelia",
		Email:                "amelia@example.com",
		Country:              "UK",
		UserType:             domain.UserTypePregnant,
		ExpectedDeliveryDate: &delivery,
		StorageMode:          domain.StorageModeDeviceOnly,
		PrivacyAcceptedAt:    &accepted,
	})

	w := httptest.NewRecorder()
	h.GetProfile(w, authedRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Profile)
	assert.False(t, resp.NeedsOnboarding)
	require.NotNil(t, resp.PregnancyWeek)
	assert.Equal(t, 30, *resp.PregnancyWeek)
	require.NotNil(t, resp.Progress)
	assert.InDelta(t, 0.75, *resp.Progress, 0.01)
	assert.Nil(t, resp.DaysPostpartum)
}

func TestGetProfile_Postpartum(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	birth := time.Now().AddDate(0, 0, -14)
	accepted := time.Now().AddDate(0, -2, 0)
	mockService.On("CurrentProfile").Return(&domain.UserProfile{
		ID:                uuid.New(),
		FirstName:         "Jess",
		Email:             "jess@example.com",
		Country:           "UK",
		UserType:          domain.UserTypeHasChild,
		BirthDate:         &birth,
		StorageMode:       domain.StorageModeCloud,
		PrivacyAcceptedAt: &accepted,
	})

	w := httptest.NewRecorder()
	h.GetProfile(w, authedRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.DaysPostpartum)
	assert.Equal(t, 14, *resp.DaysPostpartum)
	assert.Nil(t, resp.PregnancyWeek)
	assert.Nil(t, resp.Progress)
}

func TestGetProfile_NoProfile(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	mockService.On("CurrentProfile").Return(nil)
	mockService.On("HasOnboarded").Return(false)

	w := httptest.NewRecorder()
	h.GetProfile(w, authedRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Profile)
	assert.True(t, resp.NeedsOnboarding)
}

func TestGetProfile_OnboardedElsewhereSkipsOnboarding(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	// Logged in with no resolved profile, but onboarding already ran on
	// this device: the client goes to login, not back through onboarding
	mockService.On("CurrentProfile").Return(nil)
	mockService.On("HasOnboarded").Return(true)

	w := httptest.NewRecorder()
	h.GetProfile(w, authedRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp handler.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.NeedsOnboarding)
}

func TestUpdateProfile_Success(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	mockService.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *domain.UserProfile) bool {
		return p.FirstName == "Amelia" && p.MobileNumber == "07700900123"
	})).Return(nil)

	body, _ := json.Marshal(map[string]string{
		"first_name":    "Amelia",
		"last_name":     "Hart",
		"email":         "amelia@example.com",
		"country":       "UK",
		"mobile_number": "07700900123",
	})
	w := httptest.NewRecorder()
	h.UpdateProfile(w, authedRequest(http.MethodPut, "/profile", body))

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUpdateProfile_CloudUnreachable(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	mockService.On("UpdateProfile", mock.Anything, mock.Anything).Return(domain.ErrStorageNetwork)

	body, _ := json.Marshal(map[string]string{"first_name": "Amelia"})
	w := httptest.NewRecorder()
	h.UpdateProfile(w, authedRequest(http.MethodPut, "/profile", body))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestUpdateProfile_InvalidBody(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	w := httptest.NewRecorder()
	h.UpdateProfile(w, authedRequest(http.MethodPut, "/profile", []byte("{broken")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func TestChangeStorageMode_Success(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	profile := sessionProfile()
	mockService.On("ChangeStorageMode", mock.Anything, domain.StorageModeCloud).Return(nil)
	mockService.On("CurrentProfile").Return(profile)

	body, _ := json.Marshal(handler.ChangeStorageModeRequest{StorageMode: domain.StorageModeCloud})
	w := httptest.NewRecorder()
	h.ChangeStorageMode(w, authedRequest(http.MethodPut, "/profile/storage-mode", body))

	require.Equal(t, http.StatusOK, w.Code)

	var got domain.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.StorageModeCloud, got.StorageMode)
	mockService.AssertExpectations(t)
}

func TestChangeStorageMode_InvalidMode(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	mockService.On("ChangeStorageMode", mock.Anything, domain.StorageMode("tape")).
		Return(domain.NewValidationError("storage_mode", "unknown storage mode"))

	body, _ := json.Marshal(map[string]string{"storage_mode": "tape"})
	w := httptest.NewRecorder()
	h.ChangeStorageMode(w, authedRequest(http.MethodPut, "/profile/storage-mode", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBabySize_ByWeek(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	w := httptest.NewRecorder()
	h.GetBabySize(w, authedRequest(http.MethodGet, "/baby-size?week=20", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var size domain.BabySize
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &size))
	assert.Equal(t, 20, size.Week)
	assert.NotEmpty(t, size.Comparison)
}

func TestGetBabySize_FromProfileWeek(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	delivery := time.Now().AddDate(0, 0, 140)
	mockService.On("CurrentProfile").Return(&domain.UserProfile{
		UserType:             domain.UserTypePregnant,
		ExpectedDeliveryDate: &delivery,
	})

	w := httptest.NewRecorder()
	h.GetBabySize(w, authedRequest(http.MethodGet, "/baby-size", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var size domain.BabySize
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &size))
	assert.Equal(t, 20, size.Week)
}

func TestGetBabySize_UnknownWeek(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	w := httptest.NewRecorder()
	h.GetBabySize(w, authedRequest(http.MethodGet, "/baby-size?week=99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBabySize_BadWeekParam(t *testing.T) {
	mockService := new(MockSessionService)
	h := handler.NewProfileHandler(mockService)

	w := httptest.NewRecorder()
	h.GetBabySize(w, authedRequest(http.MethodGet, "/baby-size?week=soon", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
