package handler_test

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

func jsonBody(b []byte) io.Reader {
	return bytes.NewReader(b)
}

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Startup(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionService) Login(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockSessionService) CompleteOnboarding(ctx context.Context, req ports.OnboardingRequest) (*domain.UserProfile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionService) DeleteAccount(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionService) CurrentProfile() *domain.UserProfile {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.UserProfile)
}

func (m *MockSessionService) IsLoggedIn() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSessionService) HasOnboarded() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSessionService) UpdateProfile(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockSessionService) ChangeStorageMode(ctx context.Context, mode domain.StorageMode) error {
	args := m.Called(ctx, mode)
	return args.Error(0)
}

func (m *MockSessionService) CurrentUserID() string {
	args := m.Called()
	return args.String(0)
}

// MockMoodService is a mock implementation of MoodService
type MockMoodService struct {
	mock.Mock
}

func (m *MockMoodService) RecordMood(ctx context.Context, mood domain.MoodType, note string) (*domain.MoodCheckIn, error) {
	args := m.Called(ctx, mood, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoodCheckIn), args.Error(1)
}

func (m *MockMoodService) ListMoods(ctx context.Context) ([]*domain.MoodCheckIn, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MoodCheckIn), args.Error(1)
}

func (m *MockMoodService) DeleteMood(ctx context.Context, moodID uuid.UUID) error {
	args := m.Called(ctx, moodID)
	return args.Error(0)
}

// MockScheduleService is a mock implementation of ScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) CurrentSchedule(ctx context.Context) ([]domain.VaccineItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VaccineItem), args.Error(1)
}

func (m *MockScheduleService) MarkCompleted(ctx context.Context, itemID uuid.UUID, completedDate time.Time) error {
	args := m.Called(ctx, itemID, completedDate)
	return args.Error(0)
}

func (m *MockScheduleService) UnmarkCompleted(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// MockTrackingService is a mock implementation of TrackingService
type MockTrackingService struct {
	mock.Mock
}

func (m *MockTrackingService) LogWeight(ctx context.Context, weight float64, unit domain.WeightUnit, note string, date time.Time) (*domain.WeightEntry, error) {
	args := m.Called(ctx, weight, unit, note, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeightEntry), args.Error(1)
}

func (m *MockTrackingService) WeightHistory(ctx context.Context) ([]*domain.WeightEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeightEntry), args.Error(1)
}

func (m *MockTrackingService) DeleteWeightEntry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrackingService) LogSymptom(ctx context.Context, symptom domain.SymptomType, severity domain.SymptomSeverity, note string, date time.Time) (*domain.SymptomEntry, error) {
	args := m.Called(ctx, symptom, severity, note, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SymptomEntry), args.Error(1)
}

func (m *MockTrackingService) SymptomHistory(ctx context.Context) ([]*domain.SymptomEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SymptomEntry), args.Error(1)
}

func (m *MockTrackingService) DeleteSymptomEntry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrackingService) StartKickSession(ctx context.Context) (*domain.KickCountSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KickCountSession), args.Error(1)
}

func (m *MockTrackingService) RecordKick(ctx context.Context, sessionID uuid.UUID) (*domain.KickCountSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KickCountSession), args.Error(1)
}

func (m *MockTrackingService) EndKickSession(ctx context.Context, sessionID uuid.UUID) (*domain.KickCountSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KickCountSession), args.Error(1)
}

func (m *MockTrackingService) KickSessionHistory(ctx context.Context) ([]*domain.KickCountSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.KickCountSession), args.Error(1)
}

func (m *MockTrackingService) StartContraction(ctx context.Context) (*domain.Contraction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contraction), args.Error(1)
}

func (m *MockTrackingService) EndContraction(ctx context.Context, contractionID uuid.UUID) (*domain.Contraction, error) {
	args := m.Called(ctx, contractionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contraction), args.Error(1)
}

func (m *MockTrackingService) ContractionHistory(ctx context.Context) ([]*domain.Contraction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contraction), args.Error(1)
}

func (m *MockTrackingService) ClearContractions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackingService) LogWater(ctx context.Context, amount float64, unit domain.WaterUnit, date time.Time) (*domain.WaterIntakeEntry, error) {
	args := m.Called(ctx, amount, unit, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaterIntakeEntry), args.Error(1)
}

func (m *MockTrackingService) WaterIntakeForDay(ctx context.Context, day time.Time) ([]*domain.WaterIntakeEntry, float64, error) {
	args := m.Called(ctx, day)
	var entries []*domain.WaterIntakeEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]*domain.WaterIntakeEntry)
	}
	return entries, args.Get(1).(float64), args.Error(2)
}

func (m *MockTrackingService) SaveBagItem(ctx context.Context, name string, category domain.BagCategory, packed bool) (*domain.HospitalBagItem, error) {
	args := m.Called(ctx, name, category, packed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HospitalBagItem), args.Error(1)
}

func (m *MockTrackingService) SetBagItemPacked(ctx context.Context, id uuid.UUID, packed bool) error {
	args := m.Called(ctx, id, packed)
	return args.Error(0)
}

func (m *MockTrackingService) BagChecklist(ctx context.Context) ([]*domain.HospitalBagItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HospitalBagItem), args.Error(1)
}

func (m *MockTrackingService) DeleteBagItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrackingService) SaveAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, appointment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockTrackingService) Appointments(ctx context.Context) ([]*domain.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockTrackingService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChatService is a mock implementation of ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) SendMessage(ctx context.Context, content string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context) []*domain.ChatMessage {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*domain.ChatMessage)
}
