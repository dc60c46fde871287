package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockStorageBackend is a mock implementation of StorageBackend
type MockStorageBackend struct {
	mock.Mock
}

func (m *MockStorageBackend) SaveProfile(ctx context.Context, userID string, profile *domain.UserProfile) error {
	args := m.Called(ctx, userID, profile)
	return args.Error(0)
}

func (m *MockStorageBackend) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockStorageBackend) SaveMood(ctx context.Context, userID string, mood *domain.MoodCheckIn) error {
	args := m.Called(ctx, userID, mood)
	return args.Error(0)
}

func (m *MockStorageBackend) FetchMoods(ctx context.Context, userID string) ([]*domain.MoodCheckIn, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MoodCheckIn), args.Error(1)
}

func (m *MockStorageBackend) DeleteMood(ctx context.Context, userID string, moodID uuid.UUID) error {
	args := m.Called(ctx, userID, moodID)
	return args.Error(0)
}

func (m *MockStorageBackend) DeleteAllUserData(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAppStateStore is a mock implementation of AppStateStore
type MockAppStateStore struct {
	mock.Mock
}

func (m *MockAppStateStore) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	args := m.Called(ctx, loggedIn)
	return args.Error(0)
}

func (m *MockAppStateStore) IsLoggedIn(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppStateStore) SetOnboarded(ctx context.Context, onboarded bool) error {
	args := m.Called(ctx, onboarded)
	return args.Error(0)
}

func (m *MockAppStateStore) HasOnboarded(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockIdentityProvider is a mock implementation of IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) DeleteAccount(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIdentityProvider) CurrentUserID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentityProvider) SignOut() {
	m.Called()
}

// MockMigrationService is a mock implementation of MigrationService
type MockMigrationService struct {
	mock.Mock
}

func (m *MockMigrationService) NeedsMigration(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockMigrationService) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLegacyVault is a mock implementation of LegacyVault
type MockLegacyVault struct {
	mock.Mock
}

func (m *MockLegacyVault) Read(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLegacyVault) Exists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockCrypter is a mock implementation of Crypter
type MockCrypter struct {
	mock.Mock
}

func (m *MockCrypter) Encrypt(plaintext []byte) ([]byte, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCrypter) Decrypt(ciphertext []byte) ([]byte, error) {
	args := m.Called(ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAlertPublisher is a mock implementation of AlertPublisher
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) PublishWellbeingAlert(ctx context.Context, userID string, mood *domain.MoodCheckIn) error {
	args := m.Called(ctx, userID, mood)
	return args.Error(0)
}

// MockScheduleSource is a mock implementation of ScheduleSource
type MockScheduleSource struct {
	mock.Mock
}

func (m *MockScheduleSource) ScheduleForCountry(country string) (domain.CountrySchedule, error) {
	args := m.Called(country)
	return args.Get(0).(domain.CountrySchedule), args.Error(1)
}

func (m *MockScheduleSource) SupportedCountries() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// MockVaccineCompletionStore is a mock implementation of VaccineCompletionStore
type MockVaccineCompletionStore struct {
	mock.Mock
}

func (m *MockVaccineCompletionStore) SaveCompletion(ctx context.Context, completion domain.VaccineCompletion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockVaccineCompletionStore) ListCompletions(ctx context.Context) ([]domain.VaccineCompletion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VaccineCompletion), args.Error(1)
}

func (m *MockVaccineCompletionStore) DeleteCompletion(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// MockTrackingRepository is a mock implementation of TrackingRepository
type MockTrackingRepository struct {
	mock.Mock
}

func (m *MockTrackingRepository) SaveWeightEntry(ctx context.Context, entry *domain.WeightEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTrackingRepository) ListWeightEntries(ctx context.Context) ([]*domain.WeightEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeightEntry), args.Error(1)
}

func (m *MockTrackingRepository) DeleteWeightEntry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrackingRepository) SaveSymptomEntry(ctx context.Context, entry *domain.SymptomEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTrackingRepository) ListSymptomEntries(ctx context.Context) ([]*domain.SymptomEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SymptomEntry), args.Error(1)
}

func (m *MockTrackingRepository) DeleteSymptomEntry(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrackingRepository) SaveKickSession(ctx context.Context, session *domain.KickCountSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockTrackingRepository) ListKickSessions(ctx context.Context) ([]*domain.KickCountSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.KickCountSession), args.Error(1)
}

func (m *MockTrackingRepository) SaveContraction(ctx context.Context, contraction *domain.Contraction) error {
	args := m.Called(ctx, contraction)
	return args.Error(0)
}

func (m *MockTrackingRepository) ListContractions(ctx context.Context) ([]*domain.Contraction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contraction), args.Error(1)
}

func (m *MockTrackingRepository) DeleteContractions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackingRepository) SaveWaterIntake(ctx context.Context, entry *domain.WaterIntakeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTrackingRepository) ListWaterIntake(ctx context.Context, day time.Time) ([]*domain.WaterIntakeEntry, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WaterIntakeEntry), args.Error(1)
}

func (m *MockTrackingRepository) SaveBagItem(ctx context.Context, item *domain.HospitalBagItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTrackingRepository) ListBagItems(ctx context.Context) ([]*domain.HospitalBagItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HospitalBagItem), args.Error(1)
}

func (m *MockTrackingRepository) DeleteBagItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrackingRepository) SaveAppointment(ctx context.Context, appointment *domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockTrackingRepository) ListAppointments(ctx context.Context) ([]*domain.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockTrackingRepository) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
