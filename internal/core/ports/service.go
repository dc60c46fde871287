package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
)

// SessionService defines the business logic interface for the account
// session lifecycle
type SessionService interface {
	// Startup restores persisted session state and runs the legacy
	// import when needed
	Startup(ctx context.Context) error

	// Login authenticates and resolves the profile, preferring the
	// cloud copy and falling back to local data when the cloud is
	// unreachable
	Login(ctx context.Context, email, password string) (*domain.UserProfile, error)

	// CompleteOnboarding validates the answers, creates the account
	// and persists the initial profile
	CompleteOnboarding(ctx context.Context, req OnboardingRequest) (*domain.UserProfile, error)

	// Logout ends the session without touching stored data
	Logout(ctx context.Context) error

	// DeleteAccount removes cloud data, the account and local data, in
	// that order, halting on the first failure
	DeleteAccount(ctx context.Context) error

	// CurrentProfile returns the resolved profile for the active
	// session, nil when logged out
	CurrentProfile() *domain.UserProfile

	// IsLoggedIn reports whether a session is active
	IsLoggedIn() bool

	// HasOnboarded reports whether onboarding ever completed on this
	// device, independent of the login state
	HasOnboarded() bool

	// UpdateProfile persists profile edits through the active backend
	UpdateProfile(ctx context.Context, profile *domain.UserProfile) error

	// ChangeStorageMode switches which backend is authoritative
	ChangeStorageMode(ctx context.Context, mode domain.StorageMode) error
}

// OnboardingRequest carries the answers collected by the onboarding flow
type OnboardingRequest struct {
	FirstName            string             `json:"first_name"`
	LastName             string             `json:"last_name"`
	Email                string             `json:"email"`
	Password             string             `json:"password"`
	ConfirmPassword      string             `json:"confirm_password"`
	Country              string             `json:"country"`
	MobileNumber         string             `json:"mobile_number"`
	UserType             domain.UserType    `json:"user_type"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date,omitempty"`
	BirthDate            *time.Time         `json:"birth_date,omitempty"`
	StorageMode          domain.StorageMode `json:"storage_mode"`
	PrivacyAccepted      bool               `json:"privacy_accepted"`
	StorageConsented     bool               `json:"storage_consented"`
	NotificationsWanted  bool               `json:"notifications_wanted"`
}

// MoodService defines the business logic interface for mood check-ins
type MoodService interface {
	// RecordMood appends a check-in and persists it in the background
	// Concerning moods additionally raise a wellbeing alert
	RecordMood(ctx context.Context, mood domain.MoodType, note string) (*domain.MoodCheckIn, error)

	// ListMoods returns check-ins newest first
	ListMoods(ctx context.Context) ([]*domain.MoodCheckIn, error)

	// DeleteMood removes one check-in
	DeleteMood(ctx context.Context, moodID uuid.UUID) error
}

// ScheduleService defines the business logic interface for the vaccine
// schedule
type ScheduleService interface {
	// CurrentSchedule builds the resolved schedule for the active
	// profile, completions applied
	CurrentSchedule(ctx context.Context) ([]domain.VaccineItem, error)

	// MarkCompleted pins a schedule entry as done
	MarkCompleted(ctx context.Context, itemID uuid.UUID, completedDate time.Time) error

	// UnmarkCompleted reverts a pinned entry to date-based status
	UnmarkCompleted(ctx context.Context, itemID uuid.UUID) error
}

// MigrationService imports the legacy encrypted vault into local storage
type MigrationService interface {
	// NeedsMigration reports whether a vault blob exists without a
	// matching local profile
	NeedsMigration(ctx context.Context) (bool, error)

	// Migrate decrypts, decodes and writes the legacy profile locally
	// The vault blob is left in place
	Migrate(ctx context.Context) error
}

// TrackingService defines the business logic interface for health tracking
type TrackingService interface {
	LogWeight(ctx context.Context, weight float64, unit domain.WeightUnit, note string, date time.Time) (*domain.WeightEntry, error)
	WeightHistory(ctx context.Context) ([]*domain.WeightEntry, error)
	DeleteWeightEntry(ctx context.Context, id uuid.UUID) error

	LogSymptom(ctx context.Context, symptom domain.SymptomType, severity domain.SymptomSeverity, note string, date time.Time) (*domain.SymptomEntry, error)
	SymptomHistory(ctx context.Context) ([]*domain.SymptomEntry, error)
	DeleteSymptomEntry(ctx context.Context, id uuid.UUID) error

	StartKickSession(ctx context.Context) (*domain.KickCountSession, error)
	RecordKick(ctx context.Context, sessionID uuid.UUID) (*domain.KickCountSession, error)
	EndKickSession(ctx context.Context, sessionID uuid.UUID) (*domain.KickCountSession, error)
	KickSessionHistory(ctx context.Context) ([]*domain.KickCountSession, error)

	StartContraction(ctx context.Context) (*domain.Contraction, error)
	EndContraction(ctx context.Context, contractionID uuid.UUID) (*domain.Contraction, error)
	ContractionHistory(ctx context.Context) ([]*domain.Contraction, error)
	ClearContractions(ctx context.Context) error

	LogWater(ctx context.Context, amount float64, unit domain.WaterUnit, date time.Time) (*domain.WaterIntakeEntry, error)
	WaterIntakeForDay(ctx context.Context, day time.Time) ([]*domain.WaterIntakeEntry, float64, error)

	SaveBagItem(ctx context.Context, name string, category domain.BagCategory, packed bool) (*domain.HospitalBagItem, error)
	SetBagItemPacked(ctx context.Context, id uuid.UUID, packed bool) error
	BagChecklist(ctx context.Context) ([]*domain.HospitalBagItem, error)
	DeleteBagItem(ctx context.Context, id uuid.UUID) error

	SaveAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)
	Appointments(ctx context.Context) ([]*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

// ChatService defines the business logic interface for the assistant chat
type ChatService interface {
	// SendMessage records the user message and returns the assistant reply
	SendMessage(ctx context.Context, content string) (*domain.ChatMessage, error)

	// History returns the conversation so far, oldest first
	History(ctx context.Context) []*domain.ChatMessage
}
