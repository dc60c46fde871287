package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
)

// StorageBackend defines the interface for profile and mood persistence.
// Both the on-device store and the cloud store implement it so services
// can switch backends by storage mode.
type StorageBackend interface {
	// SaveProfile writes the full user profile
	SaveProfile(ctx context.Context, userID string, profile *domain.UserProfile) error

	// FetchProfile retrieves the user profile
	// Returns domain.ErrStorageNotFound when no profile exists
	FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error)

	// SaveMood persists a mood check-in
	SaveMood(ctx context.Context, userID string, mood *domain.MoodCheckIn) error

	// FetchMoods retrieves all mood check-ins, newest first
	FetchMoods(ctx context.Context, userID string) ([]*domain.MoodCheckIn, error)

	// DeleteMood removes one mood check-in by ID
	DeleteMood(ctx context.Context, userID string, moodID uuid.UUID) error

	// DeleteAllUserData removes everything stored for the user
	DeleteAllUserData(ctx context.Context, userID string) error
}

// AppStateStore persists small session flags that survive restarts
type AppStateStore interface {
	// SetLoggedIn records whether a session is active
	SetLoggedIn(ctx context.Context, loggedIn bool) error

	// IsLoggedIn reads the persisted session flag
	IsLoggedIn(ctx context.Context) (bool, error)

	// SetOnboarded records whether onboarding ever completed
	SetOnboarded(ctx context.Context, onboarded bool) error

	// HasOnboarded reads the persisted onboarding flag
	HasOnboarded(ctx context.Context) (bool, error)
}

// VaccineCompletionStore persists which schedule entries were marked done
type VaccineCompletionStore interface {
	// SaveCompletion records an entry as completed
	SaveCompletion(ctx context.Context, completion domain.VaccineCompletion) error

	// ListCompletions retrieves all recorded completions
	ListCompletions(ctx context.Context) ([]domain.VaccineCompletion, error)

	// DeleteCompletion removes a completion so the entry reverts to date math
	DeleteCompletion(ctx context.Context, itemID uuid.UUID) error
}

// TrackingRepository defines the interface for health tracking persistence.
// Tracking data is device-only and never synced to the cloud.
type TrackingRepository interface {
	SaveWeightEntry(ctx context.Context, entry *domain.WeightEntry) error
	ListWeightEntries(ctx context.Context) ([]*domain.WeightEntry, error)
	DeleteWeightEntry(ctx context.Context, id uuid.UUID) error

	SaveSymptomEntry(ctx context.Context, entry *domain.SymptomEntry) error
	ListSymptomEntries(ctx context.Context) ([]*domain.SymptomEntry, error)
	DeleteSymptomEntry(ctx context.Context, id uuid.UUID) error

	SaveKickSession(ctx context.Context, session *domain.KickCountSession) error
	ListKickSessions(ctx context.Context) ([]*domain.KickCountSession, error)

	SaveContraction(ctx context.Context, contraction *domain.Contraction) error
	ListContractions(ctx context.Context) ([]*domain.Contraction, error)
	DeleteContractions(ctx context.Context) error

	SaveWaterIntake(ctx context.Context, entry *domain.WaterIntakeEntry) error
	ListWaterIntake(ctx context.Context, day time.Time) ([]*domain.WaterIntakeEntry, error)

	SaveBagItem(ctx context.Context, item *domain.HospitalBagItem) error
	ListBagItems(ctx context.Context) ([]*domain.HospitalBagItem, error)
	DeleteBagItem(ctx context.Context, id uuid.UUID) error

	SaveAppointment(ctx context.Context, appointment *domain.Appointment) error
	ListAppointments(ctx context.Context) ([]*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

// IdentityProvider defines the interface for account authentication
type IdentityProvider interface {
	// SignUp creates a new account and returns its user ID
	SignUp(ctx context.Context, email, password string) (string, error)

	// SignIn authenticates an existing account and returns its user ID
	SignIn(ctx context.Context, email, password string) (string, error)

	// DeleteAccount removes the authenticated account
	DeleteAccount(ctx context.Context) error

	// CurrentUserID returns the signed-in user ID, empty when signed out
	CurrentUserID() string

	// SignOut drops the in-memory credentials
	SignOut()
}

// Crypter defines the interface for sealing and opening legacy vault blobs
type Crypter interface {
	// Encrypt seals plaintext
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt opens a sealed blob
	Decrypt(ciphertext []byte) ([]byte, error)
}

// LegacyVault reads the encrypted blob left behind by the old client
type LegacyVault interface {
	// Read returns the raw encrypted blob
	// Returns domain.ErrStorageNotFound when no vault exists
	Read(ctx context.Context) ([]byte, error)

	// Exists reports whether a vault blob is present
	Exists(ctx context.Context) (bool, error)
}

// AlertPublisher defines the interface for publishing wellbeing alerts
type AlertPublisher interface {
	// PublishWellbeingAlert publishes an alert event for concerning check-ins
	PublishWellbeingAlert(ctx context.Context, userID string, mood *domain.MoodCheckIn) error
}

// ScheduleSource provides national immunisation schedules by country
type ScheduleSource interface {
	// ScheduleForCountry returns the schedule for a country code
	// Returns domain.ErrStorageNotFound for unsupported countries
	ScheduleForCountry(country string) (domain.CountrySchedule, error)

	// SupportedCountries lists the available country codes
	SupportedCountries() []string
}
