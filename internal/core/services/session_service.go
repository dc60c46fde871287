package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// MinPasswordLength matches the identity provider's own minimum so weak
// passwords are rejected before the network call
const MinPasswordLength = 6

// SessionService implements the account session lifecycle.
// It owns the single active session: which user is signed in, which
// profile is resolved, and which storage backend is authoritative.
type SessionService struct {
	local     ports.StorageBackend
	cloud     ports.StorageBackend
	appState  ports.AppStateStore
	identity  ports.IdentityProvider
	migration ports.MigrationService

	mu         sync.Mutex
	profile    *domain.UserProfile
	userID     string
	loggedIn   bool
	onboarded  bool
	generation uint64
	resetHooks []func()
}

// NewSessionService creates a new session service
func NewSessionService(
	local ports.StorageBackend,
	cloud ports.StorageBackend,
	appState ports.AppStateStore,
	identity ports.IdentityProvider,
	migration ports.MigrationService,
) *SessionService {
	return &SessionService{
		local:     local,
		cloud:     cloud,
		appState:  appState,
		identity:  identity,
		migration: migration,
	}
}

// Startup restores persisted session state and runs the legacy import
// when needed. A failed import is logged and retried on the next launch
// rather than blocking the session. A restored session resolves its
// profile from the local store only; the cloud copy is re-fetched on
// the next explicit login.
func (s *SessionService) Startup(ctx context.Context) error {
	needed, err := s.migration.NeedsMigration(ctx)
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	if needed {
		if err := s.migration.Migrate(ctx); err != nil {
			// The vault is untouched, so the import runs again next launch
			log.Printf("Legacy import failed, will retry on next launch: %v", err)
			s.logSession("legacy_import_failed", "")
		} else {
			s.logSession("legacy_import_completed", "")
		}
	}

	onboarded, err := s.appState.HasOnboarded(ctx)
	if err != nil {
		return fmt.Errorf("failed to read onboarding flag: %w", err)
	}
	s.mu.Lock()
	s.onboarded = onboarded
	s.mu.Unlock()

	loggedIn, err := s.appState.IsLoggedIn(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session flag: %w", err)
	}
	if !loggedIn {
		return nil
	}

	profile, err := s.local.FetchProfile(ctx, s.identity.CurrentUserID())
	if err != nil && !errors.Is(err, domain.ErrStorageNotFound) {
		return fmt.Errorf("failed to restore profile: %w", err)
	}

	s.mu.Lock()
	s.loggedIn = true
	// A session without a stored profile is valid: the user is routed
	// back through onboarding instead of being logged out
	s.profile = profile
	s.mu.Unlock()

	s.logSession("session_restored", "")
	return nil
}

// Login authenticates the account and resolves the profile. The cloud
// copy wins when reachable; when it is not, the local cache and then
// the legacy vault stand in. A cloud failure never overwrites the local
// cache.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	userID, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, fromCloud, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Write-through: a successfully fetched cloud profile refreshes the
	// local cache so the next offline login still has data
	if fromCloud && profile != nil {
		if cacheErr := s.local.SaveProfile(ctx, userID, profile); cacheErr != nil {
			log.Printf("Failed to refresh local profile cache: %v", cacheErr)
		}
	}

	if err := s.appState.SetLoggedIn(ctx, true); err != nil {
		return nil, fmt.Errorf("failed to persist session flag: %w", err)
	}
	// A resolved profile means onboarding already happened, on whichever
	// device; the flag must stick even when only the local cache answered
	if profile != nil {
		if err := s.appState.SetOnboarded(ctx, true); err != nil {
			return nil, fmt.Errorf("failed to persist onboarding flag: %w", err)
		}
	}

	s.mu.Lock()
	s.loggedIn = true
	s.userID = userID
	s.profile = profile
	if profile != nil {
		s.onboarded = true
	}
	s.generation++
	s.mu.Unlock()
	s.fireSessionReset()

	s.logSession("login_succeeded", userID)
	return profile, nil
}

// resolveProfile fetches the profile from the cloud first, then the
// local cache, then a not-yet-imported legacy vault. A missing profile
// everywhere is not an error: login proceeds with an empty profile and
// the user repeats onboarding.
func (s *SessionService) resolveProfile(ctx context.Context, userID string) (*domain.UserProfile, bool, error) {
	profile, err := s.cloud.FetchProfile(ctx, userID)
	if err == nil {
		return profile, true, nil
	}
	if !errors.Is(err, domain.ErrStorageNotFound) && !errors.Is(err, domain.ErrStorageNetwork) {
		return nil, false, fmt.Errorf("failed to fetch cloud profile: %w", err)
	}

	local, localErr := s.local.FetchProfile(ctx, userID)
	if localErr == nil {
		return local, false, nil
	}
	if !errors.Is(localErr, domain.ErrStorageNotFound) {
		return nil, false, fmt.Errorf("failed to fetch local profile: %w", localErr)
	}

	// Last resort: the legacy vault may still hold an un-imported
	// profile, typically after a failed import at startup
	needed, needErr := s.migration.NeedsMigration(ctx)
	if needErr != nil || !needed {
		if needErr != nil {
			log.Printf("Failed to check legacy vault during login: %v", needErr)
		}
		return nil, false, nil
	}
	if migErr := s.migration.Migrate(ctx); migErr != nil {
		log.Printf("Legacy import during login failed: %v", migErr)
		return nil, false, nil
	}
	imported, impErr := s.local.FetchProfile(ctx, userID)
	if impErr != nil {
		return nil, false, nil
	}
	return imported, false, nil
}

// CompleteOnboarding validates the collected answers, creates the
// account and persists the initial profile. The identity account is
// always created; the cloud profile document only exists for cloud
// storage mode.
func (s *SessionService) CompleteOnboarding(ctx context.Context, req ports.OnboardingRequest) (*domain.UserProfile, error) {
	if err := validateOnboarding(req); err != nil {
		return nil, err
	}

	userID, err := s.identity.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &domain.UserProfile{
		ID:                   uuid.New(),
		FirstName:            strings.TrimSpace(req.FirstName),
		LastName:             strings.TrimSpace(req.LastName),
		Email:                strings.ToLower(strings.TrimSpace(req.Email)),
		Country:              req.Country,
		MobileNumber:         req.MobileNumber,
		UserType:             req.UserType,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		BirthDate:            req.BirthDate,
		StorageMode:          req.StorageMode,
		PrivacyAcceptedAt:    &now,
		NotificationsWanted:  req.NotificationsWanted,
		EmergencyContacts:    []domain.EmergencyContact{},
	}

	if err := s.local.SaveProfile(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if req.StorageMode == domain.StorageModeCloud {
		if err := s.cloud.SaveProfile(ctx, userID, profile); err != nil {
			return nil, fmt.Errorf("failed to save cloud profile: %w", err)
		}
	}

	if err := s.appState.SetLoggedIn(ctx, true); err != nil {
		return nil, fmt.Errorf("failed to persist session flag: %w", err)
	}
	if err := s.appState.SetOnboarded(ctx, true); err != nil {
		return nil, fmt.Errorf("failed to persist onboarding flag: %w", err)
	}

	s.mu.Lock()
	s.loggedIn = true
	s.userID = userID
	s.profile = profile
	s.onboarded = true
	s.generation++
	s.mu.Unlock()
	s.fireSessionReset()

	s.logSession("onboarding_completed", userID)
	return profile, nil
}

// validateOnboarding enforces the onboarding flow's input rules
func validateOnboarding(req ports.OnboardingRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return domain.NewValidationError("first_name", "must not be empty")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return domain.NewValidationError("last_name", "must not be empty")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return domain.NewAuthError(domain.AuthErrInvalidEmail)
	}
	if len(req.Password) < MinPasswordLength {
		return domain.NewAuthError(domain.AuthErrWeakPassword)
	}
	if req.Password != req.ConfirmPassword {
		return domain.NewValidationError("confirm_password", "passwords do not match")
	}
	if !req.PrivacyAccepted {
		return domain.NewValidationError("privacy_accepted", "privacy policy must be accepted")
	}
	if !req.StorageConsented {
		return domain.NewValidationError("storage_consented", "storage consent is required")
	}
	if !domain.IsValidStorageMode(req.StorageMode) {
		return domain.NewValidationError("storage_mode", fmt.Sprintf("unknown mode: %s", req.StorageMode))
	}
	switch req.UserType {
	case domain.UserTypePregnant:
		if req.ExpectedDeliveryDate == nil {
			return domain.NewValidationError("expected_delivery_date", "required for pregnant users")
		}
	case domain.UserTypeHasChild:
		if req.BirthDate == nil {
			return domain.NewValidationError("birth_date", "required for postpartum users")
		}
	default:
		return domain.NewValidationError("user_type", fmt.Sprintf("unknown type: %s", req.UserType))
	}
	return nil
}

// Logout ends the session. Stored data on both backends is left intact
// so the user can log back in later.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.appState.SetLoggedIn(ctx, false); err != nil {
		return fmt.Errorf("failed to persist session flag: %w", err)
	}

	s.mu.Lock()
	userID := s.userID
	s.loggedIn = false
	s.userID = ""
	s.profile = nil
	s.generation++
	s.mu.Unlock()
	s.fireSessionReset()

	s.identity.SignOut()
	s.logSession("logout", userID)
	return nil
}

// DeleteAccount permanently removes the account and its data. Steps run
// in order and halt on the first failure so a partial delete never
// leaves the account gone while cloud data remains: cloud data first,
// then the identity account, then the local store.
func (s *SessionService) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	if !s.loggedIn {
		s.mu.Unlock()
		return domain.NewAuthError(domain.AuthErrInvalidCredentials)
	}
	userID := s.userID
	cloudMode := s.profile != nil && s.profile.StorageMode == domain.StorageModeCloud
	s.mu.Unlock()

	if cloudMode {
		if err := s.cloud.DeleteAllUserData(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete cloud data: %w", err)
		}
	}

	if err := s.identity.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := s.local.DeleteAllUserData(ctx, userID); err != nil {
		return fmt.Errorf("failed to purge local data: %w", err)
	}

	if err := s.appState.SetLoggedIn(ctx, false); err != nil {
		return fmt.Errorf("failed to persist session flag: %w", err)
	}

	s.mu.Lock()
	s.loggedIn = false
	s.userID = ""
	s.profile = nil
	s.onboarded = false
	s.generation++
	s.mu.Unlock()
	s.fireSessionReset()

	s.logSession("account_deleted", userID)
	return nil
}

// CurrentProfile returns the resolved profile for the active session
func (s *SessionService) CurrentProfile() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// IsLoggedIn reports whether a session is active
func (s *SessionService) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// HasOnboarded reports whether onboarding ever completed on this device,
// persisted across restarts and independent of the login state
func (s *SessionService) HasOnboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onboarded
}

// OnSessionReset registers a hook invoked after every session change:
// login, onboarding, logout and account deletion. Services holding
// per-session caches register their reset here.
func (s *SessionService) OnSessionReset(hook func()) {
	s.mu.Lock()
	s.resetHooks = append(s.resetHooks, hook)
	s.mu.Unlock()
}

// fireSessionReset runs the registered hooks outside the state lock
func (s *SessionService) fireSessionReset() {
	s.mu.Lock()
	hooks := make([]func(), len(s.resetHooks))
	copy(hooks, s.resetHooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// CurrentUserID returns the signed-in user ID, empty when logged out
func (s *SessionService) CurrentUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Generation returns the session generation counter. Asynchronous work
// started under one generation must discard its result if the counter
// has moved on by the time it completes.
func (s *SessionService) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// UpdateProfile persists profile edits. Cloud users write to both
// backends; a cloud failure surfaces the error and leaves the local
// cache as it was.
func (s *SessionService) UpdateProfile(ctx context.Context, profile *domain.UserProfile) error {
	s.mu.Lock()
	if !s.loggedIn {
		s.mu.Unlock()
		return domain.NewAuthError(domain.AuthErrInvalidCredentials)
	}
	userID := s.userID
	s.mu.Unlock()

	if profile == nil {
		return domain.NewValidationError("profile", "must not be nil")
	}

	if profile.StorageMode == domain.StorageModeCloud {
		if err := s.cloud.SaveProfile(ctx, userID, profile); err != nil {
			return fmt.Errorf("failed to save cloud profile: %w", err)
		}
	}

	if err := s.local.SaveProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	s.logSession("profile_updated", userID)
	return nil
}

// ChangeStorageMode switches which backend is authoritative. Existing
// data is not migrated between backends; only future writes follow the
// new mode.
func (s *SessionService) ChangeStorageMode(ctx context.Context, mode domain.StorageMode) error {
	if !domain.IsValidStorageMode(mode) {
		return domain.NewValidationError("storage_mode", fmt.Sprintf("unknown mode: %s", mode))
	}

	s.mu.Lock()
	if !s.loggedIn || s.profile == nil {
		s.mu.Unlock()
		return domain.NewAuthError(domain.AuthErrInvalidCredentials)
	}
	updated := *s.profile
	s.mu.Unlock()

	updated.StorageMode = mode
	return s.UpdateProfile(ctx, &updated)
}

// logSession logs structured JSON for session lifecycle events
func (s *SessionService) logSession(event, userID string) {
	logEntry := map[string]interface{}{
		"event":     event,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if userID != "" {
		logEntry["user_id"] = userID
	}

	jsonBytes, err := json.Marshal(logEntry)
	if err != nil {
		log.Printf("Failed to marshal session log entry: %v", err)
		return
	}

	log.Printf("%s", string(jsonBytes))
}
