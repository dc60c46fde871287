package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// MoodService implements business logic for mood check-ins.
// Writes are optimistic: the check-in lands in the session cache
// immediately and the backend write happens in the background. A failed
// write is logged but never rolls the entry back.
type MoodService struct {
	session        *SessionService
	local          ports.StorageBackend
	cloud          ports.StorageBackend
	alertPublisher ports.AlertPublisher

	mu     sync.Mutex
	moods  []*domain.MoodCheckIn
	loaded bool
}

// NewMoodService creates a new mood service
func NewMoodService(
	session *SessionService,
	local ports.StorageBackend,
	cloud ports.StorageBackend,
	alertPublisher ports.AlertPublisher,
) *MoodService {
	s := &MoodService{
		session:        session,
		local:          local,
		cloud:          cloud,
		alertPublisher: alertPublisher,
	}
	// The mood cache belongs to one session; drop it whenever the
	// session changes so the next account never sees stale entries
	session.OnSessionReset(s.Reset)
	return s
}

// backend returns the authoritative store for the active storage mode
func (s *MoodService) backend() ports.StorageBackend {
	profile := s.session.CurrentProfile()
	if profile != nil && profile.StorageMode == domain.StorageModeCloud {
		return s.cloud
	}
	return s.local
}

// RecordMood appends a check-in and persists it in the background.
// Concerning moods additionally raise a wellbeing alert.
func (s *MoodService) RecordMood(ctx context.Context, mood domain.MoodType, note string) (*domain.MoodCheckIn, error) {
	if !s.session.IsLoggedIn() {
		return nil, domain.NewAuthError(domain.AuthErrInvalidCredentials)
	}
	if !domain.IsValidMoodType(mood) {
		return nil, domain.NewValidationError("mood", fmt.Sprintf("unknown type: %s", mood))
	}

	userID := s.session.CurrentUserID()
	checkIn := &domain.MoodCheckIn{
		ID:     uuid.New(),
		UserID: userID,
		Mood:   mood,
		Note:   note,
		Date:   time.Now(),
	}

	if err := s.ensureLoaded(ctx, userID); err != nil {
		log.Printf("Failed to load mood history before append: %v", err)
	}

	s.mu.Lock()
	// Newest first, matching the backend read order
	s.moods = append([]*domain.MoodCheckIn{checkIn}, s.moods...)
	s.mu.Unlock()

	// Persist in the background so the check-in feels instant. The
	// generation counter discards the write's bookkeeping if the
	// session changed underneath it.
	generation := s.session.Generation()
	backend := s.backend()
	go func() {
		bgCtx := context.Background()
		if err := backend.SaveMood(bgCtx, userID, checkIn); err != nil {
			log.Printf("Failed to persist mood check-in: %v", err)
			return
		}
		if backend == s.cloud {
			// Keep the local cache warm for offline reads
			if err := s.local.SaveMood(bgCtx, userID, checkIn); err != nil {
				log.Printf("Failed to cache mood check-in locally: %v", err)
			}
		}
		if s.session.Generation() == generation {
			s.logMood(checkIn, "persisted")
		}
	}()

	if checkIn.Mood.NeedsAttention() && s.alertPublisher != nil {
		go func() {
			bgCtx := context.Background()
			if err := s.alertPublisher.PublishWellbeingAlert(bgCtx, userID, checkIn); err != nil {
				log.Printf("Failed to publish wellbeing alert: %v", err)
			} else {
				s.logMood(checkIn, "alert_published")
			}
		}()
	}

	s.logMood(checkIn, "recorded")
	return checkIn, nil
}

// ListMoods returns check-ins newest first, loading the backend history
// on first use
func (s *MoodService) ListMoods(ctx context.Context) ([]*domain.MoodCheckIn, error) {
	if !s.session.IsLoggedIn() {
		return nil, domain.NewAuthError(domain.AuthErrInvalidCredentials)
	}

	if err := s.ensureLoaded(ctx, s.session.CurrentUserID()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.MoodCheckIn, len(s.moods))
	copy(out, s.moods)
	return out, nil
}

// ensureLoaded populates the session cache from the active backend,
// falling back to the local cache when the cloud is unreachable
func (s *MoodService) ensureLoaded(ctx context.Context, userID string) error {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	backend := s.backend()
	moods, err := backend.FetchMoods(ctx, userID)
	if err != nil {
		if backend == s.cloud && errors.Is(err, domain.ErrStorageNetwork) {
			moods, err = s.local.FetchMoods(ctx, userID)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch mood history: %w", err)
		}
	}

	s.mu.Lock()
	if !s.loaded {
		s.moods = moods
		s.loaded = true
	}
	s.mu.Unlock()
	return nil
}

// DeleteMood removes one check-in from the cache and the backend
func (s *MoodService) DeleteMood(ctx context.Context, moodID uuid.UUID) error {
	if !s.session.IsLoggedIn() {
		return domain.NewAuthError(domain.AuthErrInvalidCredentials)
	}

	userID := s.session.CurrentUserID()
	if err := s.backend().DeleteMood(ctx, userID, moodID); err != nil {
		return fmt.Errorf("failed to delete mood: %w", err)
	}
	if s.backend() == s.cloud {
		if err := s.local.DeleteMood(ctx, userID, moodID); err != nil && !errors.Is(err, domain.ErrStorageNotFound) {
			log.Printf("Failed to delete cached mood: %v", err)
		}
	}

	s.mu.Lock()
	for i, m := range s.moods {
		if m.ID == moodID {
			s.moods = append(s.moods[:i], s.moods[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Reset drops the session cache, used when the active session changes
func (s *MoodService) Reset() {
	s.mu.Lock()
	s.moods = nil
	s.loaded = false
	s.mu.Unlock()
}

// logMood logs structured JSON for mood events
func (s *MoodService) logMood(m *domain.MoodCheckIn, event string) {
	logEntry := map[string]interface{}{
		"event":     event,
		"mood_id":   m.ID.String(),
		"mood":      string(m.Mood),
		"timestamp": m.Date.Format(time.RFC3339),
	}

	jsonBytes, err := json.Marshal(logEntry)
	if err != nil {
		log.Printf("Failed to marshal mood log entry: %v", err)
		return
	}

	log.Printf("%s", string(jsonBytes))
}
