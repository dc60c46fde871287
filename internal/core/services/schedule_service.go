package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// ScheduleService implements business logic for the vaccine schedule.
// The schedule is always rebuilt from the country data and the profile
// reference date; only completions are persisted.
type ScheduleService struct {
	session     *SessionService
	source      ports.ScheduleSource
	completions ports.VaccineCompletionStore
	now         func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	session *SessionService,
	source ports.ScheduleSource,
	completions ports.VaccineCompletionStore,
) *ScheduleService {
	return &ScheduleService{
		session:     session,
		source:      source,
		completions: completions,
		now:         time.Now,
	}
}

// CurrentSchedule builds the resolved schedule for the active profile
// with recorded completions applied
func (s *ScheduleService) CurrentSchedule(ctx context.Context) ([]domain.VaccineItem, error) {
	profile := s.session.CurrentProfile()
	if profile == nil {
		return nil, domain.NewAuthError(domain.AuthErrInvalidCredentials)
	}

	referenceDate, ok := profile.ReferenceDate()
	if !ok {
		// Onboarding not finished yet: no dates means no schedule
		return []domain.VaccineItem{}, nil
	}

	if !s.countrySupported(profile.Country) {
		// No schedule data for this country, nothing to show
		return []domain.VaccineItem{}, nil
	}

	schedule, err := s.source.ScheduleForCountry(profile.Country)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	items := domain.BuildSchedule(schedule, referenceDate, s.now())

	completions, err := s.completions.ListCompletions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	return domain.MergeCompletions(items, completions), nil
}

// countrySupported reports whether schedule data exists for a country.
// Lookup is an exact match, there is no locale fallback.
func (s *ScheduleService) countrySupported(country string) bool {
	for _, c := range s.source.SupportedCountries() {
		if c == country {
			return true
		}
	}
	return false
}

// MarkCompleted pins a schedule entry as done. The entry keeps completed
// status across rebuilds until explicitly unmarked.
func (s *ScheduleService) MarkCompleted(ctx context.Context, itemID uuid.UUID, completedDate time.Time) error {
	items, err := s.CurrentSchedule(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, item := range items {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("schedule entry %s: %w", itemID, domain.ErrStorageNotFound)
	}

	if completedDate.IsZero() {
		completedDate = s.now()
	}

	completion := domain.VaccineCompletion{
		ItemID:        itemID,
		CompletedDate: completedDate,
	}
	if err := s.completions.SaveCompletion(ctx, completion); err != nil {
		return fmt.Errorf("failed to save completion: %w", err)
	}
	return nil
}

// UnmarkCompleted reverts a pinned entry to date-based status
func (s *ScheduleService) UnmarkCompleted(ctx context.Context, itemID uuid.UUID) error {
	if err := s.completions.DeleteCompletion(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}
	return nil
}
