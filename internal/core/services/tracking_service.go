package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// TrackingService implements business logic for health tracking.
// All tracking data is device-only: it is written to the local store
// and never synced to the cloud regardless of storage mode.
type TrackingService struct {
	repo ports.TrackingRepository
	now  func() time.Time
}

// NewTrackingService creates a new tracking service
func NewTrackingService(repo ports.TrackingRepository) *TrackingService {
	return &TrackingService{
		repo: repo,
		now:  time.Now,
	}
}

// LogWeight records a body-weight measurement
func (s *TrackingService) LogWeight(ctx context.Context, weight float64, unit domain.WeightUnit, note string, date time.Time) (*domain.WeightEntry, error) {
	if weight <= 0 {
		return nil, domain.NewValidationError("weight", "must be greater than 0")
	}
	if weight > 500 {
		return nil, domain.NewValidationError("weight", "exceeds reasonable maximum")
	}
	if !domain.IsValidWeightUnit(unit) {
		return nil, domain.NewValidationError("unit", fmt.Sprintf("unknown unit: %s", unit))
	}
	if date.IsZero() {
		date = s.now()
	}

	entry := &domain.WeightEntry{
		ID:     uuid.New(),
		Date:   date,
		Weight: weight,
		Unit:   unit,
		Note:   note,
	}
	if err := s.repo.SaveWeightEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save weight entry: %w", err)
	}
	return entry, nil
}

// WeightHistory returns logged weights newest first
func (s *TrackingService) WeightHistory(ctx context.Context) ([]*domain.WeightEntry, error) {
	entries, err := s.repo.ListWeightEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}
	return entries, nil
}

// DeleteWeightEntry removes one logged weight
func (s *TrackingService) DeleteWeightEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteWeightEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete weight entry: %w", err)
	}
	return nil
}

// LogSymptom records a symptom occurrence
func (s *TrackingService) LogSymptom(ctx context.Context, symptom domain.SymptomType, severity domain.SymptomSeverity, note string, date time.Time) (*domain.SymptomEntry, error) {
	if !domain.IsValidSymptomType(symptom) {
		return nil, domain.NewValidationError("symptom", fmt.Sprintf("unknown type: %s", symptom))
	}
	if !domain.IsValidSymptomSeverity(severity) {
		return nil, domain.NewValidationError("severity", fmt.Sprintf("unknown severity: %s", severity))
	}
	if date.IsZero() {
		date = s.now()
	}

	entry := &domain.SymptomEntry{
		ID:       uuid.New(),
		Date:     date,
		Symptom:  symptom,
		Severity: severity,
		Note:     note,
	}
	if err := s.repo.SaveSymptomEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save symptom entry: %w", err)
	}
	return entry, nil
}

// SymptomHistory returns logged symptoms newest first
func (s *TrackingService) SymptomHistory(ctx context.Context) ([]*domain.SymptomEntry, error) {
	entries, err := s.repo.ListSymptomEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list symptom entries: %w", err)
	}
	return entries, nil
}

// DeleteSymptomEntry removes one logged symptom
func (s *TrackingService) DeleteSymptomEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteSymptomEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete symptom entry: %w", err)
	}
	return nil
}

// StartKickSession opens a new kick counting session
func (s *TrackingService) StartKickSession(ctx context.Context) (*domain.KickCountSession, error) {
	session := &domain.KickCountSession{
		ID:        uuid.New(),
		StartTime: s.now(),
	}
	if err := s.repo.SaveKickSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to start kick session: %w", err)
	}
	return session, nil
}

// RecordKick increments the count on an open session
func (s *TrackingService) RecordKick(ctx context.Context, sessionID uuid.UUID) (*domain.KickCountSession, error) {
	session, err := s.findKickSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return nil, domain.NewValidationError("session", "already ended")
	}

	session.KickCount++
	if err := s.repo.SaveKickSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to record kick: %w", err)
	}
	return session, nil
}

// EndKickSession closes an open session
func (s *TrackingService) EndKickSession(ctx context.Context, sessionID uuid.UUID) (*domain.KickCountSession, error) {
	session, err := s.findKickSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive() {
		return session, nil
	}

	end := s.now()
	session.EndTime = &end
	if err := s.repo.SaveKickSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to end kick session: %w", err)
	}
	return session, nil
}

// KickSessionHistory returns counting sessions newest first
func (s *TrackingService) KickSessionHistory(ctx context.Context) ([]*domain.KickCountSession, error) {
	sessions, err := s.repo.ListKickSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list kick sessions: %w", err)
	}
	return sessions, nil
}

func (s *TrackingService) findKickSession(ctx context.Context, sessionID uuid.UUID) (*domain.KickCountSession, error) {
	sessions, err := s.repo.ListKickSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list kick sessions: %w", err)
	}
	for _, session := range sessions {
		if session.ID == sessionID {
			return session, nil
		}
	}
	return nil, fmt.Errorf("kick session %s: %w", sessionID, domain.ErrStorageNotFound)
}

// StartContraction opens a new timed contraction
func (s *TrackingService) StartContraction(ctx context.Context) (*domain.Contraction, error) {
	contraction := &domain.Contraction{
		ID:        uuid.New(),
		StartTime: s.now(),
	}
	if err := s.repo.SaveContraction(ctx, contraction); err != nil {
		return nil, fmt.Errorf("failed to start contraction: %w", err)
	}
	return contraction, nil
}

// EndContraction closes an open contraction
func (s *TrackingService) EndContraction(ctx context.Context, contractionID uuid.UUID) (*domain.Contraction, error) {
	contractions, err := s.repo.ListContractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractions: %w", err)
	}

	for _, contraction := range contractions {
		if contraction.ID == contractionID {
			if contraction.EndTime != nil {
				return contraction, nil
			}
			end := s.now()
			contraction.EndTime = &end
			if err := s.repo.SaveContraction(ctx, contraction); err != nil {
				return nil, fmt.Errorf("failed to end contraction: %w", err)
			}
			return contraction, nil
		}
	}
	return nil, fmt.Errorf("contraction %s: %w", contractionID, domain.ErrStorageNotFound)
}

// ContractionHistory returns timed contractions newest first
func (s *TrackingService) ContractionHistory(ctx context.Context) ([]*domain.Contraction, error) {
	contractions, err := s.repo.ListContractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractions: %w", err)
	}
	return contractions, nil
}

// ClearContractions wipes the contraction log, used once labour is over
func (s *TrackingService) ClearContractions(ctx context.Context) error {
	if err := s.repo.DeleteContractions(ctx); err != nil {
		return fmt.Errorf("failed to clear contractions: %w", err)
	}
	return nil
}

// LogWater records a drink
func (s *TrackingService) LogWater(ctx context.Context, amount float64, unit domain.WaterUnit, date time.Time) (*domain.WaterIntakeEntry, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "must be greater than 0")
	}
	if !domain.IsValidWaterUnit(unit) {
		return nil, domain.NewValidationError("unit", fmt.Sprintf("unknown unit: %s", unit))
	}
	if date.IsZero() {
		date = s.now()
	}

	entry := &domain.WaterIntakeEntry{
		ID:     uuid.New(),
		Date:   date,
		Amount: amount,
		Unit:   unit,
	}
	if err := s.repo.SaveWaterIntake(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save water intake: %w", err)
	}
	return entry, nil
}

// WaterIntakeForDay returns the day's drinks along with the total in
// millilitres
func (s *TrackingService) WaterIntakeForDay(ctx context.Context, day time.Time) ([]*domain.WaterIntakeEntry, float64, error) {
	if day.IsZero() {
		day = s.now()
	}
	entries, err := s.repo.ListWaterIntake(ctx, day)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list water intake: %w", err)
	}

	var totalMl float64
	for _, entry := range entries {
		totalMl += entry.AmountMl()
	}
	return entries, totalMl, nil
}

// SaveBagItem adds a hospital bag checklist entry
func (s *TrackingService) SaveBagItem(ctx context.Context, name string, category domain.BagCategory, packed bool) (*domain.HospitalBagItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	if !domain.IsValidBagCategory(category) {
		return nil, domain.NewValidationError("category", fmt.Sprintf("unknown category: %s", category))
	}

	item := &domain.HospitalBagItem{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Category: category,
		Packed:   packed,
	}
	if err := s.repo.SaveBagItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save bag item: %w", err)
	}
	return item, nil
}

// SetBagItemPacked toggles a checklist entry
func (s *TrackingService) SetBagItemPacked(ctx context.Context, id uuid.UUID, packed bool) error {
	items, err := s.repo.ListBagItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bag items: %w", err)
	}
	for _, item := range items {
		if item.ID == id {
			item.Packed = packed
			if err := s.repo.SaveBagItem(ctx, item); err != nil {
				return fmt.Errorf("failed to update bag item: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("bag item %s: %w", id, domain.ErrStorageNotFound)
}

// BagChecklist returns the hospital bag checklist
func (s *TrackingService) BagChecklist(ctx context.Context) ([]*domain.HospitalBagItem, error) {
	items, err := s.repo.ListBagItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bag items: %w", err)
	}
	return items, nil
}

// DeleteBagItem removes a checklist entry
func (s *TrackingService) DeleteBagItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBagItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete bag item: %w", err)
	}
	return nil
}

// SaveAppointment records a scheduled medical visit
func (s *TrackingService) SaveAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	if strings.TrimSpace(appointment.Title) == "" {
		return nil, domain.NewValidationError("title", "must not be empty")
	}
	if appointment.Date.IsZero() {
		return nil, domain.NewValidationError("date", "must be set")
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}

	if err := s.repo.SaveAppointment(ctx, &appointment); err != nil {
		return nil, fmt.Errorf("failed to save appointment: %w", err)
	}
	return &appointment, nil
}

// Appointments returns scheduled visits soonest first
func (s *TrackingService) Appointments(ctx context.Context) ([]*domain.Appointment, error) {
	appointments, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// DeleteAppointment removes a scheduled visit
func (s *TrackingService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
