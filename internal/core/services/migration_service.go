package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// Migration stages reported in MigrationError
const (
	MigrationStageRead    = "read"
	MigrationStageDecrypt = "decrypt"
	MigrationStageDecode  = "decode"
	MigrationStageConvert = "convert"
	MigrationStageWrite   = "write"
)

// MigrationService imports the encrypted profile vault left behind by
// the legacy client into the local store. The import is idempotent and
// never deletes the vault, so a failed run can simply be retried.
type MigrationService struct {
	vault   ports.LegacyVault
	crypter ports.Crypter
	local   ports.StorageBackend
}

// NewMigrationService creates a new migration service
func NewMigrationService(
	vault ports.LegacyVault,
	crypter ports.Crypter,
	local ports.StorageBackend,
) *MigrationService {
	return &MigrationService{
		vault:   vault,
		crypter: crypter,
		local:   local,
	}
}

// NeedsMigration reports whether a vault blob exists without a matching
// local profile. Once a local profile is written the vault is ignored.
func (s *MigrationService) NeedsMigration(ctx context.Context) (bool, error) {
	exists, err := s.vault.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check vault: %w", err)
	}
	if !exists {
		return false, nil
	}

	_, err = s.local.FetchProfile(ctx, "")
	if err == nil {
		return false, nil
	}
	if errors.Is(err, domain.ErrStorageNotFound) {
		return true, nil
	}
	return false, fmt.Errorf("failed to check local profile: %w", err)
}

// Migrate decrypts the vault, decodes the legacy payload and writes the
// converted profile locally. The vault blob is left in place. A repeat
// call after a completed import performs no reads or writes.
func (s *MigrationService) Migrate(ctx context.Context) error {
	needed, err := s.NeedsMigration(ctx)
	if err != nil {
		return err
	}
	if !needed {
		return nil
	}

	blob, err := s.vault.Read(ctx)
	if err != nil {
		return &domain.MigrationError{Stage: MigrationStageRead, Err: err}
	}

	plaintext, err := s.crypter.Decrypt(blob)
	if err != nil {
		return &domain.MigrationError{Stage: MigrationStageDecrypt, Err: err}
	}

	var legacy domain.LegacyProfile
	if err := json.Unmarshal(plaintext, &legacy); err != nil {
		return &domain.MigrationError{Stage: MigrationStageDecode, Err: err}
	}

	profile, err := convertLegacyProfile(legacy)
	if err != nil {
		return &domain.MigrationError{Stage: MigrationStageConvert, Err: err}
	}

	if err := s.local.SaveProfile(ctx, "", profile); err != nil {
		return &domain.MigrationError{Stage: MigrationStageWrite, Err: err}
	}

	s.logMigration(profile)
	return nil
}

// convertLegacyProfile maps the legacy payload onto the current model
func convertLegacyProfile(legacy domain.LegacyProfile) (*domain.UserProfile, error) {
	userType, ok := domain.ConvertLegacyUserType(legacy.UserType)
	if !ok {
		return nil, fmt.Errorf("unrecognised legacy user type: %q", legacy.UserType)
	}

	return &domain.UserProfile{
		ID:                   uuid.New(),
		FirstName:            legacy.FirstName,
		LastName:             legacy.LastName,
		Email:                legacy.Email,
		Country:              legacy.Country,
		MobileNumber:         legacy.MobileNumber,
		UserType:             userType,
		ExpectedDeliveryDate: legacy.ExpectedDeliveryDate,
		BirthDate:            legacy.BirthDate,
		StorageMode:          domain.ConvertLegacyStorageMode(legacy.StorageMode),
		NotificationsWanted:  legacy.NotificationsWanted,
		EmergencyContacts:    []domain.EmergencyContact{},
	}, nil
}

// logMigration logs structured JSON for a completed import
func (s *MigrationService) logMigration(profile *domain.UserProfile) {
	logEntry := map[string]interface{}{
		"event":        "legacy_profile_imported",
		"user_type":    string(profile.UserType),
		"storage_mode": string(profile.StorageMode),
		"timestamp":    time.Now().Format(time.RFC3339),
	}

	jsonBytes, err := json.Marshal(logEntry)
	if err != nil {
		log.Printf("Failed to marshal migration log entry: %v", err)
		return
	}

	log.Printf("%s", string(jsonBytes))
}
