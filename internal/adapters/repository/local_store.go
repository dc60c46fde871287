package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
	"github.com/sony/gobreaker"
)

// LocalStore implements StorageBackend, AppStateStore and
// VaccineCompletionStore on the on-device SQLite database.
// Includes retry logic and circuit breaker for resilience.
// The local database is single-tenant: it holds exactly one profile and
// the user_id column only records which account last wrote it.
type LocalStore struct {
	db         *sql.DB
	profileCB  *gobreaker.CircuitBreaker
	moodCB     *gobreaker.CircuitBreaker
	trackingCB *gobreaker.CircuitBreaker
	maxRetries int
	retryDelay time.Duration
}

// NewLocalStore creates a new SQLite store with circuit breakers
func NewLocalStore(db *sql.DB) *LocalStore {
	settings := gobreaker.Settings{
		Name:        "sqlite",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	}

	return &LocalStore{
		db:         db,
		profileCB:  gobreaker.NewCircuitBreaker(settings),
		moodCB:     gobreaker.NewCircuitBreaker(settings),
		trackingCB: gobreaker.NewCircuitBreaker(settings),
		maxRetries: 3,
		retryDelay: 200 * time.Millisecond,
	}
}

// executeWithRetry executes a database operation with retry logic
func (r *LocalStore) executeWithRetry(ctx context.Context, operation func() error) error {
	var lastErr error
	for i := 0; i < r.maxRetries; i++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err
		// Don't retry missing rows - not a transient error
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, domain.ErrStorageNotFound) ||
			strings.Contains(strings.ToLower(err.Error()), "no rows") {
			return err
		}
		if i < r.maxRetries-1 {
			time.Sleep(r.retryDelay)
		}
	}
	return fmt.Errorf("operation failed after %d retries: %w", r.maxRetries, lastErr)
}

// translateErr maps driver errors onto the storage sentinels
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) ||
		strings.Contains(strings.ToLower(err.Error()), "no rows") {
		return domain.ErrStorageNotFound
	}
	return err
}

// StorageBackend implementation

func (r *LocalStore) SaveProfile(ctx context.Context, userID string, profile *domain.UserProfile) error {
	contacts, err := json.Marshal(profile.EmergencyContacts)
	if err != nil {
		return fmt.Errorf("failed to encode emergency contacts: %w", err)
	}

	_, cbErr := r.profileCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO profile (
				slot, id, user_id, first_name, last_name, email, country, mobile_number,
				user_type, expected_delivery_date, birth_date, storage_mode,
				privacy_accepted_at, notifications_wanted, emergency_contacts
			) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slot) DO UPDATE SET
				id = excluded.id,
				user_id = excluded.user_id,
				first_name = excluded.first_name,
				last_name = excluded.last_name,
				email = excluded.email,
				country = excluded.country,
				mobile_number = excluded.mobile_number,
				user_type = excluded.user_type,
				expected_delivery_date = excluded.expected_delivery_date,
				birth_date = excluded.birth_date,
				storage_mode = excluded.storage_mode,
				privacy_accepted_at = excluded.privacy_accepted_at,
				notifications_wanted = excluded.notifications_wanted,
				emergency_contacts = excluded.emergency_contacts`
			_, err := r.db.ExecContext(ctx, query,
				profile.ID.String(),
				userID,
				profile.FirstName,
				profile.LastName,
				profile.Email,
				profile.Country,
				profile.MobileNumber,
				string(profile.UserType),
				nullableTime(profile.ExpectedDeliveryDate),
				nullableTime(profile.BirthDate),
				string(profile.StorageMode),
				nullableTime(profile.PrivacyAcceptedAt),
				profile.NotificationsWanted,
				string(contacts),
			)
			return err
		})
	})
	return cbErr
}

func (r *LocalStore) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	result, err := r.profileCB.Execute(func() (interface{}, error) {
		var profile domain.UserProfile
		var (
			idStr, userType, storageMode, contacts string
			edd, birth, privacy                    sql.NullTime
		)
		err := r.executeWithRetry(ctx, func() error {
			query := `SELECT id, first_name, last_name, email, country, mobile_number,
				user_type, expected_delivery_date, birth_date, storage_mode,
				privacy_accepted_at, notifications_wanted, emergency_contacts
				FROM profile WHERE slot = 1`
			row := r.db.QueryRowContext(ctx, query)
			return row.Scan(
				&idStr,
				&profile.FirstName,
				&profile.LastName,
				&profile.Email,
				&profile.Country,
				&profile.MobileNumber,
				&userType,
				&edd,
				&birth,
				&storageMode,
				&privacy,
				&profile.NotificationsWanted,
				&contacts,
			)
		})
		if err != nil {
			return nil, err
		}

		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return nil, fmt.Errorf("corrupt profile id: %w", parseErr)
		}
		profile.ID = id
		profile.UserType = domain.UserType(userType)
		profile.StorageMode = domain.StorageMode(storageMode)
		profile.ExpectedDeliveryDate = timePtr(edd)
		profile.BirthDate = timePtr(birth)
		profile.PrivacyAcceptedAt = timePtr(privacy)
		profile.EmergencyContacts = []domain.EmergencyContact{}
		if contacts != "" {
			if decodeErr := json.Unmarshal([]byte(contacts), &profile.EmergencyContacts); decodeErr != nil {
				return nil, fmt.Errorf("corrupt emergency contacts: %w", decodeErr)
			}
		}
		return &profile, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.(*domain.UserProfile), nil
}

func (r *LocalStore) SaveMood(ctx context.Context, userID string, mood *domain.MoodCheckIn) error {
	_, err := r.moodCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO moods (id, user_id, mood, note, date) VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET mood = excluded.mood, note = excluded.note, date = excluded.date`
			_, err := r.db.ExecContext(ctx, query,
				mood.ID.String(), userID, string(mood.Mood), mood.Note, mood.Date)
			return err
		})
	})
	return err
}

func (r *LocalStore) FetchMoods(ctx context.Context, userID string) ([]*domain.MoodCheckIn, error) {
	result, err := r.moodCB.Execute(func() (interface{}, error) {
		moods := []*domain.MoodCheckIn{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT id, user_id, mood, note, date FROM moods ORDER BY date DESC`)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			moods = moods[:0]
			for rows.Next() {
				var m domain.MoodCheckIn
				var idStr, moodStr string
				if err := rows.Scan(&idStr, &m.UserID, &moodStr, &m.Note, &m.Date); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt mood id: %w", parseErr)
				}
				m.ID = id
				m.Mood = domain.MoodType(moodStr)
				moods = append(moods, &m)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return moods, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]*domain.MoodCheckIn), nil
}

func (r *LocalStore) DeleteMood(ctx context.Context, userID string, moodID uuid.UUID) error {
	_, err := r.moodCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			result, err := r.db.ExecContext(ctx, `DELETE FROM moods WHERE id = ?`, moodID.String())
			if err != nil {
				return err
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return domain.ErrStorageNotFound
			}
			return nil
		})
	})
	return err
}

// DeleteAllUserData wipes every local table in one transaction
func (r *LocalStore) DeleteAllUserData(ctx context.Context, userID string) error {
	_, err := r.profileCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			tx, err := r.db.BeginTx(ctx, nil)
			if err != nil {
				return err
			}
			defer tx.Rollback()

			tables := []string{
				"profile", "moods", "app_state", "vaccine_completions",
				"weight_entries", "symptom_entries", "kick_sessions",
				"contractions", "water_intake", "bag_items", "appointments",
			}
			for _, table := range tables {
				if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
					return fmt.Errorf("failed to clear %s: %w", table, err)
				}
			}
			return tx.Commit()
		})
	})
	return err
}

// AppStateStore implementation

func (r *LocalStore) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	return r.setFlag(ctx, "logged_in", loggedIn)
}

func (r *LocalStore) IsLoggedIn(ctx context.Context) (bool, error) {
	return r.getFlag(ctx, "logged_in")
}

func (r *LocalStore) SetOnboarded(ctx context.Context, onboarded bool) error {
	return r.setFlag(ctx, "onboarded", onboarded)
}

func (r *LocalStore) HasOnboarded(ctx context.Context) (bool, error) {
	return r.getFlag(ctx, "onboarded")
}

func (r *LocalStore) setFlag(ctx context.Context, key string, set bool) error {
	_, err := r.profileCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO app_state (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value`
			value := "false"
			if set {
				value = "true"
			}
			_, err := r.db.ExecContext(ctx, query, key, value)
			return err
		})
	})
	return err
}

// getFlag reads an app_state flag, a missing row reads as false
func (r *LocalStore) getFlag(ctx context.Context, key string) (bool, error) {
	result, err := r.profileCB.Execute(func() (interface{}, error) {
		var value string
		err := r.executeWithRetry(ctx, func() error {
			row := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key)
			return row.Scan(&value)
		})
		if err != nil {
			if errors.Is(translateErr(err), domain.ErrStorageNotFound) {
				return false, nil
			}
			return nil, err
		}
		return value == "true", nil
	})

	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// VaccineCompletionStore implementation

func (r *LocalStore) SaveCompletion(ctx context.Context, completion domain.VaccineCompletion) error {
	_, err := r.profileCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO vaccine_completions (item_id, completed_date) VALUES (?, ?)
				ON CONFLICT(item_id) DO UPDATE SET completed_date = excluded.completed_date`
			_, err := r.db.ExecContext(ctx, query,
				completion.ItemID.String(), completion.CompletedDate)
			return err
		})
	})
	return err
}

func (r *LocalStore) ListCompletions(ctx context.Context) ([]domain.VaccineCompletion, error) {
	result, err := r.profileCB.Execute(func() (interface{}, error) {
		completions := []domain.VaccineCompletion{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT item_id, completed_date FROM vaccine_completions`)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			completions = completions[:0]
			for rows.Next() {
				var c domain.VaccineCompletion
				var idStr string
				if err := rows.Scan(&idStr, &c.CompletedDate); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt completion id: %w", parseErr)
				}
				c.ItemID = id
				completions = append(completions, c)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return completions, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]domain.VaccineCompletion), nil
}

func (r *LocalStore) DeleteCompletion(ctx context.Context, itemID uuid.UUID) error {
	_, err := r.profileCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			_, err := r.db.ExecContext(ctx,
				`DELETE FROM vaccine_completions WHERE item_id = ?`, itemID.String())
			return err
		})
	})
	return err
}

// nullableTime converts a *time.Time for a nullable column
func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// timePtr converts a scanned nullable column back to *time.Time
func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}

// Ensure LocalStore implements the interfaces
var _ ports.StorageBackend = (*LocalStore)(nil)
var _ ports.AppStateStore = (*LocalStore)(nil)
var _ ports.VaccineCompletionStore = (*LocalStore)(nil)
