package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
	"github.com/sony/gobreaker"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection = "users"
	moodsCollection = "moods"
)

// CloudStore implements StorageBackend on Firestore.
// Profiles live at users/{uid}; mood check-ins in the moods
// subcollection underneath. Includes retry logic and a circuit breaker
// so a flaky connection degrades into the local fallback instead of
// hanging every request.
type CloudStore struct {
	client     *firestore.Client
	cb         *gobreaker.CircuitBreaker
	maxRetries int
	retryDelay time.Duration
}

// NewCloudStore creates a new Firestore store with a circuit breaker
func NewCloudStore(client *firestore.Client) *CloudStore {
	settings := gobreaker.Settings{
		Name:        "firestore",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	}

	return &CloudStore{
		client:     client,
		cb:         gobreaker.NewCircuitBreaker(settings),
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
	}
}

// executeWithRetry executes a Firestore operation with retry logic.
// Only transient failures are retried; not-found and permission errors
// surface immediately.
func (r *CloudStore) executeWithRetry(ctx context.Context, operation func() error) error {
	var lastErr error
	for i := 0; i < r.maxRetries; i++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTransient(err) {
			return err
		}
		if i < r.maxRetries-1 {
			time.Sleep(r.retryDelay)
		}
	}
	return fmt.Errorf("operation failed after %d retries: %w", r.maxRetries, lastErr)
}

// isTransient reports whether a Firestore error is worth retrying
func isTransient(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	}
	return false
}

// translateCloudErr maps grpc status codes and breaker state onto the
// storage sentinels
func translateCloudErr(err error) error {
	if err == nil {
		return nil
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("%w: %v", domain.ErrStorageNetwork, err)
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %v", domain.ErrStorageNotFound, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %v", domain.ErrStorageNetwork, err)
	case codes.Aborted, codes.FailedPrecondition:
		return fmt.Errorf("%w: %v", domain.ErrStorageConflict, err)
	}
	return err
}

func (r *CloudStore) profileDoc(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(userID)
}

func (r *CloudStore) moodDoc(userID string, moodID uuid.UUID) *firestore.DocumentRef {
	return r.profileDoc(userID).Collection(moodsCollection).Doc(moodID.String())
}

// StorageBackend implementation

func (r *CloudStore) SaveProfile(ctx context.Context, userID string, profile *domain.UserProfile) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			_, err := r.profileDoc(userID).Set(ctx, profile)
			return err
		})
	})
	return translateCloudErr(err)
}

func (r *CloudStore) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	result, err := r.cb.Execute(func() (interface{}, error) {
		var profile domain.UserProfile
		err := r.executeWithRetry(ctx, func() error {
			snapshot, err := r.profileDoc(userID).Get(ctx)
			if err != nil {
				return err
			}
			return snapshot.DataTo(&profile)
		})
		if err != nil {
			return nil, err
		}
		if profile.EmergencyContacts == nil {
			profile.EmergencyContacts = []domain.EmergencyContact{}
		}
		return &profile, nil
	})

	if err != nil {
		return nil, translateCloudErr(err)
	}
	return result.(*domain.UserProfile), nil
}

func (r *CloudStore) SaveMood(ctx context.Context, userID string, mood *domain.MoodCheckIn) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			_, err := r.moodDoc(userID, mood.ID).Set(ctx, mood)
			return err
		})
	})
	return translateCloudErr(err)
}

func (r *CloudStore) FetchMoods(ctx context.Context, userID string) ([]*domain.MoodCheckIn, error) {
	result, err := r.cb.Execute(func() (interface{}, error) {
		moods := []*domain.MoodCheckIn{}
		err := r.executeWithRetry(ctx, func() error {
			iter := r.profileDoc(userID).Collection(moodsCollection).
				OrderBy("date", firestore.Desc).Documents(ctx)
			defer iter.Stop()

			moods = moods[:0]
			for {
				snapshot, err := iter.Next()
				if err == iterator.Done {
					return nil
				}
				if err != nil {
					return err
				}
				var mood domain.MoodCheckIn
				if err := snapshot.DataTo(&mood); err != nil {
					return err
				}
				moods = append(moods, &mood)
			}
		})
		if err != nil {
			return nil, err
		}
		return moods, nil
	})

	if err != nil {
		return nil, translateCloudErr(err)
	}
	return result.([]*domain.MoodCheckIn), nil
}

func (r *CloudStore) DeleteMood(ctx context.Context, userID string, moodID uuid.UUID) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			_, err := r.moodDoc(userID, moodID).Delete(ctx)
			return err
		})
	})
	return translateCloudErr(err)
}

// DeleteAllUserData removes the mood subcollection and then the profile
// document. Firestore does not cascade subcollection deletes, so the
// moods go first.
func (r *CloudStore) DeleteAllUserData(ctx context.Context, userID string) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			iter := r.profileDoc(userID).Collection(moodsCollection).Documents(ctx)
			defer iter.Stop()
			for {
				snapshot, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return err
				}
				if _, err := snapshot.Ref.Delete(ctx); err != nil {
					return err
				}
			}
			_, err := r.profileDoc(userID).Delete(ctx)
			return err
		})
	})
	return translateCloudErr(err)
}

// UnavailableCloudStore stands in when no cloud project is configured.
// Every call reports the backend as unreachable, which routes services
// onto their local fallbacks.
type UnavailableCloudStore struct{}

func (UnavailableCloudStore) SaveProfile(ctx context.Context, userID string, profile *domain.UserProfile) error {
	return domain.ErrStorageNetwork
}

func (UnavailableCloudStore) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return nil, domain.ErrStorageNetwork
}

func (UnavailableCloudStore) SaveMood(ctx context.Context, userID string, mood *domain.MoodCheckIn) error {
	return domain.ErrStorageNetwork
}

func (UnavailableCloudStore) FetchMoods(ctx context.Context, userID string) ([]*domain.MoodCheckIn, error) {
	return nil, domain.ErrStorageNetwork
}

func (UnavailableCloudStore) DeleteMood(ctx context.Context, userID string, moodID uuid.UUID) error {
	return domain.ErrStorageNetwork
}

func (UnavailableCloudStore) DeleteAllUserData(ctx context.Context, userID string) error {
	return domain.ErrStorageNetwork
}

// Ensure both implement the interface
var _ ports.StorageBackend = (*CloudStore)(nil)
var _ ports.StorageBackend = UnavailableCloudStore{}
