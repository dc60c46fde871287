package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/adapters/repository"
	"github.com/mamacare/tracker-service/internal/config"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/glebarez/go-sqlite"
)

func openStore(t *testing.T) *repository.LocalStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	require.NoError(t, config.InitDatabase(db))
	return repository.NewLocalStore(db)
}

func storedProfile() *domain.UserProfile {
	delivery := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	accepted := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	return &domain.UserProfile{
		ID:                   uuid.New(),
		FirstName:            "Amelia",
		LastName:             "Hart",
		Email:                "amelia@example.com",
		Country:              "UK",
		MobileNumber:         "07700900123",
		UserType:             domain.UserTypePregnant,
		ExpectedDeliveryDate: &delivery,
		StorageMode:          domain.StorageModeDeviceOnly,
		PrivacyAcceptedAt:    &accepted,
		NotificationsWanted:  true,
		EmergencyContacts: []domain.EmergencyContact{
			{ID: uuid.New(), Name: "Tom Hart", Relationship: "partner", PhoneNumber: "07700900456"},
		},
	}
}

func TestLocalStore_ProfileRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	profile := storedProfile()

	require.NoError(t, store.SaveProfile(ctx, "uid-1", profile))

	got, err := store.FetchProfile(ctx, "uid-1")
	require.NoError(t, err)

	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, profile.FirstName, got.FirstName)
	assert.Equal(t, profile.LastName, got.LastName)
	assert.Equal(t, profile.Email, got.Email)
	assert.Equal(t, profile.Country, got.Country)
	assert.Equal(t, profile.MobileNumber, got.MobileNumber)
	assert.Equal(t, profile.UserType, got.UserType)
	assert.Equal(t, profile.StorageMode, got.StorageMode)
	assert.Equal(t, profile.NotificationsWanted, got.NotificationsWanted)
	require.NotNil(t, got.ExpectedDeliveryDate)
	assert.True(t, got.ExpectedDeliveryDate.Equal(*profile.ExpectedDeliveryDate))
	assert.Nil(t, got.BirthDate)
	require.NotNil(t, got.PrivacyAcceptedAt)
	assert.True(t, got.PrivacyAcceptedAt.Equal(*profile.PrivacyAcceptedAt))
	assert.Equal(t, profile.EmergencyContacts, got.EmergencyContacts)
}

func TestLocalStore_FetchProfile_Empty(t *testing.T) {
	store := openStore(t)

	_, err := store.FetchProfile(context.Background(), "uid-1")

	assert.ErrorIs(t, err, domain.ErrStorageNotFound)
}

func TestLocalStore_SaveProfile_OverwritesSingleRow(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := storedProfile()
	require.NoError(t, store.SaveProfile(ctx, "uid-1", first))

	second := storedProfile()
	second.FirstName = "Jess"
	second.StorageMode = domain.StorageModeCloud
	require.NoError(t, store.SaveProfile(ctx, "uid-1", second))

	got, err := store.FetchProfile(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Jess", got.FirstName)
	assert.Equal(t, domain.StorageModeCloud, got.StorageMode)
}

func TestLocalStore_MoodRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	older := &domain.MoodCheckIn{
		ID:   uuid.New(),
		Mood: domain.MoodGood,
		Note: "slept well",
		Date: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	newer := &domain.MoodCheckIn{
		ID:   uuid.New(),
		Mood: domain.MoodNotGood,
		Date: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveMood(ctx, "uid-1", older))
	require.NoError(t, store.SaveMood(ctx, "uid-1", newer))

	moods, err := store.FetchMoods(ctx, "uid-1")
	require.NoError(t, err)
	require.Len(t, moods, 2)

	// Newest first
	assert.Equal(t, newer.ID, moods[0].ID)
	assert.Equal(t, domain.MoodNotGood, moods[0].Mood)
	assert.Equal(t, older.ID, moods[1].ID)
	assert.Equal(t, "slept well", moods[1].Note)
}

func TestLocalStore_DeleteMood(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	mood := &domain.MoodCheckIn{
		ID:   uuid.New(),
		Mood: domain.MoodOkay,
		Date: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveMood(ctx, "uid-1", mood))
	require.NoError(t, store.DeleteMood(ctx, "uid-1", mood.ID))

	moods, err := store.FetchMoods(ctx, "uid-1")
	require.NoError(t, err)
	assert.Empty(t, moods)
}

func TestLocalStore_DeleteMood_Missing(t *testing.T) {
	store := openStore(t)

	err := store.DeleteMood(context.Background(), "uid-1", uuid.New())

	assert.ErrorIs(t, err, domain.ErrStorageNotFound)
}

func TestLocalStore_LoggedInFlag(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	loggedIn, err := store.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	require.NoError(t, store.SetLoggedIn(ctx, true))
	loggedIn, err = store.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	require.NoError(t, store.SetLoggedIn(ctx, false))
	loggedIn, err = store.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestLocalStore_OnboardedFlag(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	onboarded, err := store.HasOnboarded(ctx)
	require.NoError(t, err)
	assert.False(t, onboarded)

	require.NoError(t, store.SetOnboarded(ctx, true))
	onboarded, err = store.HasOnboarded(ctx)
	require.NoError(t, err)
	assert.True(t, onboarded)

	// The two flags live under separate keys
	require.NoError(t, store.SetLoggedIn(ctx, false))
	onboarded, err = store.HasOnboarded(ctx)
	require.NoError(t, err)
	assert.True(t, onboarded)
}

func TestLocalStore_CompletionRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	completion := domain.VaccineCompletion{
		ItemID:        uuid.New(),
		CompletedDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveCompletion(ctx, completion))

	completions, err := store.ListCompletions(ctx)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, completion.ItemID, completions[0].ItemID)
	assert.True(t, completions[0].CompletedDate.Equal(completion.CompletedDate))

	require.NoError(t, store.DeleteCompletion(ctx, completion.ItemID))
	completions, err = store.ListCompletions(ctx)
	require.NoError(t, err)
	assert.Empty(t, completions)
}

func TestLocalStore_DeleteAllUserData(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, "uid-1", storedProfile()))
	require.NoError(t, store.SaveMood(ctx, "uid-1", &domain.MoodCheckIn{
		ID: uuid.New(), Mood: domain.MoodGood, Date: time.Now().UTC(),
	}))
	require.NoError(t, store.SetLoggedIn(ctx, true))

	require.NoError(t, store.DeleteAllUserData(ctx, "uid-1"))

	_, err := store.FetchProfile(ctx, "uid-1")
	assert.ErrorIs(t, err, domain.ErrStorageNotFound)

	moods, err := store.FetchMoods(ctx, "uid-1")
	require.NoError(t, err)
	assert.Empty(t, moods)

	loggedIn, err := store.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}
