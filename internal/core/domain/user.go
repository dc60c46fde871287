package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserType describes which journey the user is on
type UserType string

const (
	UserTypePregnant UserType = "pregnant" // Expecting - reference date is the expected delivery date
	UserTypeHasChild UserType = "hasChild" // Postpartum - reference date is the child's birth date
)

// StorageMode selects which backend is authoritative for reads
// It does not forbid writes to the other backend: the local store is
// kept warm as a cache even for cloud users
type StorageMode string

const (
	StorageModeDeviceOnly StorageMode = "deviceOnly"
	StorageModeCloud      StorageMode = "cloud"
)

// ValidStorageModes returns all valid storage modes
func ValidStorageModes() []StorageMode {
	return []StorageMode{
		StorageModeDeviceOnly,
		StorageModeCloud,
	}
}

// IsValidStorageMode checks if a storage mode is valid
func IsValidStorageMode(mode StorageMode) bool {
	for _, m := range ValidStorageModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// EmergencyContact is a person the user wants reachable in an emergency
type EmergencyContact struct {
	ID           uuid.UUID `json:"id" firestore:"id"`
	Name         string    `json:"name" firestore:"name"`
	Relationship string    `json:"relationship" firestore:"relationship"`
	PhoneNumber  string    `json:"phone_number" firestore:"phoneNumber"`
	Email        string    `json:"email" firestore:"email"`
}

// HasContactInfo reports whether the contact is actually reachable
func (c EmergencyContact) HasContactInfo() bool {
	return c.PhoneNumber != "" || c.Email != ""
}

// UserProfile is the identity and medical-context record for the single
// active user. Exactly one of ExpectedDeliveryDate / BirthDate is
// meaningful, selected by UserType; the other stays nil.
type UserProfile struct {
	ID                   uuid.UUID          `json:"id" firestore:"id"`
	FirstName            string             `json:"first_name" firestore:"firstName"`
	LastName             string             `json:"last_name" firestore:"lastName"`
	Email                string             `json:"email" firestore:"email"`
	Country              string             `json:"country" firestore:"country"`
	MobileNumber         string             `json:"mobile_number" firestore:"mobileNumber"`
	UserType             UserType           `json:"user_type,omitempty" firestore:"userType"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date,omitempty" firestore:"expectedDeliveryDate"`
	BirthDate            *time.Time         `json:"birth_date,omitempty" firestore:"birthDate"`
	StorageMode          StorageMode        `json:"storage_mode" firestore:"storageMode"`
	PrivacyAcceptedAt    *time.Time         `json:"privacy_accepted_at,omitempty" firestore:"privacyAcceptedAt"`
	NotificationsWanted  bool               `json:"notifications_wanted" firestore:"notificationsWanted"`
	EmergencyContacts    []EmergencyContact `json:"emergency_contacts" firestore:"emergencyContacts"`
}

// TotalPregnancyWeeks is the standard pregnancy duration
const TotalPregnancyWeeks = 40

// ReferenceDate returns the anchor date for schedule computation:
// birth date for hasChild users, expected delivery date for pregnant
// users. ok is false when the type is unset or the matching date is nil.
func (u *UserProfile) ReferenceDate() (time.Time, bool) {
	switch u.UserType {
	case UserTypeHasChild:
		if u.BirthDate != nil {
			return *u.BirthDate, true
		}
	case UserTypePregnant:
		if u.ExpectedDeliveryDate != nil {
			return *u.ExpectedDeliveryDate, true
		}
	}
	return time.Time{}, false
}

// NeedsOnboarding reports whether the profile is missing the answers
// the onboarding flow collects
func (u *UserProfile) NeedsOnboarding() bool {
	if u.UserType == "" {
		return true
	}
	if u.UserType == UserTypePregnant && u.ExpectedDeliveryDate == nil {
		return true
	}
	if u.UserType == UserTypeHasChild && u.BirthDate == nil {
		return true
	}
	return false
}

// PregnancyWeek computes the current week of pregnancy from the expected
// delivery date. Returns 0 when no delivery date is set or the
// computation would go negative.
func (u *UserProfile) PregnancyWeek(now time.Time) int {
	if u.ExpectedDeliveryDate == nil {
		return 0
	}
	weeksUntilDue := CalendarDaysBetween(now, *u.ExpectedDeliveryDate) / 7
	week := TotalPregnancyWeeks - weeksUntilDue
	if week < 0 {
		return 0
	}
	return week
}

// PregnancyProgress is the fraction of the pregnancy completed, in [0, 1]
func (u *UserProfile) PregnancyProgress(now time.Time) float64 {
	progress := float64(u.PregnancyWeek(now)) / float64(TotalPregnancyWeeks)
	if progress > 1 {
		return 1
	}
	return progress
}

// DaysPostpartum returns whole days since birth for hasChild users,
// clamped at zero. ok is false for pregnant users or when no birth date
// is set.
func (u *UserProfile) DaysPostpartum(now time.Time) (int, bool) {
	if u.UserType != UserTypeHasChild || u.BirthDate == nil {
		return 0, false
	}
	days := CalendarDaysBetween(*u.BirthDate, now)
	if days < 0 {
		days = 0
	}
	return days, true
}
