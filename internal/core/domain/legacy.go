package domain

import "time"

// Raw values persisted by the pre-rewrite client. The old app stored
// these display strings directly, so the importer must match them
// exactly.
const (
	LegacyUserTypePregnant = "I am pregnant"
	LegacyUserTypeHasChild = "I have a child"

	LegacyStorageDeviceOnly = "Device-only"
	LegacyStorageCloud      = "Cloud (Firebase)"
)

// LegacyProfile is the decrypted legacy vault payload
type LegacyProfile struct {
	FirstName            string     `json:"firstName"`
	LastName             string     `json:"lastName"`
	Email                string     `json:"email"`
	Country              string     `json:"country"`
	MobileNumber         string     `json:"mobileNumber"`
	UserType             string     `json:"userType"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate"`
	BirthDate            *time.Time `json:"birthDate"`
	StorageMode          string     `json:"storagePreference"`
	NotificationsWanted  bool       `json:"wantsNotifications"`
}

// ConvertLegacyUserType maps a legacy raw value onto the current enum.
// ok is false for unrecognised values.
func ConvertLegacyUserType(raw string) (UserType, bool) {
	switch raw {
	case LegacyUserTypePregnant:
		return UserTypePregnant, true
	case LegacyUserTypeHasChild:
		return UserTypeHasChild, true
	}
	return "", false
}

// ConvertLegacyStorageMode maps a legacy raw value onto the current
// enum, defaulting unknown values to device-only rather than failing
// the whole import
func ConvertLegacyStorageMode(raw string) StorageMode {
	if raw == LegacyStorageCloud {
		return StorageModeCloud
	}
	return StorageModeDeviceOnly
}
