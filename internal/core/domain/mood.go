package domain

import (
	"time"

	"github.com/google/uuid"
)

// MoodType classifies a daily wellbeing check-in
type MoodType string

const (
	MoodGood    MoodType = "good"
	MoodOkay    MoodType = "okay"
	MoodNotGood MoodType = "notGood"
)

// ValidMoodTypes returns all valid mood types
func ValidMoodTypes() []MoodType {
	return []MoodType{
		MoodGood,
		MoodOkay,
		MoodNotGood,
	}
}

// IsValidMoodType checks if a mood type is valid
func IsValidMoodType(mood MoodType) bool {
	for _, m := range ValidMoodTypes() {
		if m == mood {
			return true
		}
	}
	return false
}

// ChartValue maps a mood onto the 1..3 scale used for trend charts
func (m MoodType) ChartValue() int {
	switch m {
	case MoodGood:
		return 3
	case MoodOkay:
		return 2
	case MoodNotGood:
		return 1
	default:
		return 0
	}
}

// NeedsAttention reports whether this mood should raise a wellbeing alert
func (m MoodType) NeedsAttention() bool {
	return m == MoodNotGood
}

// MoodCheckIn is a single recorded mood with optional free-text note
type MoodCheckIn struct {
	ID     uuid.UUID `json:"id" firestore:"id"`
	UserID string    `json:"user_id" firestore:"userId"`
	Mood   MoodType  `json:"mood" firestore:"mood"`
	Note   string    `json:"note" firestore:"note"`
	Date   time.Time `json:"date" firestore:"date"`
}
