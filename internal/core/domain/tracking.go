package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeightUnit is the unit a weight entry was recorded in
type WeightUnit string

const (
	WeightUnitKg  WeightUnit = "kg"
	WeightUnitLbs WeightUnit = "lbs"
)

// IsValidWeightUnit checks if a weight unit is valid
func IsValidWeightUnit(unit WeightUnit) bool {
	return unit == WeightUnitKg || unit == WeightUnitLbs
}

// WeightEntry is one logged body-weight measurement
type WeightEntry struct {
	ID     uuid.UUID  `json:"id"`
	Date   time.Time  `json:"date"`
	Weight float64    `json:"weight"`
	Unit   WeightUnit `json:"unit"`
	Note   string     `json:"note"`
}

// WeightKg normalises the entry to kilograms for charting
func (w WeightEntry) WeightKg() float64 {
	if w.Unit == WeightUnitLbs {
		return w.Weight * 0.453592
	}
	return w.Weight
}

// SymptomType is the catalogue of trackable symptoms
type SymptomType string

const (
	SymptomNausea       SymptomType = "nausea"
	SymptomFatigue      SymptomType = "fatigue"
	SymptomHeadache     SymptomType = "headache"
	SymptomBackPain     SymptomType = "backPain"
	SymptomHeartburn    SymptomType = "heartburn"
	SymptomSwelling     SymptomType = "swelling"
	SymptomCramping     SymptomType = "cramping"
	SymptomInsomnia     SymptomType = "insomnia"
	SymptomMoodSwings   SymptomType = "moodSwings"
	SymptomOtherSymptom SymptomType = "other"
)

// ValidSymptomTypes returns all trackable symptom types
func ValidSymptomTypes() []SymptomType {
	return []SymptomType{
		SymptomNausea,
		SymptomFatigue,
		SymptomHeadache,
		SymptomBackPain,
		SymptomHeartburn,
		SymptomSwelling,
		SymptomCramping,
		SymptomInsomnia,
		SymptomMoodSwings,
		SymptomOtherSymptom,
	}
}

// IsValidSymptomType checks if a symptom type is valid
func IsValidSymptomType(symptom SymptomType) bool {
	for _, s := range ValidSymptomTypes() {
		if s == symptom {
			return true
		}
	}
	return false
}

// SymptomSeverity grades how strongly a symptom presented
type SymptomSeverity string

const (
	SeverityMild     SymptomSeverity = "mild"
	SeverityModerate SymptomSeverity = "moderate"
	SeveritySevere   SymptomSeverity = "severe"
)

// IsValidSymptomSeverity checks if a severity grade is valid
func IsValidSymptomSeverity(severity SymptomSeverity) bool {
	return severity == SeverityMild || severity == SeverityModerate || severity == SeveritySevere
}

// SymptomEntry is one logged symptom occurrence
type SymptomEntry struct {
	ID       uuid.UUID       `json:"id"`
	Date     time.Time       `json:"date"`
	Symptom  SymptomType     `json:"symptom"`
	Severity SymptomSeverity `json:"severity"`
	Note     string          `json:"note"`
}

// KickCountSession records fetal movements counted over a timed window.
// EndTime is nil while the session is still running.
type KickCountSession struct {
	ID        uuid.UUID  `json:"id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	KickCount int        `json:"kick_count"`
}

// Duration returns the elapsed session time, using now for open sessions
func (k KickCountSession) Duration(now time.Time) time.Duration {
	end := now
	if k.EndTime != nil {
		end = *k.EndTime
	}
	return end.Sub(k.StartTime)
}

// IsActive reports whether the session is still counting
func (k KickCountSession) IsActive() bool {
	return k.EndTime == nil
}

// Contraction is one timed contraction
type Contraction struct {
	ID        uuid.UUID  `json:"id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// Duration returns contraction length in seconds, zero while still open
func (c Contraction) Duration() float64 {
	if c.EndTime == nil {
		return 0
	}
	return c.EndTime.Sub(c.StartTime).Seconds()
}

// WaterUnit is the unit a water intake entry was recorded in
type WaterUnit string

const (
	WaterUnitMl WaterUnit = "ml"
	WaterUnitOz WaterUnit = "oz"
)

// IsValidWaterUnit checks if a water unit is valid
func IsValidWaterUnit(unit WaterUnit) bool {
	return unit == WaterUnitMl || unit == WaterUnitOz
}

// WaterIntakeEntry is one logged drink
type WaterIntakeEntry struct {
	ID     uuid.UUID `json:"id"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Unit   WaterUnit `json:"unit"`
}

// AmountMl normalises the entry to millilitres for daily totals
func (w WaterIntakeEntry) AmountMl() float64 {
	if w.Unit == WaterUnitOz {
		return w.Amount * 29.5735
	}
	return w.Amount
}

// BagCategory groups hospital bag items by who they are for
type BagCategory string

const (
	BagCategoryMom     BagCategory = "mom"
	BagCategoryBaby    BagCategory = "baby"
	BagCategoryPartner BagCategory = "partner"
	BagCategoryDocs    BagCategory = "documents"
)

// IsValidBagCategory checks if a bag category is valid
func IsValidBagCategory(category BagCategory) bool {
	switch category {
	case BagCategoryMom, BagCategoryBaby, BagCategoryPartner, BagCategoryDocs:
		return true
	}
	return false
}

// HospitalBagItem is one checklist entry for the hospital bag
type HospitalBagItem struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Category BagCategory `json:"category"`
	Packed   bool        `json:"packed"`
}

// Appointment is a scheduled medical visit
type Appointment struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
	Doctor   string    `json:"doctor"`
	Notes    string    `json:"notes"`
}

// IsUpcoming reports whether the appointment is still in the future
func (a Appointment) IsUpcoming(now time.Time) bool {
	return a.Date.After(now)
}
