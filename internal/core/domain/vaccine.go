package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VaccineStatus is the lifecycle state of a single schedule entry
type VaccineStatus string

const (
	VaccineStatusUpcoming  VaccineStatus = "upcoming"
	VaccineStatusDue       VaccineStatus = "due"
	VaccineStatusOverdue   VaccineStatus = "overdue"
	VaccineStatusCompleted VaccineStatus = "completed"
)

// ValidVaccineStatuses returns all valid vaccine statuses
func ValidVaccineStatuses() []VaccineStatus {
	return []VaccineStatus{
		VaccineStatusUpcoming,
		VaccineStatusDue,
		VaccineStatusOverdue,
		VaccineStatusCompleted,
	}
}

// IsValidVaccineStatus checks if a vaccine status is valid
func IsValidVaccineStatus(status VaccineStatus) bool {
	for _, s := range ValidVaccineStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// OverdueGraceDays is how many days past due an entry may sit before it
// is flagged overdue
const OverdueGraceDays = 7

// ScheduleVaccine is a named vaccine within a schedule row, as read from
// the country schedule files
type ScheduleVaccine struct {
	Name     string   `json:"name"`
	Antigens []string `json:"antigens"`
}

// ScheduleRow is one age band of a national immunisation schedule.
// Rows carry either a Vaccines list or a single Code/Name pair; rows
// with neither are informational and produce no entries. A nil AgeDays
// means the row has no computable due date.
type ScheduleRow struct {
	AgeLabel string            `json:"age_label"`
	AgeDays  *int              `json:"age_days"`
	Vaccines []ScheduleVaccine `json:"vaccines"`
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Notes    string            `json:"notes"`
}

// CountrySchedule is a full national schedule keyed by country code
type CountrySchedule struct {
	Country string        `json:"country"`
	Source  string        `json:"source"`
	Rows    []ScheduleRow `json:"rows"`
}

// VaccineItem is a resolved schedule entry ready for display
type VaccineItem struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	AgeLabel      string        `json:"age_label"`
	Antigens      string        `json:"antigens"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	Status        VaccineStatus `json:"status"`
	CompletedDate *time.Time    `json:"completed_date,omitempty"`
	Notes         string        `json:"notes"`
}

// VaccineCompletion pins an entry as completed across schedule rebuilds
type VaccineCompletion struct {
	ItemID        uuid.UUID `json:"item_id"`
	CompletedDate time.Time `json:"completed_date"`
}

// vaccineNamespace seeds deterministic item IDs so an entry keeps the
// same identity every time the schedule is rebuilt
var vaccineNamespace = uuid.MustParse("9d1b5c0a-43f7-4d2e-8f6a-2b7c1e9a0d34")

// VaccineItemID derives the stable identity of a schedule entry from its
// position and name within a country's schedule
func VaccineItemID(country string, rowIndex, itemIndex int, name string) uuid.UUID {
	key := fmt.Sprintf("%s|%d|%d|%s", country, rowIndex, itemIndex, name)
	return uuid.NewSHA1(vaccineNamespace, []byte(key))
}

// ClassifyVaccineStatus buckets an entry by calendar-day distance from
// its due date. Entries without a due date are always upcoming.
func ClassifyVaccineStatus(dueDate *time.Time, now time.Time) VaccineStatus {
	if dueDate == nil {
		return VaccineStatusUpcoming
	}
	daysUntilDue := CalendarDaysBetween(now, *dueDate)
	if daysUntilDue < -OverdueGraceDays {
		return VaccineStatusOverdue
	}
	if daysUntilDue <= 0 {
		return VaccineStatusDue
	}
	return VaccineStatusUpcoming
}

// BuildSchedule expands a country schedule into display entries anchored
// on the reference date. Row order is preserved; rows without age data
// or vaccine data are skipped.
func BuildSchedule(schedule CountrySchedule, referenceDate, now time.Time) []VaccineItem {
	items := make([]VaccineItem, 0, len(schedule.Rows))
	for rowIdx, row := range schedule.Rows {
		if row.AgeDays == nil {
			continue
		}
		dueDate := referenceDate.AddDate(0, 0, *row.AgeDays)
		status := ClassifyVaccineStatus(&dueDate, now)

		if len(row.Vaccines) > 0 {
			for itemIdx, vaccine := range row.Vaccines {
				due := dueDate
				items = append(items, VaccineItem{
					ID:       VaccineItemID(schedule.Country, rowIdx, itemIdx, vaccine.Name),
					Name:     vaccine.Name,
					AgeLabel: row.AgeLabel,
					Antigens: antigenSummary(vaccine),
					DueDate:  &due,
					Status:   status,
					Notes:    row.Notes,
				})
			}
			continue
		}
		if row.Code != "" && row.Name != "" {
			due := dueDate
			items = append(items, VaccineItem{
				ID:       VaccineItemID(schedule.Country, rowIdx, 0, row.Name),
				Name:     row.Name,
				AgeLabel: row.AgeLabel,
				Antigens: row.Code,
				DueDate:  &due,
				Status:   status,
				Notes:    row.Notes,
			})
		}
	}
	return items
}

// antigenSummary joins a vaccine's antigens for display, falling back to
// the vaccine name when none are listed
func antigenSummary(v ScheduleVaccine) string {
	if len(v.Antigens) == 0 {
		return v.Name
	}
	return strings.Join(v.Antigens, ", ")
}

// MergeCompletions overlays recorded completions onto a rebuilt
// schedule. A matched entry keeps completed status and its completion
// date no matter what the date math says.
func MergeCompletions(items []VaccineItem, completions []VaccineCompletion) []VaccineItem {
	if len(completions) == 0 {
		return items
	}
	byID := make(map[uuid.UUID]VaccineCompletion, len(completions))
	for _, c := range completions {
		byID[c.ItemID] = c
	}
	merged := make([]VaccineItem, len(items))
	for i, item := range items {
		if c, ok := byID[item.ID]; ok {
			item.Status = VaccineStatusCompleted
			date := c.CompletedDate
			item.CompletedDate = &date
		}
		merged[i] = item
	}
	return merged
}
