package scheduledata

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

//go:embed schedules/*.json
var scheduleFS embed.FS

// EmbeddedSource implements ScheduleSource from the schedule files
// compiled into the binary
type EmbeddedSource struct {
	schedules map[string]domain.CountrySchedule
}

// NewEmbeddedSource parses the embedded schedule files
func NewEmbeddedSource() (*EmbeddedSource, error) {
	entries, err := scheduleFS.ReadDir("schedules")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schedules: %w", err)
	}

	schedules := make(map[string]domain.CountrySchedule, len(entries))
	for _, entry := range entries {
		data, err := scheduleFS.ReadFile("schedules/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		var schedule domain.CountrySchedule
		if err := json.Unmarshal(data, &schedule); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		if schedule.Country == "" {
			return nil, fmt.Errorf("schedule %s has no country code", entry.Name())
		}
		schedules[schedule.Country] = schedule
	}

	return &EmbeddedSource{schedules: schedules}, nil
}

// ScheduleForCountry returns the schedule for a country code
func (s *EmbeddedSource) ScheduleForCountry(country string) (domain.CountrySchedule, error) {
	schedule, ok := s.schedules[country]
	if !ok {
		return domain.CountrySchedule{}, fmt.Errorf("schedule for %s: %w", country, domain.ErrStorageNotFound)
	}
	return schedule, nil
}

// SupportedCountries lists the available country codes
func (s *EmbeddedSource) SupportedCountries() []string {
	countries := make([]string, 0, len(s.schedules))
	for country := range s.schedules {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	return countries
}

// Ensure EmbeddedSource implements the interface
var _ ports.ScheduleSource = (*EmbeddedSource)(nil)
