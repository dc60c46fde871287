package domain_test

import (
	"testing"
	"time"

	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestMoodType_ChartValue(t *testing.T) {
	assert.Equal(t, 3, domain.MoodGood.ChartValue())
	assert.Equal(t, 2, domain.MoodOkay.ChartValue())
	assert.Equal(t, 1, domain.MoodNotGood.ChartValue())
	assert.Equal(t, 0, domain.MoodType("ecstatic").ChartValue())
}

func TestMoodType_NeedsAttention(t *testing.T) {
	assert.True(t, domain.MoodNotGood.NeedsAttention())
	assert.False(t, domain.MoodGood.NeedsAttention())
	assert.False(t, domain.MoodOkay.NeedsAttention())
}

func TestIsValidMoodType(t *testing.T) {
	for _, m := range domain.ValidMoodTypes() {
		assert.True(t, domain.IsValidMoodType(m))
	}
	assert.False(t, domain.IsValidMoodType("ecstatic"))
	assert.False(t, domain.IsValidMoodType(""))
}

func TestCalendarDaysBetween(t *testing.T) {
	assert.Equal(t, 0, domain.CalendarDaysBetween(date(2026, time.March, 15), date(2026, time.March, 15)))
	assert.Equal(t, 1, domain.CalendarDaysBetween(date(2026, time.March, 15), date(2026, time.March, 16)))
	assert.Equal(t, -1, domain.CalendarDaysBetween(date(2026, time.March, 16), date(2026, time.March, 15)))

	// Time of day within the same calendar day does not count
	morning := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.March, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 0, domain.CalendarDaysBetween(morning, evening))

	// An evening to the next morning is still one calendar day apart
	nextMorning := time.Date(2026, time.March, 16, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, domain.CalendarDaysBetween(evening, nextMorning))
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.March, 15, 23, 30, 0, 0, time.UTC)
	assert.True(t, domain.SameCalendarDay(morning, evening))
	assert.False(t, domain.SameCalendarDay(morning, date(2026, time.March, 16)))
}
