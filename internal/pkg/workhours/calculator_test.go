package workhours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestDefaultModel_DailyCapacity(t *testing.T) {
	m := DefaultModel()
	assert.Equal(t, 7*time.Hour+30*time.Minute, m.DailyCapacity())
	assert.Equal(t, "7.5", DurationHours(m.DailyCapacity()).String())
}

func TestRemainingCapacity_InvalidInterval(t *testing.T) {
	m := DefaultModel()

	_, err := m.RemainingCapacity(mustTime(t, "2024-06-10T12:00"), mustTime(t, "2024-06-10T09:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = m.RemainingCapacity(mustTime(t, "2024-06-10T09:00"), mustTime(t, "2024-06-10T09:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestRemainingCapacity_MorningLeave(t *testing.T) {
	m := DefaultModel()

	// Monday 2024-06-10, leave 09:00-13:30 swallows the whole morning window.
	days, err := m.RemainingCapacity(mustTime(t, "2024-06-10T09:00"), mustTime(t, "2024-06-10T13:30"))
	require.NoError(t, err)
	require.Len(t, days, 1)

	assert.Equal(t, mustTime(t, "2024-06-10T00:00"), days[0].Date)
	assert.Equal(t, 4*time.Hour+30*time.Minute, days[0].Remaining)
	assert.Equal(t, "4.5", DurationHours(days[0].Remaining).String())
}

func TestRemainingCapacity_PartialWindowOverlap(t *testing.T) {
	m := DefaultModel()

	// Leave 10:00-11:00 eats one hour of the morning window.
	days, err := m.RemainingCapacity(mustTime(t, "2024-06-10T10:00"), mustTime(t, "2024-06-10T11:00"))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 6*time.Hour+30*time.Minute, days[0].Remaining)
}

func TestRemainingCapacity_LunchBreakLeaveHasNoEffect(t *testing.T) {
	m := DefaultModel()

	// 12:00-13:30 sits entirely between the two windows.
	days, err := m.RemainingCapacity(mustTime(t, "2024-06-10T12:00"), mustTime(t, "2024-06-10T13:30"))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, m.DailyCapacity(), days[0].Remaining)
}

func TestRemainingCapacity_OutsideWorkdayBounds(t *testing.T) {
	m := DefaultModel()

	days, err := m.RemainingCapacity(mustTime(t, "2024-06-10T19:00"), mustTime(t, "2024-06-10T21:00"))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, m.DailyCapacity(), days[0].Remaining)
}

func TestRemainingCapacity_FullDayLeaveZeroesCapacity(t *testing.T) {
	m := DefaultModel()

	// Leave covering the whole work span 09:00-18:30 leaves nothing loggable.
	days, err := m.RemainingCapacity(mustTime(t, "2024-06-10T09:00"), mustTime(t, "2024-06-10T18:30"))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, time.Duration(0), days[0].Remaining)
}

func TestRemainingCapacity_WeekendDatesHaveZeroCapacity(t *testing.T) {
	m := DefaultModel()

	// Friday 2024-06-07 through Monday 2024-06-10.
	days, err := m.RemainingCapacity(mustTime(t, "2024-06-07T15:00"), mustTime(t, "2024-06-10T11:00"))
	require.NoError(t, err)
	require.Len(t, days, 4)

	// Friday loses the 15:00-18:30 tail of the afternoon window.
	assert.Equal(t, 4*time.Hour, days[0].Remaining)
	// Saturday and Sunday never had capacity.
	assert.Equal(t, time.Duration(0), days[1].Remaining)
	assert.Equal(t, time.Duration(0), days[2].Remaining)
	// Monday loses 09:00-11:00.
	assert.Equal(t, 5*time.Hour+30*time.Minute, days[3].Remaining)
}

func TestRemainingCapacity_MultiDaySpanIsOrdered(t *testing.T) {
	m := DefaultModel()

	days, err := m.RemainingCapacity(mustTime(t, "2024-06-10T09:00"), mustTime(t, "2024-06-12T18:30"))
	require.NoError(t, err)
	require.Len(t, days, 3)
	for i, d := range days {
		assert.Equal(t, mustTime(t, "2024-06-10T00:00").AddDate(0, 0, i), d.Date)
		assert.Equal(t, time.Duration(0), d.Remaining)
	}
}

func TestCoversFullDay(t *testing.T) {
	day := mustTime(t, "2024-06-08T00:00") // Saturday

	assert.True(t, CoversFullDay(mustTime(t, "2024-06-07T00:00"), mustTime(t, "2024-06-09T00:00"), day))
	assert.True(t, CoversFullDay(mustTime(t, "2024-06-08T00:00"), mustTime(t, "2024-06-09T00:00"), day))
	assert.False(t, CoversFullDay(mustTime(t, "2024-06-08T10:00"), mustTime(t, "2024-06-09T00:00"), day))
	assert.False(t, CoversFullDay(mustTime(t, "2024-06-08T00:00"), mustTime(t, "2024-06-08T23:00"), day))
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(mustTime(t, "2024-06-07T12:00"))) // Friday
	assert.True(t, IsWeekend(mustTime(t, "2024-06-08T12:00")))  // Saturday
	assert.True(t, IsWeekend(mustTime(t, "2024-06-09T12:00")))  // Sunday
	assert.False(t, IsWeekend(mustTime(t, "2024-06-10T12:00"))) // Monday
}

func TestMinuteHourConversions(t *testing.T) {
	assert.Equal(t, "2.5", MinutesToHours(150).String())
	assert.Equal(t, 150, HoursToMinutes(MinutesToHours(150)))
	assert.Equal(t, "0", MinutesToHours(0).String())
}
