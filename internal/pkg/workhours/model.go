package workhours

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClockTime is a time-of-day value, independent of any calendar date.
type ClockTime struct {
	Hour   int
	Minute int
}

// MinutesFromMidnight returns the offset of c from 00:00 in minutes.
func (c ClockTime) MinutesFromMidnight() int {
	return c.Hour*60 + c.Minute
}

// On pins c to a calendar date, in that date's location.
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Window is a fixed working interval within a day. Start is always before End.
type Window struct {
	Start ClockTime
	End   ClockTime
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return time.Duration(w.End.MinutesFromMidnight()-w.Start.MinutesFromMidnight()) * time.Minute
}

// Model describes the working day: a set of disjoint windows and the
// capacity they add up to. Immutable once built.
type Model struct {
	windows  []Window
	capacity time.Duration
}

// NewModel builds a model from the given windows.
func NewModel(windows ...Window) Model {
	var capacity time.Duration
	for _, w := range windows {
		capacity += w.Duration()
	}
	return Model{windows: windows, capacity: capacity}
}

// DefaultModel returns the company-wide working day: a morning block from
// 09:00 to 12:00 and an afternoon block from 13:30 to 18:30, 7.5 hours total.
func DefaultModel() Model {
	return NewModel(
		Window{Start: ClockTime{Hour: 9}, End: ClockTime{Hour: 12}},
		Window{Start: ClockTime{Hour: 13, Minute: 30}, End: ClockTime{Hour: 18, Minute: 30}},
	)
}

// Windows returns the model's work windows in day order.
func (m Model) Windows() []Window {
	return m.windows
}

// DailyCapacity returns the total loggable time per working day.
func (m Model) DailyCapacity() time.Duration {
	return m.capacity
}

// DayStart returns the instant the first window opens on the given date.
func (m Model) DayStart(day time.Time) time.Time {
	return m.windows[0].Start.On(day)
}

// DayEnd returns the instant the last window closes on the given date.
func (m Model) DayEnd(day time.Time) time.Time {
	return m.windows[len(m.windows)-1].End.On(day)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateOf truncates t to midnight of its calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MinutesToHours converts a minute count to an exact decimal hour value.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}

// HoursToMinutes converts decimal hours to whole minutes.
func HoursToMinutes(hours decimal.Decimal) int {
	return int(hours.Mul(decimal.NewFromInt(60)).IntPart())
}

// DurationHours converts a duration to an exact decimal hour value.
func DurationHours(d time.Duration) decimal.Decimal {
	return MinutesToHours(int(d / time.Minute))
}
