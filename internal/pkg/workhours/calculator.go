package workhours

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("invalid interval: end must be after start")

// DayCapacity is the work capacity left on one calendar date after a leave
// interval has been subtracted from it.
type DayCapacity struct {
	Date      time.Time
	Remaining time.Duration
}

// RemainingCapacity computes, for every calendar date from leaveStart's date
// through leaveEnd's date, the work capacity remaining once the leave
// interval is subtracted. Weekend dates have no capacity to begin with, so
// their remaining capacity is always zero. The result is ordered by date.
//
// The function is pure: it depends only on its arguments and the model.
func (m Model) RemainingCapacity(leaveStart, leaveEnd time.Time) ([]DayCapacity, error) {
	if !leaveEnd.After(leaveStart) {
		return nil, ErrInvalidInterval
	}

	var days []DayCapacity
	last := DateOf(leaveEnd)
	for day := DateOf(leaveStart); !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, DayCapacity{
			Date:      day,
			Remaining: m.remainingOn(day, leaveStart, leaveEnd),
		})
	}
	return days, nil
}

func (m Model) remainingOn(day, leaveStart, leaveEnd time.Time) time.Duration {
	if IsWeekend(day) {
		return 0
	}

	var consumed time.Duration
	for _, w := range m.windows {
		consumed += overlap(w.Start.On(day), w.End.On(day), leaveStart, leaveEnd)
	}

	remaining := m.capacity - consumed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// overlap returns the length of the intersection of [aStart, aEnd] and
// [bStart, bEnd], or zero when they do not meet.
func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// CoversFullDay reports whether [start, end] contains the entire calendar
// date, midnight to midnight.
func CoversFullDay(start, end, day time.Time) bool {
	dayStart := DateOf(day)
	dayEnd := dayStart.AddDate(0, 0, 1)
	return !start.After(dayStart) && !end.Before(dayEnd)
}
