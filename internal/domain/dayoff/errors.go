package dayoff

import (
	"errors"
	"fmt"
)

var (
	ErrDayOffNotFound   = errors.New("Day-off request not found")
	ErrDayOffOverlap    = errors.New("Day-off request overlaps an existing request")
	ErrWeekendDayOff    = errors.New("Day-off requests cannot cover weekend days")
	ErrAlreadyProcessed = errors.New("Day-off request already processed")
)

// OverlapError names the existing request a new interval collides with.
type OverlapError struct {
	ConflictID    string
	ConflictTitle string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("interval overlaps day-off request %q (%s)", e.ConflictTitle, e.ConflictID)
}

func (e *OverlapError) Unwrap() error {
	return ErrDayOffOverlap
}
