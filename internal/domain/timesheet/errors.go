package timesheet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrTimesheetNotFound = errors.New("Timesheet not found")
	ErrNonWorkingDay     = errors.New("Normal entries cannot be logged on a non-working day")
	ErrAlreadyProcessed  = errors.New("Timesheet already processed")
	ErrNotEditable       = errors.New("Only pending timesheets can be edited")
	ErrCapacityExceeded  = errors.New("Daily capacity exceeded")
)

// CapacityExceededError reports how many hours were actually loggable on the
// working date once approved leave was subtracted.
type CapacityExceededError struct {
	MaxAllowedHours decimal.Decimal
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("logged hours would exceed the leave-adjusted daily cap of %s hours", e.MaxAllowedHours)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}
