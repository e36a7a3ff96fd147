package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository - interface for timesheets table
type TimesheetRepository interface {
	Create(ctx context.Context, entry Timesheet) (Timesheet, error)
	GetByID(ctx context.Context, id string) (Timesheet, error)
	// FindByUserAndDate returns all non-deleted entries for a user on a
	// working date, excluding entries in excludeStatus when non-empty.
	FindByUserAndDate(ctx context.Context, userID string, date time.Time, excludeStatus Status) ([]Timesheet, error)
	ListByUser(ctx context.Context, userID string, filter Filter) ([]Timesheet, int64, error)
	Update(ctx context.Context, entry Timesheet) error
	UpdateStatus(ctx context.Context, id string, status Status, decidedBy string, decidedAt time.Time) error
	SoftDelete(ctx context.Context, id string) error
}

type Filter struct {
	ProjectID *string
	Status    *Status
	From      *time.Time
	To        *time.Time
	Page      int
	Limit     int
}
