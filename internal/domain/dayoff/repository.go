package dayoff

import (
	"context"
	"time"
)

// DayOffRepository - interface for day_offs table
type DayOffRepository interface {
	Create(ctx context.Context, req DayOff) (DayOff, error)
	GetByID(ctx context.Context, id string) (DayOff, error)
	// FindOverlapping returns non-deleted requests for the user whose
	// [start, end) interval intersects the given one. When statuses is
	// non-empty only requests in one of those statuses are considered.
	FindOverlapping(ctx context.Context, userID string, start, end time.Time, statuses []Status) ([]DayOff, error)
	ListByUser(ctx context.Context, userID string, filter Filter) ([]DayOff, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status, decidedBy string, decidedAt time.Time) error
	SoftDelete(ctx context.Context, id string) error
}

type Filter struct {
	Status *Status
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}
