package dayoff

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var StatusValues = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
}

// DayOff entity. Start and End are full instants, not date-only values: a
// request may begin mid-afternoon and end mid-morning days later. Overlap is
// evaluated on the half-open interval [Start, End).
type DayOff struct {
	ID     string
	UserID string
	Title  string
	Reason *string

	Start time.Time
	End   time.Time

	Status    Status
	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	// Joined for responses
	UserName *string
}

// IsPending reports whether the request may still be decided.
func (d DayOff) IsPending() bool {
	return d.Status == StatusPending
}

// Overlaps reports whether [d.Start, d.End) intersects [start, end).
func (d DayOff) Overlaps(start, end time.Time) bool {
	return d.Start.Before(end) && d.End.After(start)
}
