package timesheet

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

type EntryType string

const (
	TypeNormal   EntryType = "normal"
	TypeOvertime EntryType = "overtime"
	TypeBonus    EntryType = "bonus"
)

var EntryTypeValues = []string{
	string(TypeNormal),
	string(TypeOvertime),
	string(TypeBonus),
}

// Timesheet entity. WorkingDate is date-only (midnight in the service
// locale); DurationMinutes is the logged amount of work as a plain minute
// count, never a wall-clock value.
type Timesheet struct {
	ID          string
	UserID      string
	ProjectID   string
	Title       string
	Description *string

	WorkingDate     time.Time
	DurationMinutes int
	Type            EntryType

	Status    Status
	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	// Joined for responses
	ProjectName *string
	UserName    *string
}

// IsPending reports whether the entry may still be edited or decided.
func (t Timesheet) IsPending() bool {
	return t.Status == StatusPending
}

// Duration returns the logged work as a duration value.
func (t Timesheet) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}
