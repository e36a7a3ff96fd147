package dayoff

import (
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/pkg/validator"
)

type CreateDayOffRequest struct {
	UserID string  `json:"-"`
	Title  string  `json:"title"`
	Reason *string `json:"reason"`
	// RFC3339 instants, e.g. "2024-06-10T09:00:00Z".
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r CreateDayOffRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "Title is required"})
	}
	if _, ok := validator.IsValidDateTime(r.Start); !ok {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "Start must be an RFC3339 timestamp"})
	}
	if _, ok := validator.IsValidDateTime(r.End); !ok {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "End must be an RFC3339 timestamp"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideDayOffRequest struct {
	ID       string `json:"-"`
	Decision string `json:"decision"`
}

func (r DecideDayOffRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Decision != string(StatusApproved) && r.Decision != string(StatusRejected) {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "Decision must be approved or rejected"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayOffResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Title  string  `json:"title"`
	Reason *string `json:"reason,omitempty"`

	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`

	DecidedBy *string    `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	UserName *string `json:"user_name,omitempty"`
}

func ToResponse(d DayOff) DayOffResponse {
	return DayOffResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Title:     d.Title,
		Reason:    d.Reason,
		Start:     d.Start,
		End:       d.End,
		Status:    string(d.Status),
		DecidedBy: d.DecidedBy,
		DecidedAt: d.DecidedAt,
		CreatedAt: d.CreatedAt,
		UserName:  d.UserName,
	}
}

type ListDayOffResponse struct {
	Items []DayOffResponse `json:"items"`
	Total int64            `json:"total"`
}
