package timesheet

import (
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/pkg/validator"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/workhours"
)

type CreateTimesheetRequest struct {
	UserID      string  `json:"-"`
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	// WorkingDate in "2006-01-02" form; defaults to today when empty.
	WorkingDate     string `json:"working_date"`
	DurationMinutes int    `json:"duration_minutes"`
	Type            string `json:"type"`
}

func (r CreateTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "Title is required"})
	}
	if !validator.IsValidUUID(r.ProjectID) {
		errs = append(errs, validator.ValidationError{Field: "project_id", Message: "Valid project ID is required"})
	}
	if r.WorkingDate != "" {
		if _, ok := validator.IsValidDate(r.WorkingDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "working_date", Message: "Date must be in YYYY-MM-DD format"})
		}
	}
	if r.DurationMinutes <= 0 {
		errs = append(errs, validator.ValidationError{Field: "duration_minutes", Message: "Duration must be a positive minute count"})
	}
	if !validator.IsInSlice(r.Type, EntryTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "Type must be one of normal, overtime, bonus"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTimesheetRequest struct {
	ID              string  `json:"-"`
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
}

func (r UpdateTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "Title cannot be empty"})
	}
	if r.DurationMinutes != nil && *r.DurationMinutes <= 0 {
		errs = append(errs, validator.ValidationError{Field: "duration_minutes", Message: "Duration must be a positive minute count"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideTimesheetRequest struct {
	ID       string `json:"-"`
	Decision string `json:"decision"`
}

func (r DecideTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Decision != string(StatusApproved) && r.Decision != string(StatusRejected) {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "Decision must be approved or rejected"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimesheetResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`

	WorkingDate     string `json:"working_date"`
	DurationMinutes int    `json:"duration_minutes"`
	DurationHours   string `json:"duration_hours"`
	Type            string `json:"type"`
	Status          string `json:"status"`

	DecidedBy *string    `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	ProjectName *string `json:"project_name,omitempty"`
	UserName    *string `json:"user_name,omitempty"`
}

func ToResponse(t Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		ProjectID:       t.ProjectID,
		Title:           t.Title,
		Description:     t.Description,
		WorkingDate:     t.WorkingDate.Format("2006-01-02"),
		DurationMinutes: t.DurationMinutes,
		DurationHours:   workhours.MinutesToHours(t.DurationMinutes).String(),
		Type:            string(t.Type),
		Status:          string(t.Status),
		DecidedBy:       t.DecidedBy,
		DecidedAt:       t.DecidedAt,
		CreatedAt:       t.CreatedAt,
		ProjectName:     t.ProjectName,
		UserName:        t.UserName,
	}
}

type ListTimesheetResponse struct {
	Items []TimesheetResponse `json:"items"`
	Total int64               `json:"total"`
}
