package response

import (
	"errors"
	"net/http"

	"github.com/clocklab/timesheet-backend-go/internal/domain/auth"
	"github.com/clocklab/timesheet-backend-go/internal/domain/dayoff"
	"github.com/clocklab/timesheet-backend-go/internal/domain/project"
	"github.com/clocklab/timesheet-backend-go/internal/domain/timesheet"
	"github.com/clocklab/timesheet-backend-go/internal/domain/user"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/validator"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/workhours"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var capacityErr *timesheet.CapacityExceededError
	if errors.As(err, &capacityErr) {
		BadRequest(w, "Logged hours would exceed the daily cap", map[string]string{
			"max_allowed_hours": capacityErr.MaxAllowedHours.String(),
		})
		return
	}

	var overlapErr *dayoff.OverlapError
	if errors.As(err, &overlapErr) {
		Conflict(w, "Day-off request overlaps an existing request", map[string]string{
			"conflict_id":    overlapErr.ConflictID,
			"conflict_title": overlapErr.ConflictTitle,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Project domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrNotInProject):
		Forbidden(w, "You are not in project")
	case errors.Is(err, project.ErrAlreadyMember):
		Conflict(w, "User is already a project member", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrNonWorkingDay):
		BadRequest(w, "Normal entries cannot be logged on a non-working day", nil)
	case errors.Is(err, timesheet.ErrAlreadyProcessed):
		Conflict(w, "Timesheet already processed", nil)
	case errors.Is(err, timesheet.ErrNotEditable):
		Conflict(w, "Only pending timesheets can be edited", nil)
	case errors.Is(err, timesheet.ErrCapacityExceeded):
		BadRequest(w, "Logged hours would exceed the daily cap", nil)

	// Day-off domain errors
	case errors.Is(err, dayoff.ErrDayOffNotFound):
		NotFound(w, "Day-off request not found")
	case errors.Is(err, dayoff.ErrDayOffOverlap):
		Conflict(w, "Day-off request overlaps an existing request", nil)
	case errors.Is(err, dayoff.ErrWeekendDayOff):
		BadRequest(w, "Day-off requests cannot cover weekend days", nil)
	case errors.Is(err, dayoff.ErrAlreadyProcessed):
		Conflict(w, "Day-off request already processed", nil)

	case errors.Is(err, workhours.ErrInvalidInterval):
		BadRequest(w, "End must be after start", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
