package project

import (
	"github.com/clocklab/timesheet-backend-go/internal/pkg/validator"
)

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r CreateProjectRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

func (r AddMemberRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "Valid user ID is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProjectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func ToResponse(p Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}
