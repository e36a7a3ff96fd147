package project

import "time"

// Project entity
type Project struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Member links a user to a project. Membership is soft-deleted when a user
// leaves so that historical timesheets stay attributable.
type Member struct {
	ID        string
	ProjectID string
	UserID    string
	JoinedAt  time.Time
	LeftAt    *time.Time
}
