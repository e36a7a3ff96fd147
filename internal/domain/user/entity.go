package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleEmployee),
}

// User entity
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsAdmin reports whether the user may decide timesheets and day-off requests.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
