package project

import "context"

// ProjectRepository - interface for projects and project_members tables
type ProjectRepository interface {
	Create(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, p Project) error
	SoftDelete(ctx context.Context, id string) error

	AddMember(ctx context.Context, projectID, userID string) (Member, error)
	RemoveMember(ctx context.Context, projectID, userID string) error
	IsMember(ctx context.Context, userID, projectID string) (bool, error)
	ListMembers(ctx context.Context, projectID string) ([]Member, error)
}
