package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clocklab/timesheet-backend-go/internal/domain/project"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO projects (id, name, description, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, TRUE, NOW(), NOW())
		RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, p.Name, p.Description).
		Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return project.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return p, nil
}

func (r *projectRepositoryImpl) GetByID(ctx context.Context, id string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_active, created_at, updated_at, deleted_at
		FROM projects
		WHERE id = $1 AND deleted_at IS NULL
	`

	var p project.Project
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, err
	}

	return p, nil
}

func (r *projectRepositoryImpl) List(ctx context.Context) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, description, is_active, created_at, updated_at, deleted_at
		FROM projects
		WHERE deleted_at IS NULL
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var p project.Project
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepositoryImpl) Update(ctx context.Context, p project.Project) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE projects
		SET name = $1, description = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING id
	`, p.Name, p.Description, p.IsActive, p.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project %s: %w", p.ID, err)
	}
	return nil
}

func (r *projectRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE projects SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return project.ErrProjectNotFound
	}
	return nil
}

func (r *projectRepositoryImpl) AddMember(ctx context.Context, projectID, userID string) (project.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO project_members (id, project_id, user_id, joined_at)
		VALUES (uuidv7(), $1, $2, NOW())
		RETURNING id, joined_at
	`

	m := project.Member{ProjectID: projectID, UserID: userID}
	err := q.QueryRow(ctx, query, projectID, userID).Scan(&m.ID, &m.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return project.Member{}, project.ErrAlreadyMember
		}
		return project.Member{}, fmt.Errorf("failed to add project member: %w", err)
	}

	return m, nil
}

func (r *projectRepositoryImpl) RemoveMember(ctx context.Context, projectID, userID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE project_members SET left_at = NOW()
		WHERE project_id = $1 AND user_id = $2 AND left_at IS NULL
	`, projectID, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return project.ErrNotInProject
	}
	return nil
}

func (r *projectRepositoryImpl) IsMember(ctx context.Context, userID, projectID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM project_members
			WHERE user_id = $1 AND project_id = $2 AND left_at IS NULL
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, userID, projectID).Scan(&exists)
	return exists, err
}

func (r *projectRepositoryImpl) ListMembers(ctx context.Context, projectID string) ([]project.Member, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, project_id, user_id, joined_at, left_at
		FROM project_members
		WHERE project_id = $1 AND left_at IS NULL
		ORDER BY joined_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []project.Member
	for rows.Next() {
		var m project.Member
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.JoinedAt, &m.LeftAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
