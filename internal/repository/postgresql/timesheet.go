package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/timesheet"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

func (r *timesheetRepositoryImpl) Create(ctx context.Context, entry timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (
			id, user_id, project_id, title, description,
			working_date, duration_minutes, type, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.UserID, entry.ProjectID, entry.Title, entry.Description,
		entry.WorkingDate, entry.DurationMinutes, entry.Type, entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return entry, nil
}

func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ts.id, ts.user_id, ts.project_id, ts.title, ts.description,
		       ts.working_date, ts.duration_minutes, ts.type, ts.status,
		       ts.decided_by, ts.decided_at,
		       ts.created_at, ts.updated_at, ts.deleted_at,
		       p.name AS project_name,
		       u.full_name AS user_name
		FROM timesheets ts
		JOIN projects p ON ts.project_id = p.id
		JOIN users u ON ts.user_id = u.id
		WHERE ts.id = $1 AND ts.deleted_at IS NULL
	`

	var entry timesheet.Timesheet
	var projectName, userName string

	err := q.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.UserID, &entry.ProjectID, &entry.Title, &entry.Description,
		&entry.WorkingDate, &entry.DurationMinutes, &entry.Type, &entry.Status,
		&entry.DecidedBy, &entry.DecidedAt,
		&entry.CreatedAt, &entry.UpdatedAt, &entry.DeletedAt,
		&projectName, &userName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, err
	}

	entry.ProjectName = &projectName
	entry.UserName = &userName

	return entry, nil
}

func (r *timesheetRepositoryImpl) FindByUserAndDate(ctx context.Context, userID string, date time.Time, excludeStatus timesheet.Status) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, project_id, title, description,
		       working_date, duration_minutes, type, status,
		       decided_by, decided_at, created_at, updated_at, deleted_at
		FROM timesheets
		WHERE user_id = $1 AND working_date = $2 AND deleted_at IS NULL
	`
	args := []interface{}{userID, date}

	if excludeStatus != "" {
		query += " AND status <> $3"
		args = append(args, excludeStatus)
	}
	query += " ORDER BY created_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []timesheet.Timesheet
	for rows.Next() {
		var entry timesheet.Timesheet
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.ProjectID, &entry.Title, &entry.Description,
			&entry.WorkingDate, &entry.DurationMinutes, &entry.Type, &entry.Status,
			&entry.DecidedBy, &entry.DecidedAt, &entry.CreatedAt, &entry.UpdatedAt, &entry.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *timesheetRepositoryImpl) ListByUser(ctx context.Context, userID string, filter timesheet.Filter) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"ts.user_id = $1", "ts.deleted_at IS NULL"}
	args := []interface{}{userID}
	argIdx := 2

	if filter.ProjectID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ts.project_id = $%d", argIdx))
		args = append(args, *filter.ProjectID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ts.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ts.working_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ts.working_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM timesheets ts WHERE %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT ts.id, ts.user_id, ts.project_id, ts.title, ts.description,
		       ts.working_date, ts.duration_minutes, ts.type, ts.status,
		       ts.decided_by, ts.decided_at,
		       ts.created_at, ts.updated_at, ts.deleted_at,
		       p.name AS project_name
		FROM timesheets ts
		JOIN projects p ON ts.project_id = p.id
		WHERE %s
		ORDER BY ts.working_date DESC, ts.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.Timesheet
	for rows.Next() {
		var entry timesheet.Timesheet
		var projectName string
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.ProjectID, &entry.Title, &entry.Description,
			&entry.WorkingDate, &entry.DurationMinutes, &entry.Type, &entry.Status,
			&entry.DecidedBy, &entry.DecidedAt,
			&entry.CreatedAt, &entry.UpdatedAt, &entry.DeletedAt,
			&projectName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		entry.ProjectName = &projectName
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, total, nil
}

func (r *timesheetRepositoryImpl) Update(ctx context.Context, entry timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE timesheets
		SET title = $1, description = $2, duration_minutes = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING id
	`, entry.Title, entry.Description, entry.DurationMinutes, entry.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to update timesheet %s: %w", entry.ID, err)
	}
	return nil
}

func (r *timesheetRepositoryImpl) UpdateStatus(ctx context.Context, id string, status timesheet.Status, decidedBy string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE timesheets
		SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING id
	`, status, decidedBy, decidedAt, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to update status for timesheet %s: %w", id, err)
	}
	return nil
}

func (r *timesheetRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE timesheets SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}
