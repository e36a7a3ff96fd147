package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/dayoff"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dayOffRepositoryImpl struct {
	db *database.DB
}

func NewDayOffRepository(db *database.DB) dayoff.DayOffRepository {
	return &dayOffRepositoryImpl{db: db}
}

func (r *dayOffRepositoryImpl) Create(ctx context.Context, req dayoff.DayOff) (dayoff.DayOff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO day_offs (
			id, user_id, title, reason,
			start_at, end_at, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID, req.Title, req.Reason,
		req.Start, req.End, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return dayoff.DayOff{}, fmt.Errorf("failed to create day off request: %w", err)
	}

	return req, nil
}

func (r *dayOffRepositoryImpl) GetByID(ctx context.Context, id string) (dayoff.DayOff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.user_id, d.title, d.reason,
		       d.start_at, d.end_at, d.status,
		       d.decided_by, d.decided_at,
		       d.created_at, d.updated_at, d.deleted_at,
		       u.full_name AS user_name
		FROM day_offs d
		JOIN users u ON d.user_id = u.id
		WHERE d.id = $1 AND d.deleted_at IS NULL
	`

	var req dayoff.DayOff
	var userName string

	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.Title, &req.Reason,
		&req.Start, &req.End, &req.Status,
		&req.DecidedBy, &req.DecidedAt,
		&req.CreatedAt, &req.UpdatedAt, &req.DeletedAt,
		&userName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dayoff.DayOff{}, dayoff.ErrDayOffNotFound
		}
		return dayoff.DayOff{}, err
	}

	req.UserName = &userName

	return req, nil
}

func (r *dayOffRepositoryImpl) FindOverlapping(ctx context.Context, userID string, start, end time.Time, statuses []dayoff.Status) ([]dayoff.DayOff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, title, reason,
		       start_at, end_at, status,
		       decided_by, decided_at,
		       created_at, updated_at, deleted_at
		FROM day_offs
		WHERE user_id = $1
		  AND start_at < $2
		  AND end_at > $3
		  AND deleted_at IS NULL
	`
	args := []interface{}{userID, end, start}

	if len(statuses) > 0 {
		query += " AND status = ANY($4)"
		statusStrings := make([]string, len(statuses))
		for i, s := range statuses {
			statusStrings[i] = string(s)
		}
		args = append(args, statusStrings)
	}
	query += " ORDER BY start_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping day offs: %w", err)
	}
	defer rows.Close()

	var reqs []dayoff.DayOff
	for rows.Next() {
		var req dayoff.DayOff
		err := rows.Scan(
			&req.ID, &req.UserID, &req.Title, &req.Reason,
			&req.Start, &req.End, &req.Status,
			&req.DecidedBy, &req.DecidedAt,
			&req.CreatedAt, &req.UpdatedAt, &req.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *dayOffRepositoryImpl) ListByUser(ctx context.Context, userID string, filter dayoff.Filter) ([]dayoff.DayOff, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []interface{}{userID}
	argIdx := 2

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("end_at > $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("start_at < $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM day_offs WHERE %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count day offs: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT id, user_id, title, reason,
		       start_at, end_at, status,
		       decided_by, decided_at,
		       created_at, updated_at, deleted_at
		FROM day_offs
		WHERE %s
		ORDER BY start_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query day offs: %w", err)
	}
	defer rows.Close()

	var reqs []dayoff.DayOff
	for rows.Next() {
		var req dayoff.DayOff
		err := rows.Scan(
			&req.ID, &req.UserID, &req.Title, &req.Reason,
			&req.Start, &req.End, &req.Status,
			&req.DecidedBy, &req.DecidedAt,
			&req.CreatedAt, &req.UpdatedAt, &req.DeletedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan day off: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return reqs, total, nil
}

func (r *dayOffRepositoryImpl) UpdateStatus(ctx context.Context, id string, status dayoff.Status, decidedBy string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	var updatedID string
	err := q.QueryRow(ctx, `
		UPDATE day_offs
		SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING id
	`, status, decidedBy, decidedAt, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dayoff.ErrDayOffNotFound
		}
		return fmt.Errorf("failed to update status for day off %s: %w", id, err)
	}
	return nil
}

func (r *dayOffRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE day_offs SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return dayoff.ErrDayOffNotFound
	}
	return nil
}
