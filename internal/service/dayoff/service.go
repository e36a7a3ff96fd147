package dayoff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/dayoff"
	"github.com/clocklab/timesheet-backend-go/internal/domain/notification"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/database"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/workhours"
)

// Service manages day-off requests. Creation holds a per-user advisory lock
// for the length of the overlap check and insert, so two concurrent requests
// with intersecting intervals cannot both be accepted.
type Service struct {
	tx database.TxManager
	dayoff.DayOffRepository
	publisher notification.Publisher
	logger    *slog.Logger

	now func() time.Time
}

func NewService(
	tx database.TxManager,
	dayOffRepo dayoff.DayOffRepository,
	publisher notification.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		tx:               tx,
		DayOffRepository: dayOffRepo,
		publisher:        publisher,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req dayoff.CreateDayOffRequest) (dayoff.DayOffResponse, error) {
	if err := req.Validate(); err != nil {
		return dayoff.DayOffResponse{}, err
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return dayoff.DayOffResponse{}, fmt.Errorf("failed to parse start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		return dayoff.DayOffResponse{}, fmt.Errorf("failed to parse end: %w", err)
	}

	if !end.After(start) {
		return dayoff.DayOffResponse{}, workhours.ErrInvalidInterval
	}
	if err := s.checkWeekendCoverage(start, end); err != nil {
		return dayoff.DayOffResponse{}, err
	}

	request := dayoff.DayOff{
		UserID: req.UserID,
		Title:  req.Title,
		Reason: req.Reason,
		Start:  start,
		End:    end,
		Status: dayoff.StatusPending,
	}

	var created dayoff.DayOff
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.tx.LockUser(txCtx, request.UserID); err != nil {
			return err
		}

		// Any non-deleted request blocks the interval, whatever its status.
		conflicts, err := s.DayOffRepository.FindOverlapping(txCtx, request.UserID, start, end, nil)
		if err != nil {
			return fmt.Errorf("failed to check overlapping day offs: %w", err)
		}
		if len(conflicts) > 0 {
			return &dayoff.OverlapError{
				ConflictID:    conflicts[0].ID,
				ConflictTitle: conflicts[0].Title,
			}
		}

		created, err = s.DayOffRepository.Create(txCtx, request)
		return err
	})
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}

	s.logger.InfoContext(ctx, "day off requested",
		slog.String("day_off_id", created.ID),
		slog.String("user_id", created.UserID),
		slog.Time("start", created.Start),
		slog.Time("end", created.End),
	)

	return dayoff.ToResponse(created), nil
}

// checkWeekendCoverage rejects intervals that fully cover a Saturday or
// Sunday, and intervals that touch no workday at all.
func (s *Service) checkWeekendCoverage(start, end time.Time) error {
	last := workhours.DateOf(end)
	for day := workhours.DateOf(start); !day.After(last); day = day.AddDate(0, 0, 1) {
		if workhours.IsWeekend(day) && workhours.CoversFullDay(start, end, day) {
			return dayoff.ErrWeekendDayOff
		}
	}

	// An interval that only touches weekend days covers no workday at all.
	touchesWorkday := false
	for day := workhours.DateOf(start); !day.After(last); day = day.AddDate(0, 0, 1) {
		if !workhours.IsWeekend(day) {
			touchesWorkday = true
			break
		}
	}
	if !touchesWorkday {
		return dayoff.ErrWeekendDayOff
	}
	return nil
}

func (s *Service) Decide(ctx context.Context, deciderID string, req dayoff.DecideDayOffRequest) (dayoff.DayOffResponse, error) {
	if err := req.Validate(); err != nil {
		return dayoff.DayOffResponse{}, err
	}

	var decided dayoff.DayOff
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := s.DayOffRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return dayoff.ErrAlreadyProcessed
		}

		decidedAt := s.now()
		status := dayoff.Status(req.Decision)
		if err := s.DayOffRepository.UpdateStatus(txCtx, request.ID, status, deciderID, decidedAt); err != nil {
			return err
		}

		request.Status = status
		request.DecidedBy = &deciderID
		request.DecidedAt = &decidedAt
		decided = request
		return nil
	})
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}

	s.logger.InfoContext(ctx, "day off decided",
		slog.String("day_off_id", decided.ID),
		slog.String("status", string(decided.Status)),
		slog.String("decided_by", deciderID),
	)

	s.publisher.Publish(decided.UserID, notification.EventDayOffDecided, notification.DecisionPayload{
		ID:     decided.ID,
		Kind:   "day_off",
		Status: string(decided.Status),
	})

	return dayoff.ToResponse(decided), nil
}

func (s *Service) Get(ctx context.Context, id string) (dayoff.DayOffResponse, error) {
	request, err := s.DayOffRepository.GetByID(ctx, id)
	if err != nil {
		return dayoff.DayOffResponse{}, err
	}
	return dayoff.ToResponse(request), nil
}

func (s *Service) ListMine(ctx context.Context, userID string, filter dayoff.Filter) (dayoff.ListDayOffResponse, error) {
	requests, total, err := s.DayOffRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return dayoff.ListDayOffResponse{}, err
	}

	items := make([]dayoff.DayOffResponse, 0, len(requests))
	for _, r := range requests {
		items = append(items, dayoff.ToResponse(r))
	}
	return dayoff.ListDayOffResponse{Items: items, Total: total}, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	request, err := s.DayOffRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.UserID != actorID {
		return dayoff.ErrDayOffNotFound
	}
	if !request.IsPending() {
		return dayoff.ErrAlreadyProcessed
	}
	return s.DayOffRepository.SoftDelete(ctx, id)
}
