package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/dayoff"
	"github.com/clocklab/timesheet-backend-go/internal/domain/holiday"
	"github.com/clocklab/timesheet-backend-go/internal/domain/notification"
	"github.com/clocklab/timesheet-backend-go/internal/domain/project"
	"github.com/clocklab/timesheet-backend-go/internal/domain/timesheet"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/database"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/workhours"
)

// Service validates and persists timesheet entries. Creation runs the whole
// check sequence inside one transaction holding a per-(user, date) advisory
// lock, so two concurrent submissions for the same day cannot both pass the
// capacity check.
type Service struct {
	tx database.TxManager
	timesheet.TimesheetRepository
	projectRepo project.ProjectRepository
	dayOffRepo  dayoff.DayOffRepository
	holidays    holiday.Provider
	model       workhours.Model
	publisher   notification.Publisher
	logger      *slog.Logger

	now func() time.Time
}

func NewService(
	tx database.TxManager,
	timesheetRepo timesheet.TimesheetRepository,
	projectRepo project.ProjectRepository,
	dayOffRepo dayoff.DayOffRepository,
	holidays holiday.Provider,
	model workhours.Model,
	publisher notification.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		tx:                  tx,
		TimesheetRepository: timesheetRepo,
		projectRepo:         projectRepo,
		dayOffRepo:          dayOffRepo,
		holidays:            holidays,
		model:               model,
		publisher:           publisher,
		logger:              logger,
		now:                 time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	workingDate := workhours.DateOf(s.now())
	if req.WorkingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.WorkingDate)
		if err != nil {
			return timesheet.TimesheetResponse{}, fmt.Errorf("failed to parse working date: %w", err)
		}
		workingDate = parsed
	}

	entry := timesheet.Timesheet{
		UserID:          req.UserID,
		ProjectID:       req.ProjectID,
		Title:           req.Title,
		Description:     req.Description,
		WorkingDate:     workingDate,
		DurationMinutes: req.DurationMinutes,
		Type:            timesheet.EntryType(req.Type),
		Status:          timesheet.StatusPending,
	}

	var created timesheet.Timesheet
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.tx.LockUserDate(txCtx, entry.UserID, workingDate); err != nil {
			return err
		}

		if err := s.validate(txCtx, entry); err != nil {
			return err
		}

		var err error
		created, err = s.TimesheetRepository.Create(txCtx, entry)
		return err
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.logger.InfoContext(ctx, "timesheet created",
		slog.String("timesheet_id", created.ID),
		slog.String("user_id", created.UserID),
		slog.String("working_date", workingDate.Format("2006-01-02")),
		slog.Int("duration_minutes", created.DurationMinutes),
	)

	return timesheet.ToResponse(created), nil
}

// validate runs the creation checks in order, stopping at the first failure.
// Must be called inside the transaction that also performs the insert.
func (s *Service) validate(ctx context.Context, entry timesheet.Timesheet) error {
	if _, err := s.projectRepo.GetByID(ctx, entry.ProjectID); err != nil {
		return err
	}

	isMember, err := s.projectRepo.IsMember(ctx, entry.UserID, entry.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to check project membership: %w", err)
	}
	if !isMember {
		return project.ErrNotInProject
	}

	if entry.Type != timesheet.TypeNormal {
		return nil
	}

	if workhours.IsWeekend(entry.WorkingDate) {
		return timesheet.ErrNonWorkingDay
	}
	isHoliday, err := s.holidays.IsHoliday(ctx, entry.WorkingDate)
	if err != nil {
		return fmt.Errorf("failed to check holiday calendar: %w", err)
	}
	if isHoliday {
		return timesheet.ErrNonWorkingDay
	}

	maxAllowed, err := s.leaveAdjustedCapacity(ctx, entry.UserID, entry.WorkingDate)
	if err != nil {
		return err
	}

	existing, err := s.TimesheetRepository.FindByUserAndDate(ctx, entry.UserID, entry.WorkingDate, timesheet.StatusRejected)
	if err != nil {
		return fmt.Errorf("failed to load existing entries: %w", err)
	}

	var alreadyLogged time.Duration
	for _, e := range existing {
		if e.Type == timesheet.TypeNormal {
			alreadyLogged += e.Duration()
		}
	}

	if alreadyLogged+entry.Duration() > maxAllowed {
		return &timesheet.CapacityExceededError{
			MaxAllowedHours: workhours.DurationHours(maxAllowed),
		}
	}

	return nil
}

// leaveAdjustedCapacity returns how much of the date's capacity is loggable
// once approved day-off intervals touching the date have been subtracted.
// Multiple overlapping approvals cannot consume more than a full day.
func (s *Service) leaveAdjustedCapacity(ctx context.Context, userID string, date time.Time) (time.Duration, error) {
	dayStart := workhours.DateOf(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	approved, err := s.dayOffRepo.FindOverlapping(ctx, userID, dayStart, dayEnd, []dayoff.Status{dayoff.StatusApproved})
	if err != nil {
		return 0, fmt.Errorf("failed to load approved day offs: %w", err)
	}

	capacity := s.model.DailyCapacity()
	var consumed time.Duration
	for _, d := range approved {
		days, err := s.model.RemainingCapacity(d.Start, d.End)
		if err != nil {
			return 0, fmt.Errorf("failed to compute remaining capacity: %w", err)
		}
		for _, dc := range days {
			if dc.Date.Equal(dayStart) {
				consumed += capacity - dc.Remaining
				break
			}
		}
		if consumed >= capacity {
			consumed = capacity
			break
		}
	}

	return capacity - consumed, nil
}

func (s *Service) Update(ctx context.Context, actorID string, req timesheet.UpdateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	var updated timesheet.Timesheet
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.TimesheetRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if entry.UserID != actorID {
			return timesheet.ErrTimesheetNotFound
		}
		if !entry.IsPending() {
			return timesheet.ErrNotEditable
		}

		if err := s.tx.LockUserDate(txCtx, entry.UserID, entry.WorkingDate); err != nil {
			return err
		}

		if req.Title != nil {
			entry.Title = *req.Title
		}
		if req.Description != nil {
			entry.Description = req.Description
		}
		if req.DurationMinutes != nil && *req.DurationMinutes != entry.DurationMinutes {
			entry.DurationMinutes = *req.DurationMinutes
			// Re-run the capacity check against the other entries of the day.
			if entry.Type == timesheet.TypeNormal {
				maxAllowed, err := s.leaveAdjustedCapacity(txCtx, entry.UserID, entry.WorkingDate)
				if err != nil {
					return err
				}
				existing, err := s.TimesheetRepository.FindByUserAndDate(txCtx, entry.UserID, entry.WorkingDate, timesheet.StatusRejected)
				if err != nil {
					return fmt.Errorf("failed to load existing entries: %w", err)
				}
				var logged time.Duration
				for _, e := range existing {
					if e.ID != entry.ID && e.Type == timesheet.TypeNormal {
						logged += e.Duration()
					}
				}
				if logged+entry.Duration() > maxAllowed {
					return &timesheet.CapacityExceededError{
						MaxAllowedHours: workhours.DurationHours(maxAllowed),
					}
				}
			}
		}

		if err := s.TimesheetRepository.Update(txCtx, entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return timesheet.ToResponse(updated), nil
}

func (s *Service) Decide(ctx context.Context, deciderID string, req timesheet.DecideTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	var decided timesheet.Timesheet
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.TimesheetRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if !entry.IsPending() {
			return timesheet.ErrAlreadyProcessed
		}

		decidedAt := s.now()
		status := timesheet.Status(req.Decision)
		if err := s.TimesheetRepository.UpdateStatus(txCtx, entry.ID, status, deciderID, decidedAt); err != nil {
			return err
		}

		entry.Status = status
		entry.DecidedBy = &deciderID
		entry.DecidedAt = &decidedAt
		decided = entry
		return nil
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.logger.InfoContext(ctx, "timesheet decided",
		slog.String("timesheet_id", decided.ID),
		slog.String("status", string(decided.Status)),
		slog.String("decided_by", deciderID),
	)

	s.publisher.Publish(decided.UserID, notification.EventTimesheetDecided, notification.DecisionPayload{
		ID:     decided.ID,
		Kind:   "timesheet",
		Status: string(decided.Status),
	})

	return timesheet.ToResponse(decided), nil
}

func (s *Service) Get(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	entry, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return timesheet.ToResponse(entry), nil
}

func (s *Service) ListMine(ctx context.Context, userID string, filter timesheet.Filter) (timesheet.ListTimesheetResponse, error) {
	entries, total, err := s.TimesheetRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return timesheet.ListTimesheetResponse{}, err
	}

	items := make([]timesheet.TimesheetResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, timesheet.ToResponse(e))
	}
	return timesheet.ListTimesheetResponse{Items: items, Total: total}, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	entry, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.UserID != actorID {
		return timesheet.ErrTimesheetNotFound
	}
	if !entry.IsPending() {
		return timesheet.ErrNotEditable
	}
	return s.TimesheetRepository.SoftDelete(ctx, id)
}
