package timesheet

import "context"

type TimesheetService interface {
	Create(ctx context.Context, req CreateTimesheetRequest) (TimesheetResponse, error)
	Update(ctx context.Context, actorID string, req UpdateTimesheetRequest) (TimesheetResponse, error)
	Decide(ctx context.Context, deciderID string, req DecideTimesheetRequest) (TimesheetResponse, error)
	Get(ctx context.Context, id string) (TimesheetResponse, error)
	ListMine(ctx context.Context, userID string, filter Filter) (ListTimesheetResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}
