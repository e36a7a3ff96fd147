package dayoff

import "context"

type DayOffService interface {
	Create(ctx context.Context, req CreateDayOffRequest) (DayOffResponse, error)
	Decide(ctx context.Context, deciderID string, req DecideDayOffRequest) (DayOffResponse, error)
	Get(ctx context.Context, id string) (DayOffResponse, error)
	ListMine(ctx context.Context, userID string, filter Filter) (ListDayOffResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}
