package dayoff

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/dayoff"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/workhours"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (fakeTx) LockUserDate(ctx context.Context, userID string, date time.Time) error { return nil }
func (fakeTx) LockUser(ctx context.Context, userID string) error                     { return nil }

type fakeDayOffRepo struct {
	requests map[string]dayoff.DayOff
	nextID   int
}

func newFakeDayOffRepo() *fakeDayOffRepo {
	return &fakeDayOffRepo{requests: make(map[string]dayoff.DayOff)}
}

func (r *fakeDayOffRepo) Create(ctx context.Context, req dayoff.DayOff) (dayoff.DayOff, error) {
	r.nextID++
	req.ID = fmt.Sprintf("do-%d", r.nextID)
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeDayOffRepo) GetByID(ctx context.Context, id string) (dayoff.DayOff, error) {
	req, ok := r.requests[id]
	if !ok || req.DeletedAt != nil {
		return dayoff.DayOff{}, dayoff.ErrDayOffNotFound
	}
	return req, nil
}

func (r *fakeDayOffRepo) FindOverlapping(ctx context.Context, userID string, start, end time.Time, statuses []dayoff.Status) ([]dayoff.DayOff, error) {
	var out []dayoff.DayOff
	for _, d := range r.requests {
		if d.UserID != userID || d.DeletedAt != nil || !d.Overlaps(start, end) {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if d.Status == s {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDayOffRepo) ListByUser(ctx context.Context, userID string, filter dayoff.Filter) ([]dayoff.DayOff, int64, error) {
	var out []dayoff.DayOff
	for _, d := range r.requests {
		if d.UserID == userID && d.DeletedAt == nil {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeDayOffRepo) UpdateStatus(ctx context.Context, id string, status dayoff.Status, decidedBy string, decidedAt time.Time) error {
	stored, ok := r.requests[id]
	if !ok {
		return dayoff.ErrDayOffNotFound
	}
	stored.Status = status
	stored.DecidedBy = &decidedBy
	stored.DecidedAt = &decidedAt
	r.requests[id] = stored
	return nil
}

func (r *fakeDayOffRepo) SoftDelete(ctx context.Context, id string) error {
	stored, ok := r.requests[id]
	if !ok {
		return dayoff.ErrDayOffNotFound
	}
	now := time.Now()
	stored.DeletedAt = &now
	r.requests[id] = stored
	return nil
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) Publish(userID, event string, payload any) {
	p.events = append(p.events, event)
}

func newService() (*Service, *fakeDayOffRepo, *fakePublisher) {
	repo := newFakeDayOffRepo()
	pub := &fakePublisher{}
	svc := NewService(fakeTx{}, repo, pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo, pub
}

func createReq(start, end string) dayoff.CreateDayOffRequest {
	return dayoff.CreateDayOffRequest{
		UserID: "user-1",
		Title:  "Vacation",
		Start:  start,
		End:    end,
	}
}

func TestCreate_OK(t *testing.T) {
	svc, _, _ := newService()

	// Monday morning.
	resp, err := svc.Create(context.Background(), createReq("2024-06-10T09:00:00Z", "2024-06-10T13:30:00Z"))
	require.NoError(t, err)
	assert.Equal(t, string(dayoff.StatusPending), resp.Status)
}

func TestCreate_EndBeforeStart(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Create(context.Background(), createReq("2024-06-10T13:00:00Z", "2024-06-10T09:00:00Z"))
	assert.ErrorIs(t, err, workhours.ErrInvalidInterval)
}

func TestCreate_WeekendSpanRejected(t *testing.T) {
	svc, _, _ := newService()

	// Friday through Monday fully covers Saturday and Sunday.
	_, err := svc.Create(context.Background(), createReq("2024-06-07T09:00:00Z", "2024-06-10T18:00:00Z"))
	assert.ErrorIs(t, err, dayoff.ErrWeekendDayOff)
}

func TestCreate_WeekendOnlyRejected(t *testing.T) {
	svc, _, _ := newService()

	// Saturday morning only: covers no full weekend day but touches no
	// workday either.
	_, err := svc.Create(context.Background(), createReq("2024-06-08T09:00:00Z", "2024-06-08T12:00:00Z"))
	assert.ErrorIs(t, err, dayoff.ErrWeekendDayOff)
}

func TestCreate_PartialWeekendEdgeAllowed(t *testing.T) {
	svc, _, _ := newService()

	// Friday afternoon through Saturday morning: Saturday is only partially
	// covered, and Friday is a workday, so the request stands.
	_, err := svc.Create(context.Background(), createReq("2024-06-07T13:30:00Z", "2024-06-08T10:00:00Z"))
	assert.NoError(t, err)
}

func TestCreate_OverlapRejected(t *testing.T) {
	svc, _, _ := newService()

	first, err := svc.Create(context.Background(), createReq("2024-06-10T09:00:00Z", "2024-06-12T18:00:00Z"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createReq("2024-06-11T09:00:00Z", "2024-06-13T18:00:00Z"))
	assert.ErrorIs(t, err, dayoff.ErrDayOffOverlap)

	var overlapErr *dayoff.OverlapError
	require.ErrorAs(t, err, &overlapErr)
	assert.Equal(t, first.ID, overlapErr.ConflictID)
}

func TestCreate_TouchingIntervalsDoNotOverlap(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Create(context.Background(), createReq("2024-06-10T09:00:00Z", "2024-06-10T12:00:00Z"))
	require.NoError(t, err)

	// Half-open intervals: a request starting exactly where the previous
	// one ends is fine.
	_, err = svc.Create(context.Background(), createReq("2024-06-10T12:00:00Z", "2024-06-10T18:30:00Z"))
	assert.NoError(t, err)
}

func TestCreate_RejectedRequestStillBlocksInterval(t *testing.T) {
	svc, _, _ := newService()

	first, err := svc.Create(context.Background(), createReq("2024-06-10T09:00:00Z", "2024-06-10T13:00:00Z"))
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), "admin-1", dayoff.DecideDayOffRequest{
		ID:       first.ID,
		Decision: string(dayoff.StatusRejected),
	})
	require.NoError(t, err)

	// A rejected request is still on record and keeps blocking the interval.
	_, err = svc.Create(context.Background(), createReq("2024-06-10T10:00:00Z", "2024-06-10T12:00:00Z"))
	assert.ErrorIs(t, err, dayoff.ErrDayOffOverlap)
}

func TestCreate_DeletedRequestFreesInterval(t *testing.T) {
	svc, _, _ := newService()

	first, err := svc.Create(context.Background(), createReq("2024-06-10T09:00:00Z", "2024-06-10T13:00:00Z"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "user-1", first.ID))

	_, err = svc.Create(context.Background(), createReq("2024-06-10T10:00:00Z", "2024-06-10T12:00:00Z"))
	assert.NoError(t, err)
}

func TestCreate_OtherUsersDoNotConflict(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Create(context.Background(), createReq("2024-06-10T09:00:00Z", "2024-06-10T18:00:00Z"))
	require.NoError(t, err)

	req := createReq("2024-06-10T09:00:00Z", "2024-06-10T18:00:00Z")
	req.UserID = "user-2"
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestDecide_PublishesAndIsTerminal(t *testing.T) {
	svc, _, pub := newService()

	resp, err := svc.Create(context.Background(), createReq("2024-06-10T09:00:00Z", "2024-06-10T18:00:00Z"))
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), "admin-1", dayoff.DecideDayOffRequest{
		ID:       resp.ID,
		Decision: string(dayoff.StatusApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, string(dayoff.StatusApproved), decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "admin-1", *decided.DecidedBy)
	assert.Equal(t, []string{"day_off_decided"}, pub.events)

	_, err = svc.Decide(context.Background(), "admin-1", dayoff.DecideDayOffRequest{
		ID:       resp.ID,
		Decision: string(dayoff.StatusRejected),
	})
	assert.ErrorIs(t, err, dayoff.ErrAlreadyProcessed)
}

func TestDelete_OnlyOwnPending(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.Create(context.Background(), createReq("2024-06-10T09:00:00Z", "2024-06-10T18:00:00Z"))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "user-2", resp.ID)
	assert.ErrorIs(t, err, dayoff.ErrDayOffNotFound)

	_, err = svc.Decide(context.Background(), "admin-1", dayoff.DecideDayOffRequest{
		ID:       resp.ID,
		Decision: string(dayoff.StatusApproved),
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "user-1", resp.ID)
	assert.ErrorIs(t, err, dayoff.ErrAlreadyProcessed)
}
