package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/config"
	"github.com/clocklab/timesheet-backend-go/internal/domain/auth"
	"github.com/clocklab/timesheet-backend-go/internal/domain/dayoff"
	"github.com/clocklab/timesheet-backend-go/internal/domain/holiday"
	"github.com/clocklab/timesheet-backend-go/internal/domain/timesheet"
	"github.com/clocklab/timesheet-backend-go/internal/domain/user"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/idempotency"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/jwt"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/sse"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenPairResponse, error) {
	return auth.TokenPairResponse{AccessToken: "t"}, nil
}
func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPairResponse, error) {
	return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
}
func (stubAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPairResponse, error) {
	return auth.TokenPairResponse{}, auth.ErrInvalidToken
}
func (stubAuthService) Logout(ctx context.Context, refreshToken string) error { return nil }

type stubTimesheetService struct {
	createErr error
	decideErr error
}

func (s *stubTimesheetService) Create(ctx context.Context, req timesheet.CreateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if s.createErr != nil {
		return timesheet.TimesheetResponse{}, s.createErr
	}
	return timesheet.TimesheetResponse{ID: "ts-1", UserID: req.UserID, Status: "pending"}, nil
}

func (s *stubTimesheetService) Update(ctx context.Context, actorID string, req timesheet.UpdateTimesheetRequest) (timesheet.TimesheetResponse, error) {
	return timesheet.TimesheetResponse{ID: req.ID}, nil
}

func (s *stubTimesheetService) Decide(ctx context.Context, deciderID string, req timesheet.DecideTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if s.decideErr != nil {
		return timesheet.TimesheetResponse{}, s.decideErr
	}
	return timesheet.TimesheetResponse{ID: req.ID, Status: req.Decision}, nil
}

func (s *stubTimesheetService) Get(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotFound
}

func (s *stubTimesheetService) ListMine(ctx context.Context, userID string, filter timesheet.Filter) (timesheet.ListTimesheetResponse, error) {
	return timesheet.ListTimesheetResponse{Items: []timesheet.TimesheetResponse{}}, nil
}

func (s *stubTimesheetService) Delete(ctx context.Context, actorID, id string) error { return nil }

type stubDayOffService struct {
	createErr error
}

func (s *stubDayOffService) Create(ctx context.Context, req dayoff.CreateDayOffRequest) (dayoff.DayOffResponse, error) {
	if s.createErr != nil {
		return dayoff.DayOffResponse{}, s.createErr
	}
	return dayoff.DayOffResponse{ID: "do-1", Status: "pending"}, nil
}

func (s *stubDayOffService) Decide(ctx context.Context, deciderID string, req dayoff.DecideDayOffRequest) (dayoff.DayOffResponse, error) {
	return dayoff.DayOffResponse{ID: req.ID, Status: req.Decision}, nil
}

func (s *stubDayOffService) Get(ctx context.Context, id string) (dayoff.DayOffResponse, error) {
	return dayoff.DayOffResponse{}, dayoff.ErrDayOffNotFound
}

func (s *stubDayOffService) ListMine(ctx context.Context, userID string, filter dayoff.Filter) (dayoff.ListDayOffResponse, error) {
	return dayoff.ListDayOffResponse{}, nil
}

func (s *stubDayOffService) Delete(ctx context.Context, actorID, id string) error { return nil }

type stubHolidayProvider struct{}

func (stubHolidayProvider) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	return false, nil
}

func (stubHolidayProvider) Year(ctx context.Context, year int) ([]holiday.Holiday, error) {
	return []holiday.Holiday{
		{Date: time.Date(year, 8, 17, 0, 0, 0, 0, time.UTC), LocalName: "Hari Kemerdekaan", Name: "Independence Day"},
	}, nil
}

type stubProjectHandler struct{}

func (stubProjectHandler) Create(w http.ResponseWriter, r *http.Request)       { w.WriteHeader(http.StatusCreated) }
func (stubProjectHandler) Get(w http.ResponseWriter, r *http.Request)          { w.WriteHeader(http.StatusOK) }
func (stubProjectHandler) List(w http.ResponseWriter, r *http.Request)         { w.WriteHeader(http.StatusOK) }
func (stubProjectHandler) Delete(w http.ResponseWriter, r *http.Request)       { w.WriteHeader(http.StatusOK) }
func (stubProjectHandler) AddMember(w http.ResponseWriter, r *http.Request)    { w.WriteHeader(http.StatusOK) }
func (stubProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (stubProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request)  { w.WriteHeader(http.StatusOK) }

type routerFixture struct {
	router    http.Handler
	jwt       jwt.Service
	timesheet *stubTimesheetService
	dayOff    *stubDayOffService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Name:           "timesheet-backend-test",
			Env:            "test",
			AllowedOrigins: []string{"*"},
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
	}

	jwtSvc := jwt.NewJWTService(testSecret, "1h", "24h")
	tsSvc := &stubTimesheetService{}
	doSvc := &stubDayOffService{}
	hub := sse.NewHub()

	// The idempotency store is only consulted when an Idempotency-Key
	// header is present, which these tests never send.
	idempStore := idempotency.NewStore(redis.NewClient(&redis.Options{Addr: "localhost:1"}), time.Hour)

	router := NewRouter(cfg, jwtSvc, Handlers{
		Auth:      NewAuthHandler(jwtSvc, stubAuthService{}),
		Project:   stubProjectHandler{},
		Timesheet: NewTimesheetHandler(tsSvc),
		DayOff:    NewDayOffHandler(doSvc),
		Holiday:   NewHolidayHandler(stubHolidayProvider{}),
		Events:    NewEventsHandler(hub, jwtSvc),
	}, idempStore)

	return &routerFixture{router: router, jwt: jwtSvc, timesheet: tsSvc, dayOff: doSvc}
}

func (f *routerFixture) accessToken(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken("user-1", "user@example.com", role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AuthRequired(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/timesheets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CreateTimesheet(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/timesheets", f.accessToken(t, user.RoleEmployee), map[string]any{
		"title": "Work",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "ts-1")
}

func TestRouter_DecideRequiresAdmin(t *testing.T) {
	f := newRouterFixture(t)

	body := map[string]any{"decision": "approved"}

	rec := f.do(t, http.MethodPost, "/api/v1/timesheets/ts-1/decision", f.accessToken(t, user.RoleEmployee), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/timesheets/ts-1/decision", f.accessToken(t, user.RoleAdmin), body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CapacityErrorMapsToBadRequest(t *testing.T) {
	f := newRouterFixture(t)
	f.timesheet.createErr = &timesheet.CapacityExceededError{
		MaxAllowedHours: decimal.RequireFromString("4.5"),
	}

	rec := f.do(t, http.MethodPost, "/api/v1/timesheets", f.accessToken(t, user.RoleEmployee), map[string]any{
		"title": "Work",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "4.5")
}

func TestRouter_OverlapErrorMapsToConflict(t *testing.T) {
	f := newRouterFixture(t)
	f.dayOff.createErr = &dayoff.OverlapError{ConflictID: "do-9", ConflictTitle: "Vacation"}

	rec := f.do(t, http.MethodPost, "/api/v1/day-offs", f.accessToken(t, user.RoleEmployee), map[string]any{
		"title": "Trip",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "do-9")
}

func TestRouter_SSETokenAndStreamAuth(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/events/token", f.accessToken(t, user.RoleEmployee), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var parsed struct {
		Data struct {
			Token     string `json:"token"`
			ExpiresIn int    `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	assert.NotEmpty(t, parsed.Data.Token)
	assert.Equal(t, 300, parsed.Data.ExpiresIn)

	// The stream rejects a missing or non-SSE token.
	rec = f.do(t, http.MethodGet, "/api/v1/events/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/events/stream?token="+f.accessToken(t, user.RoleEmployee), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_HolidayCalendar(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/holidays?year=2024", f.accessToken(t, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024-08-17")
	assert.Contains(t, rec.Body.String(), "Independence Day")
}

func TestRouter_RefreshWithoutCookie(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AccessTokenTypeEnforced(t *testing.T) {
	f := newRouterFixture(t)

	// An SSE token must not pass the access-token middleware.
	sseToken, _, err := f.jwt.GenerateSSEToken("user-1")
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/api/v1/timesheets", sseToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
