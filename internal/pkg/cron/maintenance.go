package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/domain/holiday"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/jwt"
)

// MaintenanceJobs are the background chores of the service: keeping the
// holiday calendar warm and dropping stale token revocations.
type MaintenanceJobs struct {
	holidayProvider holiday.Provider
	jwtService      jwt.Service
	refreshTokenTTL time.Duration
}

func NewMaintenanceJobs(holidayProvider holiday.Provider, jwtService jwt.Service, refreshTokenTTL time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		holidayProvider: holidayProvider,
		jwtService:      jwtService,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("warm_holiday_calendar", 12*time.Hour, j.WarmHolidayCalendar)
	scheduler.AddJob("purge_revoked_tokens", 1*time.Hour, j.PurgeRevokedTokens)
}

// WarmHolidayCalendar pre-fetches the current and next year so the first
// timesheet validation of a new year never waits on the provider.
func (j *MaintenanceJobs) WarmHolidayCalendar(ctx context.Context) error {
	year := time.Now().Year()
	for _, y := range []int{year, year + 1} {
		if _, err := j.holidayProvider.Year(ctx, y); err != nil {
			return err
		}
	}
	return nil
}

// PurgeRevokedTokens drops revocation records older than the refresh token
// lifetime; such tokens are expired and can no longer be replayed.
func (j *MaintenanceJobs) PurgeRevokedTokens(ctx context.Context) error {
	purged := j.jwtService.PurgeRevokedBefore(time.Now().Add(-j.refreshTokenTTL))
	if purged > 0 {
		slog.Info("Purged expired token revocations", "count", purged)
	}
	return nil
}
