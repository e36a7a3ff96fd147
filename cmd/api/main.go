package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clocklab/timesheet-backend-go/internal/config"
	appHTTP "github.com/clocklab/timesheet-backend-go/internal/handler/http"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/cron"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/database"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/holidayapi"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/idempotency"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/jwt"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/sse"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/workhours"
	"github.com/clocklab/timesheet-backend-go/internal/repository/postgresql"
	authService "github.com/clocklab/timesheet-backend-go/internal/service/auth"
	dayoffService "github.com/clocklab/timesheet-backend-go/internal/service/dayoff"
	projectService "github.com/clocklab/timesheet-backend-go/internal/service/project"
	timesheetService "github.com/clocklab/timesheet-backend-go/internal/service/timesheet"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	userRepo := postgresql.NewUserRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	dayOffRepo := postgresql.NewDayOffRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()
	holidayProvider := holidayapi.NewClient(cfg.Holiday.BaseURL, cfg.Holiday.CountryCode, 10*time.Second)
	idempStore := idempotency.NewStore(rdb, cfg.Redis.IdempotencyTTL)
	workModel := workhours.DefaultModel()

	authSvc := authService.NewService(userRepo, jwtService, logger)
	projectSvc := projectService.NewService(projectRepo, userRepo, logger)
	timesheetSvc := timesheetService.NewService(txManager, timesheetRepo, projectRepo, dayOffRepo, holidayProvider, workModel, hub, logger)
	dayOffSvc := dayoffService.NewService(txManager, dayOffRepo, hub, logger)

	refreshTTL, err := time.ParseDuration(cfg.JWT.RefreshExpiration)
	if err != nil {
		fmt.Println("Invalid JWT_REFRESH_EXPIRATION_TIME:", err)
		return
	}
	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(holidayProvider, jwtService, refreshTTL).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(jwtService, authSvc),
		Project:   appHTTP.NewProjectHandler(projectSvc),
		Timesheet: appHTTP.NewTimesheetHandler(timesheetSvc),
		DayOff:    appHTTP.NewDayOffHandler(dayOffSvc),
		Holiday:   appHTTP.NewHolidayHandler(holidayProvider),
		Events:    appHTTP.NewEventsHandler(hub, jwtService),
	}, idempStore)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", slog.Any("error", err))
	}

	logger.Info("Server stopped")
}
