package http

import (
	"log/slog"
	"os"

	"github.com/clocklab/timesheet-backend-go/internal/config"
	"github.com/clocklab/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/idempotency"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth      AuthHandler
	Project   ProjectHandler
	Timesheet TimesheetHandler
	DayOff    DayOffHandler
	Holiday   HolidayHandler
	Events    EventsHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, handlers Handlers, idempStore *idempotency.Store) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link", "Idempotency-Replayed"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	rateLimiter := middleware.NewRateLimiter(cfg.App.RateLimitRPS, cfg.App.RateLimitBurst)
	r.Use(rateLimiter.Handler)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Auth.Register)
			r.Post("/login", handlers.Auth.Login)
			r.Post("/refresh", handlers.Auth.RefreshToken)
			r.Post("/logout", handlers.Auth.Logout)
		})

		// The stream authenticates itself through a short-lived query token.
		r.Get("/events/stream", handlers.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.Idempotent(idempStore, logger))

			r.Get("/events/token", handlers.Events.GetSSEToken)
			r.Get("/holidays", handlers.Holiday.ListYear)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", handlers.Project.List)
				r.Get("/{id}", handlers.Project.Get)
				r.Get("/{id}/members", handlers.Project.ListMembers)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", handlers.Project.Create)
					r.Delete("/{id}", handlers.Project.Delete)
					r.Post("/{id}/members", handlers.Project.AddMember)
					r.Delete("/{id}/members/{userID}", handlers.Project.RemoveMember)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/", handlers.Timesheet.Create)
				r.Get("/", handlers.Timesheet.ListMine)
				r.Get("/{id}", handlers.Timesheet.Get)
				r.Put("/{id}", handlers.Timesheet.Update)
				r.Delete("/{id}", handlers.Timesheet.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/decision", handlers.Timesheet.Decide)
				})
			})

			r.Route("/day-offs", func(r chi.Router) {
				r.Post("/", handlers.DayOff.Create)
				r.Get("/", handlers.DayOff.ListMine)
				r.Get("/{id}", handlers.DayOff.Get)
				r.Delete("/{id}", handlers.DayOff.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/decision", handlers.DayOff.Decide)
				})
			})
		})
	})

	return r
}
