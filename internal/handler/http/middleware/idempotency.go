package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/clocklab/timesheet-backend-go/internal/handler/http/response"
	"github.com/clocklab/timesheet-backend-go/internal/pkg/idempotency"
	"github.com/go-chi/jwtauth/v5"
)

// responseRecorder buffers the handler's output so it can be cached for
// replay before being written to the client.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotent makes POST handlers safe to retry. When a request carries an
// Idempotency-Key header, the first response for that (route, user, key) is
// cached and replayed for repeats; a concurrent duplicate gets 429 while the
// first is still running. Requests without the header pass straight through.
func Idempotent(store *idempotency.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			_, claims, _ := jwtauth.FromContext(r.Context())
			userID, _ := claims["user_id"].(string)
			route := r.Method + " " + r.URL.Path

			cached, err := store.Begin(r.Context(), route, userID, key)
			if err != nil {
				if errors.Is(err, idempotency.ErrInFlight) {
					response.TooManyRequests(w, "A request with this idempotency key is still being processed")
					return
				}
				logger.ErrorContext(r.Context(), "idempotency store unavailable", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}
			if cached != nil {
				w.Header().Set("Content-Type", cached.ContentType)
				w.Header().Set("Idempotency-Replayed", "true")
				w.WriteHeader(cached.StatusCode)
				_, _ = w.Write(cached.Body)
				return
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Only successful outcomes are worth replaying. Errors release
			// the lock so the client may retry with the same key.
			if rec.status >= 200 && rec.status < 300 {
				err = store.Complete(r.Context(), route, userID, key, idempotency.CachedResponse{
					StatusCode:  rec.status,
					ContentType: rec.Header().Get("Content-Type"),
					Body:        rec.body.Bytes(),
				})
			} else {
				err = store.Abandon(r.Context(), route, userID, key)
			}
			if err != nil {
				logger.ErrorContext(r.Context(), "failed to finish idempotency record", slog.Any("error", err))
			}
		})
	}
}
