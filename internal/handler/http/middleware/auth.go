package middleware

import (
	"net/http"

	"github.com/clocklab/timesheet-backend-go/internal/domain/auth"
	"github.com/clocklab/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests whose context carries no valid access token.
// It runs after jwtauth.Verifier, which parses the Authorization header and
// stores the verification result on the context. Refresh and SSE tokens are
// signed with the same key but carry a different type claim, so they do not
// pass here.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if typ, _ := claims["type"].(string); typ != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
