package delivery

import (
	"context"
	"net/http"
	"strings"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

type ctxKey string

const userKey ctxKey = "user"

// AuthMiddleware validates the bearer token and puts the user on the request
// context. Expired tokens get a 401 and the auth service has already marked
// the user logged out.
func AuthMiddleware(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			user, err := auth.ValidateToken(r.Context(), token)
			if err != nil {
				writeServiceError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

// AdminOnly gates a subtree to role=admin users.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		if user == nil || user.Role != "admin" {
			writeError(w, http.StatusForbidden, "admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user, or nil outside the middleware.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
