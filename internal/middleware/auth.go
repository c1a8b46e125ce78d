package middleware

import (
	"context"
	"net/http"

	"github.com/inkwell/inkwell-go/internal/crypto"
	"github.com/inkwell/inkwell-go/internal/model"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "inkwell_session"

type contextKey string

const userKey contextKey = "currentUser"

// UserProvider resolves a session's user id to a full user record.
// Implemented by service.AuthService.
type UserProvider interface {
	GetUser(ctx context.Context, userID int64) (*model.User, error)
}

// CurrentUser resolves the session cookie, if any, and puts the
// logged-in user on the request context. Requests without a valid
// session pass through anonymously; RequireUser decides which routes
// that is acceptable for.
func CurrentUser(secret string, users UserProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := crypto.ParseSessionToken(cookie.Value, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUser(r.Context(), claims.UserID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser guards routes that must not be reachable anonymously.
// Unauthenticated requests are redirected to the login page rather
// than handed an error.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext extracts the authenticated user from the request
// context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}
