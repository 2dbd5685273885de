package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Aarya06/Bookwizard/internal/session"
	"github.com/Aarya06/Bookwizard/internal/user"
)

const sessionCookieName = "session_id"

// SessionMiddleware assigns every visitor a session id cookie. The id is the
// only key into the redis session store; the cookie itself holds no state.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(session.TTL / time.Second),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), "session_id", sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUserMiddleware resolves the session's logged-in user id, if any, and
// puts it on the request context. Anonymous sessions pass through untouched.
func CurrentUserMiddleware(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := getSessionID(r.Context())
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := sessions.User(r.Context(), sessionID)
			if err != nil {
				if !errors.Is(err, session.ErrNoUser) {
					respondError(w, http.StatusInternalServerError, "internal_error", "failed to load session")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin rejects anonymous requests.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if getUserID(r.Context()) == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects everyone but the configured admin account.
func RequireAdmin(users *user.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := getUserID(r.Context())
			if userID == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "login required")
				return
			}

			u, err := users.Get(r.Context(), userID)
			if err != nil {
				respondError(w, http.StatusInternalServerError, "internal_error", "failed to load account")
				return
			}
			if !u.Admin {
				respondError(w, http.StatusForbidden, "forbidden", "permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func getSessionID(ctx context.Context) string {
	if sessionID, ok := ctx.Value("session_id").(string); ok {
		return sessionID
	}
	return ""
}

func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value("user_id").(string); ok {
		return userID
	}
	return ""
}
