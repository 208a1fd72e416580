package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/familytree/internal/auth"
	"github.com/dukerupert/familytree/internal/model"
)

const SessionCookieName = "familytree_session"

type SessionLookup interface {
	GetByToken(token string) (*model.Session, error)
}

// SessionToken returns the session token from the session cookie or an
// Authorization: Bearer header, preferring the cookie.
func SessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAuth validates the session token and populates AuthContext.
// Requests without a live session get a 401 JSON error; a failed lookup is
// logged and answered with a 500.
func RequireAuth(sessions SessionLookup, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			sess, err := sessions.GetByToken(token)
			if err != nil {
				logger.Error("look up session", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if sess == nil {
				unauthorized(w)
				return
			}

			ac := auth.AuthContext{
				ExternalUserID: sess.ExternalUserID,
				Email:          sess.Email,
				SessionID:      sess.ID,
				Token:          sess.Token,
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "Unauthorized")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
