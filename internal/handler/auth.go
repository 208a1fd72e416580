package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/familytree/internal/account"
	"github.com/dukerupert/familytree/internal/auth"
	"github.com/dukerupert/familytree/internal/identity"
	"github.com/dukerupert/familytree/internal/middleware"
	"github.com/dukerupert/familytree/internal/model"
	"github.com/dukerupert/familytree/internal/store"
)

type AuthHandler struct {
	accounts      *account.Service
	profiles      *store.ProfileStore
	sessions      *store.SessionStore
	notifier      account.Notifier
	secureCookies bool
	logger        *slog.Logger
}

func NewAuthHandler(
	accounts *account.Service,
	profiles *store.ProfileStore,
	sessions *store.SessionStore,
	notifier account.Notifier,
	secureCookies bool,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts:      accounts,
		profiles:      profiles,
		sessions:      sessions,
		notifier:      notifier,
		secureCookies: secureCookies,
		logger:        logger.With("component", "auth"),
	}
}

func (h *AuthHandler) ValidateKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FamilyKey string `json:"familyKey"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.accounts.ValidateKey(req.FamilyKey) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"valid": false, "error": "Invalid family key"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

// Register writes a profile record for an account that already exists at the
// identity provider.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email          string `json:"email" validate:"required,email"`
		FirstName      string `json:"firstName" validate:"required,max=100"`
		LastName       string `json:"lastName" validate:"max=100"`
		ExternalUserID string `json:"externalUserId" validate:"required"`
		FamilyKey      string `json:"familyKey"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.accounts.ValidateKey(req.FamilyKey) {
		writeError(w, http.StatusUnauthorized, account.SignUpMessage(account.ErrInvalidFamilyKey))
		return
	}
	if !validRequest(w, &req) {
		return
	}

	profile, err := h.profiles.Create(req.Email, req.FirstName, req.LastName, req.ExternalUserID)
	if errors.Is(err, store.ErrProfileExists) {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		h.logger.Error("register profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if h.notifier != nil {
		h.notifier.ProfileRegistered(profile)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"profile": profile})
}

type authResponse struct {
	User              *identity.User `json:"user"`
	Token             string         `json:"token"`
	ProfileRegistered bool           `json:"profileRegistered"`
	ProfileSkipReason string         `json:"profileSkipReason,omitempty"`

	// DisplayNameUpdated is only reported by sign-up.
	DisplayNameUpdated *bool `json:"displayNameUpdated,omitempty"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email" validate:"required,email"`
		FamilyKey string `json:"familyKey"`
		FullName  string `json:"fullName" validate:"required,max=200"`
	}
	if !decodeJSON(w, r, &req) || !validRequest(w, &req) {
		return
	}

	res, err := h.accounts.SignUp(r.Context(), account.SignUpRequest{
		Email:     req.Email,
		FamilyKey: req.FamilyKey,
		FullName:  req.FullName,
	})
	if err != nil {
		h.writeAuthError(w, err, account.SignUpMessage(err))
		return
	}

	h.setSessionCookie(w, res.Session)
	writeJSON(w, http.StatusCreated, authResponse{
		User:               res.User,
		Token:              res.Session.Token,
		ProfileRegistered:  res.ProfileRegistered,
		ProfileSkipReason:  res.ProfileSkipReason,
		DisplayNameUpdated: &res.DisplayNameUpdated,
	})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email" validate:"required,email"`
		FamilyKey string `json:"familyKey"`
	}
	if !decodeJSON(w, r, &req) || !validRequest(w, &req) {
		return
	}

	res, err := h.accounts.SignIn(r.Context(), req.Email, req.FamilyKey)
	if err != nil {
		h.writeAuthError(w, err, account.SignInMessage(err))
		return
	}

	h.setSessionCookie(w, res.Session)
	writeJSON(w, http.StatusOK, authResponse{
		User:              res.User,
		Token:             res.Session.Token,
		ProfileRegistered: true,
	})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if ac, ok := auth.FromContext(r.Context()); ok {
		if err := h.sessions.DeleteByToken(ac.Token); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// SignOutAll revokes every session of the signed-in member, on all devices.
func (h *AuthHandler) SignOutAll(w http.ResponseWriter, r *http.Request) {
	uid := auth.ExternalUserID(r.Context())
	if err := h.sessions.DeleteByExternalUserID(uid); err != nil {
		h.logger.Error("delete sessions", "uid", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	h.logger.Info("signed out everywhere", "uid", uid)
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// User returns the profile of the signed-in member.
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetByExternalID(auth.ExternalUserID(r.Context()))
	if err != nil {
		h.logger.Error("get profile", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sess *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(store.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}

func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, account.ErrInvalidFamilyKey), errors.Is(err, identity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, identity.ErrEmailExists), errors.Is(err, identity.ErrInvalidEmail),
		errors.Is(err, identity.ErrWeakPassword):
		status = http.StatusBadRequest
	case errors.Is(err, identity.ErrUserDisabled):
		status = http.StatusForbidden
	case errors.Is(err, identity.ErrTooManyAttempts):
		status = http.StatusTooManyRequests
	case errors.Is(err, identity.ErrNetwork):
		status = http.StatusBadGateway
	case errors.Is(err, identity.ErrNotConfigured):
		status = http.StatusServiceUnavailable
		msg = "Sign-in is not available right now."
	}
	if status >= 500 {
		h.logger.Error("auth request failed", "error", err)
	}
	writeError(w, status, msg)
}
