// Package account implements family-key gated sign-in and sign-up.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukerupert/familytree/internal/identity"
	"github.com/dukerupert/familytree/internal/metrics"
	"github.com/dukerupert/familytree/internal/model"
	"github.com/dukerupert/familytree/internal/store"
)

var ErrInvalidFamilyKey = errors.New("invalid family key")

type KeyVerifier interface {
	Valid(candidate string) bool
}

type Provider interface {
	SignUp(ctx context.Context, email, password string) (*identity.User, error)
	SignIn(ctx context.Context, email, password string) (*identity.User, error)
	UpdateDisplayName(ctx context.Context, idToken, name string) error
}

type ProfileStore interface {
	Create(email, firstName, lastName, externalUserID string) (*model.Profile, error)
}

type SessionStore interface {
	Create(externalUserID, email string) (*model.Session, error)
}

// Notifier is told about newly registered profiles.
type Notifier interface {
	ProfileRegistered(p *model.Profile)
}

type Service struct {
	keys     KeyVerifier
	provider Provider
	profiles ProfileStore
	sessions SessionStore
	notifier Notifier
	logger   *slog.Logger
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func NewService(keys KeyVerifier, provider Provider, profiles ProfileStore, sessions SessionStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		keys:     keys,
		provider: provider,
		profiles: profiles,
		sessions: sessions,
		logger:   logger.With("component", "account"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateKey reports whether candidate is the family key.
func (s *Service) ValidateKey(candidate string) bool {
	return s.keys.Valid(candidate)
}

type SignUpRequest struct {
	Email     string
	FamilyKey string
	FullName  string
}

type Result struct {
	User    *identity.User
	Session *model.Session
	Profile *model.Profile

	// ProfileRegistered is false when the account exists at the provider
	// but the profile record could not be written.
	ProfileRegistered  bool
	ProfileSkipReason  string
	DisplayNameUpdated bool
}

// SignIn verifies the family key and authenticates with the provider using
// the family key as the password.
func (s *Service) SignIn(ctx context.Context, email, familyKey string) (*Result, error) {
	if !s.keys.Valid(familyKey) {
		metrics.AuthAttempts.WithLabelValues("signin", "invalid_key").Inc()
		return nil, ErrInvalidFamilyKey
	}

	user, err := s.provider.SignIn(ctx, email, familyKey)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("signin", "provider_error").Inc()
		return nil, err
	}

	sess, err := s.sessions.Create(user.UID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("signin", "ok").Inc()
	s.logger.Info("signed in", "uid", user.UID)
	return &Result{User: user, Session: sess, ProfileRegistered: true}, nil
}

// SignUp creates the provider account and then registers a profile record.
// A failed profile write does not undo the provider account; it is logged
// and reported in the result.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*Result, error) {
	if !s.keys.Valid(req.FamilyKey) {
		metrics.AuthAttempts.WithLabelValues("signup", "invalid_key").Inc()
		return nil, ErrInvalidFamilyKey
	}

	first, last := SplitName(req.FullName)

	user, err := s.provider.SignUp(ctx, req.Email, req.FamilyKey)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("signup", "provider_error").Inc()
		return nil, err
	}

	res := &Result{User: user}

	displayName := first + " " + last
	if err := s.provider.UpdateDisplayName(ctx, user.IDToken, displayName); err != nil {
		s.logger.Warn("update display name failed", "uid", user.UID, "error", err)
	} else {
		user.DisplayName = displayName
		res.DisplayNameUpdated = true
	}

	profile, err := s.profiles.Create(req.Email, first, last, user.UID)
	switch {
	case errors.Is(err, store.ErrProfileExists):
		res.ProfileSkipReason = "profile already exists"
	case err != nil:
		res.ProfileSkipReason = "profile store unavailable"
	default:
		res.Profile = profile
		res.ProfileRegistered = true
	}
	if err != nil {
		metrics.ProfileRegistrationFailures.Inc()
		s.logger.Error("register profile failed", "uid", user.UID, "error", err)
	} else if s.notifier != nil {
		s.notifier.ProfileRegistered(profile)
	}

	sess, err := s.sessions.Create(user.UID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	res.Session = sess

	metrics.AuthAttempts.WithLabelValues("signup", "ok").Inc()
	s.logger.Info("signed up", "uid", user.UID, "profile_registered", res.ProfileRegistered)
	return res, nil
}

// SplitName splits a full name on the first space after trimming. The
// remainder, if any, is the last name.
func SplitName(full string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(full), " ")
	return first, last
}
