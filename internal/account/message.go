package account

import (
	"errors"

	"github.com/dukerupert/familytree/internal/identity"
)

// SignUpMessage returns the user-facing message for a sign-up failure.
func SignUpMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFamilyKey):
		return "Invalid family key. Please contact a family member for the correct key."
	case errors.Is(err, identity.ErrEmailExists):
		return "This email is already registered. Please sign in instead."
	case errors.Is(err, identity.ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, identity.ErrNetwork):
		return "Network error. Please check your internet connection."
	case errors.Is(err, identity.ErrTooManyAttempts):
		return "Too many attempts. Please try again later."
	case errors.Is(err, identity.ErrWeakPassword):
		return "The family key is too short to be used as a password."
	}
	return "Failed to create account. Please try again."
}

// SignInMessage returns the user-facing message for a sign-in failure.
func SignInMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFamilyKey):
		return "Invalid family key. Please check and try again."
	case errors.Is(err, identity.ErrInvalidCredentials):
		return "Invalid email or family key. Please try again."
	case errors.Is(err, identity.ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, identity.ErrUserDisabled):
		return "This account has been disabled. Please contact a family admin."
	case errors.Is(err, identity.ErrNetwork):
		return "Network error. Please check your internet connection."
	case errors.Is(err, identity.ErrTooManyAttempts):
		return "Too many failed attempts. Please try again later."
	}
	return "Failed to sign in. Please try again."
}
