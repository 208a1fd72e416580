// Package familykey verifies the shared family key that gates sign-up and
// sign-in.
package familykey

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotConfigured = errors.New("family key not configured")
	ErrAmbiguous     = errors.New("family key and family key hash are both set")
)

// Verifier compares candidates against the configured key. It is immutable
// and safe for concurrent use.
type Verifier struct {
	secret []byte
	hash   []byte
}

// New returns a Verifier for either a plaintext secret or a bcrypt hash of
// it. Exactly one must be non-empty.
func New(secret, bcryptHash string) (*Verifier, error) {
	switch {
	case secret != "" && bcryptHash != "":
		return nil, ErrAmbiguous
	case secret != "":
		return &Verifier{secret: []byte(secret)}, nil
	case bcryptHash != "":
		if _, err := bcrypt.Cost([]byte(bcryptHash)); err != nil {
			return nil, err
		}
		return &Verifier{hash: []byte(bcryptHash)}, nil
	default:
		return nil, ErrNotConfigured
	}
}

// Valid reports whether candidate matches the family key. An empty
// candidate never matches.
func (v *Verifier) Valid(candidate string) bool {
	if candidate == "" {
		return false
	}
	if v.hash != nil {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare(v.secret, []byte(candidate)) == 1
}

// Hash returns a bcrypt hash of key suitable for FAMILY_KEY_HASH.
func Hash(key string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
