package familykey

import (
	"errors"
	"testing"
)

func TestPlaintextVerifier(t *testing.T) {
	v, err := New("omoyele-1935", "")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	tests := map[string]bool{
		"omoyele-1935":  true,
		"omoyele-1936":  false,
		"OMOYELE-1935":  false,
		"omoyele-1935 ": false,
		"":              false,
	}
	for candidate, want := range tests {
		if got := v.Valid(candidate); got != want {
			t.Errorf("Valid(%q) = %v, want %v", candidate, got, want)
		}
	}
}

func TestHashVerifier(t *testing.T) {
	hash, err := Hash("omoyele-1935")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	v, err := New("", hash)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	if !v.Valid("omoyele-1935") {
		t.Error("expected correct key to be valid")
	}
	if v.Valid("wrong") {
		t.Error("expected wrong key to be invalid")
	}
	if v.Valid("") {
		t.Error("expected empty key to be invalid")
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("", ""); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
	if _, err := New("a", "b"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("err = %v, want ErrAmbiguous", err)
	}
	if _, err := New("", "not-a-bcrypt-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
}
