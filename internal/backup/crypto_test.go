package backup

import (
	"bytes"
	"errors"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	salt := []byte("1234567890abcdef")

	key1 := DeriveKey("mypassphrase", salt)
	key2 := DeriveKey("mypassphrase", salt)
	if !bytes.Equal(key1, key2) {
		t.Error("same passphrase+salt should produce same key")
	}
	if len(key1) != keySize {
		t.Errorf("key length = %d, want %d", len(key1), keySize)
	}
	if bytes.Equal(key1, DeriveKey("other", salt)) {
		t.Error("different passphrases should produce different keys")
	}
}

func TestSealOpen(t *testing.T) {
	original := []byte("SQLite format 3\x00 with some family data")

	sealed, err := Seal(original, "correct horse")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealed, original) {
		t.Error("sealed output contains plaintext")
	}

	got, err := Open(sealed, "correct horse")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("open = %q, want %q", got, original)
	}
}

func TestSealUsesFreshSalt(t *testing.T) {
	a, _ := Seal([]byte("data"), "pass")
	b, _ := Seal([]byte("data"), "pass")
	if bytes.Equal(a[:saltSize], b[:saltSize]) {
		t.Error("two seals share a salt")
	}
}

func TestOpenWrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := Open(sealed, "wrong"); err == nil {
		t.Error("expected error with wrong passphrase")
	}
}

func TestOpenTooShort(t *testing.T) {
	if _, err := Open([]byte("short"), "pass"); !errors.Is(err, ErrCiphertextTooShort) {
		t.Errorf("err = %v, want ErrCiphertextTooShort", err)
	}
}
