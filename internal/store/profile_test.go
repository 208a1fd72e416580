package store

import (
	"errors"
	"testing"
)

func TestProfileCreate(t *testing.T) {
	ps := NewProfileStore(setupTestDB(t))

	p, err := ps.Create("mary@example.com", "Mary", "Johnson", "uid-mary")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if p.DisplayName != "Mary Johnson" {
		t.Errorf("display name = %q, want %q", p.DisplayName, "Mary Johnson")
	}
	if p.ExternalUserID != "uid-mary" {
		t.Errorf("external user id = %q, want %q", p.ExternalUserID, "uid-mary")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestProfileCreateSingleName(t *testing.T) {
	ps := NewProfileStore(setupTestDB(t))

	p, err := ps.Create("cher@example.com", "Cher", "", "uid-cher")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if p.DisplayName != "Cher " {
		t.Errorf("display name = %q, want %q", p.DisplayName, "Cher ")
	}
}

func TestProfileCreateDuplicate(t *testing.T) {
	ps := NewProfileStore(setupTestDB(t))

	if _, err := ps.Create("mary@example.com", "Mary", "Johnson", "uid-mary"); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	_, err := ps.Create("other@example.com", "Other", "Person", "uid-mary")
	if !errors.Is(err, ErrProfileExists) {
		t.Fatalf("err = %v, want ErrProfileExists", err)
	}

	profiles, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(profiles) != 1 {
		t.Errorf("profiles = %d, want 1", len(profiles))
	}
}

func TestProfileGetByExternalID(t *testing.T) {
	ps := NewProfileStore(setupTestDB(t))

	created, err := ps.Create("mary@example.com", "Mary", "Johnson", "uid-mary")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	p, err := ps.GetByExternalID("uid-mary")
	if err != nil {
		t.Fatalf("get by external id: %v", err)
	}
	if p == nil {
		t.Fatal("expected profile, got nil")
	}
	if p.ID != created.ID {
		t.Errorf("id = %d, want %d", p.ID, created.ID)
	}
}

func TestProfileGetByExternalIDNotFound(t *testing.T) {
	ps := NewProfileStore(setupTestDB(t))

	p, err := ps.GetByExternalID("nobody")
	if err != nil {
		t.Fatalf("get by external id: %v", err)
	}
	if p != nil {
		t.Error("expected nil for unknown external id")
	}
}
