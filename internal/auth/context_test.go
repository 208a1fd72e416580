package auth

import (
	"context"
	"testing"
)

func TestWithAuthAndFromContext(t *testing.T) {
	ac := AuthContext{
		ExternalUserID: "uid-mary",
		Email:          "mary@example.com",
		SessionID:      3,
		Token:          "tok",
	}

	ctx := WithAuth(context.Background(), ac)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected AuthContext in context")
	}
	if got != ac {
		t.Errorf("got %+v, want %+v", got, ac)
	}
	if id := ExternalUserID(ctx); id != "uid-mary" {
		t.Errorf("ExternalUserID = %q, want %q", id, "uid-mary")
	}
}

func TestFromContextEmpty(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("expected no AuthContext")
	}
	if id := ExternalUserID(context.Background()); id != "" {
		t.Errorf("ExternalUserID = %q, want empty", id)
	}
}
