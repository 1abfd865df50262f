package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/service"

	"go.uber.org/zap"
)

func TestLocalAuth_SignUpThenSignIn(t *testing.T) {
	creds := &mockCredentialStore{}
	auth := service.NewLocalAuth(creds, "test-secret", 7*24*time.Hour, zap.NewNop())
	ctx := context.Background()

	up, err := auth.SignUp(ctx, "ann@x.io", "secret1", "ann")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if up.UserID == "" || up.AccessToken == "" {
		t.Fatalf("unexpected session: %+v", up)
	}
	if up.ExpiresIn != 7*24*3600 {
		t.Errorf("expected 7 day expiry, got %d", up.ExpiresIn)
	}
	stored := creds.byEmail["ann@x.io"]
	if stored == nil || stored.PasswordHash == "secret1" || stored.Role != domain.RoleUser {
		t.Fatalf("unexpected stored credentials: %+v", stored)
	}

	in, err := auth.SignIn(ctx, "ann@x.io", "secret1")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	id, err := auth.UserFromToken(ctx, in.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.ID != up.UserID || id.Email != "ann@x.io" {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestLocalAuth_WrongPassword(t *testing.T) {
	creds := &mockCredentialStore{}
	auth := service.NewLocalAuth(creds, "test-secret", time.Hour, zap.NewNop())
	ctx := context.Background()

	if _, err := auth.SignUp(ctx, "ann@x.io", "secret1", "ann"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	for _, tc := range []struct{ email, password string }{
		{"ann@x.io", "wrong"},
		{"nobody@x.io", "secret1"},
	} {
		_, err := auth.SignIn(ctx, tc.email, tc.password)
		var u *domain.ErrUnauthorized
		if !errors.As(err, &u) || u.Message != "Invalid credentials" {
			t.Errorf("%s: expected Invalid credentials, got %v", tc.email, err)
		}
	}
}

func TestLocalAuth_ShortPassword(t *testing.T) {
	auth := service.NewLocalAuth(&mockCredentialStore{}, "s", time.Hour, zap.NewNop())

	_, err := auth.SignUp(context.Background(), "a@x.io", "123", "a")
	var v *domain.ErrValidation
	if !errors.As(err, &v) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLocalAuth_DuplicatePassesConflict(t *testing.T) {
	creds := &mockCredentialStore{createErr: &domain.ErrConflict{Message: "User already registered"}}
	auth := service.NewLocalAuth(creds, "s", time.Hour, zap.NewNop())

	_, err := auth.SignUp(context.Background(), "a@x.io", "secret1", "a")
	var c *domain.ErrConflict
	if !errors.As(err, &c) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLocalAuth_RejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	issuer := service.NewLocalAuth(&mockCredentialStore{}, "secret-a", time.Hour, zap.NewNop())
	verifier := service.NewLocalAuth(&mockCredentialStore{}, "secret-b", time.Hour, zap.NewNop())

	sess, err := issuer.SignUp(ctx, "a@x.io", "secret1", "a")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	for _, token := range []string{sess.AccessToken, "not-a-jwt"} {
		_, err := verifier.UserFromToken(ctx, token)
		var u *domain.ErrUnauthorized
		if !errors.As(err, &u) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	}
}

func TestLocalAuth_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	auth := service.NewLocalAuth(&mockCredentialStore{}, "s", -time.Minute, zap.NewNop())

	sess, err := auth.SignUp(ctx, "a@x.io", "secret1", "a")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := auth.UserFromToken(ctx, sess.AccessToken); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
