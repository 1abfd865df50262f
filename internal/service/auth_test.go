package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/cache"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/service"

	"go.uber.org/zap"
)

func newAuthService(auth *mockAuthProvider, users *mockUserStore) (*service.AuthService, *cache.InMemory[domain.Role], *observability.Metrics) {
	roles := cache.New[domain.Role](time.Minute)
	metrics := observability.NewMetrics()
	return service.NewAuthService(auth, users, roles, metrics, zap.NewNop()), roles, metrics
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newAuthService(&mockAuthProvider{}, newMockUserStore())

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: " ", Password: "x"})
	var v *domain.ErrValidation
	if !errors.As(err, &v) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	auth := &mockAuthProvider{signInErr: &domain.ErrUnauthorized{Message: "Invalid credentials"}}
	svc, _, _ := newAuthService(auth, newMockUserStore())

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "a@x.io", Password: "nope"})
	var u *domain.ErrUnauthorized
	if !errors.As(err, &u) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_ReturnsStoredProfile(t *testing.T) {
	auth := &mockAuthProvider{session: &domain.AuthSession{UserID: "u-1", Email: "ann@x.io", AccessToken: "tok", ExpiresIn: 3600}}
	users := newMockUserStore(&domain.StoredUser{ID: "u-1", Email: "ann@x.io", Username: "ann", Role: domain.RoleAdmin})
	svc, _, _ := newAuthService(auth, users)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "ann@x.io", Password: "pw"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.OK || resp.AccessToken != "tok" || resp.ExpiresIn != 3600 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.User.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %q", resp.User.Role)
	}
}

func TestLogin_MissingProfileFallsBack(t *testing.T) {
	auth := &mockAuthProvider{session: &domain.AuthSession{UserID: "u-2", Email: "bob@x.io", AccessToken: "tok"}}
	svc, _, _ := newAuthService(auth, newMockUserStore())

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "bob@x.io", Password: "pw"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.User.Username != "bob" || resp.User.Role != domain.RoleUser {
		t.Errorf("unexpected fallback user: %+v", resp.User)
	}
}

func TestRegister_ProfileFailureWarns(t *testing.T) {
	auth := &mockAuthProvider{session: &domain.AuthSession{UserID: "u-3", Email: "c@x.io"}}
	users := newMockUserStore()
	users.upsertErr = errors.New("rls denied")
	svc, _, _ := newAuthService(auth, users)

	resp, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "c@x.io", Password: "secret1", Username: "cee"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.OK || resp.Warning == "" {
		t.Errorf("expected ok with warning, got %+v", resp)
	}
}

func TestRegister_UpsertsUserRole(t *testing.T) {
	auth := &mockAuthProvider{session: &domain.AuthSession{UserID: "u-3", Email: "c@x.io"}}
	users := newMockUserStore()
	svc, _, _ := newAuthService(auth, users)

	resp, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "c@x.io", Password: "secret1", Username: " cee "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Warning != "" {
		t.Errorf("unexpected warning %q", resp.Warning)
	}
	if len(users.upserted) != 1 || users.upserted[0].Username != "cee" || users.upserted[0].Role != domain.RoleUser {
		t.Errorf("unexpected upsert: %+v", users.upserted)
	}
}

func TestRegister_MissingUsername(t *testing.T) {
	svc, _, _ := newAuthService(&mockAuthProvider{}, newMockUserStore())

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{Email: "c@x.io", Password: "secret1"})
	var v *domain.ErrValidation
	if !errors.As(err, &v) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMe(t *testing.T) {
	auth := &mockAuthProvider{identities: map[string]*domain.AuthIdentity{"good": {ID: "u-1", Email: "ann@x.io"}}}
	users := newMockUserStore(&domain.StoredUser{ID: "u-1", Email: "ann@x.io", Username: "ann", Role: domain.RoleUser})
	svc, _, _ := newAuthService(auth, users)

	for _, token := range []string{"", "bad"} {
		resp, err := svc.Me(context.Background(), token)
		if err != nil || resp.User != nil {
			t.Errorf("token %q: expected null user, got %+v, %v", token, resp, err)
		}
	}

	resp, err := svc.Me(context.Background(), "good")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.User == nil || resp.User.Username != "ann" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
}

func TestUpdateProfile_Conflict(t *testing.T) {
	users := newMockUserStore(&domain.StoredUser{ID: "u-1"})
	users.conflict = &domain.StoredUser{ID: "u-9"}
	svc, _, _ := newAuthService(&mockAuthProvider{}, users)

	_, err := svc.UpdateProfile(context.Background(), "u-1", &domain.UpdateProfileRequest{Username: "ann", Email: "a@x.io"})
	var v *domain.ErrValidation
	if !errors.As(err, &v) || err.Error() != "Email or username already taken" {
		t.Fatalf("expected taken error, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	users := newMockUserStore(&domain.StoredUser{ID: "u-1", Username: "old"})
	svc, _, _ := newAuthService(&mockAuthProvider{}, users)

	resp, err := svc.UpdateProfile(context.Background(), "u-1", &domain.UpdateProfileRequest{Username: "new", Email: "n@x.io"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.User.Username != "new" || resp.User.Email != "n@x.io" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
}

func TestRequireAdmin(t *testing.T) {
	auth := &mockAuthProvider{identities: map[string]*domain.AuthIdentity{
		"admin": {ID: "u-a"},
		"user":  {ID: "u-u"},
		"ghost": {ID: "u-g"},
	}}
	users := newMockUserStore(
		&domain.StoredUser{ID: "u-a", Role: domain.RoleAdmin},
		&domain.StoredUser{ID: "u-u", Role: domain.RoleUser},
	)
	svc, _, _ := newAuthService(auth, users)
	ctx := context.Background()

	if _, err := svc.RequireAdmin(ctx, "admin"); err != nil {
		t.Errorf("admin: expected no error, got %v", err)
	}

	cases := []struct {
		token string
		want  string
	}{
		{"", "Missing token"},
		{"nope", "Invalid token"},
		{"user", "Forbidden"},
		{"ghost", "Forbidden"},
	}
	for _, tc := range cases {
		_, err := svc.RequireAdmin(ctx, tc.token)
		if err == nil || err.Error() != tc.want {
			t.Errorf("token %q: expected %q, got %v", tc.token, tc.want, err)
		}
	}
}

func TestRequireAdmin_CachesRole(t *testing.T) {
	auth := &mockAuthProvider{identities: map[string]*domain.AuthIdentity{"admin": {ID: "u-a"}}}
	users := newMockUserStore(&domain.StoredUser{ID: "u-a", Role: domain.RoleAdmin})
	svc, _, metrics := newAuthService(auth, users)

	for i := 0; i < 3; i++ {
		if _, err := svc.RequireAdmin(context.Background(), "admin"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if users.getCalls != 1 {
		t.Errorf("expected 1 store lookup, got %d", users.getCalls)
	}
	if rate := metrics.Snapshot().CacheHitRate; rate <= 0 {
		t.Errorf("expected a positive hit rate, got %v", rate)
	}
}

func TestRequireAdmin_BackendError(t *testing.T) {
	auth := &mockAuthProvider{identities: map[string]*domain.AuthIdentity{"admin": {ID: "u-a"}}}
	users := newMockUserStore()
	users.getErr = &domain.ErrExternalService{Service: "supabase", Err: errors.New("down")}
	svc, _, _ := newAuthService(auth, users)

	_, err := svc.RequireAdmin(context.Background(), "admin")
	var ext *domain.ErrExternalService
	if !errors.As(err, &ext) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
}
