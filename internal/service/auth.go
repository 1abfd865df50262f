// Package service holds the storefront use cases. AuthService handles sign
// in, registration, the current user lookup, profile updates and the admin gate.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/observability"
	"github.com/vanixstudio/vanix-bff/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var authTracer = otel.Tracer("service/auth")

// profileWarning is returned when the identity exists but its profile row
// could not be written.
const profileWarning = "Account created but the profile could not be saved"

// AuthService orchestrates authentication flows.
type AuthService struct {
	auth    port.AuthProvider
	users   port.UserStore
	roles   port.Cache[domain.Role]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAuthService creates a new auth service. roles caches admin role lookups
// and is shared with AdminService so role changes invalidate it.
func NewAuthService(auth port.AuthProvider, users port.UserStore, roles port.Cache[domain.Role], metrics *observability.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{
		auth:    auth,
		users:   users,
		roles:   roles,
		metrics: metrics,
		logger:  logger,
	}
}

// ============================================================
// Login: POST /v1/auth/login
// ============================================================

func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, &domain.ErrValidation{Message: "Email and password are required"}
	}

	sess, err := s.auth.SignIn(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", sess.UserID))

	user, err := s.users.GetUser(ctx, sess.UserID)
	if err != nil {
		s.logger.Warn("login: profile lookup failed", zap.String("user_id", sess.UserID), zap.Error(err))
		user = nil
	}
	if user == nil {
		user = fallbackUser(sess.UserID, sess.Email)
	}

	s.logger.Info("user logged in", zap.String("user_id", sess.UserID))

	return &domain.LoginResponse{
		OK:          true,
		UserID:      sess.UserID,
		AccessToken: sess.AccessToken,
		ExpiresIn:   sess.ExpiresIn,
		User:        user,
	}, nil
}

// ============================================================
// Register: POST /v1/auth/register
// ============================================================

func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	if email == "" || req.Password == "" || username == "" {
		return nil, &domain.ErrValidation{Message: "Email, password and username are required"}
	}

	sess, err := s.auth.SignUp(ctx, email, req.Password, username)
	if err != nil {
		return nil, err
	}

	resp := &domain.RegisterResponse{OK: true, UserID: sess.UserID}

	profile := &domain.StoredUser{ID: sess.UserID, Email: email, Username: username, Role: domain.RoleUser}
	if err := s.users.UpsertUser(ctx, profile); err != nil {
		s.logger.Warn("register: profile upsert failed",
			zap.String("user_id", sess.UserID),
			zap.Error(err),
		)
		resp.Warning = profileWarning
	}

	s.logger.Info("user registered", zap.String("user_id", sess.UserID))
	return resp, nil
}

// ============================================================
// Me: GET /v1/auth/me
// ============================================================

// Me returns the signed-in user. A missing or rejected token yields a nil
// user rather than an error.
func (s *AuthService) Me(ctx context.Context, token string) (*domain.MeResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Me")
	defer span.End()

	if token == "" {
		return &domain.MeResponse{}, nil
	}

	id, err := s.auth.UserFromToken(ctx, token)
	if err != nil {
		var unauthorized *domain.ErrUnauthorized
		if errors.As(err, &unauthorized) {
			return &domain.MeResponse{}, nil
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}

	user, err := s.users.GetUser(ctx, id.ID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		user = fallbackUser(id.ID, id.Email)
	}
	return &domain.MeResponse{User: user}, nil
}

// Authenticate resolves token to an identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.AuthIdentity, error) {
	if token == "" {
		return nil, &domain.ErrUnauthorized{Message: "Missing token"}
	}
	id, err := s.auth.UserFromToken(ctx, token)
	if err != nil {
		var unauthorized *domain.ErrUnauthorized
		if errors.As(err, &unauthorized) {
			return nil, &domain.ErrUnauthorized{Message: "Invalid token"}
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}
	return id, nil
}

// ============================================================
// UpdateProfile: PUT /v1/auth/profile
// ============================================================

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.UpdateProfileResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.UpdateProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" {
		return nil, &domain.ErrValidation{Message: "Username and email are required"}
	}

	conflict, err := s.users.FindConflictingUser(ctx, userID, username, email)
	if err != nil {
		return nil, fmt.Errorf("check conflicts: %w", err)
	}
	if conflict != nil {
		return nil, &domain.ErrValidation{Message: "Email or username already taken"}
	}

	user, err := s.users.UpdateProfile(ctx, userID, username, email)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.String("user_id", userID))
	return &domain.UpdateProfileResponse{OK: true, User: user}, nil
}

// ============================================================
// RequireAdmin: admin gate used by the /v1/admin routes
// ============================================================

// RequireAdmin accepts token only when it belongs to a user whose stored
// role is admin.
func (s *AuthService) RequireAdmin(ctx context.Context, token string) (*domain.AuthIdentity, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.RequireAdmin")
	defer span.End()

	id, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	role, err := s.role(ctx, id.ID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin {
		s.logger.Warn("admin gate: forbidden", zap.String("user_id", id.ID))
		return nil, &domain.ErrForbidden{}
	}
	return id, nil
}

// role returns the stored role of userID, or "" when there is no row.
func (s *AuthService) role(ctx context.Context, userID string) (domain.Role, error) {
	key := roleCacheKey(userID)
	if role, ok := s.roles.Get(key); ok {
		s.metrics.IncrCacheHit("role")
		return role, nil
	}
	s.metrics.IncrCacheMiss("role")

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user role: %w", err)
	}
	var role domain.Role
	if user != nil {
		role = user.Role
	}
	s.roles.Set(key, role)
	return role, nil
}

func roleCacheKey(userID string) string {
	return "role:" + userID
}

// fallbackUser stands in for a missing profile row.
func fallbackUser(id, email string) *domain.StoredUser {
	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}
	return &domain.StoredUser{ID: id, Email: email, Username: username, Role: domain.RoleUser}
}
