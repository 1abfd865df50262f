package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost  = 12
	tokenIssuer = "vanix-bff"
)

// LocalAuth is the self-hosted AuthProvider: bcrypt password hashes kept in
// the users table and HS256 access tokens.
type LocalAuth struct {
	creds  port.CredentialStore
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
	logger *zap.Logger
}

// NewLocalAuth creates a LocalAuth signing tokens with secret that live for ttl.
func NewLocalAuth(creds port.CredentialStore, secret string, ttl time.Duration, logger *zap.Logger) *LocalAuth {
	return &LocalAuth{
		creds:  creds,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcryptCost,
		now:    time.Now,
		logger: logger,
	}
}

// accessClaims are the claims carried by access tokens.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SignIn checks the password against the stored hash.
func (a *LocalAuth) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	ctx, span := authTracer.Start(ctx, "LocalAuth.SignIn")
	defer span.End()

	c, err := a.creds.GetCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	if c == nil || c.PasswordHash == "" {
		return nil, &domain.ErrUnauthorized{Message: "Invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		a.logger.Warn("local auth: failed password attempt", zap.String("user_id", c.ID))
		return nil, &domain.ErrUnauthorized{Message: "Invalid credentials"}
	}

	return a.session(c.ID, c.Email)
}

// SignUp hashes password and creates the user row.
func (a *LocalAuth) SignUp(ctx context.Context, email, password, username string) (*domain.AuthSession, error) {
	ctx, span := authTracer.Start(ctx, "LocalAuth.SignUp")
	defer span.End()

	if len(password) < 6 {
		return nil, &domain.ErrValidation{Message: "Password should be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	c := &domain.UserCredentials{
		StoredUser: domain.StoredUser{
			ID:        uuid.NewString(),
			Email:     strings.TrimSpace(email),
			Username:  username,
			Role:      domain.RoleUser,
			CreatedAt: a.now().UTC(),
		},
		PasswordHash: string(hash),
	}
	if err := a.creds.CreateCredentials(ctx, c); err != nil {
		return nil, err
	}

	a.logger.Info("local auth: user created", zap.String("user_id", c.ID))
	return a.session(c.ID, c.Email)
}

// UserFromToken verifies an access token issued by this provider.
func (a *LocalAuth) UserFromToken(_ context.Context, token string) (*domain.AuthIdentity, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "Invalid token"}
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, &domain.ErrUnauthorized{Message: "Invalid token"}
	}
	return &domain.AuthIdentity{ID: claims.Subject, Email: claims.Email}, nil
}

func (a *LocalAuth) session(userID, email string) (*domain.AuthSession, error) {
	now := a.now()
	claims := accessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			Issuer:    tokenIssuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &domain.AuthSession{
		UserID:      userID,
		Email:       email,
		AccessToken: signed,
		ExpiresIn:   int(a.ttl.Seconds()),
	}, nil
}
