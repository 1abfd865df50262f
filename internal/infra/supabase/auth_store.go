package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vanixstudio/vanix-bff/internal/domain"
)

// ============================================================
// AuthProvider implementation: GoTrue password grant and token checks
// ============================================================

type gotrueUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int         `json:"expires_in"`
	User        *gotrueUser `json:"user"`

	// Sign-up without auto-confirm answers with the bare user.
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s *gotrueSession) toDomain() *domain.AuthSession {
	out := &domain.AuthSession{AccessToken: s.AccessToken, ExpiresIn: s.ExpiresIn}
	if s.User != nil {
		out.UserID, out.Email = s.User.ID, s.User.Email
	} else {
		out.UserID, out.Email = s.ID, s.Email
	}
	return out
}

func (c *Client) authPost(ctx context.Context, path string, payload any) (*gotrueSession, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		url:    fmt.Sprintf("%s/auth/v1/%s", c.baseURL, path),
		path:   "auth/" + path,
		body:   bytes.NewReader(body),
		bearer: c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var s gotrueSession
	if err := json.Unmarshal(resp.body, &s); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &s, nil
}

// SignIn exchanges email and password for an access token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	ctx, span := tracer.Start(ctx, "Supabase.SignIn")
	defer span.End()

	var session *domain.AuthSession
	err := c.call(ctx, "signin", func() error {
		s, err := c.authPost(ctx, "token?grant_type=password", map[string]string{
			"email":    email,
			"password": password,
		})
		if err != nil {
			if isClientError(err) {
				return &domain.ErrUnauthorized{Message: "Invalid credentials"}
			}
			return err
		}
		session = s.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SignUp creates an auth identity carrying username in its metadata.
func (c *Client) SignUp(ctx context.Context, email, password, username string) (*domain.AuthSession, error) {
	ctx, span := tracer.Start(ctx, "Supabase.SignUp")
	defer span.End()

	var session *domain.AuthSession
	err := c.call(ctx, "signup", func() error {
		s, err := c.authPost(ctx, "signup", map[string]any{
			"email":    email,
			"password": password,
			"data":     map[string]string{"username": username},
		})
		if err != nil {
			var se *statusError
			if errors.As(err, &se) && se.Status < 500 {
				if strings.Contains(strings.ToLower(se.Body), "already") {
					return &domain.ErrConflict{Message: "User already registered"}
				}
				return &domain.ErrValidation{Message: authMessage(se.Body)}
			}
			return err
		}
		session = s.toDomain()
		if session.UserID == "" {
			return fmt.Errorf("signup returned no user id")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// UserFromToken resolves the identity behind an access token.
func (c *Client) UserFromToken(ctx context.Context, token string) (*domain.AuthIdentity, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UserFromToken")
	defer span.End()

	var id *domain.AuthIdentity
	err := c.call(ctx, "user", func() error {
		resp, err := c.do(ctx, request{
			method: http.MethodGet,
			url:    c.baseURL + "/auth/v1/user",
			path:   "auth/user",
			bearer: token,
		})
		if err != nil {
			if isClientError(err) {
				return &domain.ErrUnauthorized{Message: "Invalid token"}
			}
			return err
		}
		var u gotrueUser
		if err := json.Unmarshal(resp.body, &u); err != nil {
			return fmt.Errorf("decode auth user: %w", err)
		}
		if u.ID == "" {
			return &domain.ErrUnauthorized{Message: "Invalid token"}
		}
		id = &domain.AuthIdentity{ID: u.ID, Email: u.Email}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return id, nil
}

func isClientError(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.Status >= 400 && se.Status < 500 && se.Status != http.StatusTooManyRequests
}

// authMessage pulls a readable message out of a GoTrue error body.
func authMessage(body string) string {
	var e struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if json.Unmarshal([]byte(body), &e) == nil {
		for _, m := range []string{e.Msg, e.Message, e.ErrorDescription} {
			if m != "" {
				return m
			}
		}
	}
	return "Invalid payload"
}
