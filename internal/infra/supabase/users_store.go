package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// UserStore implementation: the users table
// ============================================================

type userRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func (r userRow) toDomain() domain.StoredUser {
	role := domain.NormalizeRole(r.Role)
	if role == "" {
		role = domain.RoleUser
	}
	return domain.StoredUser{
		ID:        r.ID,
		Email:     r.Email,
		Username:  r.Username,
		Role:      role,
		CreatedAt: r.CreatedAt,
	}
}

const userColumns = "select=id,email,username,role,created_at"

func (c *Client) queryUsers(ctx context.Context, op, path string) ([]domain.StoredUser, error) {
	var users []domain.StoredUser
	err := c.call(ctx, op, func() error {
		body, err := c.doRequest(ctx, http.MethodGet, path)
		if err != nil {
			return err
		}
		users = []domain.StoredUser{}
		if isEmpty(body) {
			return nil
		}
		var rows []userRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode users: %w", err)
		}
		for _, r := range rows {
			users = append(users, r.toDomain())
		}
		return nil
	})
	return users, err
}

func (c *Client) singleUser(ctx context.Context, op, path string) (*domain.StoredUser, error) {
	users, err := c.queryUsers(ctx, op, path)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return &users[0], nil
}

// GetUser returns the user with id, or nil.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	return c.singleUser(ctx, "users", fmt.Sprintf("users?%s&%s&limit=1", userColumns, eq("id", id)))
}

// GetUserByEmail returns the user with email, or nil.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetUserByEmail")
	defer span.End()

	return c.singleUser(ctx, "users", fmt.Sprintf("users?%s&%s&limit=1", userColumns, eq("email", email)))
}

// ListUsers returns every user ordered by email.
func (c *Client) ListUsers(ctx context.Context) ([]domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListUsers")
	defer span.End()

	return c.queryUsers(ctx, "users", "users?"+userColumns+"&order=email.asc")
}

// CountUsers returns the number of user rows.
func (c *Client) CountUsers(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountUsers")
	defer span.End()

	var n int
	err := c.call(ctx, "users", func() error {
		var err error
		n, err = c.doCount(ctx, "users", "")
		return err
	})
	return n, err
}

// UpsertUser inserts u or merges it into the existing row with the same id.
func (c *Client) UpsertUser(ctx context.Context, u *domain.StoredUser) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpsertUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", u.ID))

	row := map[string]any{
		"id":       u.ID,
		"email":    u.Email,
		"username": u.Username,
		"role":     string(u.Role),
	}
	return c.call(ctx, "users", func() error {
		return c.doUpsert(ctx, "users?on_conflict=id", row)
	})
}

// UpdateRole sets the role of user id.
func (c *Client) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateRole")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id), attribute.String("user.role", string(role)))

	return c.call(ctx, "users", func() error {
		body, err := c.doPatch(ctx, "users?"+eq("id", id), map[string]any{"role": string(role)})
		if err != nil {
			return err
		}
		if isEmpty(body) {
			return &domain.ErrNotFound{Resource: "user", ID: id}
		}
		return nil
	})
}

// UpdateProfile changes username and email of user id and returns the row.
func (c *Client) UpdateProfile(ctx context.Context, id, username, email string) (*domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateProfile")
	defer span.End()

	var user *domain.StoredUser
	err := c.call(ctx, "users", func() error {
		body, err := c.doPatch(ctx, "users?"+eq("id", id), map[string]any{
			"username": username,
			"email":    email,
		})
		if err != nil {
			return err
		}
		var rows []userRow
		if !isEmpty(body) {
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("decode users: %w", err)
			}
		}
		if len(rows) == 0 {
			return &domain.ErrNotFound{Resource: "user", ID: id}
		}
		u := rows[0].toDomain()
		user = &u
		return nil
	})
	return user, err
}

// FindConflictingUser looks for another user already holding username or email.
func (c *Client) FindConflictingUser(ctx context.Context, excludeID, username, email string) (*domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Supabase.FindConflictingUser")
	defer span.End()

	or := fmt.Sprintf("(email.eq.%s,username.eq.%s)", quoteValue(email), quoteValue(username))
	path := fmt.Sprintf("users?%s&or=%s&id=neq.%s&limit=1", userColumns, url.QueryEscape(or), url.QueryEscape(excludeID))
	return c.singleUser(ctx, "users", path)
}

// quoteValue wraps a value for use inside a PostgREST logic tree.
func quoteValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
