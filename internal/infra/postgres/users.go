package postgres

import (
	"context"
	"strings"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

const userColumns = `id, email, username, role, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.StoredUser, error) {
	var (
		u    domain.StoredUser
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.NormalizeRole(role)
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	return &u, nil
}

func (s *Store) queryUser(ctx context.Context, query string, args ...any) (*domain.StoredUser, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError(err)
	}
	return u, nil
}

// GetUser returns the user with id, or nil.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Postgres.GetUser")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	return s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByEmail returns the user with email, or nil.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Postgres.GetUserByEmail")
	defer span.End()

	return s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

// ListUsers returns every user ordered by email.
func (s *Store) ListUsers(ctx context.Context) ([]domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Postgres.ListUsers")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY email ASC`)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	users := []domain.StoredUser{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dbError(err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return users, nil
}

// CountUsers returns the number of users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Postgres.CountUsers")
	defer span.End()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, dbError(err)
	}
	return n, nil
}

// UpsertUser inserts u or updates email, username and role of the row with its id.
// The password hash of an existing row is kept.
func (s *Store) UpsertUser(ctx context.Context, u *domain.StoredUser) error {
	ctx, span := tracer.Start(ctx, "Postgres.UpsertUser")
	defer span.End()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, role)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET email = EXCLUDED.email, username = EXCLUDED.username, role = EXCLUDED.role`,
		u.ID, u.Email, u.Username, string(u.Role))
	if err != nil {
		return dbError(err)
	}
	return nil
}

// UpdateRole sets the role of user id.
func (s *Store) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	ctx, span := tracer.Start(ctx, "Postgres.UpdateRole")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, string(role), id)
	if err != nil {
		return dbError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &domain.ErrNotFound{Resource: "user", ID: id}
	}
	return nil
}

// UpdateProfile changes username and email of user id and returns the row.
func (s *Store) UpdateProfile(ctx context.Context, id, username, email string) (*domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Postgres.UpdateProfile")
	defer span.End()

	u, err := scanUser(s.db.QueryRowContext(ctx,
		`UPDATE users SET username = $1, email = $2 WHERE id = $3
		 RETURNING `+userColumns,
		username, email, id))
	if err != nil {
		if isNoRows(err) {
			return nil, &domain.ErrNotFound{Resource: "user", ID: id}
		}
		return nil, dbError(err)
	}
	return u, nil
}

// FindConflictingUser returns a user other than excludeID holding username or email.
func (s *Store) FindConflictingUser(ctx context.Context, excludeID, username, email string) (*domain.StoredUser, error) {
	ctx, span := tracer.Start(ctx, "Postgres.FindConflictingUser")
	defer span.End()

	return s.queryUser(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE (lower(email) = lower($1) OR username = $2) AND id <> $3
		 LIMIT 1`,
		email, username, excludeID)
}

// GetCredentialsByEmail returns the user and password hash for email, or nil.
func (s *Store) GetCredentialsByEmail(ctx context.Context, email string) (*domain.UserCredentials, error) {
	ctx, span := tracer.Start(ctx, "Postgres.GetCredentialsByEmail")
	defer span.End()

	var (
		c    domain.UserCredentials
		role string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email)).
		Scan(&c.ID, &c.Email, &c.Username, &role, &c.CreatedAt, &c.PasswordHash)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError(err)
	}
	c.Role = domain.NormalizeRole(role)
	if c.Role == "" {
		c.Role = domain.RoleUser
	}
	return &c, nil
}

// CreateCredentials inserts a new user with a password hash. A duplicate
// email or username yields *domain.ErrConflict.
func (s *Store) CreateCredentials(ctx context.Context, c *domain.UserCredentials) error {
	ctx, span := tracer.Start(ctx, "Postgres.CreateCredentials")
	defer span.End()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, role, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Email, c.Username, string(c.Role), c.PasswordHash, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ErrConflict{Message: "User already registered"}
		}
		return dbError(err)
	}
	return nil
}
