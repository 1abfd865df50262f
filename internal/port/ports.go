// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations (Supabase, Postgres).
package port

import (
	"context"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// AuthProvider issues and verifies access tokens.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*domain.AuthSession, error)
	SignUp(ctx context.Context, email, password, username string) (*domain.AuthSession, error)
	UserFromToken(ctx context.Context, token string) (*domain.AuthIdentity, error)
}

// UserStore persists user profile rows. Lookups that find nothing return
// (nil, nil).
type UserStore interface {
	GetUser(ctx context.Context, id string) (*domain.StoredUser, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.StoredUser, error)
	ListUsers(ctx context.Context) ([]domain.StoredUser, error)
	CountUsers(ctx context.Context) (int, error)
	UpsertUser(ctx context.Context, u *domain.StoredUser) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateProfile(ctx context.Context, id, username, email string) (*domain.StoredUser, error)
	// FindConflictingUser returns a user other than excludeID holding username or email.
	FindConflictingUser(ctx context.Context, excludeID, username, email string) (*domain.StoredUser, error)
}

// CredentialStore keeps password hashes for self-hosted sign in.
type CredentialStore interface {
	GetCredentialsByEmail(ctx context.Context, email string) (*domain.UserCredentials, error)
	CreateCredentials(ctx context.Context, c *domain.UserCredentials) error
}

// OrderStore persists orders.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *domain.Order) error
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	CountOrders(ctx context.Context) (int, error)
	// OrderDates returns the creation times of orders placed at or after since.
	OrderDates(ctx context.Context, since time.Time) ([]time.Time, error)
	// CompletedRevenue sums the totals of completed orders.
	CompletedRevenue(ctx context.Context) (decimal.Decimal, error)
}

// MessageStore persists contact form messages.
type MessageStore interface {
	InsertMessage(ctx context.Context, m *domain.ContactMessage) error
}

// PortfolioStore persists portfolio items.
type PortfolioStore interface {
	ListPortfolio(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, item *domain.PortfolioItem) error
}

// Backend bundles every row port a data backend provides.
type Backend interface {
	UserStore
	OrderStore
	MessageStore
	PortfolioStore
	Ping(ctx context.Context) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
