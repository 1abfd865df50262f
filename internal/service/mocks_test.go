package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"github.com/shopspring/decimal"
)

// --- Mocks ---

type mockAuthProvider struct {
	session    *domain.AuthSession
	signInErr  error
	signUpErr  error
	identities map[string]*domain.AuthIdentity
	tokenErr   error
}

func (m *mockAuthProvider) SignIn(_ context.Context, _, _ string) (*domain.AuthSession, error) {
	return m.session, m.signInErr
}

func (m *mockAuthProvider) SignUp(_ context.Context, _, _, _ string) (*domain.AuthSession, error) {
	return m.session, m.signUpErr
}

func (m *mockAuthProvider) UserFromToken(_ context.Context, token string) (*domain.AuthIdentity, error) {
	if m.tokenErr != nil {
		return nil, m.tokenErr
	}
	if id, ok := m.identities[token]; ok {
		return id, nil
	}
	return nil, &domain.ErrUnauthorized{Message: "bad token"}
}

type mockUserStore struct {
	mu        sync.Mutex
	users     map[string]*domain.StoredUser
	conflict  *domain.StoredUser
	getCalls  int
	getErr    error
	countErr  error
	upsertErr error
	upserted  []*domain.StoredUser
	roleSets  map[string]domain.Role
}

func newMockUserStore(users ...*domain.StoredUser) *mockUserStore {
	m := &mockUserStore{users: map[string]*domain.StoredUser{}, roleSets: map[string]domain.Role{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) GetUser(_ context.Context, id string) (*domain.StoredUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[id], nil
}

func (m *mockUserStore) GetUserByEmail(_ context.Context, email string) (*domain.StoredUser, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) ListUsers(_ context.Context) ([]domain.StoredUser, error) {
	var out []domain.StoredUser
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserStore) CountUsers(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.users), nil
}

func (m *mockUserStore) UpsertUser(_ context.Context, u *domain.StoredUser) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, u)
	return nil
}

func (m *mockUserStore) UpdateRole(_ context.Context, id string, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return &domain.ErrNotFound{Resource: "user", ID: id}
	}
	u.Role = role
	m.roleSets[id] = role
	return nil
}

func (m *mockUserStore) UpdateProfile(_ context.Context, id, username, email string) (*domain.StoredUser, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "user", ID: id}
	}
	u.Username, u.Email = username, email
	return u, nil
}

func (m *mockUserStore) FindConflictingUser(_ context.Context, _, _, _ string) (*domain.StoredUser, error) {
	return m.conflict, nil
}

type mockOrderStore struct {
	mu         sync.Mutex
	orders     []domain.Order
	dates      []time.Time
	since      time.Time
	revenue    decimal.Decimal
	createErr  error
	countErr   error
	revenueErr error
	recentErr  error
}

func (m *mockOrderStore) CreateOrder(_ context.Context, o *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockOrderStore) ListOrders(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderStore) ListRecentOrders(_ context.Context, limit int) ([]domain.Order, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	if len(m.orders) > limit {
		return m.orders[:limit], nil
	}
	return m.orders, nil
}

func (m *mockOrderStore) CountOrders(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.orders), nil
}

func (m *mockOrderStore) OrderDates(_ context.Context, since time.Time) ([]time.Time, error) {
	m.since = since
	return m.dates, nil
}

func (m *mockOrderStore) CompletedRevenue(_ context.Context) (decimal.Decimal, error) {
	return m.revenue, m.revenueErr
}

type mockMessageStore struct {
	messages []*domain.ContactMessage
	err      error
}

func (m *mockMessageStore) InsertMessage(_ context.Context, msg *domain.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

type mockPortfolioStore struct {
	items  []domain.PortfolioItem
	filter domain.PortfolioFilter
}

func (m *mockPortfolioStore) ListPortfolio(_ context.Context, f domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	m.filter = f
	return m.items, nil
}

func (m *mockPortfolioStore) CreatePortfolioItem(_ context.Context, item *domain.PortfolioItem) error {
	m.items = append(m.items, *item)
	return nil
}

type mockCredentialStore struct {
	byEmail   map[string]*domain.UserCredentials
	createErr error
}

func (m *mockCredentialStore) GetCredentialsByEmail(_ context.Context, email string) (*domain.UserCredentials, error) {
	return m.byEmail[email], nil
}

func (m *mockCredentialStore) CreateCredentials(_ context.Context, c *domain.UserCredentials) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.byEmail == nil {
		m.byEmail = map[string]*domain.UserCredentials{}
	}
	m.byEmail[c.Email] = c
	return nil
}
