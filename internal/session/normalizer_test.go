package session_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/localstore"
	"github.com/vanixstudio/vanix-bff/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DirectUsername(t *testing.T) {
	u, strategy := session.Parse(`{"username":"alice"}`)

	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.Role)
	assert.Equal(t, session.StrategyDirect, strategy)
}

func TestParse_UsernameFieldPriority(t *testing.T) {
	u := session.ParseRaw(`{"name":"third","display_name":"second","user_name":"first"}`)

	require.NotNil(t, u)
	assert.Equal(t, "first", u.Username)
}

func TestParse_EmailOnly(t *testing.T) {
	u := session.ParseRaw(`{"email":"jdoe@example.com"}`)

	require.NotNil(t, u)
	assert.Equal(t, "jdoe", u.Username)
	assert.Equal(t, "jdoe@example.com", u.Email)
}

func TestParse_MailFallback(t *testing.T) {
	u := session.ParseRaw(`{"mail":" x@y.z "}`)

	require.NotNil(t, u)
	assert.Equal(t, "x", u.Username)
	assert.Equal(t, "x@y.z", u.Email)
}

func TestParse_EmailWithoutLocalPart(t *testing.T) {
	u := session.ParseRaw(`{"email":"@example.com"}`)

	require.NotNil(t, u)
	assert.Equal(t, "@example.com", u.Username)
}

func TestParse_RoleNormalization(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Role
	}{
		{`{"username":"a","role":"ADMIN"}`, domain.RoleAdmin},
		{`{"username":"a","role":" User "}`, domain.RoleUser},
		{`{"username":"a","role":"moderator"}`, ""},
		{`{"username":"a","role":42}`, ""},
	}

	for _, tt := range tests {
		u := session.ParseRaw(tt.raw)
		require.NotNil(t, u, tt.raw)
		assert.Equal(t, tt.want, u.Role, tt.raw)
	}
}

func TestParse_NestedUser(t *testing.T) {
	u, strategy := session.Parse(`{"token":"t","user":{"displayName":"Bob","role":"admin"}}`)

	require.NotNil(t, u)
	assert.Equal(t, "Bob", u.Username)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, session.StrategyUser, strategy)
}

func TestParse_DataUser(t *testing.T) {
	u, strategy := session.Parse(`{"data":{"user":{"fullName":"Carol C"}}}`)

	require.NotNil(t, u)
	assert.Equal(t, "Carol C", u.Username)
	assert.Equal(t, session.StrategyDataUser, strategy)
}

func TestParse_UserMetadata(t *testing.T) {
	raw := `{"access_token":"x","user":{"id":"1","role":"admin","user_metadata":{"full_name":"Dana"}}}`

	u, strategy := session.Parse(raw)

	require.NotNil(t, u)
	assert.Equal(t, "Dana", u.Username)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, session.StrategyMetadata, strategy)
}

func TestParse_UserMetadataRolePrecedence(t *testing.T) {
	raw := `{"user":{"role":"admin","user_metadata":{"name":"Eve","role":"user"}}}`

	u := session.ParseRaw(raw)

	require.NotNil(t, u)
	assert.Equal(t, domain.RoleUser, u.Role)
}

func TestParse_UserMetadataNotReachedWhenUserHasEmail(t *testing.T) {
	// user.email already satisfies the nested-user strategy.
	raw := `{"user":{"email":"frank@example.com","user_metadata":{"username":"Franky"}}}`

	u, strategy := session.Parse(raw)

	require.NotNil(t, u)
	assert.Equal(t, "frank", u.Username)
	assert.Equal(t, session.StrategyUser, strategy)
}

func TestParse_EmptyMetadataFails(t *testing.T) {
	assert.Nil(t, session.ParseRaw(`{"user":{"user_metadata":{}}}`))
}

func TestParse_PlainString(t *testing.T) {
	u, strategy := session.Parse("  plainname  ")

	require.NotNil(t, u)
	assert.Equal(t, domain.SessionUser{Username: "plainname"}, *u)
	assert.Equal(t, session.StrategyPlain, strategy)
}

func TestParse_PlainStringTooLong(t *testing.T) {
	assert.Nil(t, session.ParseRaw(strings.Repeat("a", 200)))
	assert.NotNil(t, session.ParseRaw(strings.Repeat("a", 80)))
}

func TestParse_PlainStringCountsRunes(t *testing.T) {
	assert.NotNil(t, session.ParseRaw(strings.Repeat("😀", 41)))
	assert.NotNil(t, session.ParseRaw(strings.Repeat("é", 80)))
	assert.Nil(t, session.ParseRaw(strings.Repeat("😀", 81)))
}

func TestParse_JSONWithoutIdentity(t *testing.T) {
	assert.Nil(t, session.ParseRaw(`{"cart":[1,2,3]}`))
	assert.Nil(t, session.ParseRaw(`[{"username":"x"}]`))
	assert.Nil(t, session.ParseRaw(`{not json`))
	assert.Nil(t, session.ParseRaw(""))
	assert.Nil(t, session.ParseRaw("   "))
}

func TestSerialize_RoundTrip(t *testing.T) {
	in := domain.SessionUser{Username: "gina", Email: "gina@example.com", Role: domain.RoleAdmin}

	out := session.ParseRaw(session.Serialize(in))

	require.NotNil(t, out)
	assert.Equal(t, in, *out)
}

func TestResolve_CandidateKeyPriority(t *testing.T) {
	store := localstore.Snapshot{
		"loggedUser":    `{"username":"old"}`,
		"vanix_user_v1": `{"username":"new"}`,
	}

	r := session.Resolve(store)

	require.NotNil(t, r.User)
	assert.Equal(t, "new", r.User.Username)
	assert.Equal(t, "vanix_user_v1", r.Key)
}

func TestResolve_SkipsUnusableCandidate(t *testing.T) {
	store := localstore.Snapshot{
		"vanix_user_v1": `{"theme":"dark"}`,
		"user":          `{"email":"h@example.com"}`,
	}

	u := session.ReadCurrentUser(store)

	require.NotNil(t, u)
	assert.Equal(t, "h", u.Username)
}

func TestResolve_AuthTokenFallback(t *testing.T) {
	store := localstore.Snapshot{
		"vanix_cart_v1":             `[]`,
		"sb-abc-auth-token-legacy":  `{"user":{"email":"nope@example.com"}}`,
		"sb-project-auth-token":     `{"access_token":"t","user":{"email":"ivan@example.com","role":"authenticated"}}`,
		"something-sb-x-auth-token": `{"username":"nope"}`,
	}

	r := session.Resolve(store)

	require.NotNil(t, r.User)
	assert.Equal(t, "ivan", r.User.Username)
	assert.Empty(t, r.User.Role)
	assert.Equal(t, "sb-project-auth-token", r.Key)
}

func TestResolve_Empty(t *testing.T) {
	assert.Nil(t, session.ReadCurrentUser(localstore.Snapshot{}))
	assert.Nil(t, session.ReadCurrentUser(nil))
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("unavailable") }
func (failingStore) Keys() ([]string, error)          { return nil, errors.New("unavailable") }

func TestResolve_StoreErrorsReadAsSignedOut(t *testing.T) {
	assert.Nil(t, session.ReadCurrentUser(failingStore{}))
}

func TestClearKnownKeys(t *testing.T) {
	store := localstore.Snapshot{"vanix_user": `{"username":"j"}`, "vanix_cart_v1": "[]"}

	session.ClearKnownKeys(store)

	assert.Nil(t, session.ReadCurrentUser(store))
	assert.Contains(t, store, "vanix_cart_v1")
}

func TestIsAuthTokenKey(t *testing.T) {
	assert.True(t, session.IsAuthTokenKey("sb-xyz-auth-token"))
	assert.False(t, session.IsAuthTokenKey("sb-xyz-auth-token.0"))
	assert.False(t, session.IsAuthTokenKey("xyz-auth-token"))
}
