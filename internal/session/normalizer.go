// Package session finds the signed-in user in a snapshot of client storage.
//
// The record may have been written by any of several generations of the
// storefront's auth layer, so nothing about its shape is assumed. Lookups are
// best effort: a store error, a malformed blob or an unknown shape all read as
// "not signed in".
package session

import (
	"strings"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/localstore"
)

// CandidateKeys are the well-known session keys, most recent scheme first.
var CandidateKeys = []string{"vanix_user_v1", "vanix_user", "user", "currentUser", "loggedUser"}

const (
	authTokenPrefix = "sb-"
	authTokenSuffix = "-auth-token"
)

// Result is the outcome of a lookup.
type Result struct {
	User     *domain.SessionUser
	Key      string
	Strategy Strategy
}

// Resolve scans store for a session record. Candidate keys are tried first,
// then every key named like a hosted-auth token.
func Resolve(store localstore.Store) Result {
	if store == nil {
		return Result{}
	}

	for _, k := range CandidateKeys {
		if r, ok := tryKey(store, k); ok {
			return r
		}
	}

	keys, err := store.Keys()
	if err != nil {
		return Result{}
	}
	for _, k := range keys {
		if !IsAuthTokenKey(k) {
			continue
		}
		if r, ok := tryKey(store, k); ok {
			return r
		}
	}
	return Result{}
}

// ReadCurrentUser returns the signed-in user or nil.
func ReadCurrentUser(store localstore.Store) *domain.SessionUser {
	return Resolve(store).User
}

// IsAuthTokenKey reports whether key follows the hosted-auth token naming.
func IsAuthTokenKey(key string) bool {
	return strings.HasPrefix(key, authTokenPrefix) && strings.HasSuffix(key, authTokenSuffix)
}

// ClearKnownKeys removes every candidate key from store. Errors are ignored.
func ClearKnownKeys(store localstore.MutableStore) {
	for _, k := range CandidateKeys {
		_ = store.Remove(k)
	}
}

func tryKey(store localstore.Store, key string) (Result, bool) {
	raw, ok, err := store.Get(key)
	if err != nil || !ok {
		return Result{}, false
	}
	u, strategy := Parse(raw)
	if u == nil {
		return Result{}, false
	}
	return Result{User: u, Key: key, Strategy: strategy}, true
}
