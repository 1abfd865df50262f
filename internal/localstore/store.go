// Package localstore models the browser-side key/value store the storefront
// keeps its session, cart and order blobs in. The server and the CLI only ever
// see snapshots of it, posted by a client or read from a file.
package localstore

import (
	"encoding/json"
	"sort"
)

// Store is read access to a string key/value store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Keys returns every key currently in the store.
	Keys() ([]string, error)
}

// MutableStore is a Store that can also drop keys.
type MutableStore interface {
	Store
	Remove(key string) error
}

// Snapshot is an in-memory Store. Keys are reported in sorted order so that
// scans over the same snapshot are deterministic.
type Snapshot map[string]string

// Get implements Store.
func (s Snapshot) Get(key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}

// Keys implements Store.
func (s Snapshot) Keys() ([]string, error) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Remove implements MutableStore.
func (s Snapshot) Remove(key string) error {
	delete(s, key)
	return nil
}

// FromJSONObject builds a Snapshot from a decoded JSON object. String values are
// kept verbatim; anything else is re-encoded as JSON text, which is what a
// browser store would hold after JSON.stringify.
func FromJSONObject(obj map[string]any) Snapshot {
	s := make(Snapshot, len(obj))
	for k, v := range obj {
		if enc, ok := encodeValue(v); ok {
			s[k] = enc
		}
	}
	return s
}

// encodeValue renders a decoded JSON value the way the browser store holds it.
// null reads as absent.
func encodeValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case nil:
		return "", false
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
