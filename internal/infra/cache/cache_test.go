package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[domain.Role](5 * time.Minute)
	defer c.Close()

	c.Set("role:u1", domain.RoleAdmin)
	val, ok := c.Get("role:u1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != domain.RoleAdmin {
		t.Errorf("expected 'admin', got '%s'", val)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	_, ok := c.Get("nonexistent")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := cache.New[string](30*time.Second, cache.WithClock(clock.Now))
	defer c.Close()

	c.Set("stats", "snapshot")
	clock.Advance(29 * time.Second)
	if _, ok := c.Get("stats"); !ok {
		t.Fatal("expected entry before TTL")
	}

	clock.Advance(2 * time.Second)
	if _, ok := c.Get("stats"); ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_JanitorEvicts(t *testing.T) {
	c := cache.New[string](20 * time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")
	deadline := time.Now().Add(time.Second)
	for c.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Fatal("expected janitor to evict expired entry")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	c.Set("key1", "value1")
	c.Delete("key1")

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := cache.New[int](time.Minute)
	c.Close()
	c.Close()

	c.Set("n", 1)
	if v, ok := c.Get("n"); !ok || v != 1 {
		t.Fatal("expected cache usable after Close")
	}
}
