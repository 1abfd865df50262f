package session

import (
	"context"
	"sync"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
)

// DefaultPollInterval matches the refresh cadence of the shop page.
const DefaultPollInterval = 1200 * time.Millisecond

// Watcher re-reads the current user on a fixed interval and whenever Notify
// is called, and tells subscribers when the result changes.
type Watcher struct {
	read     func() *domain.SessionUser
	interval time.Duration
	notify   chan struct{}

	mu     sync.Mutex
	subs   map[int]func(*domain.SessionUser)
	nextID int
	last   *domain.SessionUser
	seen   bool
}

// NewWatcher creates a watcher around read. A non-positive interval falls back
// to DefaultPollInterval.
func NewWatcher(read func() *domain.SessionUser, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		read:     read,
		interval: interval,
		notify:   make(chan struct{}, 1),
		subs:     make(map[int]func(*domain.SessionUser)),
	}
}

// Subscribe registers fn and returns a function that removes it.
func (w *Watcher) Subscribe(fn func(*domain.SessionUser)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Notify requests an immediate re-read. Calls made while one is already
// pending are coalesced.
func (w *Watcher) Notify() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Run reads once, then keeps reading until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sync()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sync()
		case <-w.notify:
			w.sync()
		}
	}
}

// Current returns the last value read.
func (w *Watcher) Current() *domain.SessionUser {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func (w *Watcher) sync() {
	u := w.read()

	w.mu.Lock()
	if w.seen && sameUser(w.last, u) {
		w.mu.Unlock()
		return
	}
	w.last = u
	w.seen = true
	subs := make([]func(*domain.SessionUser), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

func sameUser(a, b *domain.SessionUser) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
