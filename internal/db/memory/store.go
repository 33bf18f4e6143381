// Package memory provides an in-process, size-bounded LRU implementation of db.Store.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/docrag/internal/db"
)

// DefaultMaxEntries bounds the store when no size is given.
const DefaultMaxEntries = 1024

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Store is a least-recently-used key-value store with optional per-key TTL.
// It is safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	maxEntries int
	order      *list.List // front = most recently used
	items      map[string]*list.Element
	now        func() time.Time
}

// NewStore creates a store holding at most maxEntries keys.
func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// WaitForReady returns immediately.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Close drops every entry.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.Init()
	s.items = make(map[string]*list.Element)
}

// Len returns the number of stored keys, expired ones included until touched.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Get returns a copy of the value at key and marks it as recently used.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	e := el.Value.(*entry)
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.remove(el)
		return nil, db.ErrKeyNotFound
	}

	s.order.MoveToFront(el)
	return append([]byte(nil), e.value...), nil
}

// Set stores value at key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores value at key. A non-positive ttl means no expiry.
// The least recently used key is evicted when the store is full.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	value = append([]byte(nil), value...)

	if el, ok := s.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.expiresAt = expiresAt
		s.order.MoveToFront(el)
		return nil
	}

	s.items[key] = s.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	for s.order.Len() > s.maxEntries {
		s.remove(s.order.Back())
	}
	return nil
}

func (s *Store) remove(el *list.Element) {
	s.order.Remove(el)
	delete(s.items, el.Value.(*entry).key)
}
