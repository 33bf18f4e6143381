package ctxcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docrag/internal/db"
)

type mockRanker struct {
	result []string
	calls  int
}

func (m *mockRanker) Rank(_, _ string) []string {
	m.calls++
	return m.result
}

func (m *mockRanker) Fingerprint() string { return "k=3" }

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestRetriever(t *testing.T, inner *mockRanker) (*Retriever, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	r := New(inner, ms, time.Minute, nil, zap.NewNop())
	return r, ms
}
