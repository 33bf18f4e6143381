// Package ctxcache memoizes ranked context lists in a key-value store.
package ctxcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docrag/internal/db"
)

const cacheKeyPrefix = "docrag:ctx:"

// store is the consumer interface for the context cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Ranker produces the context list for a document and question.
type Ranker interface {
	Rank(doc, query string) []string
	Fingerprint() string
}

// Retriever caches the output of a Ranker keyed by a hash of the ranking
// parameters, the cleaned document and the question.
type Retriever struct {
	inner      Ranker
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching retriever.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Ranker,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Retriever {
	return &Retriever{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Retrieve returns the cached context list or ranks doc and caches the result.
// Store failures are logged and never fail the call.
func (r *Retriever) Retrieve(ctx context.Context, doc, question string) []string {
	key := r.cacheKey(doc, question)

	if chunks, ok := r.getFromCache(ctx, key); ok {
		r.incCache("hit")
		return chunks
	}

	r.incCache("miss")

	chunks := r.inner.Rank(doc, question)
	r.putToCache(ctx, key, chunks)
	return chunks
}

func (r *Retriever) incCache(result string) {
	if r.cacheTotal != nil {
		r.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (r *Retriever) cacheKey(doc, question string) string {
	h := sha256.New()
	h.Write([]byte(r.inner.Fingerprint()))
	h.Write([]byte{0})
	h.Write([]byte(doc))
	h.Write([]byte{0})
	h.Write([]byte(question))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (r *Retriever) getFromCache(ctx context.Context, key string) ([]string, bool) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("Failed to get cached context", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var chunks []string
	if err := json.Unmarshal(data, &chunks); err != nil {
		r.logger.Warn("Failed to parse cached context", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if chunks == nil {
		chunks = []string{}
	}
	return chunks, true
}

func (r *Retriever) putToCache(ctx context.Context, key string, chunks []string) {
	data, err := json.Marshal(chunks)
	if err != nil {
		r.logger.Warn("Failed to encode context", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("Failed to cache context", zap.String("key", key), zap.Error(err))
	}
}
