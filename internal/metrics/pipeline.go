package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	AnswerStrategyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docrag",
			Name:      "answer_strategy_total",
			Help:      "Answers produced, by the rule that produced them",
		},
		[]string{"strategy"},
	)

	ContextChunksUsed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docrag",
			Name:      "context_chunks",
			Help:      "Number of chunks in the ranked context list",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		},
	)

	DocumentCharacters = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docrag",
			Name:      "document_characters",
			Help:      "Cleaned document length in characters",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
		},
		[]string{"operation"},
	)

	ContextCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docrag",
			Name:      "context_cache_total",
			Help:      "Context cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers Prometheus pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnswerStrategyTotal)
	prometheus.MustRegister(ContextChunksUsed)
	prometheus.MustRegister(DocumentCharacters)
	prometheus.MustRegister(ContextCacheTotal)
	pipelineMetricsRegistered = true
}

// PipelineRecorder feeds pipeline outcomes into the Prometheus collectors.
type PipelineRecorder struct{}

// Strategy counts an answer produced by the named rule.
func (PipelineRecorder) Strategy(strategy string) {
	AnswerStrategyTotal.WithLabelValues(strategy).Inc()
}

// ContextSize observes the length of a ranked context list.
func (PipelineRecorder) ContextSize(chunks int) {
	ContextChunksUsed.Observe(float64(chunks))
}

// DocumentSize observes a cleaned document length for an operation.
func (PipelineRecorder) DocumentSize(operation string, characters int) {
	DocumentCharacters.WithLabelValues(operation).Observe(float64(characters))
}
