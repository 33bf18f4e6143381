package rag

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docrag/internal/domain"
	"github.com/kailas-cloud/docrag/internal/domain/analysis"
	"github.com/kailas-cloud/docrag/internal/domain/answer"
	"github.com/kailas-cloud/docrag/internal/domain/summary"
	"github.com/kailas-cloud/docrag/internal/domain/text"
	"github.com/kailas-cloud/docrag/internal/logger"
)

// DefaultContextUsed is how many context chunks a query result exposes.
const DefaultContextUsed = 2

// QueryResult is the outcome of answering a question about a document.
type QueryResult struct {
	Answer   string
	Strategy answer.Strategy
	// Context is the full ranked context list the answer was built from.
	Context []string
	// ContextUsed is the prefix of Context reported to clients.
	ContextUsed []string
	Timestamp   time.Time
}

// Statistics describes a summarized document.
type Statistics struct {
	WordCount      int
	CharacterCount int
	// OriginalLength is measured on the raw content, before cleaning.
	OriginalLength int
}

// SummaryResult is the outcome of summarizing a document.
type SummaryResult struct {
	Summary    string
	Statistics Statistics
	Timestamp  time.Time
}

// AnalysisResult is the outcome of analyzing a document.
type AnalysisResult struct {
	analysis.Report
	Timestamp time.Time
}

// Service answers, summarizes and analyzes documents. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	retriever   ContextRetriever
	recorder    Recorder
	contextUsed int
	now         func() time.Time
}

// New creates a RAG service.
func New(retriever ContextRetriever) *Service {
	return &Service{
		retriever:   retriever,
		contextUsed: DefaultContextUsed,
		now:         time.Now,
	}
}

// WithRecorder attaches a pipeline observer.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// WithContextUsed sets how many context chunks a query result exposes.
func (s *Service) WithContextUsed(n int) *Service {
	if n > 0 {
		s.contextUsed = n
	}
	return s
}

// WithClock replaces the timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Query answers question from content. Both must be non-empty.
func (s *Service) Query(ctx context.Context, content, question string) (QueryResult, error) {
	if content == "" || question == "" {
		return QueryResult{}, domain.ErrMissingQueryInput
	}

	doc := text.Clean(content)
	chunks := s.retriever.Retrieve(ctx, doc, question)
	ans := answer.Generate(chunks, question)

	used := chunks
	if len(used) > s.contextUsed {
		used = used[:s.contextUsed]
	}

	if s.recorder != nil {
		s.recorder.DocumentSize("query", text.Runes(doc))
		s.recorder.ContextSize(len(chunks))
		s.recorder.Strategy(string(ans.Strategy))
	}
	logger.FromContext(ctx).Debug("query answered",
		zap.String("strategy", string(ans.Strategy)),
		zap.Int("context_chunks", len(chunks)),
		zap.Int("document_chars", text.Runes(doc)),
	)

	return QueryResult{
		Answer:      ans.Text,
		Strategy:    ans.Strategy,
		Context:     chunks,
		ContextUsed: used,
		Timestamp:   s.now(),
	}, nil
}

// Summarize condenses content into at most three sentences.
func (s *Service) Summarize(ctx context.Context, content string) (SummaryResult, error) {
	if content == "" {
		return SummaryResult{}, domain.ErrMissingContent
	}

	doc := text.Clean(content)
	stats := Statistics{
		WordCount:      len(text.Words(doc)),
		CharacterCount: text.Runes(doc),
		OriginalLength: text.Runes(content),
	}

	if s.recorder != nil {
		s.recorder.DocumentSize("summarize", stats.CharacterCount)
	}
	logger.FromContext(ctx).Debug("document summarized",
		zap.Int("words", stats.WordCount),
		zap.Int("original_length", stats.OriginalLength),
	)

	return SummaryResult{
		Summary:    summary.Summarize(doc),
		Statistics: stats,
		Timestamp:  s.now(),
	}, nil
}

// Analyze computes word and sentence statistics for content.
func (s *Service) Analyze(ctx context.Context, content string) (AnalysisResult, error) {
	if content == "" {
		return AnalysisResult{}, domain.ErrMissingContent
	}

	doc := text.Clean(content)
	report := analysis.Analyze(doc)

	if s.recorder != nil {
		s.recorder.DocumentSize("analyze", report.CharacterCount)
	}
	logger.FromContext(ctx).Debug("document analyzed",
		zap.Int("words", report.WordCount),
		zap.Int("sentences", report.SentenceCount),
		zap.Strings("top_words", topWordNames(report.TopWords)),
	)

	return AnalysisResult{Report: report, Timestamp: s.now()}, nil
}

func topWordNames(words []analysis.WordCount) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Word
	}
	return out
}
