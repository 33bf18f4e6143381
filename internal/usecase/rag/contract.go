package rag

import "context"

// ContextRetriever returns the ranked context list for a cleaned document.
type ContextRetriever interface {
	Retrieve(ctx context.Context, doc, question string) []string
}

// Ranker ranks a document without side effects.
type Ranker interface {
	Rank(doc, query string) []string
}

// Recorder observes pipeline outcomes. Implementations must be safe for concurrent use.
type Recorder interface {
	Strategy(strategy string)
	ContextSize(chunks int)
	DocumentSize(operation string, characters int)
}

// RankerRetriever adapts a Ranker into a ContextRetriever without caching.
type RankerRetriever struct {
	Ranker Ranker
}

// Retrieve ranks doc against question.
func (r RankerRetriever) Retrieve(_ context.Context, doc, question string) []string {
	return r.Ranker.Rank(doc, question)
}
