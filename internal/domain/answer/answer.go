// Package answer builds a reply to a question from a ranked context list.
//
// Replies are chosen by keyword rules evaluated in a fixed priority order.
// The first rule whose trigger appears in the lower-cased question handles
// it; a handler may decline, in which case the generic first-sentence reply
// is used instead of trying later rules.
package answer

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/docrag/internal/domain/summary"
	"github.com/kailas-cloud/docrag/internal/domain/text"
)

// NoContextMessage is returned when there is nothing to answer from.
const NoContextMessage = "I don't have enough context from the document to answer that question."

const excerptRunes = 200

// Strategy names the rule that produced an answer.
type Strategy string

const (
	// StrategyNoContext means the context list was empty or blank.
	StrategyNoContext Strategy = "no_context"
	// StrategyDefinition quotes the first sentence mentioning a question word.
	StrategyDefinition Strategy = "definition"
	// StrategyCount reports the word count of the context.
	StrategyCount Strategy = "count"
	// StrategySummary summarizes the context.
	StrategySummary Strategy = "summary"
	// StrategyFirstSentence quotes the first sentence of the context.
	StrategyFirstSentence Strategy = "first_sentence"
	// StrategyExcerpt quotes a raw prefix of the context.
	StrategyExcerpt Strategy = "excerpt"
)

// Result is a generated answer together with the rule that produced it.
type Result struct {
	Text     string
	Strategy Strategy
}

// handler returns the answer for combined context, or false to fall back
// to the generic reply.
type handler func(combined, question string) (string, bool)

type rule struct {
	strategy Strategy
	triggers []string
	handle   handler
}

var rules = []rule{
	{StrategyDefinition, []string{"what", "define", "meaning"}, definition},
	{StrategyCount, []string{"how many", "count", "number"}, count},
	{StrategySummary, []string{"summary", "summarize", "about"}, summarize},
}

// Generate answers question from the context chunks.
func Generate(context []string, question string) Result {
	combined := strings.Join(context, " ")
	if len(context) == 0 || strings.TrimSpace(combined) == "" {
		return Result{Text: NoContextMessage, Strategy: StrategyNoContext}
	}

	if r, ok := match(strings.ToLower(question)); ok {
		if out, handled := r.handle(combined, question); handled {
			return Result{Text: out, Strategy: r.strategy}
		}
	}

	return fallback(combined)
}

func match(question string) (rule, bool) {
	for _, r := range rules {
		for _, trig := range r.triggers {
			if strings.Contains(question, trig) {
				return r, true
			}
		}
	}
	return rule{}, false
}

// definition returns the first sentence containing any question token.
// Tokens keep their original case while the sentence is lower-cased, so a
// capitalized question word only matches through its other tokens.
func definition(combined, question string) (string, bool) {
	tokens := text.Words(question)
	for _, s := range text.Sentences(combined) {
		lower := strings.ToLower(s)
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				return strings.TrimSpace(s) + ".", true
			}
		}
	}
	return "", false
}

func count(combined, _ string) (string, bool) {
	n := len(text.Words(combined))
	return fmt.Sprintf("Based on the relevant context, there are approximately %d words in the related sections.", n), true
}

func summarize(combined, _ string) (string, bool) {
	return summary.Summarize(combined), true
}

func fallback(combined string) Result {
	if sentences := text.Sentences(combined); len(sentences) > 0 {
		return Result{Text: strings.TrimSpace(sentences[0]) + ".", Strategy: StrategyFirstSentence}
	}
	return Result{
		Text:     "Here's what I found: " + text.Prefix(combined, excerptRunes) + "...",
		Strategy: StrategyExcerpt,
	}
}
