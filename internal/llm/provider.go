// Package llm generates an optional prose commentary on a finished
// attribution report. The commentary is produced after all statistics are
// final and never influences them.
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/stylo/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a prose commentary on the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for report summarization
type SummarizeRequest struct {
	// Report is the finished attribution report to comment on
	Report *model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the generated commentary
type SummarizeResponse struct {
	// Summary is the generated markdown text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// BuildPrompt constructs the default prompt. It restates the report's numbers
// so the model has nothing to invent and tells it to describe, not judge.
func BuildPrompt(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing an authorship-attribution experiment. The numbers below are final - restate and interpret them, never invent new ones.

RULES:
1. Only reference classes and figures that appear below.
2. Do not speculate about the authors or the texts themselves.
3. An "unclassified" sample is a deliberate non-decision on a voting tie, not an error.
4. Keep it to 3-5 sentences of plain markdown.

Experiment:
- Corpus: %s
- Classes (%d): %s
- Samples: %d, held-out fraction %.2f, %d folds
- Accuracy: %.1f%% (stderr %.1f%%)
- Correct after phase 1 (one-vs-rest): %.1f%%
- Correct after phase 2 (pairwise voting): %.1f%%
- Unclassified after phase 2: %.1f%%
`,
		report.Corpus, len(report.Classes), strings.Join(report.Classes, ", "),
		report.Samples, report.HeldOut, report.Folds,
		100*report.Summary.Accuracy.Mean, 100*report.Summary.Accuracy.StdErr,
		100*report.Summary.CorrectAfterPhase1.Mean,
		100*report.Summary.CorrectAfterPhase2.Mean,
		100*report.Summary.UnclassifiedAfterPhase2.Mean)

	if pairs := confusedPairs(report.Confusion); len(pairs) > 0 {
		b.WriteString("\nMost confused pairs (actual -> assigned: count):\n")
		for i, p := range pairs {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "- %s -> %s: %d\n", p.actual, p.assigned, p.count)
		}
	}

	b.WriteString("\nWrite the commentary now.")
	return b.String()
}

type confusedPair struct {
	actual, assigned string
	count            int
}

// confusedPairs lists off-diagonal confusion cells, largest first.
func confusedPairs(matrix map[string]map[string]int) []confusedPair {
	var pairs []confusedPair
	for actual, row := range matrix {
		for assigned, count := range row {
			if assigned == actual || assigned == model.Unclassified || count == 0 {
				continue
			}
			pairs = append(pairs, confusedPair{actual, assigned, count})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		if pairs[i].actual != pairs[j].actual {
			return pairs[i].actual < pairs[j].actual
		}
		return pairs[i].assigned < pairs[j].assigned
	})
	return pairs
}
