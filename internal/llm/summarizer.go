package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/stylo/internal/model"
)

// Summarizer attaches an optional commentary to a finished report.
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer from the LLM configuration. A blank
// provider name disables summarization; the returned summarizer is still
// usable and simply does nothing.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	switch cfg.Provider {
	case "":
		return &Summarizer{}, nil
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		provider, err := NewOpenAIProvider(apiKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return &Summarizer{provider: provider}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// GenerateSummary produces the commentary for the report. The report's
// statistics are inputs only; nothing here feeds back into them.
func (s *Summarizer) GenerateSummary(ctx context.Context, rep *model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return &model.LLMSummary{Enabled: false}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{Report: rep})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}
