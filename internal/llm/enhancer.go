package llm

import (
	"context"
	"log/slog"

	"github.com/lexigest/lexigest/internal/analysis"
)

// Enhancer produces one-sentence plain-language clause notes through a
// Provider. It satisfies the enhancement contract consumed by the
// analysis pipeline.
type Enhancer struct {
	provider Provider
	stats    *Stats
	log      *slog.Logger
}

func NewEnhancer(provider Provider, stats *Stats, log *slog.Logger) *Enhancer {
	if log == nil {
		log = slog.Default()
	}
	return &Enhancer{provider: provider, stats: stats, log: log}
}

// EnhanceClause asks the provider for a single-sentence explanation of
// one clause. The audience defaults to "SME" when no business role was
// given.
func (e *Enhancer) EnhanceClause(ctx context.Context, heading, excerpt string, intent analysis.Intent, businessRole string) (string, error) {
	if e.provider == nil {
		return "", nil
	}
	role := businessRole
	if role == "" {
		role = "SME"
	}

	out, err := completeWithRetry(ctx, e.provider, e.stats, e.log,
		"enhance", enhanceSystem, buildEnhancePrompt(heading, excerpt, string(intent), role), enhanceMaxTokens)
	if err != nil {
		return "", err
	}
	return cleanNote(out)
}
