package llm

import (
	"context"
	"log/slog"
	"time"
)

// completeWithRetry calls the provider once per attempt, retrying
// transient failures with jittered backoff. Every attempt's latency is
// recorded when stats are attached.
func completeWithRetry(ctx context.Context, p Provider, stats *Stats, log *slog.Logger, op, system, prompt string, maxTokens int) (string, error) {
	var out string
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		start := time.Now()
		out, lastErr = p.Complete(ctx, system, prompt, maxTokens)
		if stats != nil {
			stats.Record(time.Since(start).Milliseconds())
		}
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable llm error", "op", op, "provider", p.Name(), "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return out, nil
}

// Translator renders contract text in English through a Provider. It
// satisfies the translation contract consumed by the analysis pipeline.
type Translator struct {
	provider Provider
	stats    *Stats
	log      *slog.Logger
}

func NewTranslator(provider Provider, stats *Stats, log *slog.Logger) *Translator {
	if log == nil {
		log = slog.Default()
	}
	return &Translator{provider: provider, stats: stats, log: log}
}

// Translate returns the English rendition of text. Without a provider
// the input passes through unchanged.
func (t *Translator) Translate(ctx context.Context, text, language string) (string, error) {
	if t.provider == nil {
		return text, nil
	}
	return completeWithRetry(ctx, t.provider, t.stats, t.log.With("language", language),
		"translate", translateSystem, buildTranslatePrompt(text), translateMaxTokens)
}
