package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lexigest/lexigest/internal/analysis"
	"github.com/lexigest/lexigest/internal/api"
	"github.com/lexigest/lexigest/internal/audit"
	"github.com/lexigest/lexigest/internal/config"
	"github.com/lexigest/lexigest/internal/llm"
)

func main() {
	// Load .env first (ignore error if not present).
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The LLM provider is optional; without keys the engine runs fully
	// offline and translation passes text through unchanged.
	provider, err := llm.NewProvider(llm.Config{
		Provider:        cfg.LLMProvider,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		Timeout:         cfg.LLMTimeout,
	})
	if err != nil {
		log.Error("invalid llm configuration", "error", err)
		os.Exit(1)
	}
	stats := llm.NewStats(time.Hour)

	var translator analysis.Translator
	if provider != nil {
		translator = llm.NewTranslator(provider, stats, log)
	}
	var enhancer analysis.Enhancer
	if cfg.LLMEnhance && provider != nil {
		enhancer = llm.NewEnhancer(provider, stats, log)
	}
	analyzer := analysis.New(translator, enhancer, log)

	sink, err := audit.Open(ctx, cfg.AuditBackend, cfg.AuditPath)
	if err != nil {
		log.Error("failed to open audit backend", "error", err)
		os.Exit(1)
	}

	srv := api.NewServer(analyzer, provider, stats, sink, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if err := sink.Close(); err != nil {
			log.Warn("audit close failed", "error", err)
		}
	}()

	log.Info("starting lexigest",
		"port", cfg.Port,
		"llm", providerName(provider),
		"audit", cfg.AuditBackend,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func providerName(p llm.Provider) string {
	if p == nil {
		return "off"
	}
	return p.Name()
}
