package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth.
	LexigestAPIKey string

	// CORS
	AllowOrigins []string

	// LLM providers: "auto", "anthropic", "openai", or "off"
	LLMProvider     string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	LLMTimeout      time.Duration
	LLMEnhance      bool

	// Audit persistence: "jsonl", "sqlite", or "none"
	AuditBackend string
	AuditPath    string

	// Result cache TTL. Zero disables caching.
	CacheTTL time.Duration

	// Upload limits
	MaxUploadBytes int64
	MaxBatchFiles  int

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		LexigestAPIKey: os.Getenv("LEXIGEST_API_KEY"),

		AllowOrigins: envOrigins(),

		LLMProvider:     envOr("LLM_PROVIDER", "auto"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOr("OPENAI_MODEL", "gpt-4o-mini"),
		LLMTimeout:      envDuration("LLM_TIMEOUT", 120*time.Second),
		LLMEnhance:      envBool("LLM_ENHANCE", false),

		AuditBackend: envOr("AUDIT_BACKEND", "jsonl"),
		AuditPath:    os.Getenv("AUDIT_PATH"),

		CacheTTL: envDuration("CACHE_TTL", 15*time.Minute),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
		MaxBatchFiles:  envInt("MAX_BATCH_FILES", 10),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 120 * time.Second
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0 // negative makes no sense; zero disables caching
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.MaxBatchFiles <= 0 {
		cfg.MaxBatchFiles = 10
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	switch strings.ToLower(c.LLMProvider) {
	case "anthropic", "claude":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("LLM_PROVIDER=%s requires ANTHROPIC_API_KEY", c.LLMProvider)
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("LLM_PROVIDER=openai requires OPENAI_API_KEY")
		}
	case "auto", "off", "none", "":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER: %s (supported: auto, anthropic, openai, off)", c.LLMProvider)
	}
	switch strings.ToLower(c.AuditBackend) {
	case "jsonl", "sqlite", "none", "off", "":
	default:
		return fmt.Errorf("unknown AUDIT_BACKEND: %s (supported: jsonl, sqlite, none)", c.AuditBackend)
	}
	return nil
}

// envOrigins resolves the CORS origin list from ALLOW_ORIGINS, falling back to
// FRONTEND_URL, then to the local development origins.
func envOrigins() []string {
	raw := os.Getenv("ALLOW_ORIGINS")
	if raw == "" {
		raw = os.Getenv("FRONTEND_URL")
	}
	if raw == "" {
		return []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"http://127.0.0.1:5173",
		}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
