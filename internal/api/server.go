package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gocache "github.com/patrickmn/go-cache"

	"github.com/lexigest/lexigest/internal/analysis"
	"github.com/lexigest/lexigest/internal/audit"
	"github.com/lexigest/lexigest/internal/config"
	"github.com/lexigest/lexigest/internal/llm"
)

// Server is the HTTP API server for lexigest.
type Server struct {
	router   chi.Router
	analyzer *analysis.Analyzer
	provider llm.Provider
	stats    *llm.Stats
	sink     audit.Sink
	results  *gocache.Cache
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(analyzer *analysis.Analyzer, provider llm.Provider, stats *llm.Stats, sink audit.Sink, log *slog.Logger, cfg config.Config) *Server {
	if sink == nil {
		sink = audit.Nop{}
	}
	if stats == nil {
		stats = llm.NewStats(0)
	}
	s := &Server{
		analyzer: analyzer,
		provider: provider,
		stats:    stats,
		sink:     sink,
		log:      log,
		cfg:      cfg,
	}
	if cfg.CacheTTL > 0 {
		s.results = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public endpoints.
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	// API endpoints. Bearer auth applies only when a key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.LexigestAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.LexigestAPIKey, s.log))
		}

		r.Post("/api/analyze", s.handleAnalyze)
		r.Post("/api/analyze/file", s.handleAnalyzeFile)
		r.Post("/api/analyze/batch", s.handleAnalyzeBatch)
		r.Post("/api/export/pdf", s.handleExportPDF)

		r.Get("/api/templates", s.handleListTemplates)
		r.Get("/api/templates/{templateID}", s.handleGetTemplate)

		r.Get("/api/stats/llm", s.handleLLMStats)
		r.Get("/api/audit/recent", s.handleAuditRecent)
	})

	s.router = r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "India SME Contract Intelligence Engine is running. " +
			"POST contract text to /api/analyze or upload file to /api/analyze/file. " +
			"POST result to /api/export/pdf for PDF report.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
