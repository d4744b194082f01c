package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lexigest/lexigest/internal/audit"
)

// handleAuditRecent lists recent audit entries, newest first. Only sinks
// that keep queryable history support this; the append-only JSONL sink
// does not.
func (s *Server) handleAuditRecent(w http.ResponseWriter, r *http.Request) {
	lister, ok := s.sink.(audit.Lister)
	if !ok {
		jsonError(w, fmt.Sprintf("audit backend %q does not support listing", s.cfg.AuditBackend), http.StatusNotFound)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	entries, err := lister.Recent(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list audit entries: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}
