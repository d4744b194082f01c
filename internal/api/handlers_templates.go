package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lexigest/lexigest/internal/templates"
)

// handleListTemplates lists the bundled SME-friendly contract templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"templates": templates.Catalog()})
}

// handleGetTemplate returns one template as plain text.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	content, ok := templates.Content(id)
	if !ok {
		jsonError(w, "Template not found.", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(content))
}
