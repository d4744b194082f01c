package api

import (
	"encoding/json"
	"net/http"

	"github.com/lexigest/lexigest/internal/analysis"
	"github.com/lexigest/lexigest/internal/report"
)

type exportPDFRequest struct {
	Result analysis.Result `json:"result"`
}

// handleExportPDF renders an analysis result as a PDF report. The body
// carries a result previously returned by one of the analyze endpoints.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req exportPDFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	pdfBytes, err := report.BuildPDF(&req.Result)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=contract_analysis_report.pdf")
	w.Write(pdfBytes)
}
