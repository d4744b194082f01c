package api

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lexigest/lexigest/internal/analysis"
	"github.com/lexigest/lexigest/internal/audit"
	"github.com/lexigest/lexigest/internal/filetext"
)

// maxConcurrentAnalyze bounds the fan-out of batch analysis.
const maxConcurrentAnalyze = 4

var errNoTextExtracted = errors.New("No text extracted from file.")

type analyzeRequest struct {
	ContractText string `json:"contract_text"`
	Language     string `json:"language"`
	BusinessRole string `json:"business_role"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ContractText) == "" {
		jsonError(w, "contract_text is empty; nothing to analyze", http.StatusBadRequest)
		return
	}

	result := s.analyzeText(r.Context(), req.ContractText, req.Language, req.BusinessRole)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"result": result})
}

func (s *Server) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	ex, err := filetext.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.configureExtractor(ex)

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	text, err := ex.Extract(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(text) == "" {
		jsonError(w, errNoTextExtracted.Error(), http.StatusBadRequest)
		return
	}

	result := s.analyzeText(r.Context(), text, r.FormValue("language"), r.FormValue("business_role"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"result": result})
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*int64(s.cfg.MaxBatchFiles)+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	if len(files) > s.cfg.MaxBatchFiles {
		jsonError(w, fmt.Sprintf("too many files: %d (max %d)", len(files), s.cfg.MaxBatchFiles), http.StatusBadRequest)
		return
	}

	language := r.FormValue("language")
	role := r.FormValue("business_role")

	type batchItem struct {
		Filename string           `json:"filename"`
		Result   *analysis.Result `json:"result,omitempty"`
		Error    string           `json:"error,omitempty"`
	}

	items := make([]batchItem, len(files))
	sem := make(chan struct{}, maxConcurrentAnalyze)
	var wg sync.WaitGroup

	for i, fh := range files {
		wg.Add(1)
		go func(i int, fh *multipart.FileHeader) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			filename := sanitizeFilename(fh.Filename)
			text, err := s.extractBatchFile(fh, filename)
			if err != nil {
				items[i] = batchItem{Filename: filename, Error: err.Error()}
				return
			}
			result := s.analyzeText(r.Context(), text, language, role)
			items[i] = batchItem{Filename: filename, Result: result}
		}(i, fh)
	}
	wg.Wait()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": items})
}

// extractBatchFile pulls text from one uploaded file, enforcing the size cap.
func (s *Server) extractBatchFile(fh *multipart.FileHeader, filename string) (string, error) {
	ex, err := filetext.ForFile(filename)
	if err != nil {
		return "", err
	}
	s.configureExtractor(ex)

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}

	text, err := ex.Extract(bytes.NewReader(data), filename)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errNoTextExtracted
	}
	return text, nil
}

func (s *Server) configureExtractor(ex filetext.Extractor) {
	if p, ok := ex.(*filetext.PDFExtractor); ok {
		p.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
}

// analyzeText runs one analysis. Identical inputs within the cache TTL
// reuse the assembled result; only fresh computations append to the
// audit trail, and audit failures never fail the request.
func (s *Server) analyzeText(ctx context.Context, text, language, role string) *analysis.Result {
	if language == "" {
		language = "english"
	}

	var key string
	if s.results != nil {
		key = resultCacheKey(text, language, role)
		if cached, found := s.results.Get(key); found {
			return cached.(*analysis.Result)
		}
	}

	result := s.analyzer.Analyze(ctx, text, language, role)
	if s.results != nil {
		s.results.Set(key, result, gocache.DefaultExpiration)
	}

	entry := audit.NewEntry(result.TypeAndOverview.ContractType, language, result.AuditLog)
	if err := s.sink.Record(ctx, entry); err != nil {
		s.log.Warn("audit record failed, proceeding", "error", err)
	}
	return result
}

func resultCacheKey(text, language, role string) string {
	h := sha256.Sum256([]byte(text + "\x00" + language + "\x00" + role))
	return hex.EncodeToString(h[:])
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
