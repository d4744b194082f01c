package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lexigest/lexigest/internal/analysis"
	"github.com/lexigest/lexigest/internal/audit"
	"github.com/lexigest/lexigest/internal/config"
)

const sampleContract = `SERVICE AGREEMENT

1. Payment Terms
The Client shall pay all invoices within 30 days of receipt.

2. Termination
Either party may terminate this agreement with 30 days written notice.

3. Indemnity
The Service Provider shall indemnify the Client against all losses without limit.`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingSink records how many entries were persisted.
type countingSink struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (c *countingSink) Record(_ context.Context, e audit.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
	return nil
}

func (c *countingSink) Close() error { return nil }

func (c *countingSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// listerSink additionally supports listing, like the sqlite backend.
type listerSink struct {
	countingSink
}

func (l *listerSink) Recent(_ context.Context, limit int) ([]audit.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]audit.Entry, limit)
	for i := 0; i < limit; i++ {
		out[i] = l.entries[len(l.entries)-1-i]
	}
	return out, nil
}

func testConfig() config.Config {
	return config.Config{
		Port:           "8080",
		MaxUploadBytes: 1 << 20,
		MaxBatchFiles:  5,
	}
}

func newTestServer(sink audit.Sink, cfg config.Config) *Server {
	analyzer := analysis.New(nil, nil, testLogger())
	return NewServer(analyzer, nil, nil, sink, testLogger(), cfg)
}

type resultEnvelope struct {
	Result analysis.Result `json:"result"`
}

func TestHandleAnalyze_ReturnsTenSectionResult(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	body, _ := json.Marshal(map[string]string{"contract_text": sampleContract})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var env resultEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// "SERVICE AGREEMENT" parses as a caps heading, then the three
	// numbered clauses.
	if len(env.Result.Structure.Clauses) != 4 {
		t.Errorf("clause count = %d, want 4", len(env.Result.Structure.Clauses))
	}
	if env.Result.RiskScore.Interpretation == "" {
		t.Error("expected a risk score interpretation")
	}
	if len(env.Result.AuditLog.Actions) == 0 {
		t.Error("expected audit actions in the result")
	}
}

func TestHandleAnalyze_RejectsEmptyText(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	for _, text := range []string{"", "   \n\t  "} {
		body, _ := json.Marshal(map[string]string{"contract_text": text})
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("contract_text %q: status = %d, want 400", text, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "empty") {
			t.Errorf("contract_text %q: body %q should name the empty input", text, rec.Body.String())
		}
	}
}

func TestHandleAnalyze_RejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyze_RecordsAudit(t *testing.T) {
	sink := &countingSink{}
	srv := newTestServer(sink, testConfig())

	body, _ := json.Marshal(map[string]string{"contract_text": sampleContract})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if sink.count() != 1 {
		t.Fatalf("audit entries = %d, want 1", sink.count())
	}
	sink.mu.Lock()
	entry := sink.entries[0]
	sink.mu.Unlock()
	if entry.Language != "english" {
		t.Errorf("entry language = %q, want %q", entry.Language, "english")
	}
	if entry.ContractType == "" {
		t.Error("entry should carry the detected contract type")
	}
}

func TestHandleAnalyze_CacheHitSkipsRecompute(t *testing.T) {
	sink := &countingSink{}
	cfg := testConfig()
	cfg.CacheTTL = time.Minute
	srv := newTestServer(sink, cfg)

	body, _ := json.Marshal(map[string]string{"contract_text": sampleContract})
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	// Only the first request computes; cache hits do not re-record audit.
	if sink.count() != 1 {
		t.Errorf("audit entries = %d, want 1", sink.count())
	}
}

func multipartUpload(t *testing.T, field, filename, content string, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	for k, v := range extra {
		mw.WriteField(k, v)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleAnalyzeFile_TxtUpload(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	buf, contentType := multipartUpload(t, "file", "contract.txt", sampleContract,
		map[string]string{"language": "english", "business_role": "service provider"})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze/file", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var env resultEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(env.Result.Structure.Clauses) == 0 {
		t.Error("expected clauses from uploaded text")
	}
	if env.Result.AuditLog.Meta.BusinessRoleInput == nil {
		t.Error("business_role form field should reach the audit metadata")
	}
}

func TestHandleAnalyzeFile_UnsupportedExtension(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	buf, contentType := multipartUpload(t, "file", "deal.xlsx", "not a contract", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze/file", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unsupported format.") {
		t.Errorf("body %q should explain the unsupported format", rec.Body.String())
	}
}

func TestHandleAnalyzeFile_WhitespaceOnlyFile(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	buf, contentType := multipartUpload(t, "file", "blank.txt", "   \n\n   ", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze/file", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No text extracted from file.") {
		t.Errorf("body = %q, want the no-text message", rec.Body.String())
	}
}

func TestHandleAnalyzeFile_MissingFile(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("language", "english")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyzeBatch_MixedFiles(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	good, _ := mw.CreateFormFile("files", "lease.txt")
	good.Write([]byte(sampleContract))
	bad, _ := mw.CreateFormFile("files", "numbers.xlsx")
	bad.Write([]byte("cells"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/batch", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []struct {
			Filename string           `json:"filename"`
			Result   *analysis.Result `json:"result"`
			Error    string           `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].Filename != "lease.txt" || resp.Results[0].Result == nil {
		t.Errorf("first item should be the analyzed lease, got %+v", resp.Results[0])
	}
	if resp.Results[1].Error == "" {
		t.Errorf("second item should carry the unsupported-format error")
	}
}

func TestHandleAnalyzeBatch_NoFiles(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("language", "english")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/batch", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAnalyzeBatch_TooManyFiles(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBatchFiles = 2
	srv := newTestServer(audit.Nop{}, cfg)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		fw, _ := mw.CreateFormFile("files", name)
		fw.Write([]byte("1. Term\nSome clause."))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/batch", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "too many files") {
		t.Errorf("body = %q, want a too-many-files error", rec.Body.String())
	}
}

func TestHealthAndRoot(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("health body = %q", got)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("root status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "India SME Contract Intelligence Engine is running.") {
		t.Errorf("root body = %q, want the service banner", rec.Body.String())
	}
}

func TestAuth_RequiredWhenKeyConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.LexigestAPIKey = "secret-token"
	srv := newTestServer(audit.Nop{}, cfg)

	// Health stays open.
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}

	// API endpoints require the bearer token.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong-token status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d, want 200", rec.Code)
	}
}

func TestTemplates_ListAndFetch(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listing struct {
		Templates []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Filename string `json:"filename"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	if len(listing.Templates) == 0 || listing.Templates[0].ID != "service_agreement_sme" {
		t.Fatalf("unexpected listing: %+v", listing.Templates)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/service_agreement_sme", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want text/plain", ct)
	}
	if !strings.Contains(rec.Body.String(), "SERVICE AGREEMENT") {
		t.Error("template body should contain the agreement text")
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/nda_mutual", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown template status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Template not found.") {
		t.Errorf("body = %q, want the not-found message", rec.Body.String())
	}
}

func TestHandleExportPDF(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	// Analyze first, then round-trip the result through the export endpoint.
	body, _ := json.Marshal(map[string]string{"contract_text": sampleContract})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/export/pdf", bytes.NewReader(rec.Body.Bytes()))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=contract_analysis_report.pdf" {
		t.Errorf("content disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body should start with the PDF magic")
	}
}

func TestHandleLLMStats_NoProvider(t *testing.T) {
	srv := newTestServer(audit.Nop{}, testConfig())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/llm", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHandleAuditRecent_UnsupportedSink(t *testing.T) {
	cfg := testConfig()
	cfg.AuditBackend = "jsonl"
	srv := newTestServer(audit.Nop{}, cfg)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/audit/recent", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleAuditRecent_ListingSink(t *testing.T) {
	sink := &listerSink{}
	cfg := testConfig()
	cfg.AuditBackend = "sqlite"
	srv := newTestServer(sink, cfg)

	body, _ := json.Marshal(map[string]string{"contract_text": sampleContract})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/audit/recent?limit=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Entries []audit.Entry `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(resp.Entries))
	}
	if len(resp.Entries[0].Trail.Actions) == 0 {
		t.Error("entry should carry the audit trail actions")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"contract.pdf", "contract.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/sub/lease.txt", "lease.txt"},
		{"", "unnamed"},
		{".", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
