// Package audit persists per-analysis audit trails.
//
// Persistence is best-effort: callers log a failed Record and move on,
// so an audit outage never blocks an analysis response. Backends are a
// JSONL append-to-file (one JSON object per line) and SQLite; "none"
// disables persistence entirely.
package audit

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lexigest/lexigest/internal/analysis"
)

// Entry is one persisted audit record: the audit-log section of an
// analysis result plus enough request context to make the row useful
// on its own.
type Entry struct {
	ID           string            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	ContractType string            `json:"contract_type"`
	Language     string            `json:"language"`
	Trail        analysis.AuditLog `json:"audit_log"`
}

// Sink stores audit entries append-only.
type Sink interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Lister is implemented by sinks that can read entries back, newest
// first.
type Lister interface {
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// NewEntry stamps an audit trail with a ULID and creation time. ULIDs
// sort lexicographically by time, which is what Recent orders by.
func NewEntry(contractType, language string, trail analysis.AuditLog) Entry {
	return Entry{
		ID:           newID(),
		CreatedAt:    time.Now().UTC(),
		ContractType: contractType,
		Language:     language,
		Trail:        trail,
	}
}

// Open builds the configured sink. An empty path gets a backend-specific
// default filename.
func Open(ctx context.Context, backend, path string) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "jsonl":
		if path == "" {
			path = "audit_logs.jsonl"
		}
		return NewJSONL(path), nil
	case "sqlite":
		if path == "" {
			path = "audit_logs.db"
		}
		s, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "", "none", "off":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown audit backend: %s (supported: jsonl, sqlite, none)", backend)
	}
}

// Nop discards audit entries.
type Nop struct{}

func (Nop) Record(ctx context.Context, e Entry) error { return nil }

func (Nop) Close() error { return nil }
