package audit

import (
	"context"
	"encoding/json"
	"os"
	"sync"
)

// JSONL appends one JSON object per line to a local file.
type JSONL struct {
	path string
	mu   sync.Mutex
}

// NewJSONL returns a sink writing to path. The file is created on the
// first Record.
func NewJSONL(path string) *JSONL {
	return &JSONL{path: path}
}

func (s *JSONL) Record(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(data, '\n'))
	return err
}

func (s *JSONL) Close() error { return nil }
