package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONL_AppendsOneLinePerEntry(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "audit_logs.jsonl")
	sink := NewJSONL(path)

	entries := []Entry{
		NewEntry("Service Agreement", "english", sampleTrail()),
		NewEntry("Lease / Rental Agreement", "hindi", sampleTrail()),
		NewEntry("Mixed / Hybrid Contract", "english", sampleTrail()),
	}
	for _, e := range entries {
		if err := sink.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit file: %v", err)
	}
	defer f.Close()

	var got []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("line %d does not parse: %v", len(got)+1, err)
		}
		got = append(got, e)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != len(entries) {
		t.Fatalf("expected %d lines, got %d", len(entries), len(got))
	}
	for i := range entries {
		if got[i].ID != entries[i].ID {
			t.Errorf("line %d: expected id %q, got %q", i, entries[i].ID, got[i].ID)
		}
		if got[i].ContractType != entries[i].ContractType {
			t.Errorf("line %d: expected type %q, got %q", i, entries[i].ContractType, got[i].ContractType)
		}
		if len(got[i].Trail.Actions) != 2 {
			t.Errorf("line %d: expected 2 trail actions, got %d", i, len(got[i].Trail.Actions))
		}
	}
}

func TestJSONL_AppendAcrossReopens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "audit_logs.jsonl")

	first := NewJSONL(path)
	if err := first.Record(ctx, NewEntry("NDA / Confidentiality Agreement", "english", sampleTrail())); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := NewJSONL(path)
	if err := second.Record(ctx, NewEntry("Partnership Deed", "english", sampleTrail())); err != nil {
		t.Fatalf("Record: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("expected 2 lines after reopen, got %d", lines)
	}
}
