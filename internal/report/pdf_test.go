package report

import (
	"bytes"
	"testing"

	"github.com/lexigest/lexigest/internal/analysis"
)

func sampleResult() *analysis.Result {
	law := "Courts of Mumbai"
	duration := "12 months"
	return &analysis.Result{
		TypeAndOverview: analysis.TypeAndOverview{
			ContractType: "Service Agreement",
			Explanation:  "Dominant type detected via keyword scoring: Service Agreement.",
		},
		Entities: analysis.EntityBundle{
			Parties:               []string{"Acme Services Pvt Ltd", "Bharat Traders"},
			DatesAndDuration:      analysis.DatesAndDuration{DurationText: &duration},
			Jurisdiction:          &law,
			TerminationConditions: []string{"30 days written notice"},
		},
		ClauseExplanations: []analysis.ClauseExplanation{
			{ClauseNumber: 1, Heading: "1. Payment Terms", Intent: analysis.IntentObligation,
				BusinessImpact: "This clause defines obligations or important actions."},
			{ClauseNumber: 2, Heading: "2. Termination", Intent: analysis.IntentRight,
				BusinessImpact: "This clause grants rights to one or both parties."},
		},
		RiskAnalysis: analysis.RiskAnalysis{
			ClauseRiskTable: []analysis.ClauseRisk{
				{ClauseNumber: 1, Heading: "1. Payment Terms", RiskLevel: analysis.RiskLow, Flags: []string{}},
				{ClauseNumber: 2, Heading: "2. Termination", RiskLevel: analysis.RiskHigh,
					Flags: []string{"lock_in_or_non_cancellable"}},
			},
			AmbiguityFlags: []analysis.AmbiguityFlag{
				{Phrase: "reasonable", Reason: "Subjective standard; 'reasonable' is undefined."},
			},
		},
		Renegotiations: []analysis.Renegotiation{
			{ClauseNumber: 2, Heading: "2. Termination", RiskLevel: analysis.RiskHigh,
				SuggestedChange: "Replace strict lock-in with a mutual exit clause."},
		},
		RiskScore: analysis.RiskScoreSummary{CompositeScore: 58, Interpretation: "Needs review"},
		ExecutiveSummary: analysis.ExecutiveSummary{
			Overview:       "This appears to be a Service Agreement with 2 clauses.",
			KeyObligations: []string{"Clause 1 ('1. Payment Terms') defines obligations or important actions."},
			BiggestRisks:   []string{"Clause 2 ('2. Termination') has high risk indicators: lock_in_or_non_cancellable."},
			Negotiate:      []string{"Clause 2 ('2. Termination') has high risk indicators: lock_in_or_non_cancellable."},
		},
		BestPractices: analysis.BestPractices{
			Recommendations: []string{"Cap liability at contract value."},
			ClausesToAdd:    []string{"Mutual termination for convenience."},
		},
	}
}

func TestBuildPDF_ProducesDocument(t *testing.T) {
	data, err := BuildPDF(sampleResult())
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected PDF magic, got %q", data[:minInt(8, len(data))])
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestBuildPDF_EmptyResultUsesFallbacks(t *testing.T) {
	data, err := BuildPDF(&analysis.Result{})
	if err != nil {
		t.Fatalf("BuildPDF on empty result: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("expected PDF magic for empty result")
	}
}

func TestBuildPDF_MoreClausesMoreOutput(t *testing.T) {
	small := sampleResult()
	big := sampleResult()
	for i := 3; i <= 28; i++ {
		big.ClauseExplanations = append(big.ClauseExplanations, analysis.ClauseExplanation{
			ClauseNumber:   i,
			Heading:        "Clause heading",
			Intent:         analysis.IntentInformational,
			BusinessImpact: "General information or context; low direct obligation content.",
		})
	}

	smallPDF, err := BuildPDF(small)
	if err != nil {
		t.Fatalf("BuildPDF small: %v", err)
	}
	bigPDF, err := BuildPDF(big)
	if err != nil {
		t.Fatalf("BuildPDF big: %v", err)
	}
	if len(bigPDF) <= len(smallPDF) {
		t.Errorf("expected larger report for more clauses: %d <= %d", len(bigPDF), len(smallPDF))
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 10); got != "short" {
		t.Errorf("clip passthrough: got %q", got)
	}
	if got := clip("abcdefghij", 4); got != "abcd" {
		t.Errorf("clip cut: got %q", got)
	}
	// Rune-aware: must not split a multi-byte character.
	if got := clip("₹₹₹₹", 2); got != "₹₹" {
		t.Errorf("clip runes: got %q", got)
	}
}

func TestFallbackHelpers(t *testing.T) {
	if got := orNA("  "); got != "N/A" {
		t.Errorf("orNA blank: got %q", got)
	}
	if got := orNA("Service Agreement"); got != "Service Agreement" {
		t.Errorf("orNA value: got %q", got)
	}

	if got := strOr(nil, "Not specified"); got != "Not specified" {
		t.Errorf("strOr nil: got %q", got)
	}
	v := "Courts of Delhi"
	if got := strOr(&v, "Not specified"); got != "Courts of Delhi" {
		t.Errorf("strOr value: got %q", got)
	}

	if got := joinOr(nil, "Not detected"); got != "Not detected" {
		t.Errorf("joinOr empty: got %q", got)
	}
	if got := joinOr([]string{"a", "b"}, "x"); got != "a, b" {
		t.Errorf("joinOr values: got %q", got)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
