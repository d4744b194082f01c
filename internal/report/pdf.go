// Package report renders an analysis result as a PDF for legal review.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/lexigest/lexigest/internal/analysis"
	"github.com/lexigest/lexigest/internal/nlp"
)

const pageMargin = 25.4 // 1 inch, in mm

// Per-section caps keep a pathological contract from producing a
// hundred-page report.
const (
	maxClauseRows      = 30
	maxRiskRows        = 25
	maxAmbiguityRows   = 10
	maxSuggestionRows  = 15
	maxOverviewRunes   = 500
	maxObligationRows  = 8
	maxRiskBullets     = 5
	maxNegotiateRows   = 5
	maxRecommendations = 6
	maxClausesToAdd    = 4
)

// BuildPDF renders the fixed eight-section report. The input is
// typically a result fresh from the analyzer, but anything decoded from
// the result JSON works; missing values fall back to placeholder text.
func BuildPDF(result *analysis.Result) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	w := &reportWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	w.heading("1. Contract Type & Overview")
	w.labeled("Type:", orNA(result.TypeAndOverview.ContractType))
	w.labeled("Explanation:", orNA(result.TypeAndOverview.Explanation))
	w.gap(6)

	w.heading("2. Contract Risk Score")
	w.labeled("Composite score (0–100):",
		fmt.Sprintf("%d — %s", result.RiskScore.CompositeScore, orNA(result.RiskScore.Interpretation)))
	w.gap(6)

	ent := result.Entities
	w.heading("3. Key Entities")
	w.labeled("Parties:", joinOr(ent.Parties, "Not detected"))
	w.labeled("Governing law:", strOr(ent.Jurisdiction, "Not specified"))
	w.labeled("Duration:", strOr(ent.DatesAndDuration.DurationText, "Not specified"))
	w.labeled("Termination conditions:", joinOr(ent.TerminationConditions, "Not extracted"))
	w.gap(6)

	w.heading("4. Clause-by-Clause Explanation")
	explanations := result.ClauseExplanations
	if len(explanations) > maxClauseRows {
		explanations = explanations[:maxClauseRows]
	}
	for _, c := range explanations {
		w.boldLine(fmt.Sprintf("Clause %d: %s", c.ClauseNumber, clip(c.Heading, 60)))
		w.small(fmt.Sprintf("Intent: %s — %s", c.Intent, clip(c.BusinessImpact, 200)))
	}
	w.gap(6)

	w.heading("5. Risk Analysis")
	riskRows := result.RiskAnalysis.ClauseRiskTable
	if len(riskRows) > maxRiskRows {
		riskRows = riskRows[:maxRiskRows]
	}
	if len(riskRows) > 0 {
		w.riskTable(riskRows)
	}
	w.gap(5)
	ambiguities := result.RiskAnalysis.AmbiguityFlags
	if len(ambiguities) > maxAmbiguityRows {
		ambiguities = ambiguities[:maxAmbiguityRows]
	}
	for _, amb := range ambiguities {
		w.ambiguity(amb.Phrase, amb.Reason)
	}
	w.gap(6)

	w.heading("6. Renegotiation Suggestions")
	suggestions := result.Renegotiations
	if len(suggestions) > maxSuggestionRows {
		suggestions = suggestions[:maxSuggestionRows]
	}
	for _, s := range suggestions {
		w.labeled(fmt.Sprintf("Clause %d:", s.ClauseNumber), clip(s.SuggestedChange, 300))
	}
	w.gap(6)

	ex := result.ExecutiveSummary
	w.heading("7. Executive Summary")
	w.para(nlp.Truncate(nlp.Default(), ex.Overview, maxOverviewRunes))
	w.boldLine("Key obligations:")
	obligations := ex.KeyObligations
	if len(obligations) > maxObligationRows {
		obligations = obligations[:maxObligationRows]
	}
	for _, ob := range obligations {
		w.bullet(clip(ob, 200))
	}
	w.boldLine("Biggest risks:")
	risks := ex.BiggestRisks
	if len(risks) > maxRiskBullets {
		risks = risks[:maxRiskBullets]
	}
	for _, r := range risks {
		w.bullet(clip(r, 200))
	}
	w.boldLine("What to negotiate:")
	negotiate := ex.Negotiate
	if len(negotiate) > maxNegotiateRows {
		negotiate = negotiate[:maxNegotiateRows]
	}
	for _, n := range negotiate {
		w.bullet(clip(n, 200))
	}
	w.gap(6)

	bp := result.BestPractices
	w.heading("8. SME Best Practices")
	recs := bp.Recommendations
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	for _, rec := range recs {
		w.bullet(rec)
	}
	adds := bp.ClausesToAdd
	if len(adds) > maxClausesToAdd {
		adds = adds[:maxClausesToAdd]
	}
	for _, cl := range adds {
		w.bullet(cl)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// reportWriter wraps fpdf with the report's handful of text styles. tr
// maps UTF-8 to the core-font codepage so dashes and rupee amounts
// render instead of vanishing.
type reportWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *reportWriter) heading(text string) {
	w.pdf.SetFont("Helvetica", "B", 16)
	w.pdf.MultiCell(0, 8, w.tr(text), "", "L", false)
	w.pdf.Ln(4)
}

func (w *reportWriter) para(text string) {
	w.pdf.SetFont("Helvetica", "", 11)
	w.pdf.MultiCell(0, 5.5, w.tr(text), "", "L", false)
	w.pdf.Ln(2)
}

func (w *reportWriter) boldLine(text string) {
	w.pdf.SetFont("Helvetica", "B", 11)
	w.pdf.MultiCell(0, 5.5, w.tr(text), "", "L", false)
	w.pdf.Ln(2)
}

func (w *reportWriter) small(text string) {
	w.pdf.SetFont("Helvetica", "", 9)
	w.pdf.MultiCell(0, 4.5, w.tr(text), "", "L", false)
	w.pdf.Ln(1)
}

func (w *reportWriter) bullet(text string) {
	w.para("• " + text)
}

func (w *reportWriter) labeled(label, text string) {
	w.pdf.SetFont("Helvetica", "B", 11)
	w.pdf.Write(5.5, w.tr(label+" "))
	w.pdf.SetFont("Helvetica", "", 11)
	w.pdf.Write(5.5, w.tr(text))
	w.pdf.Ln(7.5)
}

func (w *reportWriter) ambiguity(phrase, reason string) {
	w.pdf.SetFont("Helvetica", "I", 11)
	w.pdf.Write(5.5, "Ambiguity: ")
	w.pdf.SetFont("Helvetica", "", 11)
	w.pdf.Write(5.5, w.tr(fmt.Sprintf("\"%s\" — %s", phrase, reason)))
	w.pdf.Ln(7.5)
}

func (w *reportWriter) gap(h float64) {
	w.pdf.Ln(h)
}

// riskTable renders the clause risk grid with the original's column
// proportions (1.2in, 2in, 0.8in, 2in).
func (w *reportWriter) riskTable(rows []analysis.ClauseRisk) {
	colW := []float64{30.5, 50.8, 20.3, 50.8}

	w.pdf.SetFont("Helvetica", "B", 8)
	w.pdf.SetFillColor(128, 128, 128)
	w.pdf.SetTextColor(255, 255, 255)
	for i, h := range []string{"Clause", "Heading", "Risk", "Flags"} {
		w.pdf.CellFormat(colW[i], 6, h, "1", 0, "L", true, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		w.pdf.CellFormat(colW[0], 6, strconv.Itoa(row.ClauseNumber), "1", 0, "L", false, 0, "")
		w.pdf.CellFormat(colW[1], 6, w.tr(clip(row.Heading, 40)), "1", 0, "L", false, 0, "")
		w.pdf.CellFormat(colW[2], 6, row.RiskLevel.String(), "1", 0, "L", false, 0, "")
		w.pdf.CellFormat(colW[3], 6, w.tr(clip(strings.Join(row.Flags, ", "), 50)), "1", 0, "L", false, 0, "")
		w.pdf.Ln(-1)
	}
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func strOr(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}

func joinOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}
