// Package analysis implements the contract review pipeline: clause
// segmentation, entity extraction, intent and risk classification,
// composite scoring and renegotiation suggestions. Everything here is
// keyword and pattern heuristics over lowercased text; no statutes, no
// semantic models.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Translator renders contract text in English before analysis.
type Translator interface {
	Translate(ctx context.Context, text, language string) (string, error)
}

// PassthroughTranslator returns input unchanged. It is the default when
// no translation backend is configured.
type PassthroughTranslator struct{}

func (PassthroughTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}

// Enhancer produces an optional one-sentence plain-language note for a
// clause explanation row.
type Enhancer interface {
	EnhanceClause(ctx context.Context, heading, excerpt string, intent Intent, businessRole string) (string, error)
}

// Analyzer runs the full pipeline. Each Analyze call owns its working
// state, so concurrent calls are independent.
type Analyzer struct {
	translator Translator
	enhancer   Enhancer
	log        *slog.Logger

	maxConcurrentEnhance int
}

// New builds an Analyzer. A nil translator falls back to passthrough and
// a nil enhancer disables plain-language notes.
func New(translator Translator, enhancer Enhancer, log *slog.Logger) *Analyzer {
	if translator == nil {
		translator = PassthroughTranslator{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		translator:           translator,
		enhancer:             enhancer,
		log:                  log,
		maxConcurrentEnhance: 4,
	}
}

// JurisdictionScope describes the advisory scope recorded in audit logs.
const JurisdictionScope = "India (generic contractual practice, no statutes)"

// Pipeline stage names recorded in every audit log.
var auditActions = []string{
	"received_input",
	"normalized_language",
	"classified_contract_type",
	"parsed_structure",
	"extracted_entities",
	"ambiguity_detection",
	"clause_template_matching",
	"classified_clause_intents",
	"assigned_clause_risks",
	"generated_renegotiation_suggestions",
	"computed_contract_level_risk_score",
	"generated_executive_summary",
	"compiled_best_practices",
}

// Analyze runs the pipeline over raw contract text and assembles the
// ten-section result. It is total over its input: empty text yields an
// empty but well-formed result rather than an error.
func (a *Analyzer) Analyze(ctx context.Context, text, language, businessRole string) *Result {
	normalized := a.normalizeLanguage(ctx, text, language)

	contractType, typeExplanation := DetectContractType(normalized)
	clauses := SplitIntoClauses(normalized)
	entities := ExtractEntities(normalized)
	ambiguities := DetectAmbiguity(normalized)

	explanations := make([]ClauseExplanation, 0, len(clauses))
	riskTable := make([]ClauseRisk, 0, len(clauses))
	levels := make([]RiskLevel, 0, len(clauses))

	for _, c := range clauses {
		fullText := c.Text()
		intent := ClassifyIntent(fullText)
		level, flags := AssessClauseRisk(fullText, intent)
		levels = append(levels, level)

		explanations = append(explanations, ClauseExplanation{
			ClauseNumber:    c.Number,
			Heading:         c.Heading,
			Intent:          intent,
			BusinessImpact:  BusinessImpact(intent),
			TextPreview:     truncateRunes(fullText, 500),
			TemplateMatches: MatchTemplates(c.Heading, c.Body),
		})
		riskTable = append(riskTable, ClauseRisk{
			ClauseNumber: c.Number,
			Heading:      c.Heading,
			RiskLevel:    level,
			Flags:        flags,
		})
	}

	if a.enhancer != nil {
		a.enhanceExplanations(ctx, clauses, explanations, businessRole)
	}

	renegotiations := []Renegotiation{}
	fairness := []FairnessFlag{}
	for _, row := range riskTable {
		if row.RiskLevel >= RiskMedium {
			if suggestion := SuggestRenegotiation(row.Flags); suggestion != "" {
				renegotiations = append(renegotiations, Renegotiation{
					ClauseNumber:    row.ClauseNumber,
					Heading:         row.Heading,
					RiskLevel:       row.RiskLevel,
					SuggestedChange: suggestion,
					WhyItHelps:      RenegotiationRationale,
				})
			}
		}
		if len(row.Flags) > 0 {
			fairness = append(fairness, FairnessFlag{
				ClauseNumber: row.ClauseNumber,
				Heading:      row.Heading,
				OneSided:     true,
				Flags:        row.Flags,
			})
		}
	}

	score := CompositeScore(levels)

	biggestRisks := []string{}
	for _, row := range riskTable {
		if row.RiskLevel == RiskHigh {
			summary := strings.Join(row.Flags, ", ")
			if summary == "" {
				summary = "general exposure"
			}
			biggestRisks = append(biggestRisks,
				fmt.Sprintf("Clause %d ('%s') has high risk indicators: %s.", row.ClauseNumber, row.Heading, summary))
		}
	}

	keyObligations := []string{}
	for _, e := range explanations {
		if e.Intent == IntentObligation || e.Intent == IntentProhibition {
			keyObligations = append(keyObligations,
				fmt.Sprintf("Clause %d ('%s') defines obligations or important actions.", e.ClauseNumber, e.Heading))
		}
	}
	if len(keyObligations) > 10 {
		keyObligations = keyObligations[:10]
	}

	negotiate := []string{}
	for _, r := range renegotiations {
		negotiate = append(negotiate, r.SuggestedChange)
	}
	if len(negotiate) > 10 {
		negotiate = negotiate[:10]
	}

	var rolePtr *string
	if businessRole != "" {
		role := businessRole
		rolePtr = &role
	}

	actions := make([]string, len(auditActions))
	copy(actions, auditActions)

	return &Result{
		TypeAndOverview: TypeAndOverview{
			ContractType: contractType,
			Explanation:  typeExplanation,
		},
		Structure:          ClauseExtraction{Clauses: clauses},
		Entities:           entities,
		ClauseExplanations: explanations,
		RiskAnalysis: RiskAnalysis{
			ClauseRiskTable: riskTable,
			FairnessFlags:   fairness,
			AmbiguityFlags:  ambiguities,
		},
		Renegotiations: renegotiations,
		RiskScore: RiskScoreSummary{
			CompositeScore: score,
			Interpretation: Interpretation(score),
		},
		ExecutiveSummary: ExecutiveSummary{
			Overview: fmt.Sprintf(
				"This appears to be a %s drafted in an Indian business context. "+
					"The analysis focuses on commercial balance, lock-ins, indemnity, IP, termination, "+
					"and other points that matter to SMEs, without using any specific legal statutes.",
				contractType),
			KeyObligations: keyObligations,
			BiggestRisks:   biggestRisks,
			Negotiate:      negotiate,
		},
		BestPractices: BestPractices{
			Recommendations: []string{
				"Ensure mutual termination rights with reasonable notice (for example, 30 days) instead of strict lock-ins.",
				"Cap total liability to a multiple of the annual contract value, with limited exceptions.",
				"Avoid very broad IP assignments; prefer assignment of project-specific deliverables and retention of tools and background IP.",
				"Tighten any non-compete or exclusivity clauses to specific customers, products, or territories and limit duration.",
				"Replace heavy penalties with realistic service credits or capped liquidated damages.",
				"Clearly document payment terms, late payment interest, and milestone acceptance in simple language.",
			},
			ClausesToAdd: []string{
				"Mutual limitation of liability with a clear cap.",
				"Mutual confidentiality obligations with reasonable exclusions.",
				"Mutual termination for convenience and for material breach with cure period.",
				"Dispute resolution clause with Indian governing law and a practical city jurisdiction.",
			},
		},
		AuditLog: AuditLog{
			TimestampUTC:     time.Now().UTC().Format("2006-01-02T15:04:05.000000Z07:00"),
			Actions:          actions,
			RiskFlagsSummary: fairness,
			Meta: AuditMeta{
				JurisdictionScope: JurisdictionScope,
				BusinessRoleInput: rolePtr,
			},
		},
	}
}

// normalizeLanguage hands non-English text to the translator. The
// original text is kept whenever translation fails or returns nothing.
func (a *Analyzer) normalizeLanguage(ctx context.Context, text, language string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" || lang == "english" || lang == "en" {
		return text
	}
	translated, err := a.translator.Translate(ctx, text, language)
	if err != nil {
		a.log.Warn("translation failed, analyzing original text", "language", language, "error", err)
		return text
	}
	if strings.TrimSpace(translated) == "" {
		return text
	}
	return translated
}

// enhanceExplanations fills plain-language notes with bounded concurrency.
// Each goroutine writes a distinct row, so no locking is needed. Failures
// leave the note empty.
func (a *Analyzer) enhanceExplanations(ctx context.Context, clauses []Clause, explanations []ClauseExplanation, businessRole string) {
	sem := make(chan struct{}, a.maxConcurrentEnhance)
	results := make(chan struct{}, len(explanations))

	for i := range explanations {
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem }()
			excerpt := truncateRunes(clauses[i].Text(), 800)
			note, err := a.enhancer.EnhanceClause(ctx, clauses[i].Heading, excerpt, explanations[i].Intent, businessRole)
			if err != nil {
				a.log.Warn("clause enhancement failed", "clause", explanations[i].ClauseNumber, "error", err)
			} else {
				explanations[i].PlainLanguageNote = note
			}
			results <- struct{}{}
		}(i)
	}
	for range explanations {
		<-results
	}
}

func trimJoined(heading, body string) string {
	return strings.TrimSpace(heading + "\n" + body)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
