package analysis

import (
	"encoding/json"
	"fmt"
)

// RiskLevel is an ordinal clause risk grade. Higher values are riskier.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	default:
		return "LOW"
	}
}

// Max returns the higher of the two levels. Escalation rules only ever
// raise a clause's level, never lower it.
func (r RiskLevel) Max(other RiskLevel) RiskLevel {
	if other > r {
		return other
	}
	return r
}

// weight maps a level onto the composite-score scale.
func (r RiskLevel) weight() int {
	switch r {
	case RiskMedium:
		return 3
	case RiskHigh:
		return 6
	default:
		return 1
	}
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RiskLevel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// ParseRiskLevel converts a wire string back into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLow, nil
	case "MEDIUM":
		return RiskMedium, nil
	case "HIGH":
		return RiskHigh, nil
	}
	return RiskLow, fmt.Errorf("unknown risk level: %q", s)
}

// Intent classifies a clause's legal function.
type Intent string

const (
	IntentObligation    Intent = "OBLIGATION"
	IntentRight         Intent = "RIGHT"
	IntentProhibition   Intent = "PROHIBITION"
	IntentConditional   Intent = "CONDITIONAL"
	IntentInformational Intent = "INFORMATIONAL"
)

// SubClause is a dotted-numbered item nested under a clause (e.g. 1.1, 2.3.1).
type SubClause struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Clause is one top-level unit of contract text. Numbers are assigned
// contiguously from 1 in document order.
type Clause struct {
	Number     int         `json:"clause_number"`
	Heading    string      `json:"heading"`
	Body       string      `json:"body"`
	SubClauses []SubClause `json:"sub_clauses"`
}

// Text returns heading and body joined for classification.
func (c Clause) Text() string {
	return trimJoined(c.Heading, c.Body)
}

// TypeAndOverview labels the document with a contract type and a one
// sentence rationale.
type TypeAndOverview struct {
	ContractType string `json:"contract_type"`
	Explanation  string `json:"explanation"`
}

// ClauseExtraction holds the segmented document structure.
type ClauseExtraction struct {
	Clauses []Clause `json:"clauses"`
}

// DatesAndDuration groups raw date mentions with the detected term length.
type DatesAndDuration struct {
	DatesRaw     []string `json:"dates_raw"`
	DurationText *string  `json:"duration_text"`
}

// Financials lists raw monetary mentions.
type Financials struct {
	AmountMentions []string `json:"amounts_mentions"`
}

// EntityFlags records whole-document presence checks.
type EntityFlags struct {
	ConfidentialityPresent bool `json:"confidentiality_clause_present"`
	IPPresent              bool `json:"ip_clause_present"`
}

// EntityBundle is the document-level extraction output.
type EntityBundle struct {
	Parties               []string         `json:"parties"`
	DatesAndDuration      DatesAndDuration `json:"dates_and_duration"`
	Financials            Financials       `json:"financials"`
	Jurisdiction          *string          `json:"jurisdiction_or_governing_law"`
	TerminationConditions []string         `json:"termination_conditions"`
	Flags                 EntityFlags      `json:"flags"`
}

// TemplateMatch scores a clause against one standard clause template.
type TemplateMatch struct {
	TemplateID      string   `json:"template_id"`
	TemplateHeading string   `json:"template_heading"`
	MatchScore      float64  `json:"match_score"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// ClauseExplanation is one row of the clause-by-clause table.
type ClauseExplanation struct {
	ClauseNumber      int             `json:"clause_number"`
	Heading           string          `json:"heading"`
	Intent            Intent          `json:"intent"`
	BusinessImpact    string          `json:"business_impact"`
	TextPreview       string          `json:"text_preview"`
	TemplateMatches   []TemplateMatch `json:"template_matches"`
	PlainLanguageNote string          `json:"plain_language_note,omitempty"`
}

// ClauseRisk is one row of the risk table.
type ClauseRisk struct {
	ClauseNumber int       `json:"clause_number"`
	Heading      string    `json:"heading"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Flags        []string  `json:"flags"`
}

// FairnessFlag marks a clause that carries at least one risk flag.
type FairnessFlag struct {
	ClauseNumber int      `json:"clause_number"`
	Heading      string   `json:"heading"`
	OneSided     bool     `json:"one_sided_or_risky_for_sme"`
	Flags        []string `json:"flags"`
}

// AmbiguityFlag is a vague-language finding.
type AmbiguityFlag struct {
	Phrase string `json:"phrase"`
	Reason string `json:"reason"`
}

// RiskAnalysis groups the per-clause risk table with fairness and
// ambiguity findings.
type RiskAnalysis struct {
	ClauseRiskTable []ClauseRisk    `json:"clause_risk_table"`
	FairnessFlags   []FairnessFlag  `json:"fairness_and_sme_flags"`
	AmbiguityFlags  []AmbiguityFlag `json:"ambiguity_flags"`
}

// Renegotiation is a concrete redrafting suggestion for one clause.
type Renegotiation struct {
	ClauseNumber    int       `json:"clause_number"`
	Heading         string    `json:"heading"`
	RiskLevel       RiskLevel `json:"risk_level"`
	SuggestedChange string    `json:"suggested_change"`
	WhyItHelps      string    `json:"why_it_helps"`
}

// RiskScoreSummary is the contract-level aggregate.
type RiskScoreSummary struct {
	CompositeScore int    `json:"composite_risk_score_0_to_100"`
	Interpretation string `json:"interpretation"`
}

// ExecutiveSummary is the plain-language business summary.
type ExecutiveSummary struct {
	Overview       string   `json:"overview"`
	KeyObligations []string `json:"key_obligations_to_note"`
	BiggestRisks   []string `json:"biggest_risks_in_simple_terms"`
	Negotiate      []string `json:"what_to_negotiate_before_signing"`
}

// BestPractices is fixed SME guidance attached to every result.
type BestPractices struct {
	Recommendations []string `json:"recommendations"`
	ClausesToAdd    []string `json:"clauses_to_add_or_strengthen"`
}

// AuditMeta records scope and caller-supplied context.
type AuditMeta struct {
	JurisdictionScope string  `json:"jurisdiction_scope"`
	BusinessRoleInput *string `json:"business_role_input"`
}

// AuditLog is the per-analysis trail of pipeline actions.
type AuditLog struct {
	TimestampUTC     string         `json:"timestamp_utc"`
	Actions          []string       `json:"actions"`
	RiskFlagsSummary []FairnessFlag `json:"risk_flags_summary"`
	Meta             AuditMeta      `json:"meta"`
}

// Result is the full analysis record. The ten numbered keys are a fixed
// contract consumed by report renderers and frontends; field order here
// controls JSON key order.
type Result struct {
	TypeAndOverview    TypeAndOverview     `json:"1_contract_type_and_overview"`
	Structure          ClauseExtraction    `json:"2_structured_clause_extraction_json"`
	Entities           EntityBundle        `json:"3_entity_and_attribute_extraction"`
	ClauseExplanations []ClauseExplanation `json:"4_clause_by_clause_explanation_table"`
	RiskAnalysis       RiskAnalysis        `json:"5_risk_analysis_and_flags"`
	Renegotiations     []Renegotiation     `json:"6_renegotiation_suggestions"`
	RiskScore          RiskScoreSummary    `json:"7_contract_risk_score_summary"`
	ExecutiveSummary   ExecutiveSummary    `json:"8_executive_business_summary"`
	BestPractices      BestPractices       `json:"9_sme_template_and_best_practices"`
	AuditLog           AuditLog            `json:"10_audit_log"`
}
