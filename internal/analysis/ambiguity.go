package analysis

import (
	"regexp"
	"strings"
)

// Ambiguity pattern families, applied to lowercased text in this order.
var (
	vagueTimeRe  = regexp.MustCompile(`\b(reasonable|appropriate|timely|as soon as practicable|forthwith)\s+(time|period|notice|manner)\b`)
	effortsRe    = regexp.MustCompile(`\b(reasonable|best)\s+efforts?\b`)
	thresholdRe  = regexp.MustCompile(`\b(material|substantial|significant)\s+(breach|default|change|delay)\b`)
	pronounRefRe = regexp.MustCompile(`\b(it|this|that|such)\s+(shall|will|may)\b`)
)

const maxAmbiguityFindings = 15

// DetectAmbiguity scans the full text for vague or multi-reading phrasing.
// Each finding pairs the matched phrase with a fixed reason. Findings are
// ordered by pattern family, then occurrence, and capped at 15.
func DetectAmbiguity(text string) []AmbiguityFlag {
	findings := []AmbiguityFlag{}
	lower := strings.ToLower(text)

	for _, m := range vagueTimeRe.FindAllString(lower, -1) {
		findings = append(findings, AmbiguityFlag{
			Phrase: m,
			Reason: "Vague time or standard; 'reasonable' or 'appropriate' may be interpreted differently.",
		})
	}
	for _, m := range effortsRe.FindAllString(lower, -1) {
		findings = append(findings, AmbiguityFlag{
			Phrase: m,
			Reason: "Obligation level unclear; 'reasonable efforts' vs 'best efforts' have different legal weight.",
		})
	}
	for _, m := range thresholdRe.FindAllString(lower, -1) {
		findings = append(findings, AmbiguityFlag{
			Phrase: m,
			Reason: "Threshold not defined; 'material' or 'substantial' is subjective without a definition.",
		})
	}
	if strings.Contains(lower, "including but not limited to") || strings.Contains(lower, "including without limitation") {
		findings = append(findings, AmbiguityFlag{
			Phrase: "including but not limited to / including without limitation",
			Reason: "Scope may be broader than expected; list is non-exhaustive.",
		})
	}
	if strings.Contains(lower, "and/or") {
		findings = append(findings, AmbiguityFlag{
			Phrase: "and/or",
			Reason: "Ambiguous whether one or both apply; can cause dispute.",
		})
	}
	if pronounRefRe.MatchString(lower) {
		findings = append(findings, AmbiguityFlag{
			Phrase: "it/this/that + shall/will/may",
			Reason: "Reference may be unclear; which obligation is referred to?",
		})
	}

	if len(findings) > maxAmbiguityFindings {
		findings = findings[:maxAmbiguityFindings]
	}
	return findings
}

var terminationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`terminat(?:e|ion)\s+(?:for\s+cause|without\s+cause|for\s+convenience|upon\s+\d+\s+days?\s+notice)`),
	regexp.MustCompile(`(\d+)\s+days?\s+(?:prior\s+)?written\s+notice`),
	regexp.MustCompile(`material\s+breach(?:\s+and\s+(?:failure\s+to\s+)?cure)?`),
	regexp.MustCompile(`either\s+party\s+may\s+terminate`),
}

// TerminationConditions pulls termination-related phrases out of the text,
// deduplicated in first-occurrence order and capped at 10.
func TerminationConditions(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	seen := map[string]bool{}
	for _, re := range terminationPatterns {
		for _, m := range re.FindAllString(lower, -1) {
			m = strings.TrimSpace(m)
			if !seen[m] {
				seen[m] = true
				found = append(found, m)
			}
		}
	}
	if len(found) > 10 {
		found = found[:10]
	}
	return found
}
