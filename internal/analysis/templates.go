package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// ClauseTemplate is a short standard clause description used for
// keyword-overlap matching, not a legal template document.
type ClauseTemplate struct {
	ID       string `json:"id"`
	Heading  string `json:"heading"`
	Keywords string `json:"keywords"`
}

// StandardTemplates lists the reference clauses every analyzed clause is
// scored against.
var StandardTemplates = []ClauseTemplate{
	{ID: "term_notice", Heading: "Term and termination with notice", Keywords: "term, terminate, notice, days, renewal"},
	{ID: "limitation_liability", Heading: "Limitation of liability", Keywords: "liability, limited, cap, exclude, indirect"},
	{ID: "confidentiality", Heading: "Confidentiality", Keywords: "confidential, disclose, non-disclosure, information"},
	{ID: "ip_rights", Heading: "Intellectual property", Keywords: "intellectual property, assign, license, copyright"},
	{ID: "indemnity", Heading: "Indemnity", Keywords: "indemnify, indemnity, hold harmless, claims"},
	{ID: "payment", Heading: "Payment terms", Keywords: "payment, fee, invoice, due, days"},
	{ID: "governing_law", Heading: "Governing law and jurisdiction", Keywords: "governing law, jurisdiction, courts, dispute"},
	{ID: "arbitration", Heading: "Arbitration", Keywords: "arbitration, arbitrator, arbitral"},
	{ID: "scope_services", Heading: "Scope of services / deliverables", Keywords: "scope, services, deliverables, perform"},
	{ID: "warranty", Heading: "Warranty", Keywords: "warranty, represent, warrant"},
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// normalizeForSimilarity lowercases, strips punctuation and collapses
// whitespace. Hyphenated keywords split into separate words here.
func normalizeForSimilarity(s string) string {
	s = nonWordRe.ReplaceAllString(strings.ToLower(s), " ")
	return strings.Join(strings.Fields(s), " ")
}

const templateMatchThreshold = 0.2

// MatchTemplates scores a clause against the standard templates by keyword
// overlap: score = matched keywords / total keywords. Matches below 0.2
// are dropped; the rest are sorted by descending score (declaration order
// breaks ties) and capped at 5, each reporting up to 5 matched keywords.
func MatchTemplates(heading, body string) []TemplateMatch {
	combined := normalizeForSimilarity(heading + " " + body)
	if combined == "" {
		return []TemplateMatch{}
	}

	results := []TemplateMatch{}
	for _, t := range StandardTemplates {
		keywords := strings.Fields(normalizeForSimilarity(t.Keywords))
		var matched []string
		for _, k := range keywords {
			if strings.Contains(combined, k) {
				matched = append(matched, k)
			}
		}
		if len(matched) == 0 {
			continue
		}
		score := float64(len(matched)) / float64(len(keywords))
		if score < templateMatchThreshold {
			continue
		}
		if len(matched) > 5 {
			matched = matched[:5]
		}
		results = append(results, TemplateMatch{
			TemplateID:      t.ID,
			TemplateHeading: t.Heading,
			MatchScore:      math.Round(score*100) / 100,
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > 5 {
		results = results[:5]
	}
	return results
}
