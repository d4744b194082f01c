package analysis

import (
	"regexp"
	"slices"
	"strings"
)

var (
	partyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)between\s+(.*?)(?:,|\sand\s|\n)`),
		regexp.MustCompile(`(?is)by and between\s+(.*?)(?:,|\sand\s|\n)`),
		regexp.MustCompile(`(?is)party\s+of\s+the\s+first\s+part\s+(.*?)(?:,|\n)`),
	}

	// Amounts like INR 1,00,000 or Rs. 50000.
	amountRe = regexp.MustCompile(`(?i)(?:INR|Rs\.?|Rupees)\s*[\.:]?\s*[0-9,]+(?:\.[0-9]{1,2})?`)

	numericDateRe = regexp.MustCompile(`(?i)\b\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}\b`)
	textualDateRe = regexp.MustCompile(`(?i)\b\d{1,2}\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`)

	governingLawRe = regexp.MustCompile(`(?i)laws of\s+([A-Za-z\s]+)`)
	durationRe     = regexp.MustCompile(`(?i)term\s+of\s+this\s+agreement\s+shall\s+be\s+([A-Za-z0-9\s]+?)(?:\.|\n)`)

	confidentialRe = regexp.MustCompile(`(?i)confidential`)
	ipRe           = regexp.MustCompile(`(?i)intellectual property|ip rights|copyright|trademark|patent`)
)

// ExtractEntities runs independent pattern scans over the whole document
// for parties, dates, amounts, jurisdiction, duration, termination phrases
// and presence flags. Scans do not interact.
func ExtractEntities(text string) EntityBundle {
	parties := []string{}
	for _, re := range partyPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if name != "" && len(name) < 200 && !slices.Contains(parties, name) {
				parties = append(parties, name)
			}
		}
	}

	amounts := amountRe.FindAllString(text, -1)
	if amounts == nil {
		amounts = []string{}
	}

	dates := numericDateRe.FindAllString(text, -1)
	if dates == nil {
		dates = []string{}
	}
	// The textual pattern reports only its capture group, the month name.
	for _, m := range textualDateRe.FindAllStringSubmatch(text, -1) {
		dates = append(dates, m[1])
	}

	var jurisdiction *string
	if m := governingLawRe.FindStringSubmatch(text); m != nil {
		s := strings.TrimSpace(m[1])
		jurisdiction = &s
	}

	var duration *string
	if m := durationRe.FindStringSubmatch(text); m != nil {
		s := strings.TrimSpace(m[1])
		duration = &s
	}

	return EntityBundle{
		Parties: parties,
		DatesAndDuration: DatesAndDuration{
			DatesRaw:     dates,
			DurationText: duration,
		},
		Financials: Financials{
			AmountMentions: amounts,
		},
		Jurisdiction:          jurisdiction,
		TerminationConditions: TerminationConditions(text),
		Flags: EntityFlags{
			ConfidentialityPresent: confidentialRe.MatchString(text),
			IPPresent:              ipRe.MatchString(text),
		},
	}
}
