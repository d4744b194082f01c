package analysis

import (
	"regexp"
	"strings"
)

// Heading detection for the structural parser. Top-level headings are
// numbered lines ("1. ", "3) "), lower-case roman numeral runs ("ii. ",
// "x) "), or lines written entirely in capitals. Sub-level headings use
// dotted numbering ("1.1 ", "2.3.1 ").
var (
	topHeadingRe = regexp.MustCompile(`^(\d+)[\)\.]?\s+|^(i+|v+|x+)[\)\.]?\s+|^[A-Z][A-Z0-9\s\-,]{4,}$`)
	subHeadingRe = regexp.MustCompile(`^(\d+\.\d+(?:\.\d+)*)[\)\.]?\s+`)
)

// SplitIntoClauses segments contract text into ordered top-level clauses,
// one forward pass over non-empty lines. Dotted-numbered lines attach as
// sub-clauses of the open clause; plain lines accumulate into the body of
// the last open sub-clause, or of the clause itself. Body text appearing
// before any heading becomes a single "Preamble" clause.
func SplitIntoClauses(text string) []Clause {
	clauses := []Clause{}
	var current *Clause
	var subs []SubClause

	flush := func() {
		if current != nil {
			current.SubClauses = subs
			clauses = append(clauses, *current)
		}
		current = nil
		subs = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if current != nil && subHeadingRe.MatchString(line) {
			subs = append(subs, SubClause{Heading: line})
			continue
		}
		if topHeadingRe.MatchString(line) {
			flush()
			current = &Clause{Heading: line}
			continue
		}

		switch {
		case current == nil:
			// Body before any heading opens the preamble.
			current = &Clause{Heading: "Preamble", Body: line}
		case len(subs) > 0:
			last := &subs[len(subs)-1]
			if last.Body != "" {
				last.Body += "\n"
			}
			last.Body += line
		default:
			if current.Body != "" {
				current.Body += "\n"
			}
			current.Body += line
		}
	}
	flush()

	for i := range clauses {
		clauses[i].Number = i + 1
		if clauses[i].SubClauses == nil {
			clauses[i].SubClauses = []SubClause{}
		}
	}
	return clauses
}
