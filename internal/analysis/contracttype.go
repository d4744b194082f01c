package analysis

import "strings"

// typeRule is one contract-type keyword group. Groups are evaluated in
// declaration order and the first hit wins.
type typeRule struct {
	keywords    []string
	label       string
	explanation string
}

var typeRules = []typeRule{
	{
		keywords:    []string{"non-disclosure", "confidentiality agreement", "nondisclosure", "nda"},
		label:       "NDA / Confidentiality Agreement",
		explanation: "Mentions non-disclosure / confidentiality obligations typical of NDAs.",
	},
	{
		keywords:    []string{"employment", "employee", "employer", "salary", "ctc"},
		label:       "Employment Agreement",
		explanation: "Contains terms about employment, employer-employee relationship or salary.",
	},
	{
		keywords:    []string{"lease", "rental", "rent", "licence to use premises"},
		label:       "Lease / Rental Agreement",
		explanation: "Refers to lease or rental of premises/property.",
	},
	{
		keywords:    []string{"partner", "partnership deed", "profit sharing"},
		label:       "Partnership Deed",
		explanation: "Talks about partners and profit sharing like a partnership.",
	},
	{
		keywords:    []string{"supplier", "purchase order", "supply of goods", "buyer", "vendor"},
		label:       "Vendor / Supplier Contract",
		explanation: "Talks about supply of goods, vendors or purchase orders.",
	},
	{
		keywords:    []string{"services", "service provider", "consultant", "consultancy", "agency"},
		label:       "Service Agreement",
		explanation: "Describes one party providing services to another.",
	},
}

// DetectContractType classifies the document by scanning lowercased text
// for the keyword groups above. Returns the type label and a one-sentence
// rationale.
func DetectContractType(text string) (string, string) {
	lower := strings.ToLower(text)
	for _, rule := range typeRules {
		for _, k := range rule.keywords {
			if strings.Contains(lower, k) {
				return rule.label, rule.explanation
			}
		}
	}
	return "Mixed / Hybrid Contract", "No single dominant type detected; appears to mix multiple elements."
}
