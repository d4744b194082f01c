package analysis

import "strings"

// Per-flag remediation sentences, emitted in this fixed order regardless
// of flag insertion order. Flag-only markers (late payment interest,
// limitation of liability, confidentiality) carry no suggestion.
var flagSuggestions = []struct {
	flag   string
	advice string
}{
	{FlagLockIn, "Replace strict lock-in with the ability for either party to terminate for convenience with 30 days' notice and payment only for work actually done."},
	{FlagAutoRenewal, "Change auto-renewal to renewal only with written confirmation, or allow either party to opt out by giving prior written notice (for example, 30 days before renewal)."},
	{FlagIndemnity, "Limit indemnity to direct third-party claims caused by proven breach or gross negligence, and cap the indemnity amount to a reasonable multiple of the total fees paid."},
	{FlagUnlimitedLiability, "Cap total liability to 6–12 months of fees paid under the agreement, except for confidentiality breach and willful misconduct."},
	{FlagIPAssignment, "Clarify that only project-specific deliverables are assigned and the service provider keeps all tools, templates and background IP, while giving the client a license to use them as embedded in the deliverables."},
	{FlagNonCompete, "Narrow any non-compete or exclusivity to specific customers, products or territory, and limit the duration to a reasonable period (for example, 6–12 months)."},
	{FlagPenalties, "Replace strict penalties with reasonable, pre-agreed service credits or a capped amount, and ensure any liquidated damages reflect a genuine pre-estimate of loss."},
	{FlagUnilateralTermination, "Allow both parties to terminate for material breach (with a cure period) and for convenience with notice, rather than only one side having this right."},
	{FlagArbitration, "Ensure arbitration seat and governing law are in India (e.g. Indian Arbitration Act) and venue is practical for both parties; consider mutual consent for arbitrator appointment."},
}

// RenegotiationRationale accompanies every suggestion.
const RenegotiationRationale = "Reduces one-sided exposure and aligns with commonly negotiated positions for Indian SMEs."

// SuggestRenegotiation joins the remediation sentences for the given
// flags. Returns "" when no flag carries advice.
func SuggestRenegotiation(flags []string) string {
	if len(flags) == 0 {
		return ""
	}
	set := make(map[string]bool, len(flags))
	for _, f := range flags {
		set[f] = true
	}
	var parts []string
	for _, fs := range flagSuggestions {
		if set[fs.flag] {
			parts = append(parts, fs.advice)
		}
	}
	return strings.Join(parts, " ")
}
