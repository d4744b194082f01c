package analysis

import "strings"

// Risk flags attached to clauses by AssessClauseRisk, in check order.
const (
	FlagLockIn                = "lock_in_or_non_cancellable"
	FlagAutoRenewal           = "auto_renewal"
	FlagIndemnity             = "indemnity"
	FlagUnlimitedLiability    = "unlimited_liability"
	FlagLimitationOfLiability = "limitation_of_liability"
	FlagIPAssignment          = "ip_assignment"
	FlagNonCompete            = "non_compete_or_exclusivity"
	FlagPenalties             = "penalties_or_liquidated_damages"
	FlagLatePaymentInterest   = "late_payment_interest"
	FlagUnilateralTermination = "unilateral_termination"
	FlagConfidentiality       = "confidentiality"
	FlagArbitration           = "arbitration_and_jurisdiction"
)

// AssessClauseRisk grades one clause from LOW upward and collects the
// flags that fired. Every rule may only raise the level via Max, so rule
// order affects flag order but never the final grade.
func AssessClauseRisk(text string, intent Intent) (RiskLevel, []string) {
	lower := strings.ToLower(text)
	flags := []string{}
	risk := RiskLow

	has := func(sub string) bool { return strings.Contains(lower, sub) }

	// Termination / lock-in.
	if has("lock-in") || has("lock in") || has("non-cancellable") {
		risk = RiskHigh
		flags = append(flags, FlagLockIn)
	}
	if has("auto-renew") || has("automatically renew") {
		risk = risk.Max(RiskMedium)
		flags = append(flags, FlagAutoRenewal)
	}

	// Indemnity; open-ended wording escalates further.
	if has("indemnify") || has("indemnity") {
		flags = append(flags, FlagIndemnity)
		if has("unlimited") || has("all claims") {
			risk = RiskHigh
		} else {
			risk = risk.Max(RiskMedium)
		}
	}

	// Liability.
	if has("unlimited liability") || has("without any limitation") {
		flags = append(flags, FlagUnlimitedLiability)
		risk = RiskHigh
	}
	if has("limitation of liability") || has("liability shall be limited") {
		flags = append(flags, FlagLimitationOfLiability)
	}

	// IP transfer / broad license.
	if has("assign all intellectual property") || (has("hereby assigns") && has("intellectual property")) {
		flags = append(flags, FlagIPAssignment)
		risk = risk.Max(RiskMedium)
	}

	// Non-compete / exclusivity.
	if has("non-compete") || has("non compete") || (has("exclusive") && has("territory")) {
		flags = append(flags, FlagNonCompete)
		risk = risk.Max(RiskMedium)
	}

	// Payment penalties. "fine" is a bare substring check and also hits
	// words like "defined".
	if has("penalty") || has("liquidated damages") || has("fine") {
		flags = append(flags, FlagPenalties)
		risk = risk.Max(RiskMedium)
	}
	if has("interest") && has("late payment") {
		flags = append(flags, FlagLatePaymentInterest)
	}

	// One-sided termination.
	if has("may terminate") && !has("other party may not") {
		flags = append(flags, FlagUnilateralTermination)
		risk = risk.Max(RiskMedium)
	}

	// Confidentiality / data.
	if has("confidential") || has("non-disclosure") {
		flags = append(flags, FlagConfidentiality)
	}

	// Arbitration and jurisdiction.
	if has("arbitration") || has("arbitral") || has("arbitrator") {
		flags = append(flags, FlagArbitration)
		risk = risk.Max(RiskMedium)
	}

	// Prohibitions carry at least MEDIUM.
	if intent == IntentProhibition && risk == RiskLow {
		risk = RiskMedium
	}

	return risk, flags
}
