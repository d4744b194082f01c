package analysis

// CompositeScore aggregates per-clause risk levels into a 0-100 contract
// score: weights LOW=1 MEDIUM=3 HIGH=6, averaged, scaled by 100/6 and
// truncated. A contract with no clauses scores 0.
func CompositeScore(levels []RiskLevel) int {
	if len(levels) == 0 {
		return 0
	}
	total := 0
	for _, l := range levels {
		total += l.weight()
	}
	avg := float64(total) / float64(len(levels))
	score := int(avg / 6.0 * 100)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Interpretation buckets a composite score into a qualitative verdict.
func Interpretation(score int) string {
	switch {
	case score <= 30:
		return "Safe"
	case score <= 60:
		return "Needs review"
	}
	return "High risk"
}
