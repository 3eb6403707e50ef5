// Package score turns a finding sequence into a 0-100 quality score
// and a letter grade. Both are pure functions: recomputed from the
// findings every time, never cached.
package score

import "github.com/packcheck/packcheck/internal/schema"

// Deduction per scored severity.
const (
	criticalPenalty   = 20
	warningPenalty    = 10
	suggestionPenalty = 5
)

// Score starts at 100 and deducts per finding, clamped at 0.
// Pass and info findings never affect the score.
func Score(findings []schema.Finding) int {
	s := 100
	for _, f := range findings {
		switch f.Severity {
		case schema.SeverityCritical:
			s -= criticalPenalty
		case schema.SeverityWarning:
			s -= warningPenalty
		case schema.SeveritySuggestion:
			s -= suggestionPenalty
		}
	}
	if s < 0 {
		return 0
	}
	return s
}

// Grade maps a score to a letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
