package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packcheck/packcheck/internal/schema"
)

func findings(criticals, warnings, suggestions int) []schema.Finding {
	var fs []schema.Finding
	for i := 0; i < criticals; i++ {
		fs = append(fs, schema.Finding{Severity: schema.SeverityCritical})
	}
	for i := 0; i < warnings; i++ {
		fs = append(fs, schema.Finding{Severity: schema.SeverityWarning})
	}
	for i := 0; i < suggestions; i++ {
		fs = append(fs, schema.Finding{Severity: schema.SeveritySuggestion})
	}
	return fs
}

func TestScore(t *testing.T) {
	tests := []struct {
		name                             string
		criticals, warnings, suggestions int
		want                             int
	}{
		{"clean", 0, 0, 0, 100},
		{"one critical", 1, 0, 0, 80},
		{"one warning", 0, 1, 0, 90},
		{"one suggestion", 0, 0, 1, 95},
		{"mixed", 1, 2, 3, 45},
		{"clamped to zero", 4, 2, 1, 0},
		{"exactly zero", 5, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(findings(tt.criticals, tt.warnings, tt.suggestions))
			assert.Equal(t, tt.want, got)

			// score = max(0, 100 - 20c - 10w - 5s)
			expected := 100 - 20*tt.criticals - 10*tt.warnings - 5*tt.suggestions
			if expected < 0 {
				expected = 0
			}
			assert.Equal(t, expected, got)
		})
	}
}

func TestScoreIgnoresPassAndInfo(t *testing.T) {
	fs := []schema.Finding{
		{Severity: schema.SeverityPass},
		{Severity: schema.SeverityInfo},
		{Severity: schema.SeverityPass},
	}
	assert.Equal(t, 100, Score(fs))
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "A"}, {90, "A"},
		{89, "B"}, {80, "B"},
		{79, "C"}, {70, "C"},
		{69, "D"}, {60, "D"},
		{59, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %d", tt.score)
	}
}
