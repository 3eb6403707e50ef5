package schema

import "time"

// Severity classifies a single finding. The set is closed: the scorer
// and report renderer switch exhaustively over these values.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
	SeverityPass       Severity = "pass"
	SeverityInfo       Severity = "info"
)

// Scored reports whether a finding of this severity affects the score.
func (s Severity) Scored() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeveritySuggestion:
		return true
	}
	return false
}

// Category groups findings in the report. CategoryOrder fixes the
// section ordering; categories with no findings are omitted.
type Category string

const (
	CategoryNaming     Category = "naming"
	CategoryStructure  Category = "structure"
	CategoryMetadata   Category = "metadata"
	CategoryContent    Category = "content"
	CategoryReferences Category = "references"
	CategoryScripts    Category = "scripts"
	CategorySemantic   Category = "semantic"
)

var CategoryOrder = []Category{
	CategoryNaming,
	CategoryStructure,
	CategoryMetadata,
	CategoryContent,
	CategoryReferences,
	CategoryScripts,
	CategorySemantic,
}

// Finding is one normalized check outcome. Findings are append-only:
// the engine emits them in discovery order and nothing mutates them
// afterwards, which is what keeps repeated runs byte-stable.
type Finding struct {
	Category   Category `json:"category"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Details    string   `json:"details,omitempty"`
	LineRef    int      `json:"line_ref,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// RunResult groups everything produced by one validation run.
type RunResult struct {
	Pack            string    `json:"pack"`
	Path            string    `json:"path"`
	Timestamp       time.Time `json:"timestamp"`
	DurationSeconds float64   `json:"duration_seconds"`
	Findings        []Finding `json:"findings"`
}

// Counts holds per-severity totals for the scored severities.
type Counts struct {
	Critical    int `json:"critical"`
	Warnings    int `json:"warnings"`
	Suggestions int `json:"suggestions"`
}

func CountFindings(findings []Finding) Counts {
	var c Counts
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityWarning:
			c.Warnings++
		case SeveritySuggestion:
			c.Suggestions++
		}
	}
	return c
}

// Status is the overall run outcome derived from the finding set.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// OverallStatus is fail if any critical finding exists, warn if any
// warning exists, pass otherwise.
func OverallStatus(findings []Finding) Status {
	c := CountFindings(findings)
	switch {
	case c.Critical > 0:
		return StatusFail
	case c.Warnings > 0:
		return StatusWarn
	default:
		return StatusPass
	}
}
