// Package report renders the validation outcome: the markdown report,
// the machine-readable summary line, the semantic-analysis metadata
// export, and optional HTML/PDF renderings.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
	"github.com/packcheck/packcheck/internal/score"
)

// SummaryToken prefixes the machine-readable summary line.
const SummaryToken = "PACKCHECK_JSON"

// SemanticToken prefixes the semantic-export announcement line.
const SemanticToken = "PACKCHECK_SEMANTIC_METADATA"

// maxTopIssues bounds the issue lists in the machine summary and the
// warnings shown under priority recommendations.
const maxTopIssues = 5

// maxExportIssues bounds the finding list in the semantic export.
const maxExportIssues = 10

// maxBodyPreview bounds the body excerpt in the semantic export.
const maxBodyPreview = 2000

var categoryTitles = map[schema.Category]string{
	schema.CategoryNaming:     "1. Naming Convention",
	schema.CategoryStructure:  "2. Directory Structure",
	schema.CategoryMetadata:   "3. Metadata",
	schema.CategoryContent:    "4. Content Quality",
	schema.CategoryReferences: "5. References",
	schema.CategoryScripts:    "6. Scripts",
	schema.CategorySemantic:   "7. Semantic Analysis",
}

var severityIcons = map[schema.Severity]string{
	schema.SeverityCritical:   "❌",
	schema.SeverityWarning:    "⚠️",
	schema.SeveritySuggestion: "ℹ️",
	schema.SeverityPass:       "✅",
	schema.SeverityInfo:       "💡",
}

var statusIcons = map[schema.Status]string{
	schema.StatusPass: "✅",
	schema.StatusWarn: "⚠️",
	schema.StatusFail: "❌",
}

// StatusIcon returns the marker for an overall status.
func StatusIcon(s schema.Status) string { return statusIcons[s] }

// SeverityIcon returns the marker for a finding severity.
func SeverityIcon(s schema.Severity) string {
	if icon, ok := severityIcons[s]; ok {
		return icon
	}
	return "•"
}

// ---------- View model ----------

type sectionView struct {
	Title    string
	Findings []schema.Finding
}

type view struct {
	Pack        string
	Path        string
	Timestamp   string
	Duration    string
	Status      schema.Status
	StatusIcon  string
	Score       int
	Grade       string
	Counts      schema.Counts
	Sections    []sectionView
	Criticals   []schema.Finding
	TopWarnings []schema.Finding
	GeneratedAt string
	Year        int
}

// buildView groups findings by category in the fixed ordering and
// derives the score, grade, status, and priority lists. Categories
// with no findings are omitted, not zero-filled.
func buildView(res schema.RunResult) view {
	now := time.Now().UTC()

	byCategory := map[schema.Category][]schema.Finding{}
	for _, f := range res.Findings {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	var sections []sectionView
	for _, cat := range schema.CategoryOrder {
		findings, ok := byCategory[cat]
		if !ok {
			continue
		}
		sections = append(sections, sectionView{
			Title:    categoryTitles[cat],
			Findings: findings,
		})
	}

	var criticals, warnings []schema.Finding
	for _, f := range res.Findings {
		switch f.Severity {
		case schema.SeverityCritical:
			criticals = append(criticals, f)
		case schema.SeverityWarning:
			warnings = append(warnings, f)
		}
	}
	if len(warnings) > maxTopIssues {
		warnings = warnings[:maxTopIssues]
	}

	s := score.Score(res.Findings)
	status := schema.OverallStatus(res.Findings)

	return view{
		Pack:        res.Pack,
		Path:        res.Path,
		Timestamp:   res.Timestamp.Format("2006-01-02 15:04:05"),
		Duration:    fmt.Sprintf("%.2f seconds", res.DurationSeconds),
		Status:      status,
		StatusIcon:  statusIcons[status],
		Score:       s,
		Grade:       score.Grade(s),
		Counts:      schema.CountFindings(res.Findings),
		Sections:    sections,
		Criticals:   criticals,
		TopWarnings: warnings,
		GeneratedAt: now.Format(time.RFC3339),
		Year:        now.Year(),
	}
}

// ---------- Markdown ----------

// WriteMarkdown renders the full report and writes it to path,
// creating parent directories as needed.
func WriteMarkdown(res schema.RunResult, path string) error {
	vm := buildView(res)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("# Pack Validation Report: %s", vm.Pack)
	line("")
	line("**Date**: %s", vm.Timestamp)
	line("**Pack Path**: `%s`", vm.Path)
	line("**Duration**: %s", vm.Duration)
	line("")
	line("## Executive Summary")
	line("")
	line("| Metric | Value |")
	line("|--------|-------|")
	line("| **Overall Status** | %s %s |", vm.StatusIcon, strings.ToUpper(string(vm.Status)))
	line("| **Quality Score** | %d/100 (%s) |", vm.Score, vm.Grade)
	line("| **Critical Issues** | %d |", vm.Counts.Critical)
	line("| **Warnings** | %d |", vm.Counts.Warnings)
	line("| **Suggestions** | %d |", vm.Counts.Suggestions)
	line("")
	line("---")
	line("")

	for _, section := range vm.Sections {
		line("## %s", section.Title)
		line("")
		for _, f := range section.Findings {
			msg := f.Message
			if f.LineRef > 0 {
				msg = fmt.Sprintf("%s (line %d)", msg, f.LineRef)
			}
			line("%s **%s**: %s", SeverityIcon(f.Severity), title(string(f.Severity)), msg)
			if f.Details != "" {
				line("  <details><summary>Details</summary>")
				line("")
				line("  %s", f.Details)
				line("  </details>")
			}
			if f.Suggestion != "" {
				line("  💡 **Suggestion**: %s", f.Suggestion)
			}
			line("")
		}
		line("")
	}

	if len(vm.Criticals) > 0 || len(vm.TopWarnings) > 0 {
		line("## Priority Recommendations")
		line("")
		if len(vm.Criticals) > 0 {
			line("### Critical (Must Fix)")
			line("")
			for i, f := range vm.Criticals {
				line("%d. **%s**", i+1, f.Message)
				if f.Suggestion != "" {
					line("   - %s", f.Suggestion)
				}
				line("")
			}
		}
		if len(vm.TopWarnings) > 0 {
			line("### Warnings (Should Fix)")
			line("")
			for i, f := range vm.TopWarnings {
				line("%d. **%s**", i+1, f.Message)
				if f.Suggestion != "" {
					line("   - %s", f.Suggestion)
				}
				line("")
			}
		}
		line("")
	}

	line("## Conclusion")
	line("")
	switch vm.Status {
	case schema.StatusPass:
		line("✅ **The pack meets all quality standards and is ready for use.**")
	case schema.StatusWarn:
		line("⚠️ **The pack has warnings that should be addressed.**")
		line("")
		line("The pack is functional but would benefit from the suggested improvements.")
	default:
		line("❌ **The pack has critical issues that must be resolved.**")
		line("")
		line("Please fix all critical issues before publishing this pack.")
	}
	line("")
	line("---")
	line("")
	line("*Generated by packcheck*")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ---------- Machine summary ----------

type machineSummary struct {
	Status     schema.Status `json:"status"`
	Score      int           `json:"score"`
	Grade      string        `json:"grade"`
	ReportPath string        `json:"report_path"`
	Summary    schema.Counts `json:"summary"`
	TopIssues  []string      `json:"top_issues"`
}

// MachineSummary renders the single self-delimited summary line for
// downstream parsing.
func MachineSummary(res schema.RunResult, reportPath string) (string, error) {
	s := score.Score(res.Findings)

	topIssues := []string{}
	for _, f := range res.Findings {
		if f.Severity != schema.SeverityCritical && f.Severity != schema.SeverityWarning {
			continue
		}
		topIssues = append(topIssues, f.Message)
		if len(topIssues) == maxTopIssues {
			break
		}
	}

	payload := machineSummary{
		Status:     schema.OverallStatus(res.Findings),
		Score:      s,
		Grade:      score.Grade(s),
		ReportPath: reportPath,
		Summary:    schema.CountFindings(res.Findings),
		TopIssues:  topIssues,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode machine summary: %w", err)
	}
	return SummaryToken + "::" + string(data), nil
}

// ---------- Semantic export ----------

type exportIssue struct {
	Category   schema.Category `json:"category"`
	Status     schema.Severity `json:"status"`
	Message    string          `json:"message"`
	Details    string          `json:"details,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
}

type semanticExport struct {
	Pack              string            `json:"pack"`
	Path              string            `json:"path"`
	Metadata          map[string]string `json:"metadata"`
	BodyPreview       string            `json:"body_preview"`
	FullBodyPath      string            `json:"full_body_path"`
	StructuralResults struct {
		Critical    int           `json:"critical"`
		Warnings    int           `json:"warnings"`
		Suggestions int           `json:"suggestions"`
		Issues      []exportIssue `json:"issues"`
	} `json:"structural_results"`
	ReportPath string `json:"report_path"`
	Timestamp  string `json:"timestamp"`
}

// WriteSemanticExport emits the intermediate result set consumed by
// the optional downstream semantic analyzer.
func WriteSemanticExport(p *bundle.Pack, res schema.RunResult, reportPath, path string) error {
	metadata := map[string]string{}
	for _, field := range []string{"name", "description"} {
		if value := p.Field(field); value != "" {
			metadata[field] = value
		}
	}

	body := p.Body()
	if len(body) > maxBodyPreview {
		body = body[:maxBodyPreview]
	}

	issues := []exportIssue{}
	for _, f := range res.Findings {
		if !f.Severity.Scored() {
			continue
		}
		issues = append(issues, exportIssue{
			Category:   f.Category,
			Status:     f.Severity,
			Message:    f.Message,
			Details:    f.Details,
			Suggestion: f.Suggestion,
		})
		if len(issues) == maxExportIssues {
			break
		}
	}

	counts := schema.CountFindings(res.Findings)

	export := semanticExport{
		Pack:         res.Pack,
		Path:         res.Path,
		Metadata:     metadata,
		BodyPreview:  body,
		FullBodyPath: filepath.Join(p.Path, bundle.MetadataFile),
		ReportPath:   reportPath,
		Timestamp:    res.Timestamp.UTC().Format(time.RFC3339),
	}
	export.StructuralResults.Critical = counts.Critical
	export.StructuralResults.Warnings = counts.Warnings
	export.StructuralResults.Suggestions = counts.Suggestions
	export.StructuralResults.Issues = issues

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encode semantic export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write semantic export: %w", err)
	}
	return nil
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
