package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
)

// tocScanLines is how far into a reference file the TOC lookup reads.
const tocScanLines = 20

// refLinkPattern matches inline links whose target is a markdown file.
var refLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+\.md)\)`)

func (e *Engine) checkReferences(ctx context.Context, p *bundle.Pack) []schema.Finding {
	if !p.HasReferences {
		return nil
	}

	refsDir := filepath.Join(p.Path, "references")
	entries, err := os.ReadDir(refsDir)
	if err != nil {
		return []schema.Finding{{
			Category: schema.CategoryReferences,
			Severity: schema.SeverityInfo,
			Message:  "references/ directory unreadable, skipping checks",
		}}
	}

	var findings []schema.Finding
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		findings = append(findings, e.checkReferenceTOC(refsDir, entry.Name())...)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		findings = append(findings, checkReferenceNesting(refsDir, entry.Name())...)
	}
	return findings
}

// checkReferenceTOC suggests a table of contents for long reference
// files whose first lines carry no "toc"/"contents" marker.
func (e *Engine) checkReferenceTOC(refsDir, name string) []schema.Finding {
	lines, err := readLines(filepath.Join(refsDir, name))
	if err != nil {
		return nil
	}
	if len(lines) <= e.limits.MaxReferenceLines {
		return nil
	}

	window := lines
	if len(window) > tocScanLines {
		window = window[:tocScanLines]
	}
	for _, line := range window {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "toc") || strings.Contains(lower, "contents") {
			return nil
		}
	}

	return []schema.Finding{{
		Category:   schema.CategoryReferences,
		Severity:   schema.SeveritySuggestion,
		Message:    fmt.Sprintf("%s: %d lines (no TOC)", name, len(lines)),
		Details:    fmt.Sprintf("Files >%d lines should have a table of contents", e.limits.MaxReferenceLines),
		Suggestion: "Add a table of contents to " + name,
	}}
}

// checkReferenceNesting warns when a reference links to another
// reference file: references stay one level deep from PACK.md. Only
// the first violation per file is reported.
func checkReferenceNesting(refsDir, name string) []schema.Finding {
	data, err := os.ReadFile(filepath.Join(refsDir, name))
	if err != nil {
		return nil
	}

	for _, m := range refLinkPattern.FindAllStringSubmatch(string(data), -1) {
		target := m[2]
		if strings.HasPrefix(target, "http") || strings.Contains(target, name) {
			continue
		}
		return []schema.Finding{{
			Category:   schema.CategoryReferences,
			Severity:   schema.SeverityWarning,
			Message:    fmt.Sprintf("%s links to another reference: %s", name, target),
			Details:    "References should only be one level deep from " + bundle.MetadataFile,
			Suggestion: "Move the linked content into " + bundle.MetadataFile + " or restructure",
		}}
	}
	return nil
}

// readLines counts physical lines the way an editor does: a trailing
// newline does not start a final empty line.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return nil, nil
	}
	return strings.Split(content, "\n"), nil
}
