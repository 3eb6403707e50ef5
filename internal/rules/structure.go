package rules

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
)

// housekeepingPrefixes mark top-level files that do not belong in a
// pack. Matched case-insensitively against the file name prefix.
var housekeepingPrefixes = []string{
	"readme",
	"changelog",
	"install",
	"license",
	"contributing",
	"authors",
	"upgrade",
}

func (e *Engine) checkStructure(ctx context.Context, p *bundle.Pack) []schema.Finding {
	if !p.HasMetadataFile() {
		return []schema.Finding{{
			Category:   schema.CategoryStructure,
			Severity:   schema.SeverityCritical,
			Message:    bundle.MetadataFile + " not found",
			Details:    "Required file for all packs",
			Suggestion: "Create " + bundle.MetadataFile + " with a metadata block",
		}}
	}

	var findings []schema.Finding

	if unnecessary := housekeepingFiles(p.Path); len(unnecessary) > 0 {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryStructure,
			Severity:   schema.SeverityWarning,
			Message:    "unnecessary files found: " + strings.Join(unnecessary, ", "),
			Details:    "Packs should only contain " + bundle.MetadataFile + " and bundled resources",
			Suggestion: "Delete README.md, CHANGELOG.md, etc.",
		})
	}

	var dirs []string
	if p.HasScripts {
		dirs = append(dirs, "scripts/")
	}
	if p.HasReferences {
		dirs = append(dirs, "references/")
	}
	if p.HasAssets {
		dirs = append(dirs, "assets/")
	}
	if len(dirs) > 0 {
		findings = append(findings, schema.Finding{
			Category: schema.CategoryStructure,
			Severity: schema.SeverityInfo,
			Message:  fmt.Sprintf("resource directories: %s", strings.Join(dirs, ", ")),
		})
	}

	return findings
}

func housekeepingFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var matched []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == bundle.MetadataFile {
			continue
		}
		lower := strings.ToLower(entry.Name())
		for _, prefix := range housekeepingPrefixes {
			if strings.HasPrefix(lower, prefix) {
				matched = append(matched, entry.Name())
				break
			}
		}
	}
	return matched
}
