package rules

import (
	"context"
	"fmt"
	"regexp"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
)

// namePattern is the allowed pack identifier format.
var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func (e *Engine) checkNaming(ctx context.Context, p *bundle.Pack) []schema.Finding {
	var findings []schema.Finding

	if !namePattern.MatchString(p.Name) {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryNaming,
			Severity:   schema.SeverityWarning,
			Message:    fmt.Sprintf("pack name '%s' contains invalid characters", p.Name),
			Details:    "Use only lowercase letters, digits, and hyphens",
			Suggestion: "Rename directory to match format: my-pack-name",
		})
	}

	if len(p.Name) > e.limits.MaxNameLength {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryNaming,
			Severity:   schema.SeverityWarning,
			Message:    fmt.Sprintf("pack name is %d chars (max %d)", len(p.Name), e.limits.MaxNameLength),
			Suggestion: "Shorten the pack name",
		})
	}

	// Downstream tooling resolves packs by directory name, so a
	// declared name that disagrees with it is the most serious
	// naming defect.
	if p.HasMetadataFile() {
		if metaName := p.Field("name"); metaName != "" && metaName != p.Name {
			findings = append(findings, schema.Finding{
				Category:   schema.CategoryNaming,
				Severity:   schema.SeverityCritical,
				Message:    fmt.Sprintf("directory name '%s' doesn't match declared name '%s'", p.Name, metaName),
				Details:    "Directory name must exactly match the 'name' metadata field",
				Suggestion: fmt.Sprintf("Rename directory to '%s'", metaName),
			})
		}
	}

	return findings
}
