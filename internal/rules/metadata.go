package rules

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
)

// requiredFields is the complete allowed field set: anything else in
// the metadata block is an extra field.
var requiredFields = []string{"name", "description"}

// triggerKeywords are the words a description must contain at least
// one of to communicate when the pack applies.
var triggerKeywords = []string{"when", "use", "trigger", "scenario", "context"}

func (e *Engine) checkMetadata(ctx context.Context, p *bundle.Pack) []schema.Finding {
	if !p.HasMetadataBlock() {
		return []schema.Finding{{
			Category:   schema.CategoryMetadata,
			Severity:   schema.SeverityCritical,
			Message:    "no metadata block found",
			Details:    bundle.MetadataFile + " must start with --- delimiters",
			Suggestion: "Add a metadata block:\n---\nname: my-pack\ndescription: ...\n---",
		}}
	}

	var findings []schema.Finding

	// Extra fields are a warning while missing required fields are
	// critical: an intentional asymmetry, do not unify.
	if extra := extraFields(p); len(extra) > 0 {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryMetadata,
			Severity:   schema.SeverityWarning,
			Message:    "extra metadata fields found: " + strings.Join(extra, ", "),
			Details:    "Only 'name' and 'description' are allowed",
			Suggestion: "Remove extra fields (keep only name and description)",
		})
	}

	for _, field := range requiredFields {
		if p.Field(field) == "" {
			findings = append(findings, schema.Finding{
				Category:   schema.CategoryMetadata,
				Severity:   schema.SeverityCritical,
				Message:    "missing required field: " + field,
				Details:    fmt.Sprintf("Add '%s: <value>' to the metadata block", field),
				Suggestion: fmt.Sprintf("Add '%s' field to the metadata block", field),
			})
		}
	}

	if description := p.Field("description"); description != "" {
		findings = append(findings, e.checkDescription(description)...)
	}

	return findings
}

func (e *Engine) checkDescription(description string) []schema.Finding {
	var findings []schema.Finding

	lower := strings.ToLower(description)
	hasTrigger := false
	for _, keyword := range triggerKeywords {
		if strings.Contains(lower, keyword) {
			hasTrigger = true
			break
		}
	}
	if !hasTrigger {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryMetadata,
			Severity:   schema.SeverityWarning,
			Message:    "description lacks trigger/use case information",
			Details:    "Description should explain WHEN to use this pack",
			Suggestion: `Add: "Use when ... for (1) X, (2) Y, (3) Z"`,
		})
	}

	if len(description) < e.limits.MinDescriptionLength {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryMetadata,
			Severity:   schema.SeveritySuggestion,
			Message:    fmt.Sprintf("description is too short (%d chars)", len(description)),
			Details:    "Description should be detailed enough to explain the pack's purpose",
			Suggestion: "Expand description with more context",
		})
	}

	return findings
}

func extraFields(p *bundle.Pack) []string {
	allowed := make(map[string]bool, len(requiredFields))
	for _, f := range requiredFields {
		allowed[f] = true
	}

	seen := map[string]bool{}
	var extra []string
	for _, name := range p.FieldNames() {
		if allowed[name] || seen[name] {
			continue
		}
		seen[name] = true
		extra = append(extra, name)
	}
	sort.Strings(extra)
	return extra
}
