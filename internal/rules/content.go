package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
)

// incompleteMarker flags unfinished authoring work anywhere in PACK.md.
const incompleteMarker = "TODO"

// boilerplateHeadings are leftover authoring-template sections that
// should not ship in a production pack.
var boilerplateHeadings = []struct {
	label   string
	pattern *regexp.Regexp
}{
	{"When to Use This Skill", regexp.MustCompile(`(?i)##?\s*When\s+to\s+Use\s+(?:This\s+)?Skill`)},
	{"Structuring This Skill", regexp.MustCompile(`(?i)##?\s*Structuring\s+(?:This\s+)?Skill`)},
	{"Bundled Resources", regexp.MustCompile(`(?i)##?\s*Bundled\s+Resources?`)},
	{"Anatomy of a Skill", regexp.MustCompile(`(?i)##?\s*Anatomy\s+of\s+a\s+Skill`)},
	{"Progressive Disclosure", regexp.MustCompile(`(?i)##?\s*Progressive\s+Disclosure`)},
	{"What Not to Include", regexp.MustCompile(`(?i)##?\s*What\s+(?:to\s+)?Not\s+Include`)},
	{"Skill Naming", regexp.MustCompile(`(?i)##?\s*Skill\s+Naming`)},
}

// howToHeading matches instructional-question headings; body headings
// must be imperative instead.
var howToHeading = regexp.MustCompile(`(?i)^##+\s+How\s+to\s+`)

func (e *Engine) checkContent(ctx context.Context, p *bundle.Pack) []schema.Finding {
	var findings []schema.Finding

	if count := p.BodyLineCount(); count > e.limits.MaxBodyLines {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryContent,
			Severity:   schema.SeverityWarning,
			Message:    fmt.Sprintf("%s body is %d lines (recommend <%d)", bundle.MetadataFile, count, e.limits.MaxBodyLines),
			Details:    "Long content bloats context; keep the body lean",
			Suggestion: "Move detailed content to the references/ directory",
		})
	}

	if count := strings.Count(p.Content, incompleteMarker); count > 0 {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryContent,
			Severity:   schema.SeverityWarning,
			Message:    fmt.Sprintf("contains %d %s items", count, incompleteMarker),
			Details:    "Complete all unfinished items before publishing the pack",
			Suggestion: fmt.Sprintf("Complete or remove %s items", incompleteMarker),
		})
	}

	for _, heading := range boilerplateHeadings {
		if heading.pattern.MatchString(p.Content) {
			findings = append(findings, schema.Finding{
				Category:   schema.CategoryContent,
				Severity:   schema.SeveritySuggestion,
				Message:    "template documentation found: " + heading.label,
				Details:    "Remove authoring-template sections from production packs",
				Suggestion: "Delete template documentation sections",
			})
		}
	}

	if p.HasBodyPattern("When to Use") {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryContent,
			Severity:   schema.SeveritySuggestion,
			Message:    "'When to Use' section found in body",
			Details:    "This information belongs in the metadata description, not the body",
			LineRef:    p.FindLine("When to Use"),
			Suggestion: "Move trigger info to the description field",
		})
	}

	for i, line := range p.BodyLines() {
		if howToHeading.MatchString(line) {
			findings = append(findings, schema.Finding{
				Category:   schema.CategoryContent,
				Severity:   schema.SeveritySuggestion,
				Message:    "found 'How to' heading (non-imperative)",
				Details:    "Use imperative form: 'Create X' instead of 'How to Create X'",
				LineRef:    i + 1,
				Suggestion: "Change to imperative/infinitive form",
			})
			break
		}
	}

	if strings.Contains(p.Content, "## Resources") || strings.Contains(p.Content, "### scripts/") {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryContent,
			Severity:   schema.SeveritySuggestion,
			Message:    "template 'Resources' section found",
			Details:    "Remove sections that just describe the pack structure",
			Suggestion: "Delete structural documentation sections",
		})
	}

	return findings
}
