package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
	"github.com/packcheck/packcheck/internal/score"
	"github.com/packcheck/packcheck/internal/scripts"
)

const goodMetadata = `---
name: foo-bar
description: Use when you need deterministic validation of packs
---
`

func makePack(t *testing.T, name, content string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if content != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, bundle.MetadataFile), []byte(content), 0644))
	}
	return dir
}

func loadPack(t *testing.T, dir string) *bundle.Pack {
	t.Helper()
	p, err := bundle.Load(dir)
	require.NoError(t, err)
	return p
}

func run(t *testing.T, dir string) []schema.Finding {
	t.Helper()
	e := New(DefaultLimits(), nil)
	return e.Run(context.Background(), loadPack(t, dir))
}

func scored(findings []schema.Finding) []schema.Finding {
	var out []schema.Finding
	for _, f := range findings {
		if f.Severity.Scored() {
			out = append(out, f)
		}
	}
	return out
}

func TestMinimalWellFormedPack(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"\n# Foo Bar\n\nRun the validation before publishing.\n")

	findings := run(t, dir)

	counts := schema.CountFindings(findings)
	assert.Zero(t, counts.Critical)
	assert.Zero(t, counts.Warnings)
	assert.Zero(t, counts.Suggestions)
	assert.Equal(t, 100, score.Score(findings))
	assert.Equal(t, "A", score.Grade(score.Score(findings)))
	assert.Equal(t, schema.StatusPass, schema.OverallStatus(findings))
}

func TestNameMismatchIsCritical(t *testing.T) {
	dir := makePack(t, "foo-bar", `---
name: other-name
description: Use when you need deterministic validation of packs
---
body
`)

	findings := run(t, dir)

	var criticals []schema.Finding
	for _, f := range findings {
		if f.Severity == schema.SeverityCritical {
			criticals = append(criticals, f)
		}
	}
	require.Len(t, criticals, 1)
	assert.Equal(t, schema.CategoryNaming, criticals[0].Category)
	assert.Contains(t, criticals[0].Message, "other-name")
	assert.LessOrEqual(t, score.Score(findings), 80)
}

func TestInvalidNameFormat(t *testing.T) {
	dir := makePack(t, "Foo_Bar", strings.Replace(goodMetadata, "foo-bar", "Foo_Bar", 1)+"body\n")

	findings := run(t, dir)

	var warnings []schema.Finding
	for _, f := range findings {
		if f.Category == schema.CategoryNaming && f.Severity == schema.SeverityWarning {
			warnings = append(warnings, f)
		}
	}
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "invalid characters")
}

func TestNameTooLong(t *testing.T) {
	name := strings.Repeat("a", 70)
	dir := makePack(t, name, strings.Replace(goodMetadata, "foo-bar", name, 1)+"body\n")

	findings := run(t, dir)

	found := false
	for _, f := range findings {
		if f.Category == schema.CategoryNaming && strings.Contains(f.Message, "max 64") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMissingMetadataFile(t *testing.T) {
	dir := makePack(t, "foo-bar", "")

	findings := run(t, dir)

	require.Len(t, scored(findings), 1)
	f := scored(findings)[0]
	assert.Equal(t, schema.CategoryStructure, f.Category)
	assert.Equal(t, schema.SeverityCritical, f.Severity)
	assert.Contains(t, f.Message, bundle.MetadataFile)

	// Checks that depend on the metadata file are skipped entirely.
	for _, f := range findings {
		assert.NotEqual(t, schema.CategoryMetadata, f.Category)
		assert.NotEqual(t, schema.CategoryContent, f.Category)
	}
}

func TestHousekeepingFiles(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"body\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("readme"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte("log"), 0644))

	findings := run(t, dir)

	var structural []schema.Finding
	for _, f := range findings {
		if f.Category == schema.CategoryStructure && f.Severity == schema.SeverityWarning {
			structural = append(structural, f)
		}
	}
	require.Len(t, structural, 1)
	assert.Contains(t, structural[0].Message, "README.md")
	assert.Contains(t, structural[0].Message, "CHANGELOG.md")
}

func TestNoMetadataBlock(t *testing.T) {
	dir := makePack(t, "foo-bar", "# Heading only, no delimiters\n")

	findings := run(t, dir)

	found := false
	for _, f := range findings {
		if f.Category == schema.CategoryMetadata && f.Severity == schema.SeverityCritical {
			assert.Contains(t, f.Message, "no metadata block")
			found = true
		}
	}
	assert.True(t, found)
}

func TestExtraAndMissingFields(t *testing.T) {
	dir := makePack(t, "foo-bar", `---
name: foo-bar
version: 1.0.0
author: somebody
---
body
`)

	findings := run(t, dir)

	var extra, missing []schema.Finding
	for _, f := range findings {
		if f.Category != schema.CategoryMetadata {
			continue
		}
		switch f.Severity {
		case schema.SeverityWarning:
			extra = append(extra, f)
		case schema.SeverityCritical:
			missing = append(missing, f)
		}
	}

	// Extra fields warn; missing required fields are critical.
	require.Len(t, extra, 1)
	assert.Equal(t, "extra metadata fields found: author, version", extra[0].Message)
	require.Len(t, missing, 1)
	assert.Equal(t, "missing required field: description", missing[0].Message)
}

func TestDescriptionQuality(t *testing.T) {
	t.Run("no trigger words", func(t *testing.T) {
		dir := makePack(t, "foo-bar", `---
name: foo-bar
description: A collection of helpful documentation files
---
body
`)
		findings := run(t, dir)

		found := false
		for _, f := range findings {
			if f.Category == schema.CategoryMetadata && f.Severity == schema.SeverityWarning {
				assert.Contains(t, f.Message, "trigger")
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("too short", func(t *testing.T) {
		dir := makePack(t, "foo-bar", `---
name: foo-bar
description: Use this pack
---
body
`)
		findings := run(t, dir)

		found := false
		for _, f := range findings {
			if f.Category == schema.CategoryMetadata && f.Severity == schema.SeveritySuggestion {
				assert.Contains(t, f.Message, "too short")
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestBodyLineBound(t *testing.T) {
	t.Run("over the bound", func(t *testing.T) {
		// 500 text lines plus the trailing empty line = 501 body lines.
		dir := makePack(t, "foo-bar", goodMetadata+strings.Repeat("text\n", 500))

		findings := scored(run(t, dir))
		require.Len(t, findings, 1)
		assert.Equal(t, schema.CategoryContent, findings[0].Category)
		assert.Equal(t, schema.SeverityWarning, findings[0].Severity)
		assert.Contains(t, findings[0].Message, "501 lines")
	})

	t.Run("at the bound", func(t *testing.T) {
		dir := makePack(t, "foo-bar", goodMetadata+strings.Repeat("text\n", 499))
		assert.Empty(t, scored(run(t, dir)))
	})
}

func TestIncompleteMarkers(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"body\nTODO: finish this\nTODO: and this\n")

	findings := scored(run(t, dir))
	require.Len(t, findings, 1)
	assert.Equal(t, schema.SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "2")
}

func TestBoilerplateHeadings(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+`
## Anatomy of a Skill

## Progressive Disclosure

Regular content here.
`)

	findings := scored(run(t, dir))
	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, schema.SeveritySuggestion, f.Severity)
		assert.Contains(t, f.Message, "template documentation found")
	}
}

func TestHowToHeadingFirstOnly(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+`
## How to Create a Pack

## How to Delete a Pack
`)

	var howTo []schema.Finding
	for _, f := range run(t, dir) {
		if strings.Contains(f.Message, "How to") {
			howTo = append(howTo, f)
		}
	}
	require.Len(t, howTo, 1, "only the first occurrence is reported")
	assert.Equal(t, schema.SeveritySuggestion, howTo[0].Severity)
	assert.Equal(t, 2, howTo[0].LineRef)
}

func TestResourcesSection(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"\n## Resources\n\n- stuff\n")

	found := false
	for _, f := range run(t, dir) {
		if strings.Contains(f.Message, "'Resources' section") {
			assert.Equal(t, schema.SeveritySuggestion, f.Severity)
			found = true
		}
	}
	assert.True(t, found)
}

func TestWhenToUseInBody(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"\n## When to Use\n\nAlways.\n")

	found := false
	for _, f := range run(t, dir) {
		if strings.Contains(f.Message, "'When to Use' section found in body") {
			assert.Equal(t, schema.SeveritySuggestion, f.Severity)
			found = true
		}
	}
	assert.True(t, found)
}

func TestReferenceTOC(t *testing.T) {
	newRef := func(t *testing.T, withTOC bool) string {
		dir := makePack(t, "foo-bar", goodMetadata+"body\n")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "references"), 0755))

		var b strings.Builder
		b.WriteString("# Guide\n")
		if withTOC {
			b.WriteString("\n## Contents\n\n")
		}
		for i := 0; i < 120; i++ {
			fmt.Fprintf(&b, "line %d\n", i)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "references", "guide.md"), []byte(b.String()), 0644))
		return dir
	}

	t.Run("missing TOC", func(t *testing.T) {
		findings := scored(run(t, newRef(t, false)))
		require.Len(t, findings, 1)
		assert.Equal(t, schema.CategoryReferences, findings[0].Category)
		assert.Equal(t, schema.SeveritySuggestion, findings[0].Severity)
		assert.Contains(t, findings[0].Message, "no TOC")
	})

	t.Run("TOC near the top suppresses it", func(t *testing.T) {
		assert.Empty(t, scored(run(t, newRef(t, true))))
	})
}

func TestReferenceDeepNesting(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"body\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "references"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "references", "a.md"),
		[]byte("See [b](b.md) and [c](c.md) and [a](a.md) and [ext](https://x.test/d.md).\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "references", "b.md"),
		[]byte("Standalone with [external](https://example.com/page.md) only.\n"), 0644))

	findings := scored(run(t, dir))
	require.Len(t, findings, 1, "first violation per file only; self and external links ignored")
	assert.Equal(t, schema.SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "a.md links to another reference: b.md")
}

func TestNoReferencesDirSkipsCategory(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"body\n")

	for _, f := range run(t, dir) {
		assert.NotEqual(t, schema.CategoryReferences, f.Category)
	}
}

func TestDeterministicRuns(t *testing.T) {
	dir := makePack(t, "Bad_Name", `---
name: other
description: short
junk: field
---
TODO fix
## How to Use

## Resources
`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "references"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "references", "a.md"), []byte("[b](b.md)\n"), 0644))

	e := New(DefaultLimits(), nil)
	p := loadPack(t, dir)

	first := e.Run(context.Background(), p)
	second := e.Run(context.Background(), p)
	assert.Equal(t, first, second, "repeated runs yield identical ordered findings")
	assert.NotEmpty(t, first)
}

// fakeChecker substitutes for real script checkers so no test spawns
// external processes.
type fakeChecker struct {
	calls    []string
	findings []schema.Finding
}

func (f *fakeChecker) Check(_ context.Context, path string) []schema.Finding {
	f.calls = append(f.calls, filepath.Base(path))
	return f.findings
}

func TestScriptDispatch(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"body\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "run.py"), []byte("print('hi')\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "notes.txt"), []byte("not a script\n"), 0644))

	fake := &fakeChecker{findings: []schema.Finding{{
		Category: schema.CategoryScripts,
		Severity: schema.SeverityCritical,
		Message:  "run.py: syntax error",
		Details:  "SyntaxError: invalid syntax",
	}}}

	e := New(DefaultLimits(), scripts.Registry{".py": fake})
	findings := e.Run(context.Background(), loadPack(t, dir))

	assert.Equal(t, []string{"run.py"}, fake.calls, "unrecognized extensions are not dispatched")

	var scriptFindings []schema.Finding
	for _, f := range findings {
		if f.Category == schema.CategoryScripts {
			scriptFindings = append(scriptFindings, f)
		}
	}
	require.Len(t, scriptFindings, 1)
	assert.Equal(t, schema.SeverityCritical, scriptFindings[0].Severity)
	assert.Contains(t, scriptFindings[0].Details, "SyntaxError")
}

func TestNoScriptsDirSkipsDispatch(t *testing.T) {
	dir := makePack(t, "foo-bar", goodMetadata+"body\n")

	fake := &fakeChecker{}
	e := New(DefaultLimits(), scripts.Registry{".py": fake})
	e.Run(context.Background(), loadPack(t, dir))

	assert.Empty(t, fake.calls)
}
