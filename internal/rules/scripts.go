package rules

import (
	"context"
	"os"
	"path/filepath"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
)

func (e *Engine) checkScripts(ctx context.Context, p *bundle.Pack) []schema.Finding {
	if !p.HasScripts || e.checkers == nil {
		return nil
	}

	scriptsDir := filepath.Join(p.Path, "scripts")
	entries, err := os.ReadDir(scriptsDir)
	if err != nil {
		return []schema.Finding{{
			Category: schema.CategoryScripts,
			Severity: schema.SeverityInfo,
			Message:  "scripts/ directory unreadable, skipping checks",
		}}
	}

	var findings []schema.Finding
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		checker, ok := e.checkers.ForExtension(filepath.Ext(entry.Name()))
		if !ok {
			continue
		}
		findings = append(findings, checker.Check(ctx, filepath.Join(scriptsDir, entry.Name()))...)
	}
	return findings
}
