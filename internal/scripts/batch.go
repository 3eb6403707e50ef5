package scripts

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/packcheck/packcheck/internal/schema"
)

// BatchChecker handles Windows batch files. There is no reliable
// offline syntax checker for batch, so it only applies a lightweight
// directive heuristic and always defers to manual review. It never
// produces a deduction.
type BatchChecker struct{}

func (c *BatchChecker) Check(ctx context.Context, path string) []schema.Finding {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return []schema.Finding{info(name, "unreadable, skipping check")}
	}

	content := strings.ToLower(string(data))

	var findings []schema.Finding
	if strings.Contains(content, "@echo off") || strings.Contains(content, "@echo on") {
		findings = append(findings, info(name, "has @echo directive"))
	} else {
		findings = append(findings, info(name, "no @echo off"))
	}
	findings = append(findings, info(name, "manual review recommended"))
	return findings
}
