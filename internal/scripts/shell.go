package scripts

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/packcheck/packcheck/internal/schema"
)

// ShellChecker verifies shell scripts with bash in no-exec mode and
// warns when the shebang line is missing.
type ShellChecker struct{}

func (c *ShellChecker) Check(ctx context.Context, path string) []schema.Finding {
	name := filepath.Base(path)

	if _, err := exec.LookPath("bash"); err != nil {
		return []schema.Finding{info(name, "bash not available, skipping syntax check")}
	}

	_, stderr, err := runCommand(ctx, 0, "bash", "-n", path)
	if err != nil {
		return []schema.Finding{syntaxError(name, stderr, "Fix Bash syntax errors")}
	}

	findings := []schema.Finding{pass(name, "syntax OK")}

	data, err := os.ReadFile(path)
	if err != nil {
		return findings
	}

	firstLine, _, _ := strings.Cut(string(data), "\n")
	if !strings.HasPrefix(firstLine, "#!") {
		findings = append(findings, schema.Finding{
			Category:   schema.CategoryScripts,
			Severity:   schema.SeverityWarning,
			Message:    name + ": no shebang",
			Details:    "Add #!/bin/bash or #!/usr/bin/env bash",
			Suggestion: "Add shebang line",
		})
	}
	return findings
}
