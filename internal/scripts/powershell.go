package scripts

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/packcheck/packcheck/internal/schema"
)

// PowerShellChecker verifies PowerShell scripts by parsing them as a
// script block under pwsh, after probing that pwsh is installed.
type PowerShellChecker struct {
	cfg Config
}

func (c *PowerShellChecker) Check(ctx context.Context, path string) []schema.Finding {
	name := filepath.Base(path)

	if !toolAvailable(ctx, c.cfg.ProbeTimeout, "pwsh", "-Version") {
		return []schema.Finding{info(name, "PowerShell not available, skipping check")}
	}

	_, stderr, err := runCommand(ctx, 0, "pwsh", "-NoProfile", "-Command", fmt.Sprintf("{ %s }", path))
	if err != nil {
		return []schema.Finding{syntaxError(name, stderr, "Fix PowerShell syntax errors")}
	}
	return []schema.Finding{pass(name, "syntax OK")}
}
