package scripts

import (
	"context"
	"path/filepath"

	"github.com/packcheck/packcheck/internal/schema"
)

// NodeChecker verifies JavaScript and TypeScript scripts with node's
// check-only mode, after probing that node is installed.
type NodeChecker struct {
	cfg Config
}

func (c *NodeChecker) Check(ctx context.Context, path string) []schema.Finding {
	name := filepath.Base(path)

	if !toolAvailable(ctx, c.cfg.ProbeTimeout, "node", "--version") {
		return []schema.Finding{info(name, "Node not available, skipping syntax check")}
	}

	_, stderr, err := runCommand(ctx, 0, "node", "--check", path)
	if err != nil {
		return []schema.Finding{syntaxError(name, stderr, "Fix JavaScript/TypeScript syntax errors")}
	}
	return []schema.Finding{pass(name, "syntax OK")}
}
