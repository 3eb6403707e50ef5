package scripts

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/packcheck/packcheck/internal/schema"
)

// PythonChecker verifies Python scripts with the interpreter's
// compile-only mode, then probes for a main block and --help support
// as informational extras.
type PythonChecker struct {
	cfg Config
}

func (c *PythonChecker) Check(ctx context.Context, path string) []schema.Finding {
	name := filepath.Base(path)

	python, err := pythonInterpreter()
	if err != nil {
		return []schema.Finding{info(name, "Python not available, skipping syntax check")}
	}

	_, stderr, err := runCommand(ctx, 0, python, "-m", "py_compile", path)
	if err != nil {
		return []schema.Finding{syntaxError(name, stderr, "Fix Python syntax errors")}
	}

	findings := []schema.Finding{pass(name, "syntax OK")}

	data, err := os.ReadFile(path)
	if err != nil {
		return findings
	}

	if strings.Contains(string(data), `__name__ == "__main__"`) {
		findings = append(findings, info(name, "has main block"))
		findings = append(findings, c.probeHelp(ctx, python, path, name)...)
	}
	return findings
}

// probeHelp runs the script with --help under the help timeout.
// Timeouts and non-zero exits are informational only.
func (c *PythonChecker) probeHelp(ctx context.Context, python, path, name string) []schema.Finding {
	hctx, cancel := context.WithTimeout(ctx, c.cfg.HelpTimeout)
	defer cancel()

	stdout, _, err := runCommand(hctx, 0, python, path, "--help")
	if hctx.Err() != nil {
		return nil
	}
	if err == nil || strings.Contains(strings.ToLower(stdout), "usage:") {
		return []schema.Finding{info(name, "supports --help")}
	}
	return []schema.Finding{info(name, "no --help support")}
}

func pythonInterpreter() (string, error) {
	if p, err := exec.LookPath("python3"); err == nil {
		return p, nil
	}
	return exec.LookPath("python")
}
