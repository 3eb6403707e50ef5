// Package scripts dispatches syntax validation of bundled script files
// to external per-language checkers. Each checker satisfies one
// uniform interface so the rule engine and tests can swap in fakes
// without spawning real processes.
package scripts

import (
	"bytes"
	"context"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/packcheck/packcheck/internal/schema"
)

// Checker validates one script file and reports findings. A checker
// must never mutate the file, and unavailability of its external tool
// is an informational skip, not a failure.
type Checker interface {
	Check(ctx context.Context, path string) []schema.Finding
}

// Registry maps a lowercase file extension (with dot) to its checker.
type Registry map[string]Checker

// Config bounds the external process invocations a checker makes.
type Config struct {
	// ProbeTimeout bounds tool-availability probes.
	ProbeTimeout time.Duration
	// HelpTimeout bounds help-flag probes.
	HelpTimeout time.Duration
}

// DefaultConfig matches the documented probe bounds.
func DefaultConfig() Config {
	return Config{
		ProbeTimeout: 2 * time.Second,
		HelpTimeout:  5 * time.Second,
	}
}

// NewRegistry builds the default extension-to-checker table.
func NewRegistry(cfg Config) Registry {
	node := &NodeChecker{cfg: cfg}
	batch := &BatchChecker{}
	return Registry{
		".py":  &PythonChecker{cfg: cfg},
		".sh":  &ShellChecker{},
		".js":  node,
		".ts":  node,
		".ps1": &PowerShellChecker{cfg: cfg},
		".bat": batch,
		".cmd": batch,
	}
}

// ForExtension resolves the checker for an extension, if any.
func (r Registry) ForExtension(ext string) (Checker, bool) {
	c, ok := r[strings.ToLower(ext)]
	return c, ok
}

// Extensions lists the recognized extensions in sorted order.
func (r Registry) Extensions() []string {
	exts := make([]string, 0, len(r))
	for ext := range r {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// runCommand executes an external tool, optionally bounded by a
// timeout, and captures both output streams.
func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (stdout, stderr string, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// toolAvailable probes for an external tool by running a cheap
// version command under the probe timeout.
func toolAvailable(ctx context.Context, timeout time.Duration, name string, args ...string) bool {
	if _, err := exec.LookPath(name); err != nil {
		return false
	}
	_, _, err := runCommand(ctx, timeout, name, args...)
	return err == nil
}

func pass(name, message string) schema.Finding {
	return schema.Finding{
		Category: schema.CategoryScripts,
		Severity: schema.SeverityPass,
		Message:  name + ": " + message,
	}
}

func info(name, message string) schema.Finding {
	return schema.Finding{
		Category: schema.CategoryScripts,
		Severity: schema.SeverityInfo,
		Message:  name + ": " + message,
	}
}

func syntaxError(name, diagnostic, suggestion string) schema.Finding {
	return schema.Finding{
		Category:   schema.CategoryScripts,
		Severity:   schema.SeverityCritical,
		Message:    name + ": syntax error",
		Details:    strings.TrimSpace(diagnostic),
		Suggestion: suggestion,
	}
}
