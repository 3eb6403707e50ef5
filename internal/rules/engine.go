// Package rules evaluates a pack against the fixed set of categorized
// checks. Checks are independent: each one reads the pack and emits
// zero or more findings, and a failure inside one check never aborts
// the run.
package rules

import (
	"context"

	"github.com/packcheck/packcheck/internal/bundle"
	"github.com/packcheck/packcheck/internal/schema"
	"github.com/packcheck/packcheck/internal/scripts"
)

// Limits carries every tunable bound of the rule table.
type Limits struct {
	MaxNameLength        int
	MaxBodyLines         int
	MaxReferenceLines    int
	MinDescriptionLength int
}

// DefaultLimits returns the documented bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxNameLength:        64,
		MaxBodyLines:         500,
		MaxReferenceLines:    100,
		MinDescriptionLength: 30,
	}
}

type checkFunc func(ctx context.Context, p *bundle.Pack) []schema.Finding

// check is one row of the engine's rule table. Checks flagged
// needsMetadata are skipped when PACK.md is absent; the structure
// check reports that absence as the single critical finding.
type check struct {
	name          string
	needsMetadata bool
	run           checkFunc
}

// Engine runs the fixed, ordered check table against one pack.
type Engine struct {
	limits   Limits
	checkers scripts.Registry
}

// New builds an engine. A nil registry disables script checking,
// which tests use to avoid spawning processes.
func New(limits Limits, checkers scripts.Registry) *Engine {
	return &Engine{limits: limits, checkers: checkers}
}

func (e *Engine) table() []check {
	return []check{
		{name: "naming", run: e.checkNaming},
		{name: "structure", run: e.checkStructure},
		{name: "metadata", needsMetadata: true, run: e.checkMetadata},
		{name: "content", needsMetadata: true, run: e.checkContent},
		{name: "references", run: e.checkReferences},
		{name: "scripts", run: e.checkScripts},
	}
}

// Run executes every applicable check in table order and returns the
// accumulated findings in discovery order.
func (e *Engine) Run(ctx context.Context, p *bundle.Pack) []schema.Finding {
	var findings []schema.Finding
	for _, c := range e.table() {
		if c.needsMetadata && !p.HasMetadataFile() {
			continue
		}
		findings = append(findings, c.run(ctx, p)...)
	}
	return findings
}
