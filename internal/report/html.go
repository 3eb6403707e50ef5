package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/packcheck/packcheck/internal/schema"
)

const reportHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Pack Validation Report: {{.Pack}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 860px; color: #1b1f24; }
  h1 { border-bottom: 2px solid #d0d7de; padding-bottom: .4rem; }
  table { border-collapse: collapse; margin: 1rem 0; }
  th, td { border: 1px solid #d0d7de; padding: .4rem .8rem; text-align: left; }
  .status-pass { color: #1a7f37; } .status-warn { color: #9a6700; } .status-fail { color: #cf222e; }
  .finding { margin: .5rem 0; padding: .5rem .8rem; border-left: 4px solid #d0d7de; }
  .finding.critical { border-color: #cf222e; } .finding.warning { border-color: #9a6700; }
  .finding.suggestion { border-color: #0969da; } .finding.pass { border-color: #1a7f37; }
  .details { color: #57606a; font-size: .9rem; white-space: pre-wrap; }
  .suggestion-text { color: #0969da; font-size: .9rem; }
  footer { margin-top: 2rem; color: #57606a; font-size: .85rem; }
</style>
</head>
<body>
<h1>Pack Validation Report: {{.Pack}}</h1>
<p><strong>Date</strong>: {{.Timestamp}}<br>
<strong>Pack Path</strong>: <code>{{.Path}}</code><br>
<strong>Duration</strong>: {{.Duration}}</p>

<h2>Executive Summary</h2>
<table>
<tr><th>Metric</th><th>Value</th></tr>
<tr><td>Overall Status</td><td class="status-{{.Status}}">{{.StatusIcon}} {{.StatusUpper}}</td></tr>
<tr><td>Quality Score</td><td>{{.Score}}/100 ({{.Grade}})</td></tr>
<tr><td>Critical Issues</td><td>{{.Counts.Critical}}</td></tr>
<tr><td>Warnings</td><td>{{.Counts.Warnings}}</td></tr>
<tr><td>Suggestions</td><td>{{.Counts.Suggestions}}</td></tr>
</table>

{{range .Sections}}
<h2>{{.Title}}</h2>
{{range .Findings}}
<div class="finding {{.Severity}}">
  <strong>{{icon .Severity}} {{label .Severity}}</strong>: {{.Message}}{{if .LineRef}} (line {{.LineRef}}){{end}}
  {{if .Details}}<div class="details">{{.Details}}</div>{{end}}
  {{if .Suggestion}}<div class="suggestion-text">💡 {{.Suggestion}}</div>{{end}}
</div>
{{end}}
{{end}}

<h2>Conclusion</h2>
<p class="status-{{.Status}}">{{.Verdict}}</p>

<footer>Generated by packcheck at {{.GeneratedAt}} &middot; {{.Year}}</footer>
</body>
</html>
`

type htmlView struct {
	view
	StatusUpper string
	Verdict     string
}

// GenerateHTML renders the report view into an HTML file inside
// outDir and returns its path.
func GenerateHTML(res schema.RunResult, outDir string) (string, error) {
	vm := htmlView{view: buildView(res)}
	vm.StatusUpper = strings.ToUpper(string(vm.Status))
	switch vm.Status {
	case schema.StatusPass:
		vm.Verdict = "The pack meets all quality standards and is ready for use."
	case schema.StatusWarn:
		vm.Verdict = "The pack has warnings that should be addressed."
	default:
		vm.Verdict = "The pack has critical issues that must be resolved."
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"icon":  SeverityIcon,
		"label": func(s schema.Severity) string { return title(string(s)) },
	}).Parse(reportHTMLTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vm); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	htmlPath := filepath.Join(outDir, "report.html")
	if err := os.WriteFile(htmlPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write report.html: %w", err)
	}
	return htmlPath, nil
}
