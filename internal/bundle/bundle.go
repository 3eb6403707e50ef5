// Package bundle loads a pack directory and exposes parsed views over
// its PACK.md entry-point file. A Pack is built once per run and never
// mutated afterwards.
package bundle

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MetadataFile is the required entry-point file of every pack.
const MetadataFile = "PACK.md"

const delimiter = "---"

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// Pack is the immutable view of one pack directory.
type Pack struct {
	Name string
	Path string

	// Content is the raw PACK.md text; empty when the file is absent.
	Content string

	allLines  []string
	metaLines []string
	bodyLines []string

	hasMetaFile  bool
	hasMetaBlock bool

	HasScripts    bool
	HasReferences bool
	HasAssets     bool
}

// Link is one inline [text](target) construct found in the body.
type Link struct {
	Text   string
	Target string
	Line   int
}

// Load builds a Pack from a directory. A missing PACK.md is not a load
// error: the pack simply has no metadata and no body, and the rule
// engine reports it. Only an unreadable directory fails.
func Load(path string) (*Pack, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	p := &Pack{
		Name: filepath.Base(abs),
		Path: abs,
	}

	p.HasScripts = dirExists(filepath.Join(abs, "scripts"))
	p.HasReferences = dirExists(filepath.Join(abs, "references"))
	p.HasAssets = dirExists(filepath.Join(abs, "assets"))

	data, err := os.ReadFile(filepath.Join(abs, MetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		// Unreadable metadata file degrades to "absent"; the
		// structure check surfaces it as a critical finding.
		return p, nil
	}

	p.hasMetaFile = true
	p.Content = string(data)
	p.allLines = strings.Split(p.Content, "\n")
	p.splitFrontmatter()
	return p, nil
}

// splitFrontmatter locates the first two delimiter lines; lines
// between them are metadata, lines after the second are the body.
func (p *Pack) splitFrontmatter() {
	start, end := -1, -1
	for i, line := range p.allLines {
		if strings.TrimSpace(line) != delimiter {
			continue
		}
		if start == -1 {
			start = i
		} else {
			end = i
			break
		}
	}
	if start == -1 || end == -1 {
		return
	}
	p.hasMetaBlock = true
	p.metaLines = p.allLines[start+1 : end]
	p.bodyLines = p.allLines[end+1:]
}

// HasMetadataFile reports whether PACK.md was present and readable.
func (p *Pack) HasMetadataFile() bool { return p.hasMetaFile }

// HasMetadataBlock reports whether a delimited metadata block exists.
func (p *Pack) HasMetadataBlock() bool { return p.hasMetaBlock }

// Field returns the raw value of a metadata field, with one layer of
// matching surrounding quotes stripped. Unknown and malformed lines
// are ignored; a field that is absent returns "".
func (p *Pack) Field(name string) string {
	prefix := name + ":"
	for _, line := range p.metaLines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		return unquote(strings.TrimSpace(line[len(prefix):]))
	}
	return ""
}

// FieldNames lists every field name declared in the metadata block,
// in declaration order.
func (p *Pack) FieldNames() []string {
	var names []string
	for _, line := range p.metaLines {
		before, _, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if name := strings.TrimSpace(before); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// FindLine returns the 1-based line number of the first line of the
// whole file containing the substring, case-insensitively, or 0.
func (p *Pack) FindLine(substr string) int {
	needle := strings.ToLower(substr)
	for i, line := range p.allLines {
		if strings.Contains(strings.ToLower(line), needle) {
			return i + 1
		}
	}
	return 0
}

// Links extracts every inline link from the body with its body line
// number, in document order.
func (p *Pack) Links() []Link {
	var links []Link
	for i, line := range p.bodyLines {
		for _, m := range linkPattern.FindAllStringSubmatch(line, -1) {
			links = append(links, Link{Text: m[1], Target: m[2], Line: i + 1})
		}
	}
	return links
}

// Body returns the body text below the metadata block.
func (p *Pack) Body() string { return strings.Join(p.bodyLines, "\n") }

// BodyLines returns the body as raw lines.
func (p *Pack) BodyLines() []string { return p.bodyLines }

// BodyLineCount is the number of lines below the metadata block.
func (p *Pack) BodyLineCount() int { return len(p.bodyLines) }

// HasBodyPattern reports a case-insensitive substring match on the body.
func (p *Pack) HasBodyPattern(pattern string) bool {
	return strings.Contains(strings.ToLower(p.Body()), strings.ToLower(pattern))
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
