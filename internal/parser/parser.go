// Package parser extracts front matter metadata and denote: links from
// note file content. It understands the three supported file types: Org,
// Markdown with YAML front matter, and plain text with a key:value header.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	orgKeywordRe = regexp.MustCompile(`(?m)^#\+([a-zA-Z_]+):\s*(.*)$`)
	orgLinkRe    = regexp.MustCompile(`\[\[denote:([0-9]{8}T[0-9]{6})\](?:\[[^\]]*\])?\]`)
	mdLinkRe     = regexp.MustCompile(`\[[^\]]*\]\(denote:([0-9]{8}T[0-9]{6})\)`)
)

// Result holds the metadata extracted from one note file.
type Result struct {
	Title      string
	Identifier string
	Keywords   []string
	Body       string
	Links      []string
}

// Parse dispatches on the file extension (including the dot) and extracts
// metadata from raw content. Unknown extensions are treated as plain text.
func Parse(data []byte, ext string) (*Result, error) {
	var res *Result
	switch ext {
	case ".org":
		res = parseOrg(data)
	case ".md":
		res = parseMarkdown(data)
	default:
		res = parseText(data)
	}
	res.Links = extractLinks(res.Body)
	return res, nil
}

// parseOrg reads #+keyword: lines. Filetags use the Org :tag1:tag2: form.
func parseOrg(data []byte) *Result {
	res := &Result{}
	body := string(data)
	for _, m := range orgKeywordRe.FindAllStringSubmatch(body, -1) {
		key := strings.ToLower(m[1])
		val := strings.TrimSpace(m[2])
		switch key {
		case "title":
			res.Title = val
		case "identifier":
			res.Identifier = val
		case "filetags":
			res.Keywords = splitOrgTags(val)
		}
	}
	res.Body = body
	return res
}

func splitOrgTags(s string) []string {
	var out []string
	for _, t := range strings.Split(strings.Trim(s, ":"), ":") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseMarkdown splits YAML front matter between leading --- delimiters.
// Invalid YAML is not an error: the whole content becomes the body.
func parseMarkdown(data []byte) *Result {
	const delim = "---"
	res := &Result{Body: string(data)}

	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		deriveMarkdownTitle(res)
		return res
	}
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		deriveMarkdownTitle(res)
		return res
	}

	var fm struct {
		Title      string   `yaml:"title"`
		Identifier string   `yaml:"identifier"`
		Tags       []string `yaml:"tags"`
	}
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		deriveMarkdownTitle(res)
		return res
	}

	afterDelim := rest[idx+1+len(delim):]
	res.Body = strings.TrimLeft(string(afterDelim), "\n\r")
	res.Title = fm.Title
	res.Identifier = fm.Identifier
	res.Keywords = fm.Tags
	if res.Title == "" {
		deriveMarkdownTitle(res)
	}
	return res
}

// deriveMarkdownTitle falls back to the first H1 heading.
func deriveMarkdownTitle(res *Result) {
	for _, line := range strings.Split(res.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			res.Title = strings.TrimSpace(trimmed[2:])
			return
		}
	}
}

// parseText reads key: value header lines until the dashed separator line
// or the first line that is not a header.
func parseText(data []byte) *Result {
	res := &Result{Body: string(data)}
	for _, line := range strings.Split(res.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "---") {
			break
		}
		key, val, ok := strings.Cut(trimmed, ":")
		if !ok {
			break
		}
		val = strings.TrimSpace(val)
		switch strings.ToLower(key) {
		case "title":
			res.Title = val
		case "identifier":
			res.Identifier = val
		case "tags":
			for _, t := range strings.Fields(val) {
				res.Keywords = append(res.Keywords, strings.Trim(t, ","))
			}
		}
	}
	return res
}

// extractLinks returns deduplicated denote link targets (identifiers) from
// both the Org and the Markdown link syntax.
func extractLinks(body string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(matches [][]string) {
		for _, m := range matches {
			id := m[1]
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	add(orgLinkRe.FindAllStringSubmatch(body, -1))
	add(mdLinkRe.FindAllStringSubmatch(body, -1))
	return out
}
