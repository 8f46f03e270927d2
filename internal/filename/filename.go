// Package filename implements the note file-naming grammar: an identifier
// derived from a timestamp, optional signature, title, and keywords segments
// composed in a configurable order, plus a file extension.
//
// The canonical layout is
//
//	20231019T204900==sig--my-title__kw1_kw2.org
//
// Each component is introduced by its marker: "@@" for the identifier,
// "==" for the signature, "--" for the title, "__" for the keywords. The
// identifier alone drops its marker when it is the leading component;
// every other component keeps its marker in any position.
package filename

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Component identifies one segment of a note file name.
type Component string

// File name components. Extension is not a Component: it is always last.
const (
	ComponentIdentifier Component = "identifier"
	ComponentSignature  Component = "signature"
	ComponentTitle      Component = "title"
	ComponentKeywords   Component = "keywords"
)

// IdentifierLayout is the Go time layout producing the 15-character
// identifier grammar YYYYMMDDTHHMMSS.
const IdentifierLayout = "20060102T150405"

// KeywordDelimiter separates keyword tokens inside the keywords segment.
const KeywordDelimiter = "_"

var (
	// identifierRe matches the identifier either at the start of the name
	// or after its "@@" marker.
	identifierRe = regexp.MustCompile(`(?:\A|@@)([0-9]{8}T[0-9]{6})`)

	signatureRe = regexp.MustCompile(`==([^.]*?)(?:==.*|--.*|__.*|@@.*)?(?:\..*)?\z`)
	titleRe     = regexp.MustCompile(`--([^.]*?)(?:==.*|__.*|@@.*)?(?:\..*)?\z`)
	keywordsRe  = regexp.MustCompile(`__([^.]*?)(?:==.*|--.*|@@.*)?(?:\..*)?\z`)

	titleSlugDropRe   = regexp.MustCompile(`[^a-z0-9-]+`)
	keywordSlugDropRe = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRunRe       = regexp.MustCompile(`-{2,}`)
	sigSlugDropRe     = regexp.MustCompile(`[^a-z0-9=]+`)
	equalsRunRe       = regexp.MustCompile(`={2,}`)
)

// DefaultOrder is the canonical component order.
func DefaultOrder() []Component {
	return []Component{ComponentIdentifier, ComponentSignature, ComponentTitle, ComponentKeywords}
}

// ParseOrder converts component names (e.g. from configuration) into an
// order. It rejects unknown or duplicate components and requires both the
// identifier and keywords components to be present, since matching depends
// on their relative position. When keywords precede the identifier the
// identifier must follow immediately: its "@@" marker is the literal
// separator the date pattern relies on, so a component between the two
// would render names the pattern can never match.
func ParseOrder(names []string) ([]Component, error) {
	if len(names) == 0 {
		return DefaultOrder(), nil
	}
	seen := make(map[Component]bool, len(names))
	out := make([]Component, 0, len(names))
	for _, n := range names {
		c := Component(strings.ToLower(strings.TrimSpace(n)))
		switch c {
		case ComponentIdentifier, ComponentSignature, ComponentTitle, ComponentKeywords:
		default:
			return nil, fmt.Errorf("filename: unknown component %q", n)
		}
		if seen[c] {
			return nil, fmt.Errorf("filename: duplicate component %q", n)
		}
		seen[c] = true
		out = append(out, c)
	}
	if !seen[ComponentIdentifier] || !seen[ComponentKeywords] {
		return nil, fmt.Errorf("filename: order must include identifier and keywords")
	}
	kwPos, idPos := -1, -1
	for i, c := range out {
		switch c {
		case ComponentKeywords:
			kwPos = i
		case ComponentIdentifier:
			idPos = i
		}
	}
	if kwPos < idPos && idPos-kwPos != 1 {
		return nil, fmt.Errorf("filename: identifier must immediately follow keywords when keywords come first")
	}
	return out, nil
}

// IdentifierBeforeKeywords reports whether the identifier segment precedes
// the keywords segment in the given order.
func IdentifierBeforeKeywords(order []Component) bool {
	for _, c := range order {
		switch c {
		case ComponentIdentifier:
			return true
		case ComponentKeywords:
			return false
		}
	}
	return true
}

// Name is a structured view of a note file name.
type Name struct {
	Identifier string
	Signature  string
	Title      string
	Keywords   []string
	Extension  string // includes the leading dot
}

// Parse extracts the identifier, signature, title, keywords, and extension
// segments from a bare file name. Absent segments are left zero-valued.
// Parsing is position independent: it recognises both canonical and
// reordered layouts by marker.
func Parse(name string) Name {
	var n Name
	if i := strings.LastIndex(name, "."); i >= 0 {
		n.Extension = name[i:]
	}
	if m := identifierRe.FindStringSubmatch(name); m != nil {
		n.Identifier = m[1]
	}
	if m := signatureRe.FindStringSubmatch(name); m != nil {
		n.Signature = m[1]
	}
	if m := titleRe.FindStringSubmatch(name); m != nil {
		n.Title = m[1]
	}
	if m := keywordsRe.FindStringSubmatch(name); m != nil && m[1] != "" {
		n.Keywords = strings.Split(m[1], KeywordDelimiter)
	}
	return n
}

// HasIdentifier reports whether name contains a segment satisfying the
// 15-character identifier grammar.
func HasIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// Identifier renders the identifier segment for the given time.
func Identifier(t time.Time) string {
	return t.Format(IdentifierLayout)
}

// Render composes the literal file name for n following the given
// component order. Empty segments are skipped. The identifier is rendered
// bare when it leads the name; every other component always carries its
// marker.
func (n Name) Render(order []Component) string {
	var b strings.Builder
	segment := func(marker, value string) {
		if value == "" {
			return
		}
		b.WriteString(marker)
		b.WriteString(value)
	}
	for _, c := range order {
		switch c {
		case ComponentIdentifier:
			if n.Identifier == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("@@")
			}
			b.WriteString(n.Identifier)
		case ComponentSignature:
			segment("==", n.Signature)
		case ComponentTitle:
			segment("--", n.Title)
		case ComponentKeywords:
			segment("__", strings.Join(n.Keywords, KeywordDelimiter))
		}
	}
	b.WriteString(n.Extension)
	return b.String()
}

// SluggifyTitle lowercases a title and reduces it to hyphen-separated
// tokens of [a-z0-9].
func SluggifyTitle(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "-", "_", "-", ".", "-", "/", "-").Replace(s)
	s = titleSlugDropRe.ReplaceAllString(s, "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SluggifyKeyword lowercases a keyword token and strips everything outside
// [a-z0-9-]. The keyword delimiter itself is never part of a token.
func SluggifyKeyword(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, KeywordDelimiter, "")
	s = keywordSlugDropRe.ReplaceAllString(s, "")
	return strings.Trim(s, "-")
}

// SluggifyKeywords applies SluggifyKeyword to every token, dropping any
// that end up empty.
func SluggifyKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if s := SluggifyKeyword(k); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SluggifySignature lowercases a signature and joins its tokens with "=".
func SluggifySignature(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "=", "-", "=", "_", "=").Replace(s)
	s = sigSlugDropRe.ReplaceAllString(s, "")
	s = equalsRunRe.ReplaceAllString(s, "=")
	return strings.Trim(s, "=")
}
