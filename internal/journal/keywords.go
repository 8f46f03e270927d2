// Package journal implements the journal entry resolution engine: it
// recognises which files in a collection are journal entries for a given
// calendar date, and creates the entry when none exists.
package journal

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/protesilaos/denote-journal/internal/filename"
)

// KeywordSet is the configured set of keywords that mark a file as a
// journal entry. It is normalised once at construction and read-only
// afterwards: members are sorted lexicographically so the derived pattern
// is stable regardless of configuration order.
type KeywordSet struct {
	keywords []string
}

// NewKeywordSet validates and normalises the configured keywords. An empty
// set, or a set with an empty member, is a configuration error: silently
// accepting it would produce a pattern that matches every note.
func NewKeywordSet(keywords []string) (KeywordSet, error) {
	if len(keywords) == 0 {
		return KeywordSet{}, fmt.Errorf("journal: keyword set must not be empty")
	}
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			return KeywordSet{}, fmt.Errorf("journal: keyword set contains an empty keyword")
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return KeywordSet{keywords: out}, nil
}

// Keywords returns the sorted members of the set.
func (ks KeywordSet) Keywords() []string {
	out := make([]string, len(ks.keywords))
	copy(out, ks.keywords)
	return out
}

// Fragment returns the pattern fragment recognising the keyword segment of
// a journal entry: every keyword in sorted order, each preceded by the
// keyword delimiter. A file name therefore matches only when it carries all
// configured keywords as a contiguous, sorted, delimiter-separated run.
// Keywords reordered by an external tool will not match; that keeps the
// pattern a plain substring-shaped expression.
func (ks KeywordSet) Fragment() string {
	var b strings.Builder
	for _, k := range ks.keywords {
		b.WriteString(filename.KeywordDelimiter)
		b.WriteString(regexp.QuoteMeta(k))
	}
	return b.String()
}

// Matcher returns the compiled keyword fragment.
func (ks KeywordSet) Matcher() *regexp.Regexp {
	return regexp.MustCompile(ks.Fragment())
}
