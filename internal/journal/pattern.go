package journal

import (
	"regexp"
	"time"

	"github.com/protesilaos/denote-journal/internal/filename"
)

// identifierFragment renders the date portion of the identifier grammar
// with a wildcard time-of-day: any entry created on the given calendar day
// matches, whatever its creation time.
func identifierFragment(t time.Time) string {
	return t.Format("20060102") + "T[0-9]{6}"
}

// DatePattern builds the pattern matching any file name whose identifier
// encodes the calendar day of t and whose keyword segment satisfies ks.
//
// The component order decides the shape: when the identifier precedes the
// keywords the two fragments are joined by a non-greedy gap; otherwise the
// identifier follows its "@@" marker, which acts as the literal separator
// after the keyword segment.
func DatePattern(t time.Time, ks KeywordSet, order []filename.Component) *regexp.Regexp {
	id := identifierFragment(t)
	kw := ks.Fragment()
	if filename.IdentifierBeforeKeywords(order) {
		return regexp.MustCompile(id + ".*?" + kw)
	}
	return regexp.MustCompile(kw + "@@" + id)
}
