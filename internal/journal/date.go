package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/protesilaos/denote-journal/internal/apperr"
	"github.com/protesilaos/denote-journal/internal/filename"
)

// dateLayouts are the accepted renderings of caller-supplied date text,
// tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
	filename.IdentifierLayout,
}

// ParseDate validates caller-supplied date text. Empty text means "now".
// Invalid text is rejected here so the resolution engine never receives an
// invalid date.
func ParseDate(text string, now func() time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return now(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("journal: unparseable date %q: %w", text, apperr.ErrInvalidDate)
}
