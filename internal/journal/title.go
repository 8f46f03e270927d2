package journal

import (
	"fmt"
	"time"
)

// TitleStyle enumerates the preset title renderings for a journal entry.
type TitleStyle string

// Preset styles, from plain weekday to weekday+date+time.
const (
	StyleDay        TitleStyle = "day"
	StyleDayDate    TitleStyle = "day-date-month-year"
	StyleDayDate24h TitleStyle = "day-date-month-year-24h"
	StyleDayDate12h TitleStyle = "day-date-month-year-12h"
)

var styleLayouts = map[TitleStyle]string{
	StyleDay:        "Monday",
	StyleDayDate:    "Monday 2 January 2006",
	StyleDayDate24h: "Monday 2 January 2006 15:04",
	StyleDayDate12h: "Monday 2 January 2006 3:04 PM",
}

// TitleFormat is a tagged variant describing how the title of a newly
// created entry is derived: a preset style, an arbitrary Go time layout, or
// an interactive prompt.
type TitleFormat struct {
	style  TitleStyle
	layout string
	prompt bool
}

// PresetTitle selects one of the enumerated styles.
func PresetTitle(style TitleStyle) (TitleFormat, error) {
	if _, ok := styleLayouts[style]; !ok {
		return TitleFormat{}, fmt.Errorf("journal: unknown title style %q", style)
	}
	return TitleFormat{style: style}, nil
}

// CustomTitle accepts an arbitrary Go time layout, used verbatim.
func CustomTitle(layout string) TitleFormat {
	return TitleFormat{layout: layout}
}

// PromptTitle requests an interactively supplied title at creation time,
// seeded with an ISO-8601 rendering of the entry date.
func PromptTitle() TitleFormat {
	return TitleFormat{prompt: true}
}

// IsPrompt reports whether the format defers to the prompter.
func (f TitleFormat) IsPrompt() bool { return f.prompt }

// Render produces the entry title for t. Prompt formats must be resolved
// through a Prompter by the caller; calling Render on one yields the
// ISO-8601 seed.
func (f TitleFormat) Render(t time.Time) string {
	switch {
	case f.prompt:
		return t.Format("2006-01-02")
	case f.layout != "":
		return t.Format(f.layout)
	default:
		return t.Format(styleLayouts[f.style])
	}
}
