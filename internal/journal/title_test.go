package journal

import (
	"testing"
	"time"
)

var titleDate = time.Date(2023, 10, 19, 20, 49, 0, 0, time.UTC)

func TestPresetTitle_Styles(t *testing.T) {
	cases := []struct {
		style TitleStyle
		want  string
	}{
		{StyleDay, "Thursday"},
		{StyleDayDate, "Thursday 19 October 2023"},
		{StyleDayDate24h, "Thursday 19 October 2023 20:49"},
		{StyleDayDate12h, "Thursday 19 October 2023 8:49 PM"},
	}
	for _, tc := range cases {
		f, err := PresetTitle(tc.style)
		if err != nil {
			t.Fatalf("PresetTitle(%s): %v", tc.style, err)
		}
		if got := f.Render(titleDate); got != tc.want {
			t.Errorf("style %s = %q, want %q", tc.style, got, tc.want)
		}
	}
}

func TestPresetTitle_UnknownStyle(t *testing.T) {
	if _, err := PresetTitle("fancy"); err == nil {
		t.Error("unknown style should be rejected")
	}
}

func TestCustomTitle(t *testing.T) {
	f := CustomTitle("2006/01/02")
	if got := f.Render(titleDate); got != "2023/10/19" {
		t.Errorf("custom title = %q", got)
	}
}

func TestPromptTitle_SeedIsISODate(t *testing.T) {
	f := PromptTitle()
	if !f.IsPrompt() {
		t.Fatal("expected prompting format")
	}
	if got := f.Render(titleDate); got != "2023-10-19" {
		t.Errorf("prompt seed = %q, want 2023-10-19", got)
	}
}
