package badge

import (
	"strings"
	"testing"
)

func TestStarPercentage(t *testing.T) {
	tests := []struct {
		rating float64
		want   float64
	}{
		{0, 0},
		{-1, 0},
		{2.5, 50},
		{4.5, 90},
		{5, 100},
		{7, 100},
	}
	for _, tt := range tests {
		if got := StarPercentage(tt.rating); got != tt.want {
			t.Errorf("StarPercentage(%v) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{90, "90"},
		{100, "100"},
		{0, "0"},
		{66.666666, "66.67"},
		{42.5, "42.5"},
	}
	for _, tt := range tests {
		if got := formatPercent(tt.in); got != tt.want {
			t.Errorf("formatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStarsHTML(t *testing.T) {
	html := Stars{Rating: 3.7, Color: "#FFB007", StarSize: StarSize{Size: 28, Gap: 2}}.HTML()

	if got := strings.Count(html, "<svg"); got != 10 {
		t.Errorf("rendered %d star glyphs, want 10", got)
	}
	if got := strings.Count(html, `fill="#E0E0E0"`); got != 5 {
		t.Errorf("rendered %d empty stars, want 5", got)
	}
	if got := strings.Count(html, `fill="#FFB007"`); got != 5 {
		t.Errorf("rendered %d filled stars, want 5", got)
	}
	for _, want := range []string{
		"width: 74%; overflow: hidden;",
		`width="28" height="28"`,
		"gap: 2px;",
		"flex-shrink: 0;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("stars HTML missing %q", want)
		}
	}
}

func TestLayoutStarSizes(t *testing.T) {
	want := map[string]StarSize{
		"layout-1": {28, 2},
		"layout-2": {38, 5},
		"layout-3": {28, 5},
		"layout-4": {25, 5},
	}
	for _, l := range Layouts() {
		if l.Stars != want[string(l.ID)] {
			t.Errorf("%s stars = %+v, want %+v", l.ID, l.Stars, want[string(l.ID)])
		}
	}
}
