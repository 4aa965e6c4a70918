package layout

import (
	"strings"
	"testing"
)

func TestRenderHeaderShowsStats(t *testing.T) {
	out := RenderHeader("Level 1", Stats{XP: 120, Level: 2, Streak: 3}, 100)
	for _, want := range []string{"Test Lab", "Level 1", "XP 120", "Lv 2", "🔥 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFooterJoinsHints(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Enter", Description: "Select"}}, 80)
	if !strings.Contains(out, "Esc") || !strings.Contains(out, "Select") {
		t.Errorf("footer missing hints:\n%s", out)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{120, 23, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
