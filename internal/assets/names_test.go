package assets

import (
	"strings"
	"testing"
)

// TestSafeName verifies sanitization across representative inputs: allowed
// characters only, lowercasing, whitespace collapsing, and the non-empty
// fallback.
func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Squat", "squat"},
		{"spaces collapse", "Arm   Circles", "arm-circles"},
		{"mixed separators", "Push_Up - Wide", "push-up-wide"},
		{"hostile chars", `Bench "Press" <3>/\|?*`, "bench-press-3"},
		{"unicode dropped", "Café Stretch", "caf-stretch"},
		{"leading trailing junk", "  'Lunge'  ", "lunge"},
		{"empty", "", "exercise"},
		{"only junk", "???///!!!", "exercise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeName(tt.in); got != tt.want {
				t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestSafeNameCharset verifies the allow-list holds for arbitrary-ish input.
func TestSafeNameCharset(t *testing.T) {
	inputs := []string{
		"Dumbbell Row (heavy!)", "90/90 hip switch", "A\tB\nC",
		"  ", "ÜBUNG #1", strings.Repeat("x y ", 100),
	}
	for _, in := range inputs {
		got := SafeName(in)
		if got == "" {
			t.Errorf("SafeName(%q) returned empty string", in)
		}
		if len(got) > 80 {
			t.Errorf("SafeName(%q) length = %d, want <= 80", in, len(got))
		}
		for _, r := range got {
			ok := r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-'
			if !ok {
				t.Errorf("SafeName(%q) contains disallowed rune %q", in, r)
			}
		}
	}
}

// TestSafeNameIdempotent verifies sanitize(sanitize(x)) == sanitize(x).
func TestSafeNameIdempotent(t *testing.T) {
	inputs := []string{
		"Arm Circles", "Goblet  Squat!", "", "Überkopfdrücken",
		strings.Repeat("long name ", 20),
	}
	for _, in := range inputs {
		once := SafeName(in)
		twice := SafeName(once)
		if once != twice {
			t.Errorf("SafeName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
