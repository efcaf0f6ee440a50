// Package assets owns the on-disk artifact state: the exercise image cache,
// the motivation text log, and the generated audio directory. All writes go
// through temp-file-then-rename so a failed action never leaves a truncated
// artifact behind.
package assets

import (
	"strings"
	"unicode"
)

const (
	maxSafeNameLen = 80
	fallbackName   = "exercise"
)

// SafeName converts free text (user- or model-supplied) into a string safe to
// use as a path component. Output is lowercase, contains only [a-z0-9-],
// collapses whitespace and separator runs to a single dash, and is capped at
// 80 characters. Never returns an empty string; stripping everything yields a
// fixed placeholder. Deterministic and idempotent.
func SafeName(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_':
			pending = true
		default:
			// outside the allow-list, dropped
		}
	}
	s := b.String()
	if len(s) > maxSafeNameLen {
		s = strings.TrimRight(s[:maxSafeNameLen], "-")
	}
	if s == "" {
		return fallbackName
	}
	return s
}
