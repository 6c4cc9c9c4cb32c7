package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateMiddle fuzzes TruncateMiddle with random strings and budgets.
func FuzzTruncateMiddle(f *testing.F) {
	seeds := []struct {
		s      string
		maxLen int
	}{
		{"main.go", 20},
		{"internal/analyzer/git.go", 12},
		{"", 5},
		{"abc", 0},
		{"abcdefgh", 3},
		{"/very/long/project/path/with/many/segments/file.txt", 16},
	}
	for _, seed := range seeds {
		f.Add(seed.s, seed.maxLen)
	}

	f.Fuzz(func(t *testing.T, s string, maxLen int) {
		got := TruncateMiddle(s, maxLen)
		if maxLen > 0 && len(s) > maxLen && len(got) > maxLen {
			t.Errorf("TruncateMiddle(%q, %d) = %q, longer than budget", s, maxLen, got)
		}
		if maxLen <= 0 && got != s {
			t.Errorf("TruncateMiddle(%q, %d) = %q, want input unchanged", s, maxLen, got)
		}
		_ = utf8.ValidString(got)
	})
}

// FuzzParseBoolString fuzzes ParseBoolString; it must never panic and always
// pair a false error with a definite value.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "no", "TRUE", "0", "", "maybe", " on "} {
		f.Add(seed)
	}
	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseBoolString(s)
	})
}
