package matcher

import "testing"

func TestMatch(t *testing.T) {
	var testCases = []struct {
		pattern   string
		candidate string
		matched   bool
	}{
		{"*", "anything", true},
		{"", "anything", false},

		// Exact matches
		{"build", "build", true},
		{"test", "test", true},
		{"run", "runner", false},

		// Prefix matches with "*"
		{"get*", "get_profiles", true},
		{"b*", "build", true},
		{"b*", "compile", false},

		// Prefix matches with "_"
		{"get_", "get_profiles", true},
		{"set_", "get_profiles", false},
	}

	for i, tc := range testCases {
		if got := Match(tc.pattern, tc.candidate); got != tc.matched {
			t.Fatalf("[%d] Match(%q, %q) = %v; expected %v", i, tc.pattern, tc.candidate, got, tc.matched)
		}
	}
}
