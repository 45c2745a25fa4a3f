package engine

import "strings"

// Matcher decides whether free-text input selects a candidate room name.
type Matcher func(input, candidate string) bool

// legacyPrefixLen is how many leading characters the classic game compared.
const legacyPrefixLen = 3

// MatchLegacyPrefix reproduces the classic rule: input selects a candidate
// when they agree on the first three characters, where end-of-string inside
// that window must also agree. "Eng" and "Engineering" match; "La" and "Lab"
// do not; "Labrador" and "Lab" do. With the stock bank no two names share a
// three-character prefix, so the rule is unambiguous there.
func MatchLegacyPrefix(input, candidate string) bool {
	for i := 0; i < legacyPrefixLen; i++ {
		var a, b byte
		if i < len(input) {
			a = input[i]
		}
		if i < len(candidate) {
			b = candidate[i]
		}
		if a != b {
			return false
		}
		if a == 0 {
			// Both ended inside the window.
			return true
		}
	}
	return true
}

// MatchExact requires the full room name, ignoring case. The stricter choice
// for custom banks where three-character prefixes may collide.
func MatchExact(input, candidate string) bool {
	return strings.EqualFold(input, candidate)
}
