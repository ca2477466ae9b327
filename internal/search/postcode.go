package search

import (
	"regexp"
	"strings"
)

// postcodeAreaPattern matches an outward-code area such as "BR1" or "NW3":
// one or two capitals followed by one or two digits. The match is not
// anchored to word boundaries, so "SW1A" yields "SW1".
var postcodeAreaPattern = regexp.MustCompile(`[A-Z]{1,2}[0-9]{1,2}`)

// ExtractPostcodeArea returns the first postcode-area token in a free-text
// location. When a location carries several such tokens only the first one
// counts.
func ExtractPostcodeArea(location string) (string, bool) {
	token := postcodeAreaPattern.FindString(location)
	return token, token != ""
}

// NormalizePostcode trims and uppercases user input.
func NormalizePostcode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
