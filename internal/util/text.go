package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// NormalizeSpaces collapses runs of whitespace, including the non-breaking
// spaces the portal pads table cells with.
func NormalizeSpaces(input string) string {
	s := strings.ReplaceAll(input, " ", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// TrimLabel strips the trailing colon the detail tables put on row labels.
func TrimLabel(input string) string {
	return strings.TrimSuffix(NormalizeSpaces(input), ":")
}

// NullableString maps empty strings to nil so CSV and sqlite writers emit an
// explicit null instead of an empty token.
func NullableString(input string) *string {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	return &s
}
