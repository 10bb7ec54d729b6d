package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s for case-insensitive comparisons.
// A Caser is stateful, so a new one is built per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// HasPrefixFold reports whether s begins with prefix, ignoring case.
func HasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(Fold(s), Fold(prefix))
}
