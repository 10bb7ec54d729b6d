package domain

import (
	"strings"
	"unicode/utf8"
)

// QueryKind tells which search path a query takes.
type QueryKind int

const (
	QueryEmpty  QueryKind = iota // nothing to search
	QueryLetter                  // single character: browse by first letter
	QueryText                    // substring search on names
)

// Query represents a parsed user search input
type Query struct {
	Raw  string    // Original input, trimmed
	Kind QueryKind // Search path
}

// ParseQuery parses user input into a structured query
// Examples:
//   - "m" -> letter query
//   - "  mojito " -> text query "mojito"
//   - "blue lagoon" -> text query "blue lagoon", matched as one substring
func ParseQuery(input string) *Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return &Query{Raw: input, Kind: QueryEmpty}
	}

	q := &Query{Raw: input, Kind: QueryText}
	if utf8.RuneCountInString(input) == 1 {
		q.Kind = QueryLetter
	}
	return q
}
