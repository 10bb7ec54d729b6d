package domain

import (
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0
)

// Candidate represents a drink matched by a name search with its score
type Candidate struct {
	Drink Drink
	Score float64
}

// ScoreName calculates the match score of a drink name against a query string.
// Zero means the query is not a substring of the name.
func ScoreName(queryStr, name string) float64 {
	queryStr = Fold(strings.TrimSpace(queryStr))
	name = Fold(name)
	if queryStr == "" || name == "" {
		return 0.0
	}

	// Exact match (highest score)
	if queryStr == name {
		return ScoreExactMatch
	}

	// Prefix match
	if strings.HasPrefix(name, queryStr) {
		return ScorePrefixMatch
	}

	// Substring match
	if index := strings.Index(name, queryStr); index >= 0 {
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(name)))
		return ScoreSubstringMatch + substringBonus
	}

	return 0.0
}

// RankByName keeps the drinks whose name contains queryStr and orders them
// best match first. Ties keep their input order.
func RankByName(queryStr string, drinks []Drink) []Drink {
	candidates := make([]Candidate, 0, len(drinks))
	for _, d := range drinks {
		score := ScoreName(queryStr, d.Name)
		if score == 0.0 {
			continue
		}
		candidates = append(candidates, Candidate{Drink: d, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	out := make([]Drink, len(candidates))
	for i, c := range candidates {
		out[i] = c.Drink
	}
	return out
}
