package domain

import "testing"

func TestScoreName(t *testing.T) {
	tests := []struct {
		name           string
		queryStr       string
		drinkName      string
		expectPositive bool
	}{
		{
			name:           "exact match",
			queryStr:       "mojito",
			drinkName:      "Mojito",
			expectPositive: true,
		},
		{
			name:           "prefix match",
			queryStr:       "blue",
			drinkName:      "Blue Lagoon",
			expectPositive: true,
		},
		{
			name:           "substring match",
			queryStr:       "lag",
			drinkName:      "Blue Lagoon",
			expectPositive: true,
		},
		{
			name:           "no match",
			queryStr:       "xyz",
			drinkName:      "Margarita",
			expectPositive: false,
		},
		{
			name:           "empty query",
			queryStr:       "  ",
			drinkName:      "Margarita",
			expectPositive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreName(tt.queryStr, tt.drinkName)

			if tt.expectPositive && score <= 0 {
				t.Errorf("Expected positive score, got %f", score)
			}

			if !tt.expectPositive && score > 0 {
				t.Errorf("Expected zero score, got %f", score)
			}
		})
	}
}

func TestScoreNameOrdering(t *testing.T) {
	exact := ScoreName("gin", "Gin")
	prefix := ScoreName("gin", "Gin Fizz")
	substring := ScoreName("gin", "Pink Gin")

	if !(exact > prefix && prefix > substring) {
		t.Errorf("expected exact > prefix > substring, got %f, %f, %f", exact, prefix, substring)
	}
}

func TestRankByName(t *testing.T) {
	drinks := []Drink{
		{ID: "1", Name: "Pink Gin"},
		{ID: "2", Name: "Margarita"},
		{ID: "3", Name: "Gin Fizz"},
		{ID: "4", Name: "Gin"},
		{ID: "5", Name: "Sloe Gin"},
	}

	ranked := RankByName("GIN", drinks)

	// "Pink Gin" and "Sloe Gin" tie, so input order decides
	want := []string{"4", "3", "1", "5"}
	if len(ranked) != len(want) {
		t.Fatalf("RankByName() returned %d drinks, want %d", len(ranked), len(want))
	}
	for i, d := range ranked {
		if d.ID != want[i] {
			t.Errorf("RankByName()[%d] = %s, want %s", i, d.ID, want[i])
		}
	}
}
