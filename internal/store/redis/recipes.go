package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/barback/internal/domain"
)

// SaveRecipes replaces the recipe set of a provenance. The set is stored as
// one JSON array so duplicates and insertion order survive.
func (s *Store) SaveRecipes(ctx context.Context, p domain.Provenance, drinks []domain.Drink) error {
	if drinks == nil {
		drinks = []domain.Drink{}
	}

	data, err := json.Marshal(drinks)
	if err != nil {
		return fmt.Errorf("failed to marshal %s recipes: %w", p, err)
	}

	if err := s.client.Set(ctx, RecipesKey(p), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s recipes: %w", p, err)
	}

	return nil
}

// LoadRecipes returns the recipe set of a provenance, empty when none was
// saved yet.
func (s *Store) LoadRecipes(ctx context.Context, p domain.Provenance) ([]domain.Drink, error) {
	data, err := s.client.Get(ctx, RecipesKey(p)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s recipes: %w", p, err)
	}

	var drinks []domain.Drink
	if err := json.Unmarshal(data, &drinks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s recipes: %w", p, err)
	}

	return drinks, nil
}
