package redis

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/barback/internal/domain"
)

const (
	// KeyPrefixDrink is the prefix for catalog drink keys
	KeyPrefixDrink = "barback:drink:"
	// KeyCatalogIDs is the list of catalog drink IDs in snapshot order
	KeyCatalogIDs = "barback:catalog:ids"
	// KeyPrefixRecipes is the prefix for the user recipe sets, one per provenance
	KeyPrefixRecipes = "barback:recipes:"
)

// DrinkKey returns the Redis key for a catalog drink by ID
func DrinkKey(id string) string {
	return KeyPrefixDrink + id
}

// CatalogIDsKey returns the key for the ordered catalog ID list
func CatalogIDsKey() string {
	return KeyCatalogIDs
}

// RecipesKey returns the key holding the recipe set of a provenance
func RecipesKey(p domain.Provenance) string {
	return KeyPrefixRecipes + string(p)
}

// ExtractDrinkID extracts the drink ID from a Redis key
func ExtractDrinkID(key string) (string, error) {
	id, ok := strings.CutPrefix(key, KeyPrefixDrink)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid drink key: %s", key)
	}
	return id, nil
}
