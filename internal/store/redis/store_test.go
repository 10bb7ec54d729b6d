package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/barback/internal/catalog"
	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestCatalogLoadEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	drinks, err := s.Catalog().Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, drinks)
}

func TestCatalogSaveAndLoadKeepsOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	in := []domain.Drink{
		{ID: "3", Name: "Zombie", Provenance: domain.ProvenanceRemote},
		{ID: "1", Name: "Americano", Category: "Cocktail", Provenance: domain.ProvenanceRemote,
			Ingredients: []domain.Ingredient{{Name: "Campari", Measure: "1 oz"}}},
		{ID: "2", Name: "Bellini", Provenance: domain.ProvenanceRemote},
	}
	require.NoError(t, s.Catalog().Save(ctx, in))

	out, err := s.Catalog().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCatalogSaveRemovesStaleDrinks(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Catalog().Save(ctx, []domain.Drink{{ID: "1", Name: "Old"}, {ID: "2", Name: "Kept"}}))
	require.NoError(t, s.Catalog().Save(ctx, []domain.Drink{{ID: "2", Name: "Kept"}, {ID: "4", Name: "New"}}))

	assert.False(t, mr.Exists(DrinkKey("1")), "drinks dropped from the catalog are deleted")
	assert.True(t, mr.Exists(DrinkKey("4")))

	out, err := s.Catalog().Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2", out[0].ID)
	assert.Equal(t, "4", out[1].ID)
}

func TestCatalogLoadRejectsMissingKeys(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Catalog().Save(ctx, []domain.Drink{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}))
	mr.Del(DrinkKey("1"))

	out, err := s.Catalog().Load(ctx)
	require.ErrorIs(t, err, ErrIncompleteCatalog)
	assert.Nil(t, out)
}

func TestIncompleteCatalogStartsStoreEmpty(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Catalog().Save(ctx, []domain.Drink{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}))
	mr.Del(DrinkKey("2"))

	store := catalog.New(s.Catalog(), logger.NewNop(), catalog.Options{})
	assert.Equal(t, 0, store.Load(ctx))
	assert.True(t, store.IsEmpty())
}

func TestCatalogLoadFailsOnGarbage(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Catalog().Save(ctx, []domain.Drink{{ID: "1", Name: "A"}}))
	require.NoError(t, mr.Set(DrinkKey("1"), "{not json"))

	_, err := s.Catalog().Load(ctx)
	assert.Error(t, err)
}

func TestRecipesRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	rating := 5
	saved := []domain.Drink{
		{ID: "11000", Name: "Mojito", Provenance: domain.ProvenanceSaved,
			Annotation: &domain.Annotation{Notes: "fresh", Rating: &rating, SavedAt: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)}},
		{ID: "11000", Name: "Mojito", Provenance: domain.ProvenanceSaved,
			Annotation: &domain.Annotation{SavedAt: time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)}},
	}

	require.NoError(t, s.SaveRecipes(ctx, domain.ProvenanceSaved, saved))

	out, err := s.LoadRecipes(ctx, domain.ProvenanceSaved)
	require.NoError(t, err)
	assert.Equal(t, saved, out, "duplicates and order are preserved")

	created, err := s.LoadRecipes(ctx, domain.ProvenanceCreated)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestSaveRecipesEmptySet(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecipes(ctx, domain.ProvenanceCreated, nil))

	raw, err := mr.Get(RecipesKey(domain.ProvenanceCreated))
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestPing(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}

func TestExtractDrinkID(t *testing.T) {
	id, err := ExtractDrinkID(DrinkKey("11000"))
	require.NoError(t, err)
	assert.Equal(t, "11000", id)

	_, err = ExtractDrinkID("barback:drink:")
	assert.Error(t, err)
	_, err = ExtractDrinkID("other:11000")
	assert.Error(t, err)
}
