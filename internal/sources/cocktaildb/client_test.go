package cocktaildb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

const mojitoJSON = `{"drinks":[{
	"idDrink":"11000","strDrink":"Mojito","strCategory":"Cocktail",
	"strAlcoholic":"Alcoholic","strDrinkThumb":"https://example.com/mojito.jpg",
	"strInstructions":"Muddle mint leaves with sugar and lime juice.",
	"strIngredient1":"Light rum","strMeasure1":"2-3 oz ",
	"strIngredient2":"Lime","strMeasure2":"Juice of 1 ",
	"strIngredient3":"Mint","strMeasure3":null,
	"strIngredient4":null,"strMeasure4":"1 dash",
	"strIngredient5":"","strMeasure5":null
}]}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL + "/api/json/v1/1", Timeout: time.Second, RPS: 1000, Burst: 100}, logger.NewNop())
	require.NoError(t, err)
	return c
}

func TestFetchByLetter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/json/v1/1/search.php", r.URL.Path)
		assert.Equal(t, "m", r.URL.Query().Get("f"))
		_, _ = w.Write([]byte(mojitoJSON))
	})

	drinks, err := c.FetchByLetter(context.Background(), "m")
	require.NoError(t, err)
	require.Len(t, drinks, 1)

	d := drinks[0]
	assert.Equal(t, "11000", d.ID)
	assert.Equal(t, "Mojito", d.Name)
	assert.Equal(t, domain.AlcoholicYes, d.Alcoholic)
	assert.Equal(t, domain.ProvenanceRemote, d.Provenance)
	assert.Equal(t, []domain.Ingredient{
		{Name: "Light rum", Measure: "2-3 oz"},
		{Name: "Lime", Measure: "Juice of 1"},
		{Name: "Mint"},
	}, d.Ingredients, "measure without ingredient is dropped")
}

func TestNoResultsShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"null", `{"drinks":null}`},
		{"none found", `{"drinks":"None Found"}`},
		{"empty body", ``},
		{"empty array", `{"drinks":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			drinks, err := c.FetchByName(context.Background(), "zzz")
			require.NoError(t, err)
			assert.Empty(t, drinks)

			_, ok, err := c.FetchByID(context.Background(), "1")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.FetchByLetter(context.Background(), "a")
		assert.ErrorContains(t, err, "unexpected status 502")
	})

	t.Run("malformed json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"drinks":[{`))
		})
		_, err := c.FetchByLetter(context.Background(), "a")
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(mojitoJSON))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.FetchByLetter(ctx, "a")
		assert.Error(t, err)
	})
}

func TestListCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "list", r.URL.Query().Get("c"))
		_, _ = w.Write([]byte(`{"drinks":[{"strCategory":"Ordinary Drink"},{"strCategory":"Cocktail"},{"strCategory":"Coffee / Tea"}]}`))
	})

	got, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ordinary Drink", "Cocktail", "Coffee / Tea"}, got)
}

func TestFilterEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/json/v1/1/filter.php", r.URL.Path)
		_, _ = w.Write([]byte(`{"drinks":[{"strDrink":"Shandy","strDrinkThumb":"x.jpg","idDrink":"42"}]}`))
	})

	byIngr, err := c.FetchByIngredient(context.Background(), "Beer")
	require.NoError(t, err)
	require.Len(t, byIngr, 1)
	assert.Equal(t, "Shandy", byIngr[0].Name)

	byFlag, err := c.FetchByAlcoholic(context.Background(), domain.AlcoholicNo)
	require.NoError(t, err)
	require.Len(t, byFlag, 1)
	assert.Equal(t, domain.AlcoholicNo, byFlag[0].Alcoholic)

	none, err := c.FetchByAlcoholic(context.Background(), domain.AlcoholicUnknown)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAlcoholicQueryParam(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("a")
		_, _ = w.Write([]byte(`{"drinks":null}`))
	})

	_, err := c.FetchByAlcoholic(context.Background(), domain.AlcoholicNo)
	require.NoError(t, err)
	assert.Equal(t, "Non_Alcoholic", got)
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "ftp://example.com"}, logger.NewNop())
	assert.Error(t, err)
}

func TestMapDrinkStripsReservedCategory(t *testing.T) {
	d, ok := mapDrink(record{"idDrink": "1", "strDrink": "Fake", "strCategory": domain.CreatedCategory})
	require.True(t, ok)
	assert.Empty(t, d.Category)

	_, ok = mapDrink(record{"strDrink": "No id"})
	assert.False(t, ok)
}
