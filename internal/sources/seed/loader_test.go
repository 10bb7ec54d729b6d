package seed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/barback/internal/domain"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "recipes.yaml")

	yamlContent := `---
recipes:
  - name: House Sour
    alcoholic: "yes"
    thumbnail: ${BARBACK_TEST_CDN}/sour.jpg
    instructions: Shake with ice, strain.
    ingredients:
      - Whiskey: 2 oz
      - Lemon juice: 3/4 oz
      - Egg white: ""
    rating: 5
`

	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	t.Setenv("BARBACK_TEST_CDN", "https://cdn.example.com")

	file, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(file.Recipes) != 1 {
		t.Fatalf("Load() returned %d recipes, want 1", len(file.Recipes))
	}
	r := file.Recipes[0]
	if r.Thumbnail != "https://cdn.example.com/sour.jpg" {
		t.Errorf("Thumbnail = %q, want expanded env var", r.Thumbnail)
	}
	if r.Rating == nil || *r.Rating != 5 {
		t.Errorf("Rating = %v, want 5", r.Rating)
	}
	if len(r.Ingredients) != 3 {
		t.Errorf("Ingredients = %d, want 3", len(r.Ingredients))
	}
}

func TestLoaderMissingFile(t *testing.T) {
	file, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing file", err)
	}
	if len(file.Recipes) != 0 {
		t.Errorf("Load() returned %d recipes, want 0", len(file.Recipes))
	}
}

func TestLoaderInvalidYAML(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "recipes.yaml")
	if err := os.WriteFile(yamlPath, []byte("recipes: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	if _, err := NewLoader(yamlPath).Load(); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}

func TestMapperMapRecipes(t *testing.T) {
	rating := 4
	file := RecipesFile{Recipes: []RecipeProps{
		{
			Name:      " Barback Special ",
			Alcoholic: "non alcoholic",
			Ingredients: []map[string]string{
				{"Tonic": "4 oz"},
				{"Lime": ""},
			},
			Notes:  "summer",
			Rating: &rating,
		},
		{Name: ""},
		{Name: "Bad", Ingredients: []map[string]string{{"": "1 oz"}}},
	}}

	drinks, err := NewMapper().MapRecipes(file)
	if err == nil {
		t.Error("MapRecipes() expected an error for invalid recipes")
	}
	if !errors.Is(err, domain.ErrInvalidDrink) {
		t.Errorf("MapRecipes() error = %v, want ErrInvalidDrink", err)
	}

	if len(drinks) != 1 {
		t.Fatalf("MapRecipes() returned %d drinks, want 1", len(drinks))
	}
	d := drinks[0]
	if d.Name != "Barback Special" {
		t.Errorf("Name = %q, want trimmed name", d.Name)
	}
	if d.Category != domain.CreatedCategory {
		t.Errorf("Category = %q, want %q", d.Category, domain.CreatedCategory)
	}
	if d.Alcoholic != domain.AlcoholicNo {
		t.Errorf("Alcoholic = %q, want %q", d.Alcoholic, domain.AlcoholicNo)
	}
	if len(d.Ingredients) != 2 || d.Ingredients[0].Name != "Tonic" || d.Ingredients[1].Measure != "" {
		t.Errorf("Ingredients = %+v, want ordered Tonic, Lime", d.Ingredients)
	}
	if r, ok := d.Rating(); !ok || r != 4 {
		t.Errorf("Rating() = %v, %v, want 4, true", r, ok)
	}
}

func TestMapperEmptyFile(t *testing.T) {
	drinks, err := NewMapper().MapRecipes(RecipesFile{})
	if err != nil {
		t.Errorf("MapRecipes() error = %v, want nil", err)
	}
	if len(drinks) != 0 {
		t.Errorf("MapRecipes() returned %d drinks, want 0", len(drinks))
	}
}
