package seed

// RecipesFile is the top-level structure of the seed recipes YAML file.
//
//	recipes:
//	  - name: House Sour
//	    alcoholic: yes
//	    instructions: Shake with ice, strain.
//	    ingredients:
//	      - Whiskey: 2 oz
//	      - Lemon juice: 3/4 oz
//	    notes: bar favourite
//	    rating: 5
type RecipesFile struct {
	Recipes []RecipeProps `yaml:"recipes"`
}

// RecipeProps is one user-authored recipe. Ingredients are single-key maps
// so the file keeps their order.
type RecipeProps struct {
	Name         string              `yaml:"name"`
	Thumbnail    string              `yaml:"thumbnail,omitempty"`
	Alcoholic    string              `yaml:"alcoholic,omitempty"`
	Instructions string              `yaml:"instructions,omitempty"`
	Ingredients  []map[string]string `yaml:"ingredients,omitempty"`
	Notes        string              `yaml:"notes,omitempty"`
	Rating       *int                `yaml:"rating,omitempty"`
}
