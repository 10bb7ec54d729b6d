package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// CreatedCategory is reserved for user-authored drinks.
	// Remote categories with this name are ignored.
	CreatedCategory = "Created Recipes"

	// MaxIngredients is the number of ingredient slots a drink can carry.
	MaxIngredients = 15
)

// ErrInvalidDrink is returned by Validate.
var ErrInvalidDrink = errors.New("invalid drink")

// Provenance tells where a drink record comes from.
// It decides where the record is stored and whether it survives a catalog refresh.
type Provenance string

const (
	ProvenanceRemote  Provenance = "remote"
	ProvenanceSaved   Provenance = "saved"
	ProvenanceCreated Provenance = "created"
)

// Alcoholic is a tri-state flag. The zero value is unknown.
type Alcoholic string

const (
	AlcoholicUnknown Alcoholic = ""
	AlcoholicYes     Alcoholic = "Alcoholic"
	AlcoholicNo      Alcoholic = "Non alcoholic"
)

// ParseAlcoholic maps the labels used by the remote catalog (and by users)
// onto the tri-state flag. "Optional alcohol" and anything unrecognized is unknown.
func ParseAlcoholic(s string) Alcoholic {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alcoholic", "yes", "true":
		return AlcoholicYes
	case "non alcoholic", "non-alcoholic", "non_alcoholic", "no", "false":
		return AlcoholicNo
	default:
		return AlcoholicUnknown
	}
}

// Ingredient is one (ingredient, measure) slot of a drink.
// Measure is optional, Name is not.
type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// Annotation is attached to saved and created drinks only.
type Annotation struct {
	Notes string `json:"notes"`

	// Rating is nil until the user rates the drink.
	Rating *int `json:"rating,omitempty"`

	// SavedAt is set once on save and never overwritten by rating updates.
	SavedAt time.Time `json:"saved_at"`
}

// Drink is a cocktail recipe, either from the remote catalog or authored by the user.
type Drink struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is unique across all provenances.
	// Remote ids come from the catalog API, created ids are uuids.
	ID string `json:"id"`

	Name string `json:"name"`

	// ─────────────────────────────
	// Description
	// ─────────────────────────────

	// Category is a single label. CreatedCategory is reserved for user-authored drinks.
	Category string `json:"category"`

	// Thumbnail is a URL or a local path.
	Thumbnail string `json:"thumbnail,omitempty"`

	Alcoholic    Alcoholic    `json:"alcoholic,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`

	// ─────────────────────────────
	// Provenance & user data
	// ─────────────────────────────

	Provenance Provenance  `json:"provenance"`
	Annotation *Annotation `json:"annotation,omitempty"`
}

// Validate checks the structural rules of a drink.
func (d Drink) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDrink)
	}
	if len(d.Ingredients) > MaxIngredients {
		return fmt.Errorf("%w: %d ingredients, at most %d allowed", ErrInvalidDrink, len(d.Ingredients), MaxIngredients)
	}
	for i, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: ingredient %d has a measure but no name", ErrInvalidDrink, i+1)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate the result freely.
func (d Drink) Clone() Drink {
	out := d
	if d.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(d.Ingredients))
		copy(out.Ingredients, d.Ingredients)
	}
	if d.Annotation != nil {
		a := *d.Annotation
		if d.Annotation.Rating != nil {
			r := *d.Annotation.Rating
			a.Rating = &r
		}
		out.Annotation = &a
	}
	return out
}

// Rating returns the rating and whether one is set.
func (d Drink) Rating() (int, bool) {
	if d.Annotation == nil || d.Annotation.Rating == nil {
		return 0, false
	}
	return *d.Annotation.Rating, true
}

// HasIngredient reports whether any ingredient name equals name, ignoring case.
func (d Drink) HasIngredient(name string) bool {
	want := Fold(strings.TrimSpace(name))
	for _, ing := range d.Ingredients {
		if Fold(strings.TrimSpace(ing.Name)) == want {
			return true
		}
	}
	return false
}

// CategorySummary is a category name plus whether any drink currently belongs to it.
type CategorySummary struct {
	Name       string `json:"name"`
	HasEntries bool   `json:"has_entries"`
}
