// Package recipes unifies the catalog snapshot with the user's saved and
// created drinks behind a single lookup and search surface.
package recipes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/barback/internal/catalog"
	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

// maxIDAttempts bounds id regeneration in Create.
const maxIDAttempts = 8

var (
	// ErrNotFound is returned when an id resolves nowhere.
	ErrNotFound = errors.New("drink not found")

	// ErrIDSpaceExhausted is returned when every generated id collided.
	ErrIDSpaceExhausted = errors.New("could not generate a unique drink id")
)

// lookupOrder is the precedence of FindByID. First match wins.
var lookupOrder = []domain.Provenance{
	domain.ProvenanceSaved,
	domain.ProvenanceCreated,
	domain.ProvenanceRemote,
}

// Catalog is the read side of the catalog snapshot.
type Catalog interface {
	All() []domain.Drink
	Count() int
	ByCategory(name string) []domain.Drink
	ByIDExact(id string) (domain.Drink, bool)
	Categories() []string
	Random() (domain.Drink, bool)
	EnsureLoaded(ctx context.Context, fetch catalog.LetterFetcher) int
}

// Remote is the remote catalog API.
type Remote interface {
	ListCategories(ctx context.Context) ([]string, error)
	FetchByLetter(ctx context.Context, letter string) ([]domain.Drink, error)
	FetchByName(ctx context.Context, name string) ([]domain.Drink, error)
	FetchByIngredient(ctx context.Context, ingredient string) ([]domain.Drink, error)
	FetchByAlcoholic(ctx context.Context, flag domain.Alcoholic) ([]domain.Drink, error)
	FetchByID(ctx context.Context, id string) (domain.Drink, bool, error)
}

// Persister keeps the user's recipe sets across restarts.
// SaveRecipes replaces the whole set of one provenance.
type Persister interface {
	SaveRecipes(ctx context.Context, p domain.Provenance, drinks []domain.Drink) error
	LoadRecipes(ctx context.Context, p domain.Provenance) ([]domain.Drink, error)
}

// Repository resolves drinks across the saved set, the created set and the
// catalog snapshot.
type Repository struct {
	mu      sync.RWMutex
	saved   []domain.Drink
	created []domain.Drink

	// persistMu orders writes to the persister: each write copies the set
	// after the previous one finished, so the last write carries the newest set.
	persistMu sync.Mutex

	catalog   Catalog
	remote    Remote
	persister Persister
	logger    logger.Logger

	now   func() time.Time
	newID func() string
}

// New creates a repository. remote and persister may be nil.
func New(cat Catalog, remote Remote, persister Persister, log logger.Logger) *Repository {
	return &Repository{
		catalog:   cat,
		remote:    remote,
		persister: persister,
		logger:    log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// EnsureCatalog loads the catalog from the remote API when it is empty.
func (r *Repository) EnsureCatalog(ctx context.Context) int {
	if r.remote == nil {
		return r.catalog.Count()
	}
	return r.catalog.EnsureLoaded(ctx, r.remote.FetchByLetter)
}

// ─────────────────────────────────────────────────────────────────
// Lookup
// ─────────────────────────────────────────────────────────────────

// FindByID resolves id following lookupOrder. When nothing local matches the
// remote API is asked; that result is returned but not kept.
func (r *Repository) FindByID(ctx context.Context, id string) (domain.Drink, bool) {
	r.EnsureCatalog(ctx)

	for _, p := range lookupOrder {
		if d, ok := r.lookupIn(p, id); ok {
			return d, true
		}
	}

	if r.remote == nil {
		return domain.Drink{}, false
	}
	d, ok, err := r.remote.FetchByID(ctx, id)
	if err != nil {
		r.logger.Warn("remote lookup failed",
			logger.String("id", id),
			logger.Error(err))
		return domain.Drink{}, false
	}
	if ok {
		remoteFallbacks.WithLabelValues("id").Inc()
	}
	return d, ok
}

func (r *Repository) lookupIn(p domain.Provenance, id string) (domain.Drink, bool) {
	switch p {
	case domain.ProvenanceSaved, domain.ProvenanceCreated:
		r.mu.RLock()
		defer r.mu.RUnlock()

		set := r.saved
		if p == domain.ProvenanceCreated {
			set = r.created
		}
		for _, d := range set {
			if d.ID == id {
				return d.Clone(), true
			}
		}
	case domain.ProvenanceRemote:
		if d, ok := r.catalog.ByIDExact(id); ok {
			return d.Clone(), true
		}
	}
	return domain.Drink{}, false
}

// IsSaved reports whether id is already in the saved or created set.
func (r *Repository) IsSaved(id string) bool {
	_, saved := r.lookupIn(domain.ProvenanceSaved, id)
	if saved {
		return true
	}
	_, created := r.lookupIn(domain.ProvenanceCreated, id)
	return created
}

// ─────────────────────────────────────────────────────────────────
// Search
// ─────────────────────────────────────────────────────────────────

// searchable returns the catalog followed by the created set. Saved drinks
// are reachable by id only.
func (r *Repository) searchable(ctx context.Context) []domain.Drink {
	r.EnsureCatalog(ctx)

	all := r.catalog.All()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.created {
		all = append(all, d.Clone())
	}
	return all
}

// Search routes a single character to FindByLetter and anything longer to
// FindByName.
func (r *Repository) Search(ctx context.Context, input string) []domain.Drink {
	q := domain.ParseQuery(input)
	switch q.Kind {
	case domain.QueryLetter:
		return r.FindByLetter(ctx, q.Raw)
	case domain.QueryText:
		return r.FindByName(ctx, q.Raw)
	default:
		return nil
	}
}

// FindByName returns drinks whose name contains query, ignoring case, best
// match first.
func (r *Repository) FindByName(ctx context.Context, query string) []domain.Drink {
	out := domain.RankByName(query, r.searchable(ctx))
	if len(out) > 0 {
		return out
	}
	return r.fallback(ctx, "name", func(rem Remote) ([]domain.Drink, error) {
		return rem.FetchByName(ctx, query)
	})
}

// FindByLetter returns drinks whose name starts with letter, ignoring case.
func (r *Repository) FindByLetter(ctx context.Context, letter string) []domain.Drink {
	var out []domain.Drink
	for _, d := range r.searchable(ctx) {
		if domain.HasPrefixFold(d.Name, letter) {
			out = append(out, d)
		}
	}
	return out
}

// FindByIngredient returns drinks listing ingredient, ignoring case.
func (r *Repository) FindByIngredient(ctx context.Context, ingredient string) []domain.Drink {
	var out []domain.Drink
	for _, d := range r.searchable(ctx) {
		if d.HasIngredient(ingredient) {
			out = append(out, d)
		}
	}
	if len(out) > 0 {
		return out
	}
	return r.fallback(ctx, "ingredient", func(rem Remote) ([]domain.Drink, error) {
		return rem.FetchByIngredient(ctx, ingredient)
	})
}

// FindByAlcoholic returns drinks with the given flag.
func (r *Repository) FindByAlcoholic(ctx context.Context, flag domain.Alcoholic) []domain.Drink {
	var out []domain.Drink
	for _, d := range r.searchable(ctx) {
		if d.Alcoholic == flag {
			out = append(out, d)
		}
	}
	if len(out) > 0 || flag == domain.AlcoholicUnknown {
		return out
	}
	return r.fallback(ctx, "alcoholic", func(rem Remote) ([]domain.Drink, error) {
		return rem.FetchByAlcoholic(ctx, flag)
	})
}

// FindByCategory returns every drink in the category across all provenances.
// An id present in several sets is reported once, from the set that wins
// lookupOrder.
func (r *Repository) FindByCategory(ctx context.Context, name string) []domain.Drink {
	r.EnsureCatalog(ctx)

	var out []domain.Drink
	seen := make(map[string]bool)
	add := func(d domain.Drink) {
		if d.Category != name || seen[d.ID] {
			return
		}
		seen[d.ID] = true
		out = append(out, d.Clone())
	}

	r.mu.RLock()
	for _, d := range r.saved {
		add(d)
	}
	for _, d := range r.created {
		add(d)
	}
	r.mu.RUnlock()

	for _, d := range r.catalog.ByCategory(name) {
		add(d)
	}
	return out
}

// Random picks one drink from the catalog snapshot.
func (r *Repository) Random(ctx context.Context) (domain.Drink, bool) {
	r.EnsureCatalog(ctx)

	d, ok := r.catalog.Random()
	if !ok {
		return domain.Drink{}, false
	}
	return d.Clone(), true
}

// fallback asks the remote API when a local search came back empty.
// Errors are logged and yield no results.
func (r *Repository) fallback(ctx context.Context, lookup string, fn func(Remote) ([]domain.Drink, error)) []domain.Drink {
	if r.remote == nil || ctx.Err() != nil {
		return nil
	}

	drinks, err := fn(r.remote)
	if err != nil {
		r.logger.Warn("remote search failed",
			logger.String("lookup", lookup),
			logger.Error(err))
		return nil
	}
	if len(drinks) > 0 {
		remoteFallbacks.WithLabelValues(lookup).Inc()
	}
	return drinks
}

// ─────────────────────────────────────────────────────────────────
// Mutations
// ─────────────────────────────────────────────────────────────────

// Save annotates d and appends it to the saved set, or to the created set
// when it belongs to the reserved category. Saving the same id twice stores
// it twice; callers check IsSaved first.
func (r *Repository) Save(ctx context.Context, d domain.Drink, notes string, rating *int) domain.Drink {
	out := d.Clone()
	out.Annotation = &domain.Annotation{
		Notes:   notes,
		Rating:  copyRating(rating),
		SavedAt: r.now(),
	}

	r.mu.Lock()
	if out.Category == domain.CreatedCategory {
		out.Provenance = domain.ProvenanceCreated
		r.created = append(r.created, out)
	} else {
		out.Provenance = domain.ProvenanceSaved
		r.saved = append(r.saved, out)
	}
	r.mu.Unlock()

	r.logger.Info("drink saved",
		logger.String("id", out.ID),
		logger.String("provenance", string(out.Provenance)))

	r.persist(ctx, out.Provenance)
	return out.Clone()
}

// Rate sets the rating of id. Saved and created drinks are updated in place.
// A drink found only in the catalog is copied into the saved set with the
// rating attached. Returns false when id is unknown.
func (r *Repository) Rate(ctx context.Context, id string, rating int) bool {
	r.mu.Lock()
	if r.rateIn(r.saved, id, rating) {
		r.mu.Unlock()
		r.persist(ctx, domain.ProvenanceSaved)
		return true
	}
	if r.rateIn(r.created, id, rating) {
		r.mu.Unlock()
		r.persist(ctx, domain.ProvenanceCreated)
		return true
	}
	r.mu.Unlock()

	d, ok := r.catalog.ByIDExact(id)
	if !ok {
		return false
	}

	promoted := d.Clone()
	promoted.Provenance = domain.ProvenanceSaved
	promoted.Annotation = &domain.Annotation{
		Rating:  copyRating(&rating),
		SavedAt: r.now(),
	}

	r.mu.Lock()
	// another request may have saved it since the first check
	if r.rateIn(r.saved, id, rating) {
		r.mu.Unlock()
		r.persist(ctx, domain.ProvenanceSaved)
		return true
	}
	r.saved = append(r.saved, promoted)
	r.mu.Unlock()

	r.logger.Info("rated catalog drink saved",
		logger.String("id", id),
		logger.Int("rating", rating))

	r.persist(ctx, domain.ProvenanceSaved)
	return true
}

// rateIn updates every entry of set with id. Callers hold the write lock.
func (r *Repository) rateIn(set []domain.Drink, id string, rating int) bool {
	found := false
	for i := range set {
		if set[i].ID != id {
			continue
		}
		found = true
		if set[i].Annotation == nil {
			set[i].Annotation = &domain.Annotation{SavedAt: r.now()}
		}
		set[i].Annotation.Rating = copyRating(&rating)
	}
	return found
}

// Create stores a user-authored drink under a fresh id.
func (r *Repository) Create(ctx context.Context, d domain.Drink) (domain.Drink, error) {
	if err := d.Validate(); err != nil {
		return domain.Drink{}, err
	}

	out := d.Clone()
	out.Category = domain.CreatedCategory
	out.Provenance = domain.ProvenanceCreated
	if out.Annotation == nil {
		out.Annotation = &domain.Annotation{}
	}
	out.Annotation.SavedAt = r.now()

	r.mu.Lock()
	id, err := r.uniqueID()
	if err != nil {
		r.mu.Unlock()
		return domain.Drink{}, err
	}
	out.ID = id
	r.created = append(r.created, out)
	r.mu.Unlock()

	r.logger.Info("drink created",
		logger.String("id", out.ID),
		logger.String("name", out.Name))

	r.persist(ctx, domain.ProvenanceCreated)
	return out.Clone(), nil
}

// uniqueID draws ids until one is unused by every provenance. Callers hold
// the write lock.
func (r *Repository) uniqueID() (string, error) {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id := r.newID()
		if !r.idTakenLocked(id) {
			return id, nil
		}
		r.logger.Debug("generated id collided, retrying",
			logger.String("id", id),
			logger.Int("attempt", attempt))
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIDSpaceExhausted, maxIDAttempts)
}

func (r *Repository) idTakenLocked(id string) bool {
	if id == "" {
		return true
	}
	for _, set := range [][]domain.Drink{r.saved, r.created} {
		for _, d := range set {
			if d.ID == id {
				return true
			}
		}
	}
	_, ok := r.catalog.ByIDExact(id)
	return ok
}

// Saved returns the saved set in insertion order.
func (r *Repository) Saved() []domain.Drink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAll(r.saved)
}

// Created returns the created set in insertion order.
func (r *Repository) Created() []domain.Drink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAll(r.created)
}

// Restore replaces both sets, typically with what the persister returned at
// startup. Nothing is written back.
func (r *Repository) Restore(saved, created []domain.Drink) {
	s := cloneAll(saved)
	for i := range s {
		s[i].Provenance = domain.ProvenanceSaved
	}
	c := cloneAll(created)
	for i := range c {
		c[i].Provenance = domain.ProvenanceCreated
		c[i].Category = domain.CreatedCategory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.saved = s
	r.created = c
	recipesTotal.WithLabelValues(string(domain.ProvenanceSaved)).Set(float64(len(s)))
	recipesTotal.WithLabelValues(string(domain.ProvenanceCreated)).Set(float64(len(c)))
}

// persist hands the current set of p to the persister. Failures are logged,
// the in-memory state stays authoritative.
func (r *Repository) persist(ctx context.Context, p domain.Provenance) {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	var set []domain.Drink
	if p == domain.ProvenanceCreated {
		set = r.Created()
	} else {
		set = r.Saved()
	}
	recipesTotal.WithLabelValues(string(p)).Set(float64(len(set)))

	if r.persister == nil {
		return
	}
	if err := r.persister.SaveRecipes(context.WithoutCancel(ctx), p, set); err != nil {
		r.logger.Warn("failed to persist recipes",
			logger.String("provenance", string(p)),
			logger.Error(err))
	}
}

func copyRating(rating *int) *int {
	if rating == nil {
		return nil
	}
	v := *rating
	return &v
}

func cloneAll(in []domain.Drink) []domain.Drink {
	out := make([]domain.Drink, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
