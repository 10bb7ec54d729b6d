// Package catalog holds the local snapshot of the remote drink catalog.
//
// The store is either empty or fully populated by a single bulk refresh.
// A refresh fetches every letter a-z, assembles a new snapshot off to the side
// and swaps it in under the write lock, so readers never see a partial catalog.
package catalog

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

// Letters are fetched one by one to build the catalog.
const Letters = "abcdefghijklmnopqrstuvwxyz"

const (
	// DefaultConcurrency is the number of letters fetched in parallel
	DefaultConcurrency = 4
	// DefaultLetterTimeout bounds a single letter fetch
	DefaultLetterTimeout = 10 * time.Second
)

var errLetterTimeout = errors.New("letter fetch timed out")

// LetterFetcher returns every drink whose name starts with letter.
type LetterFetcher func(ctx context.Context, letter string) ([]domain.Drink, error)

// Backing is the durable storage behind the catalog.
// Load returns nil, nil when nothing has been stored yet.
type Backing interface {
	Load(ctx context.Context) ([]domain.Drink, error)
	Save(ctx context.Context, drinks []domain.Drink) error
}

// Options tunes the refresh fan-out.
type Options struct {
	Concurrency   int
	LetterTimeout time.Duration
}

// Store provides the current catalog snapshot.
type Store struct {
	mu          sync.RWMutex
	drinks      []domain.Drink // snapshot order
	byID        map[string]int // ID -> position in drinks
	lastRefresh time.Time

	backing Backing
	logger  logger.Logger
	opts    Options
	flight  singleflight.Group
}

// New creates an empty store. backing may be nil, in which case snapshots are
// kept in memory only.
func New(backing Backing, log logger.Logger, opts Options) *Store {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.LetterTimeout <= 0 {
		opts.LetterTimeout = DefaultLetterTimeout
	}
	return &Store{
		byID:    make(map[string]int),
		backing: backing,
		logger:  log,
		opts:    opts,
	}
}

// Load fills the store from the backing storage. A read failure is logged and
// leaves the store empty so the caller can trigger a refresh. Load shares the
// refresh flight, so an EnsureLoaded arriving meanwhile waits for it instead
// of starting a remote fetch.
func (s *Store) Load(ctx context.Context) int {
	if s.backing == nil {
		return 0
	}
	return s.do(ctx, func(rctx context.Context) flightResult {
		if !s.IsEmpty() {
			return flightResult{count: s.Count()}
		}
		return flightResult{count: s.load(rctx)}
	}).count
}

func (s *Store) load(ctx context.Context) int {
	drinks, err := s.backing.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load catalog from backing store, starting empty",
			logger.Error(err))
		return 0
	}

	s.replace(normalize(drinks), time.Time{})
	s.logger.Info("loaded catalog from backing store",
		logger.Int("count", len(drinks)))
	return s.Count()
}

// EnsureLoaded refreshes the catalog only when it is empty and returns the
// snapshot size. Emptiness is checked again inside the shared flight, so a
// caller arriving just after a refresh completes does not start another one.
// Joining a Load that found nothing stored is followed by a refresh.
func (s *Store) EnsureLoaded(ctx context.Context, fetch LetterFetcher) int {
	for {
		if !s.IsEmpty() {
			return s.Count()
		}
		res := s.do(ctx, func(rctx context.Context) flightResult {
			if !s.IsEmpty() {
				return flightResult{count: s.Count()}
			}
			return flightResult{count: s.refresh(rctx, fetch), refreshed: true}
		})
		if res.refreshed || res.count > 0 || ctx.Err() != nil {
			return res.count
		}
	}
}

// Refresh rebuilds the catalog from fetch and persists it.
func (s *Store) Refresh(ctx context.Context, fetch LetterFetcher) int {
	return s.do(ctx, func(rctx context.Context) flightResult {
		return flightResult{count: s.refresh(rctx, fetch), refreshed: true}
	}).count
}

// flightResult is what a shared flight hands to every waiting caller.
type flightResult struct {
	count     int
	refreshed bool // the flight fetched from the remote catalog
}

// do runs fn as the single in-flight load or refresh; concurrent callers
// share it. A caller whose ctx ends stops waiting, the flight itself keeps
// going and is bounded by the per-letter timeout.
func (s *Store) do(ctx context.Context, fn func(context.Context) flightResult) flightResult {
	ch := s.flight.DoChan("refresh", func() (interface{}, error) {
		return fn(context.WithoutCancel(ctx)), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.logger.Debug("joined in-flight catalog refresh")
		}
		return res.Val.(flightResult)
	case <-ctx.Done():
		return flightResult{count: s.Count()}
	}
}

func (s *Store) refresh(ctx context.Context, fetch LetterFetcher) int {
	start := time.Now()
	s.logger.Info("refreshing catalog",
		logger.Int("letters", len(Letters)),
		logger.Int("concurrency", s.opts.Concurrency))

	results := make([][]domain.Drink, len(Letters))

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, r := range Letters {
		letter := string(r)
		g.Go(func() error {
			results[i] = s.fetchLetter(ctx, fetch, letter)
			return nil
		})
	}
	_ = g.Wait() // letter failures are absorbed in fetchLetter

	var all []domain.Drink
	for _, drinks := range results {
		all = append(all, drinks...)
	}
	snapshot := normalize(all)

	s.replace(snapshot, time.Now())
	refreshDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("catalog refreshed",
		logger.Int("count", len(snapshot)),
		logger.Duration("elapsed", time.Since(start)))

	s.persist(ctx, snapshot)
	return len(snapshot)
}

// fetchLetter runs one letter fetch under its own timeout. Any failure yields
// zero drinks for that letter.
func (s *Store) fetchLetter(ctx context.Context, fetch LetterFetcher, letter string) []domain.Drink {
	lctx, cancel := context.WithTimeout(ctx, s.opts.LetterTimeout)
	defer cancel()

	type result struct {
		drinks []domain.Drink
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		drinks, err := fetch(lctx, letter)
		ch <- result{drinks: drinks, err: err}
	}()

	var res result
	select {
	case res = <-ch:
	case <-lctx.Done():
		res.err = errLetterTimeout
	}

	if res.err != nil {
		reason := "error"
		if errors.Is(res.err, errLetterTimeout) || errors.Is(res.err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		letterFailures.WithLabelValues(reason).Inc()
		s.logger.Warn("letter fetch failed, treating as empty",
			logger.String("letter", letter),
			logger.String("reason", reason),
			logger.Error(res.err))
		return nil
	}
	return res.drinks
}

// persist saves a snapshot to the backing storage. An empty snapshot is not
// written so a fully failed refresh cannot wipe the stored catalog.
func (s *Store) persist(ctx context.Context, snapshot []domain.Drink) {
	if s.backing == nil {
		return
	}
	if len(snapshot) == 0 {
		s.logger.Warn("refresh produced an empty catalog, backing store left untouched")
		return
	}
	if err := s.backing.Save(ctx, snapshot); err != nil {
		s.logger.Warn("failed to persist catalog",
			logger.Error(err))
		return
	}
	s.logger.Debug("catalog persisted",
		logger.Int("count", len(snapshot)))
}

// replace swaps the snapshot in one step.
func (s *Store) replace(drinks []domain.Drink, at time.Time) {
	byID := make(map[string]int, len(drinks))
	for i, d := range drinks {
		byID[d.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.drinks = drinks
	s.byID = byID
	s.lastRefresh = at
	catalogSize.Set(float64(len(drinks)))
}

// normalize drops drinks without an id, keeps the first occurrence of each id
// and marks every entry as remote.
func normalize(in []domain.Drink) []domain.Drink {
	out := make([]domain.Drink, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, d := range in {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" || seen[d.ID] {
			continue
		}
		seen[d.ID] = true

		d.Provenance = domain.ProvenanceRemote
		d.Annotation = nil
		if d.Category == domain.CreatedCategory {
			d.Category = ""
		}
		out = append(out, d)
	}
	return out
}

// IsEmpty reports whether the snapshot holds no drinks
func (s *Store) IsEmpty() bool {
	return s.Count() == 0
}

// Count returns the number of drinks in the snapshot
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.drinks)
}

// LastRefresh returns when the snapshot was last rebuilt from the remote
// catalog. It is zero when the snapshot came from the backing store.
func (s *Store) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastRefresh
}

// All returns the snapshot in order. The slice is new, the drinks share their
// ingredient slices with the store and must be cloned before mutation.
func (s *Store) All() []domain.Drink {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Drink, len(s.drinks))
	copy(out, s.drinks)
	return out
}

// ByCategory returns the drinks whose category equals name
func (s *Store) ByCategory(name string) []domain.Drink {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Drink
	for _, d := range s.drinks {
		if d.Category == name {
			out = append(out, d)
		}
	}
	return out
}

// ByIDExact retrieves a drink by ID
func (s *Store) ByIDExact(id string) (domain.Drink, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return domain.Drink{}, false
	}
	return s.drinks[i], true
}

// Categories returns the distinct categories in snapshot order
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	seen := make(map[string]bool)
	for _, d := range s.drinks {
		if d.Category == "" || seen[d.Category] {
			continue
		}
		seen[d.Category] = true
		out = append(out, d.Category)
	}
	return out
}

// Random returns one drink picked uniformly from the snapshot
func (s *Store) Random() (domain.Drink, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.drinks) == 0 {
		return domain.Drink{}, false
	}
	return s.drinks[rand.IntN(len(s.drinks))], true
}
