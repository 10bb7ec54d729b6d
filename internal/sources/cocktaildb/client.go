// Package cocktaildb is a client for the public TheCocktailDB JSON API.
package cocktaildb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/logger"
	"github.com/MrSnakeDoc/barback/internal/utils"
)

const (
	// DefaultBaseURL is the free-tier API root.
	DefaultBaseURL = "https://www.thecocktaildb.com/api/json/v1/1/"

	DefaultTimeout = 10 * time.Second
	DefaultRPS     = 5.0
	DefaultBurst   = 5

	// maxBodyBytes caps a response body; a full letter page is well below.
	maxBodyBytes = 4 << 20
)

// Endpoint names, also used as metric labels.
const (
	endpointCategories = "categories"
	endpointLetter     = "letter"
	endpointName       = "name"
	endpointIngredient = "ingredient"
	endpointAlcoholic  = "alcoholic"
	endpointLookup     = "lookup"
)

// Options configures the client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RPS and Burst throttle outbound calls. A catalog refresh fans out to
	// 26 letters, the free API tier does not like bursts.
	RPS   float64
	Burst int
}

// Client talks to the remote drink API. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	logger  logger.Logger
}

// New creates a client. Zero options take their defaults.
func New(opts Options, log logger.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RPS <= 0 {
		opts.RPS = DefaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid cocktaildb base url %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid cocktaildb base url %q: scheme must be http or https", opts.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	return &Client{
		base:    base,
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		logger:  log,
	}, nil
}

// ListCategories returns the category names in API order.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	recs, err := c.get(ctx, endpointCategories, "list.php", url.Values{"c": {"list"}})
	if err != nil {
		return nil, err
	}
	return mapCategories(recs), nil
}

// FetchByLetter returns full drinks whose name starts with letter.
func (c *Client) FetchByLetter(ctx context.Context, letter string) ([]domain.Drink, error) {
	return c.drinks(ctx, endpointLetter, "search.php", url.Values{"f": {letter}})
}

// FetchByName returns full drinks whose name contains name.
func (c *Client) FetchByName(ctx context.Context, name string) ([]domain.Drink, error) {
	return c.drinks(ctx, endpointName, "search.php", url.Values{"s": {name}})
}

// FetchByIngredient returns partial drinks (id, name, thumbnail) that use
// ingredient.
func (c *Client) FetchByIngredient(ctx context.Context, ingredient string) ([]domain.Drink, error) {
	return c.drinks(ctx, endpointIngredient, "filter.php", url.Values{"i": {ingredient}})
}

// FetchByAlcoholic returns partial drinks with the given flag. The unknown
// flag has no API filter and yields nothing.
func (c *Client) FetchByAlcoholic(ctx context.Context, flag domain.Alcoholic) ([]domain.Drink, error) {
	param := alcoholicParam(flag)
	if param == "" {
		return nil, nil
	}

	drinks, err := c.drinks(ctx, endpointAlcoholic, "filter.php", url.Values{"a": {param}})
	if err != nil {
		return nil, err
	}
	// filter results omit the flag itself
	for i := range drinks {
		drinks[i].Alcoholic = flag
	}
	return drinks, nil
}

// FetchByID looks up one drink. The bool is false when the id is unknown.
func (c *Client) FetchByID(ctx context.Context, id string) (domain.Drink, bool, error) {
	drinks, err := c.drinks(ctx, endpointLookup, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return domain.Drink{}, false, err
	}
	if len(drinks) == 0 {
		return domain.Drink{}, false, nil
	}
	return drinks[0], true, nil
}

func (c *Client) drinks(ctx context.Context, endpoint, path string, q url.Values) ([]domain.Drink, error) {
	recs, err := c.get(ctx, endpoint, path, q)
	if err != nil {
		return nil, err
	}
	return mapDrinks(recs), nil
}

// get performs one throttled GET and decodes the drinks envelope.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values) (recs []record, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		requestsTotal.WithLabelValues(endpoint, outcome).Inc()
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %w", endpoint, err)
	}

	u := c.base.ResolveReference(&url.URL{Path: path, RawQuery: q.Encode()})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", endpoint, err)
	}
	defer utils.CloseLogged(resp.Body, "cocktaildb response body", c.logger)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", endpoint, resp.StatusCode)
	}

	// the API answers some misses with an empty body
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", endpoint, err)
	}
	recs, err = env.records()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	c.logger.Debug("cocktaildb request",
		logger.String("endpoint", endpoint),
		logger.Int("records", len(recs)),
		logger.Duration("elapsed", time.Since(start)))
	return recs, nil
}
