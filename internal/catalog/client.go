package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
	"github.com/MrSnakeDoc/cocktails/internal/utils"
)

// Catalog endpoints, relative to the base URL.
const (
	pathRandom = "/random.php"
	pathLookup = "/lookup.php"
	pathSearch = "/search.php"
	pathFilter = "/filter.php"
	pathList   = "/list.php"
)

// DefaultRandomSampleSize is how many random cocktails AdvancedSearch
// draws when neither a name nor an ingredient is given.
const DefaultRandomSampleSize = 20

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// Options configures a Client.
type Options struct {
	BaseURL          string        // ex: https://www.thecocktaildb.com/api/json/v1/1
	Timeout          time.Duration // per-request timeout (0 = none)
	RandomSampleSize int           // defaults to DefaultRandomSampleSize
	HTTPClient       *http.Client  // optional, overrides Timeout
}

// Client queries the remote cocktail catalog. It holds no state besides
// its configuration and is safe for concurrent use.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	randomSampleSize int
	logger           logger.Logger
}

// New creates a Client for the given catalog base URL.
func New(opts Options, log logger.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	sample := opts.RandomSampleSize
	if sample <= 0 {
		sample = DefaultRandomSampleSize
	}
	return &Client{
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		httpClient:       httpClient,
		randomSampleSize: sample,
		logger:           log,
	}
}

// fetch issues a GET for path with the non-empty params and decodes the
// drinks array. Every failure is reported as a *domain.RemoteError for op.
func (c *Client) fetch(ctx context.Context, op, path string, params url.Values) ([]rawDrink, error) {
	u := c.baseURL + path
	if q := encodeParams(params); q != "" {
		u += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Err: err}
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RemoteError{
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	drinks, err := decodeDrinks(body)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return drinks, nil
}

// encodeParams drops empty values before encoding.
func encodeParams(params url.Values) string {
	if len(params) == 0 {
		return ""
	}
	clean := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				clean.Add(k, v)
			}
		}
	}
	return clean.Encode()
}

// GetRandom returns one random cocktail, or nil when the catalog has none.
func (c *Client) GetRandom(ctx context.Context) (*domain.CocktailDetail, error) {
	drinks, err := c.fetch(ctx, "fetch random cocktail", pathRandom, nil)
	if err != nil {
		return nil, err
	}
	if len(drinks) == 0 {
		return nil, nil
	}
	d := drinks[0].detail()
	return &d, nil
}

// GetByID looks a cocktail up by id, returning nil when it does not exist.
func (c *Client) GetByID(ctx context.Context, id string) (*domain.CocktailDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("Cocktail ID is required")
	}

	drinks, err := c.fetch(ctx, "fetch cocktail with ID: "+id, pathLookup, url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	if len(drinks) == 0 {
		return nil, nil
	}
	d := drinks[0].detail()
	return &d, nil
}

// SearchByName returns cocktails whose name matches term.
func (c *Client) SearchByName(ctx context.Context, term string) ([]domain.CocktailSummary, error) {
	if !domain.ValidTerm(term) {
		return nil, domain.NewValidationError("Search term must be at least 2 characters long")
	}

	drinks, err := c.fetch(ctx, "search cocktails by name", pathSearch, url.Values{"s": {strings.TrimSpace(term)}})
	if err != nil {
		return nil, err
	}
	return summaries(drinks), nil
}

// SearchByIngredient returns cocktails containing ingredient. The catalog
// only sends id, name and thumbnail for these results.
func (c *Client) SearchByIngredient(ctx context.Context, ingredient string) ([]domain.CocktailSummary, error) {
	if !domain.ValidTerm(ingredient) {
		return nil, domain.NewValidationError("Ingredient name must be at least 2 characters long")
	}

	drinks, err := c.fetch(ctx, "search cocktails by ingredient", pathFilter, url.Values{"i": {strings.TrimSpace(ingredient)}})
	if err != nil {
		return nil, err
	}
	return summaries(drinks), nil
}

// ListCategories returns every drink category, or an empty list on failure.
func (c *Client) ListCategories(ctx context.Context) []string {
	return c.listTaxonomy(ctx, "fetch categories", "c", "strCategory")
}

// ListGlasses returns every glass type, or an empty list on failure.
func (c *Client) ListGlasses(ctx context.Context) []string {
	return c.listTaxonomy(ctx, "fetch glasses", "g", "strGlass")
}

// ListIngredients returns every ingredient name, or an empty list on failure.
func (c *Client) ListIngredients(ctx context.Context) []string {
	return c.listTaxonomy(ctx, "fetch ingredients", "i", "strIngredient1")
}

func (c *Client) listTaxonomy(ctx context.Context, op, param, field string) []string {
	drinks, err := c.fetch(ctx, op, pathList, url.Values{param: {"list"}})
	if err != nil {
		c.logger.Warn("taxonomy list unavailable",
			logger.String("op", op),
			logger.Error(err))
		return []string{}
	}

	out := make([]string, 0, len(drinks))
	for _, d := range drinks {
		if v := d.str(field); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// AdvancedSearch combines criteria. The base set comes from a name search,
// else an ingredient search, else a batch of random cocktails; it is then
// narrowed by category and glass (case-insensitive substring, AND).
func (c *Client) AdvancedSearch(ctx context.Context, criteria domain.Criteria) ([]domain.CocktailSummary, error) {
	criteria = criteria.Trimmed()

	var (
		results []domain.CocktailSummary
		err     error
	)
	switch {
	case criteria.Name != "":
		results, err = c.SearchByName(ctx, criteria.Name)
	case criteria.Ingredient != "":
		results, err = c.SearchByIngredient(ctx, criteria.Ingredient)
	default:
		results = c.randomSample(ctx)
	}
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, &domain.RemoteError{Op: "run advanced search", Err: err}
	}

	if criteria.Category != "" {
		results = filter(results, func(s domain.CocktailSummary) bool {
			return domain.ContainsFold(s.Category, criteria.Category)
		})
	}
	if criteria.Glass != "" {
		results = filter(results, func(s domain.CocktailSummary) bool {
			return domain.ContainsFold(s.Glass, criteria.Glass)
		})
	}
	return results, nil
}

// randomSample fetches randomSampleSize cocktails concurrently. A failed or
// empty call is dropped; the batch itself never fails.
func (c *Client) randomSample(ctx context.Context) []domain.CocktailSummary {
	slots := make([]*domain.CocktailDetail, c.randomSampleSize)

	var g errgroup.Group
	for i := range slots {
		g.Go(func() error {
			d, err := c.GetRandom(ctx)
			if err != nil {
				c.logger.Debug("random cocktail dropped from sample",
					logger.Int("slot", i),
					logger.Error(err))
				return nil
			}
			slots[i] = d
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.CocktailSummary, 0, len(slots))
	for _, d := range slots {
		if d != nil {
			out = append(out, d.CocktailSummary)
		}
	}
	return out
}

func filter(in []domain.CocktailSummary, keep func(domain.CocktailSummary) bool) []domain.CocktailSummary {
	out := make([]domain.CocktailSummary, 0, len(in))
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
