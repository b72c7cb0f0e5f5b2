// Package search drives the search workflow: validation, dispatch to the
// catalog, result state and pagination.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/export"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
)

// Phase is the state of the search workflow.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSearching  Phase = "searching"
	PhaseDisplaying Phase = "displaying"
	PhaseError      Phase = "error"
)

var (
	// ErrSearchInProgress rejects a full search submitted while another runs.
	ErrSearchInProgress = errors.New("a search is already in progress")

	// ErrPageOutOfRange rejects a page outside [1, TotalPages].
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrSuperseded is returned to a caller whose response arrived after a
	// newer request was issued; its results were discarded.
	ErrSuperseded = errors.New("search superseded by a newer request")
)

// Catalog is the subset of the remote catalog the coordinator dispatches to.
type Catalog interface {
	SearchByName(ctx context.Context, term string) ([]domain.CocktailSummary, error)
	SearchByIngredient(ctx context.Context, ingredient string) ([]domain.CocktailSummary, error)
	AdvancedSearch(ctx context.Context, criteria domain.Criteria) ([]domain.CocktailSummary, error)
}

// History records submitted search terms.
type History interface {
	AddSearchHistory(ctx context.Context, term string)
}

// State is a snapshot of the workflow. Results holds the current page only.
type State struct {
	Phase        Phase                    `json:"phase"`
	IsSearching  bool                     `json:"isSearching"`
	Criteria     domain.Criteria          `json:"criteria"`
	Results      []domain.CocktailSummary `json:"results"`
	Page         int                      `json:"page"`
	TotalResults int                      `json:"totalResults"`
	TotalPages   int                      `json:"totalPages"`
	Error        string                   `json:"error,omitempty"`
}

// Options tunes a Coordinator.
type Options struct {
	ItemsPerPage  int
	DebounceDelay time.Duration
	QuickTimeout  time.Duration    // bounds a debounced quick search
	Now           func() time.Time // for testing
}

// Coordinator owns the search state. Remote calls run outside mu; every
// dispatched query takes a token and only the latest token may apply its
// result.
type Coordinator struct {
	catalog  Catalog
	history  History
	logger   logger.Logger
	debounce *Debouncer
	perPage  int
	quickTTL time.Duration
	now      func() time.Time

	mu       sync.Mutex
	token    uint64
	inFlight bool
	phase    Phase
	criteria domain.Criteria
	results  []domain.CocktailSummary
	page     int
	lastErr  string
}

// NewCoordinator creates an idle Coordinator.
func NewCoordinator(catalog Catalog, history History, log logger.Logger, opts Options) *Coordinator {
	if opts.ItemsPerPage <= 0 {
		opts.ItemsPerPage = 10
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = 500 * time.Millisecond
	}
	if opts.QuickTimeout <= 0 {
		opts.QuickTimeout = 15 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Coordinator{
		catalog:  catalog,
		history:  history,
		logger:   log,
		debounce: NewDebouncer(opts.DebounceDelay),
		perPage:  opts.ItemsPerPage,
		quickTTL: opts.QuickTimeout,
		now:      opts.Now,
		phase:    PhaseIdle,
	}
}

// Submit runs a full search. Criteria are trimmed and validated first; every
// violated rule is reported at once and nothing is dispatched.
func (c *Coordinator) Submit(ctx context.Context, criteria domain.Criteria) (State, error) {
	criteria = criteria.Trimmed()
	if err := criteria.Validate(); err != nil {
		return c.State(), err
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return c.State(), ErrSearchInProgress
	}
	c.inFlight = true
	tok := c.issue(criteria)
	c.mu.Unlock()

	if criteria.Name != "" {
		c.history.AddSearchHistory(ctx, criteria.Name)
	}

	start := time.Now()
	results, err := c.dispatch(ctx, criteria)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if tok != c.token {
		c.logger.Debug("discarding stale search response",
			logger.Uint64("token", tok),
			logger.Uint64("latest", c.token))
		return c.snapshot(), ErrSuperseded
	}

	if err != nil {
		c.phase = PhaseError
		c.results = nil
		c.page = 0
		c.lastErr = err.Error()
		c.logger.Warn("search failed",
			logger.String("criteria", describe(criteria)),
			logger.Error(err))
		return c.snapshot(), err
	}

	c.display(results)
	c.logger.Debug("search completed",
		logger.String("criteria", describe(criteria)),
		logger.Int("results", len(results)),
		logger.Duration("took", time.Since(start)))
	return c.snapshot(), nil
}

// dispatch picks the cheapest catalog operation able to answer criteria.
func (c *Coordinator) dispatch(ctx context.Context, criteria domain.Criteria) ([]domain.CocktailSummary, error) {
	switch {
	case criteria.Name != "" && criteria.Category == "" && criteria.Ingredient == "" && criteria.Glass == "":
		return c.catalog.SearchByName(ctx, criteria.Name)
	case criteria.Ingredient != "" && criteria.Name == "" && criteria.Category == "" && criteria.Glass == "":
		return c.catalog.SearchByIngredient(ctx, criteria.Ingredient)
	default:
		return c.catalog.AdvancedSearch(ctx, criteria)
	}
}

// QuickSearch runs a name search without validation or history. Empty input
// resets to idle; a single character is ignored. Failures reset to idle and
// are not returned.
func (c *Coordinator) QuickSearch(ctx context.Context, input string) (State, error) {
	term := strings.TrimSpace(input)
	switch {
	case term == "":
		c.Reset()
		return c.State(), nil
	case !domain.ValidTerm(term):
		return c.State(), nil
	}

	c.mu.Lock()
	tok := c.issue(domain.Criteria{Name: term})
	c.mu.Unlock()

	results, err := c.catalog.SearchByName(ctx, term)

	c.mu.Lock()
	defer c.mu.Unlock()

	if tok != c.token {
		return c.snapshot(), ErrSuperseded
	}

	if err != nil {
		c.logger.Debug("quick search failed, clearing results",
			logger.String("term", term),
			logger.Error(err))
		c.clear()
		return c.snapshot(), nil
	}

	c.display(results)
	return c.snapshot(), nil
}

// Type feeds live input. The quick search runs once input has been quiet for
// the debounce delay; only the last input of a burst is searched.
func (c *Coordinator) Type(ctx context.Context, input string) {
	base := context.WithoutCancel(ctx)
	c.debounce.Trigger(func() {
		qctx, cancel := context.WithTimeout(base, c.quickTTL)
		defer cancel()

		if _, err := c.QuickSearch(qctx, input); err != nil && !errors.Is(err, ErrSuperseded) {
			c.logger.Debug("live search failed", logger.Error(err))
		}
	})
}

// Page moves to page n of the current results. Out-of-range pages leave the
// state unchanged.
func (c *Coordinator) Page(n int) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseDisplaying || !domain.ValidPage(n, len(c.results), c.perPage) {
		return c.snapshot(), ErrPageOutOfRange
	}
	c.page = n
	return c.snapshot(), nil
}

// State returns a snapshot of the workflow.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

// Reset returns to idle, drops pending live input and invalidates any
// response still in flight.
func (c *Coordinator) Reset() {
	c.debounce.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.token++
	c.clear()
}

// Lookup finds id among the current results.
func (c *Coordinator) Lookup(id string) (domain.CocktailSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.results {
		if r.ID == id {
			return r, true
		}
	}
	return domain.CocktailSummary{}, false
}

// ExportResults renders the full current result set.
func (c *Coordinator) ExportResults(format export.Format) (export.Document, error) {
	c.mu.Lock()
	results := append([]domain.CocktailSummary(nil), c.results...)
	c.mu.Unlock()

	return export.Results(results, format, c.now())
}

// Close stops pending live searches.
func (c *Coordinator) Close() {
	c.debounce.Stop()
}

// issue must be called with mu held.
func (c *Coordinator) issue(criteria domain.Criteria) uint64 {
	c.token++
	c.phase = PhaseSearching
	c.criteria = criteria
	c.lastErr = ""
	return c.token
}

func (c *Coordinator) display(results []domain.CocktailSummary) {
	if results == nil {
		results = []domain.CocktailSummary{}
	}
	c.phase = PhaseDisplaying
	c.results = results
	c.page = 1
	c.lastErr = ""
}

func (c *Coordinator) clear() {
	c.phase = PhaseIdle
	c.criteria = domain.Criteria{}
	c.results = nil
	c.page = 0
	c.lastErr = ""
}

func (c *Coordinator) snapshot() State {
	s := State{
		Phase:        c.phase,
		IsSearching:  c.phase == PhaseSearching,
		Criteria:     c.criteria,
		Results:      []domain.CocktailSummary{},
		Page:         c.page,
		TotalResults: len(c.results),
		TotalPages:   domain.TotalPages(len(c.results), c.perPage),
		Error:        c.lastErr,
	}
	if c.page > 0 {
		s.Results = append(s.Results, domain.Paginate(c.results, c.page, c.perPage)...)
	}
	return s
}

func describe(c domain.Criteria) string {
	var parts []string
	for _, kv := range [][2]string{
		{"name", c.Name}, {"category", c.Category}, {"ingredient", c.Ingredient}, {"glass", c.Glass},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	return strings.Join(parts, " ")
}
