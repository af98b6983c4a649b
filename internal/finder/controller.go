// Package finder holds the client-side half of the recipe finder: the
// search controller that debounces typed queries, drives the two proxy
// endpoints and tracks what the user sees, plus the helpers front ends
// share for rendering a recipe.
package finder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/windoze95/recipefinder/internal/models"
)

// Backend performs the two fetches the controller needs. Client implements
// it over HTTP; the live session wires it straight to the service layer.
type Backend interface {
	Search(ctx context.Context, query string) ([]models.RecipeSummary, error)
	Details(ctx context.Context, id int) (*models.RecipeDetail, error)
}

// State is a snapshot of everything a front end renders. Slices and the
// selected recipe are shared with the controller and must not be modified.
type State struct {
	Query          string                 `json:"query"`
	DebouncedQuery string                 `json:"debouncedQuery"`
	Results        []models.RecipeSummary `json:"results"`
	Selected       *models.RecipeDetail   `json:"selected,omitempty"`
	Loading        bool                   `json:"loading"`
	DetailLoading  bool                   `json:"detailLoading"`
	Error          string                 `json:"error,omitempty"`
}

// ShowingGrid reports whether the result grid is visible. The grid is
// hidden while a recipe is open or being fetched.
func (s State) ShowingGrid() bool {
	return s.Selected == nil && !s.DetailLoading
}

// ShowingDetail reports whether the detail view is visible.
func (s State) ShowingDetail() bool {
	return s.Selected != nil
}

// Steps returns the numbered instruction steps of the selected recipe.
func (s State) Steps() []string {
	if s.Selected == nil {
		return nil
	}
	return NumberSteps(SplitInstructions(s.Selected.Instructions))
}

// Options configures a Controller.
type Options struct {
	// Debounce is the quiet period before a query is searched. Zero means
	// DefaultDebounce.
	Debounce time.Duration
}

// Controller owns the UI state of one search session. All methods are safe
// for concurrent use. Each fetch carries a generation number; a result
// that arrives after a newer search, selection or back navigation is
// dropped instead of overwriting newer state.
type Controller struct {
	backend   Backend
	debouncer *Debouncer
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	mu        sync.Mutex
	state     State
	searchGen uint64
	detailGen uint64
	closed    bool
	changes   chan struct{}
}

// NewController creates a controller in grid mode with no results.
func NewController(backend Backend, opts Options) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		backend: backend,
		ctx:     ctx,
		cancel:  cancel,
		state:   State{Results: []models.RecipeSummary{}},
		changes: make(chan struct{}, 1),
	}
	c.debouncer = NewDebouncer(opts.Debounce, c.commitQuery)
	return c
}

// Changes signals after state changes. Signals coalesce: a receiver
// should call State to read the latest snapshot. The channel is closed
// by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetQuery records a keystroke. The query is visible immediately; the
// search runs only once the input has been quiet for the debounce period.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	if c.closed || c.state.Query == query {
		c.mu.Unlock()
		return
	}
	c.state.Query = query
	c.notifyLocked()
	c.mu.Unlock()

	c.debouncer.Push(query)
}

// commitQuery runs when the debounce timer fires uninterrupted.
func (c *Controller) commitQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || query == c.state.DebouncedQuery {
		return
	}

	c.state.DebouncedQuery = query
	c.searchGen++

	if strings.TrimSpace(query) == "" {
		c.state.Results = []models.RecipeSummary{}
		c.state.Loading = false
		c.notifyLocked()
		return
	}

	c.detailGen++
	c.state.Loading = true
	c.state.Selected = nil
	c.state.DetailLoading = false
	c.state.Error = ""
	c.notifyLocked()

	c.wg.Add(1)
	go c.runSearch(c.searchGen, query)
}

func (c *Controller) runSearch(gen uint64, query string) {
	defer c.wg.Done()
	defer c.update(func(s *State) bool {
		if gen != c.searchGen || !s.Loading {
			return false
		}
		s.Loading = false
		return true
	})

	results, err := c.backend.Search(c.ctx, query)

	c.update(func(s *State) bool {
		if gen != c.searchGen {
			return false
		}
		s.Loading = false
		if err != nil {
			s.Error = userMessage(err, models.ErrMsgSearchFailed)
			s.Results = []models.RecipeSummary{}
			return true
		}
		if results == nil {
			results = []models.RecipeSummary{}
		}
		s.Results = results
		s.Error = ""
		return true
	})
}

// Select opens the recipe with the given ID. The grid and any previous
// error are cleared at once; the detail view appears when the fetch
// succeeds, otherwise the grid returns with an error.
func (c *Controller) Select(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.detailGen++
	c.state.Error = ""
	c.state.Selected = nil
	c.state.DetailLoading = true
	c.notifyLocked()

	c.wg.Add(1)
	go c.runDetails(c.detailGen, id)
}

func (c *Controller) runDetails(gen uint64, id int) {
	defer c.wg.Done()
	defer c.update(func(s *State) bool {
		if gen != c.detailGen || !s.DetailLoading {
			return false
		}
		s.DetailLoading = false
		return true
	})

	detail, err := c.backend.Details(c.ctx, id)

	c.update(func(s *State) bool {
		if gen != c.detailGen {
			return false
		}
		s.DetailLoading = false
		if err != nil {
			s.Error = userMessage(err, models.ErrMsgDetailsFailed)
			return true
		}
		s.Selected = detail
		return true
	})
}

// Back closes the detail view. The result list is kept.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.detailGen++
	c.state.Selected = nil
	c.state.DetailLoading = false
	c.notifyLocked()
}

// Close stops the debounce timer, cancels in-flight fetches and waits for
// them to return. The Changes channel is closed afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.debouncer.Stop()
	c.cancel()
	c.wg.Wait()

	c.mu.Lock()
	close(c.changes)
	c.mu.Unlock()
}

// update applies fn under the lock and signals a change when fn reports one.
func (c *Controller) update(fn func(s *State) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if !fn(&c.state) {
		return false
	}
	c.notifyLocked()
	return true
}

func (c *Controller) notifyLocked() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// userMessage turns a fetch error into the single string shown to the user.
func userMessage(err error, fallback string) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return fallback
}
