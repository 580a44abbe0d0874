package dropdown

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/search"
)

// Searcher is the query contract the controller depends on.
type Searcher interface {
	// Prepare builds the index if it has not been built yet.
	Prepare(ctx context.Context) error
	// Query returns ranked matches for non-empty text.
	Query(ctx context.Context, text string) ([]search.Match, error)
}

// Controller is the dropdown lifecycle state machine.
type Controller struct {
	mu sync.Mutex

	page     *Page
	searcher Searcher
	renderer Renderer

	state      State
	retainKeys bool

	removeClick   func()
	removeKeyDown func()
	removeKeyUp   func()

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a closed controller. renderer may be nil, in which case every
// rendering and focus operation is a no-op and the dropdown never opens.
func New(page *Page, searcher Searcher, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		page:     page,
		searcher: searcher,
		renderer: renderer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Activate handles a user activation of the search bar. The index is built
// on first activation; then the panel is shown and the page listeners are
// attached. Activating an open dropdown changes nothing. The returned effect
// always suppresses the activating click so it does not reach the page.
func (c *Controller) Activate(ctx context.Context) (Effect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.searcher.Prepare(ctx); err != nil {
		c.logger.Error("search index unavailable", "error", err)
		return suppress, err
	}
	if c.renderer == nil {
		return suppress, nil
	}

	if !c.renderer.Visible() {
		c.renderer.Show()
	}
	if c.state == StateOpen {
		return suppress, nil
	}

	c.attachListeners()
	c.state = StateOpen
	c.metrics.ObserveTransition(StateOpen.String())
	c.logger.Debug("search dropdown opened")
	return suppress, nil
}

// Close hides the panel and detaches the page listeners.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller) closeLocked() {
	if c.state == StateClosed {
		return
	}
	if c.renderer != nil {
		c.renderer.Hide()
	}
	c.detachListeners()
	c.state = StateClosed
	c.metrics.ObserveTransition(StateClosed.String())
	c.logger.Debug("search dropdown closed")
}

// attachListeners adds each page listener that is not already attached.
func (c *Controller) attachListeners() {
	if c.removeClick == nil {
		c.removeClick = c.page.AddListener(EventClick, c.onClick)
	}
	if c.removeKeyDown == nil {
		c.removeKeyDown = c.page.AddListener(EventKeyDown, c.onKeyDown)
	}
	if c.removeKeyUp == nil {
		c.removeKeyUp = c.page.AddListener(EventKeyUp, c.onKeyUp)
	}
}

func (c *Controller) detachListeners() {
	if c.removeClick != nil {
		c.removeClick()
		c.removeClick = nil
	}
	if c.retainKeys {
		return
	}
	if c.removeKeyDown != nil {
		c.removeKeyDown()
		c.removeKeyDown = nil
	}
	if c.removeKeyUp != nil {
		c.removeKeyUp()
		c.removeKeyUp = nil
	}
}

func (c *Controller) onClick(ev Event) Effect {
	if ev.Target.withinControl() {
		return Effect{}
	}
	c.Close()
	return Effect{}
}

func (c *Controller) onKeyDown(ev Event) Effect {
	if !ev.Target.navigable() {
		return Effect{}
	}

	switch ev.Key {
	case KeyArrowDown:
		c.selectDown(ev.Target)
	case KeyArrowUp:
		c.selectUp(ev.Target)
	case KeyEscape:
		c.Close()
	default:
		return Effect{}
	}
	c.metrics.ObserveNavigation(string(ev.Key))
	return suppress
}

func (c *Controller) onKeyUp(ev Event) Effect {
	if ev.Target.Kind != TargetSearchBar || ev.Key.isNavigation() {
		return Effect{}
	}
	c.runSearch(ev.Value)
	return Effect{}
}

// runSearch queries for text and renders the matches. Empty text clears the
// results without consulting the index.
func (c *Controller) runSearch(text string) {
	if text == "" {
		c.metrics.ObserveQuery(metrics.OutcomeEmpty, 0)
		c.render(nil)
		return
	}

	matches, err := c.searcher.Query(context.Background(), text)
	if err != nil {
		c.logger.Warn("search failed", "query", text, "error", err)
		return
	}
	c.render(matches)
}

// render replaces the panel's items. It does nothing while the panel is
// hidden or absent.
func (c *Controller) render(matches []search.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.renderer == nil || !c.renderer.Visible() {
		return
	}
	items := make([]ResultItem, len(matches))
	for i, m := range matches {
		items[i] = ResultItem{Index: i, Title: m.Name, URL: m.URL}
	}
	c.renderer.Render(items)
}
