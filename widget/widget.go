package widget

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/jonwraymond/docsearch/catalog"
	"github.com/jonwraymond/docsearch/config"
	"github.com/jonwraymond/docsearch/dropdown"
	"github.com/jonwraymond/docsearch/logging"
	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/search"
)

// KeyBackspace is reported as the key when typing leaves the input empty.
const KeyBackspace dropdown.Key = "Backspace"

// Options configures a Widget.
type Options struct {
	// Catalog is the searchable document set. If nil, uses catalog.Default().
	Catalog *catalog.Catalog

	// Renderer receives rendered results. If nil, a new dropdown.Panel is used.
	Renderer dropdown.Renderer

	// Logger is used by the index and controller. If nil, uses slog.Default().
	Logger *slog.Logger

	// Metrics records widget activity. Optional.
	Metrics *metrics.Metrics

	// MaxResults caps results per query. Zero means unlimited.
	MaxResults int

	// MinScore drops results scoring below it. Zero keeps every result.
	MinScore float64

	// RetainKeyListeners keeps the key listeners attached after close.
	// Default: false (all listeners are detached on close).
	RetainKeyListeners bool
}

// Widget is the search dropdown facade.
type Widget struct {
	page       *dropdown.Page
	index      *search.Lazy
	controller *dropdown.Controller
	renderer   dropdown.Renderer
	panel      *dropdown.Panel // nil if a custom renderer was supplied

	input string
	focus dropdown.Target
}

// New creates a closed widget. The index is not built until the first Open.
func New(opts Options) (*Widget, error) {
	if opts.MaxResults < 0 {
		return nil, fmt.Errorf("max results must be >= 0, got %d", opts.MaxResults)
	}
	if opts.MinScore < 0 {
		return nil, fmt.Errorf("min score must be >= 0, got %g", opts.MinScore)
	}

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	w := &Widget{
		page:  dropdown.NewPage(),
		focus: dropdown.Outside(),
	}

	if opts.Renderer != nil {
		w.renderer = opts.Renderer
	} else {
		w.panel = dropdown.NewPanel()
		w.renderer = w.panel
	}

	w.index = search.NewLazy(cat,
		search.WithLogger(logging.WithComponent(opts.Logger, "search")),
		search.WithMetrics(opts.Metrics),
		search.WithMaxResults(opts.MaxResults),
		search.WithMinScore(opts.MinScore),
	)

	w.controller = dropdown.New(w.page, w.index, w.renderer,
		dropdown.WithLogger(logging.WithComponent(opts.Logger, "dropdown")),
		dropdown.WithMetrics(opts.Metrics),
		dropdown.WithRetainedKeyListeners(opts.RetainKeyListeners),
	)

	return w, nil
}

// FromConfig creates a widget from cfg, loading the catalog file if set.
func FromConfig(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*Widget, error) {
	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}

	return New(Options{
		Catalog:            cat,
		Logger:             logger,
		Metrics:            m,
		MaxResults:         cfg.Search.MaxResults,
		MinScore:           cfg.Search.MinScore,
		RetainKeyListeners: !cfg.Dropdown.DetachKeysOnClose,
	})
}

// Open activates the search bar.
func (w *Widget) Open(ctx context.Context) error {
	_, err := w.Click(ctx, dropdown.SearchBar())
	return err
}

// Click delivers a click on target. A click on the search bar activates the
// dropdown and is not propagated to the page.
func (w *Widget) Click(ctx context.Context, target dropdown.Target) (dropdown.Effect, error) {
	w.focus = target

	if target.Kind == dropdown.TargetSearchBar {
		effect, err := w.controller.Activate(ctx)
		if err != nil || effect.StopPropagation {
			return effect, err
		}
	}
	if target.Kind == dropdown.TargetResult {
		w.renderer.Focus(target.Index)
	}

	return w.page.Dispatch(dropdown.Event{Type: dropdown.EventClick, Target: target}), nil
}

// Type replaces the search input's text, as if the user edited it, and
// delivers the key-down and key-up of the last keystroke.
func (w *Widget) Type(text string) dropdown.Effect {
	w.input = text
	w.focus = dropdown.SearchBar()

	key := KeyBackspace
	if r, size := utf8.DecodeLastRuneInString(text); size > 0 {
		key = dropdown.Key(string(r))
	}
	return w.press(key)
}

// Key delivers a key press to the focused element.
func (w *Widget) Key(key dropdown.Key) dropdown.Effect {
	return w.press(key)
}

func (w *Widget) press(key dropdown.Key) dropdown.Effect {
	down := w.page.Dispatch(dropdown.Event{
		Type:   dropdown.EventKeyDown,
		Target: w.focus,
		Key:    key,
		Value:  w.input,
	})

	if down.PreventDefault {
		w.follow(key)
	}

	up := w.page.Dispatch(dropdown.Event{
		Type:   dropdown.EventKeyUp,
		Target: w.focus,
		Key:    key,
		Value:  w.input,
	})

	return dropdown.Effect{
		PreventDefault:  down.PreventDefault || up.PreventDefault,
		StopPropagation: down.StopPropagation || up.StopPropagation,
	}
}

// follow moves focus to the result the controller just focused. Only arrow
// keys move focus; the panel's focused index is stale after anything else.
func (w *Widget) follow(key dropdown.Key) {
	i := w.renderer.Focused()
	if i < 0 {
		return
	}
	switch {
	case key == dropdown.KeyArrowDown && w.focus.Kind == dropdown.TargetSearchBar:
		w.focus = dropdown.ResultAt(i)
	case (key == dropdown.KeyArrowDown || key == dropdown.KeyArrowUp) && w.focus.Kind == dropdown.TargetResult:
		w.focus = dropdown.ResultAt(i)
	}
}

// State returns the dropdown state.
func (w *Widget) State() dropdown.State {
	return w.controller.State()
}

// Focus returns the element that currently receives key presses.
func (w *Widget) Focus() dropdown.Target {
	return w.focus
}

// Input returns the search input's text.
func (w *Widget) Input() string {
	return w.input
}

// Panel returns the built-in panel, or nil if a custom renderer is in use.
func (w *Widget) Panel() *dropdown.Panel {
	return w.panel
}

// Page returns the listener registry.
func (w *Widget) Page() *dropdown.Page {
	return w.page
}

// Index returns the lazily built search index.
func (w *Widget) Index() *search.Lazy {
	return w.index
}

// Close closes the dropdown and releases the index.
func (w *Widget) Close() error {
	w.controller.Close()
	return w.index.Close()
}
