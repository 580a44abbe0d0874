package dropdown

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jonwraymond/docsearch/catalog"
	"github.com/jonwraymond/docsearch/metrics"
	"github.com/jonwraymond/docsearch/search"
)

type fakeSearcher struct {
	prepareErr error
	prepares   int
	queries    []string
	matches    map[string][]search.Match
}

func (f *fakeSearcher) Prepare(ctx context.Context) error {
	f.prepares++
	return f.prepareErr
}

func (f *fakeSearcher) Query(ctx context.Context, text string) ([]search.Match, error) {
	f.queries = append(f.queries, text)
	return f.matches[text], nil
}

func threeMatches() []search.Match {
	return []search.Match{
		{Name: "Getting started", URL: "/clipp/docs/"},
		{Name: "Usage info", URL: "/clipp/docs/usageinfo.html"},
		{Name: "ZIO", URL: "/clipp/docs/zio.html"},
	}
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *Page, *Panel, *fakeSearcher) {
	t.Helper()
	page := NewPage()
	panel := NewPanel()
	fs := &fakeSearcher{matches: map[string][]search.Match{"clipp": threeMatches()}}
	return New(page, fs, panel, opts...), page, panel, fs
}

func openController(t *testing.T, c *Controller) {
	t.Helper()
	if _, err := c.Activate(context.Background()); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
}

func typeText(page *Page, text string) {
	page.Dispatch(Event{Type: EventKeyUp, Target: SearchBar(), Key: "p", Value: text})
}

func TestController_StartsClosed(t *testing.T) {
	c, page, panel, fs := newTestController(t)

	if c.State() != StateClosed {
		t.Fatalf("expected closed, got %v", c.State())
	}
	if panel.Visible() {
		t.Error("panel should start hidden")
	}
	if fs.prepares != 0 {
		t.Error("index should not be built before activation")
	}
	for _, et := range []EventType{EventClick, EventKeyDown, EventKeyUp} {
		if n := page.ListenerCount(et); n != 0 {
			t.Errorf("expected no %v listeners, got %d", et, n)
		}
	}
}

func TestController_Activate(t *testing.T) {
	c, page, panel, fs := newTestController(t)

	effect, err := c.Activate(context.Background())
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if !effect.PreventDefault || !effect.StopPropagation {
		t.Errorf("activation should suppress the click, got %+v", effect)
	}
	if c.State() != StateOpen {
		t.Errorf("expected open, got %v", c.State())
	}
	if !panel.Visible() {
		t.Error("panel should be visible")
	}
	if fs.prepares != 1 {
		t.Errorf("expected 1 prepare, got %d", fs.prepares)
	}
	for _, et := range []EventType{EventClick, EventKeyDown, EventKeyUp} {
		if n := page.ListenerCount(et); n != 1 {
			t.Errorf("expected 1 %v listener, got %d", et, n)
		}
	}
}

func TestController_ActivateTwiceIsIdempotent(t *testing.T) {
	c, page, panel, _ := newTestController(t)

	openController(t, c)
	openController(t, c)

	if !panel.Visible() {
		t.Error("panel should be visible")
	}
	if n := page.ListenerCount(EventClick); n != 1 {
		t.Errorf("expected exactly 1 click listener, got %d", n)
	}
	if n := page.ListenerCount(EventKeyUp); n != 1 {
		t.Errorf("expected exactly 1 keyup listener, got %d", n)
	}

	// A single keystroke must produce a single query.
	fs := c.searcher.(*fakeSearcher)
	typeText(page, "clipp")
	if len(fs.queries) != 1 {
		t.Errorf("expected 1 query, got %d", len(fs.queries))
	}
}

func TestController_ActivateReshowsHiddenPanel(t *testing.T) {
	c, page, panel, _ := newTestController(t)
	openController(t, c)

	panel.Hide()
	openController(t, c)

	if !panel.Visible() {
		t.Error("activation should re-show the panel")
	}
	if n := page.ListenerCount(EventClick); n != 1 {
		t.Errorf("expected 1 click listener, got %d", n)
	}
}

func TestController_ActivatePrepareError(t *testing.T) {
	c, page, panel, fs := newTestController(t)
	fs.prepareErr = catalog.ErrDuplicateTitle

	_, err := c.Activate(context.Background())
	if !errors.Is(err, catalog.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	if c.State() != StateClosed {
		t.Error("controller should stay closed")
	}
	if panel.Visible() {
		t.Error("panel should stay hidden")
	}
	if n := page.ListenerCount(EventClick); n != 0 {
		t.Errorf("expected no listeners, got %d", n)
	}
}

func TestController_NilRenderer(t *testing.T) {
	page := NewPage()
	fs := &fakeSearcher{}
	c := New(page, fs, nil)

	if _, err := c.Activate(context.Background()); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if c.State() != StateClosed {
		t.Error("without a panel the dropdown cannot open")
	}
	if n := page.ListenerCount(EventClick); n != 0 {
		t.Errorf("expected no listeners, got %d", n)
	}
	if c.focus(0) {
		t.Error("focus without a renderer should be a no-op")
	}
	c.render(threeMatches())
	c.Close()
}

func TestController_OutsideClickCloses(t *testing.T) {
	c, page, panel, _ := newTestController(t)
	openController(t, c)

	page.Dispatch(Event{Type: EventClick, Target: Outside()})

	if c.State() != StateClosed {
		t.Errorf("expected closed, got %v", c.State())
	}
	if panel.Visible() {
		t.Error("panel should be hidden")
	}
	if n := page.ListenerCount(EventClick); n != 0 {
		t.Errorf("click listener should be detached, got %d", n)
	}
}

func TestController_ClicksInsideControlKeepOpen(t *testing.T) {
	c, page, _, _ := newTestController(t)
	openController(t, c)

	for _, target := range []Target{SearchBar(), InPanel(), ResultAt(0)} {
		page.Dispatch(Event{Type: EventClick, Target: target})
		if c.State() != StateOpen {
			t.Errorf("click on %v closed the dropdown", target)
		}
	}
}

func TestController_EscapeCloses(t *testing.T) {
	for _, target := range []Target{SearchBar(), ResultAt(1)} {
		t.Run(target.String(), func(t *testing.T) {
			c, page, panel, _ := newTestController(t)
			openController(t, c)

			effect := page.Dispatch(Event{Type: EventKeyDown, Target: target, Key: KeyEscape})

			if c.State() != StateClosed {
				t.Errorf("expected closed, got %v", c.State())
			}
			if panel.Visible() {
				t.Error("panel should be hidden")
			}
			if !effect.PreventDefault || !effect.StopPropagation {
				t.Errorf("escape should be suppressed, got %+v", effect)
			}
		})
	}
}

func TestController_EscapeOutsideIgnored(t *testing.T) {
	c, page, _, _ := newTestController(t)
	openController(t, c)

	effect := page.Dispatch(Event{Type: EventKeyDown, Target: Outside(), Key: KeyEscape})

	if c.State() != StateOpen {
		t.Error("escape outside the control should not close")
	}
	if effect != (Effect{}) {
		t.Errorf("expected no effect, got %+v", effect)
	}
}

func TestController_CloseDetachesKeyListeners(t *testing.T) {
	c, page, _, _ := newTestController(t)
	openController(t, c)
	c.Close()

	for _, et := range []EventType{EventClick, EventKeyDown, EventKeyUp} {
		if n := page.ListenerCount(et); n != 0 {
			t.Errorf("expected no %v listeners after close, got %d", et, n)
		}
	}
}

func TestController_RetainedKeyListeners(t *testing.T) {
	c, page, _, _ := newTestController(t, WithRetainedKeyListeners(true))
	openController(t, c)
	c.Close()

	if n := page.ListenerCount(EventClick); n != 0 {
		t.Errorf("click listener should be detached, got %d", n)
	}
	if n := page.ListenerCount(EventKeyDown); n != 1 {
		t.Errorf("keydown listener should be retained, got %d", n)
	}

	// Reopening must not attach the retained listeners a second time.
	openController(t, c)
	if n := page.ListenerCount(EventKeyDown); n != 1 {
		t.Errorf("expected 1 keydown listener after reopen, got %d", n)
	}
	if n := page.ListenerCount(EventKeyUp); n != 1 {
		t.Errorf("expected 1 keyup listener after reopen, got %d", n)
	}
	if n := page.ListenerCount(EventClick); n != 1 {
		t.Errorf("expected 1 click listener after reopen, got %d", n)
	}
}

func TestController_CloseWhenClosed(t *testing.T) {
	m := metrics.New(nil)
	c, _, _, _ := newTestController(t, WithMetrics(m))

	c.Close()
	if got := testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("closed")); got != 0 {
		t.Errorf("closing a closed dropdown should not transition, got %v", got)
	}
}

func TestController_ReopenAfterClose(t *testing.T) {
	c, page, _, fs := newTestController(t)
	openController(t, c)
	c.Close()
	openController(t, c)

	if c.State() != StateOpen {
		t.Errorf("expected open, got %v", c.State())
	}
	if n := page.ListenerCount(EventClick); n != 1 {
		t.Errorf("expected 1 click listener, got %d", n)
	}
	if fs.prepares != 2 {
		t.Errorf("expected Prepare on every activation, got %d", fs.prepares)
	}
}

func TestController_KeyUpRunsSearch(t *testing.T) {
	c, page, panel, fs := newTestController(t)
	openController(t, c)

	typeText(page, "clipp")

	if len(fs.queries) != 1 || fs.queries[0] != "clipp" {
		t.Fatalf("expected query for clipp, got %v", fs.queries)
	}
	items := panel.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, item := range items {
		if item.Index != i {
			t.Errorf("item %d has index %d", i, item.Index)
		}
	}
	if items[0].Title != "Getting started" || items[0].URL != "/clipp/docs/" {
		t.Errorf("unexpected first item %+v", items[0])
	}
}

func TestController_KeyUpEmptyClearsWithoutQuery(t *testing.T) {
	m := metrics.New(nil)
	c, page, panel, fs := newTestController(t, WithMetrics(m))
	openController(t, c)

	typeText(page, "clipp")
	typeText(page, "")

	if len(fs.queries) != 1 {
		t.Errorf("empty input must not query, got %v", fs.queries)
	}
	if n := len(panel.Items()); n != 0 {
		t.Errorf("expected results cleared, got %d", n)
	}
	if got := testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.OutcomeEmpty)); got != 1 {
		t.Errorf("expected 1 empty query, got %v", got)
	}
}

func TestController_KeyUpIgnoresNavigationKeys(t *testing.T) {
	c, page, _, fs := newTestController(t)
	openController(t, c)

	for _, key := range []Key{KeyArrowUp, KeyArrowDown} {
		page.Dispatch(Event{Type: EventKeyUp, Target: SearchBar(), Key: key, Value: "clipp"})
	}
	if len(fs.queries) != 0 {
		t.Errorf("navigation keys must not query, got %v", fs.queries)
	}

	page.Dispatch(Event{Type: EventKeyUp, Target: SearchBar(), Key: KeyEscape, Value: "clipp"})
	if len(fs.queries) != 0 {
		t.Errorf("escape must not query, got %v", fs.queries)
	}
}

func TestController_KeyUpOnlyFromSearchBar(t *testing.T) {
	c, page, _, fs := newTestController(t)
	openController(t, c)

	page.Dispatch(Event{Type: EventKeyUp, Target: ResultAt(0), Key: "a", Value: "clipp"})
	page.Dispatch(Event{Type: EventKeyUp, Target: Outside(), Key: "a", Value: "clipp"})

	if len(fs.queries) != 0 {
		t.Errorf("expected no queries, got %v", fs.queries)
	}
}

func TestController_RenderReplacesPreviousResults(t *testing.T) {
	c, page, panel, fs := newTestController(t)
	fs.matches["zio"] = []search.Match{{Name: "ZIO", URL: "/clipp/docs/zio.html"}}
	openController(t, c)

	typeText(page, "clipp")
	typeText(page, "zio")

	items := panel.Items()
	if len(items) != 1 || items[0].Title != "ZIO" || items[0].Index != 0 {
		t.Errorf("expected only the ZIO item, got %+v", items)
	}
}

func TestController_NoResultsRendersEmpty(t *testing.T) {
	c, page, panel, _ := newTestController(t)
	openController(t, c)

	typeText(page, "clipp")
	typeText(page, "zzzznotfound")

	if n := len(panel.Items()); n != 0 {
		t.Errorf("expected empty panel, got %d items", n)
	}
}

func TestController_RenderSkippedWhileHidden(t *testing.T) {
	c, _, panel, _ := newTestController(t)

	c.render(threeMatches())
	if n := len(panel.Items()); n != 0 {
		t.Errorf("hidden panel should not be rendered into, got %d items", n)
	}
}

type failingSearcher struct{ fakeSearcher }

func (f *failingSearcher) Query(ctx context.Context, text string) ([]search.Match, error) {
	return nil, search.ErrClosed
}

func TestController_QueryErrorLeavesPanelUnchanged(t *testing.T) {
	page := NewPage()
	panel := NewPanel()
	c := New(page, &failingSearcher{}, panel)
	openController(t, c)
	panel.Render([]ResultItem{{Index: 0, Title: "kept", URL: "/kept"}})

	typeText(page, "anything")

	if items := panel.Items(); len(items) != 1 || items[0].Title != "kept" {
		t.Errorf("panel changed after failed query: %+v", items)
	}
}

func TestController_RealIndex(t *testing.T) {
	cat, err := catalog.New(
		catalog.Document{Title: "Getting started", URL: "/clipp/docs/", Content: "Getting started with clipp the specification is monadic"},
		catalog.Document{Title: "ZIO", URL: "/clipp/docs/zio.html", Content: "Using with ZIO"},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	lazy := search.NewLazy(cat)
	defer func() { _ = lazy.Close() }()

	page := NewPage()
	panel := NewPanel()
	c := New(page, lazy, panel)

	if lazy.Built() {
		t.Fatal("index built before activation")
	}
	openController(t, c)
	if !lazy.Built() {
		t.Fatal("index not built on activation")
	}

	typeText(page, "monadic")
	items := panel.Items()
	if len(items) != 1 || items[0].Title != "Getting started" || items[0].URL != "/clipp/docs/" {
		t.Errorf("unexpected items %+v", items)
	}

	typeText(page, "")
	if n := len(panel.Items()); n != 0 {
		t.Errorf("expected empty panel, got %d", n)
	}
}
