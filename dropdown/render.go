package dropdown

import (
	"html/template"
	"io"
	"slices"
	"sync"
)

// ResultItem is one rendered entry, addressed by its display position.
type ResultItem struct {
	Index int
	Title string
	URL   string
}

// Renderer is the sink the controller draws into.
type Renderer interface {
	Show()
	// Hide hides the panel and drops focus.
	Hide()
	Visible() bool
	// Render replaces every rendered item with items.
	Render(items []ResultItem)
	// Focus moves focus to the item at index and reports whether it exists.
	Focus(index int) bool
	// Focused returns the focused item's index, or -1.
	Focused() int
}

// Panel is an in-memory Renderer.
type Panel struct {
	mu      sync.RWMutex
	visible bool
	items   []ResultItem
	focused int
}

// NewPanel returns a hidden, empty panel.
func NewPanel() *Panel {
	return &Panel{focused: -1}
}

// Show makes the panel visible.
func (p *Panel) Show() {
	p.mu.Lock()
	p.visible = true
	p.mu.Unlock()
}

// Hide hides the panel; hidden items cannot hold focus.
func (p *Panel) Hide() {
	p.mu.Lock()
	p.visible = false
	p.focused = -1
	p.mu.Unlock()
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visible
}

// Render replaces the items and clears focus.
func (p *Panel) Render(items []ResultItem) {
	p.mu.Lock()
	p.items = slices.Clone(items)
	p.focused = -1
	p.mu.Unlock()
}

// Focus focuses the item at index. It fails while hidden or out of range.
func (p *Panel) Focus(index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.visible || index < 0 || index >= len(p.items) {
		return false
	}
	p.focused = index
	return true
}

// Focused returns the focused item's index, or -1.
func (p *Panel) Focused() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.focused
}

// Items returns the rendered items in display order.
func (p *Panel) Items() []ResultItem {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.items)
}

var resultListTemplate = template.Must(template.New("results").Parse(
	`{{range .}}<li class="dropdown-item" id="result-{{.Index}}">` +
		`<a title="{{.Title}}" href="{{.URL}}" class="dropdown-item-link">` +
		`<span class="dropdown-item-link-text">{{.Title}}</span></a></li>
{{end}}`))

// WriteHTML writes the rendered items as dropdown list markup.
func (p *Panel) WriteHTML(w io.Writer) error {
	return resultListTemplate.Execute(w, p.Items())
}
