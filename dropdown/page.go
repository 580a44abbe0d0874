package dropdown

import "sync"

// Listener handles a page-level event.
type Listener func(Event) Effect

type registration struct {
	id       uint64
	listener Listener
}

// Page is the page-wide listener registry events are dispatched through.
type Page struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[EventType][]registration
}

// NewPage returns an empty page.
func NewPage() *Page {
	return &Page{listeners: make(map[EventType][]registration)}
}

// AddListener registers l for events of type t and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (p *Page) AddListener(t EventType, l Listener) func() {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.listeners[t] = append(p.listeners[t], registration{id: id, listener: l})
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			regs := p.listeners[t]
			for i, r := range regs {
				if r.id == id {
					p.listeners[t] = append(regs[:i:i], regs[i+1:]...)
					return
				}
			}
		})
	}
}

// ListenerCount returns the number of listeners registered for t.
func (p *Page) ListenerCount(t EventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners[t])
}

// Dispatch delivers ev to every listener registered for its type, in
// registration order, and returns the combined effect. Listeners may add or
// remove registrations while being dispatched.
func (p *Page) Dispatch(ev Event) Effect {
	p.mu.Lock()
	regs := append([]registration(nil), p.listeners[ev.Type]...)
	p.mu.Unlock()

	var effect Effect
	for _, r := range regs {
		effect = effect.merge(r.listener(ev))
	}
	return effect
}
