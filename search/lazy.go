package search

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/docsearch/catalog"
)

const buildKey = "build"

// Lazy owns an Index that is built on first use and kept for the lifetime of
// the holder. It never rebuilds.
type Lazy struct {
	cat  *catalog.Catalog
	opts []Option

	group singleflight.Group

	mu     sync.RWMutex
	idx    *Index
	closed bool
}

// NewLazy returns a holder that will build cat on the first EnsureBuilt call.
func NewLazy(cat *catalog.Catalog, opts ...Option) *Lazy {
	return &Lazy{
		cat:  cat,
		opts: opts,
	}
}

// EnsureBuilt returns the index, building it if this is the first call.
// Concurrent callers share one build. A failed build is not cached, so a
// later call retries.
func (l *Lazy) EnsureBuilt(ctx context.Context) (*Index, error) {
	l.mu.RLock()
	idx, closed := l.idx, l.closed
	l.mu.RUnlock()

	if closed {
		return nil, ErrClosed
	}
	if idx != nil {
		return idx, nil
	}

	ch := l.group.DoChan(buildKey, func() (any, error) {
		l.mu.Lock()
		defer l.mu.Unlock()

		if l.closed {
			return nil, ErrClosed
		}
		if l.idx != nil {
			return l.idx, nil
		}
		built, err := Build(l.cat, l.opts...)
		if err != nil {
			return nil, err
		}
		l.idx = built
		return built, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Index), nil
	}
}

// Built reports whether the index has been constructed.
func (l *Lazy) Built() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.idx != nil
}

// Index returns the built index, or ErrNotBuilt.
func (l *Lazy) Index() (*Index, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return nil, ErrClosed
	}
	if l.idx == nil {
		return nil, ErrNotBuilt
	}
	return l.idx, nil
}

// Query runs text against the built index and resolves the hits to URLs.
// The empty string returns no matches without requiring a built index.
func (l *Lazy) Query(ctx context.Context, text string) ([]Match, error) {
	if text == "" {
		return []Match{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := l.Index()
	if err != nil {
		return nil, err
	}
	results, err := idx.Query(text)
	if err != nil {
		return nil, err
	}
	return idx.Resolve(results), nil
}

// Close releases the index if it was built. The holder cannot be rebuilt.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if l.idx == nil {
		return nil
	}
	return l.idx.Close()
}

// Prepare builds the index if needed, discarding the handle.
func (l *Lazy) Prepare(ctx context.Context) error {
	_, err := l.EnsureBuilt(ctx)
	return err
}
