package search

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/jonwraymond/docsearch/catalog"
	"github.com/jonwraymond/docsearch/metrics"
)

const contentField = "content"

// Index is a built, immutable full-text index plus its title to URL map.
type Index struct {
	mu     sync.RWMutex
	engine bleve.Index
	closed bool

	docMap      catalog.DocMap
	fingerprint string
	size        int
	maxResults  int
	minScore    float64

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Build indexes the content of every document in cat, keyed by title.
// The DocMap is taken from the same catalog, so both are populated from one
// snapshot or not at all.
func Build(cat *catalog.Catalog, opts ...Option) (*Index, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}
	cfg := applyOptions(opts)
	start := time.Now()
	cfg.logger.Info("building search index", "documents", cat.Len())

	engine, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	batch := engine.NewBatch()
	for _, doc := range cat.Docs() {
		if err := batch.Index(doc.Title, map[string]any{contentField: doc.Content}); err != nil {
			_ = engine.Close()
			return nil, fmt.Errorf("indexing %q: %w", doc.Title, err)
		}
	}
	if err := engine.Batch(batch); err != nil {
		_ = engine.Close()
		return nil, fmt.Errorf("committing index: %w", err)
	}

	took := time.Since(start)
	cfg.logger.Info("search index built", "documents", cat.Len(), "took", took)
	cfg.metrics.ObserveBuild(cat.Len(), took)

	return &Index{
		engine:      engine,
		docMap:      cat.DocMap(),
		fingerprint: cat.Fingerprint(),
		size:        cat.Len(),
		maxResults:  cfg.maxResults,
		minScore:    cfg.minScore,
		logger:      cfg.logger,
		metrics:     cfg.metrics,
	}, nil
}

func newMapping() mapping.IndexMapping {
	content := bleve.NewTextFieldMapping()
	content.Analyzer = en.AnalyzerName
	content.Store = false
	content.IncludeInAll = false

	doc := bleve.NewDocumentStaticMapping()
	doc.AddFieldMappingsAt(contentField, content)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	im.DefaultAnalyzer = en.AnalyzerName
	return im
}

// Query ranks documents whose content matches text. The empty string yields
// an empty result without touching the engine. No match is an empty result,
// not an error.
func (ix *Index) Query(text string) (Results, error) {
	if text == "" {
		return Results{}, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return nil, ErrClosed
	}

	limit := ix.size
	if ix.maxResults > 0 && ix.maxResults < limit {
		limit = ix.maxResults
	}
	if limit == 0 {
		return Results{}, nil
	}

	q := bleve.NewMatchQuery(PrepareQuery(text))
	q.SetField(contentField)

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.SortBy([]string{"-_score", "_id"})

	res, err := ix.engine.Search(req)
	if err != nil {
		ix.metrics.ObserveQuery(metrics.OutcomeError, 0)
		return nil, fmt.Errorf("query %q: %w", text, err)
	}

	results := make(Results, 0, len(res.Hits))
	for _, hit := range res.Hits {
		results = append(results, Hit{Title: hit.ID, Score: hit.Score})
	}
	if ix.minScore > 0 {
		results = results.FilterByMinScore(ix.minScore)
	}

	outcome := metrics.OutcomeHit
	if len(results) == 0 {
		outcome = metrics.OutcomeMiss
	}
	ix.metrics.ObserveQuery(outcome, len(results))

	return results, nil
}

// Resolve maps hits to their URLs. Hits whose title is unknown are dropped.
func (ix *Index) Resolve(results Results) []Match {
	matches := make([]Match, 0, len(results))
	for _, hit := range results {
		url, ok := ix.docMap.URL(hit.Title)
		if !ok {
			ix.logger.Warn("dropping unresolvable search hit", "title", hit.Title)
			continue
		}
		matches = append(matches, Match{Name: hit.Title, URL: url, Score: hit.Score})
	}
	return matches
}

// DocMap returns the title to URL map built with the index.
func (ix *Index) DocMap() catalog.DocMap {
	return ix.docMap
}

// Fingerprint identifies the catalog snapshot the index was built from.
func (ix *Index) Fingerprint() string {
	return ix.fingerprint
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return ix.size
}

// Close releases the engine. Queries after Close return ErrClosed.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return nil
	}
	ix.closed = true
	return ix.engine.Close()
}
