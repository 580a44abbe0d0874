package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Document is a single searchable page.
type Document struct {
	// Title is unique within a catalog and acts as the document's reference.
	Title string `yaml:"title"`
	// URL is the navigable destination for the document.
	URL string `yaml:"url"`
	// Content is the text that gets indexed.
	Content string `yaml:"content"`
}

// Catalog is a validated, ordered set of documents.
type Catalog struct {
	docs   []Document
	docMap DocMap
}

// New validates docs and returns a frozen catalog. Titles must be non-empty
// and unique, and every document needs a URL.
func New(docs ...Document) (*Catalog, error) {
	m := make(map[string]string, len(docs))
	for i, doc := range docs {
		if strings.TrimSpace(doc.Title) == "" {
			return nil, fmt.Errorf("document %d: %w", i, ErrEmptyTitle)
		}
		if strings.TrimSpace(doc.URL) == "" {
			return nil, fmt.Errorf("document %q: %w", doc.Title, ErrEmptyURL)
		}
		if _, exists := m[doc.Title]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, doc.Title)
		}
		m[doc.Title] = doc.URL
	}

	return &Catalog{
		docs:   slices.Clone(docs),
		docMap: DocMap{urls: m},
	}, nil
}

// Docs returns a copy of the documents in catalog order.
func (c *Catalog) Docs() []Document {
	if c == nil {
		return nil
	}
	return slices.Clone(c.docs)
}

// Len returns the number of documents.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.docs)
}

// DocMap returns the title to URL lookup built alongside the catalog.
func (c *Catalog) DocMap() DocMap {
	if c == nil {
		return DocMap{}
	}
	return c.docMap
}

// Fingerprint returns a stable hash of the catalog contents and order.
func (c *Catalog) Fingerprint() string {
	if c == nil {
		return computeFingerprint(nil)
	}
	return computeFingerprint(c.docs)
}

// DocMap resolves a document title to its URL.
type DocMap struct {
	urls map[string]string
}

// URL returns the URL registered for title.
func (m DocMap) URL(title string) (string, bool) {
	url, ok := m.urls[title]
	return url, ok
}

// Len returns the number of entries.
func (m DocMap) Len() int {
	return len(m.urls)
}
