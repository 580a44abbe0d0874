// Package catalog holds the fixed set of documents searched by the dropdown.
//
// A [Catalog] is an ordered, immutable sequence of [Document] values whose
// titles are unique. The title is the reference key handed back by the search
// index; the URL is carried in a side [DocMap] and is never indexed.
//
// # Usage
//
// The default catalog is compiled into the binary:
//
//	cat := catalog.Default()
//	url, ok := cat.DocMap().URL("Getting started")
//
// Custom catalogs are validated on construction:
//
//	cat, err := catalog.New(
//	    catalog.Document{Title: "ZIO", URL: "/clipp/docs/zio.html", Content: "Using with ZIO"},
//	)
//	if errors.Is(err, catalog.ErrDuplicateTitle) {
//	    // two documents share a title
//	}
//
// # Thread Safety
//
// A Catalog and its DocMap are never mutated after construction and are safe
// for concurrent reads.
package catalog
