// Package search builds and queries the full-text index over a catalog.
//
// It exists to:
//   - Keep the ranking engine (Bleve) behind a small Build/Query contract
//   - Resolve ranked titles back to URLs through the catalog's DocMap
//   - Defer construction until first use via [Lazy]
//
// # Usage
//
// The primary type is [Index]:
//
//	idx, err := search.Build(catalog.Default())
//	if err != nil {
//	    return err
//	}
//	defer idx.Close()
//
//	results, err := idx.Query("monadic")
//	matches := idx.Resolve(results)
//
// Most callers hold a [Lazy] instead and build on first interaction:
//
//	lazy := search.NewLazy(catalog.Default())
//	if _, err := lazy.EnsureBuilt(ctx); err != nil {
//	    return err
//	}
//	results, err := lazy.Query(ctx, "zio")
//
// # Behavior
//
// Only document content is indexed; the title is the document reference.
// Query text is split on single spaces and rejoined unchanged before being
// analyzed with the English analyzer (lowercase, stop words, stemming).
// Results are ordered by score descending, then title ascending. The empty
// query returns no results and never reaches the engine.
//
// # Thread Safety
//
// Index and Lazy are safe for concurrent use. Concurrent first callers of
// Lazy.EnsureBuilt share a single build.
package search
