// Package widget provides the search dropdown as a single facade.
//
// It wires a catalog, a lazily built search index, a page listener registry,
// and the dropdown controller into one value driven by user input: clicks,
// typing, and key presses.
//
// # Basic Usage
//
//	w, err := widget.New(widget.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Open(ctx); err != nil { // builds the index on first open
//	    log.Fatal(err)
//	}
//	w.Type("monadic")
//	w.Key(dropdown.KeyArrowDown) // focus the first result
//	for _, item := range w.Panel().Items() {
//	    fmt.Println(item.Index, item.Title, item.URL)
//	}
//
// # Configuration
//
// [FromConfig] builds a widget from a loaded [config.Config], reading the
// catalog from disk when a path is configured.
//
// # Thread Safety
//
// A Widget models a single user's input stream; calls should be serialized.
package widget
