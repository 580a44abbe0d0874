// Package dropdown drives the search dropdown: opening and closing it,
// dispatching search-as-you-type queries, keyboard navigation across result
// items, and rendering results into a sink.
//
// # State Machine
//
// A [Controller] is either [StateClosed] or [StateOpen]. Activating the
// search bar builds the index on first use, shows the panel, and attaches
// page-wide click, key-down, and key-up listeners to a [Page]. A click outside
// the search bar and panel, or Escape on the search bar or a result item,
// closes it again. Activation while already open is idempotent: no listener
// is ever attached twice.
//
// # Navigation
//
// ArrowDown from the search bar focuses result 0; from result i it focuses
// result i+1 if it exists. ArrowUp from result i>0 focuses result i-1.
// Neither wraps around. Result items are addressed by integer position.
//
// # Rendering
//
// A [Renderer] is a sink: every query replaces all rendered items. Operations
// addressing a missing renderer or a missing item are no-ops. [Panel] is an
// in-memory renderer that can also write the result list as HTML.
package dropdown
