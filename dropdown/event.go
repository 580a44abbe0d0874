package dropdown

import "fmt"

// EventType identifies the kind of user input.
type EventType int

const (
	EventClick EventType = iota
	EventKeyDown
	EventKeyUp
)

func (t EventType) String() string {
	switch t {
	case EventClick:
		return "click"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Key is a keyboard key name.
type Key string

// Keys with special handling.
const (
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyEscape    Key = "Escape"
)

// isNavigation reports whether k is handled on key-down rather than key-up.
func (k Key) isNavigation() bool {
	return k == KeyArrowUp || k == KeyArrowDown || k == KeyEscape
}

// TargetKind classifies where an event originated.
type TargetKind int

const (
	// TargetOutside is anywhere outside the search control and its panel.
	TargetOutside TargetKind = iota
	// TargetSearchBar is the search input box.
	TargetSearchBar
	// TargetPanel is inside the dropdown panel but not on a result item.
	TargetPanel
	// TargetResult is a rendered result item; Target.Index holds its position.
	TargetResult
)

// Target is the element an event was dispatched to.
type Target struct {
	Kind  TargetKind
	Index int
}

// SearchBar targets the search input.
func SearchBar() Target { return Target{Kind: TargetSearchBar} }

// Outside targets the page outside the search control.
func Outside() Target { return Target{Kind: TargetOutside} }

// InPanel targets the panel background.
func InPanel() Target { return Target{Kind: TargetPanel} }

// ResultAt targets the result item at display position i.
func ResultAt(i int) Target { return Target{Kind: TargetResult, Index: i} }

func (t Target) String() string {
	switch t.Kind {
	case TargetSearchBar:
		return "search-bar"
	case TargetPanel:
		return "panel"
	case TargetResult:
		return fmt.Sprintf("result[%d]", t.Index)
	default:
		return "outside"
	}
}

// withinControl reports whether t is the search bar or inside the panel.
func (t Target) withinControl() bool {
	return t.Kind != TargetOutside
}

// navigable reports whether key-down navigation applies to t.
func (t Target) navigable() bool {
	return t.Kind == TargetSearchBar || t.Kind == TargetResult
}

// Event is a single user input.
type Event struct {
	Type   EventType
	Target Target
	Key    Key
	// Value is the search input's full text at the time of the event.
	Value string
}

// Effect tells the host what to do with the event after handling.
type Effect struct {
	PreventDefault  bool
	StopPropagation bool
}

var suppress = Effect{PreventDefault: true, StopPropagation: true}

func (e Effect) merge(o Effect) Effect {
	return Effect{
		PreventDefault:  e.PreventDefault || o.PreventDefault,
		StopPropagation: e.StopPropagation || o.StopPropagation,
	}
}
