// Package events retrieves security events from the Deep Security Manager
// through an injected manager collaborator. Each event category has its own
// collection type knowing which entrypoints serve it (SOAP, REST or both)
// and where its event list nests inside the response. Fetched events are
// indexed by the category's id field into an insertion-ordered mapping.
//
// The number of events a single call returns is capped by how many items the
// API user account may read from the manager's database; retrieving more
// takes repeated calls with an advancing id filter.
package events

import "fmt"

// Event is one remote event record: an opaque set of key/value pairs
// re-exposed through typed accessors.
type Event struct {
	props map[string]any
}

func newEvent(props map[string]any) *Event {
	return &Event{props: props}
}

// Get returns the raw value stored under key.
func (e *Event) Get(key string) (any, bool) {
	v, ok := e.props[key]
	return v, ok
}

// String renders the value under key as a string, or "" when absent.
func (e *Event) String(key string) string {
	v, ok := e.props[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Int64 returns the value under key as an int64.
func (e *Event) Int64(key string) (int64, bool) {
	v, ok := e.props[key]
	if !ok {
		return 0, false
	}
	return asInt64(v)
}

// Props returns a copy of the raw key/value pairs.
func (e *Event) Props() map[string]any {
	out := make(map[string]any, len(e.props))
	for k, v := range e.props {
		out[k] = v
	}
	return out
}

// asInt64 coerces the numeric shapes a decoded response may carry.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
