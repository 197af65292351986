package events

import (
	"deepsec/pkg/manager"
	"deepsec/pkg/metrics"
)

// Collection is an insertion-ordered mapping from event id to event record,
// accumulated across fetches. Re-inserting an id overwrites the stored
// record without growing the collection, so fetching the same events twice
// is idempotent.
//
// A Collection is not safe for concurrent use; callers fetching from
// multiple goroutines must serialize access themselves.
type Collection struct {
	mgr manager.Manager
	mx  *metrics.Metrics

	ids   []int64
	items map[int64]*Event
}

func newCollection(mgr manager.Manager) Collection {
	return Collection{
		mgr:   mgr,
		items: make(map[int64]*Event),
	}
}

// UseMetrics attaches an optional instrument bundle. A nil bundle disables
// instrumentation.
func (c *Collection) UseMetrics(mx *metrics.Metrics) {
	c.mx = mx
}

// Len reports the number of distinct event ids currently stored.
func (c *Collection) Len() int {
	return len(c.items)
}

// Get returns the event stored under id.
func (c *Collection) Get(id int64) (*Event, bool) {
	ev, ok := c.items[id]
	return ev, ok
}

// IDs returns the stored event ids in insertion order.
func (c *Collection) IDs() []int64 {
	out := make([]int64, len(c.ids))
	copy(out, c.ids)
	return out
}

// Events returns the stored events in insertion order.
func (c *Collection) Events() []*Event {
	out := make([]*Event, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Collection) put(id int64, ev *Event) {
	if _, ok := c.items[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.items[id] = ev
}
