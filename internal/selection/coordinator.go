package selection

import "sync"

// Coordinator is the shared active-record cell written by both the table
// and the map: hover, "Show on Map", marker clicks and background clicks
// all funnel through here. Whichever write lands last wins; there is no
// queuing across transitions.
//
// The cell is not force-cleared when the referenced record vanishes or
// loses its coordinates. A dangling id simply highlights nothing until a
// later push revives the record or an explicit transition replaces it.
type Coordinator struct {
	mu     sync.Mutex
	active string
	subs   []func(activeID string)
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Set marks the record id active. An empty id clears instead.
func (c *Coordinator) Set(id string) {
	c.transition(id)
}

// Clear drops the active selection.
func (c *Coordinator) Clear() {
	c.transition("")
}

// Active returns the current selection, if any.
func (c *Coordinator) Active() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != ""
}

// OnChange registers fn to run after every effective transition. fn
// receives the new id, empty when cleared, and runs outside the cell's
// lock.
func (c *Coordinator) OnChange(fn func(activeID string)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Coordinator) transition(id string) {
	c.mu.Lock()
	if c.active == id {
		c.mu.Unlock()
		return
	}
	c.active = id
	subs := make([]func(string), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}
