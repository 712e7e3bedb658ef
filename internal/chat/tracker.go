package chat

import (
	"sync"
)

type WidgetState int

const (
	StateCollapsed WidgetState = iota
	StateExpanded
)

// Tracker is the per-viewer unread counter of the chat widget. While
// collapsed every observed message increments the counter; expanding
// resets it to zero.
type Tracker struct {
	mx     sync.Mutex
	state  WidgetState
	unread int
}

func NewTracker() *Tracker {
	return &Tracker{state: StateCollapsed}
}

func (t *Tracker) Observe() {
	t.mx.Lock()
	defer t.mx.Unlock()

	if t.state == StateCollapsed {
		t.unread++
	}
}

func (t *Tracker) Expand() {
	t.mx.Lock()
	defer t.mx.Unlock()

	t.state = StateExpanded
	t.unread = 0
}

func (t *Tracker) Collapse() {
	t.mx.Lock()
	defer t.mx.Unlock()

	t.state = StateCollapsed
}

func (t *Tracker) State() WidgetState {
	t.mx.Lock()
	defer t.mx.Unlock()

	return t.state
}

func (t *Tracker) Unread() int {
	t.mx.Lock()
	defer t.mx.Unlock()

	return t.unread
}
