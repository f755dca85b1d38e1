package engine

import "slices"

type EventKind int

const (
	EventResize EventKind = iota
	EventPointerMove
	EventTouchMove
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventPointerMove:
		return "pointermove"
	case EventTouchMove:
		return "touchmove"
	default:
		return "unknown"
	}
}

// Event is a window-level input event. X and Y are window coordinates of
// the pointer or first touch point; they are zero for resize.
type Event struct {
	Kind EventKind
	X, Y float64
}

type Listener func(Event)

type ListenerID uint64

type listenerEntry struct {
	id   ListenerID
	kind EventKind
	fn   Listener
}

// Listeners is a window-scoped listener registry.
type Listeners struct {
	next    ListenerID
	entries []listenerEntry
}

func (l *Listeners) Add(kind EventKind, fn Listener) ListenerID {
	l.next++
	l.entries = append(l.entries, listenerEntry{id: l.next, kind: kind, fn: fn})
	return l.next
}

// Remove detaches a listener and reports whether it was attached.
func (l *Listeners) Remove(id ListenerID) bool {
	i := slices.IndexFunc(l.entries, func(e listenerEntry) bool { return e.id == id })
	if i < 0 {
		return false
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return true
}

// Dispatch delivers ev to the listeners attached for its kind when the
// dispatch started. Listeners removed mid-dispatch are skipped.
func (l *Listeners) Dispatch(ev Event) {
	var ids []ListenerID
	for _, e := range l.entries {
		if e.kind == ev.Kind {
			ids = append(ids, e.id)
		}
	}
	for _, id := range ids {
		i := slices.IndexFunc(l.entries, func(e listenerEntry) bool { return e.id == id })
		if i >= 0 {
			l.entries[i].fn(ev)
		}
	}
}

// Count is the number of listeners attached for kind.
func (l *Listeners) Count(kind EventKind) int {
	n := 0
	for _, e := range l.entries {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func (l *Listeners) Len() int { return len(l.entries) }
