package host

// Event is dispatched to listeners on a Base and, when Bubbles is set, to
// each ancestor in turn.
type Event struct {
	Type    string
	Bubbles bool
	Detail  any

	// Target is the ID of the dispatching base; CurrentTarget is the ID of
	// the base whose listeners are running.
	Target        string
	CurrentTarget string

	stopped bool
}

// NewEvent returns a bubbling event.
func NewEvent(typ string, detail any) *Event {
	return &Event{Type: typ, Bubbles: true, Detail: detail}
}

// StopPropagation prevents ancestors from seeing the event. Listeners on the
// current base still run.
func (e *Event) StopPropagation() { e.stopped = true }

func (e *Event) Stopped() bool { return e.stopped }

// AddEventListener registers fn for events of typ and returns a function
// that removes it.
func (b *Base) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.listeners[typ] = append(b.listeners[typ], listener{id: id, fn: fn})
	return func() {
		ls := b.listeners[typ]
		for i, l := range ls {
			if l.id == id {
				b.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners for typ.
func (b *Base) ListenerCount(typ string) int { return len(b.listeners[typ]) }

// DispatchEvent delivers ev to b and then up the parent chain. It returns
// the number of listeners called.
func (b *Base) DispatchEvent(ev *Event) int {
	if ev == nil {
		return 0
	}
	if ev.Target == "" {
		ev.Target = b.id
	}
	n := 0
	for cur := b; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur.id
		// Listeners added or removed during delivery take effect next time.
		for _, l := range append([]listener(nil), cur.listeners[ev.Type]...) {
			l.fn(ev)
			n++
		}
		if ev.stopped || !ev.Bubbles {
			break
		}
	}
	return n
}
