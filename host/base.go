package host

// Hooks are the callbacks a component registers on its Base.
type Hooks struct {
	// AttributeChanged runs after an observed attribute changed value.
	// present is false when the attribute was removed.
	AttributeChanged func(name, old, value string, present bool)
	// Render runs after AttributeChanged.
	Render func()
}

// Base carries the host-side state shared by every component.
type Base struct {
	id        string
	observed  map[string]struct{}
	attrs     map[string]string
	text      string
	connected bool
	parent    *Base
	hooks     Hooks

	listeners map[string][]listener
	nextID    int
}

type listener struct {
	id int
	fn func(*Event)
}

// NewBase returns a base identified by id that reports changes of the
// observed attributes.
func NewBase(id string, observed ...string) *Base {
	b := &Base{
		id:        id,
		observed:  make(map[string]struct{}, len(observed)),
		attrs:     make(map[string]string),
		listeners: make(map[string][]listener),
	}
	for _, name := range observed {
		b.observed[name] = struct{}{}
	}
	return b
}

func (b *Base) ID() string { return b.id }

// SetHooks replaces the registered hooks.
func (b *Base) SetHooks(h Hooks) { b.hooks = h }

// SetParent sets the node events bubble to. Nil detaches.
func (b *Base) SetParent(p *Base) { b.parent = p }

func (b *Base) Parent() *Base { return b.parent }

// Attribute returns the raw attribute value.
func (b *Base) Attribute(name string) (string, bool) {
	v, ok := b.attrs[name]
	return v, ok
}

// BoolAttribute reports whether name is present. The value is ignored, so
// disabled="false" is still true.
func (b *Base) BoolAttribute(name string) bool {
	_, ok := b.attrs[name]
	return ok
}

// SetAttribute stores value and reports whether anything changed.
func (b *Base) SetAttribute(name, value string) bool {
	old, had := b.attrs[name]
	if had && old == value {
		return false
	}
	b.attrs[name] = value
	b.changed(name, old, value, true)
	return true
}

// RemoveAttribute deletes name and reports whether it was present.
func (b *Base) RemoveAttribute(name string) bool {
	old, had := b.attrs[name]
	if !had {
		return false
	}
	delete(b.attrs, name)
	b.changed(name, old, "", false)
	return true
}

// ToggleAttribute sets or removes a presence attribute.
func (b *Base) ToggleAttribute(name string, on bool) bool {
	if on {
		if b.BoolAttribute(name) {
			return false
		}
		return b.SetAttribute(name, "")
	}
	return b.RemoveAttribute(name)
}

func (b *Base) changed(name, old, value string, present bool) {
	if _, ok := b.observed[name]; !ok {
		return
	}
	if b.hooks.AttributeChanged != nil {
		b.hooks.AttributeChanged(name, old, value, present)
	}
	if b.hooks.Render != nil {
		b.hooks.Render()
	}
}

// TextContent returns the text placed between the component's tags.
func (b *Base) TextContent() string { return b.text }

func (b *Base) SetTextContent(s string) { b.text = s }

// Connect marks the base as attached and reports whether this was a
// transition.
func (b *Base) Connect() bool {
	if b.connected {
		return false
	}
	b.connected = true
	return true
}

// Disconnect marks the base as detached and reports whether this was a
// transition.
func (b *Base) Disconnect() bool {
	if !b.connected {
		return false
	}
	b.connected = false
	return true
}

func (b *Base) IsConnected() bool { return b.connected }
