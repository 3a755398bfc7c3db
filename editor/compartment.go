package editor

// Compartment is a named, independently reconfigurable region of a view's
// extension tree. Swapping its content leaves the document, history, cursor
// and selection untouched.
//
// A Compartment is identified by pointer; create one per slot and reuse it.
type Compartment struct {
	name string
}

func NewCompartment(name string) *Compartment {
	return &Compartment{name: name}
}

func (c *Compartment) Name() string { return c.name }

// Of wraps the initial content of the compartment.
func (c *Compartment) Of(ext Extension) Extension {
	return compartmentExt{c: c, initial: ext}
}

// Reconfigure returns an effect replacing the compartment's content.
func (c *Compartment) Reconfigure(ext Extension) Effect {
	return Effect{compartment: c, content: ext}
}

// Get returns the current content of c in v.
func (c *Compartment) Get(v *View) (Extension, bool) {
	if v == nil {
		return nil, false
	}
	ext, ok := v.cfg.seen[c]
	return ext, ok
}

type compartmentExt struct {
	c       *Compartment
	initial Extension
}

func (x compartmentExt) resolve(cfg *configuration) {
	content := x.initial
	if o, ok := cfg.overrides[x.c]; ok {
		content = o
	}
	if _, dup := cfg.seen[x.c]; dup {
		return
	}
	cfg.seen[x.c] = content
	if content != nil {
		content.resolve(cfg)
	}
}

// Effect is a state effect carried by a Transaction.
type Effect struct {
	compartment *Compartment
	content     Extension
}

// Compartment returns the compartment the effect reconfigures.
func (e Effect) Compartment() *Compartment { return e.compartment }
