package element

import (
	"github.com/iw2rmb/codefield/editor"
	"github.com/iw2rmb/codefield/lang"
)

// slots are the element's reconfigurable compartments.
type slots struct {
	language *editor.Compartment
	readOnly *editor.Compartment
	// theme is reserved. It keeps its initial empty content and nothing
	// reconfigures it.
	theme *editor.Compartment
}

func newSlots() slots {
	return slots{
		language: editor.NewCompartment("language"),
		readOnly: editor.NewCompartment("readOnly"),
		theme:    editor.NewCompartment("theme"),
	}
}

// inputs are the attribute values the slots were last built from.
type inputs struct {
	mode     string
	disabled bool
}

func (s slots) initial(in inputs, opts lang.Options) editor.Extension {
	return editor.Extensions{
		s.language.Of(lang.ResolveWith(in.mode, opts)),
		s.readOnly.Of(editor.ReadOnly(in.disabled)),
		s.theme.Of(editor.Extensions{}),
	}
}

// reconfigure returns the effects that move the slots from prev to next.
// Slots whose input did not change are left out.
func (s slots) reconfigure(prev, next inputs, opts lang.Options) []editor.Effect {
	var effects []editor.Effect
	if next.mode != prev.mode {
		effects = append(effects, s.language.Reconfigure(lang.ResolveWith(next.mode, opts)))
	}
	if next.disabled != prev.disabled {
		effects = append(effects, s.readOnly.Reconfigure(editor.ReadOnly(next.disabled)))
	}
	return effects
}
