package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codefield/buffer"
)

func TestCompartment_ReconfigureKeepsDocumentAndHistory(t *testing.T) {
	ro := NewCompartment("readOnly")
	v := newTestView(t, "ab", History(0), ro.Of(ReadOnly(false)))

	press(v, runes("x"))
	if got := v.Text(); got != "xab" {
		t.Fatalf("text: got %q, want %q", got, "xab")
	}

	v.Dispatch(Transaction{Effects: []Effect{ro.Reconfigure(ReadOnly(true))}})
	if !v.ReadOnly() {
		t.Fatalf("ReadOnly after reconfigure: got false, want true")
	}
	if got := v.Buffer().Cursor(); got != (buffer.Pos{Col: 1}) {
		t.Fatalf("cursor after reconfigure: got %v, want %v", got, buffer.Pos{Col: 1})
	}
	if !v.Buffer().CanUndo() {
		t.Fatalf("history lost on reconfigure")
	}

	press(v, runes("y"), tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := v.Text(); got != "xab" {
		t.Fatalf("text after input in read-only: got %q, want %q", got, "xab")
	}

	v.Dispatch(Transaction{Effects: []Effect{ro.Reconfigure(ReadOnly(false))}})
	press(v, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := v.Text(); got != "ab" {
		t.Fatalf("text after undo: got %q, want %q", got, "ab")
	}
}

func TestCompartment_SeveralEffectsOneNotification(t *testing.T) {
	a, b := NewCompartment("a"), NewCompartment("b")
	var updates []Update
	v := newTestView(t, "x",
		a.Of(ReadOnly(false)),
		b.Of(nil),
		UpdateListener(func(u Update) { updates = append(updates, u) }),
	)

	v.Dispatch(Transaction{Effects: []Effect{
		a.Reconfigure(ReadOnly(true)),
		b.Reconfigure(TabWidth(2)),
	}})
	if len(updates) != 1 {
		t.Fatalf("updates: got %d, want 1", len(updates))
	}
	u := updates[0]
	if !u.Reconfigured || u.DocChanged || u.SelectionSet {
		t.Fatalf("update flags: got %+v", u)
	}
	if !v.ReadOnly() || v.cfg.tabWidth != 2 {
		t.Fatalf("config: readOnly=%v tabWidth=%d", v.ReadOnly(), v.cfg.tabWidth)
	}
}

func TestCompartment_UnknownIsIgnored(t *testing.T) {
	var updates []Update
	v := newTestView(t, "x", UpdateListener(func(u Update) { updates = append(updates, u) }))

	stray := NewCompartment("stray")
	v.Dispatch(Transaction{Effects: []Effect{stray.Reconfigure(ReadOnly(true))}})
	if v.ReadOnly() {
		t.Fatalf("unknown compartment changed configuration")
	}
	if len(updates) != 1 || updates[0].Reconfigured {
		t.Fatalf("updates: got %+v", updates)
	}
	if _, ok := stray.Get(v); ok {
		t.Fatalf("Get on unknown compartment: got ok")
	}
}

func TestCompartment_NestedAndDuplicate(t *testing.T) {
	outer, inner := NewCompartment("outer"), NewCompartment("inner")
	v := newTestView(t, "x",
		outer.Of(Extensions{TabWidth(8), inner.Of(ReadOnly(true))}),
		// A second occurrence of a compartment is ignored.
		inner.Of(ReadOnly(false)),
	)
	if !v.ReadOnly() || v.cfg.tabWidth != 8 {
		t.Fatalf("initial: readOnly=%v tabWidth=%d", v.ReadOnly(), v.cfg.tabWidth)
	}

	v.Dispatch(Transaction{Effects: []Effect{inner.Reconfigure(ReadOnly(false))}})
	if v.ReadOnly() {
		t.Fatalf("inner reconfigure did not apply")
	}

	v.Dispatch(Transaction{Effects: []Effect{outer.Reconfigure(TabWidth(3))}})
	if v.cfg.tabWidth != 3 {
		t.Fatalf("tabWidth: got %d, want 3", v.cfg.tabWidth)
	}
	// With outer no longer holding it, inner resolves at its top-level
	// occurrence and keeps its reconfigured content.
	if _, ok := inner.Get(v); !ok {
		t.Fatalf("inner missing after outer dropped it")
	}
	if v.ReadOnly() {
		t.Fatalf("readOnly: got true, want false")
	}
}

func TestCompartment_Get(t *testing.T) {
	c := NewCompartment("theme")
	v := newTestView(t, "", c.Of(Theme(DefaultStyle())))
	ext, ok := c.Get(v)
	if !ok || ext == nil {
		t.Fatalf("Get: got (%v, %v)", ext, ok)
	}
	if got := c.Name(); got != "theme" {
		t.Fatalf("Name: got %q, want %q", got, "theme")
	}
	if got := c.Reconfigure(nil).Compartment(); got != c {
		t.Fatalf("effect compartment: got %p, want %p", got, c)
	}
}
