package editor

import (
	"sort"

	"go.uber.org/zap"

	"github.com/iw2rmb/codefield/buffer"
)

// Change replaces the document span [From, To) with Insert. Offsets count
// grapheme clusters, with one unit per line break.
type Change struct {
	From   int
	To     int
	Insert string
}

// Transaction is one batch of changes and effects, applied by Dispatch in a
// single synchronous step.
//
// All Changes refer to the document as it was before the transaction and
// must not overlap.
type Transaction struct {
	Changes []Change
	Effects []Effect

	// Selection, when set, places the cursor (and selection) after the
	// changes are applied, in post-change offsets.
	Selection *Selection
}

// Selection is an anchor/head pair of document offsets.
type Selection struct {
	Anchor int
	Head   int
}

// Update describes what a transaction or input event did to a view.
type Update struct {
	View        *View
	Transaction Transaction

	// DocChanged is set when the document text changed.
	DocChanged bool
	// SelectionSet is set when the cursor or selection moved.
	SelectionSet bool
	// Reconfigured is set when at least one compartment changed content.
	Reconfigured bool

	Source  buffer.ChangeSource
	Version uint64
}

// Text returns the document text after the update.
func (u Update) Text() string {
	if u.View == nil {
		return ""
	}
	return u.View.Text()
}

// Dispatch applies tr. Read-only state does not block dispatched changes.
//
// Listeners run synchronously before Dispatch returns; a listener may call
// Dispatch again.
func (v *View) Dispatch(tr Transaction) {
	verBefore := v.buf.Version()
	docChanged := v.applyChanges(tr.Changes)

	if tr.Selection != nil {
		anchor := v.buf.PosFromOffset(tr.Selection.Anchor)
		head := v.buf.PosFromOffset(tr.Selection.Head)
		v.buf.SetSelection(buffer.Range{Start: anchor, End: head})
	}

	reconfigured := false
	for _, e := range tr.Effects {
		if e.compartment == nil {
			continue
		}
		if _, ok := v.cfg.seen[e.compartment]; !ok {
			Logger().Debug("reconfigure of unknown compartment ignored",
				zap.String("compartment", e.compartment.name))
			continue
		}
		v.slots[e.compartment] = e.content
		reconfigured = true
	}
	if reconfigured {
		v.reconfigure()
	}

	if docChanged {
		v.closeCompletion()
		v.lint()
	}
	v.rebuild()
	if docChanged || tr.Selection != nil {
		v.followCursor()
	}

	v.notify(Update{
		View:         v,
		Transaction:  tr,
		DocChanged:   docChanged,
		SelectionSet: tr.Selection != nil && v.buf.Version() != verBefore,
		Reconfigured: reconfigured,
		Source:       buffer.ChangeSourceRemote,
		Version:      v.buf.Version(),
	})
}

func (v *View) applyChanges(changes []Change) bool {
	if len(changes) == 0 {
		return false
	}
	edits := make([]buffer.TextEdit, 0, len(changes))
	for _, ch := range changes {
		edits = append(edits, buffer.TextEdit{
			Range: v.buf.RangeFromOffsets(ch.From, ch.To),
			Text:  ch.Insert,
		})
	}
	// Apply back to front so earlier offsets stay valid.
	sort.SliceStable(edits, func(i, j int) bool {
		return buffer.ComparePos(edits[i].Range.Start, edits[j].Range.Start) > 0
	})
	return v.buf.ApplyRemote(edits...)
}

func (v *View) reconfigure() {
	prev := v.cfg
	v.cfg = resolveConfiguration(v.root, v.slots)
	if v.cfg.readOnly {
		v.closeCompletion()
	}
	if !v.cfg.search {
		v.search = searchState{}
	}
	v.lint()
	Logger().Debug("view reconfigured",
		zap.Bool("readOnly", v.cfg.readOnly),
		zap.Bool("readOnlyBefore", prev.readOnly),
		zap.Bool("highlighter", v.cfg.highlighter != nil))
}

func (v *View) notify(u Update) {
	for _, fn := range v.cfg.listeners {
		fn(u)
	}
}
