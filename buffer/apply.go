package buffer

// Apply applies edits in order as one undoable change attributed to local
// input. Each edit's range is interpreted against the buffer state at the
// time that edit is applied.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Cursor moves to the end of the last effective edit.
// - Selection is cleared if any edit applies.
func (b *Buffer) Apply(edits ...TextEdit) bool {
	return b.apply(ChangeSourceLocal, edits)
}

// ApplyRemote is Apply for edits that originate outside input handling, such
// as host-driven value assignment. It reports whether the text changed.
func (b *Buffer) ApplyRemote(edits ...TextEdit) bool {
	return b.apply(ChangeSourceRemote, edits)
}

func (b *Buffer) apply(source ChangeSource, edits []TextEdit) bool {
	if len(edits) == 0 {
		return false
	}

	prev := b.snapshot()
	change := b.beginChange(source)
	cursor := b.cursor
	for _, e := range edits {
		next, applied, changed := b.replaceRange(e.Range, e.Text)
		if !changed {
			continue
		}
		cursor = next
		change.edits = append(change.edits, applied)
	}
	if len(change.edits) == 0 {
		return false
	}

	b.cursor = b.clampPos(cursor)
	b.sel = selectionState{}
	b.version++
	b.recordUndo(prev)
	b.commitChange(change)
	return true
}
