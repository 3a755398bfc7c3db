package buffer

type bufferSnapshot struct {
	text   string
	cursor Pos
	sel    selectionState
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{text: b.Text(), cursor: b.cursor, sel: b.sel}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.lines = splitLines(s.text)
	b.cursor = b.clampPos(s.cursor)
	b.sel = selectionState{}
	if s.sel.active {
		anchor, end := b.clampPos(s.sel.anchor), b.clampPos(s.sel.end)
		if anchor != end {
			b.sel = selectionState{active: true, anchor: anchor, end: end}
		}
	}
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	if b.opt.HistoryLimit <= 0 {
		return
	}
	b.hist.undo = pushBounded(b.hist.undo, prev, b.opt.HistoryLimit)
	b.hist.redo = nil
}

func pushBounded(stack []bufferSnapshot, s bufferSnapshot, limit int) []bufferSnapshot {
	stack = append(stack, s)
	if len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

// HistoryDepth returns the sizes of the undo and redo stacks.
func (b *Buffer) HistoryDepth() (undo, redo int) {
	return len(b.hist.undo), len(b.hist.redo)
}

func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}
	i := len(b.hist.undo) - 1
	target := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.jump(target, &b.hist.redo)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}
	i := len(b.hist.redo) - 1
	target := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]
	b.jump(target, &b.hist.undo)
	return true
}

// jump restores target and pushes the current state onto other.
func (b *Buffer) jump(target bufferSnapshot, other *[]bufferSnapshot) {
	cur := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	*other = pushBounded(*other, cur, max(b.opt.HistoryLimit, 1))

	b.restore(target)
	b.version++
	if applied, ok := wholeDocumentEdit(cur.text, target.text); ok {
		change.edits = append(change.edits, applied)
	}
	b.commitChange(change)
}
