package buffer

import "github.com/iw2rmb/codefield/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (doc start for MoveDoc)
	DirEnd  // line end (doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // extend the selection instead of clearing it
}

func (b *Buffer) Move(m Move) {
	prevCursor, prevSel := b.cursor, b.sel
	next := b.clampPos(b.moveCursor(prevCursor, m))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active && prevSel.anchor != prevSel.end {
			anchor = prevSel.anchor
		}
		if anchor != next {
			nextSel = selectionState{active: true, anchor: anchor, end: next}
		}
	}

	if prevCursor == next && prevSel.public() == nextSel.public() {
		return
	}
	b.cursor = next
	b.sel = nextSel
	b.version++
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	last := len(b.lines) - 1
	line := b.lines[p.Row]

	switch m.Unit {
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirUp:
			return Pos{}
		case DirEnd, DirDown:
			return Pos{Row: last, Col: len(b.lines[last])}
		}
		return p
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			return Pos{Row: p.Row, Col: prevWordBoundary(line, p.Col)}
		case DirRight:
			return Pos{Row: p.Row, Col: nextWordBoundary(line, p.Col)}
		}
	}

	switch m.Dir {
	case DirLeft:
		if p.Col > 0 {
			return Pos{Row: p.Row, Col: p.Col - 1}
		}
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: len(b.lines[p.Row-1])}
		}
	case DirRight:
		if p.Col < len(line) {
			return Pos{Row: p.Row, Col: p.Col + 1}
		}
		if p.Row < last {
			return Pos{Row: p.Row + 1}
		}
	case DirUp:
		if p.Row > 0 {
			return Pos{Row: p.Row - 1, Col: min(p.Col, len(b.lines[p.Row-1]))}
		}
	case DirDown:
		if p.Row < last {
			return Pos{Row: p.Row + 1, Col: min(p.Col, len(b.lines[p.Row+1]))}
		}
	case DirHome:
		return Pos{Row: p.Row}
	case DirEnd:
		return Pos{Row: p.Row, Col: len(line)}
	}
	return p
}

// Word boundaries skip whitespace, then non-whitespace, within one line.
func prevWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && grapheme.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && grapheme.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !grapheme.IsSpace(line[i]) {
		i++
	}
	return i
}
