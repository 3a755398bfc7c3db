package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codefield/buffer"
)

func (v *View) handleKey(msg tea.KeyMsg) {
	if !v.focused {
		return
	}
	before := v.buf.Version()
	v.routeKey(msg)
	v.afterInput(before)
}

// afterInput re-renders and notifies listeners when input moved the cursor
// or changed the text.
func (v *View) afterInput(before uint64) {
	after := v.buf.Version()
	docChanged := false
	if ch, ok := v.buf.LastChange(); ok && after != before {
		docChanged = ch.VersionAfter == after && ch.VersionBefore >= before
	}
	if docChanged {
		v.lint()
	}
	if v.completion.open {
		v.refreshCompletion()
	}
	v.rebuild()
	if after == before {
		return
	}
	v.followCursor()
	v.notify(Update{
		View:         v,
		DocChanged:   docChanged,
		SelectionSet: !docChanged,
		Source:       buffer.ChangeSourceLocal,
		Version:      after,
	})
}

func (v *View) routeKey(msg tea.KeyMsg) {
	if v.search.active {
		v.searchKey(msg)
		return
	}
	if v.completion.open && v.completionKey(msg) {
		return
	}

	ro := v.cfg.readOnly

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste {
		if !ro {
			v.buf.InsertText(normalizeNewlines(string(msg.Runes)))
		}
		return
	}

	km := v.cfg.keyMap
	switch {
	case key.Matches(msg, km.Find):
		if v.cfg.search {
			v.openSearch()
		}
	case key.Matches(msg, km.Complete):
		if v.cfg.completion && !ro {
			v.openCompletion()
		}
	case key.Matches(msg, km.Dismiss):
		v.closeCompletion()

	case key.Matches(msg, km.Left):
		v.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		v.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		v.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		v.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})
	case key.Matches(msg, km.ShiftLeft):
		v.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		v.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		v.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		v.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown, Extend: true})
	case key.Matches(msg, km.WordLeft):
		v.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		v.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})
	case key.Matches(msg, km.Home):
		v.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		v.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocStart):
		v.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		v.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Copy):
		v.copySelection()
	case ro:
		// Everything below mutates the document.
	case key.Matches(msg, km.Backspace):
		v.buf.DeleteBackward()
	case key.Matches(msg, km.Delete):
		v.buf.DeleteForward()
	case key.Matches(msg, km.Enter):
		v.insertNewlineAndIndent()
	case key.Matches(msg, km.Tab):
		v.buf.InsertText(v.indentText())
	case key.Matches(msg, km.Undo):
		v.buf.Undo()
	case key.Matches(msg, km.Redo):
		v.buf.Redo()
	case key.Matches(msg, km.Cut):
		v.cutSelection()
	case key.Matches(msg, km.Paste):
		v.pasteClipboard()
	case msg.Type == tea.KeySpace:
		v.buf.InsertText(" ")
	case msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 0:
		v.buf.InsertText(string(msg.Runes))
	}
}

func (v *View) indentText() string {
	if v.cfg.indentUnit != "" {
		return v.cfg.indentUnit
	}
	return "\t"
}

// insertNewlineAndIndent keeps the current line's indentation and adds one
// indent unit after an opening bracket.
func (v *View) insertNewlineAndIndent() {
	cur := v.buf.Cursor()
	line := v.buf.Clusters(cur.Row)
	var indent strings.Builder
	for _, g := range line[:min(cur.Col, len(line))] {
		if g != " " && g != "\t" {
			break
		}
		indent.WriteString(g)
	}
	if cur.Col > 0 && cur.Col <= len(line) && v.cfg.indentUnit != "" {
		if _, ok := bracketPairs[line[cur.Col-1]]; ok {
			indent.WriteString(v.cfg.indentUnit)
		}
	}
	v.buf.InsertText("\n" + indent.String())
}

func (v *View) copySelection() {
	if v.cfg.clipboard == nil {
		return
	}
	if r, ok := v.buf.Selection(); ok {
		_ = v.cfg.clipboard.WriteText(v.buf.TextInRange(r))
	}
}

func (v *View) cutSelection() {
	if v.cfg.clipboard == nil {
		return
	}
	r, ok := v.buf.Selection()
	if !ok {
		return
	}
	if err := v.cfg.clipboard.WriteText(v.buf.TextInRange(r)); err != nil {
		return
	}
	v.buf.DeleteSelection()
}

func (v *View) pasteClipboard() {
	if v.cfg.clipboard == nil {
		return
	}
	s, err := v.cfg.clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	v.buf.InsertText(normalizeNewlines(s))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
