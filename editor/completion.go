package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/codefield/buffer"
	"github.com/iw2rmb/codefield/internal/grapheme"
)

const completionMaxShown = 6

// Completion is one candidate offered by a CompletionSource.
type Completion struct {
	Label  string
	Detail string
	// Apply is the inserted text; empty means Label.
	Apply string
}

// CompletionContext describes the word being completed.
type CompletionContext struct {
	// Word is the run of word characters before the cursor.
	Word   string
	Cursor buffer.Pos
	View   *View
}

// CompletionSource returns candidates for ctx. The view filters them by
// prefix.
type CompletionSource func(ctx CompletionContext) []Completion

type completionState struct {
	open     bool
	start    buffer.Pos
	word     string
	items    []Completion
	selected int
}

// CompletionOpen reports whether the completion popup is showing.
func (v *View) CompletionOpen() bool { return v.completion.open }

// CompletionItems returns the candidates currently shown.
func (v *View) CompletionItems() []Completion {
	return append([]Completion(nil), v.completion.items...)
}

func (v *View) openCompletion() {
	v.completion = completionState{}
	v.refreshCompletion()
	if len(v.completion.items) > 0 {
		v.completion.open = true
	}
}

func (v *View) refreshCompletion() {
	word, start := v.wordBeforeCursor()
	if v.completion.open && start != v.completion.start {
		v.closeCompletion()
		return
	}
	items := v.collectCompletions(word)
	if len(items) == 0 {
		v.closeCompletion()
		return
	}
	selected := v.completion.selected
	v.completion = completionState{
		open:     v.completion.open,
		start:    start,
		word:     word,
		items:    items,
		selected: clampInt(selected, 0, len(items)-1),
	}
}

func (v *View) closeCompletion() { v.completion = completionState{} }

func (v *View) collectCompletions(word string) []Completion {
	ctx := CompletionContext{Word: word, Cursor: v.buf.Cursor(), View: v}
	seen := make(map[string]struct{})
	var out []Completion
	for _, src := range v.cfg.sources {
		for _, c := range src(ctx) {
			if c.Label == "" || c.Label == word || !strings.HasPrefix(c.Label, word) {
				continue
			}
			if _, dup := seen[c.Label]; dup {
				continue
			}
			seen[c.Label] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func (v *View) wordBeforeCursor() (string, buffer.Pos) {
	cur := v.buf.Cursor()
	line := v.buf.Clusters(cur.Row)
	i := min(cur.Col, len(line))
	for i > 0 && grapheme.IsWord(line[i-1]) {
		i--
	}
	return grapheme.Join(line[i:min(cur.Col, len(line))]), buffer.Pos{Row: cur.Row, Col: i}
}

// completionKey handles keys owned by the open popup and reports whether
// msg was consumed.
func (v *View) completionKey(msg tea.KeyMsg) bool {
	km := v.cfg.keyMap
	n := len(v.completion.items)
	switch {
	case key.Matches(msg, km.Down):
		v.completion.selected = (v.completion.selected + 1) % n
	case key.Matches(msg, km.Up):
		v.completion.selected = (v.completion.selected - 1 + n) % n
	case key.Matches(msg, km.Enter), key.Matches(msg, km.Tab):
		v.acceptCompletion()
	case key.Matches(msg, km.Dismiss):
		v.closeCompletion()
	default:
		return false
	}
	return true
}

func (v *View) acceptCompletion() {
	if v.cfg.readOnly || !v.completion.open {
		v.closeCompletion()
		return
	}
	item := v.completion.items[v.completion.selected]
	text := item.Apply
	if text == "" {
		text = item.Label
	}
	v.buf.Apply(buffer.TextEdit{
		Range: buffer.Range{Start: v.completion.start, End: v.buf.Cursor()},
		Text:  text,
	})
	v.closeCompletion()
}

// completionPopup renders the visible candidates as a box of equal-width
// rows, at most completionMaxShown tall.
func (v *View) completionPopup() string {
	st := v.cfg.style
	items := v.completion.items
	first := max(0, v.completion.selected-completionMaxShown+1)
	last := min(len(items), first+completionMaxShown)

	labels := make([]string, 0, last-first)
	width := 0
	for i := first; i < last; i++ {
		label := " " + items[i].Label
		if items[i].Detail != "" {
			label += "  " + items[i].Detail
		}
		label += " "
		labels = append(labels, label)
		width = max(width, lipgloss.Width(label))
	}
	if v.width > 0 {
		width = min(width, v.width)
	}

	rows := make([]string, len(labels))
	for i, label := range labels {
		row := st.Completion
		if first+i == v.completion.selected {
			row = st.CompletionSelected
		}
		rows[i] = row.Width(width).MaxWidth(width).Render(label)
	}
	return strings.Join(rows, "\n")
}

// placeCompletion returns the popup's top-left cell inside the viewport:
// under the completed word, or above it when there is no room below.
func (v *View) placeCompletion(popupW, popupH int) (x, y int) {
	start := v.completion.start
	line := v.buf.Clusters(start.Row)
	col := 0
	for _, g := range line[:min(start.Col, len(line))] {
		col += grapheme.Width(g, col, v.cfg.tabWidth)
	}
	x = col + v.gutterWidth()

	height := v.viewport.Height
	y = start.Row - v.viewport.YOffset + 1
	if y+popupH > height && y-1-popupH >= 0 {
		y = y - 1 - popupH
	}
	x = clampInt(x, 0, v.width-popupW)
	y = clampInt(y, 0, height-popupH)
	return x, y
}
