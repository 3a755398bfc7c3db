package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codefield/buffer"
	"github.com/iw2rmb/codefield/internal/grapheme"
)

type searchState struct {
	active bool
	query  string
	missed bool
}

// SearchQuery returns the query of the open search prompt.
func (v *View) SearchQuery() (string, bool) {
	return v.search.query, v.search.active
}

func (v *View) openSearch() {
	v.search = searchState{active: true, query: v.search.query}
	v.closeCompletion()
}

func (v *View) searchKey(msg tea.KeyMsg) {
	km := v.cfg.keyMap
	switch {
	case key.Matches(msg, km.Dismiss):
		v.search.active = false
	case key.Matches(msg, km.Enter):
		v.findNext()
	case key.Matches(msg, km.Backspace):
		if q := grapheme.Split(v.search.query); len(q) > 0 {
			v.search.query = grapheme.Join(q[:len(q)-1])
		}
		v.search.missed = false
	case msg.Type == tea.KeySpace:
		v.search.query += " "
	case msg.Type == tea.KeyRunes && !msg.Alt:
		v.search.query += string(msg.Runes)
		v.search.missed = false
	}
}

// findNext selects the next occurrence of the query after the cursor,
// wrapping at the end of the document.
func (v *View) findNext() {
	q := v.search.query
	if q == "" {
		return
	}
	cur := v.buf.Cursor()
	rows := v.buf.LineCount()
	for i := 0; i <= rows; i++ {
		row := (cur.Row + i) % rows
		from := 0
		if i == 0 {
			from = cur.Col
		}
		if i == rows {
			// Back on the cursor row after wrapping: only the part before the cursor.
			from = 0
		}
		col, ok := indexFrom(v.buf.Clusters(row), q, from)
		if !ok || (i == rows && col >= cur.Col) {
			continue
		}
		n := grapheme.Count(q)
		v.buf.SetSelection(buffer.Range{
			Start: buffer.Pos{Row: row, Col: col},
			End:   buffer.Pos{Row: row, Col: col + n},
		})
		v.search.missed = false
		return
	}
	v.search.missed = true
}

// indexFrom returns the cluster column of the first occurrence of q in line
// at or after from.
func indexFrom(line []string, q string, from int) (int, bool) {
	if from > len(line) {
		return 0, false
	}
	tail := grapheme.Join(line[from:])
	i := strings.Index(tail, q)
	if i < 0 {
		return 0, false
	}
	return from + grapheme.Count(tail[:i]), true
}

// searchSpans marks every occurrence of the active query in line.
func (v *View) searchSpans(line []string) []HighlightSpan {
	if !v.search.active || v.search.query == "" {
		return nil
	}
	n := grapheme.Count(v.search.query)
	var spans []HighlightSpan
	for from := 0; ; {
		col, ok := indexFrom(line, v.search.query, from)
		if !ok {
			return spans
		}
		spans = append(spans, HighlightSpan{StartCol: col, EndCol: col + n, Style: v.cfg.style.SearchMatch})
		from = col + n
	}
}
