package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/iw2rmb/codefield/buffer"
	"github.com/iw2rmb/codefield/internal/grapheme"
)

// cellClass orders the decorations a cluster can carry. Higher classes win.
type cellClass uint8

const (
	classText cellClass = iota
	classSpan
	classSearch
	classBracket
	classSelection
	classCursor
)

type cell struct {
	class cellClass
	span  int
}

func (v *View) renderContent() string {
	rows := v.buf.LineCount()
	cur := v.buf.Cursor()
	sel, selOK := v.buf.Selection()

	var brackets [2]buffer.Pos
	hasBrackets := false
	if v.cfg.brackets && v.focused {
		brackets[0], brackets[1], hasBrackets = v.MatchingBracket()
	}

	digits := v.gutterWidth() - 1

	out := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var sb strings.Builder
		if v.cfg.lineNumbers {
			num := v.cfg.style.LineNum
			if v.focused && row == cur.Row {
				num = v.cfg.style.LineNumActive
			}
			sb.WriteString(num.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(v.cfg.style.Gutter.Render(" "))
		}

		line := v.buf.Clusters(row)
		base := v.cfg.style.Text
		if v.cfg.activeLine && v.focused && row == cur.Row {
			base = v.cfg.style.ActiveLine.Inherit(base)
		}

		spans := v.highlightLine(row, line, cur)
		search := v.searchSpans(line)

		cells := make([]cell, len(line))
		for i, sp := range spans {
			for c := sp.StartCol; c < sp.EndCol; c++ {
				cells[c] = cell{class: classSpan, span: i}
			}
		}
		for _, sp := range search {
			for c := sp.StartCol; c < sp.EndCol && c < len(cells); c++ {
				cells[c] = cell{class: classSearch}
			}
		}
		if hasBrackets {
			for _, p := range brackets {
				if p.Row == row && p.Col < len(cells) {
					cells[p.Col] = cell{class: classBracket}
				}
			}
		}
		if selOK {
			from, to := selectionCols(sel, row, len(line))
			for c := from; c < to; c++ {
				cells[c] = cell{class: classSelection}
			}
		}
		if v.focused && row == cur.Row && cur.Col < len(cells) {
			cells[cur.Col] = cell{class: classCursor}
		}

		sb.WriteString(v.renderRuns(line, cells, spans, base))
		if v.focused && row == cur.Row && cur.Col >= len(line) {
			sb.WriteString(v.cfg.style.Cursor.Inherit(base).Render(" "))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// gutterWidth is the width of the line-number column plus its separator,
// or 0 without line numbers.
func (v *View) gutterWidth() int {
	if !v.cfg.lineNumbers {
		return 0
	}
	return len(strconv.Itoa(v.buf.LineCount())) + 1
}

// renderRuns renders consecutive clusters sharing a decoration with one
// style, expanding tabs to the next tab stop.
func (v *View) renderRuns(line []string, cells []cell, spans []HighlightSpan, base lipgloss.Style) string {
	var sb strings.Builder
	var run strings.Builder
	col := 0
	for i := 0; i < len(line); {
		c := cells[i]
		run.Reset()
		for ; i < len(line) && cells[i] == c; i++ {
			w := grapheme.Width(line[i], col, v.cfg.tabWidth)
			if line[i] == "\t" {
				run.WriteString(strings.Repeat(" ", w))
			} else {
				run.WriteString(line[i])
			}
			col += w
		}
		sb.WriteString(v.styleFor(c, spans, base).Render(run.String()))
	}
	return sb.String()
}

func (v *View) styleFor(c cell, spans []HighlightSpan, base lipgloss.Style) lipgloss.Style {
	st := v.cfg.style
	switch c.class {
	case classCursor:
		return st.Cursor.Inherit(base)
	case classSelection:
		return st.Selection.Inherit(base)
	case classBracket:
		return st.MatchingBracket.Inherit(base)
	case classSearch:
		return st.SearchMatch.Inherit(base)
	case classSpan:
		return spans[c.span].Style.Inherit(base)
	default:
		return base
	}
}

func (v *View) highlightLine(row int, line []string, cur buffer.Pos) []HighlightSpan {
	if v.cfg.highlighter == nil {
		return nil
	}
	ctx := LineContext{Row: row, Text: grapheme.Join(line), CursorCol: -1}
	if row == cur.Row {
		ctx.CursorCol = cur.Col
		ctx.HasCursor = true
	}
	spans, err := v.cfg.highlighter.HighlightLine(ctx)
	if err != nil {
		Logger().Debug("highlight failed", zap.Int("row", row), zap.Error(err))
		return nil
	}
	return normalizeHighlightSpans(spans, len(line))
}

func selectionCols(sel buffer.Range, row, lineLen int) (from, to int) {
	if row < sel.Start.Row || row > sel.End.Row {
		return 0, 0
	}
	from, to = 0, lineLen
	if row == sel.Start.Row {
		from = clampInt(sel.Start.Col, 0, lineLen)
	}
	if row == sel.End.Row {
		to = clampInt(sel.End.Col, 0, lineLen)
	}
	return from, max(from, to)
}

// footer returns the status line: the search prompt or the first
// diagnostic, in that order of preference.
func (v *View) footer() string {
	st := v.cfg.style.Footer
	if v.width > 0 {
		st = st.MaxWidth(v.width)
	}
	switch {
	case v.search.active:
		prompt := "find: " + v.search.query
		if v.search.missed {
			prompt += " (no match)"
		}
		return st.Render(prompt)
	case len(v.diagnostics) > 0:
		d := v.diagnostics[0]
		msg := fmt.Sprintf("%d:%d %s: %s", d.Row+1, d.Col+1, d.Severity, d.Message)
		return v.cfg.style.Diagnostic.Inherit(st).Render(msg)
	}
	return ""
}
