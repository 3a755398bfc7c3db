package lang

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/codefield/editor"
	"github.com/iw2rmb/codefield/internal/grapheme"
)

// Highlighter tokenises each line with a chroma lexer and paints the tokens
// with a chroma style. Lines are lexed independently, so constructs that
// span lines (block comments, template strings) are coloured per line.
//
// A Highlighter caches translated styles and is not safe for concurrent use.
type Highlighter struct {
	lexer  chroma.Lexer
	style  *chroma.Style
	styles map[chroma.TokenType]tokenStyle
}

type tokenStyle struct {
	style lipgloss.Style
	ok    bool
}

// NewHighlighter returns a highlighter for the first lexer name chroma
// knows, or nil when none is known. An unknown style falls back to chroma's
// default.
func NewHighlighter(style string, lexerNames ...string) *Highlighter {
	var lex chroma.Lexer
	for _, name := range lexerNames {
		if lex = lexers.Get(name); lex != nil {
			break
		}
	}
	if lex == nil {
		return nil
	}
	if style == "" {
		style = DefaultStyle
	}
	return &Highlighter{
		lexer:  chroma.Coalesce(lex),
		style:  styles.Get(style),
		styles: make(map[chroma.TokenType]tokenStyle),
	}
}

// Lexer returns the chroma lexer name.
func (h *Highlighter) Lexer() string { return h.lexer.Config().Name }

func (h *Highlighter) HighlightLine(ctx editor.LineContext) ([]editor.HighlightSpan, error) {
	if ctx.Text == "" {
		return nil, nil
	}
	it, err := h.lexer.Tokenise(nil, ctx.Text)
	if err != nil {
		return nil, err
	}
	var spans []editor.HighlightSpan
	col := 0
	for _, tok := range it.Tokens() {
		n := grapheme.Count(tok.Value)
		if ts := h.styleFor(tok.Type); ts.ok && n > 0 {
			spans = append(spans, editor.HighlightSpan{StartCol: col, EndCol: col + n, Style: ts.style})
		}
		col += n
	}
	return spans, nil
}

func (h *Highlighter) styleFor(tt chroma.TokenType) tokenStyle {
	if ts, ok := h.styles[tt]; ok {
		return ts
	}
	e := h.style.Get(tt)
	st := lipgloss.NewStyle()
	ok := false
	if e.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(e.Colour.String()))
		ok = true
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
		ok = true
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
		ok = true
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
		ok = true
	}
	ts := tokenStyle{style: st, ok: ok}
	h.styles[tt] = ts
	return ts
}
