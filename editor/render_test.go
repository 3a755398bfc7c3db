package editor

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type stubHighlighter struct {
	fn func(ctx LineContext) ([]HighlightSpan, error)
}

func (h *stubHighlighter) HighlightLine(ctx LineContext) ([]HighlightSpan, error) {
	return h.fn(ctx)
}

func TestRender_LineNumberAlignment(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("x")
	}
	v := newTestView(t, sb.String(), LineNumbers())
	v.Blur()

	lines := strings.Split(v.renderContent(), "\n")
	if len(lines) != 120 {
		t.Fatalf("expected 120 lines, got %d", len(lines))
	}
	for i, line := range lines {
		want := fmt.Sprintf("%3d x", i+1)
		if line != want {
			t.Fatalf("line %d: got %q, want %q", i+1, line, want)
		}
	}
}

func TestRender_ExpandsTabs(t *testing.T) {
	v := newTestView(t, "\tx\nab\tc", TabWidth(4))
	v.Blur()
	if got, want := v.renderContent(), "    x\nab  c"; got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CursorAtLineEnd(t *testing.T) {
	v := newTestView(t, "ab")
	press(v, tea.KeyMsg{Type: tea.KeyEnd})
	if got, want := v.renderContent(), "ab "; got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CursorUsesCursorStyle(t *testing.T) {
	st := DefaultStyle()
	st.Text = lipgloss.NewStyle()
	st.Cursor = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	v := newTestView(t, "ab", Theme(st))

	if got, want := v.renderContent(), " a b"; got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_HighlightSpans(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)

	st := DefaultStyle()
	st.Text = r.NewStyle()
	under := r.NewStyle().Underline(true)

	var seen []LineContext
	v := newTestView(t, "abcd", Theme(st), Highlight(&stubHighlighter{
		fn: func(ctx LineContext) ([]HighlightSpan, error) {
			seen = append(seen, ctx)
			return []HighlightSpan{{StartCol: 1, EndCol: 3, Style: under}, {StartCol: 2, EndCol: 9, Style: under}}, nil
		},
	}))
	v.Blur()
	seen = nil

	got := v.renderContent()
	want := st.Text.Render("a") + under.Render("bc") + st.Text.Render("d")
	if got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}
	if len(seen) != 1 || seen[0].Text != "abcd" || !seen[0].HasCursor || seen[0].CursorCol != 0 {
		t.Fatalf("line context: got %+v", seen)
	}
}

func TestRender_HighlightErrorFallsBackToPlainText(t *testing.T) {
	v := newTestView(t, "abcd", Highlight(HighlighterFunc(func(LineContext) ([]HighlightSpan, error) {
		return []HighlightSpan{{StartCol: 0, EndCol: 2}}, errors.New("boom")
	})))
	v.Blur()
	if got := v.renderContent(); got != "abcd" {
		t.Fatalf("render: got %q, want %q", got, "abcd")
	}
}

func TestRender_FooterShowsFirstDiagnostic(t *testing.T) {
	lint := func(string) []Diagnostic {
		return []Diagnostic{
			{Row: 1, Col: 4, Severity: SeverityError, Message: "unexpected token"},
			{Row: 2, Message: "second"},
		}
	}
	v := newTestView(t, "a\nb", Lint(lint))
	v.SetSize(30, 3)

	lines := strings.Split(v.View(), "\n")
	if len(lines) != 3 {
		t.Fatalf("view lines: got %d, want 3: %q", len(lines), lines)
	}
	if got, want := lines[2], "2:5 error: unexpected token"; got != want {
		t.Fatalf("footer: got %q, want %q", got, want)
	}
}

func TestRender_FooterTruncatedToWidth(t *testing.T) {
	lint := func(string) []Diagnostic {
		return []Diagnostic{{Message: strings.Repeat("x", 50)}}
	}
	v := newTestView(t, "", Lint(lint))
	v.SetSize(10, 2)
	if w := lipgloss.Width(v.footer()); w > 10 {
		t.Fatalf("footer width: got %d, want <= 10", w)
	}
}
