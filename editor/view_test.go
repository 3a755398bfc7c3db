package editor

import (
	"errors"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/codefield/buffer"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestView(t *testing.T, doc string, exts ...Extension) *View {
	t.Helper()
	v, err := New(Config{Doc: doc, Extensions: exts, Parent: &Rect{Width: 40, Height: 10}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(v *View, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		v.Update(msg)
	}
}

func TestNew_RequiresParent(t *testing.T) {
	v, err := New(Config{Doc: "x"})
	if !errors.Is(err, ErrNoParent) {
		t.Fatalf("err: got %v, want %v", err, ErrNoParent)
	}
	if v != nil {
		t.Fatalf("view: got %v, want nil", v)
	}
}

func TestNew_MeasuresParent(t *testing.T) {
	parent := &Rect{Width: 30, Height: 5}
	v, err := New(Config{Doc: "x", Parent: parent})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := v.Measures(); got != 1 {
		t.Fatalf("measures after New: got %d, want 1", got)
	}
	if w, h := v.Size(); w != 30 || h != 5 {
		t.Fatalf("size: got %dx%d, want 30x5", w, h)
	}

	parent.Width, parent.Height = 50, 8
	v.RequestMeasure()
	if got := v.Measures(); got != 2 {
		t.Fatalf("measures after RequestMeasure: got %d, want 2", got)
	}
	if w, h := v.Size(); w != 50 || h != 8 {
		t.Fatalf("size after RequestMeasure: got %dx%d, want 50x8", w, h)
	}
}

func TestNew_NegativeBoundsClampToZero(t *testing.T) {
	v, err := New(Config{Parent: &Rect{Width: -3, Height: -1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w, h := v.Size(); w != 0 || h != 0 {
		t.Fatalf("size: got %dx%d, want 0x0", w, h)
	}
	if got := v.View(); got != "" {
		t.Fatalf("view: got %q, want empty", got)
	}
}

func TestState_ReportsCursorAndSelection(t *testing.T) {
	v := newTestView(t, "hello")
	v.Buffer().SetSelection(buffer.Range{Start: buffer.Pos{Col: 1}, End: buffer.Pos{Col: 3}})

	s := v.State()
	if s.Cursor != (buffer.Pos{Col: 3}) {
		t.Fatalf("cursor: got %v, want %v", s.Cursor, buffer.Pos{Col: 3})
	}
	if !s.Selection.Active || s.Selection.Range.Start != (buffer.Pos{Col: 1}) {
		t.Fatalf("selection: got %+v", s.Selection)
	}
	if !s.Focused || s.ReadOnly {
		t.Fatalf("flags: got focused=%v readOnly=%v", s.Focused, s.ReadOnly)
	}
}

func TestBlur_IgnoresKeys(t *testing.T) {
	v := newTestView(t, "ab")
	v.Blur()
	press(v, runes("x"))
	if got := v.Text(); got != "ab" {
		t.Fatalf("text while blurred: got %q, want %q", got, "ab")
	}
	v.Focus()
	press(v, runes("x"))
	if got := v.Text(); got != "xab" {
		t.Fatalf("text after focus: got %q, want %q", got, "xab")
	}
}

func TestLint_RunsOnCreateAndChange(t *testing.T) {
	calls := 0
	lint := func(text string) []Diagnostic {
		calls++
		if text == "" {
			return []Diagnostic{{Severity: SeverityWarning, Message: "empty"}}
		}
		return nil
	}
	v := newTestView(t, "", Lint(lint))
	if got := len(v.Diagnostics()); got != 1 {
		t.Fatalf("diagnostics on empty doc: got %d, want 1", got)
	}

	press(v, runes("a"))
	if got := len(v.Diagnostics()); got != 0 {
		t.Fatalf("diagnostics after typing: got %d, want 0", got)
	}
	before := calls
	press(v, tea.KeyMsg{Type: tea.KeyLeft})
	if calls != before {
		t.Fatalf("linter ran on cursor move: calls %d -> %d", before, calls)
	}
}
