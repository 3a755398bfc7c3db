package lang

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/codefield/editor"
)

func newView(t *testing.T, doc string, exts ...editor.Extension) *editor.View {
	t.Helper()
	v, err := editor.New(editor.Config{Doc: doc, Extensions: exts, Parent: &editor.Rect{Width: 40, Height: 5}})
	if err != nil {
		t.Fatalf("editor.New: %v", err)
	}
	return v
}

func TestLookup_NamesAndAliases(t *testing.T) {
	tests := map[string]string{
		"javascript":  "javascript",
		"js":          "javascript",
		" JavaScript": "javascript",
		"TS":          "typescript",
		"jsx":         "jsx",
		"tsx":         "tsx",
		"html":        "html",
		"css\n":       "css",
		"json":        "json",
		"golang":      "go",
		"md":          "markdown",
		"yml":         "yaml",
		"py":          "python",
		"text":        "plain",
	}
	for mode, want := range tests {
		l, ok := Lookup(mode)
		if !ok {
			t.Fatalf("Lookup(%q): not found", mode)
		}
		if l.Name != want {
			t.Fatalf("Lookup(%q).Name: got %q, want %q", mode, l.Name, want)
		}
	}
	if _, ok := Lookup("cobol"); ok {
		t.Fatalf("Lookup(cobol): found")
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	l, _ := Lookup("js")
	l.Keywords[0] = "changed"
	again, _ := Lookup("js")
	if again.Keywords[0] == "changed" {
		t.Fatalf("Lookup exposed the table")
	}
}

func TestModes(t *testing.T) {
	want := []string{"css", "go", "html", "javascript", "json", "jsx", "markdown", "plain", "python", "tsx", "typescript", "yaml"}
	if diff := cmp.Diff(want, Modes()); diff != "" {
		t.Fatalf("Modes (-want +got):\n%s", diff)
	}
}

func TestResolve_UnknownAndPlainAreEmpty(t *testing.T) {
	for _, mode := range []string{"", "cobol", "plain", "TEXT"} {
		ext, ok := Resolve(mode).(editor.Extensions)
		if !ok || len(ext) != 0 {
			t.Fatalf("Resolve(%q): got %#v, want empty Extensions", mode, ext)
		}
	}
}

func TestResolve_KnownModesHaveHighlighter(t *testing.T) {
	for _, mode := range Modes() {
		l, _ := Lookup(mode)
		if len(l.Lexers) == 0 {
			continue
		}
		if h := NewHighlighter("", l.Lexers...); h == nil {
			t.Fatalf("mode %q: no chroma lexer among %v", mode, l.Lexers)
		}
	}
}

func TestResolve_IndentUnit(t *testing.T) {
	v := newView(t, "", Resolve("python"))
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := v.Text(); got != "    " {
		t.Fatalf("python tab: got %q, want %q", got, "    ")
	}

	v = newView(t, "", Resolve("go"))
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := v.Text(); got != "\t" {
		t.Fatalf("go tab: got %q, want %q", got, "\t")
	}
}

func TestResolve_KeywordCompletion(t *testing.T) {
	v := newView(t, "", editor.Autocompletion(), Resolve("javascript"))
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fun")})
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlAt})
	if !v.CompletionOpen() {
		t.Fatalf("completion not open")
	}
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := v.Text(); got != "function" {
		t.Fatalf("text: got %q, want %q", got, "function")
	}
}

func TestResolve_JSONLinter(t *testing.T) {
	v := newView(t, `{"a": }`, Resolve("json"))
	if got := len(v.Diagnostics()); got != 1 {
		t.Fatalf("diagnostics: got %d, want 1", got)
	}
	v = newView(t, `{"a": }`, Resolve("javascript"))
	if got := len(v.Diagnostics()); got != 0 {
		t.Fatalf("javascript diagnostics: got %d, want 0", got)
	}
}

func TestResolve_Pure(t *testing.T) {
	a := newView(t, "const x = 1", Resolve("js"))
	b := newView(t, "const x = 1", Resolve("js"))
	keys := []tea.KeyMsg{{Type: tea.KeyEnd}, {Type: tea.KeyEnter}, {Type: tea.KeyTab}}
	for _, k := range keys {
		a.Update(k)
		b.Update(k)
	}
	if a.Text() != b.Text() || a.View() != b.View() {
		t.Fatalf("bundles differ:\n%q\n%q", a.View(), b.View())
	}
}

func TestHighlighter_KeywordSpan(t *testing.T) {
	h := NewHighlighter(DefaultStyle, "javascript")
	spans, err := h.HighlightLine(editor.LineContext{Text: "const x = 1"})
	if err != nil {
		t.Fatalf("HighlightLine: %v", err)
	}
	if len(spans) == 0 {
		t.Fatalf("no spans")
	}
	if spans[0].StartCol != 0 || spans[0].EndCol != 5 {
		t.Fatalf("first span: got [%d,%d), want [0,5)", spans[0].StartCol, spans[0].EndCol)
	}
	if got := h.Lexer(); got != "JavaScript" {
		t.Fatalf("lexer: got %q, want %q", got, "JavaScript")
	}
}

func TestHighlighter_UnknownLexer(t *testing.T) {
	if h := NewHighlighter("", "no-such-language-xyz"); h != nil {
		t.Fatalf("got %v, want nil", h)
	}
}

func TestLintJSON(t *testing.T) {
	if d := LintJSON(`{"a": [1, 2]}`); d != nil {
		t.Fatalf("valid: got %v", d)
	}
	if d := LintJSON("  \n"); d != nil {
		t.Fatalf("blank: got %v", d)
	}

	d := LintJSON("{\n  \"a\": ,\n}")
	if len(d) != 1 {
		t.Fatalf("invalid: got %v", d)
	}
	if d[0].Row != 1 || d[0].Col != 7 || d[0].Severity != editor.SeverityError {
		t.Fatalf("diagnostic: got %+v", d[0])
	}
}
