package lang

import (
	"sort"
	"strings"

	"github.com/iw2rmb/codefield/editor"
)

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "monokai"

// Language is one entry of the mode table.
type Language struct {
	// Name is the canonical mode identifier.
	Name    string
	Aliases []string
	// Lexers lists chroma lexer names, tried in order.
	Lexers   []string
	Indent   string
	Keywords []string

	linter editor.Linter
}

// Options tunes the bundle built by ResolveWith.
type Options struct {
	// Style is a chroma style name. Empty means DefaultStyle.
	Style string
}

var table = []Language{
	{
		Name:     "javascript",
		Aliases:  []string{"js"},
		Lexers:   []string{"javascript"},
		Indent:   "  ",
		Keywords: jsKeywords,
	},
	{
		Name:     "typescript",
		Aliases:  []string{"ts"},
		Lexers:   []string{"typescript"},
		Indent:   "  ",
		Keywords: tsKeywords,
	},
	{
		Name:     "jsx",
		Lexers:   []string{"react", "javascript"},
		Indent:   "  ",
		Keywords: jsKeywords,
	},
	{
		Name:     "tsx",
		Lexers:   []string{"tsx", "typescript"},
		Indent:   "  ",
		Keywords: tsKeywords,
	},
	{
		Name:     "html",
		Lexers:   []string{"html"},
		Indent:   "  ",
		Keywords: htmlKeywords,
	},
	{
		Name:     "css",
		Lexers:   []string{"css"},
		Indent:   "  ",
		Keywords: cssKeywords,
	},
	{
		Name:     "json",
		Lexers:   []string{"json"},
		Indent:   "  ",
		Keywords: []string{"true", "false", "null"},
		linter:   LintJSON,
	},
	{
		Name:     "go",
		Aliases:  []string{"golang"},
		Lexers:   []string{"go"},
		Indent:   "\t",
		Keywords: goKeywords,
	},
	{
		Name:    "markdown",
		Aliases: []string{"md"},
		Lexers:  []string{"markdown"},
		Indent:  "  ",
	},
	{
		Name:     "yaml",
		Aliases:  []string{"yml"},
		Lexers:   []string{"yaml"},
		Indent:   "  ",
		Keywords: []string{"true", "false", "null"},
	},
	{
		Name:     "python",
		Aliases:  []string{"py"},
		Lexers:   []string{"python"},
		Indent:   "    ",
		Keywords: pyKeywords,
	},
	// plain is listed so that it resolves explicitly to no extensions.
	{
		Name:    "plain",
		Aliases: []string{"text"},
	},
}

var index = func() map[string]int {
	m := make(map[string]int, len(table)*2)
	for i, l := range table {
		m[l.Name] = i
		for _, a := range l.Aliases {
			m[a] = i
		}
	}
	return m
}()

func normalize(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}

// Lookup returns the table entry for mode. Matching ignores case and
// surrounding whitespace and accepts aliases.
func Lookup(mode string) (Language, bool) {
	i, ok := index[normalize(mode)]
	if !ok {
		return Language{}, false
	}
	l := table[i]
	l.Aliases = append([]string(nil), l.Aliases...)
	l.Lexers = append([]string(nil), l.Lexers...)
	l.Keywords = append([]string(nil), l.Keywords...)
	return l, true
}

// Modes returns the canonical mode names, sorted.
func Modes() []string {
	out := make([]string, 0, len(table))
	for _, l := range table {
		out = append(out, l.Name)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the extension bundle for mode with the default style.
// Unknown modes yield an empty editor.Extensions.
func Resolve(mode string) editor.Extension {
	return ResolveWith(mode, Options{})
}

func ResolveWith(mode string, opts Options) editor.Extension {
	l, ok := Lookup(mode)
	if !ok {
		return editor.Extensions{}
	}
	return l.Extension(opts)
}

// Extension builds the bundle for l.
func (l Language) Extension(opts Options) editor.Extension {
	out := editor.Extensions{}
	if h := NewHighlighter(opts.Style, l.Lexers...); h != nil {
		out = append(out, editor.Highlight(h))
	}
	if l.Indent != "" {
		out = append(out, editor.IndentUnit(l.Indent))
	}
	if len(l.Keywords) > 0 {
		out = append(out, editor.CompletionSources(Keywords(l.Keywords...)))
	}
	if l.linter != nil {
		out = append(out, editor.Lint(l.linter))
	}
	return out
}
