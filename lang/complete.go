package lang

import (
	"strings"

	"github.com/iw2rmb/codefield/editor"
)

// Keywords returns a completion source offering words. The editor filters
// candidates by the typed prefix.
func Keywords(words ...string) editor.CompletionSource {
	items := make([]editor.Completion, 0, len(words))
	for _, w := range words {
		items = append(items, editor.Completion{Label: w, Detail: "keyword"})
	}
	return func(ctx editor.CompletionContext) []editor.Completion {
		if ctx.Word == "" {
			return nil
		}
		out := make([]editor.Completion, 0, 8)
		for _, it := range items {
			if strings.HasPrefix(it.Label, ctx.Word) {
				out = append(out, it)
			}
		}
		return out
	}
}

var jsKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "export", "extends",
	"false", "finally", "for", "function", "if", "import", "in", "instanceof",
	"let", "new", "null", "return", "static", "super", "switch", "this",
	"throw", "true", "try", "typeof", "undefined", "var", "void", "while",
	"yield",
}

var tsKeywords = append(append([]string(nil), jsKeywords...),
	"abstract", "any", "as", "boolean", "declare", "enum", "implements",
	"interface", "keyof", "namespace", "never", "number", "private",
	"protected", "public", "readonly", "string", "type", "unknown",
)

var htmlKeywords = []string{
	"a", "body", "button", "div", "footer", "form", "head", "header", "html",
	"img", "input", "label", "link", "main", "meta", "nav", "option", "script",
	"section", "select", "span", "style", "table", "textarea", "title",
}

var cssKeywords = []string{
	"align-items", "background", "border", "color", "display", "flex",
	"font-size", "font-weight", "grid", "height", "justify-content", "margin",
	"padding", "position", "transition", "width",
}

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var",
}

var pyKeywords = []string{
	"and", "as", "assert", "async", "await", "break", "class", "continue",
	"def", "del", "elif", "else", "except", "False", "finally", "for", "from",
	"global", "if", "import", "in", "is", "lambda", "None", "nonlocal", "not",
	"or", "pass", "raise", "return", "True", "try", "while", "with", "yield",
}
