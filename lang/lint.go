package lang

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/iw2rmb/codefield/editor"
	"github.com/iw2rmb/codefield/internal/grapheme"
)

// LintJSON reports a document that is not valid JSON. An empty document is
// accepted.
func LintJSON(text string) []editor.Diagnostic {
	if strings.TrimSpace(text) == "" || gjson.Valid(text) {
		return nil
	}
	d := editor.Diagnostic{Severity: editor.SeverityError, Message: "invalid JSON"}

	// gjson only answers yes or no; the decoder knows where it stopped.
	var v any
	var syn *json.SyntaxError
	if err := json.Unmarshal([]byte(text), &v); errors.As(err, &syn) {
		d.Row, d.Col = position(text, int(syn.Offset)-1)
		d.Message = syn.Error()
	}
	return []editor.Diagnostic{d}
}

// position converts a byte offset to a row and grapheme column.
func position(text string, off int) (row, col int) {
	off = min(max(off, 0), len(text))
	head := text[:off]
	row = strings.Count(head, "\n")
	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		head = head[i+1:]
	}
	return row, grapheme.Count(head)
}
