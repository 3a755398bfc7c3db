package editor

// Extension contributes behavior to a View. Extensions are values: the same
// extension may be installed in any number of views.
//
// Single-valued facets (read-only flag, style, key map, indent unit) take the
// value of the last extension that sets them. Listeners, completion sources
// and linters accumulate in order.
type Extension interface {
	resolve(c *configuration)
}

// Extensions groups extensions into one. A nil or empty Extensions is the
// empty capability set.
type Extensions []Extension

func (xs Extensions) resolve(c *configuration) {
	for _, x := range xs {
		if x != nil {
			x.resolve(c)
		}
	}
}

type facet func(c *configuration)

func (f facet) resolve(c *configuration) { f(c) }

// configuration is the resolved, flattened form of a view's extension tree.
type configuration struct {
	readOnly     bool
	lineNumbers  bool
	activeLine   bool
	brackets     bool
	search       bool
	completion   bool
	historyLimit int
	indentUnit   string
	tabWidth     int
	style        Style
	keyMap       KeyMap
	clipboard    Clipboard
	highlighter  Highlighter

	sources   []CompletionSource
	linters   []Linter
	listeners []func(Update)

	// overrides holds reconfigured compartment content; seen records every
	// compartment present in the tree after resolution.
	overrides map[*Compartment]Extension
	seen      map[*Compartment]Extension
}

func resolveConfiguration(root Extension, overrides map[*Compartment]Extension) configuration {
	c := configuration{
		historyLimit: -1,
		tabWidth:     4,
		style:        DefaultStyle(),
		keyMap:       DefaultKeyMap(),
		overrides:    overrides,
		seen:         make(map[*Compartment]Extension),
	}
	if root != nil {
		root.resolve(&c)
	}
	return c
}

// ReadOnly blocks every user-input mutation path when on. Programmatic
// transactions are never blocked.
func ReadOnly(on bool) Extension {
	return facet(func(c *configuration) { c.readOnly = on })
}

// LineNumbers renders a line-number gutter.
func LineNumbers() Extension {
	return facet(func(c *configuration) { c.lineNumbers = true })
}

// HighlightActiveLine styles the cursor row with Style.ActiveLine.
func HighlightActiveLine() Extension {
	return facet(func(c *configuration) { c.activeLine = true })
}

// BracketMatching styles the bracket pair around the cursor.
func BracketMatching() Extension {
	return facet(func(c *configuration) { c.brackets = true })
}

// Search enables the incremental search prompt.
func Search() Extension {
	return facet(func(c *configuration) { c.search = true })
}

// Autocompletion enables the completion popup. Candidates come from the
// installed CompletionSource extensions.
func Autocompletion() Extension {
	return facet(func(c *configuration) { c.completion = true })
}

// History enables undo/redo with the given depth (0 means the buffer
// default). History is read once when the view is created.
func History(limit int) Extension {
	return facet(func(c *configuration) { c.historyLimit = max(limit, 0) })
}

// IndentUnit sets the text inserted by Tab and used for auto-indent.
func IndentUnit(unit string) Extension {
	return facet(func(c *configuration) { c.indentUnit = unit })
}

// TabWidth sets the cell width of a tab stop.
func TabWidth(n int) Extension {
	return facet(func(c *configuration) {
		if n > 0 {
			c.tabWidth = n
		}
	})
}

func Theme(style Style) Extension {
	return facet(func(c *configuration) { c.style = style })
}

func KeyBindings(km KeyMap) Extension {
	return facet(func(c *configuration) { c.keyMap = km })
}

func WithClipboard(cb Clipboard) Extension {
	return facet(func(c *configuration) { c.clipboard = cb })
}

// Highlight installs h as the syntax highlighter.
func Highlight(h Highlighter) Extension {
	return facet(func(c *configuration) { c.highlighter = h })
}

func CompletionSources(src ...CompletionSource) Extension {
	return facet(func(c *configuration) { c.sources = append(c.sources, src...) })
}

func Lint(l Linter) Extension {
	return facet(func(c *configuration) {
		if l != nil {
			c.linters = append(c.linters, l)
		}
	})
}

// UpdateListener registers fn to run after every dispatched transaction and
// every input-driven state change.
func UpdateListener(fn func(Update)) Extension {
	return facet(func(c *configuration) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	})
}

// Basic is the baseline editing bundle: line numbers, history, active line,
// bracket matching, autocompletion and search.
func Basic() Extension {
	return Extensions{
		LineNumbers(),
		History(0),
		HighlightActiveLine(),
		BracketMatching(),
		Autocompletion(),
		Search(),
	}
}
