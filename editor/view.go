package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"go.uber.org/zap"

	"github.com/iw2rmb/codefield/buffer"
)

// Parent is the mount target of a View: the region it renders into.
type Parent interface {
	Bounds() (width, height int)
}

// Rect is a fixed-size Parent.
type Rect struct {
	Width  int
	Height int
}

func (r *Rect) Bounds() (int, int) { return r.Width, r.Height }

// Config configures a new View.
type Config struct {
	// Doc is the initial document text.
	Doc string
	// Extensions is the ordered extension tree.
	Extensions []Extension
	// Parent is the mount target. It is required.
	Parent Parent
}

// View is a live editing session: a document, its history and selection,
// the resolved extension configuration and the rendered viewport.
//
// A View is owned by one caller and is not safe for concurrent use.
type View struct {
	parent Parent
	root   Extensions
	slots  map[*Compartment]Extension
	cfg    configuration

	buf      *buffer.Buffer
	viewport viewport.Model
	width    int
	height   int
	focused  bool
	measures int

	completion  completionState
	search      searchState
	diagnostics []Diagnostic
}

func New(cfg Config) (*View, error) {
	if cfg.Parent == nil {
		return nil, ErrNoParent
	}
	v := &View{
		parent:   cfg.Parent,
		root:     append(Extensions(nil), cfg.Extensions...),
		slots:    make(map[*Compartment]Extension),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	v.cfg = resolveConfiguration(v.root, v.slots)
	v.buf = buffer.New(cfg.Doc, buffer.Options{HistoryLimit: v.cfg.historyLimit})
	v.lint()
	v.RequestMeasure()

	Logger().Debug("view created",
		zap.Int("length", v.buf.Len()),
		zap.Int("compartments", len(v.cfg.seen)),
		zap.Bool("readOnly", v.cfg.readOnly))
	return v, nil
}

// Text returns the document text.
func (v *View) Text() string { return v.buf.Text() }

// Buffer exposes the document model. Mutating it directly bypasses update
// listeners.
func (v *View) Buffer() *buffer.Buffer { return v.buf }

// State is a read-only summary of the view.
type State struct {
	Version   uint64
	Cursor    buffer.Pos
	Selection buffer.SelectionState
	ReadOnly  bool
	Focused   bool
}

func (v *View) State() State {
	s := State{
		Version:  v.buf.Version(),
		Cursor:   v.buf.Cursor(),
		ReadOnly: v.cfg.readOnly,
		Focused:  v.focused,
	}
	if r, ok := v.buf.Selection(); ok {
		s.Selection = buffer.SelectionState{Active: true, Range: r}
	}
	return s
}

func (v *View) ReadOnly() bool { return v.cfg.readOnly }

// Diagnostics returns the findings of the installed linters for the current
// document.
func (v *View) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), v.diagnostics...)
}

// RequestMeasure re-reads the parent bounds and lays the view out again.
func (v *View) RequestMeasure() {
	w, h := v.parent.Bounds()
	v.measures++
	v.SetSize(w, h)
}

// Measures reports how many layout measurements the view has performed.
func (v *View) Measures() int { return v.measures }

// Size returns the current layout size.
func (v *View) Size() (width, height int) { return v.width, v.height }

func (v *View) SetSize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
	v.viewport.Width = v.width
	v.rebuild()
	v.followCursor()
}

func (v *View) Focus() {
	if !v.focused {
		v.focused = true
		v.rebuild()
	}
}

func (v *View) Blur() {
	if v.focused {
		v.focused = false
		v.closeCompletion()
		v.rebuild()
	}
}

func (v *View) Focused() bool { return v.focused }

// Update handles a Bubble Tea message. Key input is routed through the key
// map; window size messages are left to the owner, which knows the layout.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		v.handleKey(msg)
		return nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return cmd
	}
	return nil
}

// View renders the editor.
func (v *View) View() string {
	out := v.viewport.View()
	if v.completion.open && v.focused && v.viewport.Height > 0 {
		popup := v.completionPopup()
		x, y := v.placeCompletion(lipgloss.Width(popup), lipgloss.Height(popup))
		out = overlay.Composite(popup, out, overlay.Left, overlay.Top, x, y)
	}
	if footer := v.footer(); footer != "" {
		out += "\n" + footer
	}
	return out
}

// rebuild re-renders the document into the viewport.
func (v *View) rebuild() {
	h := v.height
	if v.footer() != "" && h > 0 {
		h--
	}
	v.viewport.Height = h
	v.viewport.SetContent(v.renderContent())
}

func (v *View) followCursor() {
	h := v.viewport.Height - v.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row := v.buf.Cursor().Row
	y := v.viewport.YOffset
	switch {
	case row < y:
		v.viewport.SetYOffset(row)
	case row >= y+h:
		v.viewport.SetYOffset(row - h + 1)
	}
}

func (v *View) lint() {
	v.diagnostics = nil
	if len(v.cfg.linters) == 0 {
		return
	}
	text := v.buf.Text()
	for _, l := range v.cfg.linters {
		v.diagnostics = append(v.diagnostics, l(text)...)
	}
}
