package element

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iw2rmb/codefield/buffer"
	"github.com/iw2rmb/codefield/editor"
	"github.com/iw2rmb/codefield/host"
	"github.com/iw2rmb/codefield/lang"
)

const (
	// AttrMode names the language mode. An absent attribute means
	// DefaultMode; New sets it only when Config.Mode is given.
	AttrMode = "mode"
	// AttrDisabled makes the editor read-only by its presence.
	AttrDisabled = "disabled"

	// EventChange is dispatched, bubbling, whenever the document text
	// changes after mount. Detail is a ChangeDetail.
	EventChange = "change"

	DefaultMode = "javascript"
)

type State uint8

const (
	Detached State = iota
	Attached
)

func (s State) String() string {
	switch s {
	case Detached:
		return "detached"
	case Attached:
		return "attached"
	default:
		return "unknown"
	}
}

// notifiesOnSet is the change-notification rule for programmatic value
// assignment: an attached element routes SetValue through the view, whose
// listeners emit a change event like any user edit; a detached element only
// overwrites its buffer and emits nothing.
func (s State) notifiesOnSet() bool { return s == Attached }

// ChangeDetail is the Detail of a change event.
type ChangeDetail struct {
	Value   string
	Version uint64
	Source  buffer.ChangeSource
}

// Config configures a new Element.
type Config struct {
	// Mode is the initial language mode. Empty means DefaultMode.
	Mode     string
	Disabled bool
	// Value is the initial buffered value.
	Value string
	// TextContent is the embedded text adopted at mount when Value is empty.
	TextContent string
	// Style is the chroma style used by language highlighters.
	Style string
	// Extensions are installed after the baseline bundle and the slots.
	Extensions []editor.Extension
}

// Element is one editor widget instance. It is driven from a single
// goroutine; listeners may call back into it re-entrantly.
type Element struct {
	*host.Base

	in       inputs
	applied  inputs
	buffered string
	state    State
	view     *editor.View
	slots    slots
	frame    frame
	langOpts lang.Options
	extra    []editor.Extension
}

// frame is the mount target handed to the view: the host parent, or an
// explicit size once Resize was called.
type frame struct {
	parent        editor.Parent
	width, height int
	sized         bool
}

func (f *frame) Bounds() (int, int) {
	if f.sized || f.parent == nil {
		return f.width, f.height
	}
	return f.parent.Bounds()
}

func New(cfg Config) *Element {
	e := &Element{
		Base:     host.NewBase(uuid.NewString(), AttrMode, AttrDisabled),
		in:       inputs{mode: DefaultMode, disabled: cfg.Disabled},
		buffered: cfg.Value,
		slots:    newSlots(),
		langOpts: lang.Options{Style: cfg.Style},
		extra:    append([]editor.Extension(nil), cfg.Extensions...),
	}
	if cfg.Mode != "" {
		e.in.mode = cfg.Mode
		e.Base.SetAttribute(AttrMode, cfg.Mode)
	}
	if cfg.Disabled {
		e.Base.SetAttribute(AttrDisabled, "")
	}
	e.SetTextContent(cfg.TextContent)
	e.SetHooks(host.Hooks{
		AttributeChanged: e.attributeChanged,
		Render:           e.Render,
	})
	return e
}

func (e *Element) State() State { return e.state }

// Mode returns the effective language mode: the mode attribute, or
// DefaultMode when it is absent.
func (e *Element) Mode() string { return e.in.mode }

func (e *Element) Disabled() bool { return e.in.disabled }

// Engine returns the live editor view, or nil before mount.
func (e *Element) Engine() *editor.View { return e.view }

// Value returns the document text once attached and the buffered value
// before.
func (e *Element) Value() string {
	if e.state == Attached {
		return e.view.Text()
	}
	return e.buffered
}

// SetValue replaces the value. When attached and text differs from the
// document, the whole document is replaced in one transaction and a change
// event fires. Before mount the buffer is overwritten silently.
func (e *Element) SetValue(text string) {
	if !e.state.notifiesOnSet() {
		e.buffered = text
		return
	}
	if text == e.view.Text() {
		return
	}
	e.view.Dispatch(editor.Transaction{Changes: []editor.Change{{
		From:   0,
		To:     e.view.Buffer().Len(),
		Insert: text,
	}}})
}

// SetMode sets the mode attribute.
func (e *Element) SetMode(mode string) { e.SetAttribute(AttrMode, mode) }

// SetDisabled sets or removes the disabled attribute.
func (e *Element) SetDisabled(on bool) { e.ToggleAttribute(AttrDisabled, on) }

func (e *Element) attributeChanged(name, _, value string, present bool) {
	switch name {
	case AttrMode:
		e.in.mode = DefaultMode
		if present {
			e.in.mode = value
		}
	case AttrDisabled:
		e.in.disabled = present
	}
}

// Render applies attribute changes to the view. Changed slots are
// reconfigured together in one transaction. It does nothing before mount or
// when nothing changed since the last call.
func (e *Element) Render() {
	if e.state != Attached || e.in == e.applied {
		return
	}
	effects := e.slots.reconfigure(e.applied, e.in, e.langOpts)
	e.applied = e.in
	e.view.Dispatch(editor.Transaction{Effects: effects})
	Logger().Debug("slots reconfigured",
		zap.String("element", e.ID()),
		zap.String("mode", e.in.mode),
		zap.Bool("disabled", e.in.disabled),
		zap.Int("effects", len(effects)))
}

// Connected mounts the element into parent. The first call builds the view,
// using a size given to Resize before mount if any; later calls rebind the
// parent and re-measure against its bounds. A nil parent is an error
// wrapping editor.ErrNoParent.
func (e *Element) Connected(parent editor.Parent) error {
	if parent == nil {
		return fmt.Errorf("element %s: %w", e.ID(), editor.ErrNoParent)
	}
	e.frame.parent = parent
	if e.state == Attached {
		// A new mount target replaces any explicit size.
		e.frame.sized = false
		e.Connect()
		e.view.RequestMeasure()
		Logger().Debug("element remounted", zap.String("element", e.ID()))
		return nil
	}

	if e.buffered == "" {
		if content := strings.TrimSpace(e.TextContent()); content != "" {
			e.buffered = content
			e.SetTextContent("")
		}
	}

	exts := editor.Extensions{
		editor.Basic(),
		e.slots.initial(e.in, e.langOpts),
		editor.UpdateListener(e.onUpdate),
	}
	exts = append(exts, e.extra...)

	view, err := editor.New(editor.Config{Doc: e.buffered, Extensions: exts, Parent: &e.frame})
	if err != nil {
		return fmt.Errorf("element %s: %w", e.ID(), err)
	}
	e.view = view
	e.applied = e.in
	e.buffered = ""
	e.state = Attached
	e.Connect()

	Logger().Info("element mounted",
		zap.String("element", e.ID()),
		zap.String("mode", e.in.mode),
		zap.Bool("disabled", e.in.disabled),
		zap.Int("length", view.Buffer().Len()))
	return nil
}

// Disconnected records that the element left its parent. The view and the
// Attached state are kept.
func (e *Element) Disconnected() {
	if e.Disconnect() {
		Logger().Debug("element disconnected", zap.String("element", e.ID()))
	}
}

// Resize sets the layout size and asks the view to re-measure. Before mount
// the size is only remembered.
func (e *Element) Resize(width, height int) {
	e.frame.width, e.frame.height, e.frame.sized = width, height, true
	if e.state == Attached {
		e.view.RequestMeasure()
	}
}

func (e *Element) onUpdate(u editor.Update) {
	if !u.DocChanged {
		return
	}
	e.DispatchEvent(host.NewEvent(EventChange, ChangeDetail{
		Value:   u.Text(),
		Version: u.Version,
		Source:  u.Source,
	}))
}

// Update handles a Bubble Tea message. Window size messages resize the
// element; other messages reach the view once attached.
func (e *Element) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		e.Resize(msg.Width, msg.Height)
		return nil
	}
	if e.state != Attached {
		return nil
	}
	return e.view.Update(msg)
}

// View renders the editor, or the buffered value before mount.
func (e *Element) View() string {
	if e.state != Attached {
		return e.buffered
	}
	return e.view.View()
}
