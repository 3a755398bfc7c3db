package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/codefield/editor"
	"github.com/iw2rmb/codefield/element"
	"github.com/iw2rmb/codefield/host"
	"github.com/iw2rmb/codefield/internal/config"
)

// configMsg carries a reloaded config from the watcher goroutine.
type configMsg struct {
	cfg config.Config
	err error
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

type model struct {
	el   *element.Element
	path string
	// cfg is the last config read from disk. Reloads apply only the fields
	// that differ from it, so flag and file-extension choices survive
	// unrelated edits to the file.
	cfg    config.Config
	dirty  bool
	status string
}

func newModel(path string, cfg config.Config, el *element.Element) (*model, error) {
	m := &model{el: el, path: path, cfg: cfg}
	el.AddEventListener(element.EventChange, func(*host.Event) { m.dirty = true })
	if err := el.Connected(&editor.Rect{Width: 80, Height: 23}); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// One row for the status line.
		m.el.Resize(msg.Width, max(msg.Height-1, 0))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+s":
			m.save()
			return m, nil
		}
	case configMsg:
		if msg.err != nil {
			m.status = "config: " + msg.err.Error()
			return m, nil
		}
		if msg.cfg.Mode != m.cfg.Mode {
			m.el.SetMode(msg.cfg.Mode)
		}
		if msg.cfg.Disabled != m.cfg.Disabled {
			m.el.SetDisabled(msg.cfg.Disabled)
		}
		m.cfg = msg.cfg
		m.status = "config reloaded"
		return m, nil
	}
	return m, m.el.Update(msg)
}

func (m *model) save() {
	if m.path == "" {
		m.status = "no file to save to"
		return
	}
	if err := os.WriteFile(m.path, []byte(m.el.Value()), 0o644); err != nil {
		m.status = "save: " + err.Error()
		return
	}
	m.dirty = false
	m.status = "saved " + m.path
}

func (m *model) View() string {
	name := m.path
	if name == "" {
		name = "[scratch]"
	}
	if m.dirty {
		name += " *"
	}
	mode := m.el.Mode()
	if m.el.Disabled() {
		mode += " ro"
	}
	line := fmt.Sprintf("%s  %s  ctrl+s save  ctrl+q quit", name, mode)
	if m.status != "" {
		line += "  " + m.status
	}
	return m.el.View() + "\n" + statusStyle.Render(line)
}
