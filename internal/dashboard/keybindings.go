package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines the dashboard keybindings.
type keyMap struct {
	Quit         key.Binding
	Refresh      key.Binding
	Dismiss      key.Binding
	Digest       key.Binding
	OpenSuiyokai key.Binding
	OpenKeiei    key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x", "dismiss"),
		),
		Digest: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "announcements"),
		),
		OpenSuiyokai: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open minutes"),
		),
		OpenKeiei: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "open board page"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "scroll"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "scroll"),
		),
	}
}

// handleKey routes key presses. Refreshes go through the in-flight
// guards, so mashing r while a fetch is running does nothing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		var cmds []tea.Cmd
		if cmd := m.startMainFetch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.startSpecialFetch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Dismiss):
		m.notify.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Digest):
		m.digestOpen = !m.digestOpen
		return m, nil

	case key.Matches(msg, m.keys.OpenSuiyokai):
		if m.cfg.Links.Suiyokai != "" {
			return m, openURLCmd(m.cfg.Links.Suiyokai)
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenKeiei):
		if m.cfg.Links.Keiei != "" {
			return m, openURLCmd(m.cfg.Links.Keiei)
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		if m.digestOpen {
			var cmd tea.Cmd
			m.digest, cmd = m.digest.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}
