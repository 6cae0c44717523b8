package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sweeptop/internal/cmdline"
)

// keyMap defines all keyboard bindings for the TUI
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Kill      key.Binding
	Refresh   key.Binding
	Toggle    key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Select    key.Binding
	SelectAll key.Binding
	Search    key.Binding
	Command   key.Binding
}

// keys is the default set of key bindings
var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Kill: key.NewBinding(
		key.WithKeys("enter", "d"),
		key.WithHelp("enter/d", "kill"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle system ports"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
	Select: key.NewBinding(
		key.WithKeys(" ", "tab"),
		key.WithHelp("space/tab", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Command: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "command"),
	),
}

// cmdlineKeyMap binds the keys the command line treats specially.
// Everything else typed while editing is inserted as text.
type cmdlineKeyMap struct {
	HistoryPrev key.Binding
	HistoryNext key.Binding
	Erase       key.Binding
	Cancel      key.Binding
	Submit      key.Binding
}

var cmdlineKeys = cmdlineKeyMap{
	HistoryPrev: key.NewBinding(key.WithKeys("up")),
	HistoryNext: key.NewBinding(key.WithKeys("down")),
	Erase:       key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	Cancel:      key.NewBinding(key.WithKeys("esc")),
	Submit:      key.NewBinding(key.WithKeys("enter")),
}

// cmdlineEvents translates a key message into command line key events.
// Pasted text arrives as one message with several runes.
func cmdlineEvents(msg tea.KeyMsg) []cmdline.KeyEvent {
	switch {
	case key.Matches(msg, cmdlineKeys.HistoryPrev):
		return []cmdline.KeyEvent{{Code: cmdline.KeyUp}}
	case key.Matches(msg, cmdlineKeys.HistoryNext):
		return []cmdline.KeyEvent{{Code: cmdline.KeyDown}}
	case key.Matches(msg, cmdlineKeys.Erase):
		return []cmdline.KeyEvent{{Code: cmdline.KeyBackspace}}
	case key.Matches(msg, cmdlineKeys.Cancel):
		return []cmdline.KeyEvent{{Code: cmdline.KeyEscape}}
	case key.Matches(msg, cmdlineKeys.Submit):
		return []cmdline.KeyEvent{{Code: cmdline.KeyEnter}}
	}

	if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt {
		events := make([]cmdline.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, cmdline.RuneKey(r))
		}
		return events
	}

	return []cmdline.KeyEvent{{Code: cmdline.KeyOther}}
}
