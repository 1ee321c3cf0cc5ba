package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"termfolio/internal/console"
)

type keyMap struct {
	Submit     key.Binding
	Older      key.Binding
	Newer      key.Binding
	Complete   key.Binding
	Interrupt  key.Binding
	Quit       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	ToggleMode key.Binding

	NextSection key.Binding
	PrevSection key.Binding
	JumpSection key.Binding
	Back        key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	QuitVisual  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Older:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "history")),
		Newer:      key.NewBinding(key.WithKeys("down")),
		Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Interrupt:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "interrupt")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "quit")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "scroll")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown")),
		ToggleMode: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "switch view")),

		NextSection: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("←/→", "section")),
		PrevSection: key.NewBinding(key.WithKeys("left", "h", "shift+tab")),
		JumpSection: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		Back:        key.NewBinding(key.WithKeys("esc", "t"), key.WithHelp("esc/t", "terminal")),
		ScrollUp:    key.NewBinding(key.WithKeys("up", "k", "pgup")),
		ScrollDown:  key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("j/k", "scroll")),
		QuitVisual:  key.NewBinding(key.WithKeys("q", "ctrl+d"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help(m console.ViewMode) string {
	var bindings []key.Binding
	if m == console.ModeVisual {
		bindings = []key.Binding{k.NextSection, k.JumpSection, k.ScrollDown, k.Back, k.ToggleMode, k.QuitVisual}
	} else {
		bindings = []key.Binding{k.Submit, k.Older, k.Complete, k.PageUp, k.Interrupt, k.ToggleMode, k.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " | ")
}
