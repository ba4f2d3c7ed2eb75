package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/pomod/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.panelBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "space", Action: "start / pause (pause also cancels the countdown)"},
		{Key: m.Keys.Reset, Action: "reset the current period"},
		{Key: m.Keys.Skip, Action: "skip to the next period"},
		{Key: m.Keys.Tasks, Action: "toggle tasks"},
		{Key: m.Keys.Settings, Action: "toggle settings"},
		{Key: m.Keys.Stats, Action: "toggle statistics"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Close, Action: "close panels"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) panelBindings() []KeyBinding {
	switch m.Panel {
	case PanelTasks:
		return []KeyBinding{
			{Key: "a", Action: "type a new task"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "x", Action: "toggle completed"},
			{Key: "p", Action: "add a pomodoro to the task"},
			{Key: "d", Action: "delete task"},
		}
	case PanelSettings:
		return []KeyBinding{
			{Key: "j/k", Action: "select field"},
			{Key: "h/l", Action: "change value"},
			{Key: "p", Action: "preview notification sound"},
			{Key: "enter", Action: "save (refused while running)"},
		}
	default:
		return []KeyBinding{
			{Key: "/add <text>", Action: "add a task"},
			{Key: "/done <n>", Action: "toggle task n"},
			{Key: "/rm <n>", Action: "delete task n"},
			{Key: "/set <field> <value>", Action: "change a setting"},
			{Key: "/skip, /reset", Action: "timer control"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
