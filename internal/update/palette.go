package update

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomod/internal/timer"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	res, err := m.App.Run(raw)
	if err != nil {
		if errors.Is(err, timer.ErrTimerRunning) {
			return m, m.setStatus(SettingsBlockedWarning, true)
		}
		return m, m.setStatus(err.Error(), true)
	}

	m.clampTaskCursor()
	// skip, reset and set may have scheduled a new ticket.
	timerCmd := m.afterTimerOp()
	return m, tea.Batch(timerCmd, m.setStatus(res.Message, false))
}
