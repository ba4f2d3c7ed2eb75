package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.armTimer()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Panel == PanelTasks && m.Tasks.Editing {
			return m.handleTaskInputKey(typed)
		}
		return m.handleKey(typed)
	case TimerTickMsg:
		if !m.App.Timer().Fire(typed.Ticket) {
			m.log.Debug().Str("ticket", typed.Ticket.String()).Msg("stale tick ignored")
			return m, nil
		}
		return m, m.afterTimerOp()
	case spinner.TickMsg:
		if m.App.Timer().Snapshot().Status != model.StatusCountdown {
			return m, nil
		}
		var cmd tea.Cmd
		m.countdownSpin, cmd = m.countdownSpin.Update(typed)
		return m, cmd
	case SetStatusMsg:
		return m, m.setStatus(typed.Text, typed.IsError)
	case ClearStatusMsg:
		if typed.Seq == m.Status.seq {
			m.Status = StatusBar{}
			m.Notification = ""
			m.Settings.Warning = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Palette:
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case m.Keys.Close:
		m.Panel = PanelNone
		m.HelpVisible = false
		return m, nil
	case m.Keys.Toggle:
		m.App.Timer().Toggle()
		return m, m.afterTimerOp()
	case m.Keys.Reset:
		m.App.Timer().Reset()
		return m, m.afterTimerOp()
	case m.Keys.Skip:
		m.App.Timer().Skip()
		return m, m.afterTimerOp()
	case m.Keys.Tasks:
		m.togglePanel(PanelTasks)
		return m, nil
	case m.Keys.Settings:
		m.togglePanel(PanelSettings)
		return m, nil
	case m.Keys.Stats:
		m.togglePanel(PanelStats)
		return m, nil
	}

	switch m.Panel {
	case PanelTasks:
		return m.handleTasksKey(msg)
	case PanelSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m *Model) togglePanel(p Panel) {
	if m.Panel == p {
		m.Panel = PanelNone
		return
	}
	m.Panel = p
	switch p {
	case PanelSettings:
		m.openSettings()
	case PanelTasks:
		m.clampTaskCursor()
	}
}

func (m Model) View() string {
	snap := m.App.Timer().Snapshot()
	settings := m.App.Timer().Settings()

	right := ""
	switch m.Panel {
	case PanelTasks:
		right = m.renderTasksPanel()
	case PanelSettings:
		right = m.renderSettingsPanel()
	case PanelStats:
		right = m.renderStatsPanel()
	}
	if m.Palette.Active {
		right = strings.TrimSpace(right + "\n\n" + views.RenderCommandPalette(true, m.commandInput.View()))
	}
	if m.HelpVisible {
		right = strings.TrimSpace(right + "\n\n" + m.renderHelpView())
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("pomod | %s | session %d of %d", snap.Mode.Label(), m.App.Timer().DisplaySession(), settings.TotalSessions),
		Quote:         m.quote,
		Accent:        string(snap.Mode),
		LeftPane:      m.renderTimerPanel(),
		RightPane:     right,
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Notification:  m.Notification,
		Footer: fmt.Sprintf("keys: space start/pause | %s reset | %s skip | %s tasks | %s settings | %s stats | / cmd | %s help | %s quit",
			m.Keys.Reset, m.Keys.Skip, m.Keys.Tasks, m.Keys.Settings, m.Keys.Stats, m.Keys.Help, m.Keys.Quit),
	})
}
