package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// setStatus shows text and schedules its removal after the configured delay.
// A newer status replaces an older one; the older clear then does nothing.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.Status = StatusBar{Text: text, IsError: isError, seq: seq}
	if isError {
		m.log.Warn().Str("status", text).Msg("user-visible error")
	}
	return tea.Tick(m.statusClear, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}
