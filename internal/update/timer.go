package update

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/timer"
	"github.com/sandeepkv93/pomod/internal/views"
)

// armTimer turns the machine's next ticket, if any, into a tea.Tick.
func (m Model) armTimer() tea.Cmd {
	ticket, ok := m.App.Timer().Next()
	if !ok {
		return nil
	}
	return tickCmd(ticket)
}

func tickCmd(ticket timer.Ticket) tea.Cmd {
	return tea.Tick(timer.TickInterval, func(time.Time) tea.Msg { return TimerTickMsg{Ticket: ticket} })
}

// afterTimerOp runs after every timer operation: it arms the next tick,
// surfaces queued toasts and keeps the countdown spinner going.
func (m *Model) afterTimerOp() tea.Cmd {
	cmds := []tea.Cmd{m.armTimer()}

	snap := m.App.Timer().Snapshot()
	if snap.Status == model.StatusCountdown && snap.CountdownValue == timer.CountdownStart {
		cmds = append(cmds, m.countdownSpin.Tick)
	}

	if m.toasts != nil {
		if msgs := m.toasts.Drain(); len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			cmds = append(cmds, m.setStatus(last, false))
			m.Notification = last
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) renderTimerPanel() string {
	t := m.App.Timer()
	snap := t.Snapshot()
	progress := t.Progress()
	done, total := m.App.Tasks().Counts()
	return views.RenderTimerPanel(views.TimerPanelData{
		Mode:           string(snap.Mode),
		ModeLabel:      snap.Mode.Label(),
		Status:         string(snap.Status),
		TimeLeft:       snap.TimeLeft,
		CountdownValue: snap.CountdownValue,
		SpinnerView:    m.countdownSpin.View(),
		ProgressView:   m.timerProgress.ViewAs(progress),
		ProgressPct:    int(math.Round(progress * 100)),
		Session:        t.DisplaySession(),
		TotalSessions:  t.Settings().TotalSessions,
		TasksDone:      done,
		TasksTotal:     total,
	})
}
