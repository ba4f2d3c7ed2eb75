package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomod/internal/views"
)

func (m Model) handleTaskInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Tasks.Editing = false
		m.taskInput.Blur()
		m.taskInput.SetValue("")
		return m, nil
	case "enter":
		task, err := m.App.Tasks().Add(m.taskInput.Value())
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		m.taskInput.SetValue("")
		m.Tasks.Cursor = m.App.Tasks().Len() - 1
		return m, m.setStatus(fmt.Sprintf("added: %s", task.Text), false)
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ledger := m.App.Tasks()
	switch msg.String() {
	case "a", "i":
		m.Tasks.Editing = true
		m.taskInput.SetValue("")
		return m, m.taskInput.Focus()
	case "j", "down":
		if m.Tasks.Cursor < ledger.Len()-1 {
			m.Tasks.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
		return m, nil
	}

	task, err := ledger.At(m.Tasks.Cursor + 1)
	if err != nil {
		return m, nil
	}
	switch msg.String() {
	case "x", "enter":
		updated, err := ledger.Toggle(task.ID)
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		if updated.Completed {
			return m, m.setStatus(fmt.Sprintf("completed: %s", updated.Text), false)
		}
		return m, m.setStatus(fmt.Sprintf("reopened: %s", updated.Text), false)
	case "p":
		updated, err := ledger.IncrementPomodoro(task.ID)
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		return m, m.setStatus(fmt.Sprintf("%s: %d pomodoros", updated.Text, updated.CompletedPomodoros), false)
	case "d", "delete":
		if err := ledger.Delete(task.ID); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		m.clampTaskCursor()
		return m, m.setStatus(fmt.Sprintf("deleted: %s", task.Text), false)
	}
	return m, nil
}

func (m *Model) clampTaskCursor() {
	n := m.App.Tasks().Len()
	if m.Tasks.Cursor >= n {
		m.Tasks.Cursor = n - 1
	}
	if m.Tasks.Cursor < 0 {
		m.Tasks.Cursor = 0
	}
}

func (m Model) renderTasksPanel() string {
	list := m.App.Tasks().List()
	items := make([]views.TaskItemData, 0, len(list))
	for i, t := range list {
		items = append(items, views.TaskItemData{
			Position:  i + 1,
			Text:      t.Text,
			Completed: t.Completed,
			Pomodoros: t.CompletedPomodoros,
		})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		InputView: m.taskInput.View(),
		Editing:   m.Tasks.Editing,
		Items:     items,
		Cursor:    m.Tasks.Cursor,
	})
}
