package views

import (
	"fmt"
	"strings"
)

type TimerPanelData struct {
	Mode           string
	ModeLabel      string
	Status         string
	TimeLeft       int
	CountdownValue int
	SpinnerView    string
	ProgressView   string
	ProgressPct    int
	Session        int
	TotalSessions  int
	TasksDone      int
	TasksTotal     int
}

type TaskItemData struct {
	Position  int
	Text      string
	Completed bool
	Pomodoros int
}

type TasksPanelData struct {
	InputView string
	Editing   bool
	Items     []TaskItemData
	Cursor    int
}

type SettingFieldData struct {
	Label    string
	Value    string
	Selected bool
}

type SettingsPanelData struct {
	Fields  []SettingFieldData
	Warning string
}

type StatsPanelData struct {
	TableView string
	Summary   string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

// FormatClock renders seconds as MM:SS. Minutes are not wrapped at 60.
func FormatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n\n", strings.ToUpper(data.ModeLabel)))
	if data.Status == "countdown" {
		b.WriteString(fmt.Sprintf("   %s starting in %d\n", data.SpinnerView, data.CountdownValue))
	} else {
		b.WriteString(fmt.Sprintf("   %s\n", FormatClock(data.TimeLeft)))
	}
	b.WriteString(fmt.Sprintf("\n%s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("status: %s\n", data.Status))
	b.WriteString(fmt.Sprintf("session %d of %d\n", data.Session, data.TotalSessions))
	if data.TasksTotal > 0 {
		b.WriteString(fmt.Sprintf("tasks: %d/%d done\n", data.TasksDone, data.TasksTotal))
	}
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(data.InputView + "\n")
	if data.Editing {
		b.WriteString("actions: [enter]add [esc]done typing\n")
	} else {
		b.WriteString("actions: [a]add [j/k]move [x]toggle [p]+pomodoro [d]delete\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("\n(no tasks yet)")
		return b.String()
	}
	b.WriteString("\n")
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor && !data.Editing {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s", cursor, item.Position, check, item.Text))
		if item.Pomodoros > 0 {
			b.WriteString(fmt.Sprintf(" (%d\U0001F345)", item.Pomodoros))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("actions: [j/k]field [h/l]change [p]preview [enter]save [esc]cancel\n\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-24s %s\n", cursor, f.Label, f.Value))
	}
	if data.Warning != "" {
		b.WriteString("\nwarning: " + data.Warning + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderStatsPanel(data StatsPanelData) string {
	return fmt.Sprintf("statistics:\n%s\n\n%s", data.Summary, data.TableView)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}
