package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/timer"
	"github.com/sandeepkv93/pomod/internal/views"
)

type settingField struct {
	label  string
	value  func(SettingsState) string
	adjust func(*SettingsState, int)
}

const volumeStep = 10

var settingFields = []settingField{
	intField("Focus", "min", func(s *SettingsState) *int { return &s.Timer.FocusTime }),
	intField("Short break", "min", func(s *SettingsState) *int { return &s.Timer.ShortBreak }),
	intField("Long break", "min", func(s *SettingsState) *int { return &s.Timer.LongBreak }),
	intField("Sessions", "", func(s *SettingsState) *int { return &s.Timer.TotalSessions }),
	intField("Long break every", "sessions", func(s *SettingsState) *int { return &s.Timer.SessionsUntilLongBreak }),
	boolField("Auto-start breaks", func(s *SettingsState) *bool { return &s.Timer.AutoStartBreaks }),
	boolField("Auto-start pomodoros", func(s *SettingsState) *bool { return &s.Timer.AutoStartPomodoros }),
	{
		label: "Notification sound",
		value: func(s SettingsState) string { return string(s.Audio.NotificationSound) },
		adjust: func(s *SettingsState, dir int) {
			sounds := model.NotificationSounds
			idx := 0
			for i, k := range sounds {
				if k == s.Audio.NotificationSound {
					idx = i
				}
			}
			idx = (idx + dir + len(sounds)) % len(sounds)
			s.Audio.NotificationSound = sounds[idx]
		},
	},
	{
		label:  "Volume",
		value:  func(s SettingsState) string { return fmt.Sprintf("%d%%", s.Audio.Volume) },
		adjust: func(s *SettingsState, dir int) { s.Audio.Volume += dir * volumeStep },
	},
	boolField("Ticking sound", func(s *SettingsState) *bool { return &s.Audio.TickingSound }),
}

func intField(label, unit string, ptr func(*SettingsState) *int) settingField {
	return settingField{
		label: label,
		value: func(s SettingsState) string {
			v := *ptr(&s)
			if unit == "" {
				return fmt.Sprintf("%d", v)
			}
			return fmt.Sprintf("%d %s", v, unit)
		},
		adjust: func(s *SettingsState, dir int) { *ptr(s) += dir },
	}
}

func boolField(label string, ptr func(*SettingsState) *bool) settingField {
	return settingField{
		label: label,
		value: func(s SettingsState) string {
			if *ptr(&s) {
				return "on"
			}
			return "off"
		},
		adjust: func(s *SettingsState, _ int) { *ptr(s) = !*ptr(s) },
	}
}

func (m *Model) openSettings() {
	m.Settings = SettingsState{
		Timer: m.App.Timer().Settings(),
		Audio: m.App.Timer().Audio(),
	}
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down", "tab":
		m.Settings.Cursor = (m.Settings.Cursor + 1) % len(settingFields)
	case "k", "up", "shift+tab":
		m.Settings.Cursor = (m.Settings.Cursor - 1 + len(settingFields)) % len(settingFields)
	case "l", "right", "+":
		m.adjustSetting(1)
	case "h", "left", "-":
		m.adjustSetting(-1)
	case "p":
		m.App.PreviewSound(m.Settings.Audio.NotificationSound, m.Settings.Audio.Volume)
	case "enter":
		return m.saveSettings()
	}
	return m, nil
}

func (m *Model) adjustSetting(dir int) {
	settingFields[m.Settings.Cursor].adjust(&m.Settings, dir)
	m.Settings.Timer = m.Settings.Timer.Clamp()
	m.Settings.Audio = m.Settings.Audio.Clamp()
}

func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	if err := m.App.SaveSettings(m.Settings.Timer); err != nil {
		if errors.Is(err, timer.ErrTimerRunning) {
			m.Settings.Warning = SettingsBlockedWarning
			return m, m.setStatus(SettingsBlockedWarning, true)
		}
		return m, m.setStatus(err.Error(), true)
	}
	m.App.SaveAudio(m.Settings.Audio)
	m.Panel = PanelNone
	return m, tea.Batch(m.afterTimerOp(), m.setStatus("settings saved", false))
}

func (m Model) renderSettingsPanel() string {
	fields := make([]views.SettingFieldData, 0, len(settingFields))
	for i, f := range settingFields {
		fields = append(fields, views.SettingFieldData{
			Label:    f.label,
			Value:    f.value(m.Settings),
			Selected: i == m.Settings.Cursor,
		})
	}
	return views.RenderSettingsPanel(views.SettingsPanelData{Fields: fields, Warning: m.Settings.Warning})
}
