package model

import "time"

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

func (m Mode) Label() string {
	switch m {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCountdown Status = "countdown"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusRunning, StatusPaused, StatusCountdown:
		return true
	default:
		return false
	}
}

// Bounds for TimerSettings fields, inclusive.
const (
	MinFocusMinutes      = 1
	MaxFocusMinutes      = 60
	MinShortBreakMinutes = 1
	MaxShortBreakMinutes = 30
	MinLongBreakMinutes  = 5
	MaxLongBreakMinutes  = 60
	MinTotalSessions     = 1
	MaxTotalSessions     = 12
	MinLongBreakInterval = 2
	MaxLongBreakInterval = 8
)

type TimerSettings struct {
	FocusTime              int  `json:"focusTime" yaml:"focus_time"`
	ShortBreak             int  `json:"shortBreak" yaml:"short_break"`
	LongBreak              int  `json:"longBreak" yaml:"long_break"`
	TotalSessions          int  `json:"totalSessions" yaml:"total_sessions"`
	SessionsUntilLongBreak int  `json:"sessionsUntilLongBreak" yaml:"sessions_until_long_break"`
	AutoStartBreaks        bool `json:"autoStartBreaks" yaml:"auto_start_breaks"`
	AutoStartPomodoros     bool `json:"autoStartPomodoros" yaml:"auto_start_pomodoros"`
}

func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		FocusTime:              25,
		ShortBreak:             5,
		LongBreak:              15,
		TotalSessions:          4,
		SessionsUntilLongBreak: 4,
		AutoStartBreaks:        false,
		AutoStartPomodoros:     false,
	}
}

// Clamp pulls every numeric field into its documented range.
func (s TimerSettings) Clamp() TimerSettings {
	s.FocusTime = clampInt(s.FocusTime, MinFocusMinutes, MaxFocusMinutes)
	s.ShortBreak = clampInt(s.ShortBreak, MinShortBreakMinutes, MaxShortBreakMinutes)
	s.LongBreak = clampInt(s.LongBreak, MinLongBreakMinutes, MaxLongBreakMinutes)
	s.TotalSessions = clampInt(s.TotalSessions, MinTotalSessions, MaxTotalSessions)
	s.SessionsUntilLongBreak = clampInt(s.SessionsUntilLongBreak, MinLongBreakInterval, MaxLongBreakInterval)
	return s
}

// MinutesFor returns the configured length of a period in minutes.
func (s TimerSettings) MinutesFor(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return s.ShortBreak
	case ModeLongBreak:
		return s.LongBreak
	default:
		return s.FocusTime
	}
}

func (s TimerSettings) SecondsFor(mode Mode) int {
	return s.MinutesFor(mode) * 60
}

func (s TimerSettings) DurationFor(mode Mode) time.Duration {
	return time.Duration(s.MinutesFor(mode)) * time.Minute
}

type SoundKind string

const (
	SoundBell      SoundKind = "bell"
	SoundChime     SoundKind = "chime"
	SoundDing      SoundKind = "ding"
	SoundBeep      SoundKind = "beep"
	SoundNone      SoundKind = "none"
	SoundTick      SoundKind = "tick"
	SoundCountdown SoundKind = "countdown"
)

// NotificationSounds lists the kinds a user may pick for session completion.
var NotificationSounds = []SoundKind{SoundBell, SoundChime, SoundDing, SoundBeep, SoundNone}

func (k SoundKind) IsNotification() bool {
	for _, s := range NotificationSounds {
		if s == k {
			return true
		}
	}
	return false
}

const (
	MinVolume = 0
	MaxVolume = 100
)

type AudioSettings struct {
	NotificationSound SoundKind `json:"notificationSound" yaml:"notification_sound"`
	Volume            int       `json:"volume" yaml:"volume"`
	TickingSound      bool      `json:"tickingSound" yaml:"ticking_sound"`
}

func DefaultAudioSettings() AudioSettings {
	return AudioSettings{
		NotificationSound: SoundBell,
		Volume:            50,
		TickingSound:      false,
	}
}

func (a AudioSettings) Clamp() AudioSettings {
	if !a.NotificationSound.IsNotification() {
		a.NotificationSound = SoundBell
	}
	a.Volume = clampInt(a.Volume, MinVolume, MaxVolume)
	return a
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
