// Package timer is the Pomodoro session state machine. It never sleeps; the
// driver delivers each pending Ticket back through Fire.
package timer

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/model"
)

var ErrTimerRunning = errors.New("timer: settings cannot change while the timer is running")

const CountdownStart = 3

const (
	FocusCompleteMessage = "Focus session completed!"
	BreakCompleteMessage = "Break completed!"
)

// Player implementations must not block.
type Player interface {
	Play(kind model.SoundKind, volume int)
}

type Notifier interface {
	Notify(message string)
}

type Recorder interface {
	RecordFocusSession(minutes int)
}

type State struct {
	Mode           model.Mode
	Status         model.Status
	TimeLeft       int
	CurrentSession int
	CountdownValue int
}

type Config struct {
	Settings model.TimerSettings
	Audio    model.AudioSettings
	Player   Player
	Notifier Notifier
	Recorder Recorder
	Logger   zerolog.Logger
}

type Machine struct {
	state    State
	settings model.TimerSettings
	audio    model.AudioSettings
	player   Player
	notifier Notifier
	recorder Recorder
	log      zerolog.Logger

	seq     uint64
	pending *Ticket
	handed  bool
}

func New(cfg Config) *Machine {
	settings := cfg.Settings.Clamp()
	m := &Machine{
		settings: settings,
		audio:    cfg.Audio.Clamp(),
		player:   cfg.Player,
		notifier: cfg.Notifier,
		recorder: cfg.Recorder,
		log:      cfg.Logger.With().Str("component", "timer").Logger(),
		state: State{
			Mode:           model.ModeFocus,
			Status:         model.StatusIdle,
			TimeLeft:       settings.SecondsFor(model.ModeFocus),
			CurrentSession: 1,
		},
	}
	return m
}

func (m *Machine) Snapshot() State                { return m.state }
func (m *Machine) Settings() model.TimerSettings { return m.settings }
func (m *Machine) Audio() model.AudioSettings    { return m.audio }

func (m *Machine) Start() {
	if m.state.Status != model.StatusIdle && m.state.Status != model.StatusPaused {
		return
	}
	m.cancel()
	m.state.Status = model.StatusCountdown
	m.state.CountdownValue = CountdownStart
	m.play(model.SoundCountdown)
	m.schedule(TicketCountdown)
	m.log.Debug().Str("mode", string(m.state.Mode)).Msg("countdown started")
}

// Pause aborts a pending countdown back to idle.
func (m *Machine) Pause() {
	switch m.state.Status {
	case model.StatusRunning:
		m.cancel()
		m.state.Status = model.StatusPaused
		m.log.Debug().Int("time_left", m.state.TimeLeft).Msg("paused")
	case model.StatusCountdown:
		m.cancel()
		m.state.Status = model.StatusIdle
		m.state.CountdownValue = 0
		m.log.Debug().Msg("countdown aborted")
	}
}

func (m *Machine) Toggle() {
	if m.state.Status == model.StatusRunning || m.state.Status == model.StatusCountdown {
		m.Pause()
		return
	}
	m.Start()
}

func (m *Machine) Reset() {
	m.cancel()
	m.state.TimeLeft = m.settings.SecondsFor(m.state.Mode)
	m.state.Status = model.StatusIdle
	m.state.CountdownValue = 0
}

// Skip completes the period silently: no sound, no message.
func (m *Machine) Skip() {
	m.cancel()
	m.log.Debug().Str("mode", string(m.state.Mode)).Msg("period skipped")
	m.complete()
}

func (m *Machine) ApplySettings(s model.TimerSettings) error {
	if m.state.Status == model.StatusRunning {
		return ErrTimerRunning
	}
	m.settings = s.Clamp()
	m.Reset()
	return nil
}

func (m *Machine) SetAudio(a model.AudioSettings) {
	m.audio = a.Clamp()
}

// Fire reports false for a stale ticket.
func (m *Machine) Fire(t Ticket) bool {
	if m.pending == nil || *m.pending != t {
		return false
	}
	m.pending = nil
	m.handed = false

	switch t.Kind {
	case TicketCountdown:
		m.stepCountdown()
	case TicketRun:
		m.stepRun()
	}
	return true
}

func (m *Machine) stepCountdown() {
	if m.state.CountdownValue > 0 {
		m.state.CountdownValue--
		m.play(model.SoundCountdown)
		m.schedule(TicketCountdown)
		return
	}
	m.state.Status = model.StatusRunning
	m.schedule(TicketRun)
	m.log.Debug().Int("time_left", m.state.TimeLeft).Msg("running")
}

func (m *Machine) stepRun() {
	if m.state.TimeLeft > 0 {
		m.state.TimeLeft--
	}
	if m.audio.TickingSound && m.state.Mode == model.ModeFocus {
		m.play(model.SoundTick)
	}
	if m.state.TimeLeft > 0 {
		m.schedule(TicketRun)
		return
	}
	m.expire()
}

func (m *Machine) expire() {
	m.cancel()
	m.play(m.audio.NotificationSound)
	if m.notifier != nil {
		msg := BreakCompleteMessage
		if m.state.Mode == model.ModeFocus {
			msg = FocusCompleteMessage
		}
		m.notifier.Notify(msg)
	}
	m.complete()
}

func (m *Machine) complete() {
	m.state.CountdownValue = 0
	if m.state.Mode == model.ModeFocus {
		if m.recorder != nil {
			m.recorder.RecordFocusSession(m.settings.FocusTime)
		}
		long := m.state.CurrentSession%m.settings.SessionsUntilLongBreak == 0
		m.state.CurrentSession++
		m.state.Mode = model.ModeShortBreak
		if long {
			m.state.Mode = model.ModeLongBreak
		}
		m.state.Status = statusFor(m.settings.AutoStartBreaks)
	} else {
		m.state.Mode = model.ModeFocus
		m.state.Status = statusFor(m.settings.AutoStartPomodoros)
	}
	m.state.TimeLeft = m.settings.SecondsFor(m.state.Mode)
	if m.state.Status == model.StatusRunning {
		m.schedule(TicketRun)
	}
	m.log.Debug().
		Str("mode", string(m.state.Mode)).
		Str("status", string(m.state.Status)).
		Int("session", m.state.CurrentSession).
		Msg("period completed")
}

func statusFor(autoStart bool) model.Status {
	if autoStart {
		return model.StatusRunning
	}
	return model.StatusIdle
}

func (m *Machine) play(kind model.SoundKind) {
	if m.player == nil || kind == model.SoundNone {
		return
	}
	m.player.Play(kind, m.audio.Volume)
}

// DisplaySession halves the focus-only counter.
func (m *Machine) DisplaySession() int {
	return (m.state.CurrentSession + 1) / 2
}

func (m *Machine) Progress() float64 {
	total := m.settings.SecondsFor(m.state.Mode)
	if total <= 0 {
		return 0
	}
	p := float64(total-m.state.TimeLeft) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
