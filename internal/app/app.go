// Package app wires the timer, task ledger and statistics together around
// one persistence gateway. Frontends (the TUI and the CLI) hold an *App and
// mutate state only through its methods and the components it exposes.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/clock"
	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/quotes"
	"github.com/sandeepkv93/pomod/internal/stats"
	"github.com/sandeepkv93/pomod/internal/storage"
	"github.com/sandeepkv93/pomod/internal/tasks"
	"github.com/sandeepkv93/pomod/internal/timer"
)

type Deps struct {
	Gateway  *storage.Gateway
	Clock    clock.Clock
	Player   timer.Player
	Notifier timer.Notifier
	Logger   zerolog.Logger
	NewID    func() string
}

type App struct {
	ctx      context.Context
	gateway  *storage.Gateway
	clock    clock.Clock
	player   timer.Player
	log      zerolog.Logger
	machine  *timer.Machine
	ledger   *tasks.Ledger
	stats    model.Statistics
	quote    string
	quoteIdx int
}

// Load restores every record from the gateway, falling back to defaults, and
// builds the components on top of them. ctx scopes every later persistence
// call made by the App.
func Load(ctx context.Context, deps Deps) *App {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Gateway == nil {
		deps.Gateway = storage.NewGateway(nil, deps.Logger)
	}
	a := &App{
		ctx:     ctx,
		gateway: deps.Gateway,
		clock:   deps.Clock,
		player:  deps.Player,
		log:     deps.Logger.With().Str("component", "app").Logger(),
	}

	a.stats = a.gateway.LoadStatistics(ctx)
	a.machine = timer.New(timer.Config{
		Settings: a.gateway.LoadTimerSettings(ctx),
		Audio:    a.gateway.LoadAudioSettings(ctx),
		Player:   deps.Player,
		Notifier: deps.Notifier,
		Recorder: a,
		Logger:   deps.Logger,
	})
	a.ledger = tasks.New(a.gateway.LoadTasks(ctx), tasks.Options{
		Clock:      deps.Clock,
		NewID:      deps.NewID,
		Persist:    func(ts []model.Task) { a.gateway.SaveTasks(a.ctx, ts) },
		OnComplete: func(model.Task) { a.recordTaskCompleted() },
		Logger:     deps.Logger,
	})
	a.quoteIdx = a.gateway.LoadQuoteIndex(ctx)

	a.log.Debug().
		Int("tasks", a.ledger.Len()).
		Int("total_sessions", a.stats.TotalSessions).
		Msg("state loaded")
	return a
}

func (a *App) Timer() *timer.Machine { return a.machine }
func (a *App) Tasks() *tasks.Ledger   { return a.ledger }
func (a *App) Clock() clock.Clock     { return a.clock }

// Statistics returns a copy of the all-time record.
func (a *App) Statistics() model.Statistics { return a.stats.Clone() }

func (a *App) TodayStats() model.DailyStats {
	return stats.Today(a.stats, a.clock.Now())
}

// WeeklyStats is recomputed on every call.
func (a *App) WeeklyStats() model.DailyStats {
	return stats.Weekly(a.stats, a.clock.Now())
}

func (a *App) LastDays(n int) []stats.Day {
	return stats.LastDays(a.stats, a.clock.Now(), n)
}

// RecordFocusSession implements timer.Recorder.
func (a *App) RecordFocusSession(minutes int) {
	a.stats = stats.RecordFocusSession(a.stats, minutes, a.clock.Now())
	a.gateway.SaveStatistics(a.ctx, a.stats)
	a.log.Info().
		Int("minutes", minutes).
		Int("streak", a.stats.CurrentStreak).
		Msg("focus session recorded")
}

func (a *App) recordTaskCompleted() {
	a.stats = stats.RecordTaskCompleted(a.stats, a.clock.Now())
	a.gateway.SaveStatistics(a.ctx, a.stats)
}

// SaveSettings applies s to the timer and persists it. While the timer is
// running it returns timer.ErrTimerRunning and nothing changes.
func (a *App) SaveSettings(s model.TimerSettings) error {
	if err := a.machine.ApplySettings(s); err != nil {
		a.log.Debug().Err(err).Msg("settings change refused")
		return err
	}
	a.gateway.SaveTimerSettings(a.ctx, a.machine.Settings())
	return nil
}

func (a *App) SaveAudio(s model.AudioSettings) {
	a.machine.SetAudio(s)
	a.gateway.SaveAudioSettings(a.ctx, a.machine.Audio())
}

// PreviewSound plays kind at volume so the user can hear a choice before
// saving it.
func (a *App) PreviewSound(kind model.SoundKind, volume int) {
	if a.player == nil || kind == model.SoundNone {
		return
	}
	a.player.Play(kind, volume)
}

// Quote returns this launch's quote. The first call advances the stored
// rotation index so the next launch shows the following quote.
func (a *App) Quote() string {
	if a.quote != "" {
		return a.quote
	}
	q, next := quotes.Next(a.quoteIdx)
	a.quote = q
	a.gateway.SaveQuoteIndex(a.ctx, next)
	return q
}

// PersistError reports the most recent storage failure, for diagnostics.
func (a *App) PersistError() error { return a.gateway.LastError() }
