package timer

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/pomod/internal/model"
)

type recordingPlayer struct {
	played []model.SoundKind
}

func (p *recordingPlayer) Play(kind model.SoundKind, _ int) { p.played = append(p.played, kind) }

func (p *recordingPlayer) count(kind model.SoundKind) int {
	n := 0
	for _, k := range p.played {
		if k == kind {
			n++
		}
	}
	return n
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(msg string) { n.messages = append(n.messages, msg) }

type recordingRecorder struct {
	minutes []int
}

func (r *recordingRecorder) RecordFocusSession(minutes int) { r.minutes = append(r.minutes, minutes) }

type harness struct {
	m        *Machine
	player   *recordingPlayer
	notifier *recordingNotifier
	recorder *recordingRecorder
}

func newHarness(settings model.TimerSettings) harness {
	h := harness{
		player:   &recordingPlayer{},
		notifier: &recordingNotifier{},
		recorder: &recordingRecorder{},
	}
	h.m = New(Config{
		Settings: settings,
		Audio:    model.DefaultAudioSettings(),
		Player:   h.player,
		Notifier: h.notifier,
		Recorder: h.recorder,
		Logger:   zerolog.Nop(),
	})
	return h
}

// fire delivers the next pending ticket, failing the test if none exists.
func (h harness) fire(t *testing.T) {
	t.Helper()
	ticket, ok := h.m.Pending()
	require.True(t, ok, "expected a pending ticket")
	require.True(t, h.m.Fire(ticket))
}

// runCountdown fires the four countdown steps that lead to running.
func (h harness) runCountdown(t *testing.T) {
	t.Helper()
	for i := 0; i <= CountdownStart; i++ {
		h.fire(t)
	}
	require.Equal(t, model.StatusRunning, h.m.Snapshot().Status)
}

func TestNewMachineDefaults(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	s := h.m.Snapshot()
	assert.Equal(t, model.ModeFocus, s.Mode)
	assert.Equal(t, model.StatusIdle, s.Status)
	assert.Equal(t, 25*60, s.TimeLeft)
	assert.Equal(t, 1, s.CurrentSession)
	assert.Equal(t, 0, s.CountdownValue)
	_, pending := h.m.Pending()
	assert.False(t, pending)
}

func TestStartCountsDownThenRuns(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()

	s := h.m.Snapshot()
	assert.Equal(t, model.StatusCountdown, s.Status)
	assert.Equal(t, 3, s.CountdownValue)

	for _, want := range []int{2, 1, 0} {
		h.fire(t)
		s = h.m.Snapshot()
		assert.Equal(t, model.StatusCountdown, s.Status)
		assert.Equal(t, want, s.CountdownValue)
	}

	h.fire(t)
	s = h.m.Snapshot()
	assert.Equal(t, model.StatusRunning, s.Status)
	assert.Equal(t, 0, s.CountdownValue)
	assert.Equal(t, 25*60, s.TimeLeft, "countdown does not consume period time")
	assert.Equal(t, 4, h.player.count(model.SoundCountdown), "one cue per countdown value")

	ticket, ok := h.m.Pending()
	require.True(t, ok)
	assert.Equal(t, TicketRun, ticket.Kind)
}

func TestRunTickDecrementsByOne(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	h.runCountdown(t)

	for i := 1; i <= 5; i++ {
		h.fire(t)
		assert.Equal(t, 25*60-i, h.m.Snapshot().TimeLeft)
	}
}

func TestNextHandsOutEachTicketOnce(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	_, ok := h.m.Next()
	assert.False(t, ok)

	h.m.Start()
	first, ok := h.m.Next()
	require.True(t, ok)
	_, ok = h.m.Next()
	assert.False(t, ok, "a ticket is handed out only once")

	require.True(t, h.m.Fire(first))
	second, ok := h.m.Next()
	require.True(t, ok)
	assert.NotEqual(t, first.Seq, second.Seq)
}

func TestPauseDuringCountdownAbortsAndCancels(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	h.fire(t)
	stale, ok := h.m.Next()
	require.True(t, ok)

	h.m.Pause()
	s := h.m.Snapshot()
	assert.Equal(t, model.StatusIdle, s.Status)
	assert.Equal(t, 0, s.CountdownValue)

	assert.False(t, h.m.Fire(stale), "cancelled countdown step must not fire")
	s = h.m.Snapshot()
	assert.Equal(t, model.StatusIdle, s.Status)
	assert.Equal(t, 0, s.CountdownValue)
}

func TestStaleTicketAfterRestartIgnored(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	old, _ := h.m.Next()
	h.m.Pause()
	h.m.Start()
	fresh, _ := h.m.Next()

	assert.False(t, h.m.Fire(old))
	assert.Equal(t, 3, h.m.Snapshot().CountdownValue)
	assert.True(t, h.m.Fire(fresh))
	assert.Equal(t, 2, h.m.Snapshot().CountdownValue)
}

func TestPauseRunningKeepsTimeLeft(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	h.runCountdown(t)
	h.fire(t)
	h.fire(t)
	runTicket, _ := h.m.Pending()

	h.m.Pause()
	s := h.m.Snapshot()
	assert.Equal(t, model.StatusPaused, s.Status)
	assert.Equal(t, 25*60-2, s.TimeLeft)
	assert.False(t, h.m.Fire(runTicket))
	assert.Equal(t, 25*60-2, h.m.Snapshot().TimeLeft)

	h.m.Start()
	assert.Equal(t, model.StatusCountdown, h.m.Snapshot().Status)
	h.runCountdown(t)
	h.fire(t)
	assert.Equal(t, 25*60-3, h.m.Snapshot().TimeLeft)
}

func TestIdempotentPauseAndStart(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	h.runCountdown(t)
	h.fire(t)

	before := h.m.Snapshot()
	ticket, _ := h.m.Pending()
	h.m.Start()
	assert.Equal(t, before, h.m.Snapshot(), "start while running is a no-op")
	again, _ := h.m.Pending()
	assert.Equal(t, ticket, again)

	h.m.Pause()
	paused := h.m.Snapshot()
	h.m.Pause()
	assert.Equal(t, paused, h.m.Snapshot(), "second pause is a no-op")
	_, pending := h.m.Pending()
	assert.False(t, pending)
}

func TestStartDuringCountdownIsNoop(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	h.fire(t)
	ticket, _ := h.m.Pending()
	h.m.Start()
	assert.Equal(t, 2, h.m.Snapshot().CountdownValue)
	again, _ := h.m.Pending()
	assert.Equal(t, ticket, again)
}

func TestResetProperty(t *testing.T) {
	settingsCases := []model.TimerSettings{
		model.DefaultTimerSettings(),
		{FocusTime: 1, ShortBreak: 1, LongBreak: 5, TotalSessions: 1, SessionsUntilLongBreak: 2},
		{FocusTime: 60, ShortBreak: 30, LongBreak: 60, TotalSessions: 12, SessionsUntilLongBreak: 8},
	}
	for _, settings := range settingsCases {
		h := newHarness(settings)
		for _, mode := range []model.Mode{model.ModeFocus, model.ModeShortBreak, model.ModeLongBreak} {
			for h.m.Snapshot().Mode != mode {
				h.m.Skip()
			}
			h.m.Start()
			h.m.Reset()
			s := h.m.Snapshot()
			assert.Equal(t, settings.MinutesFor(mode)*60, s.TimeLeft, "mode %s", mode)
			assert.Equal(t, model.StatusIdle, s.Status)
			assert.Equal(t, mode, s.Mode)
			_, pending := h.m.Pending()
			assert.False(t, pending)
		}
	}
}

func TestResetKeepsModeAndSession(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Skip()
	h.m.Reset()
	s := h.m.Snapshot()
	assert.Equal(t, model.ModeShortBreak, s.Mode)
	assert.Equal(t, 2, s.CurrentSession)
	assert.Equal(t, 5*60, s.TimeLeft)
}

func TestLongBreakEveryKthFocusCompletion(t *testing.T) {
	for k := model.MinLongBreakInterval; k <= model.MaxLongBreakInterval; k++ {
		settings := model.DefaultTimerSettings()
		settings.SessionsUntilLongBreak = k
		h := newHarness(settings)
		for n := 1; n <= 3*k; n++ {
			require.Equal(t, model.ModeFocus, h.m.Snapshot().Mode)
			h.m.Skip()
			s := h.m.Snapshot()
			want := model.ModeShortBreak
			if n%k == 0 {
				want = model.ModeLongBreak
			}
			assert.Equal(t, want, s.Mode, "k=%d n=%d", k, n)
			assert.Equal(t, n+1, s.CurrentSession)
			h.m.Skip()
		}
	}
}

func TestDefaultFourSessionScenario(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	want := []model.Mode{model.ModeShortBreak, model.ModeShortBreak, model.ModeShortBreak, model.ModeLongBreak}
	for i, mode := range want {
		h.m.Skip()
		s := h.m.Snapshot()
		assert.Equal(t, mode, s.Mode, "completion %d", i+1)
		assert.Equal(t, settingsSeconds(mode), s.TimeLeft)
		assert.Equal(t, model.StatusIdle, s.Status)
		h.m.Skip()
		assert.Equal(t, model.ModeFocus, h.m.Snapshot().Mode)
	}
	assert.Equal(t, []int{25, 25, 25, 25}, h.recorder.minutes)
}

func settingsSeconds(mode model.Mode) int {
	return model.DefaultTimerSettings().SecondsFor(mode)
}

func TestNaturalExpiryCompletesFocus(t *testing.T) {
	settings := model.DefaultTimerSettings()
	settings.FocusTime = 1
	h := newHarness(settings)
	h.m.Start()
	h.runCountdown(t)

	for i := 0; i < 59; i++ {
		h.fire(t)
	}
	assert.Equal(t, 1, h.m.Snapshot().TimeLeft)
	assert.Empty(t, h.notifier.messages)

	h.fire(t)
	s := h.m.Snapshot()
	assert.Equal(t, model.ModeShortBreak, s.Mode)
	assert.Equal(t, model.StatusIdle, s.Status)
	assert.Equal(t, 5*60, s.TimeLeft)
	assert.Equal(t, 2, s.CurrentSession)
	assert.Equal(t, []string{FocusCompleteMessage}, h.notifier.messages)
	assert.Equal(t, 1, h.player.count(model.SoundBell))
	assert.Equal(t, []int{1}, h.recorder.minutes)
	_, pending := h.m.Pending()
	assert.False(t, pending, "interval is stopped after completion")
}

func TestAutoStartBreaksKeepsRunning(t *testing.T) {
	settings := model.DefaultTimerSettings()
	settings.FocusTime = 1
	settings.AutoStartBreaks = true
	h := newHarness(settings)
	h.m.Start()
	h.runCountdown(t)
	for i := 0; i < 60; i++ {
		h.fire(t)
	}

	s := h.m.Snapshot()
	assert.Equal(t, model.ModeShortBreak, s.Mode)
	assert.Equal(t, model.StatusRunning, s.Status)
	ticket, ok := h.m.Pending()
	require.True(t, ok)
	assert.Equal(t, TicketRun, ticket.Kind)

	h.fire(t)
	assert.Equal(t, 5*60-1, h.m.Snapshot().TimeLeft)
}

func TestBreakCompletionReturnsToFocus(t *testing.T) {
	settings := model.DefaultTimerSettings()
	settings.AutoStartPomodoros = true
	h := newHarness(settings)
	h.m.Skip()
	require.Equal(t, model.ModeShortBreak, h.m.Snapshot().Mode)

	h.m.Skip()
	s := h.m.Snapshot()
	assert.Equal(t, model.ModeFocus, s.Mode)
	assert.Equal(t, model.StatusRunning, s.Status)
	assert.Equal(t, 25*60, s.TimeLeft)
	assert.Equal(t, 2, s.CurrentSession, "break completion does not touch the counter")
	assert.Len(t, h.recorder.minutes, 1, "breaks are not recorded")
}

func TestSkipCancelsAndStaysSilent(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	countdown, _ := h.m.Pending()
	h.m.Skip()

	assert.False(t, h.m.Fire(countdown))
	s := h.m.Snapshot()
	assert.Equal(t, model.ModeShortBreak, s.Mode)
	assert.Equal(t, 0, s.CountdownValue)
	assert.Empty(t, h.notifier.messages)
	assert.Zero(t, h.player.count(model.SoundBell))
	assert.Equal(t, []int{25}, h.recorder.minutes)
}

func TestTickingSoundOnlyInFocus(t *testing.T) {
	settings := model.DefaultTimerSettings()
	h := newHarness(settings)
	h.m.SetAudio(model.AudioSettings{NotificationSound: model.SoundNone, Volume: 40, TickingSound: true})

	h.m.Start()
	h.runCountdown(t)
	h.fire(t)
	h.fire(t)
	assert.Equal(t, 2, h.player.count(model.SoundTick))

	h.m.Skip()
	h.m.Start()
	h.runCountdown(t)
	h.fire(t)
	assert.Equal(t, 2, h.player.count(model.SoundTick), "no ticking during breaks")
}

func TestNotificationSoundNoneIsSilent(t *testing.T) {
	settings := model.DefaultTimerSettings()
	settings.ShortBreak = 1
	h := newHarness(settings)
	h.m.SetAudio(model.AudioSettings{NotificationSound: model.SoundNone, Volume: 50})
	h.m.Skip()
	h.m.Start()
	h.runCountdown(t)
	for i := 0; i < 60; i++ {
		h.fire(t)
	}
	assert.Equal(t, []string{BreakCompleteMessage}, h.notifier.messages)
	for _, k := range h.player.played {
		assert.Equal(t, model.SoundCountdown, k)
	}
}

func TestApplySettingsRejectedWhileRunning(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	h.runCountdown(t)

	next := model.DefaultTimerSettings()
	next.FocusTime = 50
	err := h.m.ApplySettings(next)
	assert.ErrorIs(t, err, ErrTimerRunning)
	assert.Equal(t, 25, h.m.Settings().FocusTime)
	assert.Equal(t, model.StatusRunning, h.m.Snapshot().Status)
}

func TestApplySettingsResets(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	h.runCountdown(t)
	h.fire(t)
	h.m.Pause()

	next := model.DefaultTimerSettings()
	next.FocusTime = 90
	require.NoError(t, h.m.ApplySettings(next))
	s := h.m.Snapshot()
	assert.Equal(t, 60, h.m.Settings().FocusTime, "settings are clamped")
	assert.Equal(t, 60*60, s.TimeLeft)
	assert.Equal(t, model.StatusIdle, s.Status)
}

func TestApplySettingsDuringCountdownCancels(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Start()
	ticket, _ := h.m.Pending()
	require.NoError(t, h.m.ApplySettings(model.DefaultTimerSettings()))
	assert.False(t, h.m.Fire(ticket))
	assert.Equal(t, model.StatusIdle, h.m.Snapshot().Status)
}

func TestToggle(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	h.m.Toggle()
	assert.Equal(t, model.StatusCountdown, h.m.Snapshot().Status)
	h.m.Toggle()
	assert.Equal(t, model.StatusIdle, h.m.Snapshot().Status)
}

func TestDisplaySessionAndProgress(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	assert.Equal(t, 1, h.m.DisplaySession())
	assert.Zero(t, h.m.Progress())

	h.m.Skip()
	h.m.Skip()
	assert.Equal(t, 3, h.m.Snapshot().CurrentSession)
	assert.Equal(t, 2, h.m.DisplaySession())

	h.m.Start()
	h.runCountdown(t)
	for i := 0; i < 15*60; i++ {
		h.fire(t)
	}
	assert.InDelta(t, 0.6, h.m.Progress(), 1e-9)
}

func TestFireWithoutPending(t *testing.T) {
	h := newHarness(model.DefaultTimerSettings())
	assert.False(t, h.m.Fire(Ticket{Kind: TicketRun, Seq: 1}))
	assert.Equal(t, model.StatusIdle, h.m.Snapshot().Status)
}
