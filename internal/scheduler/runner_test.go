package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/timer"
)

// immediate makes every armed event due as soon as it is scheduled.
func immediate() time.Time {
	return time.Now().UTC().Add(-timer.TickInterval)
}

func newMachine(focusMinutes int) *timer.Machine {
	settings := model.DefaultTimerSettings()
	settings.FocusTime = focusMinutes
	return timer.New(timer.Config{Settings: settings, Audio: model.DefaultAudioSettings(), Logger: zerolog.Nop()})
}

func TestRunnerDrivesFocusToCompletion(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	m := newMachine(1)
	m.Start()
	r := NewRunner(m, engine, immediate, zerolog.Nop())

	fires := 0
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := r.Run(ctx, func(s timer.State) bool { return s.Mode != model.ModeFocus }, func(timer.State) { fires++ })
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	s := m.Snapshot()
	if s.Mode != model.ModeShortBreak || s.Status != model.StatusIdle {
		t.Fatalf("unexpected final state: %+v", s)
	}
	if fires != timer.CountdownStart+1+60 {
		t.Fatalf("fires = %d, want %d", fires, timer.CountdownStart+1+60)
	}
}

func TestRunnerReturnsWhenNothingPending(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	r := NewRunner(newMachine(1), engine, immediate, zerolog.Nop())
	if err := r.Run(context.Background(), nil, nil); err != nil {
		t.Fatalf("idle machine should return immediately, got %v", err)
	}
}

func TestRunnerHonoursContext(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	m := newMachine(25)
	m.Start()
	r := NewRunner(m, engine, nil, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := r.Run(ctx, nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if m.Snapshot().CountdownValue != timer.CountdownStart {
		t.Fatalf("no tick should have been delivered yet: %+v", m.Snapshot())
	}
}

func TestRunnerCancelsStaleEvent(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	m := newMachine(25)
	m.Start()
	r := NewRunner(m, engine, func() time.Time { return time.Now().UTC().Add(time.Hour) }, zerolog.Nop())
	if err := r.Arm(); err != nil {
		t.Fatalf("arm: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one armed event, got %d", engine.Pending())
	}

	m.Pause()
	if err := r.Arm(); err != nil {
		t.Fatalf("re-arm: %v", err)
	}
	if engine.Pending() != 0 {
		t.Fatalf("stale event should be cancelled, got %d queued", engine.Pending())
	}
}
