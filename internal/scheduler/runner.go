package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/timer"
)

// Runner drives a timer.Machine without a UI: it arms one engine event per
// ticket the machine hands out and feeds due events back through Fire. The
// Runner's goroutine is the only one that touches the machine.
type Runner struct {
	machine *timer.Machine
	engine  *Engine
	now     func() time.Time
	log     zerolog.Logger
	armed   string
}

func NewRunner(machine *timer.Machine, engine *Engine, now func() time.Time, log zerolog.Logger) *Runner {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Runner{
		machine: machine,
		engine:  engine,
		now:     now,
		log:     log.With().Str("component", "runner").Logger(),
	}
}

// Arm schedules the machine's next ticket, if any. A previously armed event
// whose ticket is no longer pending is cancelled first.
func (r *Runner) Arm() error {
	if r.armed != "" {
		if p, ok := r.machine.Pending(); !ok || p.String() != r.armed {
			r.engine.Cancel(r.armed)
			r.armed = ""
		}
	}
	ticket, ok := r.machine.Next()
	if !ok {
		return nil
	}
	ev := EventFor(ticket, r.now())
	if err := r.engine.Schedule(ev); err != nil {
		return err
	}
	r.armed = ev.ID
	return nil
}

// Run delivers tickets until done reports true for the state after a fire,
// the machine has nothing pending, or ctx ends. onFire, when set, sees every
// state produced by a live ticket.
func (r *Runner) Run(ctx context.Context, done func(timer.State) bool, onFire func(timer.State)) error {
	if err := r.Arm(); err != nil {
		return err
	}
	for {
		if _, ok := r.machine.Pending(); !ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-r.engine.C():
			if !ok {
				return ErrEngineStopped
			}
			if ev.ID == r.armed {
				r.armed = ""
			}
			if !r.machine.Fire(ev.Ticket) {
				r.log.Debug().Str("ticket", ev.ID).Msg("stale ticket ignored")
				continue
			}
			state := r.machine.Snapshot()
			if onFire != nil {
				onFire(state)
			}
			if done != nil && done(state) {
				return r.Arm()
			}
			if err := r.Arm(); err != nil {
				return err
			}
		}
	}
}
