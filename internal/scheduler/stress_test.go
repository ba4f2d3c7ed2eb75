package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/pomod/internal/timer"
)

// Workers schedule tickets and immediately cancel every other one while the
// engine loop is popping due events. Every ticket must end up either
// delivered or cancelled, never both.
func TestEngineStressScheduleCancelRace(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200
	total := workers * perWorker

	var mu sync.Mutex
	cancelled := make(map[string]bool)

	now := time.Now().UTC()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ticket := timer.Ticket{Kind: timer.TicketRun, Seq: uint64(w*perWorker + i)}
				ev := Event{
					ID:        fmt.Sprintf("w%d-%s", w, ticket),
					Ticket:    ticket,
					TriggerAt: now.Add(time.Duration(i%20) * time.Millisecond),
				}
				if err := engine.Schedule(ev); err != nil {
					t.Errorf("schedule failed: %v", err)
					return
				}
				if i%2 == 1 && engine.Cancel(ev.ID) {
					mu.Lock()
					cancelled[ev.ID] = true
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	want := total - len(cancelled)
	mu.Unlock()

	seen := make(map[string]bool, want)
	deadline := time.After(5 * time.Second)
	for len(seen) < want {
		select {
		case <-deadline:
			t.Fatalf("timeout: delivered=%d want=%d cancelled=%d pending=%d dropped=%d",
				len(seen), want, len(cancelled), engine.Pending(), engine.Dropped())
		case ev := <-engine.C():
			if cancelled[ev.ID] {
				t.Fatalf("cancelled event %s was delivered", ev.ID)
			}
			if seen[ev.ID] {
				t.Fatalf("event %s delivered twice", ev.ID)
			}
			seen[ev.ID] = true
		}
	}

	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra event %s", ev.ID)
	case <-time.After(50 * time.Millisecond):
	}
	if engine.Pending() != 0 {
		t.Fatalf("queue not drained: pending=%d", engine.Pending())
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with active consumer, got=%d", engine.Dropped())
	}
}
