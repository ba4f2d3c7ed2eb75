package clock

import (
	"sync"
	"time"

	"github.com/sandeepkv93/pomod/internal/model"
)

// Clock abstracts time so streaks and date keys stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System reports wall-clock time in UTC, so calendar-day keys match the
// ISO date of the stored records.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

func Today(c Clock) string {
	return model.DateKey(c.Now())
}

func Yesterday(c Clock) string {
	return model.DateKey(c.Now().AddDate(0, 0, -1))
}

// Manual is a settable clock for tests and replays.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *Manual) AddDays(n int) {
	m.mu.Lock()
	m.now = m.now.AddDate(0, 0, n)
	m.mu.Unlock()
}
