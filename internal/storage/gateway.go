package storage

import (
	"context"
	"errors"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/model"
)

// Gateway mirrors the application records into a Store. Loads fall back to
// defaults on missing or unparsable data; saves are best-effort. Neither
// ever returns an error to the caller: failures are logged and remembered
// in LastError.
type Gateway struct {
	store Store
	log   zerolog.Logger

	mu      sync.Mutex
	lastErr error
}

func NewGateway(store Store, log zerolog.Logger) *Gateway {
	return &Gateway{store: store, log: log.With().Str("component", "gateway").Logger()}
}

// LastError returns the most recent load or save failure, if any.
func (g *Gateway) LastError() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

func (g *Gateway) LoadTasks(ctx context.Context) []model.Task {
	var tasks []model.Task
	if !g.load(ctx, SlotTasks, &tasks) {
		return []model.Task{}
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			g.log.Warn().Err(err).Str("task_id", t.ID).Msg("dropping invalid stored task")
			continue
		}
		out = append(out, t)
	}
	return out
}

func (g *Gateway) SaveTasks(ctx context.Context, tasks []model.Task) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	g.save(ctx, SlotTasks, tasks)
}

func (g *Gateway) LoadTimerSettings(ctx context.Context) model.TimerSettings {
	settings := model.DefaultTimerSettings()
	if !g.load(ctx, SlotTimerSettings, &settings) {
		return model.DefaultTimerSettings()
	}
	return settings.Clamp()
}

func (g *Gateway) SaveTimerSettings(ctx context.Context, settings model.TimerSettings) {
	g.save(ctx, SlotTimerSettings, settings)
}

func (g *Gateway) LoadAudioSettings(ctx context.Context) model.AudioSettings {
	settings := model.DefaultAudioSettings()
	if !g.load(ctx, SlotAudioSettings, &settings) {
		return model.DefaultAudioSettings()
	}
	return settings.Clamp()
}

func (g *Gateway) SaveAudioSettings(ctx context.Context, settings model.AudioSettings) {
	g.save(ctx, SlotAudioSettings, settings)
}

func (g *Gateway) LoadStatistics(ctx context.Context) model.Statistics {
	stats := model.DefaultStatistics()
	if !g.load(ctx, SlotStatistics, &stats) {
		return model.DefaultStatistics()
	}
	if stats.DailyStats == nil {
		stats.DailyStats = make(map[string]model.DailyStats)
	}
	if stats.LongestStreak < stats.CurrentStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	return stats
}

func (g *Gateway) SaveStatistics(ctx context.Context, stats model.Statistics) {
	g.save(ctx, SlotStatistics, stats)
}

func (g *Gateway) LoadQuoteIndex(ctx context.Context) int {
	var idx int
	if !g.load(ctx, SlotQuoteIndex, &idx) || idx < 0 {
		return 0
	}
	return idx
}

func (g *Gateway) SaveQuoteIndex(ctx context.Context, idx int) {
	g.save(ctx, SlotQuoteIndex, idx)
}

// load decodes slot into dst and reports whether dst holds stored data.
func (g *Gateway) load(ctx context.Context, slot Slot, dst any) bool {
	if g.store == nil {
		return false
	}
	raw, err := g.store.Get(ctx, slot)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.fail(err, slot, "load failed, using defaults")
		}
		return false
	}
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		g.fail(err, slot, "stored record is corrupt, using defaults")
		return false
	}
	return true
}

func (g *Gateway) save(ctx context.Context, slot Slot, value any) {
	if g.store == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		g.fail(err, slot, "encode failed")
		return
	}
	if err := g.store.Set(ctx, slot, raw); err != nil {
		g.fail(err, slot, "save failed")
		return
	}
	g.log.Debug().Str("slot", string(slot)).Int("bytes", len(raw)).Msg("record saved")
}

func (g *Gateway) fail(err error, slot Slot, msg string) {
	g.mu.Lock()
	g.lastErr = err
	g.mu.Unlock()
	g.log.Warn().Err(err).Str("slot", string(slot)).Msg(msg)
}
