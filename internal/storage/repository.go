package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Slot names one independently addressable record.
type Slot string

const (
	SlotTasks         Slot = "pomodoro_tasks"
	SlotTimerSettings Slot = "pomodoro_timer_settings"
	SlotAudioSettings Slot = "pomodoro_audio_settings"
	SlotStatistics    Slot = "pomodoro_statistics"
	SlotQuoteIndex    Slot = "pomodoro_quote_index"
)

// Store is a get/set key-value store keyed by slot. Values are opaque bytes.
type Store interface {
	Get(ctx context.Context, slot Slot) ([]byte, error)
	Set(ctx context.Context, slot Slot, value []byte) error
	Delete(ctx context.Context, slot Slot) error
}
