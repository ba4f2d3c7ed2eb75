package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sandeepkv93/pomod/internal/model"
)

// SettingTarget says which record a field belongs to.
type SettingTarget int

const (
	TargetTimer SettingTarget = iota
	TargetAudio
)

type setter struct {
	target SettingTarget
	apply  func(*model.TimerSettings, *model.AudioSettings, string) error
	get    func(model.TimerSettings, model.AudioSettings) string
}

var setters = map[string]setter{
	"focus":          intTimer(func(s *model.TimerSettings) *int { return &s.FocusTime }),
	"short":          intTimer(func(s *model.TimerSettings) *int { return &s.ShortBreak }),
	"long":           intTimer(func(s *model.TimerSettings) *int { return &s.LongBreak }),
	"sessions":       intTimer(func(s *model.TimerSettings) *int { return &s.TotalSessions }),
	"long-every":     intTimer(func(s *model.TimerSettings) *int { return &s.SessionsUntilLongBreak }),
	"auto-breaks":    boolTimer(func(s *model.TimerSettings) *bool { return &s.AutoStartBreaks }),
	"auto-pomodoros": boolTimer(func(s *model.TimerSettings) *bool { return &s.AutoStartPomodoros }),
	"volume": {target: TargetAudio, get: func(_ model.TimerSettings, a model.AudioSettings) string {
		return strconv.Itoa(a.Volume)
	}, apply: func(_ *model.TimerSettings, a *model.AudioSettings, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("expected a number, got %q", raw)
		}
		a.Volume = v
		return nil
	}},
	"ticking": {target: TargetAudio, get: func(_ model.TimerSettings, a model.AudioSettings) string {
		return onOff(a.TickingSound)
	}, apply: func(_ *model.TimerSettings, a *model.AudioSettings, raw string) error {
		v, err := parseBool(raw)
		if err != nil {
			return err
		}
		a.TickingSound = v
		return nil
	}},
	"sound": {target: TargetAudio, get: func(_ model.TimerSettings, a model.AudioSettings) string {
		return string(a.NotificationSound)
	}, apply: func(_ *model.TimerSettings, a *model.AudioSettings, raw string) error {
		kind := model.SoundKind(strings.ToLower(raw))
		if !kind.IsNotification() {
			return fmt.Errorf("unknown sound %q", raw)
		}
		a.NotificationSound = kind
		return nil
	}},
}

// SettingFields lists the field names accepted by ApplySetting.
func SettingFields() []string {
	out := make([]string, 0, len(setters))
	for name := range setters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ApplySetting parses value into field and returns the updated, clamped
// records together with the record that changed.
func ApplySetting(t model.TimerSettings, a model.AudioSettings, field, value string) (model.TimerSettings, model.AudioSettings, SettingTarget, error) {
	s, ok := setters[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return t, a, 0, &CommandError{
			Code:    ErrCodeInvalidArgument,
			Message: fmt.Sprintf("unknown setting %q (one of %s)", field, strings.Join(SettingFields(), ", ")),
		}
	}
	nt, na := t, a
	if err := s.apply(&nt, &na, strings.TrimSpace(value)); err != nil {
		return t, a, s.target, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: %v", field, err)}
	}
	return nt.Clamp(), na.Clamp(), s.target, nil
}

func intTimer(field func(*model.TimerSettings) *int) setter {
	return setter{
		target: TargetTimer,
		apply: func(t *model.TimerSettings, _ *model.AudioSettings, raw string) error {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("expected a number, got %q", raw)
			}
			*field(t) = v
			return nil
		},
		get: func(t model.TimerSettings, _ model.AudioSettings) string { return strconv.Itoa(*field(&t)) },
	}
}

func boolTimer(field func(*model.TimerSettings) *bool) setter {
	return setter{
		target: TargetTimer,
		apply: func(t *model.TimerSettings, _ *model.AudioSettings, raw string) error {
			v, err := parseBool(raw)
			if err != nil {
				return err
			}
			*field(t) = v
			return nil
		},
		get: func(t model.TimerSettings, _ model.AudioSettings) string { return onOff(*field(&t)) },
	}
}

// SettingValue formats field as currently held in t and a.
func SettingValue(t model.TimerSettings, a model.AudioSettings, field string) (string, bool) {
	s, ok := setters[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return "", false
	}
	return s.get(t, a), true
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected on/off, got %q", raw)
	}
}
