package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxTaskTextLen = 100

var (
	ErrEmptyTaskText       = errors.New("model: task text is required")
	ErrTaskTextTooLong     = errors.New("model: task text exceeds 100 characters")
	ErrNegativePomodoros   = errors.New("model: completed pomodoros must not be negative")
	ErrTaskIDRequired      = errors.New("model: task id is required")
	ErrTaskCreatedRequired = errors.New("model: task created_at is required")
)

type Task struct {
	ID                 string    `json:"id"`
	Text               string    `json:"text"`
	Completed          bool      `json:"completed"`
	CreatedAt          time.Time `json:"createdAt"`
	CompletedPomodoros int       `json:"completedPomodoros"`
}

// NormalizeTaskText trims surrounding whitespace and caps the result at
// MaxTaskTextLen runes.
func NormalizeTaskText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyTaskText
	}
	if utf8.RuneCountInString(text) > MaxTaskTextLen {
		text = strings.TrimSpace(string([]rune(text)[:MaxTaskTextLen]))
	}
	return text, nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrTaskIDRequired
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyTaskText
	}
	if utf8.RuneCountInString(t.Text) > MaxTaskTextLen {
		return ErrTaskTextTooLong
	}
	if t.CompletedPomodoros < 0 {
		return ErrNegativePomodoros
	}
	if t.CreatedAt.IsZero() {
		return ErrTaskCreatedRequired
	}
	return nil
}
