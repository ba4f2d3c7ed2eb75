// Package tasks keeps the ordered list of focus tasks the user works through.
package tasks

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/clock"
	"github.com/sandeepkv93/pomod/internal/model"
)

var (
	ErrTaskNotFound = errors.New("tasks: task not found")
	ErrBadPosition  = errors.New("tasks: position out of range")
)

type Options struct {
	Clock      clock.Clock
	NewID      func() string
	Persist    func([]model.Task)
	OnComplete func(model.Task)
	Logger     zerolog.Logger
}

type Ledger struct {
	tasks      []model.Task
	clock      clock.Clock
	newID      func() string
	persist    func([]model.Task)
	onComplete func(model.Task)
	log        zerolog.Logger
}

func New(initial []model.Task, opts Options) *Ledger {
	l := &Ledger{
		tasks:      append([]model.Task(nil), initial...),
		clock:      opts.Clock,
		newID:      opts.NewID,
		persist:    opts.Persist,
		onComplete: opts.OnComplete,
		log:        opts.Logger.With().Str("component", "tasks").Logger(),
	}
	if l.clock == nil {
		l.clock = clock.System{}
	}
	if l.newID == nil {
		l.newID = uuid.NewString
	}
	return l
}

func (l *Ledger) Add(text string) (model.Task, error) {
	normalized, err := model.NormalizeTaskText(text)
	if err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:        l.newID(),
		Text:      normalized,
		CreatedAt: l.clock.Now(),
	}
	l.tasks = append(l.tasks, task)
	l.save()
	l.log.Debug().Str("task_id", task.ID).Msg("task added")
	return task, nil
}

// Toggle calls OnComplete on the incomplete to complete edge only.
func (l *Ledger) Toggle(id string) (model.Task, error) {
	i, err := l.indexOf(id)
	if err != nil {
		return model.Task{}, err
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	task := l.tasks[i]
	if task.Completed && l.onComplete != nil {
		l.onComplete(task)
	}
	l.save()
	return task, nil
}

func (l *Ledger) Delete(id string) error {
	i, err := l.indexOf(id)
	if err != nil {
		return err
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	l.save()
	l.log.Debug().Str("task_id", id).Msg("task deleted")
	return nil
}

func (l *Ledger) IncrementPomodoro(id string) (model.Task, error) {
	i, err := l.indexOf(id)
	if err != nil {
		return model.Task{}, err
	}
	l.tasks[i].CompletedPomodoros++
	l.save()
	return l.tasks[i], nil
}

func (l *Ledger) List() []model.Task {
	return append([]model.Task(nil), l.tasks...)
}

func (l *Ledger) Get(id string) (model.Task, error) {
	i, err := l.indexOf(id)
	if err != nil {
		return model.Task{}, err
	}
	return l.tasks[i], nil
}

// At takes a 1-based position.
func (l *Ledger) At(pos int) (model.Task, error) {
	if pos < 1 || pos > len(l.tasks) {
		return model.Task{}, fmt.Errorf("%w: %d", ErrBadPosition, pos)
	}
	return l.tasks[pos-1], nil
}

func (l *Ledger) Len() int { return len(l.tasks) }

func (l *Ledger) Counts() (done, total int) {
	for _, t := range l.tasks {
		if t.Completed {
			done++
		}
	}
	return done, len(l.tasks)
}

func (l *Ledger) indexOf(id string) (int, error) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

func (l *Ledger) save() {
	if l.persist != nil {
		l.persist(l.List())
	}
}
