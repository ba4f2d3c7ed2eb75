package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/pomod/internal/commands"
)

// Handlers binds every palette command to this App. The TUI palette and the
// CLI share it.
func (a *App) Handlers() commands.Handlers {
	ledger := a.ledger
	machine := a.machine
	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task, err := ledger.Add(args.Text)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %d. %s", ledger.Len(), task.Text)}, nil
		},
		Done: func(args commands.TaskArgs) (commands.Result, error) {
			task, err := ledger.At(args.Position)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := ledger.Toggle(task.ID)
			if err != nil {
				return commands.Result{}, err
			}
			if updated.Completed {
				return commands.Result{Message: "completed: " + updated.Text}, nil
			}
			return commands.Result{Message: "reopened: " + updated.Text}, nil
		},
		Remove: func(args commands.TaskArgs) (commands.Result, error) {
			task, err := ledger.At(args.Position)
			if err != nil {
				return commands.Result{}, err
			}
			if err := ledger.Delete(task.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "deleted: " + task.Text}, nil
		},
		Pomodoro: func(args commands.TaskArgs) (commands.Result, error) {
			task, err := ledger.At(args.Position)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := ledger.IncrementPomodoro(task.ID)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s: %d pomodoros", updated.Text, updated.CompletedPomodoros)}, nil
		},
		Set: func(args commands.SetArgs) (commands.Result, error) {
			ts, as, target, err := commands.ApplySetting(machine.Settings(), machine.Audio(), args.Field, args.Value)
			if err != nil {
				return commands.Result{}, err
			}
			if target == commands.TargetAudio {
				a.SaveAudio(as)
			} else if err := a.SaveSettings(ts); err != nil {
				return commands.Result{}, err
			}
			applied, _ := commands.SettingValue(machine.Settings(), machine.Audio(), args.Field)
			msg := fmt.Sprintf("%s set to %s", args.Field, applied)
			if n, err := strconv.Atoi(strings.TrimSpace(args.Value)); err == nil && strconv.Itoa(n) != applied {
				msg += fmt.Sprintf(" (clamped from %d)", n)
			}
			return commands.Result{Message: msg}, nil
		},
		Skip: func() (commands.Result, error) {
			machine.Skip()
			return commands.Result{Message: "skipped to " + machine.Snapshot().Mode.Label()}, nil
		},
		Reset: func() (commands.Result, error) {
			machine.Reset()
			return commands.Result{Message: "timer reset"}, nil
		},
	}
}

// Run parses line and executes it against this App.
func (a *App) Run(line string) (commands.Result, error) {
	cmd, err := commands.Parse(line)
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Execute(cmd, a.Handlers())
}
