package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/pomod/internal/commands"
	"github.com/sandeepkv93/pomod/internal/config"
	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/scheduler"
	"github.com/sandeepkv93/pomod/internal/stats"
	"github.com/sandeepkv93/pomod/internal/timer"
	"github.com/sandeepkv93/pomod/internal/update"
	"github.com/sandeepkv93/pomod/internal/views"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "pomod",
		Short:         "Pomodoro timer with tasks and statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultFilePath()+")")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "sqlite database path")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newTasksCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	return root
}

func runTUI(ctx context.Context, flags *rootFlags) error {
	rt, err := openRuntime(ctx, flags, runtimeOptions{fileLog: true, toasts: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	m := update.NewModel(rt.app, update.Options{
		Toasts:      rt.toasts,
		StatusClear: time.Duration(rt.cfg.StatusClearSeconds) * time.Second,
		Logger:      rt.log,
	})
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("pomod failed: %w", err)
	}
	return nil
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the current period headless, with the pre-start countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			rt, err := openRuntime(ctx, flags, runtimeOptions{notifier: writerNotifier(out)})
			if err != nil {
				return err
			}
			defer rt.Close()

			machine := rt.app.Timer()
			engine := scheduler.NewEngine(rt.cfg.SchedulerBuffer)
			engine.Start()
			defer engine.Stop()

			start := machine.Snapshot()
			_, _ = fmt.Fprintf(out, "%s, session %d of %d\n", start.Mode.Label(), machine.DisplaySession(), machine.Settings().TotalSessions)
			machine.Start()
			_, _ = fmt.Fprintf(out, "starting in %d\n", machine.Snapshot().CountdownValue)

			runner := scheduler.NewRunner(machine, engine, nil, rt.log)
			err = runner.Run(ctx,
				func(s timer.State) bool {
					return s.Mode != start.Mode || s.CurrentSession != start.CurrentSession
				},
				func(s timer.State) {
					switch {
					case s.Status == model.StatusCountdown:
						_, _ = fmt.Fprintf(out, "starting in %d\n", s.CountdownValue)
					case s.Status == model.StatusRunning && s.TimeLeft%60 == 0 && s.Mode == start.Mode:
						_, _ = fmt.Fprintf(out, "%s left\n", views.FormatClock(s.TimeLeft))
					}
				},
			)
			if errors.Is(err, context.Canceled) {
				_, _ = fmt.Fprintln(out, "stopped")
				return nil
			}
			if err != nil {
				return err
			}
			next := machine.Snapshot()
			_, _ = fmt.Fprintf(out, "next: %s (%s)\n", next.Mode.Label(), views.FormatClock(next.TimeLeft))
			return nil
		},
	}
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	var plain bool
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show focus statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 || days > stats.MaxDays {
				return fmt.Errorf("--days must be between 1 and %d", stats.MaxDays)
			}
			rt, err := openRuntime(cmd.Context(), flags, runtimeOptions{})
			if err != nil {
				return err
			}
			defer rt.Close()

			a := rt.app
			report := views.NewStatsReport(a.Statistics(), a.TodayStats(), a.WeeklyStats(), a.LastDays(days))
			if plain {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.StatsSummary(report))
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(views.StatsMarkdown(report)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print a plain-text summary")
	cmd.Flags().IntVar(&days, "days", 7, "number of days in the daily table")
	return cmd
}

func newTasksCmd(flags *rootFlags) *cobra.Command {
	tasksCmd := &cobra.Command{Use: "tasks", Short: "Manage the task list"}

	tasksCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context(), flags, runtimeOptions{})
			if err != nil {
				return err
			}
			defer rt.Close()

			list := rt.app.Tasks().List()
			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for i, t := range list {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] %s (%d pomodoros)\n", i+1, mark, t.Text, t.CompletedPomodoros)
			}
			return nil
		},
	})

	tasksCmd.AddCommand(
		paletteCmd(flags, "add <text>", "Add a task", cobra.MinimumNArgs(1), "add"),
		paletteCmd(flags, "done <n>", "Toggle task n completed", cobra.ExactArgs(1), "done"),
		paletteCmd(flags, "rm <n>", "Delete task n", cobra.ExactArgs(1), "rm"),
		paletteCmd(flags, "pomodoro <n>", "Add a completed pomodoro to task n", cobra.ExactArgs(1), "pomodoro"),
	)
	return tasksCmd
}

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	settingsCmd := &cobra.Command{Use: "settings", Short: "Show or change timer and audio settings"}

	settingsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context(), flags, runtimeOptions{})
			if err != nil {
				return err
			}
			defer rt.Close()

			out, err := yaml.Marshal(struct {
				Timer model.TimerSettings `yaml:"timer"`
				Audio model.AudioSettings `yaml:"audio"`
			}{rt.app.Timer().Settings(), rt.app.Timer().Audio()})
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	})

	set := paletteCmd(flags, "set <field> <value>", "Change one setting", cobra.ExactArgs(2), "set")
	set.Long = "Fields: " + strings.Join(commands.SettingFields(), ", ")
	settingsCmd.AddCommand(set)
	return settingsCmd
}

// paletteCmd runs "<verb> <args...>" through the same parser and handlers as
// the TUI command palette.
func paletteCmd(flags *rootFlags, use, short string, args cobra.PositionalArgs, verb string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			rt, err := openRuntime(cmd.Context(), flags, runtimeOptions{})
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.app.Run(verb + " " + strings.Join(argv, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}
