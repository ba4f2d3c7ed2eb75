package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/stats"
)

type StatsDay struct {
	Date      string
	FocusTime string
	Sessions  int
	Tasks     int
}

type StatsReport struct {
	TodayFocus     string
	TodaySessions  int
	TodayTasks     int
	WeekFocus      string
	WeekSessions   int
	WeekTasks      int
	TotalFocus     string
	TotalSessions  int
	CompletedTasks int
	CurrentStreak  int
	LongestStreak  int
	Days           []StatsDay
}

// NewStatsReport formats the aggregates for display.
func NewStatsReport(all model.Statistics, today, week model.DailyStats, days []stats.Day) StatsReport {
	r := StatsReport{
		TodayFocus:     stats.FormatMinutes(today.FocusTime),
		TodaySessions:  today.Sessions,
		TodayTasks:     today.TasksCompleted,
		WeekFocus:      stats.FormatMinutes(week.FocusTime),
		WeekSessions:   week.Sessions,
		WeekTasks:      week.TasksCompleted,
		TotalFocus:     stats.FormatMinutes(all.TotalFocusTime),
		TotalSessions:  all.TotalSessions,
		CompletedTasks: all.CompletedTasks,
		CurrentStreak:  all.CurrentStreak,
		LongestStreak:  all.LongestStreak,
	}
	for _, d := range days {
		r.Days = append(r.Days, StatsDay{
			Date:      d.Date,
			FocusTime: stats.FormatMinutes(d.Stats.FocusTime),
			Sessions:  d.Stats.Sessions,
			Tasks:     d.Stats.TasksCompleted,
		})
	}
	return r
}

// StatsMarkdown renders report as a markdown document, for RenderMarkdown.
func StatsMarkdown(r StatsReport) string {
	var b strings.Builder
	b.WriteString("# Statistics\n\n")
	b.WriteString("| | Focus | Sessions | Tasks |\n|---|---|---|---|\n")
	b.WriteString(fmt.Sprintf("| Today | %s | %d | %d |\n", r.TodayFocus, r.TodaySessions, r.TodayTasks))
	b.WriteString(fmt.Sprintf("| This week | %s | %d | %d |\n", r.WeekFocus, r.WeekSessions, r.WeekTasks))
	b.WriteString(fmt.Sprintf("| All time | %s | %d | %d |\n\n", r.TotalFocus, r.TotalSessions, r.CompletedTasks))
	b.WriteString(fmt.Sprintf("**Streak:** %s (longest %s)\n", plural(r.CurrentStreak, "day"), plural(r.LongestStreak, "day")))
	if len(r.Days) > 0 {
		b.WriteString(fmt.Sprintf("\n## Last %s\n\n| Date | Focus | Sessions | Tasks |\n|---|---|---|---|\n", plural(len(r.Days), "day")))
		for _, d := range r.Days {
			b.WriteString(fmt.Sprintf("| %s | %s | %d | %d |\n", d.Date, d.FocusTime, d.Sessions, d.Tasks))
		}
	}
	return b.String()
}

// StatsSummary is the compact plain-text form shown in the stats panel.
func StatsSummary(r StatsReport) string {
	return strings.Join([]string{
		fmt.Sprintf("today:     %s, %d sessions, %d tasks", r.TodayFocus, r.TodaySessions, r.TodayTasks),
		fmt.Sprintf("this week: %s, %d sessions, %d tasks", r.WeekFocus, r.WeekSessions, r.WeekTasks),
		fmt.Sprintf("all time:  %s, %d sessions, %d tasks", r.TotalFocus, r.TotalSessions, r.CompletedTasks),
		fmt.Sprintf("streak:    %s (longest %s)", plural(r.CurrentStreak, "day"), plural(r.LongestStreak, "day")),
	}, "\n")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
