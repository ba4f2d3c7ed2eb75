package stats

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/pomod/internal/model"
)

const (
	WeekDays = 7
	MaxDays  = 366
)

// RecordFocusSession returns an updated copy; s is not mutated.
func RecordFocusSession(s model.Statistics, minutes int, now time.Time) model.Statistics {
	out := s.Clone()
	today := model.DateKey(now)

	out.TotalFocusTime += minutes
	out.TotalSessions++

	day := out.DailyStats[today]
	day.FocusTime += minutes
	day.Sessions++
	out.DailyStats[today] = day

	out.CurrentStreak = nextStreak(s, now)
	out.LastSessionDate = &today
	if out.CurrentStreak > out.LongestStreak {
		out.LongestStreak = out.CurrentStreak
	}
	return out
}

func RecordTaskCompleted(s model.Statistics, now time.Time) model.Statistics {
	out := s.Clone()
	today := model.DateKey(now)

	out.CompletedTasks++
	day := out.DailyStats[today]
	day.TasksCompleted++
	out.DailyStats[today] = day
	return out
}

func nextStreak(s model.Statistics, now time.Time) int {
	today := model.DateKey(now)
	if s.LastSessionDate != nil && *s.LastSessionDate == today {
		return s.CurrentStreak
	}
	yesterday := model.DateKey(now.AddDate(0, 0, -1))
	if s.LastSessionDate != nil && *s.LastSessionDate == yesterday {
		return s.CurrentStreak + 1
	}
	return 1
}

func Today(s model.Statistics, now time.Time) model.DailyStats {
	return s.DailyStats[model.DateKey(now)]
}

func Weekly(s model.Statistics, now time.Time) model.DailyStats {
	var total model.DailyStats
	for _, day := range LastDays(s, now, WeekDays) {
		total = total.Add(day.Stats)
	}
	return total
}

type Day struct {
	Date  string
	Stats model.DailyStats
}

// LastDays is oldest first.
func LastDays(s model.Statistics, now time.Time, n int) []Day {
	if n <= 0 {
		return nil
	}
	if n > MaxDays {
		n = MaxDays
	}
	out := make([]Day, 0, n)
	for i := n - 1; i >= 0; i-- {
		key := model.DateKey(now.AddDate(0, 0, -i))
		out = append(out, Day{Date: key, Stats: s.DailyStats[key]})
	}
	return out
}

func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
