package model

import "time"

// DateKeyLayout is the ISO calendar-day layout used to key DailyStats.
const DateKeyLayout = "2006-01-02"

type DailyStats struct {
	FocusTime      int `json:"focusTime"`
	Sessions       int `json:"sessions"`
	TasksCompleted int `json:"tasksCompleted"`
}

func (d DailyStats) Add(o DailyStats) DailyStats {
	return DailyStats{
		FocusTime:      d.FocusTime + o.FocusTime,
		Sessions:       d.Sessions + o.Sessions,
		TasksCompleted: d.TasksCompleted + o.TasksCompleted,
	}
}

type Statistics struct {
	TotalFocusTime  int                   `json:"totalFocusTime"`
	TotalSessions   int                   `json:"totalSessions"`
	CompletedTasks  int                   `json:"completedTasks"`
	CurrentStreak   int                   `json:"currentStreak"`
	LongestStreak   int                   `json:"longestStreak"`
	LastSessionDate *string               `json:"lastSessionDate"`
	DailyStats      map[string]DailyStats `json:"dailyStats"`
}

func DefaultStatistics() Statistics {
	return Statistics{DailyStats: make(map[string]DailyStats)}
}

// Clone returns a copy that shares no mutable state with s.
func (s Statistics) Clone() Statistics {
	out := s
	out.DailyStats = make(map[string]DailyStats, len(s.DailyStats))
	for k, v := range s.DailyStats {
		out.DailyStats[k] = v
	}
	if s.LastSessionDate != nil {
		last := *s.LastSessionDate
		out.LastSessionDate = &last
	}
	return out
}

// DateKey is the UTC calendar day of t.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}
