package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/sandeepkv93/pomod/internal/views"
)

func (m Model) statsReport() views.StatsReport {
	return views.NewStatsReport(m.App.Statistics(), m.App.TodayStats(), m.App.WeeklyStats(), m.App.LastDays(weekDays))
}

// renderStatsPanel rebuilds the report on every call; nothing is cached
// between frames.
func (m Model) renderStatsPanel() string {
	report := m.statsReport()
	rows := make([]table.Row, 0, len(report.Days))
	for i := len(report.Days) - 1; i >= 0; i-- {
		d := report.Days[i]
		rows = append(rows, table.Row{d.Date, d.FocusTime, fmt.Sprintf("%d", d.Sessions), fmt.Sprintf("%d", d.Tasks)})
	}
	m.statsTable.SetRows(rows)
	return views.RenderStatsPanel(views.StatsPanelData{
		TableView: m.statsTable.View(),
		Summary:   views.StatsSummary(report),
	})
}
