package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header        string
	Quote         string
	Accent        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	quoteStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	toastStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Mode accents, keyed by model.Mode values.
var accents = map[string]lipgloss.Color{
	"focus":      lipgloss.Color("9"),
	"shortBreak": lipgloss.Color("10"),
	"longBreak":  lipgloss.Color("12"),
}

func accentFor(mode string) lipgloss.Color {
	if c, ok := accents[mode]; ok {
		return c
	}
	return lipgloss.Color("12")
}

func RenderApp(data AppData) string {
	accent := accentFor(data.Accent)
	left := panelStyle.BorderForeground(accent).Width(44).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := panelStyle.Width(56).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	lines := []string{headerStyle.Foreground(accent).Render(data.Header)}
	if data.Quote != "" {
		lines = append(lines, quoteStyle.Render("“"+data.Quote+"”"))
	}
	lines = append(lines, row)
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, toastStyle.BorderForeground(accent).Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
