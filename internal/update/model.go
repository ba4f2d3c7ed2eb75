package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/app"
	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/notify"
	"github.com/sandeepkv93/pomod/internal/timer"
)

type Panel string

const (
	PanelNone     Panel = ""
	PanelTasks    Panel = "Tasks"
	PanelSettings Panel = "Settings"
	PanelStats    Panel = "Stats"
)

const (
	SettingsBlockedWarning = "Cannot change settings while the timer is running. Pause or reset first."
	defaultStatusClear     = 3 * time.Second
	weekDays               = 7
)

type StatusBar struct {
	Text    string
	IsError bool
	seq     int
}

type KeyMap struct {
	Toggle   string
	Reset    string
	Skip     string
	Settings string
	Tasks    string
	Stats    string
	Close    string
	Palette  string
	Help     string
	Quit     string
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:   " ",
		Reset:    "r",
		Skip:     "n",
		Settings: "s",
		Tasks:    "t",
		Stats:    "S",
		Close:    "esc",
		Palette:  "/",
		Help:     "?",
		Quit:     "q",
	}
}

type TasksState struct {
	Cursor  int
	Editing bool
}

// SettingsState is the panel's working copy; nothing reaches the timer
// until it is saved.
type SettingsState struct {
	Timer   model.TimerSettings
	Audio   model.AudioSettings
	Cursor  int
	Warning string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Options struct {
	Toasts      *notify.Toasts
	StatusClear time.Duration
	Logger      zerolog.Logger
}

type Model struct {
	App          *app.App
	Panel        Panel
	HelpVisible  bool
	Tasks        TasksState
	Settings     SettingsState
	Palette      CommandPaletteState
	Status       StatusBar
	Notification string
	Keys         KeyMap
	Quitting     bool

	toasts      *notify.Toasts
	statusClear time.Duration
	statusSeq   int
	log         zerolog.Logger
	quote       string

	taskInput     textinput.Model
	commandInput  textinput.Model
	timerProgress progress.Model
	countdownSpin spinner.Model
	statsTable    table.Model
	helpModel     help.Model
}

// TimerTickMsg delivers a timer ticket once its interval has elapsed.
type TimerTickMsg struct {
	Ticket timer.Ticket
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ClearStatusMsg clears the status bar if it still shows the message with
// the same sequence number.
type ClearStatusMsg struct {
	Seq int
}

func NewModel(a *app.App, opts Options) Model {
	m := Model{
		App:         a,
		Keys:        DefaultKeyMap(),
		toasts:      opts.Toasts,
		statusClear: opts.StatusClear,
		log:         opts.Logger.With().Str("component", "tui").Logger(),
		quote:       a.Quote(),
	}
	if m.statusClear <= 0 {
		m.statusClear = defaultStatusClear
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "add> "
	m.taskInput.Placeholder = "What are you working on?"
	m.taskInput.CharLimit = model.MaxTaskTextLen
	m.taskInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.timerProgress.Width = 30

	m.countdownSpin = spinner.New()
	m.countdownSpin.Spinner = spinner.Dot

	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Focus", Width: 9},
		{Title: "Sessions", Width: 9},
		{Title: "Tasks", Width: 6},
	}
	m.statsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(weekDays+1))

	m.helpModel = help.New()
}
