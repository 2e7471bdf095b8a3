package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary   = lipgloss.AdaptiveColor{Light: "#000", Dark: "#fff"}
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")

	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

// task list
var (
	TaskIcon     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TaskTitle    = lipgloss.NewStyle().Bold(true)
	TaskEditing  = lipgloss.NewStyle().Foreground(Yellow)
	TaskSelected = TaskTitle.Copy().Background(Faded)

	TaskDivider = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")
	TaskStamp   = lipgloss.NewStyle().Foreground(Secondary)
	TaskEdited  = TaskStamp.Copy().Italic(true)
)

// timer
var (
	Clock        = lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1)
	ClockRunning = Clock.Copy().Foreground(Green)
	ClockOver    = Clock.Copy().Foreground(Red)
	Hint         = lipgloss.NewStyle().Foreground(Faded)
	Unsaved      = lipgloss.NewStyle().Foreground(Orange).Bold(true)
)
