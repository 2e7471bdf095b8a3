package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Phase is the clock state the mode bar colours the active mode with.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseOver
)

var (
	modeBar     = lipgloss.NewStyle().Padding(1, 1)
	modeLabel   = lipgloss.NewStyle().Foreground(Secondary)
	modeSep     = lipgloss.NewStyle().Foreground(Faded).Render(" | ")
	modeStatus  = lipgloss.NewStyle().Foreground(Secondary)
	phaseStyles = map[Phase]lipgloss.Style{
		PhaseIdle:    lipgloss.NewStyle().Foreground(Primary).Bold(true),
		PhaseRunning: lipgloss.NewStyle().Foreground(Green).Bold(true),
		PhaseOver:    lipgloss.NewStyle().Foreground(Red).Bold(true).Underline(true),
	}

	progressDone = lipgloss.NewStyle().Foreground(Green)
	progressLeft = lipgloss.NewStyle().Foreground(Faded)
)

// ModeBar lists the timer modes on one line, highlighting the active one in
// the colour of the clock phase, with a status right-aligned.
type ModeBar struct {
	labels []string
	Width  int
}

func NewModeBar(labels []string) ModeBar {
	return ModeBar{labels: labels}
}

// View renders the bar. An out of range active index is clamped.
func (b ModeBar) View(active int, phase Phase, status string) string {
	if len(b.labels) == 0 {
		return modeBar.Render(modeStatus.Render(status)) + "\n"
	}
	active = min(max(active, 0), len(b.labels)-1)
	highlight, ok := phaseStyles[phase]
	if !ok {
		highlight = phaseStyles[PhaseIdle]
	}

	var left strings.Builder
	for i, l := range b.labels {
		if i > 0 {
			left.WriteString(modeSep)
		}
		if i == active {
			left.WriteString(highlight.Render(l))
			continue
		}
		left.WriteString(modeLabel.Render(l))
	}
	right := modeStatus.Render(status)
	gap := max(b.Width-2-lipgloss.Width(left.String())-lipgloss.Width(right), 1)
	return modeBar.Render(left.String()+strings.Repeat(" ", gap)+right) + "\n"
}

// Progress draws a bar width cells wide with frac of it filled.
func Progress(frac float64, width int) string {
	width = max(width, 0)
	done := int(math.Round(frac * float64(width)))
	done = min(max(done, 0), width)
	return progressDone.Render(strings.Repeat("━", done)) + progressLeft.Render(strings.Repeat("─", width-done))
}
