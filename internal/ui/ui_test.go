package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/matryer/is"

	"github.com/td0m/pomotask/pkg/notify"
)

func TestToasts(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ts Toasts
	ts = ts.Push(notify.Message{Text: "Task added successfully", Level: notify.Info}, now)
	ts = ts.Push(notify.Message{Text: "Task cannot be empty!", Level: notify.Warning}, now)
	is.Equal(len(ts), 2)
	is.True(strings.Contains(ts.View(), "Task cannot be empty!"))

	ts = ts.Prune(now.Add(2 * time.Second))
	is.Equal(len(ts), 1)
	is.Equal(ts[0].Level, notify.Warning)

	ts = ts.Prune(now.Add(5 * time.Second))
	is.Equal(len(ts), 0)
}

func TestModeBar(t *testing.T) {
	is := is.New(t)
	bar := NewModeBar([]string{"Focus", "Short Break", "Long Break"})
	bar.Width = 80

	v := bar.View(5, PhaseRunning, "24:59 - Focus")
	is.True(strings.Contains(v, "Short Break"))
	is.True(strings.Contains(v, "24:59 - Focus"))
	for _, line := range strings.Split(v, "\n") {
		if strings.Contains(line, "Focus") {
			is.Equal(lipgloss.Width(line), 80)
		}
	}

	v = bar.View(-1, PhaseOver, "Timer is over")
	is.True(strings.Contains(v, "Timer is over"))

	is.True(strings.Contains(NewModeBar(nil).View(0, PhaseIdle, "idle"), "idle"))
}

func TestProgress(t *testing.T) {
	is := is.New(t)
	is.Equal(lipgloss.Width(Progress(0.5, 20)), 20)
	is.Equal(strings.Count(Progress(0.5, 20), "━"), 10)
	is.Equal(strings.Count(Progress(1.7, 20), "━"), 20)
	is.Equal(strings.Count(Progress(-1, 20), "━"), 0)
	is.Equal(lipgloss.Width(Progress(0.3, -4)), 0)
}
