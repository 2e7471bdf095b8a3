package ui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/td0m/pomotask/pkg/notify"
)

var (
	toastInfo    = lipgloss.NewStyle().Foreground(Blue).Padding(0, 1)
	toastWarning = lipgloss.NewStyle().Foreground(Orange).Bold(true).Padding(0, 1)
)

// Toast is a notification shown until it expires.
type Toast struct {
	notify.Message
	Until time.Time
}

// NewToast shows info messages for two seconds and warnings for five.
func NewToast(m notify.Message, now time.Time) Toast {
	d := 2 * time.Second
	if m.Level == notify.Warning {
		d = 5 * time.Second
	}
	return Toast{Message: m, Until: now.Add(d)}
}

func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.Until)
}

func (t Toast) View() string {
	if t.Level == notify.Warning {
		return toastWarning.Render("! " + t.Text)
	}
	return toastInfo.Render("i " + t.Text)
}

// Toasts keeps the live toasts, oldest first.
type Toasts []Toast

func (ts Toasts) Push(m notify.Message, now time.Time) Toasts {
	return append(ts.Prune(now), NewToast(m, now))
}

// Prune drops expired toasts.
func (ts Toasts) Prune(now time.Time) Toasts {
	out := ts[:0:0]
	for _, t := range ts {
		if !t.Expired(now) {
			out = append(out, t)
		}
	}
	return out
}

func (ts Toasts) View() string {
	s := ""
	for _, t := range ts {
		s += t.View() + "\n"
	}
	return s
}
