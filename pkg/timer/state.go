package timer

import (
	"fmt"
	"time"
)

// State is a snapshot of the engine.
type State struct {
	Mode      Mode
	Remaining int // seconds
	Running   bool
}

func (s State) Minutes() int {
	return s.Remaining / 60
}

func (s State) Seconds() int {
	return s.Remaining % 60
}

// Clock formats the remaining time as m:ss.
func (s State) Clock() string {
	return fmt.Sprintf("%d:%02d", s.Minutes(), s.Seconds())
}

// Title is the short status line shown in window titles.
func (s State) Title() string {
	if s.Remaining == 0 {
		return "Timer is over"
	}
	kind := "Break"
	if s.Mode == Focus {
		kind = "Focus"
	}
	return s.Clock() + " - " + kind
}

// Progress is the elapsed fraction of the current mode, between 0 and 1.
func (s State) Progress() float64 {
	total := s.Mode.Seconds()
	if total <= 0 {
		return 0
	}
	p := float64(total-s.Remaining) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

type EventType string

const (
	EventTick        EventType = "tick"
	EventStateChange EventType = "state_change"
	EventComplete    EventType = "complete"
	EventReset       EventType = "reset"
)

// Event is sent to subscribers after every change.
type Event struct {
	Type  EventType
	State State
	At    time.Time
}
