package timer

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the nominal length of a countdown.
type Mode string

const (
	Focus      Mode = "focus"
	ShortBreak Mode = "shortBreak"
	LongBreak  Mode = "longBreak"
)

// Modes lists every mode in display order.
var Modes = []Mode{Focus, ShortBreak, LongBreak}

var ErrUnknownMode = errors.New("unknown timer mode")

var durations = map[Mode]int{
	Focus:      25 * 60,
	ShortBreak: 5 * 60,
	LongBreak:  15 * 60,
}

// Seconds returns the nominal duration of the mode, or 0 for an unknown mode.
func (m Mode) Seconds() int {
	return durations[m]
}

func (m Mode) Valid() bool {
	_, ok := durations[m]
	return ok
}

// Label is the mode name with its first letter upper-cased.
func (m Mode) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}
