package task

import (
	"time"

	"github.com/google/uuid"
)

type ID string

// NewID returns a random identifier that stays with a task for its whole life.
func NewID() ID {
	return ID(uuid.NewString())
}

type Task struct {
	ID        ID         `json:"id"`
	Text      string     `json:"text"`
	InEdit    bool       `json:"inEdit"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt"`
}

func newTask(text string, now time.Time) Task {
	return Task{
		ID:        NewID(),
		Text:      text,
		CreatedAt: now,
	}
}

// Edited reports whether a changed value was ever committed.
func (t Task) Edited() bool {
	return t.EditedAt != nil
}

// Stamp returns the label and time shown next to a task: the last edit if
// there was one, the creation time otherwise.
func (t Task) Stamp() (string, time.Time) {
	if t.EditedAt != nil {
		return "Edited at:", *t.EditedAt
	}
	return "Created at:", t.CreatedAt
}
