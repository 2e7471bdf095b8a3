package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/td0m/pomotask/pkg/notify"
)

// Messages emitted through the notification sink.
const (
	MsgAdded   = "Task added successfully"
	MsgUpdated = "Task updated!"
	MsgEmpty   = "Task cannot be empty!"
	MsgDeleted = "Task Deleted!"
)

// ErrCorrupt marks saved data that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt data")

// Persistor loads and saves the whole task collection.
// Load returns (nil, nil) when nothing has been saved yet and an error
// wrapping ErrCorrupt when the saved data is unreadable.
type Persistor interface {
	Load() ([]Task, error)
	Save([]Task) error
}

// Store is the ordered task list. At most one task is in edit mode at a
// time; the text a task had when its edit began is kept as a snapshot keyed
// by task ID until the edit closes.
//
// A Store is not safe for concurrent use.
type Store struct {
	tasks     []Task
	snapshots map[ID]string

	persist Persistor
	// detached is set while the saved data could not be read; saving then
	// would overwrite it
	detached bool
	sink    notify.Sink
	log     *zap.Logger
	now     func() time.Time
}

type Option func(*Store)

func WithSink(sink notify.Sink) Option {
	return func(s *Store) {
		if sink != nil {
			s.sink = sink
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces time.Now for creation and edit stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty store. p may be nil, in which case nothing is
// loaded or saved.
func NewStore(p Persistor, opts ...Option) *Store {
	s := &Store{
		tasks:     []Task{},
		snapshots: map[ID]string{},
		persist:   p,
		sink:      notify.Discard,
		log:       zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("tasks")
	return s
}

// Load replaces the collection with the persisted one. Missing or corrupt
// data yields an empty collection. Any other read failure also yields an
// empty collection, but the store stops saving until a later Load succeeds.
func (s *Store) Load() []Task {
	s.tasks = []Task{}
	s.snapshots = map[ID]string{}
	s.detached = false
	if s.persist == nil {
		return s.Tasks()
	}
	ts, err := s.persist.Load()
	switch {
	case errors.Is(err, ErrCorrupt):
		s.log.Warn("discarding saved tasks", zap.Error(err))
		return s.Tasks()
	case err != nil:
		s.detached = true
		s.log.Error("could not read saved tasks, changes will not be saved", zap.Error(err))
		return s.Tasks()
	}
	editing := false
	for _, t := range ts {
		if t.ID == "" {
			t.ID = NewID()
		}
		if t.InEdit {
			if editing {
				t.InEdit = false
			} else {
				editing = true
				s.snapshots[t.ID] = t.Text
			}
		}
		s.tasks = append(s.tasks, t)
	}
	s.log.Debug("loaded tasks", zap.Int("count", len(s.tasks)))
	return s.Tasks()
}

// Add appends a task unless text is blank. It reports whether a task was added.
func (s *Store) Add(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	s.tasks = append(s.tasks, newTask(text, s.now()))
	s.sink.Notify(MsgAdded, notify.Info)
	s.save()
	return true
}

// BeginOrCommitEdit opens edit mode for the task at i, or commits it if it
// is already open. Opening an edit closes any other open edit first.
func (s *Store) BeginOrCommitEdit(i int) {
	s.check(i)
	if s.tasks[i].InEdit {
		s.commit(i)
		s.save()
		return
	}
	for j := range s.tasks {
		if j != i && s.tasks[j].InEdit {
			s.abandon(j)
		}
	}
	t := &s.tasks[i]
	s.snapshots[t.ID] = t.Text
	t.InEdit = true
	s.save()
}

// UpdateText sets the live text of the task at i. It neither validates nor
// stamps the task.
func (s *Store) UpdateText(i int, text string) {
	s.check(i)
	s.tasks[i].Text = text
	s.save()
}

// Delete removes the task at i. Later tasks shift down by one.
func (s *Store) Delete(i int) {
	s.check(i)
	delete(s.snapshots, s.tasks[i].ID)
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.sink.Notify(MsgDeleted, notify.Info)
	s.save()
}

// commit closes the edit at i. Blank text is reverted to the snapshot; a
// changed value is stamped.
func (s *Store) commit(i int) {
	t := &s.tasks[i]
	original := s.takeSnapshot(t)
	t.InEdit = false
	if strings.TrimSpace(t.Text) == "" {
		s.sink.Notify(MsgEmpty, notify.Warning)
		t.Text = original
		return
	}
	if t.Text != original {
		now := s.now()
		if now.Before(t.CreatedAt) {
			now = t.CreatedAt
		}
		t.EditedAt = &now
		s.sink.Notify(MsgUpdated, notify.Info)
	}
}

// abandon force-closes the edit at i because another task is being opened.
// The text always goes back to the snapshot and nothing is stamped.
func (s *Store) abandon(i int) {
	t := &s.tasks[i]
	original := s.takeSnapshot(t)
	if strings.TrimSpace(t.Text) == "" {
		s.sink.Notify(MsgEmpty, notify.Warning)
	}
	t.Text = original
	t.InEdit = false
}

func (s *Store) takeSnapshot(t *Task) string {
	original, ok := s.snapshots[t.ID]
	if !ok {
		original = t.Text
	}
	delete(s.snapshots, t.ID)
	return original
}

func (s *Store) save() {
	if s.persist == nil || s.detached {
		return
	}
	if err := s.persist.Save(s.Tasks()); err != nil {
		s.log.Warn("failed to save tasks", zap.Error(err))
	}
}

func (s *Store) check(i int) {
	if i < 0 || i >= len(s.tasks) {
		panic(fmt.Sprintf("task: position %d out of range [0,%d)", i, len(s.tasks)))
	}
}

// Tasks returns a copy of the collection in order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Detached reports whether the last Load failed to read the saved data, in
// which case mutations are not saved.
func (s *Store) Detached() bool {
	return s.detached
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(i int) Task {
	s.check(i)
	return s.tasks[i]
}

// Editing returns the position of the task in edit mode, or -1.
func (s *Store) Editing() int {
	for i, t := range s.tasks {
		if t.InEdit {
			return i
		}
	}
	return -1
}

// Snapshot returns the text the task at i had when its current edit began.
func (s *Store) Snapshot(i int) (string, bool) {
	s.check(i)
	text, ok := s.snapshots[s.tasks[i].ID]
	return text, ok
}
