package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"

	"github.com/td0m/pomotask/pkg/notify"
	"github.com/td0m/pomotask/pkg/persist"
	"github.com/td0m/pomotask/pkg/task"
	"github.com/td0m/pomotask/pkg/timer"
)

type stopped struct{}

func (stopped) Every(time.Duration, func()) func() { return func() {} }

func newTestApp(texts ...string) (*app, *notify.Queue) {
	q := notify.NewQueue(32)
	store := task.NewStore(persist.NewTasks(persist.NewMemory()), task.WithSink(q))
	for _, text := range texts {
		store.Add(text)
	}
	engine := timer.New(timer.WithSink(q), timer.WithScheduler(stopped{}))
	a := newApp(store, engine, q)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return a, q
}

func TestApp_EditFlow(t *testing.T) {
	is := is.New(t)
	a, _ := newTestApp("buy milk", "walk dog")

	a.editAt(0)
	is.Equal(a.mode, modeEdit)
	is.True(a.store.Get(0).InEdit)

	a.store.UpdateText(0, "buy oat milk")
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	is.Equal(a.mode, modeNormal)
	is.True(!a.store.Get(0).InEdit)
	is.True(a.store.Get(0).Edited())
}

func TestApp_TabMovesEdit(t *testing.T) {
	is := is.New(t)
	a, _ := newTestApp("a", "b")

	a.editAt(0)
	a.store.UpdateText(0, "changed")
	a.Update(tea.KeyMsg{Type: tea.KeyTab})

	is.Equal(a.cursor, 1)
	is.Equal(a.store.Editing(), 1)
	is.Equal(a.store.Get(0).Text, "a")
	is.Equal(a.mode, modeEdit)
}

func TestApp_Toasts(t *testing.T) {
	is := is.New(t)
	a, q := newTestApp()
	a.store.Add("x")
	n := <-q.C()
	a.Update(noteMsg(n))
	is.Equal(len(a.toasts), 1)
	is.True(strings.Contains(a.View(), "Task added successfully"))
}

func TestApp_View(t *testing.T) {
	is := is.New(t)
	a, _ := newTestApp("buy milk")
	v := a.View()
	is.True(strings.Contains(v, "25:00 - Focus"))
	is.True(strings.Contains(v, "buy milk"))
	is.True(strings.Contains(v, "Created at:"))
	is.True(strings.Contains(v, "─"))
	is.True(!strings.Contains(v, "changes are not saved"))
}

func TestApp_ReopensSavedEdit(t *testing.T) {
	is := is.New(t)
	db := persist.NewMemory()
	p := persist.NewTasks(db)
	is.NoErr(p.Save([]task.Task{
		{ID: "1", Text: "a", CreatedAt: time.Now()},
		{ID: "2", Text: "b", InEdit: true, CreatedAt: time.Now()},
	}))
	store := task.NewStore(p)
	store.Load()
	a := newApp(store, timer.New(timer.WithScheduler(stopped{})), notify.NewQueue(1))
	is.Equal(a.mode, modeEdit)
	is.Equal(a.cursor, 1)
}

type unreachable struct{ saves int }

func (u *unreachable) Load() ([]task.Task, error) {
	return nil, errors.New("dial tcp 127.0.0.1:6379: connection refused")
}

func (u *unreachable) Save([]task.Task) error {
	u.saves++
	return nil
}

func TestApp_UnreadableStore(t *testing.T) {
	is := is.New(t)
	u := &unreachable{}
	store := task.NewStore(u)
	store.Load()
	a := newApp(store, timer.New(timer.WithScheduler(stopped{})), notify.NewQueue(4))
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	is.Equal(store.Len(), 1)
	is.Equal(u.saves, 0)
	is.True(strings.Contains(a.View(), "changes are not saved"))
}
