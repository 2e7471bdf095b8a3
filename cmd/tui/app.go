package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/td0m/pomotask/internal/ui"
	"github.com/td0m/pomotask/pkg/notify"
	"github.com/td0m/pomotask/pkg/task"
	"github.com/td0m/pomotask/pkg/timer"
)

const (
	headerHeight = 6
	footerHeight = 4
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
)

type (
	timerMsg   timer.Event
	noteMsg    notify.Message
	refreshMsg struct{}
)

type app struct {
	mode mode

	viewport viewport.Model
	input    textinput.Model
	modes    ui.ModeBar
	toasts   ui.Toasts

	cursor int

	store  *task.Store
	engine *timer.Engine
	events <-chan timer.Event
	notes  <-chan notify.Message
	now    func() time.Time
}

func newApp(store *task.Store, engine *timer.Engine, notes *notify.Queue) *app {
	i := textinput.NewModel()
	i.Prompt = ""
	i.Placeholder = "Read documentation..."
	i.Width = 40

	labels := make([]string, len(timer.Modes))
	for j, m := range timer.Modes {
		labels[j] = m.Label()
	}

	a := &app{
		viewport: viewport.Model{},
		input:    i,
		modes:    ui.NewModeBar(labels),
		store:    store,
		engine:   engine,
		events:   engine.Subscribe(16),
		notes:    notes.C(),
		now:      time.Now,
	}
	// a task left open by a previous session stays open
	if e := store.Editing(); e >= 0 {
		a.cursor = e
		a.openInput(store.Get(e).Text)
		a.mode = modeEdit
	}
	a.render()
	return a
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m *app) Init() tea.Cmd {
	return tea.Batch(waitTimer(m.events), waitNote(m.notes), refresh())
}

func waitTimer(ch <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return timerMsg(ev)
	}
}

func waitNote(ch <-chan notify.Message) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noteMsg(n)
	}
}

// refresh wakes the program up so expired toasts disappear while the timer is idle
func refresh() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(500 * time.Millisecond)
		return refreshMsg{}
	}
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.modes.Width = msg.Width
		m.setCursor(m.cursor)
	case timerMsg:
		cmd = waitTimer(m.events)
	case noteMsg:
		m.toasts = m.toasts.Push(notify.Message(msg), m.now())
		cmd = waitNote(m.notes)
	case refreshMsg:
		cmd = refresh()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		cmd = m.keyUpdate(msg)
	}
	m.toasts = m.toasts.Prune(m.now())
	m.render()
	return m, cmd
}

// handle keys differently based on the current mode
func (m *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeAdd:
		switch msg.Type {
		case tea.KeyEnter:
			if m.store.Add(m.input.Value()) {
				m.setCursor(m.store.Len() - 1)
			}
			m.closeInput()
		case tea.KeyEsc:
			m.closeInput()
		default:
			m.input, cmd = m.input.Update(msg)
		}
	case modeEdit:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.store.BeginOrCommitEdit(m.cursor)
			m.closeInput()
		case tea.KeyTab:
			m.editAt(m.cursor + 1)
		case tea.KeyShiftTab:
			m.editAt(m.cursor - 1)
		default:
			before := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			if v := m.input.Value(); v != before {
				m.store.UpdateText(m.cursor, v)
			}
		}
	case modeNormal:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "j", "down":
			m.setCursor(m.cursor + 1)
		case "k", "up":
			m.setCursor(m.cursor - 1)
		case "g":
			m.setCursor(0)
		case "G":
			m.setCursor(m.store.Len() - 1)
		case "o", "a":
			m.mode = modeAdd
			m.openInput("")
		case "i", "enter":
			m.editAt(m.cursor)
		case "x", tea.KeyDelete.String():
			if m.store.Len() > 0 {
				m.store.Delete(m.cursor)
				m.setCursor(m.cursor)
			}
		case " ":
			if !m.engine.Pause() {
				m.engine.Start()
			}
		case "r":
			m.engine.Reset()
		case "1", "2", "3":
			i := int(msg.String()[0] - '1')
			check(m.engine.ChangeMode(timer.Modes[i]))
		}
	}
	return cmd
}

// editAt opens the task at i for editing. Any other open edit is closed by
// the store.
func (m *app) editAt(i int) {
	if i < 0 || i >= m.store.Len() {
		return
	}
	m.setCursor(i)
	m.store.BeginOrCommitEdit(i)
	if !m.store.Get(i).InEdit {
		m.closeInput()
		return
	}
	m.mode = modeEdit
	m.openInput(m.store.Get(i).Text)
}

func (m *app) openInput(value string) {
	m.input.SetValue(value)
	m.input.SetCursor(len(value))
	m.input.Focus()
}

func (m *app) closeInput() {
	m.mode = modeNormal
	m.input.SetValue("")
	m.input.Blur()
}

func (m *app) setCursor(value int) {
	size := m.store.Len()
	m.cursor = clamp(value, 0, max(size-1, 0))
	if size == 0 {
		return
	}
	// every task takes one line
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	}
}

func (m *app) render() {
	m.viewport.SetContent(m.viewTasks())
}

func (m app) viewTasks() string {
	if m.store.Len() == 0 {
		return ui.Hint.Render("  no tasks yet, press o to add one") + "\n"
	}
	s := ""
	for i, t := range m.store.Tasks() {
		icon := "∙"
		title := ui.TaskTitle
		if t.InEdit {
			icon = "✎"
			title = ui.TaskEditing
		}
		if i == m.cursor && m.mode == modeNormal {
			title = ui.TaskSelected
		}
		s += ui.TaskIcon.Render(icon)
		if t.InEdit && m.mode == modeEdit && i == m.cursor {
			s += m.input.View()
		} else {
			s += title.Render(singleLine(t.Text))
		}
		label, at := t.Stamp()
		stamp := ui.TaskStamp
		if t.Edited() {
			stamp = ui.TaskEdited
		}
		s += ui.TaskDivider + stamp.Render(label+" "+at.Local().Format("15:04"))
		s += "\n"
	}
	return s
}

func (m app) viewTimer() string {
	st := m.engine.State()
	style := ui.Clock
	switch {
	case st.Remaining == 0:
		style = ui.ClockOver
	case st.Running:
		style = ui.ClockRunning
	}
	hints := []string{}
	if m.engine.CanStart() {
		hints = append(hints, "space start")
	}
	if st.Running {
		hints = append(hints, "space pause")
	}
	if m.engine.CanReset() {
		hints = append(hints, "r reset")
	}
	hints = append(hints, "1-3 mode")
	bar := ui.Progress(st.Progress(), clamp(m.modes.Width-4, 10, 60))
	return style.Render(st.Clock()) + ui.Hint.Render(strings.Join(hints, " ∙ ")) + "\n  " + bar + "\n"
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m app) View() string {
	st := m.engine.State()
	active := 0
	for i, md := range timer.Modes {
		if md == st.Mode {
			active = i
		}
	}
	phase := ui.PhaseIdle
	switch {
	case st.Remaining == 0:
		phase = ui.PhaseOver
	case st.Running:
		phase = ui.PhaseRunning
	}

	statusline := ""
	switch m.mode {
	case modeAdd:
		statusline = "new task: " + m.input.View()
	case modeEdit:
		statusline = ui.Hint.Render("enter save ∙ tab next ∙ shift+tab previous")
	default:
		statusline = ui.Hint.Render("o add ∙ enter edit ∙ x delete ∙ q quit")
	}
	if m.store.Detached() {
		statusline = ui.Unsaved.Render("saved tasks unreadable, changes are not saved") + " " + statusline
	}
	return m.modes.View(active, phase, st.Title()) + m.viewTimer() + "\n" + m.viewport.View() + "\n" + m.toasts.View() + statusline
}

// singleLine keeps multi-line tasks on one row of the list
func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ⏎ ")
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
