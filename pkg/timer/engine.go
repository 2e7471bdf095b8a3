// Package timer implements the pomodoro countdown: three fixed modes, a
// once-per-second driver and start/pause/reset/mode transitions.
package timer

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/td0m/pomotask/pkg/notify"
)

// Messages emitted through the notification sink.
const (
	MsgTimeUp = "Time's up!"
	MsgReset  = "Timer reset!"
)

// Engine is the countdown state machine. Its methods are safe to call from
// any goroutine; driver ticks and user commands are serialised on one mutex.
type Engine struct {
	mu        sync.Mutex
	mode      Mode
	remaining int
	running   bool

	scheduler Scheduler
	interval  time.Duration
	cancel    func()
	// gen identifies the armed driver; ticks carrying another value are stale
	gen uint64

	sink   notify.Sink
	log    *zap.Logger
	events []chan Event
	closed bool
}

type Option func(*Engine)

func WithSink(sink notify.Sink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithScheduler replaces the ticker that drives the countdown.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// New returns an idle engine in focus mode.
func New(opts ...Option) *Engine {
	e := &Engine{
		mode:      Focus,
		remaining: Focus.Seconds(),
		scheduler: Ticker(),
		interval:  time.Second,
		sink:      notify.Discard,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("timer")
	return e
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// CanStart reports whether Start would arm the driver.
func (e *Engine) CanStart() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && !e.running && e.remaining > 0
}

// CanReset reports whether Reset would do anything.
func (e *Engine) CanReset() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && e.remaining != e.mode.Seconds()
}

// Subscribe registers an observer. Events are dropped when its buffer is full.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch
	}
	e.events = append(e.events, ch)
	return ch
}

// Start arms the countdown. It returns false if the engine is already
// running or there is no time left.
func (e *Engine) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.running || e.remaining <= 0 {
		return false
	}
	e.running = true
	e.gen++
	gen := e.gen
	e.cancel = e.scheduler.Every(e.interval, func() {
		e.tick(gen)
	})
	e.log.Debug("started", zap.String("mode", string(e.mode)), zap.Int("remaining", e.remaining))
	e.emitLocked(EventStateChange)
	return true
}

// Pause disarms the countdown and keeps the remaining time. It returns false
// if the engine was not running.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return false
	}
	e.stopLocked()
	e.log.Debug("paused", zap.Int("remaining", e.remaining))
	e.emitLocked(EventStateChange)
	return true
}

// Reset stops the countdown and restores the nominal duration of the
// current mode. It is unavailable, and returns false, when the remaining
// time already equals that duration.
func (e *Engine) Reset() bool {
	e.mu.Lock()
	if e.closed || e.remaining == e.mode.Seconds() {
		e.mu.Unlock()
		return false
	}
	e.stopLocked()
	e.remaining = e.mode.Seconds()
	e.log.Debug("reset", zap.String("mode", string(e.mode)))
	e.emitLocked(EventReset)
	e.mu.Unlock()

	e.sink.Notify(MsgReset, notify.Info)
	return true
}

// ChangeMode stops any countdown and switches to m at its full duration.
func (e *Engine) ChangeMode(m Mode) error {
	if !m.Valid() {
		_, err := ParseMode(string(m))
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.stopLocked()
	e.mode = m
	e.remaining = m.Seconds()
	e.log.Debug("mode changed", zap.String("mode", string(m)))
	e.emitLocked(EventStateChange)
	return nil
}

// Close disarms the driver and closes every subscriber channel.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stopLocked()
	e.closed = true
	for _, ch := range e.events {
		close(ch)
	}
	e.events = nil
}

func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || !e.running {
		e.mu.Unlock()
		return
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		e.emitLocked(EventTick)
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	e.log.Debug("completed", zap.String("mode", string(e.mode)))
	e.emitLocked(EventComplete)
	e.mu.Unlock()

	e.sink.Notify(MsgTimeUp, notify.Info)
}

// stopLocked disarms the driver and invalidates ticks already in flight.
func (e *Engine) stopLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.gen++
	e.running = false
}

func (e *Engine) stateLocked() State {
	return State{Mode: e.mode, Remaining: e.remaining, Running: e.running}
}

func (e *Engine) emitLocked(t EventType) {
	ev := Event{Type: t, State: e.stateLocked(), At: time.Now()}
	for _, ch := range e.events {
		select {
		case ch <- ev:
		default:
		}
	}
}
