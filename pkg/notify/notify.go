// Package notify carries short user-facing messages from the task store and
// the timer engine to whatever presents them.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	Info    Level = "info"
	Warning Level = "warning"
)

// Sink accepts a message and displays it transiently. Implementations must
// not block the caller.
type Sink interface {
	Notify(message string, level Level)
}

// Func adapts a plain function to a Sink.
type Func func(message string, level Level)

func (f Func) Notify(message string, level Level) {
	f(message, level)
}

// Discard drops every message.
var Discard Sink = Func(func(string, Level) {})

type logSink struct {
	log *zap.Logger
}

// Log writes every message to the given logger.
func Log(log *zap.Logger) Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return logSink{log: log.Named("notify")}
}

func (s logSink) Notify(message string, level Level) {
	switch level {
	case Warning:
		s.log.Warn(message)
	default:
		s.log.Info(message)
	}
}

type multi []Sink

// Multi fans a message out to every sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) Notify(message string, level Level) {
	for _, s := range m {
		s.Notify(message, level)
	}
}

// Message is a single notification as seen by a Queue consumer.
type Message struct {
	Text  string
	Level Level
}

// Queue is a bounded sink. When the buffer is full new messages are dropped.
type Queue struct {
	mu     sync.Mutex
	ch     chan Message
	closed bool
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{ch: make(chan Message, size)}
}

func (q *Queue) Notify(message string, level Level) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	select {
	case q.ch <- Message{Text: message, Level: level}:
	default:
	}
}

// C returns the channel messages are delivered on.
func (q *Queue) C() <-chan Message {
	return q.ch
}

// Close closes the delivery channel. Later messages are dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}
