// Package persist stores the task collection in a key/value backend under a
// single fixed key.
package persist

import (
	"errors"
	"fmt"
	"time"

	"github.com/td0m/pomotask/pkg/task"
)

// TasksKey addresses the whole task collection.
const TasksKey = "tasks"

var (
	ErrNotFound       = errors.New("key not found")
	ErrCorrupt        = task.ErrCorrupt
	ErrUnknownBackend = errors.New("unknown backend")
)

// Backend is a durable key/value store.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Tasks loads and saves the task collection through a Backend.
type Tasks struct {
	backend Backend
	key     string
	now     func() time.Time
}

var _ task.Persistor = &Tasks{}

func NewTasks(b Backend) *Tasks {
	return &Tasks{
		backend: b,
		key:     TasksKey,
		now:     time.Now,
	}
}

// Load returns the saved tasks, or nil without error when nothing was saved.
func (p *Tasks) Load() ([]task.Task, error) {
	bs, err := p.backend.Get(p.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ts, err := task.Decode(bs, p.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, p.key, err)
	}
	return ts, nil
}

// Save replaces the saved collection.
func (p *Tasks) Save(ts []task.Task) error {
	bs, err := task.Encode(ts)
	if err != nil {
		return err
	}
	return p.backend.Put(p.key, bs)
}

// Options selects and configures a backend.
type Options struct {
	Backend  string // json, bolt, redis or memory
	Path     string
	RedisURL string
}

// Open creates the backend described by opts.
func Open(opts Options) (Backend, error) {
	switch opts.Backend {
	case "", "json":
		return InJSON(opts.Path), nil
	case "bolt":
		b, err := OpenBolt(opts.Path, "")
		if err != nil {
			return nil, err
		}
		return b, nil
	case "redis":
		r, err := DialRedis(opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
