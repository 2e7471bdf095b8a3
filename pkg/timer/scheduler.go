package timer

import (
	"sync"
	"time"
)

// Scheduler runs fn every d until the returned cancel func is called.
// Calling cancel more than once is a no-op.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

type tickerScheduler struct{}

// Ticker returns a Scheduler backed by time.Ticker.
func Ticker() Scheduler {
	return tickerScheduler{}
}

func (tickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
