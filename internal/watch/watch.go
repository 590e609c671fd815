// Package watch runs background event sources that feed a single-threaded
// loop. Sources never touch loop state themselves: they queue functions that
// the loop runs in order on its own goroutine.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/grindlemire/go-panel/internal/debug"
)

// Watcher is an event source started by a Loop.
type Watcher interface {
	// Start begins the watcher goroutine. Handlers are sent on eventQueue
	// and the goroutine exits once stopCh is closed.
	Start(eventQueue chan<- func(), stopCh <-chan struct{})
}

// ChannelWatcher watches a channel and calls handler for each value.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// Watch creates a watcher that calls handler on the loop for each value
// received on ch.
func Watch[T any](ch <-chan T, handler func(T)) *ChannelWatcher[T] {
	return &ChannelWatcher[T]{ch: ch, handler: handler}
}

// Start implements Watcher.
func (w *ChannelWatcher[T]) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case v, ok := <-w.ch:
				if !ok {
					return
				}
				select {
				case eventQueue <- func() { w.handler(v) }:
				case <-stopCh:
					return
				}
			}
		}
	}()
}

// timerWatcher fires at a regular interval with the time since its last tick.
type timerWatcher struct {
	interval time.Duration
	handler  func(dt time.Duration)
}

// OnTimer creates a watcher that calls handler on the loop every interval.
// handler receives the time elapsed since the previous call, which is longer
// than interval when the loop fell behind.
func OnTimer(interval time.Duration, handler func(dt time.Duration)) Watcher {
	return &timerWatcher{interval: interval, handler: handler}
}

// Start implements Watcher.
func (w *timerWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		debug.Log("timerWatcher: started at %v", w.interval)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-stopCh:
				return
			case now := <-ticker.C:
				dt := now.Sub(last)
				last = now
				select {
				case eventQueue <- func() { w.handler(dt) }:
				case <-stopCh:
					return
				}
			}
		}
	}()
}

// Loop runs queued functions on one goroutine.
type Loop struct {
	eventQueue chan func()
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewLoop creates a loop whose queue holds size pending functions.
func NewLoop(size int) *Loop {
	return &Loop{
		eventQueue: make(chan func(), size),
		stopCh:     make(chan struct{}),
	}
}

// Start starts ws. They stop with the loop.
func (l *Loop) Start(ws ...Watcher) {
	for _, w := range ws {
		w.Start(l.eventQueue, l.stopCh)
	}
}

// Queue enqueues fn to run on the loop. Safe to call from any goroutine.
// It drops fn once the loop stopped.
func (l *Loop) Queue(fn func()) {
	select {
	case l.eventQueue <- fn:
	case <-l.stopCh:
	}
}

// Run runs queued functions until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.eventQueue:
			fn()
		case <-l.stopCh:
			return nil
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		}
	}
}

// Stop ends Run and stops every watcher. It is idempotent.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}
