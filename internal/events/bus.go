// Package events merges the tick source, terminal input and async
// side-effect completions into one ordered stream for the reducer.
package events

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Event is one item on the merged stream.
type Event interface{ isEvent() }

// Tick carries the number of tick intervals elapsed since the last
// delivered Tick. Count is 1 unless delivery lagged and ticks were
// coalesced.
type Tick struct {
	Count int64
}

// Key is a raw terminal key press forwarded from the display layer.
type Key struct {
	Msg tea.KeyMsg
}

// Resize is a terminal size change forwarded from the display layer.
type Resize struct {
	Width  int
	Height int
}

// NotifyDone is the outcome of a previously dispatched notification or
// sound request. Err is nil on success.
type NotifyDone struct {
	Kind string
	Err  error
}

func (Tick) isEvent()       {}
func (Key) isEvent()        {}
func (Resize) isEvent()     {}
func (NotifyDone) isEvent() {}

// Bus is the single merged event stream. Producers publish from their
// own goroutines; the reducer is the only consumer. Published events
// queue in order and are never dropped; only ticks coalesce.
type Bus struct {
	ch       chan Event
	interval time.Duration
	wg       sync.WaitGroup
}

// NewBus builds a bus with the given queue capacity.
func NewBus(capacity int) *Bus {
	return &Bus{
		ch:       make(chan Event, capacity),
		interval: 100 * time.Millisecond,
	}
}

// Events returns the consumer side of the stream.
func (b *Bus) Events() <-chan Event { return b.ch }

// Publish queues an event, blocking until there is room or ctx ends.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	select {
	case b.ch <- ev:
	case <-ctx.Done():
	}
}

// Go runs fn as a tracked producer goroutine.
func (b *Bus) Go(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

// StartTicker launches the periodic tick producer. If the consumer
// lags, elapsed ticks accumulate into the next Tick's Count instead of
// piling up behind other events.
func (b *Bus) StartTicker(ctx context.Context) {
	b.Go(func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		var pending int64
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pending++
			}
			select {
			case b.ch <- Tick{Count: pending}:
				pending = 0
			default:
			}
		}
	})
}

// Wait blocks until all tracked producers have exited. Cancel the
// context passed to them first.
func (b *Bus) Wait() {
	b.wg.Wait()
}
