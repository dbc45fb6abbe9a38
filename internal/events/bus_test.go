package events

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishPreservesOrder(t *testing.T) {
	bus := NewBus(16)
	ctx := context.Background()

	bus.Publish(ctx, Key{Msg: tea.KeyMsg{Type: tea.KeySpace}})
	bus.Publish(ctx, Resize{Width: 80, Height: 24})
	bus.Publish(ctx, NotifyDone{Kind: "desktop", Err: errors.New("no daemon")})

	ev := <-bus.Events()
	key, ok := ev.(Key)
	require.True(t, ok)
	assert.Equal(t, tea.KeySpace, key.Msg.Type)

	ev = <-bus.Events()
	resize, ok := ev.(Resize)
	require.True(t, ok)
	assert.Equal(t, 80, resize.Width)

	ev = <-bus.Events()
	done, ok := ev.(NotifyDone)
	require.True(t, ok)
	assert.Error(t, done.Err)
}

func TestTickerEmitsTicks(t *testing.T) {
	bus := NewBus(16)
	bus.interval = 5 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus.StartTicker(ctx)

	deadline := time.After(time.Second)
	var total int64
	for total < 3 {
		select {
		case ev := <-bus.Events():
			if tick, ok := ev.(Tick); ok {
				require.GreaterOrEqual(t, tick.Count, int64(1))
				total += tick.Count
			}
		case <-deadline:
			t.Fatal("no ticks within a second")
		}
	}
}

func TestTicksCoalesceWhenConsumerLags(t *testing.T) {
	bus := NewBus(1)
	bus.interval = 2 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus.StartTicker(ctx)

	// Let the ticker run while nothing consumes; the single-slot queue
	// forces coalescing.
	time.Sleep(100 * time.Millisecond)

	var total int64
	var deliveries int
	timeout := time.After(time.Second)
	for total < 10 {
		select {
		case ev := <-bus.Events():
			if tick, ok := ev.(Tick); ok {
				total += tick.Count
				deliveries++
			}
		case <-timeout:
			t.Fatalf("only %d ticks after a second", total)
		}
	}
	assert.Less(t, deliveries, int(total), "lagged ticks arrive batched, not one-per-delivery")
}

func TestPublishUnblocksOnCancel(t *testing.T) {
	bus := NewBus(0)
	ctx, cancel := context.WithCancel(context.Background())

	released := make(chan struct{})
	go func() {
		bus.Publish(ctx, Tick{Count: 1}) // no consumer, blocks
		close(released)
	}()

	cancel()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("publish did not unblock on cancellation")
	}
}

func TestWaitReturnsAfterCancel(t *testing.T) {
	bus := NewBus(4)
	bus.interval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())

	bus.StartTicker(ctx)
	bus.Go(func() { <-ctx.Done() })

	cancel()
	done := make(chan struct{})
	go func() {
		bus.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producers did not shut down")
	}
}
