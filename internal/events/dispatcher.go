package events

import (
	"context"
	"sync"
	"sync/atomic"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// AsyncDispatcher fans events out to subscribers from a single background
// goroutine, so publication never blocks the request path. When the buffer
// is full the event is dropped and counted instead of stalling the caller.
type AsyncDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler

	queue     chan Event
	done      chan struct{}
	dropped   atomic.Int64
	closeOnce sync.Once
}

const defaultQueueSize = 256

// NewAsyncDispatcher creates a dispatcher and starts its delivery loop.
func NewAsyncDispatcher() *AsyncDispatcher {
	d := &AsyncDispatcher{
		listeners: make(map[EventType][]EventHandler),
		queue:     make(chan Event, defaultQueueSize),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish enqueues the event for delivery. The originating request context
// is not retained; handlers run after the request may have completed.
func (d *AsyncDispatcher) Publish(_ context.Context, event Event) error {
	select {
	case d.queue <- event:
	default:
		d.dropped.Add(1)
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *AsyncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

// Close stops accepting events and drains the queue.
func (d *AsyncDispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}

// Dropped reports how many events were discarded due to a full queue.
func (d *AsyncDispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *AsyncDispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.mu.RLock()
		handlers := append([]EventHandler{}, d.listeners[event.Type]...)
		d.mu.RUnlock()

		for _, handler := range handlers {
			// handler errors never fail the originating request
			_ = handler(context.Background(), event)
		}
	}
}
