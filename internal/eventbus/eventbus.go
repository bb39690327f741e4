package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"epubshelf/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCatalogLoaded     = domain.EventCatalogLoaded
	EventCatalogLoadFailed = domain.EventCatalogLoadFailed
	EventFilterChanged     = domain.EventFilterChanged
	EventScanStarted       = domain.EventScanStarted
	EventBookIndexed       = domain.EventBookIndexed
	EventScanCompleted     = domain.EventScanCompleted
	EventDownloadRequested = domain.EventDownloadRequested
	EventDownloadCompleted = domain.EventDownloadCompleted
	EventError             = domain.EventError
)

// Re-export domain event types
type CatalogLoadedEvent = domain.CatalogLoadedEvent
type CatalogLoadFailedEvent = domain.CatalogLoadFailedEvent
type FilterChangedEvent = domain.FilterChangedEvent
type ScanStartedEvent = domain.ScanStartedEvent
type BookIndexedEvent = domain.BookIndexedEvent
type ScanCompletedEvent = domain.ScanCompletedEvent
type DownloadRequestedEvent = domain.DownloadRequestedEvent
type DownloadCompletedEvent = domain.DownloadCompletedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	handlerWg sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventBookIndexed, EventFilterChanged:
	default:
		slog.Debug("EventBus: publishing event", "type", event.Type())
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		slog.Warn("Event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops dispatching and waits for running handlers
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
		b.handlerWg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				// Handlers run in their own goroutine so a slow one can't block the bus
				b.handlerWg.Add(1)
				go func(h EventHandler, eventType EventType) {
					defer b.handlerWg.Done()
					defer func() {
						if r := recover(); r != nil {
							slog.Error("Event handler panic", "type", eventType, "panic", r, "stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
