// Package notify propagates "store changed" signals between mounted views.
//
// Two channels feed the same bus: writes in this process publish directly,
// and a file watcher turns writes by other processes into the same events.
// Consumers subscribe once and react identically regardless of the origin.
package notify

import (
	"log/slog"
	"sync"
)

// Topics published on the bus.
const (
	// TopicSubmissionsUpdated fires after every successful submission write
	// in this process.
	TopicSubmissionsUpdated = "paymentSubmissionsUpdated"

	// TopicStoreChanged fires when the watcher observes the store file
	// change, i.e. a write by another process.
	TopicStoreChanged = "storeChanged"
)

// Event is one change notification.
type Event struct {
	// Topic is one of the Topic* constants.
	Topic string

	// Key is the store key that changed, when the producer knows it.
	// Watcher events leave it empty.
	Key string
}

// subscriberBuffer bounds how far a slow consumer can lag before events are
// dropped. Consumers re-read the whole store on any event, so drops only
// coalesce refreshes.
const subscriberBuffer = 8

// Bus is an in-process publish/subscribe fan-out.
// The zero value is not usable; call NewBus.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]*Subscription
}

// Subscription is one consumer's registration. Receive events from C and
// call Unsubscribe when the consumer unmounts, or handlers leak.
type Subscription struct {
	// C delivers matching events. It is closed by Unsubscribe.
	C <-chan Event

	id     int
	topics map[string]bool
	ch     chan Event
	bus    *Bus
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]*Subscription)}
}

// Subscribe registers a consumer for the given topics. With no topics the
// subscription receives every event.
func (b *Bus) Subscribe(topics ...string) *Subscription {
	ch := make(chan Event, subscriberBuffer)
	sub := &Subscription{C: ch, ch: ch, bus: b}
	if len(topics) > 0 {
		sub.topics = make(map[string]bool, len(topics))
		for _, t := range topics {
			sub.topics[t] = true
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	sub.id = b.next
	b.next++
	b.subs[sub.id] = sub
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if _, ok := s.bus.subs[s.id]; ok {
		delete(s.bus.subs, s.id)
		close(s.ch)
	}
	s.bus = nil
}

// Publish delivers event to every matching subscriber without blocking.
// A full subscriber buffer drops the event for that subscriber.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if sub.topics != nil && !sub.topics[event.Topic] {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			slog.Debug("notify: dropped event for slow subscriber",
				"topic", event.Topic, "key", event.Key)
		}
	}
}
