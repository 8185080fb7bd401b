package bus

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Bus fans simulation events out to subscribers. Publishing never blocks:
// a subscriber whose buffer is full loses the event, so the simulation clock
// is isolated from slow consumers.
type Bus struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

// Subscription is one subscriber's event feed. Read from C until it is
// closed; call Close to unsubscribe.
type Subscription struct {
	C    chan Event
	bus  *Bus
	once sync.Once
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new subscriber with the given channel buffer.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 64
	}
	sub := &Subscription{C: make(chan Event, buffer)}
	sub.bus = b

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.C)
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Close unsubscribes and closes the feed channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		if _, ok := s.bus.subs[s]; ok {
			delete(s.bus.subs, s)
			close(s.C)
		}
	})
}

// Publish delivers the event to every subscriber that has buffer room.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for sub := range b.subs {
		select {
		case sub.C <- ev:
		default:
			log.WithFields(log.Fields{
				"event":      ev.Type,
				"vehicle_id": ev.VehicleID,
			}).Warn("Subscriber buffer full, dropping event")
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close shuts the bus down, closing every subscriber channel. Publish becomes
// a no-op afterwards.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.C)
	}
}
