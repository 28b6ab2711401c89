// Package pubsub provides a minimal broadcast channel with replay-one
// semantics: subscribers are notified synchronously, in subscription order,
// and a new subscriber immediately receives the most recently published
// value (never any earlier history).
package pubsub

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Broadcaster fans a value out to its current subscribers.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
	last   T
	seeded bool
}

// New creates an empty Broadcaster with no replay value.
func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{}
}

// Subscribe registers fn and returns a cancel function. If a value has
// already been published, fn is invoked with it before Subscribe returns.
func (b *Broadcaster[T]) Subscribe(fn func(T)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})
	replay := b.seeded
	last := b.last
	b.mu.Unlock()

	if replay {
		fn(last)
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish records v as the replay value and delivers it to every current
// subscriber in subscription order. Delivery happens outside the internal
// lock so subscribers may re-enter the owning store.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	b.last = v
	b.seeded = true
	current := make([]subscriber[T], len(b.subs))
	copy(current, b.subs)
	b.mu.Unlock()

	for _, s := range current {
		s.fn(v)
	}
}
