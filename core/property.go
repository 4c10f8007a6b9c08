package core

import "sync"

// Property is a value plus an append-only subscriber list. Set computes
// the new value, stores it, then notifies each subscriber with the new
// value, per spec.md §4.A's Property/event section.
type Property[T any] struct {
	mu          sync.Mutex
	value       T
	subscribers []func(T)
}

func NewProperty[T any](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

func (p *Property[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Subscribe appends f to the subscriber list; subscriber notifications
// later run in the order they were added.
func (p *Property[T]) Subscribe(f func(T)) {
	p.mu.Lock()
	p.subscribers = append(p.subscribers, f)
	p.mu.Unlock()
}

// Set computes the new value via derive, stores it, then notifies every
// subscriber in registration order.
func (p *Property[T]) Set(derive func(T) T) {
	p.mu.Lock()
	p.value = derive(p.value)
	v := p.value
	subs := make([]func(T), len(p.subscribers))
	copy(subs, p.subscribers)
	p.mu.Unlock()

	for _, s := range subs {
		s(v)
	}
}

// DerivedProperty subscribes to a source Property[F] and re-derives a T
// via a closure on every update, then notifies its own subscribers.
type DerivedProperty[F, T any] struct {
	*Property[T]
}

func NewDerivedProperty[F, T any](source *Property[F], derive func(F) T) *DerivedProperty[F, T] {
	dp := &DerivedProperty[F, T]{Property: NewProperty(derive(source.Get()))}
	source.Subscribe(func(f F) {
		dp.Property.Set(func(T) T { return derive(f) })
	})
	return dp
}

// SinkProperty is a cache-only endpoint: it records the latest value it
// is notified with and exposes no subscribers of its own.
type SinkProperty[T any] struct {
	mu    sync.Mutex
	value T
}

func NewSinkProperty[T any](source *Property[T]) *SinkProperty[T] {
	s := &SinkProperty[T]{value: source.Get()}
	source.Subscribe(func(v T) {
		s.mu.Lock()
		s.value = v
		s.mu.Unlock()
	})
	return s
}

func (s *SinkProperty[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}
