package core

import "reflect"

// Subscriber is implemented by whatever concrete type a spawned entity
// uses to react to creation/deletion of entities of type T, per
// spec.md §3.1's "handle to an entity that implements on_create/
// on_delete for some T".
type Subscriber[T any] interface {
	OnCreate(handle Handle[T], value T)
	OnDelete(handle Handle[T])
}

// listenerEntry is a type-erased (handle, method) pair bound to a
// concrete T at AddListener time; it closes over the subscriber's own
// container so broadcasting never needs to know T.
type listenerEntry struct {
	notifyCreate func(entityContainer *container, value any)
	notifyDelete func(entityContainer *container)
}

// AddListener appends subscriber to D's listener list for type T.
// Listener lists are append-only during the domain's lifetime; the
// caller is responsible for deduplication (spec.md §4.A).
func AddListener[T any](d *Domain, subscriber Handle[Subscriber[T]]) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	sc := subscriber.c
	entry := listenerEntry{
		notifyCreate: func(entityContainer *container, value any) {
			sc.mu.Lock()
			s, ok := sc.value.(Subscriber[T])
			sc.mu.Unlock()
			if !ok {
				return
			}
			s.OnCreate(Handle[T]{c: entityContainer}, value.(T))
		},
		notifyDelete: func(entityContainer *container) {
			sc.mu.Lock()
			s, ok := sc.value.(Subscriber[T])
			sc.mu.Unlock()
			if !ok {
				return
			}
			s.OnDelete(Handle[T]{c: entityContainer})
		},
	}
	d.mu.Lock()
	d.listeners[key] = append(d.listeners[key], entry)
	d.mu.Unlock()
}

// broadcastCreation gathers every listener registered under any of tags,
// releases the domain lock, then invokes each in registration order —
// eliminating the domain-self-deadlock class a naive hold-lock-while-
// calling-out implementation would have (SPEC_FULL.md §11).
func (d *Domain) broadcastCreation(entityContainer *container, tags []reflect.Type, value any) {
	gathered := d.gather(tags)
	for _, entry := range gathered {
		entry.notifyCreate(entityContainer, value)
	}
}

func (d *Domain) broadcastDeletion(entityContainer *container, tags []reflect.Type) {
	gathered := d.gather(tags)
	for _, entry := range gathered {
		entry.notifyDelete(entityContainer)
	}
}

func (d *Domain) gather(tags []reflect.Type) []listenerEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []listenerEntry
	for _, t := range tags {
		out = append(out, d.listeners[t]...)
	}
	return out
}
