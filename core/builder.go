package core

import "reflect"

// EntityBuilder bundles a factory, an ordered list of post-creation
// hooks, and a list of listen-to declarations, per spec.md §4.A's
// Builder section.
type EntityBuilder[T any] struct {
	factory      func(domain *Domain) T
	postCreation []func(domain *Domain, handle Handle[T])
	listenTo     []func(domain *Domain, handle Handle[T])
}

func NewBuilder[T any](factory func(domain *Domain) T) *EntityBuilder[T] {
	return &EntityBuilder[T]{factory: factory}
}

// Then appends a post-creation hook, run after the entity is wrapped but
// before the creation broadcast.
func (b *EntityBuilder[T]) Then(hook func(domain *Domain, handle Handle[T])) *EntityBuilder[T] {
	b.postCreation = append(b.postCreation, hook)
	return b
}

// ListenTo declares that the spawned entity should register itself as a
// Subscriber[U] of domain D at spawn time. If the spawned value doesn't
// actually implement Subscriber[U], this is a silent no-op — mirroring
// Handle.Downcast's "none, no panic" failure mode rather than erroring
// the whole spawn.
func ListenTo[U any, T any](b *EntityBuilder[T]) *EntityBuilder[T] {
	b.listenTo = append(b.listenTo, func(domain *Domain, handle Handle[T]) {
		subHandle, ok := Downcast[Subscriber[U]](handle)
		if !ok {
			return
		}
		AddListener[U](domain, subHandle)
	})
	return b
}

// Spawn allocates an id, wraps value in a shared read-write lock, and
// returns a handle. There is no listener broadcast: used for root-level
// entities that have no parent domain.
func Spawn[T any](value T) Handle[T] {
	c := &container{id: newEntityID(), value: value}
	return newHandle[T](c)
}

// SpawnAsChild runs builder's factory, wraps the result, runs every
// post-creation hook in order, applies every listen-to declaration, then
// broadcasts creation through domain's listener registry — implementing
// spec.md §4.A's four-step creation broadcast algorithm exactly.
func SpawnAsChild[T any](domain *Domain, builder *EntityBuilder[T]) Handle[T] {
	value := builder.factory(domain)
	c := &container{id: newEntityID(), value: value}
	h := newHandle[T](c)

	for _, hook := range builder.postCreation {
		hook(domain, h)
	}
	for _, listen := range builder.listenTo {
		listen(domain, h)
	}

	tags := []reflect.Type{reflect.TypeOf(value)}
	if e, ok := any(value).(Entity); ok {
		tags = append(tags, e.Traits()...)
	}

	onDelete := func() { domain.broadcastDeletion(c, tags) }
	c.onDelete.Store(&onDelete)

	domain.broadcastCreation(c, tags, value)

	return h
}
