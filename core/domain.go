package core

import (
	"reflect"
	"sync"
)

// Domain is an entity that additionally owns a listener registry: a
// mapping from type tag to subscriber list. Domains are nodes under
// which child entities are spawned via SpawnAsChild; the root domain has
// no parent (modeled simply by never registering it with another
// domain).
type Domain struct {
	mu        sync.Mutex
	listeners map[reflect.Type][]listenerEntry
}

func NewDomain() *Domain {
	return &Domain{listeners: make(map[reflect.Type][]listenerEntry)}
}

// Traits marks Domain as a plain entity with no additional trait
// broadcast by default; hosts embedding Domain in a richer type can
// override Traits on their own type.
func (*Domain) Traits() []reflect.Type { return nil }
