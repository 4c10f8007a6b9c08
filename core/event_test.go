package core_test

import (
	"testing"

	"github.com/byte-engine/engine/core"
)

type counterEntity struct {
	hits int
}

func TestEventFiresSubscribersUnderTheirOwnLock(t *testing.T) {
	e := core.NewEvent[bool]()
	h := core.Spawn[*counterEntity](&counterEntity{})

	core.Subscribe(e, h, func(c *counterEntity, v *bool) {
		if *v {
			c.hits++
		}
	})

	v := true
	e.Fire(&v)

	var hits int
	h.Write(func(c *counterEntity) { hits = c.hits })
	if hits != 1 {
		t.Fatalf("hits = %d, want 1", hits)
	}
}
