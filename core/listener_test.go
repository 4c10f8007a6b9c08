package core_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/byte-engine/engine/core"
)

type testComponent struct {
	Name string
}

type testListener struct {
	createCount int
	deleteCount int
}

func (l *testListener) OnCreate(core.Handle[*testComponent], *testComponent) { l.createCount++ }
func (l *testListener) OnDelete(core.Handle[*testComponent])                { l.deleteCount++ }

var _ = Describe("entity listener broadcast", func() {
	It("calls OnCreate exactly once for a matching child spawn", func() {
		domain := core.NewDomain()
		listener := &testListener{}
		listenerHandle := core.Spawn[*testListener](listener)

		subHandle, ok := core.Downcast[core.Subscriber[*testComponent]](listenerHandle)
		Expect(ok).To(BeTrue())
		core.AddListener[*testComponent](domain, subHandle)

		builder := core.NewBuilder(func(*core.Domain) *testComponent {
			return &testComponent{Name: "gun"}
		})
		core.SpawnAsChild(domain, builder)

		Expect(listener.createCount).To(Equal(1))
	})

	It("registers listen-to declarations via the builder", func() {
		domain := core.NewDomain()

		var notified int
		sourceBuilder := core.NewBuilder(func(*core.Domain) *testComponent {
			return &testComponent{Name: "source"}
		})
		core.SpawnAsChild(domain, sourceBuilder)

		listenerBuilder := core.ListenTo[*testComponent](core.NewBuilder(func(*core.Domain) *testListener {
			return &testListener{}
		}))
		listenerHandle := core.SpawnAsChild(domain, listenerBuilder)
		listenerHandle.Write(func(l *testListener) { notified = l.createCount })

		// the listener subscribed to *testComponent only after being
		// spawned, so it does not see the source spawned moments earlier;
		// spawning a second component after registration does notify it.
		Expect(notified).To(Equal(0))

		secondBuilder := core.NewBuilder(func(*core.Domain) *testComponent {
			return &testComponent{Name: "second"}
		})
		core.SpawnAsChild(domain, secondBuilder)

		listenerHandle.Write(func(l *testListener) { notified = l.createCount })
		Expect(notified).To(Equal(1))
	})

	It("fires OnDelete when the last strong handle is released", func() {
		domain := core.NewDomain()
		listener := &testListener{}
		listenerHandle := core.Spawn[*testListener](listener)
		subHandle, _ := core.Downcast[core.Subscriber[*testComponent]](listenerHandle)
		core.AddListener[*testComponent](domain, subHandle)

		builder := core.NewBuilder(func(*core.Domain) *testComponent {
			return &testComponent{Name: "gun"}
		})
		child := core.SpawnAsChild(domain, builder)
		child.Release()

		Expect(listener.deleteCount).To(Equal(1))
	})
})

var _ = Describe("Handle.Downcast", func() {
	It("returns false, no panic, for a non-matching type", func() {
		h := core.Spawn[*testComponent](&testComponent{Name: "x"})
		_, ok := core.Downcast[core.Subscriber[*testComponent]](h)
		Expect(ok).To(BeFalse())
	})
})
