//go:build debug

package debug

import (
	"fmt"
	"sync"
)

func ON() bool { return true }

func Assert(cond bool, args ...any) {
	if !cond {
		panic(fmt.Sprint("assertion failed: ", fmt.Sprint(args...)))
	}
}

func AssertFunc(f func() bool, args ...any) {
	Assert(f(), args...)
}

func AssertNoErr(err error) {
	if err != nil {
		panic("assertion failed: " + err.Error())
	}
}

func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic("assertion failed: " + fmt.Sprintf(format, args...))
	}
}

// AssertMutexLocked and its RWMutex variants cannot truly inspect lock
// state without racy internals poking; they document the call site's
// invariant and are no-ops beyond that, same as upstream sync primitives
// offer no TryLock-based introspection prior to Go 1.18's TryLock addition
// being usable for this purpose.
func AssertMutexLocked(_ *sync.Mutex)      {}
func AssertRWMutexLocked(_ *sync.RWMutex)  {}
func AssertRWMutexRLocked(_ *sync.RWMutex) {}
