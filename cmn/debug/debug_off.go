//go:build !debug

// Package debug provides compiled-in/compiled-out assertions for internal
// invariants — never for caller-facing failures, which always return a
// *cos.ErrKind instead.
package debug

import "sync"

func ON() bool { return false }

func Assert(_ bool, _ ...any)            {}
func AssertFunc(_ func() bool, _ ...any) {}
func AssertNoErr(_ error)                {}
func Assertf(_ bool, _ string, _ ...any) {}

func AssertMutexLocked(_ *sync.Mutex)      {}
func AssertRWMutexLocked(_ *sync.RWMutex)  {}
func AssertRWMutexRLocked(_ *sync.RWMutex) {}
