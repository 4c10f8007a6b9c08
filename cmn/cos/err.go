// Package cos provides common low-level types and utilities shared by every
// byte-engine package: error kinds, checksum helpers, and small string/byte
// utilities.
package cos

import (
	"fmt"
	"sync"
	ratomic "sync/atomic"

	"github.com/pkg/errors"

	"github.com/byte-engine/engine/cmn/debug"
)

// Kind names the error taxonomy; see Design §7.1.
type Kind string

const (
	KindNotFound             Kind = "NotFound"
	KindUnsupportedType      Kind = "UnsupportedType"
	KindLoadFailed           Kind = "LoadFailed"
	KindDeserializationFailed Kind = "DeserializationFailed"
	KindStorageError         Kind = "StorageError"
	KindBadConnectionID      Kind = "BadConnectionId"
	KindClientNotFound       Kind = "ClientNotFound"
	KindServerFull           Kind = "ServerFull"
	KindUnhandleablePacket   Kind = "UnhandleablePacket"
)

// ErrKind is a tagged error: every fallible core operation returns one of
// these (carrying the underlying cause, wrapped with errors.WithStack, when
// there is one) rather
// than a bare error, so callers can dispatch on Kind without string matching.
type ErrKind struct {
	kind  Kind
	what  string
	cause error
}

func NewErr(kind Kind, format string, a ...any) *ErrKind {
	return &ErrKind{kind: kind, what: fmt.Sprintf(format, a...)}
}

func WrapErr(kind Kind, cause error, format string, a ...any) *ErrKind {
	return &ErrKind{kind: kind, what: fmt.Sprintf(format, a...), cause: errors.WithStack(cause)}
}

func (e *ErrKind) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.what, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.what)
}

// Unwrap returns the cause as it was passed to WrapErr, without the
// stack-trace wrapper WrapErr adds around it.
func (e *ErrKind) Unwrap() error { return errors.Unwrap(e.cause) }

func (e *ErrKind) Kind() Kind { return e.kind }

// Is reports whether err is an *ErrKind of the given kind.
func Is(err error, kind Kind) bool {
	var ek *ErrKind
	if errors.As(err, &ek) {
		return ek.kind == kind
	}
	return false
}

func ErrNotFound(format string, a ...any) *ErrKind {
	return NewErr(KindNotFound, format, a...)
}

func ErrUnsupportedType(format string, a ...any) *ErrKind {
	return NewErr(KindUnsupportedType, format, a...)
}

func ErrLoadFailed(cause error, format string, a ...any) *ErrKind {
	return WrapErr(KindLoadFailed, cause, format, a...)
}

func ErrDeserializationFailed(cause error, format string, a ...any) *ErrKind {
	return WrapErr(KindDeserializationFailed, cause, format, a...)
}

func ErrStorageError(cause error, format string, a ...any) *ErrKind {
	return WrapErr(KindStorageError, cause, format, a...)
}

func ErrBadConnectionID(format string, a ...any) *ErrKind {
	return NewErr(KindBadConnectionID, format, a...)
}

func ErrClientNotFound(format string, a ...any) *ErrKind {
	return NewErr(KindClientNotFound, format, a...)
}

func ErrServerFull(format string, a ...any) *ErrKind {
	return NewErr(KindServerFull, format, a...)
}

func ErrUnhandleablePacket(format string, a ...any) *ErrKind {
	return NewErr(KindUnhandleablePacket, format, a...)
}

// Errs is a deduping error accumulator, used where a batch operation (e.g.
// `beld delete ID...`) must keep going past individual failures and report
// them all at the end.
type Errs struct {
	errs []error
	cnt  int64
	mu   sync.Mutex
}

const maxErrs = 16

func (e *Errs) Add(err error) {
	debug.Assert(err != nil)
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, added := range e.errs {
		if added.Error() == err.Error() {
			return
		}
	}
	if len(e.errs) < maxErrs {
		e.errs = append(e.errs, err)
		ratomic.StoreInt64(&e.cnt, int64(len(e.errs)))
	}
}

func (e *Errs) Cnt() int { return int(ratomic.LoadInt64(&e.cnt)) }

func (e *Errs) JoinErr() (cnt int, err error) {
	if cnt = e.Cnt(); cnt > 0 {
		e.mu.Lock()
		err = errors.Errorf("%d error(s): %v", cnt, e.errs)
		e.mu.Unlock()
	}
	return
}

func (e *Errs) Error() string {
	cnt, err := e.JoinErr()
	if cnt == 0 {
		return ""
	}
	return err.Error()
}
