// Package nlog is byte-engine's logger. It keeps the call-site surface of
// the teacher's rotating, buffer-pooled cmn/nlog (Infof/Warningf/Errorf/
// Flush) without the multi-file rotation machinery — this module's log
// volume never approaches the scale that justifies it (see DESIGN.md).
package nlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type severity int

const (
	sevInfo severity = iota
	sevWarn
	sevErr
)

func (s severity) String() string {
	switch s {
	case sevWarn:
		return "W"
	case sevErr:
		return "E"
	default:
		return "I"
	}
}

var (
	mu     sync.Mutex
	out    io.Writer = os.Stderr
	logger           = log.New(out, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

// SetOutput redirects log output to w in place of stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	logger = log.New(out, "", log.Ldate|log.Ltime|log.Lmicroseconds)
}

func emit(sev severity, depth int, format string, args ...any) {
	msg := format
	if format == "" {
		msg = fmt.Sprint(args...)
	} else {
		msg = fmt.Sprintf(format, args...)
	}
	mu.Lock()
	defer mu.Unlock()
	logger.Output(depth+3, fmt.Sprintf("%s %s", sev, msg))
}

func Infof(format string, args ...any)    { emit(sevInfo, 0, format, args...) }
func Infoln(args ...any)                  { emit(sevInfo, 0, "", args...) }
func Warningf(format string, args ...any) { emit(sevWarn, 0, format, args...) }
func Warningln(args ...any)               { emit(sevWarn, 0, "", args...) }
func Errorf(format string, args ...any)   { emit(sevErr, 0, format, args...) }
func Errorln(args ...any)                 { emit(sevErr, 0, "", args...) }
func ErrorDepth(depth int, args ...any)   { emit(sevErr, depth, "", args...) }

// Flush is a no-op in this simplified logger (nothing is buffered) but is
// kept so code mirroring the teacher's shutdown sequence still compiles.
func Flush(...bool) {}
