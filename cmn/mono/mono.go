// Package mono provides a nanosecond clock a host can use for the "now"
// values BETP session timeouts and handshake salts take; the transport
// package receives "now" as a parameter and does not import mono.
package mono

import "time"

// NanoTime returns the wall-clock time in nanoseconds since the Unix
// epoch. It is not monotonic: it moves backward if the system clock is
// set back.
func NanoTime() int64 {
	return time.Now().UnixNano()
}

// Since returns the nanoseconds elapsed since a NanoTime() reading.
func Since(t int64) int64 {
	return NanoTime() - t
}
