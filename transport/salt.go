package transport

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/OneOfOne/xxhash"
)

var saltNonce atomic.Uint64

// deriveSalt derives a non-zero 64-bit handshake salt from the caller's
// clock reading and a process-wide nonce, reusing the same xxhash
// primitive resource/store uses for content hashing rather than pulling
// in a dedicated RNG dependency the example pack doesn't carry.
func deriveSalt(now int64) uint64 {
	nonce := saltNonce.Add(1)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], nonce)
	h := xxhash.Checksum64S(buf[:], uint64(now))
	if h == 0 {
		h = 1
	}
	return h
}
