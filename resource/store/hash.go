package store

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/OneOfOne/xxhash"
)

// payloadSeed mirrors the Rust original's TestStorageBackend, which hashes
// the raw payload with GxHasher::with_seed(961961961961961) — confirming
// the content hash is a pure function of the binary blob (spec.md §3.2).
const payloadSeed = 961961961961961

// keySeed1/keySeed2 derive the 16-byte metadata key from a resource id
// string (spec.md §6.2), the same xxhash.Checksum64S call the teacher's
// fs/hrw.go uses for rendezvous-hash digests, applied twice with distinct
// seeds to widen the digest from 8 to 16 bytes.
const (
	keySeed1 uint64 = 0x9E3779B97F4A7C15
	keySeed2 uint64 = 0xC2B2AE3D27D4EB4F
)

// ContentHash is the 64-bit content hash exposed via Reference.Hash: a
// pure function of the binary payload.
func ContentHash(payload []byte) uint64 {
	return xxhash.Checksum64S(payload, payloadSeed)
}

// Key is the 16-byte derived id used as both the buntdb key and the
// payload filename's printable form.
type Key [16]byte

func DeriveKey(id string) Key {
	var k Key
	b := []byte(id)
	binary.LittleEndian.PutUint64(k[0:8], xxhash.Checksum64S(b, keySeed1))
	binary.LittleEndian.PutUint64(k[8:16], xxhash.Checksum64S(b, keySeed2))
	return k
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }
