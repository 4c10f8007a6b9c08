package manager_test

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/byte-engine/engine/resource"
	"github.com/byte-engine/engine/resource/bake"
	"github.com/byte-engine/engine/resource/manager"
	"github.com/byte-engine/engine/resource/store"
)

func buildWAV(t *testing.T, sampleRate uint32, channels, bitsPerSample uint16, payload []byte) []byte {
	t.Helper()
	buf := make([]byte, 44+len(payload))
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(payload)))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1)
	binary.LittleEndian.PutUint16(buf[22:24], channels)
	binary.LittleEndian.PutUint32(buf[24:28], sampleRate)
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(payload)))
	copy(buf[44:], payload)
	return buf
}

func newTestManager(t *testing.T) (*manager.Manager, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "byte-engine-resource-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	backend, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	assets := resource.NewMemAssetSource()
	payload := make([]byte, 2048)
	for i := range payload {
		payload[i] = byte(i)
	}
	assets.Put("gun.wav", buildWAV(t, 48000, 1, 16, payload), nil)

	m := manager.New(assets, backend, bake.NewRegistry())
	return m, func() {
		backend.Close()
		os.RemoveAll(dir)
	}
}

// TestRoundTrip exercises invariant 3: bake then request then load
// reproduces the original payload bytes (and hence its hash).
func TestRoundTrip(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	ref, err := manager.Request[bake.Audio](m, "gun.wav")
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	box := &resource.BoxTarget{}
	if err := ref.Load(box); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if uint64(len(box.Box)) != ref.Size {
		t.Fatalf("loaded %d bytes, want %d", len(box.Box), ref.Size)
	}
	if store.ContentHash(box.Box) != ref.Hash {
		t.Fatalf("loaded payload hash mismatch")
	}
}

// TestIdempotence exercises invariant 4: baking the same asset twice
// produces identical hash and payload.
func TestIdempotence(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	if err := m.Bake("gun.wav"); err != nil {
		t.Fatalf("first bake: %v", err)
	}
	ref1, err := manager.Request[bake.Audio](m, "gun.wav")
	if err != nil {
		t.Fatalf("Request after first bake: %v", err)
	}
	hash1 := ref1.Hash

	if err := m.Bake("gun.wav"); err != nil {
		t.Fatalf("second bake: %v", err)
	}
	ref2, err := manager.Request[bake.Audio](m, "gun.wav")
	if err != nil {
		t.Fatalf("Request after second bake: %v", err)
	}
	if ref2.Hash != hash1 {
		t.Fatalf("hash changed across repeated bakes: %d != %d", ref2.Hash, hash1)
	}
}

func TestNotFoundSurfaces(t *testing.T) {
	m, cleanup := newTestManager(t)
	defer cleanup()

	if _, err := manager.Request[bake.Audio](m, "missing.wav"); err == nil {
		t.Fatal("expected an error for a missing asset")
	}
}
