package transport_test

import (
	"testing"

	"github.com/byte-engine/engine/transport"
)

func dataAt(seq uint16) transport.DataPacket {
	return transport.DataPacket{Status: transport.ConnectionStatus{Sequence: seq}}
}

func TestPacketBufferReplacesFirstUnreliableSlotWhenFull(t *testing.T) {
	b := transport.NewPacketBuffer()
	for i := uint16(0); i < 8; i++ {
		b.Add(dataAt(i), 1, false)
	}
	b.Add(dataAt(100), 1, false)

	gathered := b.GatherUnsentPackets()
	if len(gathered) != 8 {
		t.Fatalf("buffer size = %d, want 8", len(gathered))
	}
	if gathered[0].Packet.Status.Sequence != 100 {
		t.Fatalf("slot 0 sequence = %d, want 100 (the new unreliable packet)", gathered[0].Packet.Status.Sequence)
	}
}

func TestPacketBufferReplacesHighestRetryCountWhenAllReliable(t *testing.T) {
	b := transport.NewPacketBuffer()
	for i := uint16(0); i < 8; i++ {
		b.Add(dataAt(i), 1, true)
	}
	b.GatherUnsentPackets() // every slot now at retry count 1

	b.Remove(0)
	b.Add(dataAt(50), 1, true) // refills the freed slot at retry count 0
	b.GatherUnsentPackets()    // slot for seq 50 -> 1, the rest -> 2

	b.Add(dataAt(200), 1, true)

	seqs := map[uint16]bool{}
	for _, bp := range b.GatherUnsentPackets() {
		seqs[bp.Packet.Status.Sequence] = true
	}
	if !seqs[200] {
		t.Fatal("expected the new reliable packet to have been buffered")
	}
	if !seqs[50] {
		t.Fatal("the low-retry-count slot (seq 50) should have survived the replacement")
	}
	if seqs[1] {
		t.Fatal("the first high-retry-count slot (seq 1) should have been replaced")
	}
}
