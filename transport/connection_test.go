package transport_test

import (
	"testing"

	"github.com/byte-engine/engine/transport"
)

func TestDroppedPacketLeavesGapInUnacked(t *testing.T) {
	local := transport.NewLocal()
	local.GetSequenceNumber() // 0
	local.GetSequenceNumber() // 1
	local.GetSequenceNumber() // 2

	local.AcknowledgePackets(2, 0b101)

	unacked := local.UnacknowledgedPackets()
	if len(unacked) != 1 || unacked[0] != 1 {
		t.Fatalf("unacked = %v, want [1]", unacked)
	}
}

func TestRemoteAckNeverRegressesUnderRecency(t *testing.T) {
	r := transport.NewRemote()
	r.AcknowledgePacket(5)
	if r.Ack() != 5 {
		t.Fatalf("ack = %d, want 5", r.Ack())
	}
	r.AcknowledgePacket(3) // stale, must not move ack backwards
	if r.Ack() != 5 {
		t.Fatalf("ack regressed to %d after stale packet", r.Ack())
	}
	if r.AckBitfield()&(1<<2) == 0 {
		t.Fatalf("stale packet 3 should still be recorded in the bitfield, got %b", r.AckBitfield())
	}
	r.AcknowledgePacket(6)
	if r.Ack() != 6 {
		t.Fatalf("ack = %d, want 6", r.Ack())
	}
}

func TestIsRecentMatchesWraparoundTable(t *testing.T) {
	cases := []struct {
		s1, s2 uint16
		want   bool
	}{
		{1, 0, true},
		{0, 1, false},
		{32768, 0, true},
		{0, 32768, false},
	}
	for _, c := range cases {
		if got := transport.IsRecent(c.s1, c.s2); got != c.want {
			t.Errorf("IsRecent(%d, %d) = %v, want %v", c.s1, c.s2, got, c.want)
		}
	}
}
