package transport

const (
	ringSize    = 1024
	sentinelSeq uint16 = 0xFFFF
)

// Local tracks what this side has sent: a ring of the last ringSize
// sequence numbers handed out by GetSequenceNumber, and which of them
// have since been acknowledged by the peer. Grounded on the Rust
// original's connection/local.rs.
type Local struct {
	sequence       uint16
	sequenceBuffer [ringSize]uint16
	acked          [ringSize]bool
}

func NewLocal() *Local {
	l := &Local{}
	for i := range l.sequenceBuffer {
		l.sequenceBuffer[i] = sentinelSeq
	}
	return l
}

// GetSequenceNumber records the current sequence in its ring slot,
// clears the slot's ack bit, returns the value, then advances.
func (l *Local) GetSequenceNumber() uint16 {
	seq := l.sequence
	slot := seq % ringSize
	l.sequenceBuffer[slot] = seq
	l.acked[slot] = false
	l.sequence++
	return seq
}

// AcknowledgePacket marks s acknowledged if its ring slot still holds s
// (it may have been overwritten by a later sequence reusing the slot).
func (l *Local) AcknowledgePacket(s uint16) {
	slot := s % ringSize
	if l.sequenceBuffer[slot] == s {
		l.acked[slot] = true
	}
}

// AcknowledgePackets applies AcknowledgePacket(ack-i) for every bit i set
// in bitfield, per a peer's reported ack/ack_bitfield pair.
func (l *Local) AcknowledgePackets(ack uint16, bitfield uint32) {
	for i := uint16(0); i < 32; i++ {
		if bitfield&(1<<i) != 0 {
			l.AcknowledgePacket(ack - i)
		}
	}
}

// UnacknowledgedPackets enumerates every sequence still live in the ring
// (not evicted by wraparound) that has not been acknowledged.
func (l *Local) UnacknowledgedPackets() []uint16 {
	var out []uint16
	for i, seq := range l.sequenceBuffer {
		if seq != sentinelSeq && !l.acked[i] {
			out = append(out, seq)
		}
	}
	return out
}
