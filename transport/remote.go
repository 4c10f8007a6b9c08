package transport

// Remote tracks what this side has received from its peer: the highest
// sequence seen (ack), a 32-bit bitfield of the 32 sequences before it,
// and a receive ring mirroring Local's send ring. Grounded on the Rust
// original's connection/remote.rs, but NOT ported line-for-line: this
// implements spec.md §4.C's textual algorithm (shift the bitfield by
// the gap between the new and previous ack, saturating to a full clear
// at 32+) rather than the Rust source's simplification of always
// shifting by exactly one bit (SPEC_FULL.md Design Notes).
type Remote struct {
	ack         uint16
	ackBitfield uint32
	hasReceived bool

	receiveBuffer [ringSize]uint16
}

func NewRemote() *Remote {
	r := &Remote{}
	for i := range r.receiveBuffer {
		r.receiveBuffer[i] = sentinelSeq
	}
	return r
}

func (r *Remote) Ack() uint16         { return r.ack }
func (r *Remote) AckBitfield() uint32 { return r.ackBitfield }

// AcknowledgePacket folds a newly received sequence s into the ack
// state.
func (r *Remote) AcknowledgePacket(s uint16) {
	switch {
	case !r.hasReceived:
		r.ackBitfield = 1
		r.ack = s
		r.hasReceived = true
	case IsRecent(s, r.ack):
		delta := s - r.ack
		for d := uint16(1); d < delta; d++ {
			r.receiveBuffer[(r.ack+d)%ringSize] = sentinelSeq
		}
		if delta >= 32 {
			r.ackBitfield = 0
		} else {
			r.ackBitfield <<= delta
		}
		r.ackBitfield |= 1
		r.ack = s
	default:
		offset := (r.ack - s) % 32
		r.ackBitfield |= 1 << offset
	}
	r.receiveBuffer[s%ringSize] = s
}

// IsRecent reports whether s1 is a more recent sequence than s2, under
// 16-bit wraparound (sequences within half the number space ahead of s2
// count as more recent; anything further back is treated as old).
func IsRecent(s1, s2 uint16) bool {
	return (s1 > s2 && s1-s2 <= 1<<15) || (s1 < s2 && s2-s1 > 1<<15)
}
