package transport

const packetBufferSize = 8

// BufferedPacket is one retransmit-candidate slot: the Data packet
// itself, whether it requires delivery (vs. being droppable once a
// fresher unreliable packet wants the slot), and how many times it has
// already been handed back by GatherUnsentPackets.
type BufferedPacket struct {
	Packet       DataPacket
	ConnectionID uint64
	Reliable     bool
	TryCount     int
}

// PacketBuffer is a per-peer retransmission buffer: a fixed ring of
// packetBufferSize slots. Grounded on the Rust original's
// connection/packet_buffer.rs.
type PacketBuffer struct {
	slots [packetBufferSize]*BufferedPacket
}

func NewPacketBuffer() *PacketBuffer { return &PacketBuffer{} }

// Add inserts pkt using spec.md §4.C's eviction policy, in order:
//  1. any empty slot;
//  2. else the first slot holding an unreliable packet;
//  3. else, only if pkt itself is reliable, the occupied slot with the
//     highest retry count (by then every slot holds a reliable packet).
//
// An unreliable pkt that reaches step 3 with every slot full of
// reliable packets is dropped: reliable packets are never evicted to
// make room for an unreliable one.
func (b *PacketBuffer) Add(pkt DataPacket, connectionID uint64, reliable bool) {
	bp := &BufferedPacket{Packet: pkt, ConnectionID: connectionID, Reliable: reliable}

	for i, slot := range b.slots {
		if slot == nil {
			b.slots[i] = bp
			return
		}
	}
	for i, slot := range b.slots {
		if !slot.Reliable {
			b.slots[i] = bp
			return
		}
	}
	if !reliable {
		return
	}
	best := 0
	for i, slot := range b.slots {
		if slot.TryCount > b.slots[best].TryCount {
			best = i
		}
	}
	b.slots[best] = bp
}

// Remove clears the slot carrying sequence, if any (called once a peer
// acknowledges it).
func (b *PacketBuffer) Remove(sequence uint16) {
	for i, slot := range b.slots {
		if slot != nil && slot.Packet.Status.Sequence == sequence {
			b.slots[i] = nil
			return
		}
	}
}

// GatherUnsentPackets returns a snapshot of every buffered packet, in
// slot order, incrementing each one's retry count as it is gathered.
func (b *PacketBuffer) GatherUnsentPackets() []BufferedPacket {
	var out []BufferedPacket
	for i, slot := range b.slots {
		if slot == nil {
			continue
		}
		slot.TryCount++
		out = append(out, *slot)
		b.slots[i] = slot
	}
	return out
}
