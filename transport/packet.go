// Package transport is BETP: a connection-oriented, sans-I/O reliable
// UDP protocol with a salt-based handshake, per-connection sequence/ack
// tracking, retransmission buffers, and timeout eviction. Grounded in
// full on the Rust original's crates/betp/* sources; the package name is
// retained from the teacher (same framing + per-session state role),
// its contents fully rewritten for this protocol.
package transport

import (
	"encoding/binary"

	"github.com/byte-engine/engine/cmn/cos"
)

// ProtocolID is the four ASCII bytes every packet begins with.
const ProtocolID = "BETP"

// PacketType tags the 1-byte packet variant following the protocol id.
type PacketType byte

const (
	PacketConnectionRequest PacketType = 1
	PacketChallenge         PacketType = 2
	PacketChallengeResponse PacketType = 3
	PacketData              PacketType = 4
	PacketDisconnect        PacketType = 5
)

// DataPayloadSize is the reference Data packet payload size (spec.md §4.C).
const DataPayloadSize = 1024

type ConnectionStatus struct {
	Sequence    uint16
	Ack         uint16
	AckBitfield uint32
}

type ConnectionRequestPacket struct{ ClientSalt uint64 }

type ChallengePacket struct {
	ClientSalt uint64
	ServerSalt uint64
}

type ChallengeResponsePacket struct{ ConnectionID uint64 }

type DataPacket struct {
	ConnectionID uint64
	Status       ConnectionStatus
	Payload      []byte
}

type DisconnectPacket struct{ ConnectionID uint64 }

// Packet is the decoded union of every BETP wire packet; Type selects
// which embedded struct is populated.
type Packet struct {
	Type              PacketType
	ConnectionRequest ConnectionRequestPacket
	Challenge         ChallengePacket
	ChallengeResponse ChallengeResponsePacket
	Data              DataPacket
	Disconnect        DisconnectPacket
}

// Encode renders p to its little-endian wire form, per spec.md §6.3.
func Encode(p *Packet) ([]byte, error) {
	buf := make([]byte, 0, 5+DataPayloadSize)
	buf = append(buf, ProtocolID...)
	buf = append(buf, byte(p.Type))
	switch p.Type {
	case PacketConnectionRequest:
		buf = appendU64(buf, p.ConnectionRequest.ClientSalt)
	case PacketChallenge:
		buf = appendU64(buf, p.Challenge.ClientSalt)
		buf = appendU64(buf, p.Challenge.ServerSalt)
	case PacketChallengeResponse:
		buf = appendU64(buf, p.ChallengeResponse.ConnectionID)
	case PacketData:
		buf = appendU64(buf, p.Data.ConnectionID)
		buf = appendU16(buf, p.Data.Status.Sequence)
		buf = appendU16(buf, p.Data.Status.Ack)
		buf = appendU32(buf, p.Data.Status.AckBitfield)
		buf = append(buf, p.Data.Payload...)
	case PacketDisconnect:
		buf = appendU64(buf, p.Disconnect.ConnectionID)
	default:
		return nil, cos.ErrUnhandleablePacket("unknown packet type %d", p.Type)
	}
	return buf, nil
}

// Decode parses raw wire bytes into a Packet.
func Decode(raw []byte) (*Packet, error) {
	if len(raw) < 5 {
		return nil, cos.ErrUnhandleablePacket("packet shorter than the 5-byte header")
	}
	if string(raw[0:4]) != ProtocolID {
		return nil, cos.ErrUnhandleablePacket("bad protocol id %q", raw[0:4])
	}
	t := PacketType(raw[4])
	body := raw[5:]
	p := &Packet{Type: t}
	switch t {
	case PacketConnectionRequest:
		if len(body) < 8 {
			return nil, cos.ErrUnhandleablePacket("short ConnectionRequest body")
		}
		p.ConnectionRequest.ClientSalt = binary.LittleEndian.Uint64(body[0:8])
	case PacketChallenge:
		if len(body) < 16 {
			return nil, cos.ErrUnhandleablePacket("short Challenge body")
		}
		p.Challenge.ClientSalt = binary.LittleEndian.Uint64(body[0:8])
		p.Challenge.ServerSalt = binary.LittleEndian.Uint64(body[8:16])
	case PacketChallengeResponse:
		if len(body) < 8 {
			return nil, cos.ErrUnhandleablePacket("short ChallengeResponse body")
		}
		p.ChallengeResponse.ConnectionID = binary.LittleEndian.Uint64(body[0:8])
	case PacketData:
		if len(body) < 16 {
			return nil, cos.ErrUnhandleablePacket("short Data header")
		}
		p.Data.ConnectionID = binary.LittleEndian.Uint64(body[0:8])
		p.Data.Status.Sequence = binary.LittleEndian.Uint16(body[8:10])
		p.Data.Status.Ack = binary.LittleEndian.Uint16(body[10:12])
		p.Data.Status.AckBitfield = binary.LittleEndian.Uint32(body[12:16])
		p.Data.Payload = append([]byte(nil), body[16:]...)
	case PacketDisconnect:
		if len(body) < 8 {
			return nil, cos.ErrUnhandleablePacket("short Disconnect body")
		}
		p.Disconnect.ConnectionID = binary.LittleEndian.Uint64(body[0:8])
	default:
		return nil, cos.ErrUnhandleablePacket("unknown packet type %d", t)
	}
	return p, nil
}

func appendU16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}
