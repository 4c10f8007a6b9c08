package transport

import (
	"github.com/byte-engine/engine/cmn/cos"
)

// ServerCapacity is the fixed number of concurrent clients a Server
// will track, resolving spec.md's open question on a server client
// limit (SPEC_FULL.md Design Notes).
const ServerCapacity = 64

// defaultTimeoutNanos is how long a client may go without a received
// packet before Update evicts it.
const defaultTimeoutNanos = int64(5e9)

type serverClient struct {
	address      string
	clientSalt   uint64
	serverSalt   uint64
	connectionID uint64
	connected    bool

	local  *Local
	remote *Remote
	buffer *PacketBuffer

	lastSeen int64
}

// Server is the sans-I/O BETP server state machine: up to
// ServerCapacity clients, each keyed by its source address. Grounded on
// the Rust original's server/server.rs and server/client.rs.
type Server struct {
	clients      [ServerCapacity]*serverClient
	timeoutNanos int64
}

func NewServer() *Server {
	return &Server{timeoutNanos: defaultTimeoutNanos}
}

func (s *Server) findByAddress(address string) (int, *serverClient) {
	for i, c := range s.clients {
		if c != nil && c.address == address {
			return i, c
		}
	}
	return -1, nil
}

func (s *Server) findEmptySlot() int {
	for i, c := range s.clients {
		if c == nil {
			return i
		}
	}
	return -1
}

// HandlePacket dispatches an inbound (address, packet) pair per
// spec.md §4.C's Server API. A reconnecting address (one already
// holding a slot) reuses it rather than consuming a fresh one.
func (s *Server) HandlePacket(address string, p *Packet, now int64) (*Packet, error) {
	switch p.Type {
	case PacketConnectionRequest:
		if _, existing := s.findByAddress(address); existing != nil {
			existing.lastSeen = now
			return &Packet{Type: PacketChallenge, Challenge: ChallengePacket{
				ClientSalt: existing.clientSalt, ServerSalt: existing.serverSalt,
			}}, nil
		}
		idx := s.findEmptySlot()
		if idx < 0 {
			return nil, cos.ErrServerFull("all %d client slots are in use", ServerCapacity)
		}
		sc := &serverClient{
			address:    address,
			clientSalt: p.ConnectionRequest.ClientSalt,
			serverSalt: deriveSalt(now),
			local:      NewLocal(),
			remote:     NewRemote(),
			buffer:     NewPacketBuffer(),
			lastSeen:   now,
		}
		s.clients[idx] = sc
		return &Packet{Type: PacketChallenge, Challenge: ChallengePacket{
			ClientSalt: sc.clientSalt, ServerSalt: sc.serverSalt,
		}}, nil

	case PacketChallengeResponse:
		_, sc := s.findByAddress(address)
		if sc == nil {
			return nil, cos.ErrClientNotFound("no handshake in progress for %s", address)
		}
		expected := sc.clientSalt ^ sc.serverSalt
		if p.ChallengeResponse.ConnectionID != expected {
			return nil, cos.ErrBadConnectionID("challenge response connection id %d, want %d", p.ChallengeResponse.ConnectionID, expected)
		}
		sc.connectionID = expected
		sc.connected = true
		sc.lastSeen = now
		return nil, nil

	case PacketData:
		_, sc := s.findByAddress(address)
		if sc == nil {
			return nil, cos.ErrClientNotFound("no client at %s", address)
		}
		if p.Data.ConnectionID != sc.connectionID {
			return nil, cos.ErrBadConnectionID("data packet connection id %d, want %d", p.Data.ConnectionID, sc.connectionID)
		}
		sc.remote.AcknowledgePacket(p.Data.Status.Sequence)
		sc.local.AcknowledgePackets(p.Data.Status.Ack, p.Data.Status.AckBitfield)
		for i := uint16(0); i < 32; i++ {
			if p.Data.Status.AckBitfield&(1<<i) != 0 {
				sc.buffer.Remove(p.Data.Status.Ack - i)
			}
		}
		sc.lastSeen = now
		return nil, nil

	case PacketDisconnect:
		idx, sc := s.findByAddress(address)
		if sc == nil || p.Disconnect.ConnectionID != sc.connectionID {
			return nil, cos.ErrClientNotFound("no matching connection for disconnect from %s", address)
		}
		s.clients[idx] = nil
		return nil, nil

	default:
		return nil, cos.ErrUnhandleablePacket("server cannot handle packet type %d", p.Type)
	}
}

// Send assembles an outbound Data packet for the client at address,
// buffering it for retransmission until acknowledged.
func (s *Server) Send(address string, payload []byte, reliable bool) (*Packet, error) {
	_, sc := s.findByAddress(address)
	if sc == nil {
		return nil, cos.ErrClientNotFound("no client at %s", address)
	}
	dp := DataPacket{
		ConnectionID: sc.connectionID,
		Status: ConnectionStatus{
			Sequence:    sc.local.GetSequenceNumber(),
			Ack:         sc.remote.Ack(),
			AckBitfield: sc.remote.AckBitfield(),
		},
		Payload: payload,
	}
	sc.buffer.Add(dp, sc.connectionID, reliable)
	return &Packet{Type: PacketData, Data: dp}, nil
}

// Update evicts clients that have gone quiet past the timeout
// (returning a synthesized Disconnect for each) and returns every
// still-buffered packet from the surviving clients for retransmission.
func (s *Server) Update(now int64) []*Packet {
	var out []*Packet
	for i, sc := range s.clients {
		if sc == nil {
			continue
		}
		if now-sc.lastSeen > s.timeoutNanos {
			out = append(out, &Packet{Type: PacketDisconnect, Disconnect: DisconnectPacket{ConnectionID: sc.connectionID}})
			s.clients[i] = nil
			continue
		}
		for _, bp := range sc.buffer.GatherUnsentPackets() {
			out = append(out, &Packet{Type: PacketData, Data: bp.Packet})
		}
	}
	return out
}

// ConnectedClients reports how many slots currently hold a client,
// handshaking or fully connected.
func (s *Server) ConnectedClients() int {
	n := 0
	for _, c := range s.clients {
		if c != nil {
			n++
		}
	}
	return n
}
