package transport

import (
	"github.com/byte-engine/engine/cmn/cos"
)

// Client is the sans-I/O BETP client state machine: it consumes
// Packets and produces Packets, with no socket of its own. Grounded on
// the Rust original's client/client.rs.
type Client struct {
	local      *Local
	remote     *Remote
	clientSalt uint64

	ConnectionID uint64
	Connected    bool
}

func NewClient() *Client {
	return &Client{local: NewLocal(), remote: NewRemote()}
}

// Connect picks a fresh client salt and returns the ConnectionRequest to
// send.
func (c *Client) Connect(now int64) *Packet {
	c.clientSalt = deriveSalt(now)
	return &Packet{Type: PacketConnectionRequest, ConnectionRequest: ConnectionRequestPacket{ClientSalt: c.clientSalt}}
}

// HandlePacket advances the handshake or folds in Data/Disconnect
// packets, per spec.md §4.C's Client API.
func (c *Client) HandlePacket(p *Packet) (*Packet, error) {
	switch p.Type {
	case PacketChallenge:
		if p.Challenge.ClientSalt != c.clientSalt {
			return nil, cos.ErrBadConnectionID("challenge echoed client salt %d, want %d", p.Challenge.ClientSalt, c.clientSalt)
		}
		c.ConnectionID = c.clientSalt ^ p.Challenge.ServerSalt
		c.Connected = true
		return &Packet{Type: PacketChallengeResponse, ChallengeResponse: ChallengeResponsePacket{ConnectionID: c.ConnectionID}}, nil

	case PacketData:
		if p.Data.ConnectionID != c.ConnectionID {
			return nil, cos.ErrBadConnectionID("data packet connection id %d, want %d", p.Data.ConnectionID, c.ConnectionID)
		}
		c.remote.AcknowledgePacket(p.Data.Status.Sequence)
		c.local.AcknowledgePackets(p.Data.Status.Ack, p.Data.Status.AckBitfield)
		return nil, nil

	case PacketDisconnect:
		if p.Disconnect.ConnectionID != c.ConnectionID {
			return nil, cos.ErrBadConnectionID("disconnect connection id %d, want %d", p.Disconnect.ConnectionID, c.ConnectionID)
		}
		c.reset()
		return nil, nil

	default:
		return nil, cos.ErrUnhandleablePacket("client cannot handle packet type %d", p.Type)
	}
}

// Send assembles an outbound Data packet carrying payload, stamped with
// the current local sequence and the latest remote ack state.
func (c *Client) Send(payload []byte) *Packet {
	seq := c.local.GetSequenceNumber()
	return &Packet{
		Type: PacketData,
		Data: DataPacket{
			ConnectionID: c.ConnectionID,
			Status: ConnectionStatus{
				Sequence:    seq,
				Ack:         c.remote.Ack(),
				AckBitfield: c.remote.AckBitfield(),
			},
			Payload: payload,
		},
	}
}

// Disconnect returns the Disconnect packet to send and resets local
// state as if the peer had already acknowledged it.
func (c *Client) Disconnect() *Packet {
	p := &Packet{Type: PacketDisconnect, Disconnect: DisconnectPacket{ConnectionID: c.ConnectionID}}
	c.reset()
	return p
}

func (c *Client) reset() {
	c.ConnectionID = 0
	c.Connected = false
	c.local = NewLocal()
	c.remote = NewRemote()
}
