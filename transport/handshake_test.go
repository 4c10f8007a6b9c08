package transport_test

import (
	"fmt"
	"testing"

	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/transport"
)

func TestClientServerHappyPath(t *testing.T) {
	client := transport.NewClient()
	server := transport.NewServer()
	const addr = "10.0.0.1:40000"

	req := client.Connect(1)
	challenge, err := server.HandlePacket(addr, req, 1)
	if err != nil {
		t.Fatalf("server handle ConnectionRequest: %v", err)
	}
	if challenge.Type != transport.PacketChallenge {
		t.Fatalf("expected Challenge, got %v", challenge.Type)
	}

	resp, err := client.HandlePacket(challenge)
	if err != nil {
		t.Fatalf("client handle Challenge: %v", err)
	}
	if resp.Type != transport.PacketChallengeResponse {
		t.Fatalf("expected ChallengeResponse, got %v", resp.Type)
	}
	if !client.Connected {
		t.Fatal("client should be connected after a valid Challenge")
	}

	none, err := server.HandlePacket(addr, resp, 1)
	if err != nil {
		t.Fatalf("server handle ChallengeResponse: %v", err)
	}
	if none != nil {
		t.Fatalf("server should reply with nothing to ChallengeResponse, got %+v", none)
	}

	first := client.Send([]byte("hi"))
	if first.Data.Status.Sequence != 0 || first.Data.Status.Ack != 0 || first.Data.Status.AckBitfield != 0 {
		t.Fatalf("first send = %+v, want sequence=0 ack=0 ack_bitfield=0", first.Data.Status)
	}

	serverData, err := server.Send(addr, []byte("hello"), true)
	if err != nil {
		t.Fatalf("server Send: %v", err)
	}
	if serverData.Data.Status.Sequence != 0 {
		t.Fatalf("server first send sequence = %d, want 0", serverData.Data.Status.Sequence)
	}

	if _, err := client.HandlePacket(serverData); err != nil {
		t.Fatalf("client handle server Data: %v", err)
	}

	second := client.Send([]byte("again"))
	if second.Data.Status.Sequence != 1 || second.Data.Status.Ack != 0 || second.Data.Status.AckBitfield != 1 {
		t.Fatalf("second send = %+v, want sequence=1 ack=0 ack_bitfield=1", second.Data.Status)
	}
}

func TestServerCapacityAndReconnect(t *testing.T) {
	server := transport.NewServer()
	now := int64(0)

	for i := 0; i < transport.ServerCapacity; i++ {
		addr := fmt.Sprintf("10.0.0.1:%d", i)
		req := &transport.Packet{Type: transport.PacketConnectionRequest, ConnectionRequest: transport.ConnectionRequestPacket{ClientSalt: uint64(i + 1)}}
		if _, err := server.HandlePacket(addr, req, now); err != nil {
			t.Fatalf("connect %d: %v", i, err)
		}
	}

	overflowReq := &transport.Packet{Type: transport.PacketConnectionRequest, ConnectionRequest: transport.ConnectionRequestPacket{ClientSalt: 999}}
	_, err := server.HandlePacket("10.0.0.1:overflow", overflowReq, now)
	if !cos.Is(err, cos.KindServerFull) {
		t.Fatalf("65th connect error = %v, want ServerFull", err)
	}

	reconnectAddr := "10.0.0.1:0"
	reconnectReq := &transport.Packet{Type: transport.PacketConnectionRequest, ConnectionRequest: transport.ConnectionRequestPacket{ClientSalt: 1000}}
	challenge, err := server.HandlePacket(reconnectAddr, reconnectReq, now+1)
	if err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	if challenge.Challenge.ClientSalt != 1 {
		t.Fatalf("reconnect did not reuse the original slot's client salt, got %d", challenge.Challenge.ClientSalt)
	}
	if server.ConnectedClients() != transport.ServerCapacity {
		t.Fatalf("connected clients = %d, want %d (reconnect must not consume a new slot)", server.ConnectedClients(), transport.ServerCapacity)
	}
}
