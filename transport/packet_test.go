package transport_test

import (
	"testing"

	"github.com/byte-engine/engine/transport"
)

func TestEncodeDecodeRoundTripsData(t *testing.T) {
	p := &transport.Packet{
		Type: transport.PacketData,
		Data: transport.DataPacket{
			ConnectionID: 0xDEADBEEF,
			Status: transport.ConnectionStatus{
				Sequence:    7,
				Ack:         3,
				AckBitfield: 0b101,
			},
			Payload: []byte("hello"),
		},
	}
	raw, err := transport.Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(raw[0:4]) != transport.ProtocolID {
		t.Fatalf("wire header = %q, want %q", raw[0:4], transport.ProtocolID)
	}

	got, err := transport.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Type != transport.PacketData || got.Data.ConnectionID != p.Data.ConnectionID ||
		got.Data.Status != p.Data.Status || string(got.Data.Payload) != "hello" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestDecodeRejectsBadProtocolID(t *testing.T) {
	_, err := transport.Decode([]byte("XXXX\x01"))
	if err == nil {
		t.Fatal("expected error for bad protocol id")
	}
}
