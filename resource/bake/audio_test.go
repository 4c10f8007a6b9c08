package bake_test

import (
	"encoding/binary"
	"testing"

	"github.com/byte-engine/engine/resource"
	"github.com/byte-engine/engine/resource/bake"
)

// buildWAV constructs a minimal PCM WAV file with the given sample rate,
// channel count, bit depth and sample payload, mirroring the byte layout the Rust original's
// audio_asset_handler.rs expects.
func buildWAV(sampleRate uint32, channels, bitsPerSample uint16, payload []byte) []byte {
	buf := make([]byte, 44+len(payload))
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(payload)))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], channels)
	binary.LittleEndian.PutUint32(buf[24:28], sampleRate)
	byteRate := sampleRate * uint32(channels) * uint32(bitsPerSample) / 8
	binary.LittleEndian.PutUint32(buf[28:32], byteRate)
	blockAlign := channels * bitsPerSample / 8
	binary.LittleEndian.PutUint16(buf[32:34], blockAlign)
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(payload)))
	copy(buf[44:], payload)
	return buf
}

func TestAudioHandlerWAVBake(t *testing.T) {
	const dataSize = 152456
	payload := make([]byte, dataSize)
	for i := range payload {
		payload[i] = byte(i)
	}
	wav := buildWAV(48000, 1, 16, payload)

	asset := &resource.Asset{ID: "gun.wav", Bytes: wav, Extension: "wav"}
	processed, err := bake.AudioHandler{}.Bake(asset)
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	if len(processed) != 1 {
		t.Fatalf("expected one processed asset, got %d", len(processed))
	}
	pa := processed[0]
	if pa.Class != "Audio" {
		t.Errorf("class = %q, want Audio", pa.Class)
	}
	if len(pa.Payload) != dataSize {
		t.Errorf("payload size = %d, want %d", len(pa.Payload), dataSize)
	}

	var model bake.Audio
	if err := jsonUnmarshal(pa.Model, &model); err != nil {
		t.Fatalf("decoding model: %v", err)
	}
	if model.BitDepth != bake.BitDepthSixteen {
		t.Errorf("bit depth = %v, want Sixteen", model.BitDepth)
	}
	if model.ChannelCount != 1 {
		t.Errorf("channel count = %d, want 1", model.ChannelCount)
	}
	if model.SampleRate != 48000 {
		t.Errorf("sample rate = %d, want 48000", model.SampleRate)
	}
	if model.SampleCount != 76228 {
		t.Errorf("sample count = %d, want 76228", model.SampleCount)
	}
}
