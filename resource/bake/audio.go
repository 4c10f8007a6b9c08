// Package bake holds the canonical asset handlers: WAV audio, PNG images,
// glTF meshes, and Material JSON, each implementing resource.Handler.
package bake

import (
	"encoding/binary"

	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/resource"
)

// BitDepth mirrors the Rust original's BitDepths enum.
type BitDepth string

const (
	BitDepthEight      BitDepth = "Eight"
	BitDepthSixteen    BitDepth = "Sixteen"
	BitDepthTwentyFour BitDepth = "TwentyFour"
	BitDepthThirtyTwo  BitDepth = "ThirtyTwo"
)

func bitDepthFromBits(bits uint16) (BitDepth, bool) {
	switch bits {
	case 8:
		return BitDepthEight, true
	case 16:
		return BitDepthSixteen, true
	case 24:
		return BitDepthTwentyFour, true
	case 32:
		return BitDepthThirtyTwo, true
	default:
		return "", false
	}
}

func (b BitDepth) bytes() int {
	switch b {
	case BitDepthEight:
		return 1
	case BitDepthSixteen:
		return 2
	case BitDepthTwentyFour:
		return 3
	case BitDepthThirtyTwo:
		return 4
	default:
		return 0
	}
}

// Audio is the baked model for a WAV asset.
type Audio struct {
	BitDepth     BitDepth `json:"bit_depth"`
	ChannelCount uint16   `json:"channel_count"`
	SampleRate   uint32   `json:"sample_rate"`
	SampleCount  uint32   `json:"sample_count"`
}

func (Audio) GetClass() string { return "Audio" }

// AudioHandler parses RIFF/WAVE PCM assets. Byte offsets are grounded on
// the Rust original's asset/audio_asset_handler.rs: a plain, non-extensible
// WAVE header with a 16-byte fmt subchunk is the only form accepted, per
// spec.md §4.B's "enforce PCM, 1 or 2 channels, 8/16/24/32 bits".
type AudioHandler struct{}

func (AudioHandler) Extensions() []string { return []string{"wav"} }

func (AudioHandler) Bake(asset *resource.Asset) ([]*resource.ProcessedAsset, error) {
	data := asset.Bytes
	if len(data) < 44 {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: too short for a header", asset.ID)
	}
	if string(data[0:4]) != "RIFF" {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: missing RIFF tag", asset.ID)
	}
	if string(data[8:12]) != "WAVE" {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: missing WAVE tag", asset.ID)
	}
	subchunk1Size := binary.LittleEndian.Uint32(data[16:20])
	if subchunk1Size != 16 {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: unsupported fmt subchunk size %d", asset.ID, subchunk1Size)
	}
	audioFormat := binary.LittleEndian.Uint16(data[20:22])
	if audioFormat != 1 {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: not PCM (format %d)", asset.ID, audioFormat)
	}
	channelCount := binary.LittleEndian.Uint16(data[22:24])
	if channelCount != 1 && channelCount != 2 {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: unsupported channel count %d", asset.ID, channelCount)
	}
	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	bitsPerSample := binary.LittleEndian.Uint16(data[34:36])
	bitDepth, ok := bitDepthFromBits(bitsPerSample)
	if !ok {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: unsupported bit depth %d", asset.ID, bitsPerSample)
	}
	if string(data[36:40]) != "data" {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: missing data subchunk", asset.ID)
	}
	dataSize := binary.LittleEndian.Uint32(data[40:44])
	if int(44+dataSize) > len(data) {
		return nil, cos.NewErr(cos.KindLoadFailed, "WAV %q: data subchunk overruns file", asset.ID)
	}
	payload := data[44 : 44+dataSize]
	sampleCount := dataSize / uint32(bitDepth.bytes()) / uint32(channelCount)

	model := Audio{
		BitDepth:     bitDepth,
		ChannelCount: channelCount,
		SampleRate:   sampleRate,
		SampleCount:  sampleCount,
	}
	encoded, err := cos.JSON.Marshal(model)
	if err != nil {
		return nil, cos.ErrLoadFailed(err, "encoding audio model for %q", asset.ID)
	}
	return []*resource.ProcessedAsset{
		resource.NewProcessedAsset(asset.ID, model.GetClass(), encoded, payload),
	}, nil
}
