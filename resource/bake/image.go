package bake

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"github.com/klauspost/compress/s2"

	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/resource"
)

// Image is the baked model for a PNG asset.
type Image struct {
	Format      string `json:"format"` // always "RGBA8" after normalization
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Compression string `json:"compression"` // "none" or "s2"
}

func (Image) GetClass() string { return "Image" }

// ImageHandler decodes PNG assets, normalizes them to 8-bit RGBA, and
// optionally compresses the resulting block payload. No block-compressed
// GPU texture codec (BC7 or otherwise) exists anywhere in the retrieved
// example pack, so this handler uses klauspost/compress's s2 general-
// purpose compressor as a documented stand-in (see DESIGN.md); the
// Compression field is tagged "s2", never "bc7", so downstream consumers
// are never told they're getting a format they aren't.
type ImageHandler struct {
	// Compress enables the s2 payload-compression step. Sidecar metadata
	// (the .bead file) may override this per-asset via {"compress": bool}.
	Compress bool
}

func (ImageHandler) Extensions() []string { return []string{"png"} }

func (h ImageHandler) Bake(asset *resource.Asset) ([]*resource.ProcessedAsset, error) {
	img, err := png.Decode(bytes.NewReader(asset.Bytes))
	if err != nil {
		return nil, cos.ErrLoadFailed(err, "decoding PNG %q", asset.ID)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	payload := rgba.Pix
	compression := "none"
	compress := h.Compress
	if asset.Sidecar != nil {
		if v, ok := asset.Sidecar["compress"].(bool); ok {
			compress = v
		}
	}
	if compress {
		payload = s2.Encode(nil, payload)
		compression = "s2"
	}

	model := Image{
		Format:      "RGBA8",
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Compression: compression,
	}
	encoded, err := cos.JSON.Marshal(model)
	if err != nil {
		return nil, cos.ErrLoadFailed(err, "encoding image model for %q", asset.ID)
	}
	return []*resource.ProcessedAsset{
		resource.NewProcessedAsset(asset.ID, model.GetClass(), encoded, payload),
	}, nil
}
