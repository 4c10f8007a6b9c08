package bake

import (
	"encoding/binary"

	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/resource"
)

// Primitive names the streams and Variant reference for one glTF mesh
// primitive, per spec.md §4.B's Mesh handler description. VariantID is
// populated from the sidecar's "variants" array (one id per primitive
// index) when present; a primitive with no corresponding sidecar entry
// carries an empty VariantID and is resolved against a default material
// by the caller.
type Primitive struct {
	VertexCount uint32 `json:"vertex_count"`
	IndexCount  uint32 `json:"index_count"`
	VariantID   string `json:"variant_id,omitempty"`
}

// Mesh is the baked model for a glTF asset: the component streams
// present plus one Primitive per glTF primitive.
type Mesh struct {
	Components []string    `json:"components"` // e.g. ["position","normal","tangent","uv","color"]
	Streams    []string    `json:"streams"`     // e.g. ["vertex","meshlet","triangle"]
	Primitives []Primitive `json:"primitives"`
}

func (Mesh) GetClass() string { return "Mesh" }

// gltfDoc is the minimal subset of the glTF 2.0 JSON schema this handler
// reads: a single scene with flat meshes/accessors/bufferViews, no
// skinning or animation, matching spec.md's explicit Mesh handler scope.
type gltfDoc struct {
	Meshes []struct {
		Primitives []struct {
			Attributes map[string]int `json:"attributes"`
			Indices    *int           `json:"indices"`
		} `json:"primitives"`
	} `json:"meshes"`
	Accessors []struct {
		BufferView    int    `json:"bufferView"`
		ByteOffset    int    `json:"byteOffset"`
		ComponentType int    `json:"componentType"`
		Count         int    `json:"count"`
		Type          string `json:"type"`
	} `json:"accessors"`
	BufferViews []struct {
		Buffer     int `json:"buffer"`
		ByteOffset int `json:"byteOffset"`
		ByteLength int `json:"byteLength"`
	} `json:"bufferViews"`
}

const (
	componentTypeUShort = 5123
	componentTypeUInt   = 5125
	componentTypeFloat  = 5126
)

var accessorTypeComponents = map[string]int{
	"SCALAR": 1,
	"VEC2":   2,
	"VEC3":   3,
	"VEC4":   4,
}

// MeshHandler parses glTF binary (.glb) assets. No glTF library exists in
// the retrieved example pack, so this is a from-scratch reader of the
// GLB container (magic + JSON chunk + BIN chunk) and the JSON document's
// mesh/accessor/bufferView tables, limited to the single-buffer,
// non-sparse, non-skinned case spec.md describes.
type MeshHandler struct{}

func (MeshHandler) Extensions() []string { return []string{"glb", "gltf"} }

func (MeshHandler) Bake(asset *resource.Asset) ([]*resource.ProcessedAsset, error) {
	jsonChunk, binChunk, err := splitGLB(asset.Bytes)
	if err != nil {
		return nil, err
	}

	var doc gltfDoc
	if err := cos.JSON.Unmarshal(jsonChunk, &doc); err != nil {
		return nil, cos.ErrLoadFailed(err, "decoding glTF JSON for %q", asset.ID)
	}
	if len(doc.Meshes) == 0 {
		return nil, cos.NewErr(cos.KindLoadFailed, "glTF %q: no meshes", asset.ID)
	}

	readAccessor := func(idx int) ([]byte, int, error) {
		if idx < 0 || idx >= len(doc.Accessors) {
			return nil, 0, cos.NewErr(cos.KindLoadFailed, "glTF %q: accessor %d out of range", asset.ID, idx)
		}
		acc := doc.Accessors[idx]
		bv := doc.BufferViews[acc.BufferView]
		compSize := 4
		if acc.ComponentType == componentTypeUShort {
			compSize = 2
		}
		n := accessorTypeComponents[acc.Type]
		size := acc.Count * n * compSize
		start := bv.ByteOffset + acc.ByteOffset
		if start+size > len(binChunk) {
			return nil, 0, cos.NewErr(cos.KindLoadFailed, "glTF %q: accessor %d overruns buffer", asset.ID, idx)
		}
		return binChunk[start : start+size], acc.Count, nil
	}

	var (
		payload    []byte
		streamDefs []resource.StreamDescription
		primitives []Primitive
		components = map[string]bool{}
	)
	appendStream := func(name string, data []byte) {
		for len(payload)%16 != 0 {
			payload = append(payload, 0)
		}
		streamDefs = append(streamDefs, resource.StreamDescription{
			Name: name, Offset: uint64(len(payload)), Size: uint64(len(data)),
		})
		payload = append(payload, data...)
	}

	attrStream := map[string]string{
		"POSITION":   "position",
		"NORMAL":     "normal",
		"TANGENT":    "tangent",
		"TEXCOORD_0": "uv",
		"COLOR_0":    "color",
	}

	for pi, prim := range doc.Meshes[0].Primitives {
		var vertexCount uint32
		for _, attr := range []string{"POSITION", "NORMAL", "TANGENT", "TEXCOORD_0", "COLOR_0"} {
			accIdx, ok := prim.Attributes[attr]
			if !ok {
				continue
			}
			streamName := attrStream[attr]
			data, count, err := readAccessor(accIdx)
			if err != nil {
				return nil, err
			}
			vertexCount = uint32(count)
			name := streamName
			if len(doc.Meshes[0].Primitives) > 1 {
				name = streamNameFor(streamName, pi)
			}
			appendStream(name, data)
			components[streamName] = true
		}
		var indexCount uint32
		if prim.Indices != nil {
			data, count, err := readAccessor(*prim.Indices)
			if err != nil {
				return nil, err
			}
			indexCount = uint32(count)
			name := "vertex"
			if len(doc.Meshes[0].Primitives) > 1 {
				name = streamNameFor("vertex", pi)
			}
			appendStream(name, data)
		}
		var variantID string
		if asset.Sidecar != nil {
			if variants, ok := asset.Sidecar["variants"].([]any); ok && pi < len(variants) {
				if s, ok := variants[pi].(string); ok {
					variantID = s
				}
			}
		}
		primitives = append(primitives, Primitive{
			VertexCount: vertexCount,
			IndexCount:  indexCount,
			VariantID:   variantID,
		})
	}

	streamNames := make([]string, 0, len(components))
	for _, name := range []string{"position", "normal", "tangent", "uv", "color"} {
		if components[name] {
			streamNames = append(streamNames, name)
		}
	}

	model := Mesh{
		Components: streamNames,
		Streams:    []string{"vertex", "meshlet", "triangle"},
		Primitives: primitives,
	}
	encoded, err := cos.JSON.Marshal(model)
	if err != nil {
		return nil, cos.ErrLoadFailed(err, "encoding mesh model for %q", asset.ID)
	}
	pa := resource.NewProcessedAsset(asset.ID, model.GetClass(), encoded, payload).WithStreams(streamDefs)
	return []*resource.ProcessedAsset{pa}, nil
}

func streamNameFor(base string, primitiveIndex int) string {
	if primitiveIndex == 0 {
		return base
	}
	return base + "." + itoa(primitiveIndex)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// splitGLB parses the GLB binary container: a 12-byte header (magic
// "glTF", version, total length) followed by a JSON chunk and an
// optional BIN chunk, each prefixed by a (length, type) pair. A bare
// glTF JSON file with no GLB wrapper is also accepted, in which case
// binChunk is empty (no external buffer resolution is attempted, since
// assets are resolved as single opaque byte blobs per spec.md §4.B).
func splitGLB(data []byte) (jsonChunk, binChunk []byte, err error) {
	if len(data) >= 4 && string(data[0:4]) == "glTF" {
		if len(data) < 12 {
			return nil, nil, cos.NewErr(cos.KindLoadFailed, "glb: truncated header")
		}
		total := binary.LittleEndian.Uint32(data[8:12])
		if int(total) > len(data) {
			return nil, nil, cos.NewErr(cos.KindLoadFailed, "glb: truncated file")
		}
		offset := 12
		for offset+8 <= len(data) {
			chunkLen := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
			chunkType := string(data[offset+4 : offset+8])
			start := offset + 8
			end := start + chunkLen
			if end > len(data) {
				return nil, nil, cos.NewErr(cos.KindLoadFailed, "glb: chunk overruns file")
			}
			switch chunkType {
			case "JSON":
				jsonChunk = data[start:end]
			case "BIN\x00":
				binChunk = data[start:end]
			}
			offset = end
		}
		if jsonChunk == nil {
			return nil, nil, cos.NewErr(cos.KindLoadFailed, "glb: missing JSON chunk")
		}
		return jsonChunk, binChunk, nil
	}
	return data, nil, nil
}
