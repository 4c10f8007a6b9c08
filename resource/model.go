package resource

// StreamDescription names a non-overlapping sub-range of a resource's
// binary payload, e.g. a vertex stream or an index stream.
type StreamDescription struct {
	Name   string `json:"name"`
	Offset uint64 `json:"offset"`
	Size   uint64 `json:"size"`
}

// ProcessedAsset is the output of a bake handler: a serialized model, its
// class tag, and the binary payload the runtime will stream on demand.
// Grounded on the Rust original's resource-management/src/lib.rs
// ProcessedAsset.
type ProcessedAsset struct {
	ID      ID
	Class   string
	Model   []byte // serialized model (JSON via cos.JSON)
	Payload []byte
	Streams []StreamDescription
}

func NewProcessedAsset(id ID, class string, model []byte, payload []byte) *ProcessedAsset {
	return &ProcessedAsset{ID: id, Class: class, Model: model, Payload: payload}
}

func (p *ProcessedAsset) WithStreams(streams []StreamDescription) *ProcessedAsset {
	p.Streams = streams
	return p
}

// SerializableResource is the record persisted in the metadata store: the
// wire/on-disk shape of a ProcessedAsset plus its content hash and size.
// Grounded on the Rust original's SerializableResource and spec.md §6.2.
type SerializableResource struct {
	ID      string              `json:"id"`
	Hash    uint64              `json:"hash"`
	Class   string              `json:"class"`
	Size    uint64              `json:"size"`
	Model   []byte              `json:"model"`
	Streams []StreamDescription `json:"streams,omitempty"`
}

// Model is implemented by every handler-specific metadata type (Audio,
// Image, Mesh, Material, Shader, Variant, ...). GetClass names the static
// class tag a resource of this type is stored and queried under.
type Model interface {
	GetClass() string
}

// Resource ties a concrete resource type to the Model used to serialize
// it, mirroring the Rust original's `Resource` trait.
type Resource[M Model] interface {
	GetClass() string
}
