package resource

import "github.com/byte-engine/engine/cmn/cos"

// Reader is the minimal payload-reading capability a storage backend
// exposes to a Reference. It mirrors the Rust original's single-method
// reader trait: read_into(optional stream descriptor list, target).
type Reader interface {
	ReadInto(streams []StreamDescription, target ReadTarget) error
}

// ReadTarget dispatches Reference.Load's destination per spec.md §4.B's
// Loading subresources section.
type ReadTarget interface {
	isReadTarget()
}

// BufferTarget copies the payload's prefix that fits into a caller-owned
// buffer.
type BufferTarget struct {
	Buf []byte
}

func (BufferTarget) isReadTarget() {}

// BoxTarget is filled with an engine-allocated buffer sized to the
// resource.
type BoxTarget struct {
	Box []byte
}

func (*BoxTarget) isReadTarget() {}

// StreamTarget names one destination slice for a named stream.
type StreamTarget struct {
	Name string
	Buf  []byte
}

// StreamsTarget seeks to each named stream's offset and reads Size bytes
// into the corresponding mutable slice.
type StreamsTarget struct {
	Targets []StreamTarget
}

func (StreamsTarget) isReadTarget() {}

// Reference is a typed, runtime view over a processed asset: id, content
// hash, size, the deserialized model, and a reader positioned at the
// payload. Grounded on the Rust original's resource-management/src/reference.rs.
type Reference[T Model] struct {
	ID      ID
	Hash    uint64
	Size    uint64
	Value   T
	Streams []StreamDescription
	reader  Reader
}

func NewReference[T Model](id ID, hash, size uint64, value T, streams []StreamDescription, reader Reader) *Reference[T] {
	return &Reference[T]{ID: id, Hash: hash, Size: size, Value: value, Streams: streams, reader: reader}
}

// Load streams the payload into target, per spec.md §4.B.
func (r *Reference[T]) Load(target ReadTarget) error {
	if r.reader == nil {
		return cos.NewErr(cos.KindLoadFailed, "reference %q has no reader", r.ID)
	}
	return r.reader.ReadInto(r.Streams, target)
}

// ReferenceModel is the serialized form of a Reference, embedded inside
// other baked resources to form cross-references (e.g. a Mesh primitive's
// Variant reference, a Material's Shader references).
type ReferenceModel[M Model] struct {
	ID      string              `json:"id"`
	Hash    uint64              `json:"hash"`
	Size    uint64              `json:"size"`
	Class   string              `json:"class"`
	Model   []byte              `json:"model"`
	Streams []StreamDescription `json:"streams,omitempty"`
}
