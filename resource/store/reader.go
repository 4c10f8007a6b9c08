package store

import (
	"io"
	"os"

	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/resource"
)

// PayloadReader implements resource.Reader over an open payload file,
// dispatching on the ReadTarget variant per spec.md §4.B's Loading
// subresources section.
type PayloadReader struct {
	f       *os.File
	streams []resource.StreamDescription
}

func (r *PayloadReader) Close() error { return r.f.Close() }

func (r *PayloadReader) ReadInto(streams []resource.StreamDescription, target resource.ReadTarget) error {
	switch t := target.(type) {
	case resource.BufferTarget:
		if _, err := r.f.ReadAt(t.Buf, 0); err != nil && err != io.EOF {
			return cos.ErrLoadFailed(err, "reading into buffer target")
		}
		return nil
	case *resource.BoxTarget:
		info, err := r.f.Stat()
		if err != nil {
			return cos.ErrLoadFailed(err, "stat payload")
		}
		buf := make([]byte, info.Size())
		if _, err := r.f.ReadAt(buf, 0); err != nil && err != io.EOF {
			return cos.ErrLoadFailed(err, "reading into box target")
		}
		t.Box = buf
		return nil
	case resource.StreamsTarget:
		descs := streams
		for _, st := range t.Targets {
			desc, ok := findStream(descs, st.Name)
			if !ok {
				return cos.NewErr(cos.KindLoadFailed, "unknown stream %q", st.Name)
			}
			n := int64(desc.Size)
			if int64(len(st.Buf)) < n {
				n = int64(len(st.Buf))
			}
			if n == 0 {
				continue
			}
			if _, err := r.f.ReadAt(st.Buf[:n], int64(desc.Offset)); err != nil && err != io.EOF {
				return cos.ErrLoadFailed(err, "reading stream %q", st.Name)
			}
		}
		return nil
	default:
		return cos.NewErr(cos.KindLoadFailed, "unsupported read target %T", target)
	}
}

func findStream(streams []resource.StreamDescription, name string) (resource.StreamDescription, bool) {
	for _, s := range streams {
		if s.Name == name {
			return s, true
		}
	}
	return resource.StreamDescription{}, false
}
