package resource

import (
	"os"
	"path/filepath"

	"github.com/byte-engine/engine/cmn/cos"
)

// Asset is the raw input read from an AssetSource plus its optional
// sidecar metadata, grounded on spec.md §4.B's resolve() contract.
type Asset struct {
	ID        ID
	Bytes     []byte
	Sidecar   map[string]any // decoded .bead JSON, nil if absent
	Extension string
}

// AssetSource is a pure source of raw asset bytes: a filesystem directory
// or an in-memory mock, mirroring spec.md's "filesystem or memory mock"
// asset storage.
type AssetSource interface {
	Resolve(id ID) (*Asset, error)
}

// FSAssetSource resolves assets relative to a root directory.
type FSAssetSource struct {
	Root string
}

func NewFSAssetSource(root string) *FSAssetSource {
	return &FSAssetSource{Root: root}
}

func (s *FSAssetSource) Resolve(id ID) (*Asset, error) {
	base := id.Base()
	path := filepath.Join(s.Root, base)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cos.ErrNotFound("asset %q", base)
		}
		return nil, cos.ErrLoadFailed(err, "reading asset %q", base)
	}

	asset := &Asset{ID: id, Bytes: raw, Extension: id.Extension()}

	sidecarPath := path + ".bead"
	if raw, err := os.ReadFile(sidecarPath); err == nil {
		var sidecar map[string]any
		if jerr := cos.JSON.Unmarshal(raw, &sidecar); jerr != nil {
			return nil, cos.ErrLoadFailed(jerr, "parsing sidecar %q", sidecarPath)
		}
		asset.Sidecar = sidecar
	} else if !os.IsNotExist(err) {
		return nil, cos.ErrLoadFailed(err, "reading sidecar %q", sidecarPath)
	}

	return asset, nil
}

// MemAssetSource is an in-memory mock source, used by tests and by
// handlers that synthesize assets without touching disk.
type MemAssetSource struct {
	Assets map[ID]*Asset
}

func NewMemAssetSource() *MemAssetSource {
	return &MemAssetSource{Assets: make(map[ID]*Asset)}
}

func (s *MemAssetSource) Put(id ID, data []byte, sidecar map[string]any) {
	s.Assets[id] = &Asset{ID: id, Bytes: data, Sidecar: sidecar, Extension: id.Extension()}
}

func (s *MemAssetSource) Resolve(id ID) (*Asset, error) {
	a, ok := s.Assets[id]
	if !ok {
		return nil, cos.ErrNotFound("asset %q", id.Base())
	}
	return a, nil
}
