// Package manager ties an AssetSource, a handler registry, and a storage
// backend together into the top-level ResourceManager API spec.md §4.B
// describes: bake/request/list/delete/query.
package manager

import (
	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/cmn/nlog"
	"github.com/byte-engine/engine/resource"
	"github.com/byte-engine/engine/resource/store"
)

type Manager struct {
	assets   resource.AssetSource
	backend  *store.Backend
	handlers map[string]resource.Handler
}

func New(assets resource.AssetSource, backend *store.Backend, handlers map[string]resource.Handler) *Manager {
	return &Manager{assets: assets, backend: backend, handlers: handlers}
}

// Bake runs the handler chain for id and commits every resulting
// ProcessedAsset to the store.
func (m *Manager) Bake(id resource.ID) error {
	asset, err := m.assets.Resolve(id)
	if err != nil {
		return err
	}
	h, ok := m.handlers[id.Extension()]
	if !ok {
		return cos.ErrUnsupportedType("no handler for extension %q", id.Extension())
	}
	processed, err := h.Bake(asset)
	if err != nil {
		return err
	}
	for _, pa := range processed {
		if _, err := m.backend.Store(pa); err != nil {
			return err
		}
	}
	nlog.Infof("baked %q into %d resource(s)", id, len(processed))
	return nil
}

// List returns every resource id currently in the store.
func (m *Manager) List() ([]string, error) { return m.backend.List() }

// Delete removes a resource from the store.
func (m *Manager) Delete(id resource.ID) error { return m.backend.Delete(id) }

// Query scans the store for resources matching q.
func (m *Manager) Query(q *store.Query) ([]resource.SerializableResource, error) {
	return m.backend.Query(q)
}

// Wipe clears the entire store.
func (m *Manager) Wipe() error { return m.backend.Wipe() }

// Request returns a typed reference to id, baking it lazily if the store
// has no entry yet. M must be the handler's model type and must match the
// stored class tag.
func Request[M resource.Model](m *Manager, id resource.ID) (*resource.Reference[M], error) {
	rec, reader, err := m.backend.Read(id)
	if err != nil {
		if !cos.Is(err, cos.KindNotFound) {
			return nil, err
		}
		if bakeErr := m.Bake(id); bakeErr != nil {
			return nil, bakeErr
		}
		rec, reader, err = m.backend.Read(id)
		if err != nil {
			return nil, err
		}
	}

	var model M
	if err := cos.JSON.Unmarshal(rec.Model, &model); err != nil {
		return nil, cos.ErrDeserializationFailed(err, "decoding model for %q", id.Full())
	}
	if model.GetClass() != rec.Class {
		return nil, cos.ErrDeserializationFailed(nil, "class mismatch for %q: stored %s, requested %s", id.Full(), rec.Class, model.GetClass())
	}

	return resource.NewReference[M](id, rec.Hash, rec.Size, model, rec.Streams, reader), nil
}
