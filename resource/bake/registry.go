package bake

import "github.com/byte-engine/engine/resource"

// NewRegistry returns the canonical handler set, keyed by the extension
// each handler declares.
func NewRegistry() map[string]resource.Handler {
	handlers := []resource.Handler{
		AudioHandler{},
		ImageHandler{},
		MeshHandler{},
		NewMaterialHandler(),
	}
	reg := make(map[string]resource.Handler, len(handlers))
	for _, h := range handlers {
		for _, ext := range h.Extensions() {
			reg[ext] = h
		}
	}
	return reg
}
