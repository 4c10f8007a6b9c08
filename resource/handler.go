package resource

// Handler bakes assets of the extensions it declares into one or more
// ProcessedAssets, per spec.md §4.B's "Bake contract per handler".
type Handler interface {
	Extensions() []string
	Bake(asset *Asset) ([]*ProcessedAsset, error)
}
