package bake

import (
	"github.com/byte-engine/engine/cmn/cos"
	"github.com/byte-engine/engine/resource"
)

// ShaderStage names the pipeline stage a Shader resource targets.
type ShaderStage string

const (
	ShaderStageVertex   ShaderStage = "Vertex"
	ShaderStageFragment ShaderStage = "Fragment"
	ShaderStageCompute  ShaderStage = "Compute"
)

// Shader is the baked model for one compiled shader stage. The shader
// generator (besl) is out of scope per spec.md §1; Interface is produced
// by the ShaderCompiler this handler depends on.
type Shader struct {
	Stage     ShaderStage `json:"stage"`
	Interface string      `json:"interface"`
}

func (Shader) GetClass() string { return "Shader" }

// AlphaMode mirrors the glTF/Material alpha modes.
type AlphaMode string

const (
	AlphaModeOpaque AlphaMode = "Opaque"
	AlphaModeMask   AlphaMode = "Mask"
	AlphaModeBlend  AlphaMode = "Blend"
)

// Material is the baked model for a Material JSON asset.
type Material struct {
	DoubleSided bool                `json:"double_sided"`
	AlphaMode   AlphaMode           `json:"alpha_mode"`
	ShaderIDs   []string            `json:"shader_ids"`
	Parameters  map[string]any      `json:"parameters,omitempty"`
}

func (Material) GetClass() string { return "Material" }

// Variant binds a Material to per-draw overrides (alpha mode, variable
// bindings) — the Rust original's material.rs Variant struct.
type Variant struct {
	MaterialID string         `json:"material_id"`
	Variables  map[string]any `json:"variables,omitempty"`
	AlphaMode  AlphaMode      `json:"alpha_mode"`
}

func (Variant) GetClass() string { return "Variant" }

// materialSource is the on-disk Material JSON shape this handler parses.
type materialSource struct {
	DoubleSided bool           `json:"double_sided"`
	AlphaMode   string         `json:"alpha_mode"`
	Shaders     []shaderSource `json:"shaders"`
	Parameters  map[string]any `json:"parameters"`
}

type shaderSource struct {
	Stage  string `json:"stage"`
	Source string `json:"source"`
}

// ShaderCompiler turns raw shader source into a pipeline-stage interface
// description. besl (the real shader DSL compiler) is out of scope; the
// PassthroughCompiler stand-in tags the raw source as its own interface,
// enough to exercise the Material/Shader resource graph end to end.
type ShaderCompiler interface {
	Compile(stage ShaderStage, source string) (string, error)
}

type PassthroughCompiler struct{}

func (PassthroughCompiler) Compile(_ ShaderStage, source string) (string, error) {
	return source, nil
}

// MaterialHandler parses Material JSON assets, grounded on the Rust
// original's material.rs Material/Variant model shapes.
type MaterialHandler struct {
	Compiler ShaderCompiler
}

func NewMaterialHandler() *MaterialHandler {
	return &MaterialHandler{Compiler: PassthroughCompiler{}}
}

func (MaterialHandler) Extensions() []string { return []string{"material", "json"} }

func (h *MaterialHandler) Bake(asset *resource.Asset) ([]*resource.ProcessedAsset, error) {
	var src materialSource
	if err := cos.JSON.Unmarshal(asset.Bytes, &src); err != nil {
		return nil, cos.ErrLoadFailed(err, "decoding material JSON for %q", asset.ID)
	}

	compiler := h.Compiler
	if compiler == nil {
		compiler = PassthroughCompiler{}
	}

	var processed []*resource.ProcessedAsset
	shaderIDs := make([]string, 0, len(src.Shaders))
	for i, s := range src.Shaders {
		stage := ShaderStage(s.Stage)
		iface, err := compiler.Compile(stage, s.Source)
		if err != nil {
			return nil, cos.ErrLoadFailed(err, "compiling shader stage %s for %q", s.Stage, asset.ID)
		}
		shaderModel := Shader{Stage: stage, Interface: iface}
		encoded, err := cos.JSON.Marshal(shaderModel)
		if err != nil {
			return nil, cos.ErrLoadFailed(err, "encoding shader model for %q", asset.ID)
		}
		shaderID := resource.ID(asset.ID.Base()).WithFragment(itoa(i) + "." + s.Stage)
		processed = append(processed, resource.NewProcessedAsset(shaderID, shaderModel.GetClass(), encoded, []byte(iface)))
		shaderIDs = append(shaderIDs, string(shaderID))
	}

	alphaMode := AlphaMode(src.AlphaMode)
	if alphaMode == "" {
		alphaMode = AlphaModeOpaque
	}
	material := Material{
		DoubleSided: src.DoubleSided,
		AlphaMode:   alphaMode,
		ShaderIDs:   shaderIDs,
		Parameters:  src.Parameters,
	}
	encoded, err := cos.JSON.Marshal(material)
	if err != nil {
		return nil, cos.ErrLoadFailed(err, "encoding material model for %q", asset.ID)
	}
	processed = append(processed, resource.NewProcessedAsset(asset.ID, material.GetClass(), encoded, nil))

	return processed, nil
}
