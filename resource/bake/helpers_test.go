package bake_test

import "github.com/byte-engine/engine/cmn/cos"

func jsonUnmarshal(data []byte, v any) error {
	return cos.JSON.Unmarshal(data, v)
}
