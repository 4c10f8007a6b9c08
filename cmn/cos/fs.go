package cos

import (
	jsoniter "github.com/json-iterator/go"
)

// JSON is the shared jsoniter configuration used across the resource
// pipeline for sidecar, metadata, and material decoding.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// UnsafeB and UnsafeS convert between string and []byte. They keep the
// names of the teacher's zero-copy helpers but are plain conversions:
// each call copies the bytes and allocates.
func UnsafeB(s string) []byte {
	return []byte(s)
}

func UnsafeS(b []byte) string {
	return string(b)
}

// Plural returns "s" when n != 1, else "".
func Plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
