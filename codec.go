package avmcodec

import (
	"github.com/wippyai/avm-codec/abi"
	"github.com/wippyai/avm-codec/canonical"
)

// EncodeABI encodes x under t. x is an abi.Value or any Go value accepted
// by abi.FromGo.
func EncodeABI(x any, t abi.Type) ([]byte, error) {
	return abi.EncodeGo(x, t)
}

// DecodeABI decodes data under t.
func DecodeABI(data []byte, t abi.Type) (abi.Value, error) {
	return abi.Decode(data, t)
}

// EncodeCanonicalMap serializes m with the canonical map rules.
func EncodeCanonicalMap(m canonical.Map) ([]byte, error) {
	return canonical.Encode(m)
}

// DecodeCanonicalMap parses a msgpack map.
func DecodeCanonicalMap(data []byte) (canonical.Map, error) {
	return canonical.Decode(data)
}
