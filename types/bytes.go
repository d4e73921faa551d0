package types

import "encoding/hex"

// Bytes is a raw byte string. It is kept distinct from string so the
// canonical codec can emit bin rather than str.
type Bytes []byte

func (b Bytes) String() string {
	return hex.EncodeToString(b)
}

// Clone returns an independent copy.
func (b Bytes) Clone() Bytes {
	if b == nil {
		return nil
	}
	out := make(Bytes, len(b))
	copy(out, b)
	return out
}
