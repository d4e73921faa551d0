package types

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/wippyai/avm-codec/errors"
)

// Mode records how an unsigned integer was produced or should be emitted.
// Two values that differ only in Mode are equal.
type Mode uint8

const (
	// ModeNative fits a machine word and encodes as a plain msgpack integer.
	ModeNative Mode = iota
	// ModeBig is carried through the big-integer extension.
	ModeBig
)

func (m Mode) String() string {
	if m == ModeBig {
		return "big"
	}
	return "native"
}

// MaxUintBits bounds every integer the codecs accept (uint512).
const MaxUintBits = 512

// Uint is an immutable non-negative integer of up to 512 bits.
// The zero value is 0 in native mode.
type Uint struct {
	n    *big.Int // nil when the value fits lo
	lo   uint64
	mode Mode
}

// NewUint returns a native-mode integer.
func NewUint(v uint64) Uint {
	return Uint{lo: v}
}

// UintFromBig converts b, choosing native mode when it fits 64 bits.
// Negative values and values wider than 512 bits are rejected.
func UintFromBig(b *big.Int) (Uint, error) {
	if b == nil {
		return Uint{}, nil
	}
	if b.Sign() < 0 {
		return Uint{}, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Value(b.String()).
			Detail("negative integer %s", b.String()).
			Build()
	}
	if b.BitLen() > MaxUintBits {
		return Uint{}, errors.Overflow(errors.PhaseEncode, nil, b.String(), "uint512")
	}
	if b.IsUint64() {
		return Uint{lo: b.Uint64()}, nil
	}
	return Uint{n: new(big.Int).Set(b), mode: ModeBig}, nil
}

// UintFromBytes interprets data as a big-endian magnitude.
func UintFromBytes(data []byte) Uint {
	b := new(big.Int).SetBytes(data)
	if b.IsUint64() {
		return Uint{lo: b.Uint64()}
	}
	return Uint{n: b, mode: ModeBig}
}

// ParseUint parses a base-10 non-negative integer.
func ParseUint(s string) (Uint, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Uint{}, errors.New(errors.PhaseParse, errors.KindTypeMismatch).
			Value(s).
			Detail("invalid decimal integer %q", s).
			Build()
	}
	return UintFromBig(b)
}

// WithMode returns a copy of u tagged with m.
// Values wider than 64 bits are always ModeBig.
func (u Uint) WithMode(m Mode) Uint {
	if u.n != nil {
		m = ModeBig
	}
	u.mode = m
	return u
}

// Mode reports the representation tag.
func (u Uint) Mode() Mode { return u.mode }

// IsUint64 reports whether u fits in 64 bits.
func (u Uint) IsUint64() bool { return u.n == nil }

// Uint64 returns the value and whether it fit.
func (u Uint) Uint64() (uint64, bool) {
	if u.n != nil {
		return 0, false
	}
	return u.lo, true
}

// Big returns a fresh copy of u as a big.Int.
func (u Uint) Big() *big.Int {
	if u.n != nil {
		return new(big.Int).Set(u.n)
	}
	return new(big.Int).SetUint64(u.lo)
}

// BitLen returns the minimal number of bits needed to represent u.
func (u Uint) BitLen() int {
	if u.n != nil {
		return u.n.BitLen()
	}
	return bits.Len64(u.lo)
}

// IsZero reports whether u is 0.
func (u Uint) IsZero() bool {
	return u.n == nil && u.lo == 0
}

// Cmp compares magnitudes.
func (u Uint) Cmp(o Uint) int {
	if u.n == nil && o.n == nil {
		switch {
		case u.lo < o.lo:
			return -1
		case u.lo > o.lo:
			return 1
		}
		return 0
	}
	return u.Big().Cmp(o.Big())
}

// Equal compares by value, ignoring Mode.
func (u Uint) Equal(o Uint) bool {
	return u.Cmp(o) == 0
}

// Bytes returns the minimal big-endian magnitude. Zero is empty.
func (u Uint) Bytes() []byte {
	return u.Big().Bytes()
}

// FillBytes writes u big-endian into buf, zero-padding on the left.
// The caller must size buf to hold BitLen bits.
func (u Uint) FillBytes(buf []byte) []byte {
	return u.Big().FillBytes(buf)
}

func (u Uint) String() string {
	if u.n != nil {
		return u.n.String()
	}
	return new(big.Int).SetUint64(u.lo).String()
}

// AsUint extracts an integer from any Go integer kind, big.Int or Uint.
// ok is false for non-integer inputs; err is set for negative values.
func AsUint(v any) (u Uint, ok bool, err error) {
	switch n := v.(type) {
	case Uint:
		return n, true, nil
	case *Uint:
		if n == nil {
			return Uint{}, false, nil
		}
		return *n, true, nil
	case uint:
		return NewUint(uint64(n)), true, nil
	case uint8:
		return NewUint(uint64(n)), true, nil
	case uint16:
		return NewUint(uint64(n)), true, nil
	case uint32:
		return NewUint(uint64(n)), true, nil
	case uint64:
		return NewUint(n), true, nil
	case int:
		return signed(int64(n))
	case int8:
		return signed(int64(n))
	case int16:
		return signed(int64(n))
	case int32:
		return signed(int64(n))
	case int64:
		return signed(n)
	case *big.Int:
		if n == nil {
			return Uint{}, false, nil
		}
		u, err := UintFromBig(n)
		return u, true, err
	}
	return Uint{}, false, nil
}

func signed(v int64) (Uint, bool, error) {
	if v < 0 {
		return Uint{}, true, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Value(v).
			Detail("negative integer %d", v).
			Build()
	}
	return NewUint(uint64(v)), true, nil
}

// IsNegativeInt reports whether v is a signed Go integer below zero.
func IsNegativeInt(v any) (int64, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	default:
		return 0, false
	}
	return n, n < 0
}

// MaxUint64 is the largest native-mode value.
var MaxUint64 = NewUint(math.MaxUint64)
