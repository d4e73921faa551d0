package types

import (
	"bytes"
	"crypto/sha512"
	"encoding/base32"

	"github.com/wippyai/avm-codec/errors"
)

const (
	// AddressLength is the raw public key size.
	AddressLength = 32
	// ChecksumLength is the number of hash bytes appended in the string form.
	ChecksumLength = 4
	// AddressStringLength is the length of the base32 form.
	AddressStringLength = 58
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Address is a 32-byte account public key.
type Address [AddressLength]byte

// ZeroAddress is the all-zero account.
var ZeroAddress Address

// IsZero reports whether a is all zeros.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Bytes returns a copy of the raw key.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressLength)
	copy(out, a[:])
	return out
}

// String renders base32(key || checksum) without padding.
func (a Address) String() string {
	buf := make([]byte, 0, AddressLength+ChecksumLength)
	buf = append(buf, a[:]...)
	buf = append(buf, checksum(a[:])...)
	return b32.EncodeToString(buf)
}

// AddressFromString parses the checksummed base32 form.
func AddressFromString(s string) (Address, error) {
	var a Address
	if len(s) != AddressStringLength {
		return a, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
			Value(s).
			Detail("address must be %d characters, got %d", AddressStringLength, len(s)).
			Build()
	}
	raw, err := b32.DecodeString(s)
	if err != nil {
		return a, errors.Wrap(errors.PhaseDecode, errors.KindMalformedEncoding, err, "address is not base32")
	}
	if len(raw) != AddressLength+ChecksumLength {
		return a, errors.MalformedEncoding(nil, "address decodes to wrong length")
	}
	copy(a[:], raw[:AddressLength])
	if !bytes.Equal(raw[AddressLength:], checksum(a[:])) {
		return a, errors.MalformedEncoding(nil, "address checksum mismatch")
	}
	// reject non-canonical trailing bits
	if a.String() != s {
		return a, errors.MalformedEncoding(nil, "address is not canonically encoded")
	}
	return a, nil
}

// AddressFromBytes copies a 32-byte key.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
			Detail("address must be %d bytes, got %d", AddressLength, len(b)).
			Build()
	}
	copy(a[:], b)
	return a, nil
}

// Digest is a 32-byte SHA-512/256 hash.
type Digest [32]byte

// IsZero reports whether d is all zeros.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// String renders d as unpadded base32.
func (d Digest) String() string {
	return b32.EncodeToString(d[:])
}

// Hash returns SHA-512/256 of the concatenated parts.
func Hash(parts ...[]byte) Digest {
	h := sha512.New512_256()
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func checksum(key []byte) []byte {
	sum := sha512.Sum512_256(key)
	return sum[len(sum)-ChecksumLength:]
}
