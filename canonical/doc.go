// Package canonical provides the deterministic MessagePack map encoding used
// for transactions and node-protocol objects.
//
// # Encoding rules
//
// Encode produces exactly one byte sequence per logical value:
//
//   - map keys are sorted by raw byte order
//   - entries whose value is empty are omitted, recursively: zero integers,
//     false, empty strings and byte strings, all-zero fixed byte arrays,
//     nil, empty lists, and maps that are empty after filtering
//   - list elements are kept in order, zeros included
//   - string is written as msgpack str, types.Bytes and []byte as bin
//   - integers use the smallest unsigned form
//
// Integers that do not fit 64 bits, and types.Uint values in ModeBig, are
// written as extension type BigUintExtType (1) whose payload is the
// minimal big-endian magnitude.
//
// # Decoding
//
// Decode accepts any valid msgpack map with string keys. Integers decode to
// types.Uint, bin to types.Bytes, str to string, and extension 1 to a
// ModeBig types.Uint. Empty input, trailing bytes, duplicate keys, unknown
// extension types and nesting beyond Config.MaxDepth are errors.
//
//	data, err := canonical.Encode(canonical.Map{"amt": uint64(5), "note": []byte("hi")})
//	m, err := canonical.Decode(data)
//
// # Configuration
//
// The package functions use DefaultConfig. New builds a Codec with its own
// Config; a Codec is safe for concurrent use.
package canonical
