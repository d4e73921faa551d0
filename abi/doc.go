// Package abi provides ARC-4 type descriptors and the ABI byte codec used
// for smart-contract arguments and return values.
//
// # Types
//
// A Type is an immutable tree parsed from a signature:
//
//	t, err := abi.TypeOf("(uint64,bool[],string)")
//
// The closed set of kinds is uint<N>, ufixed<N>x<M>, byte, bool, address,
// string, T[N], T[] and tuples. Struct types are tuples carrying field
// names; the names never affect equality or encoding.
//
// # Encoding
//
//	Type            Width
//	──────────────────────────────────────────
//	uint<N>         N/8 bytes, big-endian
//	ufixed<N>x<M>   N/8 bytes, raw integer
//	byte            1
//	bool            1 (0x80 or 0x00)
//	address         32
//	string          2-byte length + UTF-8 bytes
//	T[N]            tuple of N T
//	T[]             2-byte count + tuple of count T
//
// Tuples use a head/tail layout. The head holds each static child in place,
// packs runs of up to eight bools into one byte (most significant bit
// first), and holds a 2-byte offset for each dynamic child. Offsets count
// from the start of the tuple; the tail holds the dynamic children in order.
//
// # Values
//
// Value mirrors Type. FromGo builds one from plain Go data:
//
//	v, err := abi.FromGo([]any{uint64(7), []bool{true}, "hi"}, t)
//	data, err := abi.Encode(v, t)
//	back, err := abi.Decode(data, t)
//
// Decoding consumes the whole input and rejects truncated data, leftover
// bytes, and offsets that move backwards, leave gaps, or point past the end.
//
// # Methods
//
// MethodFromSignature parses "name(args)ret", computes the selector and
// encodes call arguments, packing arguments past the fifteenth into a tuple.
// DecodeReturn reads return values from logs prefixed with 0x151f7c75.
//
// # Concurrency
//
// All functions are pure. Parser adds an LRU cache of parsed signatures and
// is safe for concurrent use.
package abi
