// Package avmcodec provides byte-exact codecs for the two wire formats
// Algorand applications exchange: the ARC-4 ABI encoding of smart-contract
// arguments and return values, and the canonical MessagePack map encoding
// of transactions and node-protocol objects.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	avmcodec/            Root package with the top-level entry points
//	├── abi/             ARC-4 type descriptors, values, methods, structs
//	├── canonical/       Deterministic msgpack map codec
//	├── model/           Declarative struct ↔ canonical map field lists
//	├── txn/             Transactions, signed transactions, IDs, groups, fees
//	├── types/           Arbitrary-precision Uint, Bytes, Address, Equal
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Encode an ABI tuple:
//
//	t, err := abi.TypeOf("(uint64,string)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := avmcodec.EncodeABI([]any{uint64(5), "ab"}, t)
//	// data = 00 00 00 00 00 00 00 05 00 0a 00 02 61 62
//
// Encode a canonical map:
//
//	data, err := avmcodec.EncodeCanonicalMap(canonical.Map{"amt": uint64(5), "fee": 0})
//	// the zero fee is omitted: 81 a3 61 6d 74 05
//
// # Errors
//
// Every failure is an *errors.Error carrying a phase, a kind, and the path
// to the offending field. Match kinds with the standard library:
//
//	if stderrors.Is(err, errors.ErrMalformedEncoding) { ... }
//
// # Concurrency
//
// All codec functions are pure and safe for concurrent use. abi.Parser
// caches parsed signatures behind a lock.
package avmcodec
