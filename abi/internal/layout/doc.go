// Package layout provides ARC-4 head layout calculations for tuples.
//
// This package computes, for an ordered list of children, which region of the
// head each child occupies. The encoder and decoder both walk the same slots,
// so packing rules live in exactly one place.
//
// # Layout Rules
//
// ARC-4 defines the head as:
//   - Static children: their full fixed-width encoding in place
//   - Bool runs: up to eight consecutive bools share one byte, MSB first
//   - Dynamic children: a 2-byte big-endian offset into the tail
//
// # Usage
//
//	info, err := layout.Calc(fields)
//	// info.HeadSize, info.Slots, info.Static() available
//
// This package is internal to abi.
package layout
