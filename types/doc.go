// Package types holds the value primitives shared by the ABI and canonical
// map codecs.
//
// # Integers
//
// Uint is an immutable unsigned integer of up to 512 bits. It carries a Mode
// recording whether it came from (or should go to) a plain machine-word
// encoding or the big-integer extension. Mode never affects equality.
//
//	u := types.NewUint(1 << 63)
//	big, _ := types.UintFromBig(b)
//
// # Byte strings
//
// Bytes and Address keep raw binary distinct from text. Address renders in
// the 58-character checksummed base32 form:
//
//	addr, err := types.AddressFromString("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAY5HFKQ")
//
// # Equality
//
// Equal is the comparison used by both codecs and their round-trip tests.
package types
