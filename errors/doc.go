// Package errors provides structured error types for the avm-codec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/ABI type names, and cause chain.
//
// The four codec kinds are:
//   - KindMalformedTypeSignature: unparseable ABI type string
//   - KindTypeMismatch: value incompatible with the declared type
//   - KindMalformedEncoding: bytes do not form a valid encoding
//   - KindEmptyInput: decode requested on zero bytes
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("args", "0").
//		GoType("string").
//		ABIType("uint64").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "uint64")
//	err := errors.Truncated(path, 8, 3)
//
// Kind sentinels match across phases:
//
//	if stderrors.Is(err, errors.ErrMalformedEncoding) { ... }
package errors
