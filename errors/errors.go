package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // type signature parsing
	PhaseEncode   Phase = "encode"   // value to bytes
	PhaseDecode   Phase = "decode"   // bytes to value
	PhaseValidate Phase = "validate" // transaction validation
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedTypeSignature Kind = "malformed_type_signature"
	KindTypeMismatch           Kind = "type_mismatch"
	KindMalformedEncoding      Kind = "malformed_encoding"
	KindEmptyInput             Kind = "empty_input"
	KindValidation             Kind = "validation"
	KindUnsupported            Kind = "unsupported"
)

// Sentinels match any error of their kind regardless of phase.
var (
	ErrMalformedTypeSignature = &Error{Kind: KindMalformedTypeSignature}
	ErrTypeMismatch           = &Error{Kind: KindTypeMismatch}
	ErrMalformedEncoding      = &Error{Kind: KindMalformedEncoding}
	ErrEmptyInput             = &Error{Kind: KindEmptyInput}
	ErrValidation             = &Error{Kind: KindValidation}
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	ABIType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.ABIType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ABIType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", ABI type ")
			b.WriteString(e.ABIType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("ABI type ")
			b.WriteString(e.ABIType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ABIType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ABIType sets the ABI type signature
func (b *Builder) ABIType(t string) *Builder {
	b.err.ABIType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MalformedTypeSignature creates a signature parse error
func MalformedTypeSignature(signature, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedTypeSignature,
		Value:  signature,
		Detail: fmt.Sprintf("%q: %s", signature, detail),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, abiType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		ABIType: abiType,
	}
}

// MalformedEncoding creates a decode error for invalid input bytes
func MalformedEncoding(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedEncoding,
		Path:   path,
		Detail: detail,
	}
}

// Truncated creates a malformed encoding error for input that ended early
func Truncated(path []string, need, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformedEncoding,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	kind := KindMalformedEncoding
	if phase == PhaseEncode {
		kind = KindTypeMismatch
	}
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// EmptyInput creates the error returned when decoding zero bytes
func EmptyInput(detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindEmptyInput,
		Detail: detail,
	}
}

// Overflow creates a value-does-not-fit error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		ABIType: targetType,
		Detail:  fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:   value,
	}
}

// Validation creates a transaction validation error
func Validation(path []string, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindValidation,
		Path:   path,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithPath returns err with prefix prepended to its path when err is an *Error.
// Other errors are returned unchanged.
func WithPath(err error, prefix ...string) error {
	e, ok := err.(*Error)
	if !ok || len(prefix) == 0 {
		return err
	}
	cp := *e
	cp.Path = append(append(make([]string, 0, len(prefix)+len(e.Path)), prefix...), e.Path...)
	return &cp
}
