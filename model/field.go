package model

import (
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/avm-codec/canonical"
	"github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
)

// Field maps one member of T to a wire tag. Fields are built by the
// constructors in this package and are immutable.
type Field[T any] struct {
	Name     string
	Tag      string
	Optional bool
	Flatten  bool

	encode func(*T) (any, error)
	decode func(*T, any, []string) error
	// tags lists the wire keys a flattened field reads from its parent map.
	tags []string
}

// Flat returns a copy of f whose nested map is merged into the parent map
// instead of being written under f.Tag. Only object fields can be flattened.
func (f Field[T]) Flat() Field[T] {
	f.Flatten = true
	return f
}

// Uint64 maps a uint64 member.
func Uint64[T any](name, tag string, get func(*T) *uint64) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			n, err := asUint64(w, path)
			if err != nil {
				return err
			}
			*get(v) = n
			return nil
		},
	}
}

// Uint32 maps a uint32 member; wire values above 2^32-1 are rejected.
func Uint32[T any](name, tag string, get func(*T) *uint32) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			n, err := asUint64(w, path)
			if err != nil {
				return err
			}
			if n > 0xffffffff {
				return malformed(path, "value %d overflows uint32", n)
			}
			*get(v) = uint32(n)
			return nil
		},
	}
}

// BigUint maps an arbitrary-precision integer member.
func BigUint[T any](name, tag string, get func(*T) *types.Uint) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			u, ok, err := types.AsUint(w)
			if err != nil || !ok {
				return mismatch(path, w, "unsigned integer")
			}
			*get(v) = u
			return nil
		},
	}
}

// Bool maps a bool member.
func Bool[T any](name, tag string, get func(*T) *bool) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			b, ok := w.(bool)
			if !ok {
				return mismatch(path, w, "bool")
			}
			*get(v) = b
			return nil
		},
	}
}

// String maps a string member. Wire bin values holding valid UTF-8 are
// accepted as well.
func String[T any](name, tag string, get func(*T) *string) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			switch s := w.(type) {
			case string:
				*get(v) = s
				return nil
			case types.Bytes:
				if utf8.Valid(s) {
					*get(v) = string(s)
					return nil
				}
			}
			return mismatch(path, w, "string")
		},
	}
}

// Bytes maps a variable-length byte string member.
func Bytes[T any](name, tag string, get func(*T) *[]byte) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return types.Bytes(*get(v)), nil
		},
		decode: func(v *T, w any, path []string) error {
			b, err := asBytes(w, -1, path)
			if err != nil {
				return err
			}
			*get(v) = b
			return nil
		},
	}
}

// Fixed32 maps a [32]byte member such as a hash or a participation key.
// The all-zero array is omitted on the wire.
func Fixed32[T any](name, tag string, get func(*T) *[32]byte) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			b, err := asBytes(w, 32, path)
			if err != nil {
				return err
			}
			copy(get(v)[:], b)
			return nil
		},
	}
}

// Fixed64 maps a [64]byte member such as a signature or state proof key.
func Fixed64[T any](name, tag string, get func(*T) *[64]byte) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			b, err := asBytes(w, 64, path)
			if err != nil {
				return err
			}
			copy(get(v)[:], b)
			return nil
		},
	}
}

// Addr maps an account address member.
func Addr[T any](name, tag string, get func(*T) *types.Address) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			b, err := asBytes(w, types.AddressLength, path)
			if err != nil {
				return err
			}
			copy(get(v)[:], b)
			return nil
		},
	}
}

// Uint64List maps a []uint64 member.
func Uint64List[T any](name, tag string, get func(*T) *[]uint64) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			return *get(v), nil
		},
		decode: func(v *T, w any, path []string) error {
			items, err := asList(w, path)
			if err != nil {
				return err
			}
			out := make([]uint64, len(items))
			for i, item := range items {
				if out[i], err = asUint64(item, index(path, i)); err != nil {
					return err
				}
			}
			*get(v) = out
			return nil
		},
	}
}

// BytesList maps a [][]byte member such as application arguments.
func BytesList[T any](name, tag string, get func(*T) *[][]byte) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			src := *get(v)
			if len(src) == 0 {
				return nil, nil
			}
			out := make([]any, len(src))
			for i, b := range src {
				out[i] = types.Bytes(b)
			}
			return out, nil
		},
		decode: func(v *T, w any, path []string) error {
			items, err := asList(w, path)
			if err != nil {
				return err
			}
			out := make([][]byte, len(items))
			for i, item := range items {
				if out[i], err = asBytes(item, -1, index(path, i)); err != nil {
					return err
				}
			}
			*get(v) = out
			return nil
		},
	}
}

// AddressList maps a []types.Address member.
func AddressList[T any](name, tag string, get func(*T) *[]types.Address) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			src := *get(v)
			if len(src) == 0 {
				return nil, nil
			}
			out := make([]any, len(src))
			for i, a := range src {
				// list elements keep zero addresses, so write raw bytes
				out[i] = a.Bytes()
			}
			return out, nil
		},
		decode: func(v *T, w any, path []string) error {
			items, err := asList(w, path)
			if err != nil {
				return err
			}
			out := make([]types.Address, len(items))
			for i, item := range items {
				b, err := asBytes(item, types.AddressLength, index(path, i))
				if err != nil {
					return err
				}
				copy(out[i][:], b)
			}
			*get(v) = out
			return nil
		},
	}
}

// Object maps a nested struct member through its own Model.
func Object[T, S any](name, tag string, get func(*T) *S, m *Model[S]) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		tags: m.Tags(),
		encode: func(v *T) (any, error) {
			return m.ToMap(get(v))
		},
		decode: func(v *T, w any, path []string) error {
			src, err := asMap(w, path)
			if err != nil {
				return err
			}
			return m.fromMap(src, get(v), path)
		},
	}
}

// ObjectPtr maps an optional nested struct held by pointer. The member is
// left nil when the wire map carries none of the nested fields.
func ObjectPtr[T, S any](name, tag string, get func(*T) **S, m *Model[S]) Field[T] {
	return Field[T]{
		Name:     name,
		Tag:      tag,
		Optional: true,
		tags:     m.Tags(),
		encode: func(v *T) (any, error) {
			p := *get(v)
			if p == nil {
				return nil, nil
			}
			return m.ToMap(p)
		},
		decode: func(v *T, w any, path []string) error {
			src, err := asMap(w, path)
			if err != nil {
				return err
			}
			p := new(S)
			if err := m.fromMap(src, p, path); err != nil {
				return err
			}
			*get(v) = p
			return nil
		},
	}
}

// ObjectList maps a slice of nested structs. Elements are written even
// when empty so positions survive a round trip.
func ObjectList[T, S any](name, tag string, get func(*T) *[]S, m *Model[S]) Field[T] {
	return Field[T]{
		Name: name,
		Tag:  tag,
		encode: func(v *T) (any, error) {
			src := *get(v)
			if len(src) == 0 {
				return nil, nil
			}
			out := make([]any, len(src))
			for i := range src {
				em, err := m.ToMap(&src[i])
				if err != nil {
					return nil, errors.WithPath(err, tag, strconv.Itoa(i))
				}
				out[i] = em
			}
			return out, nil
		},
		decode: func(v *T, w any, path []string) error {
			items, err := asList(w, path)
			if err != nil {
				return err
			}
			out := make([]S, len(items))
			for i, item := range items {
				ip := index(path, i)
				src, err := asMap(item, ip)
				if err != nil {
					return err
				}
				if err := m.fromMap(src, &out[i], ip); err != nil {
					return err
				}
			}
			*get(v) = out
			return nil
		},
	}
}

func asUint64(w any, path []string) (uint64, error) {
	u, ok, err := types.AsUint(w)
	if err != nil || !ok {
		return 0, mismatch(path, w, "uint64")
	}
	n, fits := u.Uint64()
	if !fits {
		return 0, malformed(path, "value %s overflows uint64", u.String())
	}
	return n, nil
}

// asBytes accepts bin values, and str values for leniency. size < 0 allows
// any length.
func asBytes(w any, size int, path []string) ([]byte, error) {
	var b []byte
	switch x := w.(type) {
	case types.Bytes:
		b = x
	case []byte:
		b = x
	case string:
		b = []byte(x)
	default:
		return nil, mismatch(path, w, "bytes")
	}
	if size >= 0 && len(b) != size {
		return nil, malformed(path, "expected %d bytes, got %d", size, len(b))
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func asList(w any, path []string) ([]any, error) {
	items, ok := w.([]any)
	if !ok {
		return nil, mismatch(path, w, "list")
	}
	return items, nil
}

func asMap(w any, path []string) (canonical.Map, error) {
	m, ok := w.(canonical.Map)
	if !ok {
		return nil, mismatch(path, w, "map")
	}
	return m, nil
}

func index(path []string, i int) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, strconv.Itoa(i))
}

func mismatch(path []string, w any, want string) error {
	return errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
		Path(path...).
		Value(w).
		Detail("expected %s, got %T", want, w).
		Build()
}

func malformed(path []string, detail string, args ...any) error {
	return errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
		Path(path...).
		Detail(detail, args...).
		Build()
}
