package abi

import (
	"strconv"
	"strings"

	"github.com/wippyai/avm-codec/abi/internal/layout"
	"github.com/wippyai/avm-codec/errors"
)

const (
	MinUintBits     = 8
	MaxUintBits     = 512
	MinPrecision    = 1
	MaxPrecision    = 160
	MaxLength       = 1<<16 - 1 // element counts, lengths and offsets
	AddressByteSize = 32
	lengthPrefix    = layout.OffsetSize
)

// Type is an immutable ARC-4 type node. Construct it with TypeOf or the
// Make* functions; the zero value is not a valid type.
type Type struct {
	children  []Type
	fields    []string
	name      string
	length    int
	size      int // encoded width when static
	kind      Kind
	bitSize   uint16
	precision uint16
	dynamic   bool
}

var (
	byteType    = Type{kind: KindByte, size: 1}
	boolType    = Type{kind: KindBool, size: 1}
	addressType = Type{kind: KindAddress, size: AddressByteSize}
	stringType  = Type{kind: KindString, dynamic: true}
)

// MakeUintType returns uint<bits>.
func MakeUintType(bits int) (Type, error) {
	if bits%8 != 0 || bits < MinUintBits || bits > MaxUintBits {
		return Type{}, invalidType("uint"+strconv.Itoa(bits), "bit size must be a multiple of 8 in [8, 512]")
	}
	return Type{kind: KindUint, bitSize: uint16(bits), size: bits / 8}, nil
}

// MakeUfixedType returns ufixed<bits>x<precision>.
func MakeUfixedType(bits, precision int) (Type, error) {
	sig := "ufixed" + strconv.Itoa(bits) + "x" + strconv.Itoa(precision)
	if bits%8 != 0 || bits < MinUintBits || bits > MaxUintBits {
		return Type{}, invalidType(sig, "bit size must be a multiple of 8 in [8, 512]")
	}
	if precision < MinPrecision || precision > MaxPrecision {
		return Type{}, invalidType(sig, "precision must be in [1, 160]")
	}
	return Type{kind: KindUfixed, bitSize: uint16(bits), precision: uint16(precision), size: bits / 8}, nil
}

// ByteType returns byte.
func ByteType() Type { return byteType }

// BoolType returns bool.
func BoolType() Type { return boolType }

// AddressType returns address.
func AddressType() Type { return addressType }

// StringType returns string.
func StringType() Type { return stringType }

// MakeStaticArrayType returns elem[length].
func MakeStaticArrayType(elem Type, length int) (Type, error) {
	if err := elem.check(); err != nil {
		return Type{}, err
	}
	if length < 0 || length > MaxLength {
		return Type{}, invalidType(elem.String()+"["+strconv.Itoa(length)+"]", "array length must be in [0, 65535]")
	}
	t := Type{
		kind:     KindStaticArray,
		children: []Type{elem},
		length:   length,
		dynamic:  elem.dynamic,
	}
	if !t.dynamic {
		size, err := layout.RepeatedSize(elem.field(), length)
		if err != nil {
			return Type{}, invalidType(t.String(), err.Error())
		}
		t.size = size
	}
	return t, nil
}

// MakeDynamicArrayType returns elem[].
func MakeDynamicArrayType(elem Type) (Type, error) {
	if err := elem.check(); err != nil {
		return Type{}, err
	}
	return Type{kind: KindDynamicArray, children: []Type{elem}, dynamic: true}, nil
}

// MakeTupleType returns (elems...).
func MakeTupleType(elems ...Type) (Type, error) {
	if len(elems) > MaxLength {
		return Type{}, invalidType("(...)", "tuple has more than 65535 elements")
	}
	t := Type{kind: KindTuple, children: make([]Type, len(elems))}
	for i, e := range elems {
		if err := e.check(); err != nil {
			return Type{}, err
		}
		t.children[i] = e
		t.dynamic = t.dynamic || e.dynamic
	}
	if !t.dynamic {
		info, err := layout.Calc(t.childFields())
		if err != nil {
			return Type{}, invalidType(t.String(), err.Error())
		}
		t.size = info.HeadSize
	}
	return t, nil
}

func invalidType(sig, detail string) error {
	return errors.MalformedTypeSignature(sig, detail)
}

func (t Type) check() error {
	if t.IsZero() {
		return errors.New(errors.PhaseParse, errors.KindMalformedTypeSignature).
			Detail("zero Type value").
			Build()
	}
	return nil
}

// IsZero reports whether t is the uninitialized zero value.
func (t Type) IsZero() bool {
	return t.kind == KindUint && t.bitSize == 0
}

// Kind returns the variant.
func (t Type) Kind() Kind { return t.kind }

// BitSize returns N for uint<N> and ufixed<N>x<M>.
func (t Type) BitSize() int { return int(t.bitSize) }

// Precision returns M for ufixed<N>x<M>.
func (t Type) Precision() int { return int(t.precision) }

// Elem returns the element type of an array.
func (t Type) Elem() Type {
	if t.kind.IsArray() {
		return t.children[0]
	}
	return Type{}
}

// Len returns the static array length or tuple arity.
func (t Type) Len() int {
	switch t.kind {
	case KindStaticArray:
		return t.length
	case KindTuple:
		return len(t.children)
	}
	return 0
}

// ElemAt returns the i-th child of a tuple, or the element type of an array.
func (t Type) ElemAt(i int) Type {
	if t.kind.IsArray() {
		return t.children[0]
	}
	return t.children[i]
}

// Elems returns a copy of the tuple children.
func (t Type) Elems() []Type {
	if t.kind != KindTuple {
		return nil
	}
	out := make([]Type, len(t.children))
	copy(out, t.children)
	return out
}

// IsDynamic reports whether the encoded width depends on the value.
func (t Type) IsDynamic() bool { return t.dynamic }

// ByteLen returns the encoded width of a static type.
func (t Type) ByteLen() (int, error) {
	if t.dynamic {
		return 0, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			ABIType(t.String()).
			Detail("dynamic type has no fixed byte length").
			Build()
	}
	return t.size, nil
}

// Equal reports structural equality. Struct and field names are ignored.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindUint:
		return t.bitSize == o.bitSize
	case KindUfixed:
		return t.bitSize == o.bitSize && t.precision == o.precision
	case KindStaticArray:
		return t.length == o.length && t.children[0].Equal(o.children[0])
	case KindDynamicArray:
		return t.children[0].Equal(o.children[0])
	case KindTuple:
		if len(t.children) != len(o.children) {
			return false
		}
		for i := range t.children {
			if !t.children[i].Equal(o.children[i]) {
				return false
			}
		}
	}
	return true
}

// String returns the ARC-4 signature. Structs render as their tuple.
func (t Type) String() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t Type) writeTo(b *strings.Builder) {
	switch t.kind {
	case KindUint:
		b.WriteString("uint")
		b.WriteString(strconv.Itoa(int(t.bitSize)))
	case KindUfixed:
		b.WriteString("ufixed")
		b.WriteString(strconv.Itoa(int(t.bitSize)))
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(int(t.precision)))
	case KindByte, KindBool, KindAddress, KindString:
		b.WriteString(t.kind.String())
	case KindStaticArray:
		t.children[0].writeTo(b)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.length))
		b.WriteByte(']')
	case KindDynamicArray:
		t.children[0].writeTo(b)
		b.WriteString("[]")
	case KindTuple:
		b.WriteByte('(')
		for i, c := range t.children {
			if i > 0 {
				b.WriteByte(',')
			}
			c.writeTo(b)
		}
		b.WriteByte(')')
	}
}

func (t Type) field() layout.Field {
	return layout.Field{Size: t.size, Bool: t.kind == KindBool, Dynamic: t.dynamic}
}

// childFields returns the layout input for a tuple or a static array.
func (t Type) childFields() []layout.Field {
	if t.kind == KindStaticArray {
		return layout.Repeat(t.children[0].field(), t.length)
	}
	fields := make([]layout.Field, len(t.children))
	for i, c := range t.children {
		fields[i] = c.field()
	}
	return fields
}
