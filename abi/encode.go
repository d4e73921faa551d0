package abi

import (
	"encoding/binary"
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/avm-codec/abi/internal/layout"
	"github.com/wippyai/avm-codec/errors"
)

// Encode converts v to its ARC-4 encoding under t.
func Encode(v Value, t Type) ([]byte, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return encodeValue(v, t, nil)
}

// Encode is a method form of the package-level Encode.
func (t Type) Encode(v Value) ([]byte, error) {
	return Encode(v, t)
}

// EncodeGo converts x with FromGo and encodes it.
func EncodeGo(x any, t Type) ([]byte, error) {
	v, err := FromGo(x, t)
	if err != nil {
		return nil, err
	}
	return Encode(v, t)
}

func encodeValue(v Value, t Type, path []string) ([]byte, error) {
	switch t.kind {
	case KindUint:
		if v.kind != ValueUint {
			return nil, valueMismatch(path, v, t)
		}
		return encodeInt(v, t, path)

	case KindUfixed:
		if v.kind != ValueUfixed || v.precision != t.precision {
			return nil, valueMismatch(path, v, t)
		}
		return encodeInt(v, t, path)

	case KindByte:
		if v.kind != ValueByte {
			return nil, valueMismatch(path, v, t)
		}
		return []byte{v.b}, nil

	case KindBool:
		if v.kind != ValueBool {
			return nil, valueMismatch(path, v, t)
		}
		if v.flag {
			return []byte{0x80}, nil
		}
		return []byte{0x00}, nil

	case KindAddress:
		if v.kind != ValueAddress {
			return nil, valueMismatch(path, v, t)
		}
		return v.addr.Bytes(), nil

	case KindString:
		if v.kind != ValueString {
			return nil, valueMismatch(path, v, t)
		}
		if !utf8.ValidString(v.str) {
			return nil, errors.InvalidUTF8(errors.PhaseEncode, path, []byte(v.str))
		}
		if len(v.str) > MaxLength {
			return nil, tooLong(path, t, len(v.str))
		}
		out := make([]byte, lengthPrefix+len(v.str))
		binary.BigEndian.PutUint16(out, uint16(len(v.str)))
		copy(out[lengthPrefix:], v.str)
		return out, nil

	case KindStaticArray:
		if v.kind != ValueList || len(v.elems) != t.length {
			return nil, valueMismatch(path, v, t)
		}
		return encodeTuple(v.elems, t.childFields(), t.ElemAt, path)

	case KindDynamicArray:
		if v.kind != ValueList {
			return nil, valueMismatch(path, v, t)
		}
		if len(v.elems) > MaxLength {
			return nil, tooLong(path, t, len(v.elems))
		}
		body, err := encodeTuple(v.elems, layout.Repeat(t.children[0].field(), len(v.elems)), t.ElemAt, path)
		if err != nil {
			return nil, err
		}
		out := make([]byte, lengthPrefix, lengthPrefix+len(body))
		binary.BigEndian.PutUint16(out, uint16(len(v.elems)))
		return append(out, body...), nil

	case KindTuple:
		if v.kind != ValueList || len(v.elems) != len(t.children) {
			return nil, valueMismatch(path, v, t)
		}
		return encodeTuple(v.elems, t.childFields(), t.ElemAt, path)
	}

	return nil, valueMismatch(path, v, t)
}

func encodeInt(v Value, t Type, path []string) ([]byte, error) {
	if v.num.BitLen() > int(t.bitSize) {
		return nil, errors.Overflow(errors.PhaseEncode, path, v.num.String(), t.String())
	}
	return v.num.FillBytes(make([]byte, t.size)), nil
}

// encodeTuple writes the head in one left-to-right pass, resolving each
// dynamic child's offset from the running tail length.
func encodeTuple(vals []Value, fields []layout.Field, childType func(int) Type, path []string) ([]byte, error) {
	info, err := layout.Calc(fields)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			Cause(err).
			Build()
	}

	head := make([]byte, info.HeadSize)
	var tail []byte

	for _, slot := range info.Slots {
		switch slot.Kind {
		case layout.SlotBools:
			var packed byte
			for k := 0; k < slot.Count; k++ {
				i := slot.Index + k
				if vals[i].kind != ValueBool {
					return nil, valueMismatch(appendPath(path, i), vals[i], childType(i))
				}
				if vals[i].flag {
					packed |= 0x80 >> k
				}
			}
			head[slot.Offset] = packed

		case layout.SlotStatic:
			enc, err := encodeValue(vals[slot.Index], childType(slot.Index), appendPath(path, slot.Index))
			if err != nil {
				return nil, err
			}
			copy(head[slot.Offset:slot.Offset+slot.Size], enc)

		case layout.SlotOffset:
			offset := info.HeadSize + len(tail)
			if offset > MaxLength {
				return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
					Path(appendPath(path, slot.Index)...).
					Detail("offset %d exceeds 65535", offset).
					Build()
			}
			enc, err := encodeValue(vals[slot.Index], childType(slot.Index), appendPath(path, slot.Index))
			if err != nil {
				return nil, err
			}
			binary.BigEndian.PutUint16(head[slot.Offset:], uint16(offset))
			tail = append(tail, enc...)
		}
	}

	return append(head, tail...), nil
}

func valueMismatch(path []string, v Value, t Type) error {
	goType := v.kind.String()
	if v.kind == ValueList {
		goType += "[" + strconv.Itoa(len(v.elems)) + "]"
	}
	return errors.TypeMismatch(errors.PhaseEncode, path, goType, t.String())
}

func tooLong(path []string, t Type, n int) error {
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		Path(path...).
		ABIType(t.String()).
		Value(n).
		Detail("length %d exceeds 65535", n).
		Build()
}
