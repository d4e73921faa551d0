package abi

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/wippyai/avm-codec/abi/internal/layout"
	"github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
)

// Decode parses data as an ARC-4 encoding of t. The whole input must be
// consumed; every failure is a malformed encoding error.
func Decode(data []byte, t Type) (Value, error) {
	if err := t.check(); err != nil {
		return Value{}, err
	}
	return decodeValue(data, t, nil)
}

// Decode is a method form of the package-level Decode.
func (t Type) Decode(data []byte) (Value, error) {
	return Decode(data, t)
}

func decodeValue(data []byte, t Type, path []string) (Value, error) {
	switch t.kind {
	case KindUint, KindUfixed:
		if err := exact(data, t.size, path); err != nil {
			return Value{}, err
		}
		u := types.UintFromBytes(data)
		if t.kind == KindUfixed {
			return Ufixed(u, int(t.precision)), nil
		}
		return BigUint(u), nil

	case KindByte:
		if err := exact(data, 1, path); err != nil {
			return Value{}, err
		}
		return Byte(data[0]), nil

	case KindBool:
		if err := exact(data, 1, path); err != nil {
			return Value{}, err
		}
		return Bool(data[0]&0x80 != 0), nil

	case KindAddress:
		if err := exact(data, AddressByteSize, path); err != nil {
			return Value{}, err
		}
		var a types.Address
		copy(a[:], data)
		return Address(a), nil

	case KindString:
		r := newHeadReader(data, path)
		n, err := r.u16(0)
		if err != nil {
			return Value{}, err
		}
		body := data[lengthPrefix:]
		if len(body) != int(n) {
			return Value{}, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
				Path(path...).
				ABIType("string").
				Detail("length prefix %d does not match %d remaining bytes", n, len(body)).
				Build()
		}
		if !utf8.Valid(body) {
			return Value{}, errors.InvalidUTF8(errors.PhaseDecode, path, body)
		}
		return String(string(body)), nil

	case KindStaticArray:
		elems, err := decodeTuple(data, t.childFields(), t.ElemAt, path)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: ValueList, elems: elems}, nil

	case KindDynamicArray:
		r := newHeadReader(data, path)
		n, err := r.u16(0)
		if err != nil {
			return Value{}, err
		}
		body := data[lengthPrefix:]
		elem := t.children[0].field()
		// reject impossible counts before building the layout
		need, err := layout.RepeatedSize(elem, int(n))
		if err != nil {
			return Value{}, errors.MalformedEncoding(path, err.Error())
		}
		if len(body) < need {
			return Value{}, errors.Truncated(path, need+lengthPrefix, len(data))
		}
		elems, err := decodeTuple(body, layout.Repeat(elem, int(n)), t.ElemAt, path)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: ValueList, elems: elems}, nil

	case KindTuple:
		elems, err := decodeTuple(data, t.childFields(), t.ElemAt, path)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: ValueList, elems: elems}, nil
	}

	return Value{}, errors.Unsupported(errors.PhaseDecode, t.kind.String())
}

// decodeTuple splits data by the head layout and decodes each child from
// its own slice. Dynamic segments must start right after the head, never
// move backwards, stay in bounds, and together cover the tail.
func decodeTuple(data []byte, fields []layout.Field, childType func(int) Type, path []string) ([]Value, error) {
	info, err := layout.Calc(fields)
	if err != nil {
		return nil, errors.MalformedEncoding(path, err.Error())
	}
	if len(data) < info.HeadSize {
		return nil, errors.Truncated(path, info.HeadSize, len(data))
	}
	if info.Static() && len(data) != info.HeadSize {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
			Path(path...).
			Detail("%d unconsumed bytes after static tuple", len(data)-info.HeadSize).
			Build()
	}

	r := newHeadReader(data, path)
	starts := make([]int, 0, info.NumDynamic)
	for _, slot := range info.Slots {
		if slot.Kind != layout.SlotOffset {
			continue
		}
		off, err := r.u16(slot.Offset)
		if err != nil {
			return nil, err
		}
		start := int(off)
		switch {
		case len(starts) == 0 && start != info.HeadSize:
			return nil, badOffset(path, slot.Index, "first dynamic offset %d does not follow head of %d bytes", start, info.HeadSize)
		case len(starts) > 0 && start < starts[len(starts)-1]:
			return nil, badOffset(path, slot.Index, "offset %d precedes previous offset %d", start, starts[len(starts)-1])
		case start > len(data):
			return nil, badOffset(path, slot.Index, "offset %d beyond %d bytes", start, len(data))
		}
		starts = append(starts, start)
	}

	vals := make([]Value, len(fields))
	dyn := 0
	for _, slot := range info.Slots {
		switch slot.Kind {
		case layout.SlotBools:
			packed := data[slot.Offset]
			for k := 0; k < slot.Count; k++ {
				vals[slot.Index+k] = Bool(packed&(0x80>>k) != 0)
			}

		case layout.SlotStatic:
			v, err := decodeValue(data[slot.Offset:slot.Offset+slot.Size], childType(slot.Index), appendPath(path, slot.Index))
			if err != nil {
				return nil, err
			}
			vals[slot.Index] = v

		case layout.SlotOffset:
			end := len(data)
			if dyn+1 < len(starts) {
				end = starts[dyn+1]
			}
			v, err := decodeValue(data[starts[dyn]:end], childType(slot.Index), appendPath(path, slot.Index))
			if err != nil {
				return nil, err
			}
			vals[slot.Index] = v
			dyn++
		}
	}
	return vals, nil
}

// headReader reads big-endian offsets and length prefixes with bounds
// checks reported against the current path.
type headReader struct {
	data []byte
	path []string
}

func newHeadReader(data []byte, path []string) headReader {
	return headReader{data: data, path: path}
}

func (r headReader) u16(pos int) (uint16, error) {
	if pos+lengthPrefix > len(r.data) {
		return 0, errors.Truncated(r.path, pos+lengthPrefix, len(r.data))
	}
	return binary.BigEndian.Uint16(r.data[pos:]), nil
}

func exact(data []byte, n int, path []string) error {
	if len(data) < n {
		return errors.Truncated(path, n, len(data))
	}
	if len(data) > n {
		return errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
			Path(path...).
			Detail("expected %d bytes, got %d", n, len(data)).
			Build()
	}
	return nil
}

func badOffset(path []string, index int, detail string, args ...any) error {
	return errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
		Path(appendPath(path, index)...).
		Detail(detail, args...).
		Build()
}
