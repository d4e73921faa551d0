package abi

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/wippyai/avm-codec/types"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueUint
	ValueUfixed
	ValueByte
	ValueBool
	ValueString
	ValueAddress
	ValueList
)

var valueKindNames = [...]string{
	ValueInvalid: "invalid",
	ValueUint:    "uint",
	ValueUfixed:  "ufixed",
	ValueByte:    "byte",
	ValueBool:    "bool",
	ValueString:  "string",
	ValueAddress: "address",
	ValueList:    "list",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

// Value is an immutable ABI value. Lists serve arrays and tuples alike.
type Value struct {
	num       types.Uint
	str       string
	elems     []Value
	addr      types.Address
	kind      ValueKind
	precision uint16
	b         byte
	flag      bool
}

// Uint returns an unsigned integer value.
func Uint(v uint64) Value {
	return Value{kind: ValueUint, num: types.NewUint(v)}
}

// BigUint returns an unsigned integer value of arbitrary width.
func BigUint(u types.Uint) Value {
	return Value{kind: ValueUint, num: u}
}

// Ufixed returns a fixed-point value whose raw integer is scaled by
// 10^precision.
func Ufixed(raw types.Uint, precision int) Value {
	return Value{kind: ValueUfixed, num: raw, precision: uint16(precision)}
}

// Byte returns a byte value.
func Byte(b byte) Value {
	return Value{kind: ValueByte, b: b}
}

// Bool returns a bool value.
func Bool(v bool) Value {
	return Value{kind: ValueBool, flag: v}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: ValueString, str: s}
}

// Address returns an address value.
func Address(a types.Address) Value {
	return Value{kind: ValueAddress, addr: a}
}

// List returns an ordered list for arrays and tuples.
func List(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: ValueList, elems: cp}
}

// Bytes returns a list of byte values, the natural value of byte[] and byte[N].
func Bytes(data []byte) Value {
	elems := make([]Value, len(data))
	for i, b := range data {
		elems[i] = Byte(b)
	}
	return Value{kind: ValueList, elems: elems}
}

func (v Value) Kind() ValueKind { return v.kind }

// Uint returns the integer of a uint or the raw integer of a ufixed.
func (v Value) Uint() types.Uint { return v.num }

// Precision returns the ufixed precision.
func (v Value) Precision() int { return int(v.precision) }

func (v Value) Byte() byte { return v.b }

func (v Value) Bool() bool { return v.flag }

// Text returns the contents of a string value.
func (v Value) Text() string { return v.str }

func (v Value) Address() types.Address { return v.addr }

// Len returns the number of list elements.
func (v Value) Len() int { return len(v.elems) }

// Index returns the i-th list element.
func (v Value) Index(i int) Value { return v.elems[i] }

// Elems returns a copy of the list elements.
func (v Value) Elems() []Value {
	out := make([]Value, len(v.elems))
	copy(out, v.elems)
	return out
}

// ByteSlice returns the contents of a list of byte values.
func (v Value) ByteSlice() ([]byte, bool) {
	if v.kind != ValueList {
		return nil, false
	}
	out := make([]byte, len(v.elems))
	for i, e := range v.elems {
		if e.kind != ValueByte {
			return nil, false
		}
		out[i] = e.b
	}
	return out, true
}

// Equal reports deep equality. Integer representation mode is ignored.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueUint:
		return v.num.Equal(o.num)
	case ValueUfixed:
		return v.precision == o.precision && v.num.Equal(o.num)
	case ValueByte:
		return v.b == o.b
	case ValueBool:
		return v.flag == o.flag
	case ValueString:
		return v.str == o.str
	case ValueAddress:
		return v.addr == o.addr
	case ValueList:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
	}
	return true
}

// Interface converts v to plain Go values: types.Uint for integers and
// the raw ufixed integer, byte, bool, string, types.Address and []any.
func (v Value) Interface() any {
	switch v.kind {
	case ValueUint, ValueUfixed:
		return v.num
	case ValueByte:
		return v.b
	case ValueBool:
		return v.flag
	case ValueString:
		return v.str
	case ValueAddress:
		return v.addr
	case ValueList:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	}
	return nil
}

// String renders v for diagnostics. Ufixed values print as decimals.
func (v Value) String() string {
	switch v.kind {
	case ValueUint:
		return v.num.String()
	case ValueUfixed:
		return formatUfixed(v.num.Big(), int(v.precision))
	case ValueByte:
		return fmt.Sprintf("0x%02x", v.b)
	case ValueBool:
		if v.flag {
			return "true"
		}
		return "false"
	case ValueString:
		return `"` + v.str + `"`
	case ValueAddress:
		return v.addr.String()
	case ValueList:
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
		return b.String()
	}
	return "<invalid>"
}

func formatUfixed(raw *big.Int, precision int) string {
	digits := raw.String()
	if len(digits) <= precision {
		digits = strings.Repeat("0", precision-len(digits)+1) + digits
	}
	cut := len(digits) - precision
	return digits[:cut] + "." + digits[cut:]
}
