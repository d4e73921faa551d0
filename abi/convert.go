package abi

import (
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
)

// FromGo converts a native Go value into a Value of type t.
//
// Accepted inputs per kind:
//   - uint: any Go integer, *big.Int, types.Uint
//   - ufixed: the same raw integers, or a decimal string such as "1.25"
//   - byte: integers in [0, 255]
//   - bool: bool
//   - address: types.Address, its base32 string, or 32 raw bytes
//   - string: string
//   - arrays: any slice or array; byte arrays also take []byte
//   - tuples: any slice or array; structs also take map[string]any
//
// A Value passed in is returned unchanged and checked at encode time.
func FromGo(x any, t Type) (Value, error) {
	if err := t.check(); err != nil {
		return Value{}, err
	}
	return fromGo(x, t, nil)
}

func fromGo(x any, t Type, path []string) (Value, error) {
	if v, ok := x.(Value); ok {
		return v, nil
	}
	if x == nil {
		return Value{}, mismatch(path, x, t)
	}

	switch t.kind {
	case KindUint:
		u, ok, err := types.AsUint(x)
		if err != nil {
			return Value{}, errors.WithPath(err, path...)
		}
		if !ok {
			return Value{}, mismatch(path, x, t)
		}
		return BigUint(u), nil

	case KindUfixed:
		if s, ok := x.(string); ok {
			u, err := parseUfixed(s, int(t.precision))
			if err != nil {
				return Value{}, errors.WithPath(err, path...)
			}
			return Ufixed(u, int(t.precision)), nil
		}
		u, ok, err := types.AsUint(x)
		if err != nil {
			return Value{}, errors.WithPath(err, path...)
		}
		if !ok {
			return Value{}, mismatch(path, x, t)
		}
		return Ufixed(u, int(t.precision)), nil

	case KindByte:
		u, ok, err := types.AsUint(x)
		if err != nil || !ok {
			return Value{}, mismatch(path, x, t)
		}
		n, fits := u.Uint64()
		if !fits || n > 0xff {
			return Value{}, errors.Overflow(errors.PhaseEncode, path, u.String(), "byte")
		}
		return Byte(byte(n)), nil

	case KindBool:
		b, ok := x.(bool)
		if !ok {
			return Value{}, mismatch(path, x, t)
		}
		return Bool(b), nil

	case KindAddress:
		return addressFromGo(x, t, path)

	case KindString:
		s, ok := x.(string)
		if !ok {
			return Value{}, mismatch(path, x, t)
		}
		return String(s), nil

	case KindStaticArray, KindDynamicArray:
		if t.children[0].kind == KindByte {
			switch b := x.(type) {
			case []byte:
				return Bytes(b), nil
			case types.Bytes:
				return Bytes(b), nil
			}
		}
		items, ok := listOf(x)
		if !ok {
			return Value{}, mismatch(path, x, t)
		}
		return listFromGo(items, func(int) Type { return t.children[0] }, path)

	case KindTuple:
		if t.IsStruct() {
			if m, ok := x.(map[string]any); ok {
				return structFromMap(m, t, path)
			}
		}
		items, ok := listOf(x)
		if !ok || len(items) != len(t.children) {
			return Value{}, mismatch(path, x, t)
		}
		return listFromGo(items, func(i int) Type { return t.children[i] }, path)
	}

	return Value{}, mismatch(path, x, t)
}

func listFromGo(items []any, childType func(int) Type, path []string) (Value, error) {
	elems := make([]Value, len(items))
	for i, item := range items {
		v, err := fromGo(item, childType(i), appendPath(path, i))
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
	}
	return Value{kind: ValueList, elems: elems}, nil
}

func structFromMap(m map[string]any, t Type, path []string) (Value, error) {
	if len(m) != len(t.fields) {
		return Value{}, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			ABIType(t.describe()).
			Detail("struct has %d fields, map has %d", len(t.fields), len(m)).
			Build()
	}
	elems := make([]Value, len(t.fields))
	for i, name := range t.fields {
		item, ok := m[name]
		if !ok {
			return Value{}, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				ABIType(t.describe()).
				Detail("missing struct field %q", name).
				Build()
		}
		v, err := fromGo(item, t.children[i], append(append([]string(nil), path...), name))
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
	}
	return Value{kind: ValueList, elems: elems}, nil
}

func addressFromGo(x any, t Type, path []string) (Value, error) {
	switch a := x.(type) {
	case types.Address:
		return Address(a), nil
	case *types.Address:
		if a != nil {
			return Address(*a), nil
		}
	case string:
		addr, err := types.AddressFromString(a)
		if err != nil {
			return Value{}, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				ABIType("address").
				Cause(err).
				Detail("invalid address string").
				Build()
		}
		return Address(addr), nil
	case []byte:
		if len(a) == types.AddressLength {
			var addr types.Address
			copy(addr[:], a)
			return Address(addr), nil
		}
	case types.Bytes:
		return addressFromGo([]byte(a), t, path)
	}
	return Value{}, mismatch(path, x, t)
}

func listOf(x any) ([]any, bool) {
	if items, ok := x.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// parseUfixed reads a non-negative decimal with at most precision
// fractional digits and returns its raw scaled integer.
func parseUfixed(s string, precision int) (types.Uint, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > precision || strings.ContainsAny(whole+frac, "+-") {
		return types.Uint{}, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Value(s).
			Detail("invalid decimal %q for precision %d", s, precision).
			Build()
	}
	digits := whole + frac + strings.Repeat("0", precision-len(frac))
	b, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return types.Uint{}, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Value(s).
			Detail("invalid decimal %q", s).
			Build()
	}
	return types.UintFromBig(b)
}

func mismatch(path []string, x any, t Type) error {
	return errors.TypeMismatch(errors.PhaseEncode, path, typeName(x), t.String())
}

// typeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

func appendPath(path []string, i int) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, strconv.Itoa(i))
}
