package types

import (
	"bytes"
	"reflect"
)

// Equal reports whether a and b hold the same codec value.
//
// Integers compare by magnitude across Go kinds and Mode. Byte strings
// ([]byte, Bytes, Address, Digest) compare by content. Slices and
// string-keyed maps compare recursively; nil and empty collections are equal.
func Equal(a, b any) bool {
	na, nb := normalize(a), normalize(b)
	switch x := na.(type) {
	case nil:
		return nb == nil
	case Uint:
		y, ok := nb.(Uint)
		return ok && x.Equal(y)
	case []byte:
		y, ok := nb.([]byte)
		return ok && bytes.Equal(x, y)
	case []any:
		y, ok := nb.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := nb.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, ok := y[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(na, nb)
}

func normalize(v any) any {
	if v == nil {
		return nil
	}
	if u, ok, err := AsUint(v); ok && err == nil {
		return u
	}
	if n, neg := IsNegativeInt(v); neg {
		return n
	}
	switch x := v.(type) {
	case []byte:
		return x
	case Bytes:
		return []byte(x)
	case Address:
		return x[:]
	case *Address:
		if x == nil {
			return nil
		}
		return x[:]
	case Digest:
		return x[:]
	case float32:
		return float64(x)
	case string, bool, float64:
		return x
	case map[string]any:
		return x
	case []any:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			out := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(out), rv)
			return out
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}
	return v
}
