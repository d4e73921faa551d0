package canonical

import (
	"bytes"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
)

// Encode serializes m under c's configuration.
func (c *Codec) Encode(m Map) ([]byte, error) {
	node, _, err := normalize(m, 0, c.cfg.maxDepth(), nil)
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = Map{}
	}
	return write(node)
}

// EncodeValue serializes v under c's configuration.
func (c *Codec) EncodeValue(v any) ([]byte, error) {
	node, _, err := normalize(v, 0, c.cfg.maxDepth(), nil)
	if err != nil {
		return nil, err
	}
	return write(node)
}

// normalize reduces v to the node set written by encoder.value: nil,
// types.Uint, int64 (negative only), bool, string, float64, []byte, Map
// and []any. Maps come back with empty entries removed; lists keep every
// element. empty reports whether v would be omitted as a map entry.
func normalize(v any, depth, maxDepth int, path []string) (node any, empty bool, err error) {
	if depth > maxDepth {
		return nil, false, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			Detail("nesting exceeds %d levels", maxDepth).
			Build()
	}

	switch x := v.(type) {
	case nil:
		return nil, true, nil
	case Marshaler:
		m, err := x.CanonicalMap()
		if err != nil {
			return nil, false, errors.WithPath(err, path...)
		}
		return normalize(m, depth, maxDepth, path)
	case bool:
		return x, !x, nil
	case string:
		if !utf8.ValidString(x) {
			return nil, false, errors.InvalidUTF8(errors.PhaseEncode, path, []byte(x))
		}
		return x, x == "", nil
	case float64:
		return x, x == 0, nil
	case float32:
		return float64(x), x == 0, nil
	case []byte:
		return x, len(x) == 0, nil
	case types.Bytes:
		return []byte(x), len(x) == 0, nil
	case types.Address:
		return x.Bytes(), x.IsZero(), nil
	case *types.Address:
		if x == nil {
			return nil, true, nil
		}
		return x.Bytes(), x.IsZero(), nil
	case types.Digest:
		return append([]byte(nil), x[:]...), x.IsZero(), nil
	case Map:
		return normalizeMap(x, depth, maxDepth, path)
	case []any:
		return normalizeList(x, depth, maxDepth, path)
	}

	if n, neg := types.IsNegativeInt(v); neg {
		return n, false, nil
	}
	if u, ok, err := types.AsUint(v); ok {
		if err != nil {
			return nil, false, errors.WithPath(err, path...)
		}
		return u, u.IsZero(), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, true, nil
		}
		return normalize(rv.Elem().Interface(), depth, maxDepth, path)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			out := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(out), rv)
			if rv.Kind() == reflect.Array {
				return out, allZero(out), nil
			}
			return out, len(out) == 0, nil
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, true, nil
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return normalizeList(items, depth, maxDepth, path)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(Map, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return normalizeMap(m, depth, maxDepth, path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return normalize(rv.Uint(), depth, maxDepth, path)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return normalize(rv.Int(), depth, maxDepth, path)
	case reflect.String:
		return normalize(rv.String(), depth, maxDepth, path)
	case reflect.Bool:
		return normalize(rv.Bool(), depth, maxDepth, path)
	}

	return nil, false, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		Path(path...).
		GoType(reflect.TypeOf(v).String()).
		Detail("unsupported canonical value").
		Build()
}

func normalizeMap(m Map, depth, maxDepth int, path []string) (any, bool, error) {
	out := make(Map, len(m))
	for k, v := range m {
		if !utf8.ValidString(k) {
			return nil, false, errors.InvalidUTF8(errors.PhaseEncode, path, []byte(k))
		}
		node, empty, err := normalize(v, depth+1, maxDepth, appendKey(path, k))
		if err != nil {
			return nil, false, err
		}
		if !empty {
			out[k] = node
		}
	}
	return out, len(out) == 0, nil
}

func normalizeList(items []any, depth, maxDepth int, path []string) (any, bool, error) {
	out := make([]any, len(items))
	for i, item := range items {
		node, _, err := normalize(item, depth+1, maxDepth, appendKey(path, strconv.Itoa(i)))
		if err != nil {
			return nil, false, err
		}
		out[i] = node
	}
	return out, len(out) == 0, nil
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func appendKey(path []string, k string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, k)
}

// encoder pairs a reusable buffer with a msgpack encoder writing into it.
type encoder struct {
	buf bytes.Buffer
	enc *msgpack.Encoder
}

var encoderPool = sync.Pool{
	New: func() any {
		e := &encoder{}
		e.enc = msgpack.NewEncoder(&e.buf)
		return e
	},
}

const poolMaxBuf = 64 << 10

func getEncoder() *encoder {
	return encoderPool.Get().(*encoder)
}

func putEncoder(e *encoder) {
	if e.buf.Cap() > poolMaxBuf {
		return
	}
	e.buf.Reset()
	encoderPool.Put(e)
}

func write(node any) ([]byte, error) {
	e := getEncoder()
	defer putEncoder(e)

	if err := e.value(node); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindTypeMismatch, err, "msgpack write failed")
	}
	return append([]byte(nil), e.buf.Bytes()...), nil
}

func (e *encoder) value(node any) error {
	switch n := node.(type) {
	case nil:
		return e.enc.EncodeNil()
	case types.Uint:
		return e.uint(n)
	case int64:
		return e.enc.EncodeInt(n)
	case bool:
		return e.enc.EncodeBool(n)
	case string:
		return e.enc.EncodeString(n)
	case float64:
		return e.enc.EncodeFloat64(n)
	case []byte:
		if n == nil {
			n = []byte{}
		}
		return e.enc.EncodeBytes(n)
	case Map:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		// Go string comparison is bytewise, matching canonical key order.
		sort.Strings(keys)
		if err := e.enc.EncodeMapLen(len(keys)); err != nil {
			return err
		}
		for _, k := range keys {
			if err := e.enc.EncodeString(k); err != nil {
				return err
			}
			if err := e.value(n[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if err := e.enc.EncodeArrayLen(len(n)); err != nil {
			return err
		}
		for _, item := range n {
			if err := e.value(item); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		GoType(reflect.TypeOf(node).String()).
		Detail("unexpected node").
		Build()
}

// uint writes native-mode values in the smallest unsigned form and
// everything else through the big integer extension.
func (e *encoder) uint(u types.Uint) error {
	if n, ok := u.Uint64(); ok && u.Mode() == types.ModeNative {
		return e.enc.EncodeUint(n)
	}
	payload := u.Bytes()
	if err := e.enc.EncodeExtHeader(BigUintExtType, len(payload)); err != nil {
		return err
	}
	_, err := e.buf.Write(payload)
	return err
}
