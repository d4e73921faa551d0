package canonical

import (
	"bytes"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
	"go.uber.org/zap"
)

// Decode parses data as a msgpack map under c's configuration.
func (c *Codec) Decode(data []byte) (Map, error) {
	v, err := c.DecodeValue(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(Map)
	if !ok {
		return nil, errors.MalformedEncoding(nil, "top-level value is not a map")
	}
	return m, nil
}

// DecodeValue parses any msgpack value under c's configuration.
//
// Decoding is lenient about canonical form: keys may come in any order,
// integers in any width, and floats, nil and negative integers are
// accepted. Integers decode to types.Uint (int64 when negative), bin to
// types.Bytes and str to string.
func (c *Codec) DecodeValue(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, errors.EmptyInput("attempted to decode 0 bytes")
	}

	r := bytes.NewReader(data)
	d := &decoder{
		dec:      msgpack.NewDecoder(r),
		r:        r,
		maxDepth: c.cfg.maxDepth(),
	}
	v, err := d.value(0, nil)
	if err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
			Detail("%d trailing bytes after value", r.Len()).
			Build()
	}
	if d.lenient != "" {
		Logger().Debug("accepted non-canonical input",
			zap.String("reason", d.lenient),
			zap.Int("bytes", len(data)))
	}
	return v, nil
}

type decoder struct {
	dec      *msgpack.Decoder
	r        *bytes.Reader
	lenient  string
	maxDepth int
}

func (d *decoder) note(reason string) {
	if d.lenient == "" {
		d.lenient = reason
	}
}

func (d *decoder) value(depth int, path []string) (any, error) {
	if depth > d.maxDepth {
		return nil, errors.MalformedEncoding(path, "nesting exceeds configured depth")
	}

	c, err := d.dec.PeekCode()
	if err != nil {
		return nil, d.fail(path, err)
	}

	switch {
	case c <= msgpcode.PosFixedNumHigh,
		c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32, c == msgpcode.Uint64:
		n, err := d.dec.DecodeUint64()
		if err != nil {
			return nil, d.fail(path, err)
		}
		if c != minimalUintCode(n) {
			d.note("non-minimal integer")
		}
		return types.NewUint(n), nil

	case msgpcode.IsFixedNum(c),
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64:
		n, err := d.dec.DecodeInt64()
		if err != nil {
			return nil, d.fail(path, err)
		}
		if n >= 0 {
			d.note("signed encoding of unsigned integer")
			return types.NewUint(uint64(n)), nil
		}
		d.note("negative integer")
		return n, nil

	case c == msgpcode.Nil:
		d.note("nil value")
		return nil, d.wrap(path, d.dec.DecodeNil())

	case c == msgpcode.True, c == msgpcode.False:
		b, err := d.dec.DecodeBool()
		if err != nil {
			return nil, d.fail(path, err)
		}
		return b, nil

	case c == msgpcode.Float, c == msgpcode.Double:
		f, err := d.dec.DecodeFloat64()
		if err != nil {
			return nil, d.fail(path, err)
		}
		d.note("float value")
		return f, nil

	case msgpcode.IsString(c):
		s, err := d.dec.DecodeString()
		if err != nil {
			return nil, d.fail(path, err)
		}
		if !utf8.ValidString(s) {
			return nil, errors.InvalidUTF8(errors.PhaseDecode, path, []byte(s))
		}
		return s, nil

	case msgpcode.IsBin(c):
		b, err := d.dec.DecodeBytes()
		if err != nil {
			return nil, d.fail(path, err)
		}
		if b == nil {
			b = []byte{}
		}
		return types.Bytes(b), nil

	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		return d.decodeMap(depth, path)

	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		return d.decodeList(depth, path)

	case msgpcode.IsExt(c):
		return d.decodeExt(path)
	}

	return nil, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
		Path(path...).
		Detail("unexpected msgpack code 0x%02x", c).
		Build()
}

func (d *decoder) decodeMap(depth int, path []string) (any, error) {
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return nil, d.fail(path, err)
	}
	// every entry needs at least a key byte and a value byte
	if n < 0 || 2*n > d.r.Len() {
		return nil, errors.Truncated(path, 2*n, d.r.Len())
	}

	m := make(Map, n)
	prev, sorted := "", true
	for i := 0; i < n; i++ {
		c, err := d.dec.PeekCode()
		if err != nil {
			return nil, d.fail(path, err)
		}
		if !msgpcode.IsString(c) {
			return nil, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
				Path(path...).
				Detail("map key has msgpack code 0x%02x, want string", c).
				Build()
		}
		k, err := d.dec.DecodeString()
		if err != nil {
			return nil, d.fail(path, err)
		}
		if !utf8.ValidString(k) {
			return nil, errors.InvalidUTF8(errors.PhaseDecode, path, []byte(k))
		}
		if _, dup := m[k]; dup {
			return nil, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
				Path(path...).
				Detail("duplicate map key %q", k).
				Build()
		}
		if i > 0 && k < prev {
			sorted = false
		}
		prev = k

		v, err := d.value(depth+1, appendKey(path, k))
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	if !sorted {
		d.note("unsorted map keys")
	}
	return m, nil
}

func (d *decoder) decodeList(depth int, path []string) (any, error) {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return nil, d.fail(path, err)
	}
	if n < 0 || n > d.r.Len() {
		return nil, errors.Truncated(path, n, d.r.Len())
	}
	out := make([]any, n)
	for i := range out {
		v, err := d.value(depth+1, appendKey(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (d *decoder) decodeExt(path []string) (any, error) {
	id, n, err := d.dec.DecodeExtHeader()
	if err != nil {
		return nil, d.fail(path, err)
	}
	if id != BigUintExtType {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
			Path(path...).
			Detail("unknown extension type %d", id).
			Build()
	}
	if n > maxBigUintBytes {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
			Path(path...).
			Detail("big integer payload of %d bytes exceeds %d", n, maxBigUintBytes).
			Build()
	}
	if n > d.r.Len() {
		return nil, errors.Truncated(path, n, d.r.Len())
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(d.r, payload); err != nil {
		return nil, d.fail(path, err)
	}
	if n > 0 && payload[0] == 0 {
		d.note("non-minimal big integer")
	}
	return types.UintFromBytes(payload).WithMode(types.ModeBig), nil
}

func (d *decoder) fail(path []string, err error) error {
	return errors.New(errors.PhaseDecode, errors.KindMalformedEncoding).
		Path(path...).
		Cause(err).
		Detail("truncated or invalid msgpack").
		Build()
}

func (d *decoder) wrap(path []string, err error) error {
	if err == nil {
		return nil
	}
	return d.fail(path, err)
}

func minimalUintCode(n uint64) byte {
	switch {
	case n <= uint64(msgpcode.PosFixedNumHigh):
		return byte(n)
	case n <= 0xff:
		return msgpcode.Uint8
	case n <= 0xffff:
		return msgpcode.Uint16
	case n <= 0xffffffff:
		return msgpcode.Uint32
	}
	return msgpcode.Uint64
}
