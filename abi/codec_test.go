package abi

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	codecerrors "github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
)

func TestEncodeVectors(t *testing.T) {
	tests := []struct {
		name  string
		sig   string
		value any
		want  string
	}{
		{"uint64", "uint64", uint64(1), "0000000000000001"},
		{"uint8 max", "uint8", 255, "ff"},
		{"uint16", "uint16", 0x1234, "1234"},
		{"ufixed decimal", "ufixed64x2", "1.25", "000000000000007d"},
		{"ufixed raw", "ufixed16x1", 7, "0007"},
		{"byte", "byte", 0xab, "ab"},
		{"bool true", "bool", true, "80"},
		{"bool false", "bool", false, "00"},
		{"string", "string", "hi", "00026869"},
		{"empty string", "string", "", "0000"},
		{"static bytes", "byte[3]", []byte{1, 2, 3}, "010203"},
		{"dynamic bytes", "byte[]", []byte{1, 2}, "00020102"},
		{"bool array", "bool[]", []bool{true, false, true}, "0003a0"},
		{"bools in tuple", "(bool,uint8,bool)", []any{true, 5, true}, "800580"},
		{"adjacent bools", "(bool,bool,bool)", []any{false, true, true}, "60"},
		{"static and dynamic", "(uint16,string)", []any{5, "ab"}, "0005000400026162"},
		{"strings", "string[]", []string{"a", "bc"}, "00020004000700016100026263"},
		{"nested static arrays", "uint8[2][2]", [][]uint8{{1, 2}, {3, 4}}, "01020304"},
		{"empty tuple", "()", []any{}, ""},
		{"empty dynamic array", "uint64[]", []uint64{}, "0000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			typ := MustTypeOf(tc.sig)
			got, err := EncodeGo(tc.value, typ)
			require.NoError(t, err)
			require.Equal(t, tc.want, hex.EncodeToString(got))

			v, err := Decode(got, typ)
			require.NoError(t, err)
			want, err := FromGo(tc.value, typ)
			require.NoError(t, err)
			require.True(t, v.Equal(want), "round trip: got %s, want %s", v, want)
		})
	}
}

func TestNineBoolsPackIntoTwoBytes(t *testing.T) {
	typ := MustTypeOf("bool[9]")
	vals := []bool{false, false, false, false, false, false, false, false, true}
	got, err := EncodeGo(vals, typ)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x80}, got)

	dyn, err := EncodeGo(vals, MustTypeOf("bool[]"))
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x09, 0x00, 0x80}, dyn)
}

func TestRoundTrip(t *testing.T) {
	var addr types.Address
	for i := range addr {
		addr[i] = byte(255 - i)
	}
	big512 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 512), big.NewInt(1))

	tests := []struct {
		sig   string
		value any
	}{
		{"uint512", big512},
		{"uint128", new(big.Int).Lsh(big.NewInt(1), 100)},
		{"uint64", uint64(1<<63 + 12345)},
		{"ufixed128x10", "12345678901234567890.0123456789"},
		{"address", addr},
		{"address[]", []types.Address{addr, types.ZeroAddress}},
		{"string", "héllo wörld"},
		{"bool[17]", make([]bool, 17)},
		{"(string,string)", []any{"ab", "c"}},
		{"(uint64,(string,bool[]),address)", []any{7, []any{"x", []bool{true, true, false}}, addr}},
		{"(bool,string,bool,uint8[],bool)", []any{true, "s", false, []uint8{1}, true}},
		{"string[][]", [][]string{{"a"}, {}, {"b", "c"}}},
		{"(uint8,bool)[3][]", []any{
			[]any{[]any{1, true}, []any{2, false}, []any{3, true}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.sig, func(t *testing.T) {
			typ := MustTypeOf(tc.sig)
			v, err := FromGo(tc.value, typ)
			require.NoError(t, err)
			enc, err := Encode(v, typ)
			require.NoError(t, err)
			back, err := typ.Decode(enc)
			require.NoError(t, err)
			require.True(t, back.Equal(v), "got %s, want %s", back, v)

			again, err := typ.Encode(back)
			require.NoError(t, err)
			require.Equal(t, enc, again)
		})
	}
}

func TestEncodeTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		sig   string
		value any
	}{
		{"uint8 overflow", "uint8", 256},
		{"uint64 overflow", "uint64", new(big.Int).Lsh(big.NewInt(1), 64)},
		{"negative", "uint64", -1},
		{"negative big", "uint256", big.NewInt(-5)},
		{"bool for uint", "uint8", true},
		{"string for bool", "bool", "true"},
		{"byte overflow", "byte", 300},
		{"tuple arity", "(uint8,uint8)", []any{1}},
		{"static array length", "uint8[2]", []uint8{1, 2, 3}},
		{"bad address string", "address", "not-an-address"},
		{"short address bytes", "address", []byte{1, 2}},
		{"ufixed too precise", "ufixed64x2", "1.234"},
		{"ufixed negative", "ufixed64x2", "-1.2"},
		{"nil", "uint8", nil},
		{"string too long", "string", strings.Repeat("a", MaxLength+1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeGo(tc.value, MustTypeOf(tc.sig))
			require.ErrorIs(t, err, codecerrors.ErrTypeMismatch)
		})
	}
}

func TestEncodeValueKindMismatch(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		sig  string
	}{
		{"uint into ufixed", Uint(1), "ufixed64x2"},
		{"precision mismatch", Ufixed(types.NewUint(1), 3), "ufixed64x2"},
		{"byte into uint8", Byte(1), "uint8"},
		{"list into string", List(String("a")), "string"},
		{"invalid utf8", String("\xff"), "string"},
		{"bool list with uint", List(Bool(true), Uint(1)), "bool[2]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.v, MustTypeOf(tc.sig))
			require.ErrorIs(t, err, codecerrors.ErrTypeMismatch)
		})
	}
}

func TestEncodeOffsetOverflow(t *testing.T) {
	typ := MustTypeOf("(string,string)")
	long := strings.Repeat("a", MaxLength)
	_, err := EncodeGo([]any{long, "b"}, typ)
	require.ErrorIs(t, err, codecerrors.ErrTypeMismatch, "offset past 65535")
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		sig  string
		data string
	}{
		{"empty uint", "uint64", ""},
		{"short uint", "uint64", "00000001"},
		{"long uint", "uint8", "0101"},
		{"static tuple leftovers", "(uint8,uint8)", "010203"},
		{"string short prefix", "string", "00"},
		{"string length mismatch", "string", "000361"},
		{"string extra bytes", "string", "0001616263"},
		{"invalid utf8", "string", "0001ff"},
		{"array count beyond data", "uint64[]", "00ff"},
		{"bool array count beyond data", "bool[]", "0009"},
		{"first offset inside head", "(string,string)", "0003000800026162000163"},
		{"first offset past head", "(string,string)", "0005000800026162000163"},
		{"second offset before first", "(string,string)", "0004000200026162000163"},
		{"second offset inside first", "(string,string)", "0004000600026162000163"},
		{"offset past end", "(string,string)", "0004010000026162000163"},
		{"truncated head", "(uint64,string)", "0000000000000001"},
		{"empty address", "address", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := hex.DecodeString(tc.data)
			require.NoError(t, err)
			_, err = Decode(data, MustTypeOf(tc.sig))
			require.ErrorIs(t, err, codecerrors.ErrMalformedEncoding)
		})
	}
}

func TestDecodeTruncatedPrefixes(t *testing.T) {
	typ := MustTypeOf("(uint64,string,bool[],(address,byte[]))")
	var addr types.Address
	addr[0] = 9
	enc, err := EncodeGo([]any{
		uint64(42),
		"hello",
		[]bool{true, false, true},
		[]any{addr, []byte{1, 2, 3}},
	}, typ)
	require.NoError(t, err)

	for n := 0; n < len(enc); n++ {
		_, err := Decode(enc[:n], typ)
		require.ErrorIs(t, err, codecerrors.ErrMalformedEncoding, "prefix of %d bytes", n)
	}
	_, err = Decode(append(enc, 0), typ)
	require.Error(t, err, "trailing byte should fail")
}

func TestDecodeBoolUsesHighBit(t *testing.T) {
	v, err := Decode([]byte{0x80}, BoolType())
	require.NoError(t, err)
	require.True(t, v.Bool())

	v, err = Decode([]byte{0x00}, BoolType())
	require.NoError(t, err)
	require.False(t, v.Bool())
}

func TestZeroTypeRejected(t *testing.T) {
	_, err := Encode(Uint(1), Type{})
	require.Error(t, err)
	_, err = Decode([]byte{1}, Type{})
	require.Error(t, err)
}

func TestValueString(t *testing.T) {
	v := List(Ufixed(types.NewUint(5), 3), Bool(true), String("x"), Byte(0x0a))
	require.Equal(t, `[0.005, true, "x", 0x0a]`, v.String())
}
