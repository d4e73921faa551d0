package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	codecerrors "github.com/wippyai/avm-codec/errors"
)

const zeroAddressString = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAY5HFKQ"

func TestUintFromBig(t *testing.T) {
	tests := []struct {
		name    string
		in      *big.Int
		mode    Mode
		wantErr bool
	}{
		{"zero", big.NewInt(0), ModeNative, false},
		{"max uint64", new(big.Int).SetUint64(^uint64(0)), ModeNative, false},
		{"2^64", new(big.Int).Lsh(big.NewInt(1), 64), ModeBig, false},
		{"2^512-1", new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 512), big.NewInt(1)), ModeBig, false},
		{"2^512", new(big.Int).Lsh(big.NewInt(1), 512), ModeNative, true},
		{"negative", big.NewInt(-1), ModeNative, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := UintFromBig(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, codecerrors.ErrTypeMismatch)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.mode, u.Mode())
			require.Zero(t, u.Big().Cmp(tt.in), "value = %s, want %s", u, tt.in)
		})
	}
}

func TestUintPrecision(t *testing.T) {
	// 2^63 + 12345 must survive without float rounding
	u, err := ParseUint("9223372036854788153")
	require.NoError(t, err)
	v, ok := u.Uint64()
	require.True(t, ok)
	require.Equal(t, uint64(1<<63+12345), v)
	require.Equal(t, "9223372036854788153", u.String())
}

func TestUintModeIgnoredByEqual(t *testing.T) {
	a := NewUint(7)
	b := NewUint(7).WithMode(ModeBig)
	require.True(t, a.Equal(b), "mode should not affect equality")
	require.Equal(t, ModeBig, b.Mode())

	wide := UintFromBytes([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0})
	require.Equal(t, ModeBig, wide.WithMode(ModeNative).Mode(), "wide values stay big")
}

func TestUintBitLen(t *testing.T) {
	tests := []struct {
		v    uint64
		want int
	}{
		{0, 0}, {1, 1}, {255, 8}, {256, 9}, {^uint64(0), 64},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NewUint(tt.v).BitLen(), "BitLen(%d)", tt.v)
	}
}

func TestAsUint(t *testing.T) {
	_, ok, err := AsUint(-3)
	require.True(t, ok, "negative int should be recognized")
	require.Error(t, err)

	u, ok, err := AsUint(uint16(9))
	require.True(t, ok)
	require.NoError(t, err)
	require.True(t, u.Equal(NewUint(9)))

	_, ok, _ = AsUint("9")
	require.False(t, ok, "strings are not integers")
}

func TestAddress(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		require.Equal(t, zeroAddressString, ZeroAddress.String())
		a, err := AddressFromString(zeroAddressString)
		require.NoError(t, err)
		require.True(t, a.IsZero())
	})

	t.Run("round trip", func(t *testing.T) {
		var a Address
		for i := range a {
			a[i] = byte(i * 7)
		}
		back, err := AddressFromString(a.String())
		require.NoError(t, err)
		require.Equal(t, a, back)
	})

	t.Run("bad checksum", func(t *testing.T) {
		bad := zeroAddressString[:57] + "A"
		_, err := AddressFromString(bad)
		require.ErrorIs(t, err, codecerrors.ErrMalformedEncoding)
	})

	t.Run("bad length", func(t *testing.T) {
		_, err := AddressFromString("AAAA")
		require.Error(t, err)
		_, err = AddressFromBytes(make([]byte, 31))
		require.Error(t, err)
	})
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"int kinds", uint8(5), int64(5), true},
		{"uint vs big", NewUint(5), big.NewInt(5), true},
		{"different ints", 1, 2, false},
		{"bytes kinds", []byte{1, 2}, Bytes{1, 2}, true},
		{"bytes vs string", []byte("a"), "a", false},
		{"address vs bytes", ZeroAddress, make(Bytes, 32), true},
		{"nil vs empty list", []any(nil), []any{}, true},
		{"typed list", []uint64{1, 2}, []any{NewUint(1), 2}, true},
		{"list order", []any{1, 2}, []any{2, 1}, false},
		{"nested map", map[string]any{"a": map[string]any{"b": 1}}, map[string]any{"a": map[string]any{"b": uint64(1)}}, true},
		{"map missing key", map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{"bool", true, true, true},
		{"nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Equal(tt.a, tt.b), "Equal(%v, %v)", tt.a, tt.b)
		})
	}
}

func TestHash(t *testing.T) {
	d := Hash([]byte("TX"), []byte{0x80})
	require.False(t, d.IsZero())
	require.Len(t, d.String(), 52)
	require.Equal(t, Hash([]byte("TX\x80")), d, "hash should be over the concatenation")
}
