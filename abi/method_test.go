package abi

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	codecerrors "github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
)

func TestMethodSelector(t *testing.T) {
	tests := []struct {
		sig  string
		want string
	}{
		{"add(uint64,uint64)uint128", "8aa3b61f"},
	}
	for _, tc := range tests {
		t.Run(tc.sig, func(t *testing.T) {
			m, err := MethodFromSignature(tc.sig)
			require.NoError(t, err)
			require.Equal(t, tc.sig, m.Signature())
			require.Equal(t, tc.want, hex.EncodeToString(m.Selector()))
		})
	}
}

func TestMethodFromSignatureArgs(t *testing.T) {
	m, err := MethodFromSignature("swap(pay,account,(uint64,string),asset[],application)void")
	require.NoError(t, err)
	require.True(t, m.Void)

	wantKinds := []ArgKind{ArgTransaction, ArgReference, ArgValue, ArgValue, ArgReference}
	require.Len(t, m.Args, len(wantKinds))
	for i, k := range wantKinds {
		require.Equal(t, k, m.Args[i].Kind, "arg %d", i)
	}
	require.Equal(t, 1, m.TxnCount())
	require.Equal(t, TxnPayment, m.Args[0].Ref)
	require.Equal(t, RefApp, m.Args[4].Ref)
}

func TestMethodFromSignatureInvalid(t *testing.T) {
	sigs := []string{
		"",
		"noparens",
		"(uint8)void",
		"f(uint8",
		"f(uint8)",
		"f(foo)void",
		"f(uint8,)void",
		"f(uint8)uint7",
	}
	for _, sig := range sigs {
		t.Run(sig, func(t *testing.T) {
			_, err := MethodFromSignature(sig)
			require.ErrorIs(t, err, codecerrors.ErrMalformedTypeSignature)
		})
	}
}

func TestEncodeArgs(t *testing.T) {
	m, err := MethodFromSignature("call(pay,uint64,account,string)void")
	require.NoError(t, err)

	args, err := m.EncodeArgs([]any{uint64(9), 1, "hi"})
	require.NoError(t, err)
	require.Equal(t, [][]byte{
		m.Selector(),
		{0, 0, 0, 0, 0, 0, 0, 9},
		{1},
		{0, 2, 'h', 'i'},
	}, args)

	_, err = m.EncodeArgs([]any{uint64(9)})
	require.ErrorIs(t, err, codecerrors.ErrTypeMismatch, "arity")

	_, err = m.EncodeArgs([]any{uint64(9), 256, "hi"})
	require.ErrorIs(t, err, codecerrors.ErrTypeMismatch, "reference index overflow")
}

func TestEncodeArgsPacksOverflow(t *testing.T) {
	sig := "many("
	vals := make([]any, 17)
	for i := range vals {
		if i > 0 {
			sig += ","
		}
		sig += "uint8"
		vals[i] = i
	}
	sig += ")void"

	m, err := MethodFromSignature(sig)
	require.NoError(t, err)
	args, err := m.EncodeArgs(vals)
	require.NoError(t, err)
	require.Len(t, args, 16)
	require.Equal(t, []byte{13}, args[14])
	require.Equal(t, []byte{14, 15, 16}, args[15], "packed tail")
}

func TestDecodeReturn(t *testing.T) {
	m, err := MethodFromSignature("get()(uint64,string)")
	require.NoError(t, err)
	body, err := EncodeGo([]any{7, "ok"}, m.Returns)
	require.NoError(t, err)

	v, err := m.DecodeReturn(append(append([]byte(nil), ReturnPrefix...), body...))
	require.NoError(t, err)
	require.True(t, v.Equal(List(Uint(7), String("ok"))), "got %s", v)

	_, err = m.DecodeReturn(body)
	require.ErrorIs(t, err, codecerrors.ErrMalformedEncoding, "missing prefix")

	_, err = m.DecodeReturn(ReturnPrefix)
	require.ErrorIs(t, err, codecerrors.ErrMalformedEncoding, "empty body")

	void, err := MethodFromSignature("ping()void")
	require.NoError(t, err)
	_, err = void.DecodeReturn(ReturnPrefix)
	require.Error(t, err, "void method should not decode a return")
}

func TestStorageValues(t *testing.T) {
	enc, err := EncodeStorageValue(AVMUint64, 5)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 5}, enc)

	for _, ref := range []string{AVMUint64, RefAsset, RefApp} {
		got, err := DecodeStorageValue(ref, enc)
		require.NoError(t, err, ref)
		u, ok := got.(types.Uint)
		require.True(t, ok, ref)
		require.True(t, u.Equal(types.NewUint(5)), ref)
	}

	enc, err = EncodeStorageValue(AVMString, "héllo")
	require.NoError(t, err)
	require.Equal(t, "héllo", string(enc))

	got, err := DecodeStorageValue(AVMString, enc)
	require.NoError(t, err)
	require.Equal(t, "héllo", got)

	_, err = DecodeStorageValue(AVMString, []byte{0xff})
	require.ErrorIs(t, err, codecerrors.ErrMalformedEncoding)

	got, err = DecodeStorageValue(AVMBytes, []byte{1, 2})
	require.NoError(t, err)
	require.Equal(t, types.Bytes{1, 2}, got)

	var addr types.Address
	addr[31] = 1
	got, err = DecodeStorageValue(RefAccount, addr[:])
	require.NoError(t, err)
	require.Equal(t, addr, got)

	enc, err = EncodeStorageValue("(uint8,string)", []any{1, "a"})
	require.NoError(t, err)
	got, err = DecodeStorageValue("(uint8,string)", enc)
	require.NoError(t, err)
	require.True(t, types.Equal(got, []any{1, "a"}), "tuple: got %v", got)

	_, err = EncodeStorageValue(AVMString, 5)
	require.ErrorIs(t, err, codecerrors.ErrTypeMismatch)
}
