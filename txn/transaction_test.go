package txn

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	codecerrors "github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sender() types.Address {
	var a types.Address
	for i := range a {
		a[i] = byte(i + 1)
	}
	return a
}

func fill32(b byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = b
	}
	return out
}

func payment(amount uint64) *Transaction {
	return &Transaction{
		Type:        TypePayment,
		Sender:      sender(),
		Fee:         1000,
		FirstValid:  100,
		LastValid:   1100,
		GenesisID:   "testnet-v1.0",
		GenesisHash: types.Digest(fill32(0x48)),
		Payment: &PaymentFields{
			Receiver: types.Address(fill32(0xaa)),
			Amount:   amount,
		},
	}
}

const paymentHex = "89a3616d74ce004c4b40a3666565cd03e8a2667664a367656eac746573746e65742d76312e30" +
	"a26768c4204848484848484848484848484848484848484848484848484848484848484848" +
	"a26c76cd044ca3726376c420aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" +
	"a3736e64c4200102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20" +
	"a474797065a3706179"

func TestEncodePayment(t *testing.T) {
	raw, err := EncodeRaw(payment(5000000))
	require.NoError(t, err)
	require.Equal(t, paymentHex, hex.EncodeToString(raw))

	prefixed, err := Encode(payment(5000000))
	require.NoError(t, err)
	require.Equal(t, append([]byte("TX"), raw...), prefixed)

	size, err := EstimateSize(payment(5000000))
	require.NoError(t, err)
	require.Equal(t, 166+SignatureOverhead, size)
}

func TestID(t *testing.T) {
	id, err := ID(payment(5000000))
	require.NoError(t, err)
	require.Len(t, id, IDLength)
	require.Equal(t, "DMBGY5WJOZYZLR6CBWR3HKNDXPTLW5F46T34CTTQAVN256E3ENDQ", id)

	raw, err := IDRaw(payment(5000000))
	require.NoError(t, err)
	data, err := Encode(payment(5000000))
	require.NoError(t, err)
	require.Equal(t, types.Hash(data), raw)
}

func TestDecodeRoundTrip(t *testing.T) {
	in := payment(5000000)
	in.Note = []byte("hello")
	in.Lease = fill32(1)
	in.RekeyTo = types.Address(fill32(2))
	in.Payment.CloseRemainderTo = types.Address(fill32(3))

	withPrefix, err := Encode(in)
	require.NoError(t, err)
	raw, err := EncodeRaw(in)
	require.NoError(t, err)

	for _, data := range [][]byte{withPrefix, raw} {
		out, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, in, out)
	}
}

func TestDecodeFillsDeclaredType(t *testing.T) {
	tx := &Transaction{
		Type:            TypeKeyRegistration,
		Sender:          sender(),
		FirstValid:      1,
		LastValid:       2,
		KeyRegistration: &KeyRegistrationFields{},
	}
	data, err := Encode(tx)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	require.NotNil(t, out.KeyRegistration)
	require.Nil(t, out.Payment)
	require.False(t, out.KeyRegistration.Online())
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, codecerrors.ErrEmptyInput)
	require.Contains(t, err.Error(), "attempted to decode 0 bytes")

	_, err = Decode([]byte("TX"))
	require.Error(t, err)

	_, err = Decode([]byte{0x81, 0xa3, 's', 'n', 'd', 0xc4, 0x01, 0x00})
	require.ErrorIs(t, err, codecerrors.ErrMalformedEncoding)
}

func TestAssetConfigEncoding(t *testing.T) {
	tx := &Transaction{
		Type:       TypeAssetConfig,
		Sender:     sender(),
		FirstValid: 1,
		LastValid:  2,
		AssetConfig: &AssetConfigFields{
			Params: &AssetParams{Total: 1000, Decimals: 2, UnitName: "TST", AssetName: "Test"},
		},
	}
	raw, err := EncodeRaw(tx)
	require.NoError(t, err)
	require.Equal(t,
		"85a46170617284a2616ea454657374a2646302a174cd03e8a2756ea3545354a2667601a26c7602"+
			"a3736e64c4200102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"+
			"a474797065a461636667",
		hex.EncodeToString(raw))

	out, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, tx, out)
}

func TestAppCallEncoding(t *testing.T) {
	tx := &Transaction{
		Type:       TypeAppCall,
		Sender:     sender(),
		FirstValid: 1,
		LastValid:  2,
		AppCall: &AppCallFields{
			AppID:      7,
			OnComplete: OptIn,
			Args:       [][]byte{{1}, {}},
			Apps:       []uint64{9},
			Boxes: []BoxReference{
				{Name: []byte("k")},
				{Index: 1, Name: []byte("x")},
			},
		},
	}
	raw, err := EncodeRaw(tx)
	require.NoError(t, err)
	require.Equal(t,
		"89a46170616192c40101c400a46170616e01a4617062789281a16ec4016b82a16901a16ec40178"+
			"a4617066619109a46170696407a2667601a26c7602"+
			"a3736e64c4200102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"+
			"a474797065a46170706c",
		hex.EncodeToString(raw))

	out, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, tx, out)
}

func TestHeartbeatNested(t *testing.T) {
	tx := &Transaction{
		Type:       TypeHeartbeat,
		Sender:     sender(),
		FirstValid: 1,
		LastValid:  2,
		Heartbeat: &HeartbeatFields{
			Address:     types.Address(fill32(5)),
			Seed:        []byte{1, 2},
			KeyDilution: 10,
		},
	}
	tx.Heartbeat.Proof.PK = fill32(6)

	raw, err := EncodeRaw(tx)
	require.NoError(t, err)
	require.True(t, bytes.Contains(raw, []byte("\xa2hb")))

	out, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, tx, out)
}

func TestGroup(t *testing.T) {
	txs := []*Transaction{payment(5000000), payment(1)}

	gid, err := GroupID(txs)
	require.NoError(t, err)
	require.Equal(t, "adec7377db34ea37d8474c10961707daa678156b7c6b44f65e72e20cfb8a4011", hex.EncodeToString(gid[:]))

	grouped, err := AssignGroup(txs)
	require.NoError(t, err)
	require.Len(t, grouped, 2)
	for i, tx := range grouped {
		require.Equal(t, gid, tx.Group)
		require.True(t, txs[i].Group.IsZero(), "input must not be modified")
	}

	_, err = GroupID(grouped)
	require.ErrorIs(t, err, codecerrors.ErrValidation)
	require.Contains(t, err.Error(), "Transactions must not already be grouped")

	_, err = GroupID(nil)
	require.Contains(t, err.Error(), "Transaction group size cannot be 0")

	many := make([]*Transaction, MaxGroupSize+1)
	for i := range many {
		many[i] = payment(uint64(i))
	}
	_, err = GroupID(many)
	require.Contains(t, err.Error(), "exceeds the max limit of 16")

	data, err := Encode(grouped[0])
	require.NoError(t, err)
	out, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, gid, out.Group)
}

func TestEncodeManyDecodeMany(t *testing.T) {
	txs := []*Transaction{payment(1), payment(2)}
	data, err := EncodeMany(txs)
	require.NoError(t, err)
	out, err := DecodeMany(data)
	require.NoError(t, err)
	require.Equal(t, txs, out)

	_, err = DecodeMany([][]byte{data[0], nil})
	require.ErrorIs(t, err, codecerrors.ErrEmptyInput)
}

func TestCalculateFee(t *testing.T) {
	size := 166 + SignatureOverhead
	tests := []struct {
		name    string
		params  FeeParams
		want    uint64
		wantErr bool
	}{
		{"min fee wins", FeeParams{MinFee: 1000}, 1000, false},
		{"per byte", FeeParams{FeePerByte: 10, MinFee: 1000}, uint64(10 * size), false},
		{"extra fee", FeeParams{MinFee: 1000, ExtraFee: 500}, 1500, false},
		{"max fee exceeded", FeeParams{MinFee: 1000, ExtraFee: 500, MaxFee: 1200}, 0, true},
		{"max fee ok", FeeParams{MinFee: 1000, MaxFee: 1000}, 1000, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fee, err := CalculateFee(payment(5000000), tc.params)
			if tc.wantErr {
				require.ErrorIs(t, err, codecerrors.ErrValidation)
				require.Contains(t, err.Error(), "greater than maxFee")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, fee)
		})
	}
}

func TestAssignFee(t *testing.T) {
	in := payment(5000000)
	out, err := AssignFee(in, FeeParams{MinFee: 2000})
	require.NoError(t, err)
	require.Equal(t, uint64(2000), out.Fee)
	require.Equal(t, uint64(1000), in.Fee)
}

func TestNilTransaction(t *testing.T) {
	_, err := GroupID([]*Transaction{payment(1), nil})
	require.ErrorIs(t, err, codecerrors.ErrValidation)
	require.Contains(t, err.Error(), "transaction is nil")

	_, err = AssignGroup([]*Transaction{nil})
	require.ErrorIs(t, err, codecerrors.ErrValidation)

	_, err = CalculateFee(nil, FeeParams{MinFee: 1000})
	require.ErrorIs(t, err, codecerrors.ErrValidation)

	_, err = AssignFee(nil, FeeParams{MinFee: 1000})
	require.ErrorIs(t, err, codecerrors.ErrValidation)
	require.Contains(t, err.Error(), "transaction is nil")

	_, err = ID(nil)
	require.ErrorIs(t, err, codecerrors.ErrValidation)

	_, err = EstimateSize(nil)
	require.ErrorIs(t, err, codecerrors.ErrValidation)
}

func TestAssignGroupLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	grouped, err := AssignGroup([]*Transaction{payment(1), payment(2)})
	require.NoError(t, err)

	entries := logs.FilterMessage("assigned transaction group").All()
	require.Len(t, entries, 1)
	require.Equal(t, grouped[0].Group.String(), entries[0].ContextMap()["group"])
	require.Equal(t, int64(2), entries[0].ContextMap()["size"])
}
