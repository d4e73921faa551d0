package txn

import (
	"bytes"

	"github.com/wippyai/avm-codec/canonical"
	"github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
	"go.uber.org/zap"
)

const (
	// MaxGroupSize is the largest atomic group.
	MaxGroupSize = 16
	// SignatureOverhead is added to the raw size when estimating a signed transaction.
	SignatureOverhead = 75
	// IDLength is the length of the base32 transaction ID.
	IDLength = 52
)

var (
	txPrefix    = []byte("TX")
	groupPrefix = []byte("TG")
)

// EncodeRaw validates tx and returns its canonical encoding without the
// "TX" domain prefix.
func EncodeRaw(tx *Transaction) ([]byte, error) {
	if err := Validate(tx); err != nil {
		return nil, err
	}
	data, err := transactionModel.Encode(tx)
	if err != nil {
		return nil, errors.WithPath(err, "transaction")
	}
	return data, nil
}

// Encode returns the "TX"-prefixed encoding of tx.
func Encode(tx *Transaction) ([]byte, error) {
	raw, err := EncodeRaw(tx)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(txPrefix)+len(raw))
	out = append(out, txPrefix...)
	return append(out, raw...), nil
}

// Decode parses an encoded transaction, with or without the "TX" prefix.
func Decode(data []byte) (*Transaction, error) {
	if len(data) == 0 {
		return nil, errors.EmptyInput("attempted to decode 0 bytes")
	}
	data = bytes.TrimPrefix(data, txPrefix)

	tx := new(Transaction)
	if err := transactionModel.Decode(data, tx); err != nil {
		return nil, err
	}
	ensureTypeFields(tx)
	return tx, nil
}

// ensureTypeFields allocates the group named by tx.Type when every field
// of it was empty on the wire.
func ensureTypeFields(tx *Transaction) {
	switch tx.Type {
	case TypePayment:
		if tx.Payment == nil {
			tx.Payment = &PaymentFields{}
		}
	case TypeAssetTransfer:
		if tx.AssetTransfer == nil {
			tx.AssetTransfer = &AssetTransferFields{}
		}
	case TypeAssetConfig:
		if tx.AssetConfig == nil {
			tx.AssetConfig = &AssetConfigFields{}
		}
	case TypeAssetFreeze:
		if tx.AssetFreeze == nil {
			tx.AssetFreeze = &AssetFreezeFields{}
		}
	case TypeKeyRegistration:
		if tx.KeyRegistration == nil {
			tx.KeyRegistration = &KeyRegistrationFields{}
		}
	case TypeAppCall:
		if tx.AppCall == nil {
			tx.AppCall = &AppCallFields{}
		}
	case TypeHeartbeat:
		if tx.Heartbeat == nil {
			tx.Heartbeat = &HeartbeatFields{}
		}
	}
}

// EncodeMany encodes each transaction with the "TX" prefix.
func EncodeMany(txs []*Transaction) ([][]byte, error) {
	out := make([][]byte, len(txs))
	for i, tx := range txs {
		data, err := Encode(tx)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

// DecodeMany decodes each encoded transaction.
func DecodeMany(data [][]byte) ([]*Transaction, error) {
	out := make([]*Transaction, len(data))
	for i, d := range data {
		tx, err := Decode(d)
		if err != nil {
			return nil, err
		}
		out[i] = tx
	}
	return out, nil
}

// EstimateSize returns the encoded size of tx once signed.
func EstimateSize(tx *Transaction) (int, error) {
	raw, err := EncodeRaw(tx)
	if err != nil {
		return 0, err
	}
	return len(raw) + SignatureOverhead, nil
}

// IDRaw returns the SHA-512/256 hash of the prefixed encoding.
func IDRaw(tx *Transaction) (types.Digest, error) {
	data, err := Encode(tx)
	if err != nil {
		return types.Digest{}, err
	}
	return types.Hash(data), nil
}

// ID returns the base32 transaction ID.
func ID(tx *Transaction) (string, error) {
	raw, err := IDRaw(tx)
	if err != nil {
		return "", err
	}
	id := raw.String()
	if len(id) > IDLength {
		id = id[:IDLength]
	}
	return id, nil
}

// GroupID hashes the IDs of txs into a group identifier. None of txs may
// already carry a group.
func GroupID(txs []*Transaction) (types.Digest, error) {
	if len(txs) == 0 {
		return types.Digest{}, errors.Validation(nil, "Transaction group size cannot be 0")
	}
	if len(txs) > MaxGroupSize {
		return types.Digest{}, errors.Validation(nil,
			"Transaction group size exceeds the max limit of %d", MaxGroupSize)
	}

	ids := make([]any, len(txs))
	for i, tx := range txs {
		if tx == nil {
			return types.Digest{}, errors.Validation(nil, "transaction is nil")
		}
		if !tx.Group.IsZero() {
			return types.Digest{}, errors.Validation(nil, "Transactions must not already be grouped")
		}
		id, err := IDRaw(tx)
		if err != nil {
			return types.Digest{}, err
		}
		ids[i] = id
	}

	data, err := canonical.Encode(canonical.Map{"txlist": ids})
	if err != nil {
		return types.Digest{}, err
	}
	return types.Hash(groupPrefix, data), nil
}

// AssignGroup returns copies of txs carrying their group ID. The inputs
// are not modified.
func AssignGroup(txs []*Transaction) ([]*Transaction, error) {
	gid, err := GroupID(txs)
	if err != nil {
		return nil, err
	}
	out := make([]*Transaction, len(txs))
	for i, tx := range txs {
		cp := *tx
		cp.Group = gid
		out[i] = &cp
	}
	Logger().Debug("assigned transaction group",
		zap.Stringer("group", gid),
		zap.Int("size", len(txs)))
	return out, nil
}
