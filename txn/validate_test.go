package txn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	codecerrors "github.com/wippyai/avm-codec/errors"
	"github.com/wippyai/avm-codec/types"
	"go.uber.org/multierr"
)

func header(typ Type) Transaction {
	return Transaction{Type: typ, Sender: sender(), FirstValid: 1, LastValid: 10}
}

func appCreate() *AppCallFields {
	return &AppCallFields{
		ApprovalProgram:   []byte{0x06, 0x81, 0x01},
		ClearStateProgram: []byte{0x06, 0x81, 0x01},
	}
}

func TestValidateValid(t *testing.T) {
	tests := []struct {
		name string
		tx   func() *Transaction
	}{
		{"payment", func() *Transaction { return payment(1) }},
		{"asset transfer", func() *Transaction {
			tx := header(TypeAssetTransfer)
			tx.AssetTransfer = &AssetTransferFields{AssetID: 5, Amount: 1}
			return &tx
		}},
		{"asset create", func() *Transaction {
			tx := header(TypeAssetConfig)
			tx.AssetConfig = &AssetConfigFields{Params: &AssetParams{Total: 1, Decimals: 19, UnitName: "UNIT", URL: strings.Repeat("u", 96)}}
			return &tx
		}},
		{"asset reconfigure", func() *Transaction {
			tx := header(TypeAssetConfig)
			tx.AssetConfig = &AssetConfigFields{AssetID: 3, Params: &AssetParams{Manager: sender()}}
			return &tx
		}},
		{"asset destroy", func() *Transaction {
			tx := header(TypeAssetConfig)
			tx.AssetConfig = &AssetConfigFields{AssetID: 3}
			return &tx
		}},
		{"asset freeze", func() *Transaction {
			tx := header(TypeAssetFreeze)
			tx.AssetFreeze = &AssetFreezeFields{AssetID: 3, FreezeTarget: sender(), Frozen: true}
			return &tx
		}},
		{"key registration online", func() *Transaction {
			tx := header(TypeKeyRegistration)
			tx.KeyRegistration = &KeyRegistrationFields{
				VoteKey: fill32(1), SelectionKey: fill32(2),
				VoteFirst: 1, VoteLast: 100, VoteKeyDilution: 10,
			}
			return &tx
		}},
		{"app create at limits", func() *Transaction {
			tx := header(TypeAppCall)
			a := appCreate()
			a.ExtraProgramPages = 3
			a.ApprovalProgram = make([]byte, 4096)
			a.ClearStateProgram = make([]byte, 4096)
			a.GlobalStateSchema = &StateSchema{NumUints: 32, NumByteSlices: 32}
			a.LocalStateSchema = &StateSchema{NumUints: 16}
			tx.AppCall = a
			return &tx
		}},
		{"app update", func() *Transaction {
			tx := header(TypeAppCall)
			a := appCreate()
			a.AppID = 9
			a.OnComplete = UpdateApplication
			tx.AppCall = a
			return &tx
		}},
		{"app call with references", func() *Transaction {
			tx := header(TypeAppCall)
			tx.AppCall = &AppCallFields{
				AppID:    9,
				Args:     make([][]byte, 16),
				Accounts: make([]types.Address, 2),
				Apps:     []uint64{4, 5},
				Boxes:    []BoxReference{{Index: 2, Name: []byte("b")}},
			}
			return &tx
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, Validate(tc.tx()))
		})
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		tx    func() *Transaction
		count int
		want  string
	}{
		{"nil", func() *Transaction { return nil }, 1, "transaction is nil"},
		{"multiple groups", func() *Transaction {
			tx := payment(1)
			tx.AssetTransfer = &AssetTransferFields{AssetID: 1}
			return tx
		}, 1, "Multiple transaction type specific fields set"},
		{"missing type", func() *Transaction {
			tx := payment(1)
			tx.Type = ""
			return tx
		}, 1, "transaction type is required"},
		{"unknown type", func() *Transaction {
			tx := payment(1)
			tx.Type = "stpf"
			return tx
		}, 1, "unknown transaction type"},
		{"type mismatch", func() *Transaction {
			tx := payment(1)
			tx.Type = TypeAppCall
			return tx
		}, 1, "does not match"},
		{"asset transfer without asset", func() *Transaction {
			tx := header(TypeAssetTransfer)
			tx.AssetTransfer = &AssetTransferFields{}
			return &tx
		}, 1, "Asset ID is required"},
		{"asset freeze empty", func() *Transaction {
			tx := header(TypeAssetFreeze)
			tx.AssetFreeze = &AssetFreezeFields{}
			return &tx
		}, 2, "Freeze target is required"},
		{"asset create without params", func() *Transaction {
			tx := header(TypeAssetConfig)
			tx.AssetConfig = &AssetConfigFields{}
			return &tx
		}, 1, "Total is required"},
		{"asset create limits", func() *Transaction {
			tx := header(TypeAssetConfig)
			tx.AssetConfig = &AssetConfigFields{Params: &AssetParams{
				Total:     1,
				Decimals:  20,
				UnitName:  "TOOLONGUN",
				AssetName: strings.Repeat("a", 33),
				URL:       strings.Repeat("u", 97),
			}}
			return &tx
		}, 4, "Unit name cannot exceed 8 bytes, got 9"},
		{"asset reconfigure immutable", func() *Transaction {
			tx := header(TypeAssetConfig)
			tx.AssetConfig = &AssetConfigFields{AssetID: 3, Params: &AssetParams{
				Total: 1, Decimals: 1, DefaultFrozen: true, UnitName: "u",
				AssetName: "a", URL: "x", MetadataHash: fill32(1),
			}}
			return &tx
		}, 7, "Metadata hash cannot be changed after creation"},
		{"key registration partial", func() *Transaction {
			tx := header(TypeKeyRegistration)
			tx.KeyRegistration = &KeyRegistrationFields{VoteKey: fill32(1), VoteFirst: 10, VoteLast: 5, NonParticipation: true}
			return &tx
		}, 4, "Selection key is required"},
		{"key registration offline with fields", func() *Transaction {
			tx := header(TypeKeyRegistration)
			tx.KeyRegistration = &KeyRegistrationFields{VoteKeyDilution: 1}
			return &tx
		}, 1, "offline key registration"},
		{"app create without programs", func() *Transaction {
			tx := header(TypeAppCall)
			tx.AppCall = &AppCallFields{}
			return &tx
		}, 2, "Clear state program is required"},
		{"app create oversized", func() *Transaction {
			tx := header(TypeAppCall)
			a := appCreate()
			a.ExtraProgramPages = 4
			a.ApprovalProgram = make([]byte, 2049*5)
			a.GlobalStateSchema = &StateSchema{NumUints: 65}
			a.LocalStateSchema = &StateSchema{NumByteSlices: 17}
			tx.AppCall = a
			return &tx
		}, 5, "Local state schema cannot exceed 16 keys"},
		{"app update without programs", func() *Transaction {
			tx := header(TypeAppCall)
			tx.AppCall = &AppCallFields{AppID: 1, OnComplete: UpdateApplication}
			return &tx
		}, 2, "Approval program is required"},
		{"app immutable fields", func() *Transaction {
			tx := header(TypeAppCall)
			tx.AppCall = &AppCallFields{
				AppID:             1,
				GlobalStateSchema: &StateSchema{NumUints: 1},
				LocalStateSchema:  &StateSchema{NumUints: 1},
				ExtraProgramPages: 1,
			}
			return &tx
		}, 3, "Extra program pages cannot be changed after creation"},
		{"app references", func() *Transaction {
			tx := header(TypeAppCall)
			tx.AppCall = &AppCallFields{
				AppID:    1,
				Args:     [][]byte{make([]byte, 2049)},
				Accounts: make([]types.Address, 5),
				Apps:     make([]uint64, 9),
				Assets:   make([]uint64, 9),
				Boxes:    make([]BoxReference, 9),
			}
			tx.AppCall.Boxes[0].Index = 10
			return &tx
		}, 7, "Total references cannot exceed 8 refs, got 32"},
		{"too many args", func() *Transaction {
			tx := header(TypeAppCall)
			tx.AppCall = &AppCallFields{AppID: 1, Args: make([][]byte, 17)}
			return &tx
		}, 1, "Args cannot exceed 16 args, got 17"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.tx())
			require.Error(t, err)
			require.ErrorIs(t, err, codecerrors.ErrValidation)
			require.Len(t, multierr.Errors(err), tc.count, "%v", err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEncodeRejectsInvalid(t *testing.T) {
	tx := header(TypeAssetTransfer)
	tx.AssetTransfer = &AssetTransferFields{}
	_, err := Encode(&tx)
	require.ErrorIs(t, err, codecerrors.ErrValidation)

	_, err = ID(&tx)
	require.Error(t, err)
}
